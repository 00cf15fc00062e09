package common

// Max0 clamps v to be non-negative.
func Max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
