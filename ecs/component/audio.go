package component

// Audio lists the named cues an entity can fire. Systems set Play[i]; the
// audio player consumes and clears the flag.
type Audio struct {
	Names  []string
	Files  []string
	Volume []float64
	Play   []bool
}

var AudioComponent = NewComponent[Audio]()
