package component

// HazardSource tells death causes apart for logging.
type HazardSource string

const (
	HazardDontTouch HazardSource = "dont_touch"
	HazardEnemy     HazardSource = "enemy"
)

// Hazard kills the player on overlap.
type Hazard struct {
	Source HazardSource
}

var HazardComponent = NewComponent[Hazard]()
