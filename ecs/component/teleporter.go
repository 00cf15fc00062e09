package component

// Teleporter moves the player to a fixed target when touched.
type Teleporter struct {
	TargetX float64
	TargetY float64
	Back    bool
}

var TeleporterComponent = NewComponent[Teleporter]()
