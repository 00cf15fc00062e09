package component

// Player holds movement tuning and the spawn point of the current level.
type Player struct {
	MoveSpeed  float64
	JumpSpeed  float64
	ClimbSpeed float64
	// JumpProbe is how far below the feet ground still counts for a jump.
	JumpProbe float64
	SpawnX    float64
	SpawnY    float64
}

var PlayerComponent = NewComponent[Player]()
