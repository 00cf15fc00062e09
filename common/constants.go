package common

const (
	BaseWidth  = 1000
	BaseHeight = 650
	Title      = "Platform"

	// Gravity is in world units per frame squared (y-up world, so it pulls
	// negative).
	Gravity = -0.5

	TileSize    = 18
	TileScaling = 1.5

	FirstLevel = 1
	FinalLevel = 3
)

// Tilemap layer names.
const (
	LayerPlatforms      = "Platforms"
	LayerCoins          = "Coins"
	LayerBackground     = "Background"
	LayerDontTouch      = "Don't Touch"
	LayerEnemies        = "Enemies"
	LayerMovingPlatform = "Moving Platform"
	LayerLadders        = "Ladders"
	LayerTeleport       = "Teleport"
	LayerTeleportBack   = "Teleport Back"
	LayerPlayer         = "Player"
)

// Audio cue names shared by prefabs and systems.
const (
	CueJump     = "jump"
	CueCoin     = "coin"
	CueGameOver = "gameover"
	CueTeleport = "teleport"
)
