package component

// LevelBounds stores the world-space bounds of the current level.
type LevelBounds struct {
	Width  float64
	Height float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()

// Background selects the full-screen backdrop. When Alt is set, it replaces
// Texture while the player is below AltBelowY.
type Background struct {
	Texture   string
	Alt       string
	AltBelowY float64
}

var BackgroundComponent = NewComponent[Background]()
