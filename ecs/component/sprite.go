package component

// Sprite names the texture drawn for an entity. Width and Height are the
// world-space size the texture is stretched to; zero means the texture's own
// size times the transform scale.
type Sprite struct {
	Texture string
	Width   float64
	Height  float64
	FlipX   bool
}

var SpriteComponent = NewComponent[Sprite]()
