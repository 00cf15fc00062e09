package component

// Transform is a world-space center position. World Y grows upward; the
// renderer flips it into screen space.
type Transform struct {
	X      float64
	Y      float64
	ScaleX float64
	ScaleY float64
}

var TransformComponent = NewComponent[Transform]()
