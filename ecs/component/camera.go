package component

type Camera struct {
	ViewportW float64
	ViewportH float64
	Zoom      float64
}

var CameraComponent = NewComponent[Camera]()
