package component

// Input stores the held state of the four directional keys. JumpNeedsReset
// latches after a jump until up is released.
type Input struct {
	Up             bool
	Down           bool
	Left           bool
	Right          bool
	JumpNeedsReset bool
}

var InputComponent = NewComponent[Input]()

// Key is a logical direction key; W/S/A/D and the arrow keys both map here.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)
