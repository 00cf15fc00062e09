package component

// PlayerMode is the single physics/animation mode of the player. It replaces
// independent jumping/climbing/on-ladder flags that could disagree.
type PlayerMode int

const (
	ModeIdle PlayerMode = iota
	ModeWalking
	ModeJumping
	ModeFalling
	ModeClimbing
)

func (m PlayerMode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeWalking:
		return "walking"
	case ModeJumping:
		return "jumping"
	case ModeFalling:
		return "falling"
	case ModeClimbing:
		return "climbing"
	default:
		return "unknown"
	}
}

type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

// Visual is the texture slot shown for the current frame.
type Visual int

const (
	VisualIdle Visual = iota
	VisualJump
	VisualFall
	VisualClimb0
	VisualClimb1
	VisualWalk0
	VisualWalk1
	VisualWalk2
)

// Animator is the player's animation state. Frame is the cycle counter: 0..7
// while climbing (each climb texture held for four ticks), 0..2 while walking.
type Animator struct {
	Mode   PlayerMode
	Facing Facing
	Frame  int
	Visual Visual
}

var AnimatorComponent = NewComponent[Animator]()

// AnimationSet maps each visual to a texture name. Climb textures are never
// mirrored; the others flip horizontally when facing left.
type AnimationSet struct {
	Textures map[Visual]string
}

var AnimationSetComponent = NewComponent[AnimationSet]()
