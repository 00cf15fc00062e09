package component

import "github.com/jakecoffman/cp"

// BodyKind selects how the physics system builds an entity's body.
type BodyKind int

const (
	// BodyStatic is immovable solid geometry.
	BodyStatic BodyKind = iota
	// BodyDynamic is simulated with gravity (the player).
	BodyDynamic
	// BodyKinematic is moved by velocity only and carries what stands on it.
	BodyKinematic
)

// Layer bits used as Chipmunk shape filter categories.
const (
	LayerSolid uint = 1 << iota
	LayerPlatform
	LayerLadder
	LayerCoin
	LayerHazard
	LayerTeleport
	LayerPlayer
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Sensor shapes report overlaps but never push anything.
type PhysicsBody struct {
	Body     *cp.Body
	Shape    *cp.Shape
	Kind     BodyKind
	Layer    uint
	Sensor   bool
	Width    float64
	Height   float64
	Friction float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// Velocity is expressed in world units per frame, matching a physics step of
// one frame.
type Velocity struct {
	X float64
	Y float64
}

var VelocityComponent = NewComponent[Velocity]()

// Contacts holds the physics queries consumed by input and animation.
type Contacts struct {
	OnLadder bool
	CanJump  bool
}

var ContactsComponent = NewComponent[Contacts]()
