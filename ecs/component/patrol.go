package component

// Patrol moves an entity horizontally between two world-space boundaries.
// Zero boundaries disable the bounce on that side.
type Patrol struct {
	BoundaryLeft  float64
	BoundaryRight float64
	Speed         float64
}

var PatrolComponent = NewComponent[Patrol]()
