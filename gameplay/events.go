package gameplay

import "github.com/milk9111/platformer/ecs/component"

type EventKind int

const (
	EventCoins EventKind = iota
	EventDeath
	EventTeleport
	EventLevelComplete
	EventGameComplete
)

func (k EventKind) String() string {
	switch k {
	case EventCoins:
		return "coins"
	case EventDeath:
		return "death"
	case EventTeleport:
		return "teleport"
	case EventLevelComplete:
		return "level_complete"
	case EventGameComplete:
		return "game_complete"
	default:
		return "unknown"
	}
}

// Event records something that happened during a tick. Count is the number
// of coins for EventCoins; Seconds is the level time for EventLevelComplete
// and the grand total for EventGameComplete.
type Event struct {
	Kind    EventKind
	Level   int
	Count   int
	Seconds float64
	Cause   component.HazardSource
}
