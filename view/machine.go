// Package view tracks which screen is showing: the menu, the game, or the
// completion screen.
package view

import (
	"errors"
	"fmt"

	"github.com/milk9111/platformer/gameplay"
)

var ErrInvalidTransition = errors.New("view: invalid transition")

type State int

const (
	StateMenu State = iota
	StatePlaying
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Machine moves Menu -> Playing -> Complete. Complete has no way out.
type Machine struct {
	state  State
	totals gameplay.Totals
	// OnChange, if set, runs after every successful transition.
	OnChange func(from, to State)
}

func NewMachine() *Machine {
	return &Machine{state: StateMenu}
}

func (m *Machine) State() State {
	return m.state
}

// Start leaves the menu for the game.
func (m *Machine) Start() error {
	return m.transition(StateMenu, StatePlaying)
}

// Finish shows the completion screen with the given totals.
func (m *Machine) Finish(totals gameplay.Totals) error {
	if err := m.transition(StatePlaying, StateComplete); err != nil {
		return err
	}
	m.totals = totals.Clone()
	return nil
}

// Totals returns the result shown on the completion screen. It is the zero
// value before Finish.
func (m *Machine) Totals() gameplay.Totals {
	return m.totals.Clone()
}

func (m *Machine) transition(from, to State) error {
	if m.state != from {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.state, to)
	}
	m.state = to
	if m.OnChange != nil {
		m.OnChange(from, to)
	}
	return nil
}
