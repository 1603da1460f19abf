// Package breath implements the breathing exercise state machine: the three
// emotional states, their display parameters, the progress ticker, and the
// Controller that ties them to reflection fetches.
package breath

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownState is returned when parsing a name that is not a State.
var ErrUnknownState = errors.New("unknown state")

// State is one step of the exercise. States are ordered by the advance
// sequence: Anxious, Transition, Calm.
type State int

const (
	Anxious State = iota
	Transition
	Calm
)

// States returns every state in advance order.
func States() []State {
	return []State{Anxious, Transition, Calm}
}

func (s State) String() string {
	switch s {
	case Anxious:
		return "ANXIOUS"
	case Transition:
		return "TRANSITION"
	case Calm:
		return "CALM"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Valid reports whether s is one of the three known states.
func (s State) Valid() bool {
	return s >= Anxious && s <= Calm
}

// Next returns the state that follows s. Calm is terminal: Next returns
// (Calm, false).
func (s State) Next() (State, bool) {
	switch s {
	case Anxious:
		return Transition, true
	case Transition:
		return Calm, true
	default:
		return s, false
	}
}

// ParseState parses a state name case-insensitively.
func ParseState(name string) (State, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "ANXIOUS":
		return Anxious, nil
	case "TRANSITION":
		return Transition, nil
	case "CALM":
		return Calm, nil
	}
	return Anxious, fmt.Errorf("%w: %q", ErrUnknownState, name)
}
