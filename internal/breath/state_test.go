package breath

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_NextSequence(t *testing.T) {
	s := Anxious
	var seen []State
	for i := 0; i < 5; i++ {
		next, ok := s.Next()
		if ok {
			s = next
		}
		seen = append(seen, s)
	}
	assert.Equal(t, []State{Transition, Calm, Calm, Calm, Calm}, seen)
}

func TestState_CalmIsTerminal(t *testing.T) {
	next, ok := Calm.Next()
	assert.False(t, ok)
	assert.Equal(t, Calm, next)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "ANXIOUS", Anxious.String())
	assert.Equal(t, "TRANSITION", Transition.String())
	assert.Equal(t, "CALM", Calm.String())
	assert.Equal(t, "State(7)", State(7).String())
	assert.False(t, State(7).Valid())
}

func TestParseState(t *testing.T) {
	tests := []struct {
		in   string
		want State
	}{
		{"ANXIOUS", Anxious},
		{"transition", Transition},
		{"  Calm ", Calm},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseState(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseState("serene")
	assert.True(t, errors.Is(err, ErrUnknownState))
}

func TestConfigFor(t *testing.T) {
	anxious := ConfigFor(Anxious)
	assert.Equal(t, 1.5, anxious.Speed)
	assert.Equal(t, 15.0, anxious.Jitter)
	assert.Equal(t, "#3b82f6", anxious.Color)
	assert.Equal(t, "心急如焚的跳動", anxious.Label)

	calm := ConfigFor(Calm)
	assert.Equal(t, 5.0, calm.Speed)
	assert.Zero(t, calm.Jitter)
	assert.Equal(t, 1.3, calm.Scale)

	// Returned values are copies.
	anxious.Label = "changed"
	assert.Equal(t, "心急如焚的跳動", ConfigFor(Anxious).Label)

	assert.Equal(t, ConfigFor(Anxious), ConfigFor(State(-1)))
}

func TestConfigTable_Invariants(t *testing.T) {
	for _, s := range States() {
		c := ConfigFor(s)
		assert.Positive(t, c.Speed, s.String())
		assert.GreaterOrEqual(t, c.Jitter, 0.0, s.String())
		assert.Positive(t, c.Scale, s.String())
		assert.NotEmpty(t, c.Label, s.String())
	}
	assert.Equal(t, 15.0, MaxJitter())
}
