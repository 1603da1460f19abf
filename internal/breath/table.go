package breath

// StateConfig holds the animation and display parameters for one state.
type StateConfig struct {
	Speed  float64 // seconds per breath cycle
	Jitter float64 // horizontal shake magnitude
	Scale  float64 // droplet size multiplier
	Color  string  // hex accent color
	Label  string
}

var stateConfigs = [...]StateConfig{
	Anxious: {
		Speed:  1.5,
		Jitter: 15,
		Scale:  0.9,
		Color:  "#3b82f6", // blue-500
		Label:  "心急如焚的跳動",
	},
	Transition: {
		Speed:  3.0,
		Jitter: 5,
		Scale:  1.1,
		Color:  "#2dd4bf", // teal-400
		Label:  "深呼吸，慢慢緩下來",
	},
	Calm: {
		Speed:  5.0,
		Jitter: 0,
		Scale:  1.3,
		Color:  "#a78bfa", // violet-400
		Label:  "如水般的安定",
	},
}

// ConfigFor returns the parameters for s. Unknown states get Anxious's.
func ConfigFor(s State) StateConfig {
	if !s.Valid() {
		return stateConfigs[Anxious]
	}
	return stateConfigs[s]
}

// MaxJitter is the largest Jitter in the table, used to normalise shake.
func MaxJitter() float64 {
	largest := 0.0
	for _, c := range stateConfigs {
		if c.Jitter > largest {
			largest = c.Jitter
		}
	}
	return largest
}
