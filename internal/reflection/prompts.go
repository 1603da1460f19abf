package reflection

import "droplet/internal/breath"

// There are exactly two prompt variants: Calm gets the inner peace prompt,
// Anxious and Transition share the encouragement prompt.
const (
	InnerPeacePrompt    = "Generate a short, poetic, one-sentence reflection in Traditional Chinese about the feeling of complete inner peace and flowing like water. Do not use quotes."
	EncouragementPrompt = "Generate a short, soothing, one-sentence encouragement in Traditional Chinese for someone who is currently anxious and trying to breathe slowly. Focus on the imagery of water or breath. Do not use quotes."
)

// PromptFor returns the prompt used to request a reflection for state.
func PromptFor(state breath.State) string {
	if state == breath.Calm {
		return InnerPeacePrompt
	}
	return EncouragementPrompt
}
