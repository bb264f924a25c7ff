// Package whisper models how a citizen receives a divine whisper.
// Receptivity is a fixed-weight linear blend of disposition and context, not
// a learned model.
package whisper

import "github.com/talgya/god-world/internal/citizens"

// Fixed weights. The base term carries the most mass; cognitive load is the
// only subtractive factor.
const (
	weightTrustBase     = 0.40
	weightSensitivity   = 0.15
	weightCuriosity     = 0.15
	weightToneMatch     = 0.10
	weightHistory       = 0.10
	weightSocial        = 0.10
	weightCognitiveLoad = 0.20
)

// Factors are the inputs to the receptivity model, each in [0,1] except
// TrustInDivine which keeps its native [-1,1] range.
type Factors struct {
	TrustInDivine        float64 // [-1,1]
	EmotionalSensitivity float64
	Curiosity            float64
	ToneMatch            float64 // how well the chosen tone fits the citizen
	History              float64 // prior relationship quality with the divine
	SocialReinforcement  float64 // peers speaking of the divine lately
	CognitiveLoad        float64 // stress and dissonance occupying the mind
}

// Receptivity computes the probability-like score in [0,1] that the whisper
// lands. Trust is rescaled from [-1,1] to [0,1] before weighting.
func Receptivity(f Factors) float64 {
	base := (f.TrustInDivine + 1) / 2

	score := weightTrustBase*base +
		weightSensitivity*f.EmotionalSensitivity +
		weightCuriosity*f.Curiosity +
		weightToneMatch*f.ToneMatch +
		weightHistory*f.History +
		weightSocial*f.SocialReinforcement -
		weightCognitiveLoad*f.CognitiveLoad

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// FactorsFor derives the disposition-side factors from a citizen's current
// state. Tone match and social reinforcement depend on the delivery context
// and are left for the caller to fill in.
func FactorsFor(c *citizens.Citizen) Factors {
	load := 0.6*c.State.Stress + 0.4*c.State.CognitiveDissonance
	if load > 1 {
		load = 1
	}
	return Factors{
		TrustInDivine:        c.State.TrustInGod,
		EmotionalSensitivity: c.Attributes.EmotionalSensitivity,
		Curiosity:            c.Attributes.CuriosityAboutDivinity,
		CognitiveLoad:        load,
	}
}
