package whisper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/god-world/internal/citizens"
)

func TestReceptivityBounds(t *testing.T) {
	floor := Receptivity(Factors{
		TrustInDivine: -1,
		CognitiveLoad: 1,
	})
	assert.Equal(t, 0.0, floor)

	ceiling := Receptivity(Factors{
		TrustInDivine:        1,
		EmotionalSensitivity: 1,
		Curiosity:            1,
		ToneMatch:            1,
		History:              1,
		SocialReinforcement:  1,
	})
	assert.InDelta(t, 1.0, ceiling, 1e-9)
}

func TestReceptivityKnownValue(t *testing.T) {
	score := Receptivity(Factors{
		TrustInDivine:        0,   // base 0.5 → 0.20
		EmotionalSensitivity: 0.4, // 0.06
		Curiosity:            0.6, // 0.09
		ToneMatch:            0.5, // 0.05
		History:              0.5, // 0.05
		SocialReinforcement:  0,
		CognitiveLoad:        0.5, // -0.10
	})
	assert.InDelta(t, 0.35, score, 1e-9)
}

func TestReceptivityMonotonicInTrust(t *testing.T) {
	base := Factors{EmotionalSensitivity: 0.5, Curiosity: 0.5, CognitiveLoad: 0.3}

	low := base
	low.TrustInDivine = -0.5
	high := base
	high.TrustInDivine = 0.5

	assert.Greater(t, Receptivity(high), Receptivity(low))
}

func TestReceptivityLoadSubtracts(t *testing.T) {
	base := Factors{TrustInDivine: 0.5, Curiosity: 0.5}
	loaded := base
	loaded.CognitiveLoad = 1

	assert.Greater(t, Receptivity(base), Receptivity(loaded))
}

func TestFactorsFor(t *testing.T) {
	c := &citizens.Citizen{
		Attributes: citizens.Attributes{
			EmotionalSensitivity:   0.7,
			CuriosityAboutDivinity: 0.4,
		},
		State: citizens.DynamicState{
			TrustInGod:          -0.2,
			Stress:              0.5,
			CognitiveDissonance: 0.25,
		},
	}
	f := FactorsFor(c)

	assert.Equal(t, -0.2, f.TrustInDivine)
	assert.Equal(t, 0.7, f.EmotionalSensitivity)
	assert.Equal(t, 0.4, f.Curiosity)
	assert.InDelta(t, 0.4, f.CognitiveLoad, 1e-9) // 0.6*0.5 + 0.4*0.25
	assert.Zero(t, f.ToneMatch, "delivery context is the caller's to fill")
	assert.Zero(t, f.History)
}

func TestFactorsForLoadCapped(t *testing.T) {
	c := &citizens.Citizen{
		State: citizens.DynamicState{Stress: 1, CognitiveDissonance: 1},
	}
	assert.InDelta(t, 1.0, FactorsFor(c).CognitiveLoad, 1e-9)
}
