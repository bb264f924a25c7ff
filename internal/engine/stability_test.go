package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/god-world/internal/citizens"
)

func rosterWithState(n int, state citizens.DynamicState) []*citizens.Citizen {
	out := make([]*citizens.Citizen, n)
	for i := range out {
		out[i] = &citizens.Citizen{ID: string(rune('a' + i)), State: state}
	}
	return out
}

func TestCalculateWorldStabilityEmpty(t *testing.T) {
	assert.Equal(t, 1.0, CalculateWorldStability(nil))
}

func TestCalculateWorldStabilityCalm(t *testing.T) {
	roster := rosterWithState(5, citizens.DynamicState{
		Stress:              0,
		CognitiveDissonance: 0,
		TrustInPeers:        1,
	})
	assert.InDelta(t, 1.0, CalculateWorldStability(roster), 1e-9)
}

func TestCalculateWorldStabilityWorstCase(t *testing.T) {
	roster := rosterWithState(5, citizens.DynamicState{
		Stress:              1,
		CognitiveDissonance: 1,
		TrustInPeers:        0,
	})
	assert.InDelta(t, 0.0, CalculateWorldStability(roster), 1e-9)
}

func TestCalculateWorldStabilityMonotonicInStress(t *testing.T) {
	base := citizens.DynamicState{Stress: 0.2, CognitiveDissonance: 0.2, TrustInPeers: 0.7}
	stressed := base
	stressed.Stress = 0.8

	calm := CalculateWorldStability(rosterWithState(4, base))
	tense := CalculateWorldStability(rosterWithState(4, stressed))
	assert.Greater(t, calm, tense)
}

func TestCalculateWorldStabilityKnownValue(t *testing.T) {
	roster := rosterWithState(3, citizens.DynamicState{
		Stress:              0.4,
		CognitiveDissonance: 0.2,
		TrustInPeers:        0.5,
	})
	// 1 - 0.35*0.4 - 0.35*0.2 - 0.30*0.5 = 0.64
	assert.InDelta(t, 0.64, CalculateWorldStability(roster), 1e-9)
}

func TestIsInfluenceOnCooldown(t *testing.T) {
	assert.False(t, IsInfluenceOnCooldown(-1, 100, 3), "never influenced")
	assert.False(t, IsInfluenceOnCooldown(97, 100, 3), "boundary is exclusive")
	assert.True(t, IsInfluenceOnCooldown(98, 100, 3))
	assert.True(t, IsInfluenceOnCooldown(100, 100, 3), "same tick")
	assert.False(t, IsInfluenceOnCooldown(50, 100, 0), "zero cooldown never blocks")
}
