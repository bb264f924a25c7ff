package citizens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneIsDeep(t *testing.T) {
	original := &Citizen{
		ID:   "c1",
		Name: "Wren Hollow",
		Beliefs: []Belief{
			{Topic: "hard work is rewarded", Stance: 0.5, Confidence: 0.8},
		},
		State: DynamicState{Mood: 0.2},
	}

	cp := original.Clone()
	cp.State.Mood = -0.9
	cp.Beliefs[0].Stance = -1

	assert.Equal(t, 0.2, original.State.Mood)
	assert.Equal(t, 0.5, original.Beliefs[0].Stance)
}

func TestClampState(t *testing.T) {
	s := DynamicState{
		Mood:                2,
		Stress:              -0.5,
		Hope:                1.4,
		TrustInPeers:        -1,
		TrustInGod:          -3,
		CognitiveDissonance: 9,
	}
	s.ClampState()

	assert.Equal(t, DynamicState{
		Mood:                1,
		Stress:              0,
		Hope:                1,
		TrustInPeers:        0,
		TrustInGod:          -1,
		CognitiveDissonance: 1,
	}, s)
}

func TestApplyEmotionalShiftPositive(t *testing.T) {
	c := &Citizen{
		Attributes: Attributes{EmotionalSensitivity: 1},
		State:      DynamicState{Mood: 0, Hope: 0.5, Stress: 0.5},
	}
	c.ApplyEmotionalShift(1, 0.3)

	// delta = 0.3 * (0.5 + 0.5*1.0) = 0.3 at full sensitivity.
	assert.InDelta(t, 0.3, c.State.Mood, 1e-9)
	assert.InDelta(t, 0.65, c.State.Hope, 1e-9)
	assert.InDelta(t, 0.38, c.State.Stress, 1e-9)
}

func TestApplyEmotionalShiftSensitivityScales(t *testing.T) {
	numb := &Citizen{Attributes: Attributes{EmotionalSensitivity: 0}}
	raw := &Citizen{Attributes: Attributes{EmotionalSensitivity: 1}}
	numb.ApplyEmotionalShift(1, 0.4)
	raw.ApplyEmotionalShift(1, 0.4)

	assert.Less(t, numb.State.Mood, raw.State.Mood)
	assert.InDelta(t, 0.2, numb.State.Mood, 1e-9, "half effect at zero sensitivity")
}

func TestApplyEmotionalShiftNeutralNoop(t *testing.T) {
	c := &Citizen{State: DynamicState{Mood: 0.4, Hope: 0.4, Stress: 0.4}}
	before := c.State
	c.ApplyEmotionalShift(0, 0.5)
	assert.Equal(t, before, c.State)
}

func TestApplyEmotionalShiftStaysBounded(t *testing.T) {
	c := &Citizen{
		Attributes: Attributes{EmotionalSensitivity: 1},
		State:      DynamicState{Mood: 0.9, Hope: 0.95, Stress: 0.05},
	}
	for i := 0; i < 10; i++ {
		c.ApplyEmotionalShift(1, 1)
	}
	require.LessOrEqual(t, c.State.Mood, 1.0)
	require.GreaterOrEqual(t, c.State.Stress, 0.0)
	require.LessOrEqual(t, c.State.Hope, 1.0)
}
