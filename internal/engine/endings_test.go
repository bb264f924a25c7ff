package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/god-world/internal/citizens"
)

func worldAtTick(tick int64) WorldState {
	return WorldState{ID: "w1", CurrentTick: tick, Status: StatusActive}
}

func TestEvaluateEndConditionGodIrrelevant(t *testing.T) {
	roster := rosterWithState(10, citizens.DynamicState{TrustInGod: -0.8, Hope: 0.5})

	end, ended := EvaluateEndCondition(worldAtTick(150), roster)
	require.True(t, ended)
	assert.Equal(t, EndGodIrrelevant, end)
}

func TestEvaluateEndConditionTickFloor(t *testing.T) {
	roster := rosterWithState(10, citizens.DynamicState{TrustInGod: -0.8})

	_, ended := EvaluateEndCondition(worldAtTick(50), roster)
	assert.False(t, ended, "god_irrelevant requires tick > 100")

	_, ended = EvaluateEndCondition(worldAtTick(100), roster)
	assert.False(t, ended, "tick floor is strict")
}

func TestEvaluateEndConditionSocietyTranscends(t *testing.T) {
	roster := rosterWithState(8, citizens.DynamicState{
		Hope:       0.9,
		Stress:     0.1,
		TrustInGod: 0.1,
	})

	end, ended := EvaluateEndCondition(worldAtTick(250), roster)
	require.True(t, ended)
	assert.Equal(t, EndSocietyTranscends, end)

	_, ended = EvaluateEndCondition(worldAtTick(200), roster)
	assert.False(t, ended, "transcendence requires tick > 200")
}

func TestEvaluateEndConditionFragmentation(t *testing.T) {
	roster := rosterWithState(6, citizens.DynamicState{
		CognitiveDissonance: 0.8,
		TrustInPeers:        0.2,
		TrustInGod:          0.1,
	})

	end, ended := EvaluateEndCondition(worldAtTick(200), roster)
	require.True(t, ended)
	assert.Equal(t, EndCulturalFragmentation, end)
}

func TestEvaluateEndConditionPriorityOrder(t *testing.T) {
	// State satisfying both god_irrelevant and fragmentation: the first rule
	// in priority order wins.
	roster := rosterWithState(6, citizens.DynamicState{
		TrustInGod:          -0.9,
		CognitiveDissonance: 0.9,
		TrustInPeers:        0.1,
	})

	end, ended := EvaluateEndCondition(worldAtTick(300), roster)
	require.True(t, ended)
	assert.Equal(t, EndGodIrrelevant, end)
}

func TestEvaluateEndConditionHealthyWorld(t *testing.T) {
	roster := rosterWithState(10, citizens.DynamicState{
		Hope:         0.6,
		Stress:       0.3,
		TrustInGod:   0.4,
		TrustInPeers: 0.6,
	})
	_, ended := EvaluateEndCondition(worldAtTick(1000), roster)
	assert.False(t, ended)
}

func TestEvaluateEndConditionEmptyRoster(t *testing.T) {
	_, ended := EvaluateEndCondition(worldAtTick(500), nil)
	assert.False(t, ended)
}

func TestEndingDescriptionsCoverAllStates(t *testing.T) {
	for _, end := range []EndState{EndGodIrrelevant, EndSocietyTranscends, EndCulturalFragmentation} {
		assert.NotEmpty(t, endingDescriptions[end])
	}
}
