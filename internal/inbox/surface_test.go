package inbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/god-world/internal/citizens"
)

func plainCitizen() *citizens.Citizen {
	return &citizens.Citizen{
		ID:   "c1",
		Name: "Orin Thorne",
		Attributes: citizens.Attributes{
			CuriosityAboutDivinity: 0.3,
		},
		State: citizens.DynamicState{Stress: 0.4},
	}
}

func TestShouldSurfaceDirectDivineReference(t *testing.T) {
	d := ShouldSurface("I wonder if god hears any of this", plainCitizen(), WorldContext{})
	require.True(t, d.ShouldSurface)
	assert.Contains(t, d.Reasons, "direct_divine_reference")
	assert.InDelta(t, 0.5, d.Relevance, 1e-9)
}

func TestShouldSurfaceCuriosityTrigger(t *testing.T) {
	curious := plainCitizen()
	curious.Attributes.CuriosityAboutDivinity = 0.8

	// Curiosity alone scores 0.3 — below the floor, not surfaced.
	d := ShouldSurface("I keep looking for a sign in everything", curious, WorldContext{})
	assert.False(t, d.ShouldSurface)
	assert.Contains(t, d.Reasons, "high_divinity_curiosity")
	assert.InDelta(t, 0.3, d.Relevance, 1e-9)

	// The same text from a less curious citizen does not trigger at all.
	d = ShouldSurface("I keep looking for a sign in everything", plainCitizen(), WorldContext{})
	assert.Empty(t, d.Reasons)
}

func TestShouldSurfaceCrisisLanguage(t *testing.T) {
	text := "I am desperate and afraid"

	// Crisis words alone do not fire without the contextual gate.
	d := ShouldSurface(text, plainCitizen(), WorldContext{})
	assert.False(t, d.ShouldSurface)
	assert.Empty(t, d.Reasons)

	// A recent crisis opens the gate; 0.4 still sits under the floor.
	d = ShouldSurface(text, plainCitizen(), WorldContext{RecentCrisis: true})
	assert.False(t, d.ShouldSurface)
	assert.Contains(t, d.Reasons, "crisis_language")

	// High personal stress opens it too.
	stressed := plainCitizen()
	stressed.State.Stress = 0.8
	d = ShouldSurface(text, stressed, WorldContext{})
	assert.Contains(t, d.Reasons, "crisis_language")
}

func TestShouldSurfaceCombinedTriggersCrossFloor(t *testing.T) {
	curious := plainCitizen()
	curious.Attributes.CuriosityAboutDivinity = 0.9
	curious.State.Stress = 0.9

	// Curiosity (0.3) + crisis (0.4) = 0.7 ≥ floor, no direct reference needed.
	d := ShouldSurface("I pray for help, I am afraid of what comes", curious, WorldContext{})
	require.True(t, d.ShouldSurface)
	assert.Len(t, d.Reasons, 2)
	assert.InDelta(t, 0.7, d.Relevance, 1e-9)
}

func TestShouldSurfaceRelevanceCapped(t *testing.T) {
	curious := plainCitizen()
	curious.Attributes.CuriosityAboutDivinity = 0.9
	curious.State.Stress = 0.9

	d := ShouldSurface("God help me, I pray, I am so afraid", curious, WorldContext{RecentCrisis: true})
	require.True(t, d.ShouldSurface)
	assert.Equal(t, 1.0, d.Relevance)
	assert.Len(t, d.Reasons, 3)
}

func TestShouldSurfaceMundaneText(t *testing.T) {
	d := ShouldSurface("The fence needs mending before winter", plainCitizen(), WorldContext{})
	assert.False(t, d.ShouldSurface)
	assert.Zero(t, d.Relevance)
	assert.Empty(t, d.Reasons)
}
