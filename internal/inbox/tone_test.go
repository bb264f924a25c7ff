package inbox

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/god-world/internal/divine"
)

func TestSuggestResponseTone(t *testing.T) {
	cases := []struct {
		category Category
		want     divine.WhisperTone
	}{
		{CategoryCrisisCall, divine.ToneComforting},
		{CategoryAccusation, divine.ToneGentle},
		{CategoryDoubt, divine.ToneMysterious},
		{CategoryQuestion, divine.ToneQuestioning},
		{CategoryPraise, divine.ToneWarm},
		{CategoryTestimony, divine.ToneMysterious},
	}
	for _, tc := range cases {
		t.Run(string(tc.category), func(t *testing.T) {
			assert.Equal(t, tc.want, SuggestResponseTone(Item{Category: tc.category}))
		})
	}
}

func TestSuggestResponseTonePrayerStressBranch(t *testing.T) {
	calm := Item{Category: CategoryPrayer, Snapshot: CitizenSnapshot{Stress: 0.3}}
	assert.Equal(t, divine.ToneWarm, SuggestResponseTone(calm))

	strained := Item{Category: CategoryPrayer, Snapshot: CitizenSnapshot{Stress: 0.8}}
	assert.Equal(t, divine.ToneComforting, SuggestResponseTone(strained))
}

func TestNewItemClassifies(t *testing.T) {
	surf := SurfaceDecision{ShouldSurface: true, Relevance: 0.6, Reasons: []string{"direct_divine_reference"}}
	item := NewItem("w1", "c1", "Sera Morrow", "Please, god, watch over us", surf, CitizenSnapshot{Stress: 0.2}, 30)

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, CategoryPrayer, item.Category)
	assert.Equal(t, 0.6, item.Relevance)
	assert.Equal(t, int64(30), item.Tick)
	assert.Nil(t, item.SeenAt)
	assert.Nil(t, item.RespondedAt)
}
