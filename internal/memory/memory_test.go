package memory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	m := New("c1", "the rain came early", 7, nil)
	assert.Equal(t, ShortTerm, m.Type)
	assert.False(t, m.IsDivine)
	assert.Equal(t, 0.5, m.Importance)
	assert.Equal(t, defaultDecayRate, m.DecayRate)
	assert.Equal(t, int64(7), m.FormedAtTick)
	assert.NotEmpty(t, m.ID)
}

func TestNewDivineForcesInvariants(t *testing.T) {
	m := NewDivine("c1", "a voice in the dark", 3, -0.4)
	assert.True(t, m.IsDivine)
	assert.Equal(t, DivineInteraction, m.Type)
	assert.Equal(t, 1.0, m.Importance)
	assert.Equal(t, 0.0, m.DecayRate)
	assert.Equal(t, -0.4, m.EmotionalWeight)
}

func TestProcessDecayLinear(t *testing.T) {
	m := New("c1", "a hard winter", 0, &Options{Importance: 0.9, DecayRate: 0.1})
	kept := ProcessDecay([]Memory{m}, 2)

	require.Len(t, kept, 1)
	assert.InDelta(t, 0.7, kept[0].Importance, 1e-9)
}

func TestProcessDecayForgets(t *testing.T) {
	m := New("c1", "a passing remark", 0, &Options{Importance: 0.15, DecayRate: 0.001})

	// After 10 ticks importance is 0.14 — still above the forget threshold.
	assert.Len(t, ProcessDecay([]Memory{m}, 10), 1)

	// After 60 ticks it drops to 0.09 and is forgotten.
	assert.Empty(t, ProcessDecay([]Memory{m}, 60))
}

func TestProcessDecayDivineImmune(t *testing.T) {
	m := NewDivine("c1", "the presence", 0, 0.8)
	for _, tick := range []int64{1, 100, 10_000, 1_000_000} {
		kept := ProcessDecay([]Memory{m}, tick)
		require.Len(t, kept, 1, "tick %d", tick)
		assert.Equal(t, m, kept[0], "divine memory must be unchanged at tick %d", tick)
	}
}

func TestProcessDecayDoesNotMutateInput(t *testing.T) {
	in := []Memory{New("c1", "x", 0, &Options{Importance: 0.9, DecayRate: 0.1})}
	_ = ProcessDecay(in, 5)
	assert.Equal(t, 0.9, in[0].Importance)
}

func TestShouldConvertToLongTerm(t *testing.T) {
	base := New("c1", "x", 0, nil)

	high := base
	high.Importance = 0.85
	assert.True(t, ShouldConvertToLongTerm(high))

	charged := base
	charged.EmotionalWeight = -0.85
	assert.True(t, ShouldConvertToLongTerm(charged))

	boundary := base
	boundary.Importance = 0.8
	assert.False(t, ShouldConvertToLongTerm(boundary), "threshold is strict")

	longTerm := high
	longTerm.Type = LongTerm
	assert.False(t, ShouldConvertToLongTerm(longTerm))
}

func TestConvertToLongTermPreservesContent(t *testing.T) {
	m := New("c1", "the day the river froze", 4, &Options{Importance: 0.9, EmotionalWeight: 0.6})
	converted := ConvertToLongTerm(m)

	assert.Equal(t, LongTerm, converted.Type)
	assert.Equal(t, longTermDecayRate, converted.DecayRate)
	assert.Equal(t, m.Content, converted.Content)
	assert.Equal(t, m.Importance, converted.Importance)
	assert.Equal(t, m.EmotionalWeight, converted.EmotionalWeight)
	assert.Equal(t, m.ID, converted.ID)
}

func TestPruneRetentionCap(t *testing.T) {
	var stream []Memory
	for i := 0; i < 100; i++ {
		m := New("c1", fmt.Sprintf("event %d", i), int64(i), &Options{
			Importance: 0.2 + 0.006*float64(i), // strictly increasing
		})
		stream = append(stream, m)
	}
	stream = append(stream,
		NewDivine("c1", "first contact", 10, 0.5),
		NewDivine("c1", "second contact", 90, -0.2),
	)

	pruned := Prune(stream)
	require.Len(t, pruned, RetentionCap+2)

	divineKept := 0
	minKept := 2.0
	for _, m := range pruned {
		if m.IsDivine {
			divineKept++
			continue
		}
		if m.Importance < minKept {
			minKept = m.Importance
		}
	}
	assert.Equal(t, 2, divineKept, "divine memories never compete for the cap")
	// The 50 most important ordinaries survive: the least of them is the 51st
	// from the top of the importance ramp.
	assert.InDelta(t, 0.2+0.006*50, minKept, 1e-9)
}

func TestPruneUnderCapUntouched(t *testing.T) {
	stream := []Memory{
		New("c1", "a", 0, nil),
		New("c1", "b", 1, nil),
	}
	assert.Len(t, Prune(stream), 2)
}

func TestMaintainPromotesThenPrunes(t *testing.T) {
	stream := []Memory{
		New("c1", "a vivid sign", 0, &Options{Importance: 0.95, DecayRate: 0.001}),
		New("c1", "an old rumor", 0, &Options{Importance: 0.12, DecayRate: 0.01}),
	}
	out := Maintain(stream, 5)

	require.Len(t, out, 1, "the faded rumor is forgotten")
	assert.Equal(t, LongTerm, out[0].Type, "the vivid memory is promoted")
	assert.Equal(t, "a vivid sign", out[0].Content)
}
