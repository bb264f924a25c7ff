// Package memory implements the per-citizen episodic memory lifecycle:
// creation, decay, promotion to long-term, and pruning.
//
// Divine memories are immutable with respect to decay: isDivine implies
// importance 1 and decay rate 0 for the memory's entire lifetime, and they
// never compete for the retention cap.
package memory

import (
	"github.com/google/uuid"
)

// Type classifies a memory.
type Type string

const (
	ShortTerm         Type = "short_term"
	LongTerm          Type = "long_term"
	DivineInteraction Type = "divine_interaction"
)

const (
	// RetentionCap is the maximum number of non-divine memories a citizen keeps.
	RetentionCap = 50

	// forgetThreshold drops a memory once decay pushes importance below it.
	forgetThreshold = 0.1

	// promotionThreshold marks a short-term memory for long-term conversion.
	promotionThreshold = 0.8

	defaultDecayRate  = 0.02
	longTermDecayRate = 0.002
)

// Memory is one episodic record in a citizen's stream.
type Memory struct {
	ID              string  `json:"id"`
	CitizenID       string  `json:"citizen_id"`
	Content         string  `json:"content"`
	Type            Type    `json:"type"`
	IsDivine        bool    `json:"is_divine"`
	Importance      float64 `json:"importance"`       // [0,1]
	EmotionalWeight float64 `json:"emotional_weight"` // [-1,1]
	DecayRate       float64 `json:"decay_rate"`       // per tick, >= 0
	FormedAtTick    int64   `json:"formed_at_tick"`
}

// Options override creation defaults.
type Options struct {
	Type            Type
	Importance      float64
	EmotionalWeight float64
	DecayRate       float64
}

// New creates an ordinary memory. Defaults: short_term, mid-range importance
// and neutral emotional weight, standard decay.
func New(citizenID, content string, tick int64, opts *Options) Memory {
	m := Memory{
		ID:              uuid.NewString(),
		CitizenID:       citizenID,
		Content:         content,
		Type:            ShortTerm,
		Importance:      0.5,
		EmotionalWeight: 0,
		DecayRate:       defaultDecayRate,
		FormedAtTick:    tick,
	}
	if opts != nil {
		if opts.Type != "" {
			m.Type = opts.Type
		}
		if opts.Importance != 0 {
			m.Importance = opts.Importance
		}
		if opts.EmotionalWeight != 0 {
			m.EmotionalWeight = opts.EmotionalWeight
		}
		if opts.DecayRate != 0 {
			m.DecayRate = opts.DecayRate
		}
	}
	return m
}

// NewDivine creates a divine-interaction memory. The invariant fields are
// forced regardless of caller wishes: divine memories never decay.
func NewDivine(citizenID, content string, tick int64, emotionalWeight float64) Memory {
	return Memory{
		ID:              uuid.NewString(),
		CitizenID:       citizenID,
		Content:         content,
		Type:            DivineInteraction,
		IsDivine:        true,
		Importance:      1,
		EmotionalWeight: emotionalWeight,
		DecayRate:       0,
		FormedAtTick:    tick,
	}
}

// ProcessDecay applies linear decay to every non-divine memory and drops
// those whose importance falls below the forget threshold. Divine memories
// pass through completely unchanged regardless of elapsed ticks. The input
// slice is not mutated.
func ProcessDecay(memories []Memory, currentTick int64) []Memory {
	kept := make([]Memory, 0, len(memories))
	for _, m := range memories {
		if m.IsDivine {
			kept = append(kept, m)
			continue
		}
		elapsed := currentTick - m.FormedAtTick
		if elapsed < 0 {
			elapsed = 0
		}
		decayed := m
		decayed.Importance -= decayed.DecayRate * float64(elapsed)
		if decayed.Importance < 0 {
			decayed.Importance = 0
		}
		if decayed.Importance < forgetThreshold {
			continue
		}
		kept = append(kept, decayed)
	}
	return kept
}

// ShouldConvertToLongTerm reports whether a short-term memory has earned
// long-term status: high importance or strong emotional charge either way.
func ShouldConvertToLongTerm(m Memory) bool {
	if m.Type != ShortTerm {
		return false
	}
	weight := m.EmotionalWeight
	if weight < 0 {
		weight = -weight
	}
	return m.Importance > promotionThreshold || weight > promotionThreshold
}

// ConvertToLongTerm returns the memory with long-term type and a slower decay
// rate. Content and all other fields are preserved unchanged.
func ConvertToLongTerm(m Memory) Memory {
	m.Type = LongTerm
	m.DecayRate = longTermDecayRate
	return m
}

// promoteEligible converts every qualifying short-term memory in place.
func promoteEligible(memories []Memory) []Memory {
	out := make([]Memory, len(memories))
	for i, m := range memories {
		if ShouldConvertToLongTerm(m) {
			m = ConvertToLongTerm(m)
		}
		out[i] = m
	}
	return out
}

// Maintain runs the per-tick memory upkeep for one citizen: decay, promotion,
// then pruning. The input slice is not mutated.
func Maintain(memories []Memory, currentTick int64) []Memory {
	return Prune(promoteEligible(ProcessDecay(memories, currentTick)))
}

// Prune enforces the retention cap. Divine memories are retained
// unconditionally and do not count against the cap; the remaining capacity
// goes to non-divine memories by descending importance. The input slice is
// not mutated.
func Prune(memories []Memory) []Memory {
	var divine, ordinary []Memory
	for _, m := range memories {
		if m.IsDivine {
			divine = append(divine, m)
		} else {
			ordinary = append(ordinary, m)
		}
	}

	if len(ordinary) > RetentionCap {
		// Selection by descending importance; insertion sort is fine at this
		// size and keeps order stable for equal importance.
		sorted := make([]Memory, len(ordinary))
		copy(sorted, ordinary)
		for i := 1; i < len(sorted); i++ {
			for j := i; j > 0 && sorted[j].Importance > sorted[j-1].Importance; j-- {
				sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
			}
		}
		ordinary = sorted[:RetentionCap]
	}

	out := make([]Memory, 0, len(divine)+len(ordinary))
	out = append(out, divine...)
	out = append(out, ordinary...)
	return out
}
