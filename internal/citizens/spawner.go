// Citizen spawning — creates the initial roster from the world configuration.
// All randomness comes from the injected entropy source so worlds are
// reproducible from a seed.
package citizens

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/talgya/god-world/internal/config"
	"github.com/talgya/god-world/internal/entropy"
)

// Spawner creates citizens for a world.
type Spawner struct {
	rng entropy.Source
}

// NewSpawner creates a citizen spawner drawing from the given source.
func NewSpawner(rng entropy.Source) *Spawner {
	return &Spawner{rng: rng}
}

var givenNames = []string{
	"Asha", "Bram", "Cael", "Dara", "Edran", "Fenna", "Garrin", "Hale",
	"Ilsa", "Joren", "Kestrel", "Lira", "Maren", "Noor", "Orin", "Petra",
	"Quill", "Rowan", "Sera", "Tamsin", "Ulric", "Vesna", "Wren", "Yara",
}

var familyNames = []string{
	"Ashford", "Briar", "Coldwell", "Duskmere", "Elmsworth", "Fairwind",
	"Greyson", "Hollow", "Ivenmoor", "Kessler", "Larkspur", "Morrow",
	"Nightingale", "Oakhart", "Pryce", "Quenby", "Ravenscroft", "Stillwater",
	"Thorne", "Underhill", "Vale", "Winterbourne",
}

// SpawnPopulation creates the initial roster for a world.
func (s *Spawner) SpawnPopulation(worldID string, cfg config.WorldConfig) []*Citizen {
	roster := make([]*Citizen, 0, cfg.PopulationSize)
	for i := 0; i < cfg.PopulationSize; i++ {
		arch := AllArchetypes[i%len(AllArchetypes)]
		roster = append(roster, s.spawnOne(worldID, arch, cfg))
	}
	return roster
}

func (s *Spawner) spawnOne(worldID string, arch Archetype, cfg config.WorldConfig) *Citizen {
	tmpl := archetypeTemplates[arch]

	attrs := Attributes{
		Archetype:                arch,
		EmotionalSensitivity:     s.jitter(tmpl.Sensitivity, 0, 1),
		AuthorityTrustBias:       s.jitter(tmpl.TrustBias, -1, 1),
		SocialInfluencePotential: s.jitter(tmpl.Influence, 0, 1),
		CuriosityAboutDivinity:   s.jitter(tmpl.Curiosity, 0, 1),
	}

	// Authority skepticism in the world config pushes everyone's trust bias
	// and resistance in the skeptical direction.
	attrs.AuthorityTrustBias = clamp(attrs.AuthorityTrustBias-0.4*cfg.AuthoritySkepticism, -1, 1)

	consent := Consent{
		EmotionalConsent:         s.jitter(tmpl.EmotionalConsent, 0.1, 1),
		RelationalPacingLimit:    s.jitter(tmpl.PacingLimit, 0.1, 1),
		AuthorityResistanceCurve: clamp(s.jitter(tmpl.Resistance, 0, 1)+0.3*cfg.AuthoritySkepticism, 0, 1),
	}

	state := DynamicState{
		Mood:         s.jitter(0.1, -1, 1),
		Stress:       s.jitter(0.3, 0, 1),
		Hope:         s.jitter(tmpl.Hope, 0, 1),
		TrustInPeers: s.jitter(tmpl.TrustPeers, 0, 1),
		TrustInGod:   s.jitter(tmpl.TrustGod, -1, 1),
	}

	c := &Citizen{
		ID:             uuid.NewString(),
		WorldID:        worldID,
		Name:           s.generateName(),
		Attributes:     attrs,
		State:          state,
		Consent:        consent,
		Beliefs:        s.seedBeliefs(cfg),
		LastDivineTick: -1,
	}
	return c
}

// seedBeliefs gives a citizen one to three starting beliefs. Cultural entropy
// widens the stance spread; belief plasticity lowers starting confidence.
func (s *Spawner) seedBeliefs(cfg config.WorldConfig) []Belief {
	topics := []string{
		"the divine watches over us",
		"hard work is rewarded",
		"the community comes first",
		"change is dangerous",
		"suffering has meaning",
	}

	count := 1 + s.rng.Intn(3)
	beliefs := make([]Belief, 0, count)
	for i := 0; i < count; i++ {
		spread := 0.4 + 0.6*cfg.CulturalEntropy
		beliefs = append(beliefs, Belief{
			Topic:      topics[s.rng.Intn(len(topics))],
			Stance:     (s.rng.Float()*2 - 1) * spread,
			Confidence: clamp(0.7-0.4*cfg.BeliefPlasticity+s.rng.Float()*0.2, 0, 1),
			Origin:     OriginInnate,
		})
	}
	return beliefs
}

func (s *Spawner) generateName() string {
	given := givenNames[s.rng.Intn(len(givenNames))]
	family := familyNames[s.rng.Intn(len(familyNames))]
	return fmt.Sprintf("%s %s", given, family)
}

// jitter samples a value around center with ±0.15 uniform noise, clamped.
func (s *Spawner) jitter(center, lo, hi float64) float64 {
	return clamp(center+(s.rng.Float()*0.3-0.15), lo, hi)
}
