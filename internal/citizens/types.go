// Package citizens provides the citizen data model: fixed attributes set at
// creation, mutable dynamic state, consent parameters, and beliefs.
package citizens

import "time"

// Archetype is the personality template assigned at creation. It biases how
// a citizen relates to peers and to the divine.
type Archetype string

const (
	ArchDevoutFollower   Archetype = "devout_follower"
	ArchSkepticalRebel   Archetype = "skeptical_rebel"
	ArchQuietSeeker      Archetype = "quiet_seeker"
	ArchRestlessMystic   Archetype = "restless_mystic"
	ArchGroundedStoic    Archetype = "grounded_stoic"
	ArchAnxiousCaretaker Archetype = "anxious_caretaker"
	ArchCuriousScholar   Archetype = "curious_scholar"
	ArchWearyPragmatist  Archetype = "weary_pragmatist"
)

// Attributes are fixed at creation and never change.
type Attributes struct {
	Archetype                Archetype `json:"archetype"`
	EmotionalSensitivity     float64   `json:"emotional_sensitivity"`      // [0,1]
	AuthorityTrustBias       float64   `json:"authority_trust_bias"`       // [-1,1]
	SocialInfluencePotential float64   `json:"social_influence_potential"` // [0,1]
	CuriosityAboutDivinity   float64   `json:"curiosity_about_divinity"`   // [0,1]
}

// DynamicState is the mutable per-citizen state updated each tick.
type DynamicState struct {
	Mood                float64 `json:"mood"`                 // [-1,1]
	Stress              float64 `json:"stress"`               // [0,1]
	Hope                float64 `json:"hope"`                 // [0,1]
	TrustInPeers        float64 `json:"trust_in_peers"`       // [0,1]
	TrustInGod          float64 `json:"trust_in_god"`         // [-1,1]
	CognitiveDissonance float64 `json:"cognitive_dissonance"` // [0,1]
}

// Consent parameters are fixed at creation and never silently overridden.
// Divine actions that exceed them are denied, not clamped.
type Consent struct {
	EmotionalConsent         float64 `json:"emotional_consent"`          // [0,1] intensity ceiling
	RelationalPacingLimit    float64 `json:"relational_pacing_limit"`    // [0,1] higher = tolerates more frequent contact
	AuthorityResistanceCurve float64 `json:"authority_resistance_curve"` // [0,1] higher = resists authority harder
}

// BeliefOrigin records where a belief came from.
type BeliefOrigin string

const (
	OriginInnate     BeliefOrigin = "innate"
	OriginExperience BeliefOrigin = "experience"
	OriginPeer       BeliefOrigin = "peer"
	OriginDivine     BeliefOrigin = "divine"
)

// Belief is a held position on a topic.
type Belief struct {
	Topic        string       `json:"topic"`
	Stance       float64      `json:"stance"`     // [-1,1]
	Confidence   float64      `json:"confidence"` // [0,1]
	Origin       BeliefOrigin `json:"origin"`
	FormedAtTick int64        `json:"formed_at_tick"`
}

// Citizen is an autonomous simulated agent.
type Citizen struct {
	ID      string `json:"id"` // UUID
	WorldID string `json:"world_id"`
	Name    string `json:"name"`

	Attributes Attributes   `json:"attributes"`
	State      DynamicState `json:"state"`
	Consent    Consent      `json:"consent"`
	Beliefs    []Belief     `json:"beliefs"`

	// LastDivineTick is the tick of the most recent divine interaction
	// targeting this citizen, -1 if never touched.
	LastDivineTick int64 `json:"last_divine_tick"`

	CreatedAtTick  int64     `json:"created_at_tick"`
	LastActiveTick int64     `json:"last_active_tick"`
	CreatedAt      time.Time `json:"created_at"`
}

// Clone returns a deep copy. The orchestrator works on clones so its inputs
// are never mutated.
func (c *Citizen) Clone() *Citizen {
	cp := *c
	cp.Beliefs = make([]Belief, len(c.Beliefs))
	copy(cp.Beliefs, c.Beliefs)
	return &cp
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampState forces every dynamic value back into its bounded range.
func (s *DynamicState) ClampState() {
	s.Mood = clamp(s.Mood, -1, 1)
	s.Stress = clamp(s.Stress, 0, 1)
	s.Hope = clamp(s.Hope, 0, 1)
	s.TrustInPeers = clamp(s.TrustInPeers, 0, 1)
	s.TrustInGod = clamp(s.TrustInGod, -1, 1)
	s.CognitiveDissonance = clamp(s.CognitiveDissonance, 0, 1)
}

// ApplyEmotionalShift nudges the citizen's state in the given direction
// (+1 positive, -1 negative, 0 neutral) at the given intensity, scaled by
// emotional sensitivity. All results stay in range.
func (c *Citizen) ApplyEmotionalShift(direction float64, intensity float64) {
	if direction == 0 || intensity == 0 {
		return
	}
	delta := direction * intensity * (0.5 + 0.5*c.Attributes.EmotionalSensitivity)
	c.State.Mood += delta
	c.State.Hope += delta * 0.5
	c.State.Stress -= delta * 0.4 // Positive shifts relieve stress.
	c.State.ClampState()
}
