// Archetype templates — each biases the attribute and consent sampling so a
// freshly spawned population carries a spread of dispositions toward peers
// and toward the divine.
package citizens

// attributeBias shifts the center of a sampled attribute. Sampling adds a
// uniform jitter of ±0.15 around the center, then clamps to the legal range.
type attributeBias struct {
	Sensitivity float64 // center of emotionalSensitivity
	TrustBias   float64 // center of authorityTrustBias
	Influence   float64 // center of socialInfluencePotential
	Curiosity   float64 // center of curiosityAboutDivinity

	// Consent centers.
	EmotionalConsent float64
	PacingLimit      float64
	Resistance       float64

	// Starting state centers.
	Hope       float64
	TrustGod   float64
	TrustPeers float64
}

var archetypeTemplates = map[Archetype]attributeBias{
	ArchDevoutFollower: {
		Sensitivity: 0.7, TrustBias: 0.7, Influence: 0.5, Curiosity: 0.8,
		EmotionalConsent: 0.8, PacingLimit: 0.8, Resistance: 0.2,
		Hope: 0.7, TrustGod: 0.5, TrustPeers: 0.6,
	},
	ArchSkepticalRebel: {
		Sensitivity: 0.4, TrustBias: -0.7, Influence: 0.7, Curiosity: 0.3,
		EmotionalConsent: 0.4, PacingLimit: 0.3, Resistance: 0.9,
		Hope: 0.4, TrustGod: -0.4, TrustPeers: 0.5,
	},
	ArchQuietSeeker: {
		Sensitivity: 0.6, TrustBias: 0.1, Influence: 0.2, Curiosity: 0.7,
		EmotionalConsent: 0.6, PacingLimit: 0.5, Resistance: 0.4,
		Hope: 0.5, TrustGod: 0.1, TrustPeers: 0.4,
	},
	ArchRestlessMystic: {
		Sensitivity: 0.9, TrustBias: 0.3, Influence: 0.6, Curiosity: 0.9,
		EmotionalConsent: 0.7, PacingLimit: 0.7, Resistance: 0.3,
		Hope: 0.6, TrustGod: 0.3, TrustPeers: 0.3,
	},
	ArchGroundedStoic: {
		Sensitivity: 0.2, TrustBias: 0.0, Influence: 0.4, Curiosity: 0.3,
		EmotionalConsent: 0.5, PacingLimit: 0.4, Resistance: 0.6,
		Hope: 0.5, TrustGod: 0.0, TrustPeers: 0.7,
	},
	ArchAnxiousCaretaker: {
		Sensitivity: 0.8, TrustBias: 0.2, Influence: 0.5, Curiosity: 0.5,
		EmotionalConsent: 0.6, PacingLimit: 0.5, Resistance: 0.4,
		Hope: 0.4, TrustGod: 0.2, TrustPeers: 0.8,
	},
	ArchCuriousScholar: {
		Sensitivity: 0.4, TrustBias: -0.2, Influence: 0.5, Curiosity: 0.8,
		EmotionalConsent: 0.6, PacingLimit: 0.6, Resistance: 0.5,
		Hope: 0.6, TrustGod: -0.1, TrustPeers: 0.5,
	},
	ArchWearyPragmatist: {
		Sensitivity: 0.3, TrustBias: -0.3, Influence: 0.3, Curiosity: 0.2,
		EmotionalConsent: 0.5, PacingLimit: 0.4, Resistance: 0.7,
		Hope: 0.3, TrustGod: -0.2, TrustPeers: 0.6,
	},
}

// AllArchetypes lists every archetype in spawn rotation order.
var AllArchetypes = []Archetype{
	ArchDevoutFollower,
	ArchSkepticalRebel,
	ArchQuietSeeker,
	ArchRestlessMystic,
	ArchGroundedStoic,
	ArchAnxiousCaretaker,
	ArchCuriousScholar,
	ArchWearyPragmatist,
}
