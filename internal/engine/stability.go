package engine

import "github.com/talgya/god-world/internal/citizens"

// IsInfluenceOnCooldown reports whether a new influence on a citizen would
// arrive too soon after the last one. The cooldown is exclusive: an
// influence exactly cooldown ticks after the last is allowed.
func IsInfluenceOnCooldown(lastTick, currentTick, cooldown int64) bool {
	if lastTick < 0 {
		return false
	}
	return currentTick-lastTick < cooldown
}

// Stability weights. Each term is bounded so the raw score stays in [0,1]
// for in-range inputs.
const (
	stabilityStressWeight     = 0.35
	stabilityDissonanceWeight = 0.35
	stabilityPeerTrustWeight  = 0.30
)

// CalculateWorldStability aggregates population state into a single [0,1]
// score. An empty population is perfectly stable. Stability falls as average
// stress and dissonance rise and rises with average peer trust.
func CalculateWorldStability(roster []*citizens.Citizen) float64 {
	if len(roster) == 0 {
		return 1
	}

	var stress, dissonance, peerTrust float64
	for _, c := range roster {
		stress += c.State.Stress
		dissonance += c.State.CognitiveDissonance
		peerTrust += c.State.TrustInPeers
	}
	n := float64(len(roster))
	stress /= n
	dissonance /= n
	peerTrust /= n

	score := 1 -
		stabilityStressWeight*stress -
		stabilityDissonanceWeight*dissonance -
		stabilityPeerTrustWeight*(1-peerTrust)

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
