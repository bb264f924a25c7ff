package engine

import "github.com/talgya/god-world/internal/citizens"

// populationAverages holds the per-tick aggregate state the end-condition
// rules read.
type populationAverages struct {
	TrustInGod          float64
	Hope                float64
	Stress              float64
	CognitiveDissonance float64
	TrustInPeers        float64
}

func averageState(roster []*citizens.Citizen) populationAverages {
	var avg populationAverages
	if len(roster) == 0 {
		return avg
	}
	for _, c := range roster {
		avg.TrustInGod += c.State.TrustInGod
		avg.Hope += c.State.Hope
		avg.Stress += c.State.Stress
		avg.CognitiveDissonance += c.State.CognitiveDissonance
		avg.TrustInPeers += c.State.TrustInPeers
	}
	n := float64(len(roster))
	avg.TrustInGod /= n
	avg.Hope /= n
	avg.Stress /= n
	avg.CognitiveDissonance /= n
	avg.TrustInPeers /= n
	return avg
}

// EvaluateEndCondition checks the three terminal-state rules in fixed
// priority order. First match wins; a world matching none remains active.
func EvaluateEndCondition(world WorldState, roster []*citizens.Citizen) (EndState, bool) {
	if len(roster) == 0 {
		return "", false
	}
	avg := averageState(roster)
	tick := world.CurrentTick

	if avg.TrustInGod < -0.7 && tick > 100 {
		return EndGodIrrelevant, true
	}
	if avg.Hope > 0.8 && avg.Stress < 0.2 && avg.TrustInGod < 0.3 && tick > 200 {
		return EndSocietyTranscends, true
	}
	if avg.CognitiveDissonance > 0.7 && avg.TrustInPeers < 0.3 && tick > 150 {
		return EndCulturalFragmentation, true
	}
	return "", false
}

// endingDescription renders the feed text announcing a terminal state.
var endingDescriptions = map[EndState]string{
	EndGodIrrelevant:         "The people have stopped looking up. The divine has become a story told to children, and not a kind one",
	EndSocietyTranscends:     "Something remarkable has happened: the people flourish, and they did it themselves. They no longer need what watched over them",
	EndCulturalFragmentation: "The shared world of meaning has shattered. Neighbors no longer recognize each other's truths",
}
