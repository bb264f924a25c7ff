package inbox

import (
	"strings"

	"github.com/talgya/god-world/internal/citizens"
)

// relevanceFloor is the minimum cumulative score that surfaces an item when
// no always-surface trigger fired.
const relevanceFloor = 0.5

// WorldContext carries the world-level signals the surfacing triggers need.
type WorldContext struct {
	RecentCrisis bool // a crisis event occurred within the last few ticks
}

// SurfaceDecision is the outcome of the surfacing evaluation.
type SurfaceDecision struct {
	ShouldSurface bool     `json:"should_surface"`
	Reasons       []string `json:"reasons"`
	Relevance     float64  `json:"relevance"` // [0,1]
}

var divineDirectWords = []string{
	"god", "divine", "creator", "almighty", "heaven", "the voice above",
}

var divineAdjacentWords = []string{
	"faith", "believe", "pray", "sacred", "spirit", "sign", "miracle",
	"destiny", "fate", "blessing",
}

var crisisWords = []string{
	"help", "desperate", "afraid", "terrified", "dying", "starving",
	"can't go on", "cannot go on", "breaking",
}

func containsAny(lowered string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lowered, w) {
			return true
		}
	}
	return false
}

// ShouldSurface evaluates the independent surfacing triggers against a text.
// Each fired trigger adds to the cumulative relevance and contributes a
// reason tag. A direct divine reference always surfaces regardless of score;
// otherwise the item surfaces when relevance crosses the floor.
func ShouldSurface(text string, citizen *citizens.Citizen, world WorldContext) SurfaceDecision {
	lowered := strings.ToLower(text)

	var decision SurfaceDecision
	alwaysSurface := false

	if containsAny(lowered, divineDirectWords) {
		decision.Relevance += 0.5
		decision.Reasons = append(decision.Reasons, "direct_divine_reference")
		alwaysSurface = true
	}

	if citizen.Attributes.CuriosityAboutDivinity > 0.7 && containsAny(lowered, divineAdjacentWords) {
		decision.Relevance += 0.3
		decision.Reasons = append(decision.Reasons, "high_divinity_curiosity")
	}

	if containsAny(lowered, crisisWords) && (world.RecentCrisis || citizen.State.Stress > 0.7) {
		decision.Relevance += 0.4
		decision.Reasons = append(decision.Reasons, "crisis_language")
	}

	if decision.Relevance > 1 {
		decision.Relevance = 1
	}
	decision.ShouldSurface = alwaysSurface || decision.Relevance >= relevanceFloor
	return decision
}
