package engine

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/talgya/god-world/internal/citizens"
	"github.com/talgya/god-world/internal/entropy"
)

// Emergence thresholds. A belief only counts toward a movement when it is
// both confident and strongly held; a cluster needs 30% of the population;
// and even then manifestation is probabilistic so a crossed threshold does
// not spawn a new movement every tick.
const (
	movementConfidenceFloor = 0.7
	movementStanceFloor     = 0.6
	movementPopulationShare = 0.30
	movementManifestChance  = 0.10
)

type beliefKey struct {
	topic    string
	positive bool
}

// DetectCulturalMovements aggregates strong beliefs across the full roster
// (not just the active subset) and probabilistically manifests movements for
// clusters that reach the population share.
func DetectCulturalMovements(world WorldState, roster []*citizens.Citizen, rng entropy.Source) []CulturalMovement {
	if len(roster) == 0 {
		return nil
	}

	clusters := make(map[beliefKey]int)
	for _, c := range roster {
		// One citizen counts once per key even with duplicate topic beliefs.
		seen := make(map[beliefKey]bool)
		for _, b := range c.Beliefs {
			if b.Confidence <= movementConfidenceFloor {
				continue
			}
			stance := b.Stance
			if stance < 0 {
				stance = -stance
			}
			if stance <= movementStanceFloor {
				continue
			}
			key := beliefKey{topic: b.Topic, positive: b.Stance > 0}
			if !seen[key] {
				seen[key] = true
				clusters[key]++
			}
		}
	}

	// Round up so the cluster genuinely holds the share: 9 citizens need 3
	// adherents, not 2.
	required := int(math.Ceil(float64(len(roster)) * movementPopulationShare))

	var movements []CulturalMovement
	for key, count := range clusters {
		if count < required {
			continue
		}
		if rng.Float() >= movementManifestChance {
			continue
		}
		direction := 1.0
		if !key.positive {
			direction = -1.0
		}
		movements = append(movements, CulturalMovement{
			ID:            uuid.NewString(),
			WorldID:       world.ID,
			Topic:         key.topic,
			Direction:     direction,
			AdherentCount: count,
			FormedAtTick:  world.CurrentTick,
		})
		slog.Info("cultural movement manifested",
			"world_id", world.ID,
			"topic", key.topic,
			"adherents", count,
			"tick", world.CurrentTick,
		)
	}
	return movements
}

// movementDescription renders the feed text for a new movement.
func movementDescription(m CulturalMovement) string {
	stance := "embracing"
	if m.Direction < 0 {
		stance = "rejecting"
	}
	return fmt.Sprintf("A movement stirs among the people: %d citizens now stand together %s the idea that %s",
		m.AdherentCount, stance, m.Topic)
}
