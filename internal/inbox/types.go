// Package inbox classifies citizen-originated content and decides what
// surfaces to the administrator. Items are created only through the
// classification pipeline and never edited afterwards except for seen and
// resolved markers.
package inbox

import (
	"time"

	"github.com/google/uuid"
)

// Category is the classified kind of an inbox item.
type Category string

const (
	CategoryPrayer     Category = "prayer"
	CategoryAccusation Category = "accusation"
	CategoryQuestion   Category = "question"
	CategoryCrisisCall Category = "crisis_call"
	CategoryPraise     Category = "praise"
	CategoryDoubt      Category = "doubt"
	CategoryTestimony  Category = "testimony"
)

// CitizenSnapshot freezes the citizen's disposition at classification time.
type CitizenSnapshot struct {
	TrustInGod float64 `json:"trust_in_god"`
	Mood       float64 `json:"mood"`
	Stress     float64 `json:"stress"`
}

// Item is one classified, scored piece of citizen content.
type Item struct {
	ID          string          `json:"id"`
	WorldID     string          `json:"world_id"`
	CitizenID   string          `json:"citizen_id"`
	CitizenName string          `json:"citizen_name"`
	Content     string          `json:"content"`
	Category    Category        `json:"category"`
	Reasons     []string        `json:"reasons"`
	Relevance   float64         `json:"relevance"` // [0,1]
	Snapshot    CitizenSnapshot `json:"snapshot"`
	Tick        int64           `json:"tick"`
	CreatedAt   time.Time       `json:"created_at"`
	SeenAt      *time.Time      `json:"seen_at,omitempty"`
	RespondedAt *time.Time      `json:"responded_at,omitempty"`
}

// NewItem builds an item through the classification pipeline.
func NewItem(worldID, citizenID, citizenName, content string, surf SurfaceDecision, snap CitizenSnapshot, tick int64) Item {
	return Item{
		ID:          uuid.NewString(),
		WorldID:     worldID,
		CitizenID:   citizenID,
		CitizenName: citizenName,
		Content:     content,
		Category:    Categorize(content),
		Reasons:     surf.Reasons,
		Relevance:   surf.Relevance,
		Snapshot:    snap,
		Tick:        tick,
	}
}
