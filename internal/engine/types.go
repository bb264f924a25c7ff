// Package engine drives the world forward one tick at a time. The
// orchestrator takes the current world state, the citizen roster, the memory
// index, and an optional pending divine action, and produces an immutable
// result batch. It performs no I/O and never mutates its inputs; the caller
// persists the batch atomically.
package engine

import (
	"time"

	"github.com/talgya/god-world/internal/citizens"
	"github.com/talgya/god-world/internal/config"
	"github.com/talgya/god-world/internal/divine"
	"github.com/talgya/god-world/internal/guardrail"
	"github.com/talgya/god-world/internal/memory"
)

// WorldStatus is the lifecycle state of a world.
type WorldStatus string

const (
	StatusActive WorldStatus = "active"
	StatusPaused WorldStatus = "paused"
	StatusEnded  WorldStatus = "ended"
)

// EndState tags how a world ended.
type EndState string

const (
	EndGodIrrelevant         EndState = "god_irrelevant"
	EndSocietyTranscends     EndState = "society_transcends"
	EndCulturalFragmentation EndState = "cultural_fragmentation"
)

// WorldState is the top-level world record. Owned exclusively by the
// orchestrator during a tick; persisted by the storage collaborator between
// ticks.
type WorldState struct {
	ID          string             `json:"id"` // UUID
	OwnerUserID string             `json:"owner_user_id"`
	Config      config.WorldConfig `json:"config"`
	CurrentTick int64              `json:"current_tick"`
	Status      WorldStatus        `json:"status"`
	EndState    EndState           `json:"end_state,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// FeedEntry is one world-visible event.
type FeedEntry struct {
	ID          string `json:"id"`
	WorldID     string `json:"world_id"`
	Tick        int64  `json:"tick"`
	Description string `json:"description"`
	Category    string `json:"category"` // "citizen", "divine", "crisis", "culture", "ending"
	CitizenID   string `json:"citizen_id,omitempty"`
}

// CulturalMovement is an emergent population-level belief cluster. Created
// only by the emergence evaluator, never by citizens directly.
type CulturalMovement struct {
	ID            string  `json:"id"`
	WorldID       string  `json:"world_id"`
	Topic         string  `json:"topic"`
	Direction     float64 `json:"direction"` // +1 or -1, the shared stance sign
	AdherentCount int     `json:"adherent_count"`
	FormedAtTick  int64   `json:"formed_at_tick"`
}

// CitizenUpdate is the partial per-citizen result of one tick. Memories is
// the full post-maintenance replacement set for that citizen.
type CitizenUpdate struct {
	CitizenID      string                `json:"citizen_id"`
	State          citizens.DynamicState `json:"state"`
	Beliefs        []citizens.Belief     `json:"beliefs"`
	LastActiveTick int64                 `json:"last_active_tick"`
	LastDivineTick int64                 `json:"last_divine_tick"`
	Memories       []memory.Memory       `json:"memories"`
	ActionText     string                `json:"action_text,omitempty"`
}

// DivineOutcome reports what happened to the pending divine action.
type DivineOutcome struct {
	Action      divine.Action            `json:"action"`
	Decision    guardrail.ActionDecision `json:"decision"`
	Description string                   `json:"description,omitempty"` // Feed text when succeeded.
	Receptivity *float64                 `json:"receptivity,omitempty"` // Whispers only.
}

// TickInput is everything the orchestrator needs for one step.
type TickInput struct {
	World         WorldState
	Citizens      []*citizens.Citizen
	Memories      map[string][]memory.Memory // citizen ID → memory stream
	PendingAction *divine.Action
}

// TickResult is the immutable batch produced by one tick.
type TickResult struct {
	World           WorldState         `json:"world"`
	Feed            []FeedEntry        `json:"feed"`
	CitizenUpdates  []CitizenUpdate    `json:"citizen_updates"`
	CulturalChanges []CulturalMovement `json:"cultural_changes"`
	DivineOutcome   *DivineOutcome     `json:"divine_outcome,omitempty"`
	CrisisOccurred  bool               `json:"crisis_occurred"`
}
