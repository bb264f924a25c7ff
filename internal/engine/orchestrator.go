package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/god-world/internal/citizens"
	"github.com/talgya/god-world/internal/divine"
	"github.com/talgya/god-world/internal/entropy"
	"github.com/talgya/god-world/internal/guardrail"
	"github.com/talgya/god-world/internal/llm"
	"github.com/talgya/god-world/internal/memory"
	"github.com/talgya/god-world/internal/whisper"
)

const (
	// activeShare of the population processed autonomously per tick, hard
	// capped at activeCap. A pacing control, not a fairness guarantee.
	activeShare = 0.2
	activeCap   = 10

	// valenceIntensity is the fixed magnitude of the state shift applied
	// per classified citizen action.
	valenceIntensity = 0.3

	defaultActionTimeout = 15 * time.Second
)

// Orchestrator advances a world one tick at a time. It holds no world state
// of its own; everything it needs arrives in the TickInput and everything it
// decides leaves in the TickResult.
type Orchestrator struct {
	Gen           llm.Generator  // May be nil: citizens produce no autonomous text.
	Rand          entropy.Source // Required.
	Crisis        *CrisisField   // May be nil: no ambient crisis pressure.
	ActionTimeout time.Duration
}

// NewOrchestrator wires an orchestrator with its collaborators.
func NewOrchestrator(gen llm.Generator, rng entropy.Source, crisis *CrisisField) *Orchestrator {
	return &Orchestrator{
		Gen:           gen,
		Rand:          rng,
		Crisis:        crisis,
		ActionTimeout: defaultActionTimeout,
	}
}

// ProcessTick advances the world by exactly one tick. Inputs are never
// mutated; the caller applies the returned batch atomically. Only
// programming-contract violations produce an error — per-citizen generation
// failures degrade to empty content and safety/consent denials are reported
// structurally in the outcome.
func (o *Orchestrator) ProcessTick(ctx context.Context, input TickInput) (*TickResult, error) {
	if input.World.ID == "" {
		return nil, errors.New("engine: tick on world with empty id")
	}
	if input.World.CurrentTick < 0 {
		return nil, fmt.Errorf("engine: malformed world tick %d", input.World.CurrentTick)
	}
	if o.Rand == nil {
		return nil, errors.New("engine: orchestrator requires a randomness source")
	}

	next := input.World
	next.CurrentTick++
	next.UpdatedAt = time.Now().UTC()
	tick := next.CurrentTick

	// Working copies: the roster is cloned up front so nothing downstream
	// can touch the caller's citizens.
	working := make([]*citizens.Citizen, len(input.Citizens))
	byID := make(map[string]*citizens.Citizen, len(input.Citizens))
	for i, c := range input.Citizens {
		working[i] = c.Clone()
		byID[c.ID] = working[i]
	}

	result := &TickResult{World: next}
	touched := make(map[string]bool)
	memoriesOut := make(map[string][]memory.Memory)

	// Divine effects are ordered ahead of citizen autonomy within the tick.
	if input.PendingAction != nil {
		o.processDivineAction(result, *input.PendingAction, byID, input.Memories, memoriesOut, touched, tick)
	}

	// Ambient crisis pressure.
	if o.Crisis != nil && o.Crisis.Erupts(tick, next.Config.CrisisFrequency) {
		result.CrisisOccurred = true
		result.Feed = append(result.Feed, FeedEntry{
			ID:          uuid.NewString(),
			WorldID:     next.ID,
			Tick:        tick,
			Description: "Hardship sweeps through the world: scarcity, sickness, and sleepless nights",
			Category:    "crisis",
		})
		for _, c := range working {
			c.State.Stress += crisisStressShock
			c.State.Hope -= crisisHopeShock
			c.State.ClampState()
			touched[c.ID] = true
		}
		slog.Info("crisis erupted", "world_id", next.ID, "tick", tick)
	}

	// Autonomous citizen processing over the active subset.
	active := o.selectActive(working, next.Config.PopulationSize)
	actions := o.generateActions(ctx, active, input.Memories, result.CrisisOccurred)
	actionTexts := make(map[string]string)
	for i, c := range active {
		text := actions[i]
		stream, ok := memoriesOut[c.ID]
		if !ok {
			stream = input.Memories[c.ID]
		}

		if text != "" {
			valence := ClassifyValence(text)
			c.ApplyEmotionalShift(float64(valence), valenceIntensity)
			result.Feed = append(result.Feed, FeedEntry{
				ID:          uuid.NewString(),
				WorldID:     next.ID,
				Tick:        tick,
				Description: fmt.Sprintf("%s: %s", c.Name, text),
				Category:    "citizen",
				CitizenID:   c.ID,
			})
			stream = append(stream[:len(stream):len(stream)], memory.New(c.ID, text, tick, &memory.Options{
				EmotionalWeight: float64(valence) * 0.4,
			}))
			actionTexts[c.ID] = text
		}

		memoriesOut[c.ID] = memory.Maintain(stream, tick)
		c.LastActiveTick = tick
		touched[c.ID] = true
	}

	// Population-level evaluation runs over the full roster.
	movements := DetectCulturalMovements(next, working, o.Rand)
	for _, m := range movements {
		result.CulturalChanges = append(result.CulturalChanges, m)
		result.Feed = append(result.Feed, FeedEntry{
			ID:          uuid.NewString(),
			WorldID:     next.ID,
			Tick:        tick,
			Description: movementDescription(m),
			Category:    "culture",
		})
	}

	if end, ok := EvaluateEndCondition(next, working); ok {
		next.Status = StatusEnded
		next.EndState = end
		result.World = next
		result.Feed = append(result.Feed, FeedEntry{
			ID:          uuid.NewString(),
			WorldID:     next.ID,
			Tick:        tick,
			Description: endingDescriptions[end],
			Category:    "ending",
		})
		slog.Info("world reached end condition", "world_id", next.ID, "end_state", end, "tick", tick)
	}

	// Collect per-citizen updates for everything the tick touched.
	for _, c := range working {
		if !touched[c.ID] {
			continue
		}
		update := CitizenUpdate{
			CitizenID:      c.ID,
			State:          c.State,
			Beliefs:        c.Beliefs,
			LastActiveTick: c.LastActiveTick,
			LastDivineTick: c.LastDivineTick,
		}
		if stream, ok := memoriesOut[c.ID]; ok {
			update.Memories = stream
		}
		if text, ok := actionTexts[c.ID]; ok {
			update.ActionText = text
		}
		result.CitizenUpdates = append(result.CitizenUpdates, update)
	}

	return result, nil
}

// selectActive samples the autonomous subset for this tick without
// replacement: min(ceil(population × 0.2), configured cap, 10).
func (o *Orchestrator) selectActive(roster []*citizens.Citizen, configuredCap int) []*citizens.Citizen {
	if len(roster) == 0 {
		return nil
	}
	target := int(math.Ceil(float64(len(roster)) * activeShare))
	if target > configuredCap {
		target = configuredCap
	}
	if target > activeCap {
		target = activeCap
	}
	if target > len(roster) {
		target = len(roster)
	}
	if target < 1 {
		target = 1
	}

	// Partial Fisher-Yates over a copy of the roster.
	pool := make([]*citizens.Citizen, len(roster))
	copy(pool, roster)
	for i := 0; i < target; i++ {
		j := i + o.Rand.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:target]
}

// generateActions fans out one completion request per active citizen and
// joins on all of them. Each request is failure-isolated: an error or
// timeout for one citizen yields empty content for that citizen only.
func (o *Orchestrator) generateActions(ctx context.Context, active []*citizens.Citizen, memoryIndex map[string][]memory.Memory, recentCrisis bool) []string {
	actions := make([]string, len(active))
	if o.Gen == nil || len(active) == 0 {
		return actions
	}

	timeout := o.ActionTimeout
	if timeout <= 0 {
		timeout = defaultActionTimeout
	}

	var wg sync.WaitGroup
	for i, c := range active {
		wg.Add(1)
		go func(i int, c *citizens.Citizen) {
			defer wg.Done()

			reqCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			var recent []string
			for _, m := range recentMemories(memoryIndex[c.ID], 5) {
				recent = append(recent, m.Content)
			}

			text, err := o.Gen.Generate(reqCtx, llm.CitizenActionPrompt(c, recent, recentCrisis))
			if err != nil {
				slog.Debug("citizen action generation failed", "citizen", c.Name, "error", err)
				return
			}
			actions[i] = text
		}(i, c)
	}
	wg.Wait()
	return actions
}

// recentMemories returns up to n memories ordered by formation tick
// descending.
func recentMemories(stream []memory.Memory, n int) []memory.Memory {
	if len(stream) == 0 {
		return nil
	}
	sorted := make([]memory.Memory, len(stream))
	copy(sorted, stream)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].FormedAtTick > sorted[j-1].FormedAtTick; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// processDivineAction routes the pending action through the guardrail and
// consent gate, applies its effects on success, and records the outcome
// either way. On failure nothing world-visible happens.
func (o *Orchestrator) processDivineAction(
	result *TickResult,
	action divine.Action,
	byID map[string]*citizens.Citizen,
	memoryIndex map[string][]memory.Memory,
	memoriesOut map[string][]memory.Memory,
	touched map[string]bool,
	tick int64,
) {
	world := result.World

	needsTarget := action.Type != divine.ActionEnvironmentalNudge

	var target *citizens.Citizen
	if action.TargetCitizenID != "" {
		target = byID[action.TargetCitizenID]
	}
	if needsTarget && target == nil {
		result.DivineOutcome = &DivineOutcome{
			Action: action,
			Decision: guardrail.ActionDecision{
				Guardrail: guardrail.CheckResult{Passed: true, Severity: guardrail.LevelSafe},
				Consent:   guardrail.ConsentResult{Allowed: false, Reason: "target citizen not found"},
			},
		}
		return
	}

	decision := guardrail.CheckDivineAction(action, target, world.ID, tick)
	outcome := &DivineOutcome{Action: action, Decision: decision}
	result.DivineOutcome = outcome
	if !decision.Succeeded {
		return
	}

	targetName := ""
	if target != nil {
		targetName = target.Name
	}
	outcome.Description = divine.Describe(action.Type, targetName)
	result.Feed = append(result.Feed, FeedEntry{
		ID:          uuid.NewString(),
		WorldID:     world.ID,
		Tick:        tick,
		Description: outcome.Description,
		Category:    "divine",
		CitizenID:   action.TargetCitizenID,
	})

	switch action.Type {
	case divine.ActionBoost:
		target.ApplyEmotionalShift(1, action.Intensity)
		target.State.TrustInGod += 0.1 * action.Intensity

	case divine.ActionSuppress:
		target.ApplyEmotionalShift(-1, action.Intensity)

	case divine.ActionWhisper:
		factors := whisper.FactorsFor(target)
		factors.ToneMatch = 0.5
		factors.History = divineHistory(memoryIndex[target.ID])
		receptivity := whisper.Receptivity(factors)
		outcome.Receptivity = &receptivity

		target.State.Mood += valenceIntensity * action.Intensity * receptivity
		target.State.TrustInGod += 0.2 * action.Intensity * receptivity
		target.State.CognitiveDissonance += 0.1 * (1 - receptivity)

	case divine.ActionManifest:
		target.State.TrustInGod += 0.3 * action.Intensity
		target.State.Stress += 0.1 * action.Intensity
		target.State.CognitiveDissonance += 0.15 * action.Intensity * target.Consent.AuthorityResistanceCurve

	case divine.ActionEnvironmentalNudge:
		// World-scoped: a gentle easing across the whole roster.
		for _, c := range byID {
			c.State.Stress -= 0.05 * action.Intensity
			c.State.Mood += 0.05 * action.Intensity
			c.State.ClampState()
			touched[c.ID] = true
		}
	}

	if target != nil {
		target.State.ClampState()
		target.LastDivineTick = tick
		touched[target.ID] = true

		content := outcome.Description
		weight := divineMemoryWeight(action, outcome)
		if action.Type == divine.ActionWhisper && action.Content != "" {
			content = fmt.Sprintf("A voice whispered: %s", action.Content)
		}
		stream := memoryIndex[target.ID]
		memoriesOut[target.ID] = append(stream[:len(stream):len(stream)],
			memory.NewDivine(target.ID, content, tick, weight))
	}
}

// divineMemoryWeight derives the emotional weight of the divine memory from
// the action's nature and, for whispers, how well it landed.
func divineMemoryWeight(action divine.Action, outcome *DivineOutcome) float64 {
	switch action.Type {
	case divine.ActionBoost:
		return 0.5 + 0.5*action.Intensity
	case divine.ActionSuppress:
		return -0.4 - 0.4*action.Intensity
	case divine.ActionWhisper:
		if outcome.Receptivity != nil {
			return *outcome.Receptivity*1.2 - 0.4 // [-0.4, 0.8]
		}
		return 0.2
	case divine.ActionManifest:
		return 0.3
	default:
		return 0
	}
}

// divineHistory summarizes prior divine relationship quality as a [0,1]
// factor from the citizen's divine memories.
func divineHistory(stream []memory.Memory) float64 {
	count := 0
	total := 0.0
	for _, m := range stream {
		if m.IsDivine {
			count++
			total += m.EmotionalWeight
		}
	}
	if count == 0 {
		return 0.5 // No history: neutral.
	}
	avg := total / float64(count) // [-1,1]
	return (avg + 1) / 2
}
