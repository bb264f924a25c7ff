// Package api is the boundary layer around the tick engine. GET endpoints are
// public (read-only observation); POST endpoints are the divine control plane
// and require a bearer token. Tick processing is serialized here — the engine
// itself never sees concurrent ticks for one world.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/talgya/god-world/internal/citizens"
	"github.com/talgya/god-world/internal/divine"
	"github.com/talgya/god-world/internal/engine"
	"github.com/talgya/god-world/internal/inbox"
	"github.com/talgya/god-world/internal/persistence"
)

const maxWhisperLen = 500

// Server serves one world over HTTP.
type Server struct {
	DB       *persistence.DB
	Orc      *engine.Orchestrator
	Hub      *Hub
	WorldID  string
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = control plane disabled.

	// Serializes tick processing for the world.
	tickMu sync.Mutex
}

// Start begins serving in a goroutine.
func (s *Server) Start() {
	// Ticks fan out LLM calls; throttle per client.
	tickLimiter := NewLimiter(120, time.Hour)

	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/feed", s.handleFeed)
	mux.HandleFunc("/api/v1/citizens", s.handleCitizens)
	mux.HandleFunc("/api/v1/citizen/", s.handleCitizenDetail)
	mux.HandleFunc("/api/v1/inbox", s.handleInbox)
	mux.HandleFunc("/api/v1/inbox/priority", s.handleInboxPriority)
	mux.HandleFunc("/api/v1/inbox/summary", s.handleInboxSummary)

	mux.HandleFunc("/api/v1/tick", s.adminOnly(limited(tickLimiter, s.handleTick)))
	mux.HandleFunc("/api/v1/divine-action", s.adminOnly(limited(tickLimiter, s.handleDivineAction)))
	mux.HandleFunc("/api/v1/inbox/seen", s.adminOnly(s.handleInboxSeen))

	mux.HandleFunc("/ws/feed", s.Hub.ServeWS)

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, corsMiddleware(mux)); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware allows configured frontend origins. Set CORS_ORIGINS to a
// comma-separated list; localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowed := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				allowed[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly requires bearer token auth on POST requests.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled (no GODWORLD_ADMIN_KEY set)", http.StatusForbidden)
			return
		}
		if !s.checkBearerToken(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// runTick loads the world, processes one tick (optionally carrying a divine
// action), persists the batch, classifies new citizen utterances into the
// inbox, and broadcasts the feed. The whole sequence holds the tick lock.
func (s *Server) runTick(ctx context.Context, pending *divine.Action) (*engine.TickResult, error) {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	world, err := s.DB.LoadWorld(s.WorldID)
	if err != nil {
		return nil, fmt.Errorf("load world: %w", err)
	}
	if world.Status == engine.StatusEnded {
		return nil, ErrWorldEnded
	}
	roster, err := s.DB.LoadCitizens(s.WorldID)
	if err != nil {
		return nil, fmt.Errorf("load citizens: %w", err)
	}
	memories, err := s.DB.LoadMemoryIndex(s.WorldID)
	if err != nil {
		return nil, fmt.Errorf("load memories: %w", err)
	}

	result, err := s.Orc.ProcessTick(ctx, engine.TickInput{
		World:         world,
		Citizens:      roster,
		Memories:      memories,
		PendingAction: pending,
	})
	if err != nil {
		return nil, fmt.Errorf("process tick: %w", err)
	}

	if err := s.DB.ApplyTickResult(result); err != nil {
		return nil, fmt.Errorf("apply tick: %w", err)
	}

	if items := s.classifyUtterances(roster, result); len(items) > 0 {
		if err := s.DB.SaveInboxItems(items); err != nil {
			slog.Error("save inbox items", "error", err, "count", len(items))
		}
	}

	s.Hub.BroadcastFeed(result.Feed)
	return result, nil
}

// ErrWorldEnded is returned when a tick is requested on an ended world.
var ErrWorldEnded = errors.New("world has ended")

// RunTick advances the world one tick with no divine action. Used by the
// wall-clock tick loop.
func (s *Server) RunTick(ctx context.Context) (*engine.TickResult, error) {
	return s.runTick(ctx, nil)
}

// classifyUtterances runs this tick's citizen utterances through the inbox
// pipeline and returns the items that surfaced.
func (s *Server) classifyUtterances(roster []*citizens.Citizen, result *engine.TickResult) []inbox.Item {
	byID := make(map[string]*citizens.Citizen, len(roster))
	for _, c := range roster {
		byID[c.ID] = c
	}

	wctx := inbox.WorldContext{RecentCrisis: result.CrisisOccurred}
	var items []inbox.Item
	for _, u := range result.CitizenUpdates {
		if u.ActionText == "" {
			continue
		}
		c, ok := byID[u.CitizenID]
		if !ok {
			continue
		}
		// Judge against the post-tick emotional state.
		snapshot := c.Clone()
		snapshot.State = u.State

		surf := inbox.ShouldSurface(u.ActionText, snapshot, wctx)
		if !surf.ShouldSurface {
			continue
		}
		snap := inbox.CitizenSnapshot{
			TrustInGod: u.State.TrustInGod,
			Mood:       u.State.Mood,
			Stress:     u.State.Stress,
		}
		items = append(items, inbox.NewItem(
			result.World.ID, c.ID, c.Name, u.ActionText, surf, snap, result.World.CurrentTick,
		))
	}
	return items
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	world, err := s.DB.LoadWorld(s.WorldID)
	if err != nil {
		httpStorageError(w, err)
		return
	}
	roster, err := s.DB.LoadCitizens(s.WorldID)
	if err != nil {
		httpStorageError(w, err)
		return
	}

	writeJSON(w, map[string]any{
		"world":      world,
		"population": len(roster),
		"stability":  engine.CalculateWorldStability(roster),
	})
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	entries, err := s.DB.RecentFeed(s.WorldID, limit)
	if err != nil {
		httpStorageError(w, err)
		return
	}
	if entries == nil {
		entries = []engine.FeedEntry{}
	}
	writeJSON(w, entries)
}

func (s *Server) handleCitizens(w http.ResponseWriter, r *http.Request) {
	roster, err := s.DB.LoadCitizens(s.WorldID)
	if err != nil {
		httpStorageError(w, err)
		return
	}

	type citizenSummary struct {
		ID         string  `json:"id"`
		Name       string  `json:"name"`
		Archetype  string  `json:"archetype"`
		Mood       float64 `json:"mood"`
		Stress     float64 `json:"stress"`
		Hope       float64 `json:"hope"`
		TrustInGod float64 `json:"trust_in_god"`
		LastActive int64   `json:"last_active_tick"`
	}

	result := make([]citizenSummary, 0, len(roster))
	for _, c := range roster {
		result = append(result, citizenSummary{
			ID:         c.ID,
			Name:       c.Name,
			Archetype:  string(c.Attributes.Archetype),
			Mood:       c.State.Mood,
			Stress:     c.State.Stress,
			Hope:       c.State.Hope,
			TrustInGod: c.State.TrustInGod,
			LastActive: c.LastActiveTick,
		})
	}
	writeJSON(w, result)
}

func (s *Server) handleCitizenDetail(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(r.URL.Path, "/")
	if len(parts) < 5 || parts[4] == "" {
		http.Error(w, "missing citizen id", http.StatusBadRequest)
		return
	}
	id := parts[4]

	roster, err := s.DB.LoadCitizens(s.WorldID)
	if err != nil {
		httpStorageError(w, err)
		return
	}
	for _, c := range roster {
		if c.ID == id {
			writeJSON(w, c)
			return
		}
	}
	http.Error(w, "citizen not found", http.StatusNotFound)
}

func (s *Server) handleInbox(w http.ResponseWriter, r *http.Request) {
	items, err := s.DB.LoadInboxItems(s.WorldID)
	if err != nil {
		httpStorageError(w, err)
		return
	}

	f := inbox.Filter{Limit: 50}
	q := r.URL.Query()
	if cat := q.Get("category"); cat != "" {
		f.Category = inbox.Category(cat)
	}
	if cid := q.Get("citizen_id"); cid != "" {
		f.CitizenID = cid
	}
	if q.Get("unread") == "true" {
		f.UnreadOnly = true
	}
	if mr := q.Get("min_relevance"); mr != "" {
		if v, err := strconv.ParseFloat(mr, 64); err == nil {
			f.MinRelevance = v
		}
	}
	if l := q.Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			f.Limit = n
		}
	}

	filtered := f.Apply(items)
	if filtered == nil {
		filtered = []inbox.Item{}
	}

	// Suggested tones ride along so the admin UI can prefill whispers.
	type itemWithTone struct {
		inbox.Item
		SuggestedTone divine.WhisperTone `json:"suggested_tone"`
	}
	result := make([]itemWithTone, 0, len(filtered))
	for _, it := range filtered {
		result = append(result, itemWithTone{Item: it, SuggestedTone: inbox.SuggestResponseTone(it)})
	}
	writeJSON(w, result)
}

func (s *Server) handleInboxPriority(w http.ResponseWriter, r *http.Request) {
	items, err := s.DB.LoadInboxItems(s.WorldID)
	if err != nil {
		httpStorageError(w, err)
		return
	}
	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	result := inbox.PriorityItems(items, limit)
	if result == nil {
		result = []inbox.Item{}
	}
	writeJSON(w, result)
}

func (s *Server) handleInboxSummary(w http.ResponseWriter, r *http.Request) {
	items, err := s.DB.LoadInboxItems(s.WorldID)
	if err != nil {
		httpStorageError(w, err)
		return
	}
	writeJSON(w, inbox.CalculateSummary(items))
}

func (s *Server) handleInboxSeen(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if len(req.IDs) == 0 {
		http.Error(w, "ids required", http.StatusBadRequest)
		return
	}

	updated, err := s.DB.MarkInboxSeen(req.IDs)
	if err != nil {
		httpStorageError(w, err)
		return
	}
	writeJSON(w, map[string]int64{"updated": updated})
}

func (s *Server) handleTick(w http.ResponseWriter, r *http.Request) {
	result, err := s.runTick(r.Context(), nil)
	if err != nil {
		httpTickError(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"tick":            result.World.CurrentTick,
		"status":          result.World.Status,
		"feed":            result.Feed,
		"crisis_occurred": result.CrisisOccurred,
		"movements":       len(result.CulturalChanges),
	})
}

func (s *Server) handleDivineAction(w http.ResponseWriter, r *http.Request) {
	var action divine.Action
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if !divine.ValidActionType(action.Type) {
		http.Error(w, "unknown action type", http.StatusBadRequest)
		return
	}
	if action.Intensity < 0 || action.Intensity > 1 {
		http.Error(w, "intensity must be in [0,1]", http.StatusBadRequest)
		return
	}
	if len(action.Content) > maxWhisperLen {
		http.Error(w, "content too long", http.StatusBadRequest)
		return
	}
	if action.Type == divine.ActionWhisper && strings.TrimSpace(action.Content) == "" {
		http.Error(w, "whisper requires content", http.StatusBadRequest)
		return
	}

	result, err := s.runTick(r.Context(), &action)
	if err != nil {
		httpTickError(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"tick":    result.World.CurrentTick,
		"outcome": result.DivineOutcome,
		"feed":    result.Feed,
	})
}

func httpTickError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrWorldEnded):
		http.Error(w, "world has ended", http.StatusConflict)
	case errors.Is(err, persistence.ErrNotFound):
		http.Error(w, "world not found", http.StatusNotFound)
	default:
		slog.Error("tick failed", "error", err)
		http.Error(w, "tick failed", http.StatusInternalServerError)
	}
}

func httpStorageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, persistence.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, persistence.ErrUnavailable):
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
	default:
		slog.Error("storage read failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
