package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/talgya/god-world/internal/config"
	"github.com/talgya/god-world/internal/engine"
)

const timeLayout = time.RFC3339Nano

// SaveWorld inserts or replaces a world row.
func (db *DB) SaveWorld(w engine.WorldState) error {
	if !db.Ready() {
		return ErrUnavailable
	}
	cfgJSON, err := json.Marshal(w.Config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	_, err = db.conn.Exec(`INSERT OR REPLACE INTO worlds
		(id, owner_user_id, name, config_json, current_tick, status, end_state, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.OwnerUserID, w.Config.Name, string(cfgJSON), w.CurrentTick,
		string(w.Status), nullString(string(w.EndState)),
		w.CreatedAt.Format(timeLayout), w.UpdatedAt.Format(timeLayout),
	)
	return err
}

// LoadWorld reads a world by id.
func (db *DB) LoadWorld(id string) (engine.WorldState, error) {
	if !db.Ready() {
		return engine.WorldState{}, ErrUnavailable
	}

	var row struct {
		ID          string         `db:"id"`
		OwnerUserID string         `db:"owner_user_id"`
		Name        string         `db:"name"`
		ConfigJSON  string         `db:"config_json"`
		CurrentTick int64          `db:"current_tick"`
		Status      string         `db:"status"`
		EndState    sql.NullString `db:"end_state"`
		CreatedAt   string         `db:"created_at"`
		UpdatedAt   string         `db:"updated_at"`
	}
	err := db.conn.Get(&row, "SELECT * FROM worlds WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return engine.WorldState{}, ErrNotFound
	}
	if err != nil {
		return engine.WorldState{}, fmt.Errorf("load world: %w", err)
	}

	var cfg config.WorldConfig
	if err := json.Unmarshal([]byte(row.ConfigJSON), &cfg); err != nil {
		return engine.WorldState{}, fmt.Errorf("unmarshal config: %w", err)
	}

	w := engine.WorldState{
		ID:          row.ID,
		OwnerUserID: row.OwnerUserID,
		Config:      cfg,
		CurrentTick: row.CurrentTick,
		Status:      engine.WorldStatus(row.Status),
		EndState:    engine.EndState(row.EndState.String),
	}
	if t, err := time.Parse(timeLayout, row.CreatedAt); err == nil {
		w.CreatedAt = t
	}
	if t, err := time.Parse(timeLayout, row.UpdatedAt); err == nil {
		w.UpdatedAt = t
	}
	return w, nil
}

// FirstWorld returns the only world in a single-world deployment.
func (db *DB) FirstWorld() (engine.WorldState, error) {
	if !db.Ready() {
		return engine.WorldState{}, ErrUnavailable
	}
	var id string
	err := db.conn.Get(&id, "SELECT id FROM worlds ORDER BY created_at LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return engine.WorldState{}, ErrNotFound
	}
	if err != nil {
		return engine.WorldState{}, err
	}
	return db.LoadWorld(id)
}

// RecentFeed returns the most recent feed entries, newest first.
func (db *DB) RecentFeed(worldID string, limit int) ([]engine.FeedEntry, error) {
	if !db.Ready() {
		return nil, ErrUnavailable
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.conn.Queryx(
		`SELECT id, world_id, tick, description, category, citizen_id
		 FROM feed WHERE world_id = ? ORDER BY tick DESC, id DESC LIMIT ?`,
		worldID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []engine.FeedEntry
	for rows.Next() {
		var e engine.FeedEntry
		var citizenID sql.NullString
		if err := rows.Scan(&e.ID, &e.WorldID, &e.Tick, &e.Description, &e.Category, &citizenID); err != nil {
			return nil, err
		}
		e.CitizenID = citizenID.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
