package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/talgya/god-world/internal/engine"
)

// ApplyTickResult persists a whole tick batch in one transaction: the next
// world state, feed entries, per-citizen partial updates (with memory stream
// replacement where present), and new cultural movements. Either everything
// lands or nothing does.
func (db *DB) ApplyTickResult(result *engine.TickResult) error {
	if !db.Ready() {
		return ErrUnavailable
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	w := result.World
	cfgJSON, err := json.Marshal(w.Config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	_, err = tx.Exec(`UPDATE worlds
		SET current_tick = ?, status = ?, end_state = ?, updated_at = ?, config_json = ?
		WHERE id = ?`,
		w.CurrentTick, string(w.Status), nullString(string(w.EndState)),
		w.UpdatedAt.Format(timeLayout), string(cfgJSON), w.ID,
	)
	if err != nil {
		return fmt.Errorf("update world: %w", err)
	}

	for _, e := range result.Feed {
		_, err := tx.Exec(
			"INSERT INTO feed (id, world_id, tick, description, category, citizen_id) VALUES (?, ?, ?, ?, ?, ?)",
			e.ID, e.WorldID, e.Tick, e.Description, e.Category, nullString(e.CitizenID),
		)
		if err != nil {
			return fmt.Errorf("insert feed entry: %w", err)
		}
	}

	for _, u := range result.CitizenUpdates {
		stateJSON, _ := json.Marshal(u.State)
		beliefsJSON, _ := json.Marshal(u.Beliefs)
		_, err := tx.Exec(`UPDATE citizens
			SET state_json = ?, beliefs_json = ?, last_active_tick = ?, last_divine_tick = ?
			WHERE id = ?`,
			string(stateJSON), string(beliefsJSON), u.LastActiveTick, u.LastDivineTick, u.CitizenID,
		)
		if err != nil {
			return fmt.Errorf("update citizen %s: %w", u.CitizenID, err)
		}
		// Nil memories means the stream was untouched this tick.
		if u.Memories != nil {
			if err := replaceMemoriesTx(tx, u.CitizenID, u.Memories); err != nil {
				return err
			}
		}
	}

	for _, m := range result.CulturalChanges {
		_, err := tx.Exec(
			"INSERT INTO movements (id, world_id, topic, direction, adherent_count, formed_at_tick) VALUES (?, ?, ?, ?, ?, ?)",
			m.ID, m.WorldID, m.Topic, m.Direction, m.AdherentCount, m.FormedAtTick,
		)
		if err != nil {
			return fmt.Errorf("insert movement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	slog.Debug("tick result applied",
		"world_id", w.ID,
		"tick", w.CurrentTick,
		"feed", len(result.Feed),
		"citizen_updates", len(result.CitizenUpdates),
		"movements", len(result.CulturalChanges),
	)
	return nil
}
