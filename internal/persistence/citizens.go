package persistence

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/talgya/god-world/internal/citizens"
	"github.com/talgya/god-world/internal/memory"
)

// SaveCitizens writes a roster (insert or replace per citizen).
func (db *DB) SaveCitizens(roster []*citizens.Citizen) error {
	if !db.Ready() {
		return ErrUnavailable
	}
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, c := range roster {
		if err := saveCitizenTx(tx, c); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func saveCitizenTx(tx *sqlx.Tx, c *citizens.Citizen) error {
	attrsJSON, _ := json.Marshal(c.Attributes)
	stateJSON, _ := json.Marshal(c.State)
	consentJSON, _ := json.Marshal(c.Consent)
	beliefsJSON, _ := json.Marshal(c.Beliefs)

	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := tx.Exec(`INSERT OR REPLACE INTO citizens
		(id, world_id, name, attributes_json, state_json, consent_json, beliefs_json,
		 last_divine_tick, created_at_tick, last_active_tick, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.WorldID, c.Name,
		string(attrsJSON), string(stateJSON), string(consentJSON), string(beliefsJSON),
		c.LastDivineTick, c.CreatedAtTick, c.LastActiveTick,
		createdAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert citizen %s: %w", c.ID, err)
	}
	return nil
}

// LoadCitizens reads the full roster of a world.
func (db *DB) LoadCitizens(worldID string) ([]*citizens.Citizen, error) {
	if !db.Ready() {
		return nil, ErrUnavailable
	}

	rows, err := db.conn.Queryx(
		`SELECT id, world_id, name, attributes_json, state_json, consent_json, beliefs_json,
		        last_divine_tick, created_at_tick, last_active_tick, created_at
		 FROM citizens WHERE world_id = ?`, worldID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roster []*citizens.Citizen
	for rows.Next() {
		var c citizens.Citizen
		var attrsJSON, stateJSON, consentJSON, beliefsJSON, createdAt string
		if err := rows.Scan(&c.ID, &c.WorldID, &c.Name, &attrsJSON, &stateJSON, &consentJSON, &beliefsJSON,
			&c.LastDivineTick, &c.CreatedAtTick, &c.LastActiveTick, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(attrsJSON), &c.Attributes); err != nil {
			return nil, fmt.Errorf("citizen %s attributes: %w", c.ID, err)
		}
		if err := json.Unmarshal([]byte(stateJSON), &c.State); err != nil {
			return nil, fmt.Errorf("citizen %s state: %w", c.ID, err)
		}
		if err := json.Unmarshal([]byte(consentJSON), &c.Consent); err != nil {
			return nil, fmt.Errorf("citizen %s consent: %w", c.ID, err)
		}
		if err := json.Unmarshal([]byte(beliefsJSON), &c.Beliefs); err != nil {
			return nil, fmt.Errorf("citizen %s beliefs: %w", c.ID, err)
		}
		if t, err := time.Parse(timeLayout, createdAt); err == nil {
			c.CreatedAt = t
		}
		roster = append(roster, &c)
	}
	return roster, rows.Err()
}

// LoadMemoryIndex reads every memory stream for a world keyed by citizen id.
func (db *DB) LoadMemoryIndex(worldID string) (map[string][]memory.Memory, error) {
	if !db.Ready() {
		return nil, ErrUnavailable
	}

	rows, err := db.conn.Queryx(
		`SELECT m.id, m.citizen_id, m.content, m.type, m.is_divine, m.importance,
		        m.emotional_weight, m.decay_rate, m.formed_at_tick
		 FROM memories m JOIN citizens c ON c.id = m.citizen_id
		 WHERE c.world_id = ?`, worldID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	index := make(map[string][]memory.Memory)
	for rows.Next() {
		var m memory.Memory
		var isDivine int
		if err := rows.Scan(&m.ID, &m.CitizenID, &m.Content, &m.Type, &isDivine,
			&m.Importance, &m.EmotionalWeight, &m.DecayRate, &m.FormedAtTick); err != nil {
			return nil, err
		}
		m.IsDivine = isDivine != 0
		index[m.CitizenID] = append(index[m.CitizenID], m)
	}
	return index, rows.Err()
}

// replaceMemoriesTx swaps a citizen's full memory stream inside a transaction.
func replaceMemoriesTx(tx *sqlx.Tx, citizenID string, stream []memory.Memory) error {
	if _, err := tx.Exec("DELETE FROM memories WHERE citizen_id = ?", citizenID); err != nil {
		return err
	}
	for _, m := range stream {
		isDivine := 0
		if m.IsDivine {
			isDivine = 1
		}
		_, err := tx.Exec(`INSERT INTO memories
			(id, citizen_id, content, type, is_divine, importance, emotional_weight, decay_rate, formed_at_tick)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.ID, m.CitizenID, m.Content, string(m.Type), isDivine,
			m.Importance, m.EmotionalWeight, m.DecayRate, m.FormedAtTick,
		)
		if err != nil {
			return fmt.Errorf("insert memory %s: %w", m.ID, err)
		}
	}
	return nil
}
