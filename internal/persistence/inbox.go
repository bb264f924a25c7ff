package persistence

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/talgya/god-world/internal/inbox"
)

// SaveInboxItems appends classified items.
func (db *DB) SaveInboxItems(items []inbox.Item) error {
	if !db.Ready() {
		return ErrUnavailable
	}
	if len(items) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, it := range items {
		reasonsJSON, _ := json.Marshal(it.Reasons)
		snapJSON, _ := json.Marshal(it.Snapshot)
		createdAt := it.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		_, err := tx.Exec(`INSERT INTO inbox
			(id, world_id, citizen_id, citizen_name, content, category, reasons_json,
			 relevance, snapshot_json, tick, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			it.ID, it.WorldID, it.CitizenID, it.CitizenName, it.Content, string(it.Category),
			string(reasonsJSON), it.Relevance, string(snapJSON), it.Tick,
			createdAt.Format(timeLayout),
		)
		if err != nil {
			return fmt.Errorf("insert inbox item: %w", err)
		}
	}
	return tx.Commit()
}

// LoadInboxItems reads every item for a world, unordered; callers apply
// inbox.Filter or inbox.PriorityItems.
func (db *DB) LoadInboxItems(worldID string) ([]inbox.Item, error) {
	if !db.Ready() {
		return nil, ErrUnavailable
	}

	rows, err := db.conn.Queryx(
		`SELECT id, world_id, citizen_id, citizen_name, content, category, reasons_json,
		        relevance, snapshot_json, tick, created_at, seen_at, responded_at
		 FROM inbox WHERE world_id = ?`, worldID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []inbox.Item
	for rows.Next() {
		var it inbox.Item
		var reasonsJSON, snapJSON, createdAt string
		var seenAt, respondedAt sql.NullString
		if err := rows.Scan(&it.ID, &it.WorldID, &it.CitizenID, &it.CitizenName, &it.Content,
			&it.Category, &reasonsJSON, &it.Relevance, &snapJSON, &it.Tick,
			&createdAt, &seenAt, &respondedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(reasonsJSON), &it.Reasons); err != nil {
			return nil, fmt.Errorf("inbox item %s reasons: %w", it.ID, err)
		}
		if err := json.Unmarshal([]byte(snapJSON), &it.Snapshot); err != nil {
			return nil, fmt.Errorf("inbox item %s snapshot: %w", it.ID, err)
		}
		if t, err := time.Parse(timeLayout, createdAt); err == nil {
			it.CreatedAt = t
		}
		if seenAt.Valid {
			if t, err := time.Parse(timeLayout, seenAt.String); err == nil {
				it.SeenAt = &t
			}
		}
		if respondedAt.Valid {
			if t, err := time.Parse(timeLayout, respondedAt.String); err == nil {
				it.RespondedAt = &t
			}
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// MarkInboxSeen stamps the given items as seen and returns how many rows
// were actually updated. Unknown ids and already-seen items do not count.
func (db *DB) MarkInboxSeen(ids []string) (int64, error) {
	if !db.Ready() {
		return 0, ErrUnavailable
	}
	if len(ids) == 0 {
		return 0, nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(timeLayout)
	var updated int64
	for _, id := range ids {
		res, err := tx.Exec("UPDATE inbox SET seen_at = ? WHERE id = ? AND seen_at IS NULL", now, id)
		if err != nil {
			return 0, fmt.Errorf("mark seen %s: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		updated += n
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return updated, nil
}
