//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS sessions_fts USING fts5(
			session_id UNINDEXED,
			client_name,
			notes,
			followup_notes,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsUpsert(tx *sql.Tx, r SessionRow) error {
	_, _ = tx.Exec(`DELETE FROM sessions_fts WHERE session_id = ?`, r.SessionID)
	_, err := tx.Exec(`INSERT INTO sessions_fts (session_id, client_name, notes, followup_notes) VALUES (?, ?, ?, ?)`,
		r.SessionID, r.ClientName, r.Notes, r.FollowUpNotes)
	if err != nil {
		return fmt.Errorf("index: upsert fts: %w", err)
	}
	return nil
}

func ftsDelete(tx *sql.Tx, sessionID string) {
	_, _ = tx.Exec(`DELETE FROM sessions_fts WHERE session_id = ?`, sessionID)
}

func ftsClear(tx *sql.Tx) {
	_, _ = tx.Exec(`DELETE FROM sessions_fts`)
}

// Search performs an FTS5 full-text search over session notes.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT s.session_id,
		       s.client_id,
		       s.client_code,
		       s.client_name,
		       s.session_date,
		       snippet(sessions_fts, 2, '<b>', '</b>', '...', 64)
		FROM sessions_fts f
		JOIN sessions s ON s.session_id = f.session_id
		WHERE sessions_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.SessionID, &r.ClientID, &r.ClientCode, &r.ClientName, &r.Date, &r.Snippet); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
