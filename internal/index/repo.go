package index

import (
	"database/sql"
	"fmt"
)

// SessionRow is one indexed session record.
type SessionRow struct {
	SessionID     string
	ClientID      string
	ClientCode    string
	ClientName    string
	SessionDate   string
	Notes         string
	FollowUpNotes string
}

// SearchResult is one search hit.
type SearchResult struct {
	SessionID  string `json:"sessionId"`
	ClientID   string `json:"clientId"`
	ClientCode string `json:"clientCode"`
	ClientName string `json:"clientName"`
	Date       string `json:"date"`
	Snippet    string `json:"snippet"`
}

// ReplaceClientSessions replaces every indexed session of one client in a
// single transaction.
func (db *DB) ReplaceClientSessions(clientID string, rows []SessionRow) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if err := deleteClientTx(tx, clientID); err != nil {
		return err
	}
	for _, r := range rows {
		if err := insertSessionTx(tx, r); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// DeleteClient removes every indexed session of a client.
func (db *DB) DeleteClient(clientID string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := deleteClientTx(tx, clientID); err != nil {
		return err
	}
	return tx.Commit()
}

// ReplaceAll rebuilds the whole index from the given rows.
func (db *DB) ReplaceAll(rows []SessionRow) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`DELETE FROM sessions`); err != nil {
		return fmt.Errorf("index: clear sessions: %w", err)
	}
	ftsClear(tx)
	for _, r := range rows {
		if err := insertSessionTx(tx, r); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SessionCount returns the number of indexed sessions.
func (db *DB) SessionCount() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("index: count: %w", err)
	}
	return n, nil
}

// Meta returns the stored metadata value for key, or empty string.
func (db *DB) Meta(key string) (string, error) {
	var v string
	err := db.conn.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("index: meta get: %w", err)
	}
	return v, nil
}

// SetMeta stores a metadata value.
func (db *DB) SetMeta(key, value string) error {
	_, err := db.conn.Exec(`
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("index: meta set: %w", err)
	}
	return nil
}

func deleteClientTx(tx *sql.Tx, clientID string) error {
	rows, err := tx.Query(`SELECT session_id FROM sessions WHERE client_id = ?`, clientID)
	if err != nil {
		return fmt.Errorf("index: select client sessions: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, id := range ids {
		ftsDelete(tx, id)
	}
	if _, err := tx.Exec(`DELETE FROM sessions WHERE client_id = ?`, clientID); err != nil {
		return fmt.Errorf("index: delete client sessions: %w", err)
	}
	return nil
}

func insertSessionTx(tx *sql.Tx, r SessionRow) error {
	_, err := tx.Exec(`
		INSERT INTO sessions (session_id, client_id, client_code, client_name, session_date, notes, followup_notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			client_id      = excluded.client_id,
			client_code    = excluded.client_code,
			client_name    = excluded.client_name,
			session_date   = excluded.session_date,
			notes          = excluded.notes,
			followup_notes = excluded.followup_notes
	`, r.SessionID, r.ClientID, r.ClientCode, r.ClientName, r.SessionDate, r.Notes, r.FollowUpNotes)
	if err != nil {
		return fmt.Errorf("index: insert session: %w", err)
	}
	return ftsUpsert(tx, r)
}
