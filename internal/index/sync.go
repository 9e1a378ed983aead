package index

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/starford/therapynotes/internal/apperr"
	"github.com/starford/therapynotes/internal/checksum"
	"github.com/starford/therapynotes/internal/models"
	"github.com/starford/therapynotes/internal/storage"
	"github.com/starford/therapynotes/internal/store"
)

// metaClientsChecksum remembers the digest of the clients document the
// index was last built from, so unchanged data is not reindexed.
const metaClientsChecksum = "clients_checksum"

// RowsFor projects a client's session history into index rows.
func RowsFor(c models.Client) []SessionRow {
	rows := make([]SessionRow, 0, len(c.SessionHistory))
	for _, rec := range c.SessionHistory {
		rows = append(rows, SessionRow{
			SessionID:     rec.ID,
			ClientID:      c.ID,
			ClientCode:    c.ClientID,
			ClientName:    c.Name,
			SessionDate:   rec.Date,
			Notes:         rec.Notes,
			FollowUpNotes: rec.FollowUpNotes,
		})
	}
	return rows
}

// Sync rebuilds the index from the stored clients collection when its
// content changed since the last build. A missing collection clears the
// index; a corrupt one leaves the index as is (the store accessor will
// reset the key on its next read).
func Sync(db *DB, p storage.Provider, logger *slog.Logger) error {
	raw, err := p.Get(store.KeyClients)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			if clearErr := db.ReplaceAll(nil); clearErr != nil {
				return clearErr
			}
			return db.SetMeta(metaClientsChecksum, "")
		}
		return err
	}

	cs := checksum.Sum(raw)
	prev, err := db.Meta(metaClientsChecksum)
	if err != nil {
		return err
	}
	if prev == cs {
		return nil
	}

	var clients []models.Client
	if err := json.Unmarshal(raw, &clients); err != nil {
		logger.Warn("sync: corrupt clients document, skipping reindex",
			slog.String("error", err.Error()))
		return nil
	}

	var rows []SessionRow
	for _, c := range clients {
		rows = append(rows, RowsFor(c)...)
	}
	if err := db.ReplaceAll(rows); err != nil {
		return err
	}
	logger.Debug("sync: reindexed sessions", slog.Int("count", len(rows)))
	return db.SetMeta(metaClientsChecksum, cs)
}
