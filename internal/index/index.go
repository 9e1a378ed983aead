package index

// SessionIndex defines the interface for session-note indexing.
// Consumers should depend on this interface rather than the concrete *DB
// type to facilitate testing with mocks.
type SessionIndex interface {
	ReplaceClientSessions(clientID string, rows []SessionRow) error
	DeleteClient(clientID string) error
	ReplaceAll(rows []SessionRow) error
	Search(query string, limit int) ([]SearchResult, error)
	SessionCount() (int, error)
	Meta(key string) (string, error)
	SetMeta(key, value string) error
	Close() error
}

// Verify *DB satisfies SessionIndex at compile time.
var _ SessionIndex = (*DB)(nil)
