package analysis

import "context"

// Repository port (interface for persistence). The collection is
// append-only: no update or delete operations exist.
type Repository interface {
	Append(ctx context.Context, r *Record) error
	// ScanAll returns every stored record. Ordering carries no meaning
	// beyond what the timestamps encode; callers must not rely on it.
	ScanAll(ctx context.Context) ([]Record, error)
}
