package match

import "context"

// Repository persists match records.
type Repository interface {
	GetRecord(ctx context.Context, id int64) (Record, bool, error)
	// CreateRecord returns false when a record with the same id already exists.
	CreateRecord(ctx context.Context, record Record) (bool, error)
	UpdateRecord(ctx context.Context, record Record) error
}
