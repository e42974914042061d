package memory

import (
	"context"
	"sync"
	"time"

	"github.com/newnonsick/Football-APP-Backend/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	records map[int64]match.Record
	now     func() time.Time
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{
		records: make(map[int64]match.Record),
		now:     time.Now,
	}
}

func (r *MatchRepository) GetRecord(_ context.Context, id int64) (match.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	return record, ok, nil
}

func (r *MatchRepository) CreateRecord(_ context.Context, record match.Record) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[record.ID]; exists {
		return false, nil
	}
	now := r.now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now
	r.records[record.ID] = record
	return true, nil
}

func (r *MatchRepository) UpdateRecord(_ context.Context, record match.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.records[record.ID]
	if !ok {
		return errRecordNotFound("match", record.ID)
	}
	existing.Status = record.Status
	existing.HomeScore = record.HomeScore
	existing.AwayScore = record.AwayScore
	existing.UpdatedAt = r.now().UTC()
	r.records[record.ID] = existing
	return nil
}
