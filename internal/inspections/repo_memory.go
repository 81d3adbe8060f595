package inspections

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo for dev and tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Inspection // userId -> inspections
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Inspection),
	}
}

// Create stores an inspection for a user.
func (r *MemoryRepo) Create(ctx context.Context, insp Inspection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[insp.UserID] = append(r.data[insp.UserID], insp)
	return nil
}

// GetByID returns an inspection by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, inspectionID string) (Inspection, error) {
	if err := ctx.Err(); err != nil {
		return Inspection{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.data[userID]
	for i := range list {
		if list[i].ID == inspectionID {
			return list[i], nil
		}
	}
	return Inspection{}, ErrNotFound
}

// ListByUser returns inspections for a user, newest first, honoring limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Inspection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	userList := r.data[userID]
	r.mu.RUnlock()

	if len(userList) == 0 || offset >= len(userList) {
		return []Inspection{}, nil
	}

	list := make([]Inspection, len(userList))
	copy(list, userList)
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})

	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end], nil
}

// Delete removes an inspection for a user.
func (r *MemoryRepo) Delete(ctx context.Context, userID, inspectionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.data[userID]
	for i := range list {
		if list[i].ID == inspectionID {
			r.data[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

var _ Repo = (*MemoryRepo)(nil)
