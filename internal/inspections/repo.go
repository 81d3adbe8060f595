package inspections

import "context"

// Repo abstracts inspection storage.
type Repo interface {
	Create(ctx context.Context, insp Inspection) error
	GetByID(ctx context.Context, userID, inspectionID string) (Inspection, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Inspection, error)
	Delete(ctx context.Context, userID, inspectionID string) error
}
