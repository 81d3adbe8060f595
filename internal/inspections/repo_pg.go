package inspections

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"inspection-backend/internal/forensics"
)

// PGRepo implements Repo using Postgres. The inspection record itself is
// stored as a JSONB payload; the engine never queries inside it.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new inspection.
func (r *PGRepo) Create(ctx context.Context, insp Inspection) error {
	const query = `
INSERT INTO inspections (
    id,
    user_id,
    label,
    record,
    created_at
) VALUES ($1, $2, $3, $4, $5)`

	payload, err := json.Marshal(insp.Record)
	if err != nil {
		return fmt.Errorf("marshal inspection record: %w", err)
	}

	var label sql.NullString
	if insp.Label != "" {
		label = sql.NullString{String: insp.Label, Valid: true}
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		insp.ID,
		insp.UserID,
		label,
		payload,
		insp.CreatedAt,
	)
	return err
}

// GetByID fetches an inspection by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, inspectionID string) (Inspection, error) {
	const query = `
SELECT id, user_id, label, record, created_at
FROM inspections
WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL
LIMIT 1`

	row := r.DB.QueryRowContext(ctx, query, userID, inspectionID)
	insp, err := scanInspection(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Inspection{}, ErrNotFound
		}
		return Inspection{}, err
	}
	return insp, nil
}

// ListByUser lists inspections ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Inspection, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, label, record, created_at
FROM inspections
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Inspection
	for rows.Next() {
		insp, err := scanInspection(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, insp)
	}
	return out, rows.Err()
}

// Delete soft-deletes an inspection for a user.
func (r *PGRepo) Delete(ctx context.Context, userID, inspectionID string) error {
	const query = `
UPDATE inspections
SET deleted_at = NOW()
WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL`

	res, err := r.DB.ExecContext(ctx, query, userID, inspectionID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanInspection(scan func(dest ...any) error) (Inspection, error) {
	var insp Inspection
	var label sql.NullString
	var payload []byte
	if err := scan(&insp.ID, &insp.UserID, &label, &payload, &insp.CreatedAt); err != nil {
		return Inspection{}, err
	}
	if label.Valid {
		insp.Label = label.String
	}
	var record forensics.InspectionRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return Inspection{}, fmt.Errorf("unmarshal inspection record: %w", err)
	}
	insp.Record = record
	return insp, nil
}

var _ Repo = (*PGRepo)(nil)
