package incidents

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/vigil/internal/populator"
	"github.com/JaimeStill/vigil/pkg/repository"
)

// Store persists incident status and pipeline output.
type Store interface {
	Find(ctx context.Context, id uuid.UUID) (*Incident, error)
	SetStatus(ctx context.Context, inc populator.Incident, status string) error
	Merge(ctx context.Context, id uuid.UUID, strategy string, f populator.Fields) (*Incident, error)
}

type store struct {
	db *sql.DB
}

// NewStore creates a PostgreSQL-backed Store.
func NewStore(db *sql.DB) Store {
	return &store{db: db}
}

func (s *store) Find(ctx context.Context, id uuid.UUID) (*Incident, error) {
	q := `SELECT ` + columns + ` FROM incidents WHERE id = $1`

	i, err := repository.QueryOne(ctx, s.db, q, []any{id}, scanIncident)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &i, nil
}

// SetStatus records the incident's pipeline stage, creating the row on first
// use.
func (s *store) SetStatus(ctx context.Context, inc populator.Incident, status string) error {
	q := `
		INSERT INTO incidents (id, tenant, storage_key, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			tenant = EXCLUDED.tenant,
			storage_key = EXCLUDED.storage_key,
			status = EXCLUDED.status,
			updated_at = NOW()`

	if err := repository.ExecExpectOne(ctx, s.db, q, inc.ID, inc.Tenant, inc.StorageKey, status); err != nil {
		return fmt.Errorf("set status %q: %w", status, repository.MapError(err, ErrNotFound, ErrDuplicate))
	}
	return nil
}

func (s *store) Merge(ctx context.Context, id uuid.UUID, strategy string, f populator.Fields) (*Incident, error) {
	q := `
		UPDATE incidents SET
			category = $2,
			location = $3,
			incident_date = $4,
			incident_time = $5,
			case_number = $6,
			summary = $7,
			explanation = $8,
			is_clery = $9,
			needs_more_info = $10,
			requires_timely_warning = $11,
			confidence = $12,
			status = $13,
			strategy = $14,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + columns

	args := []any{
		id,
		f.Category,
		f.Location,
		f.Date,
		f.Time,
		f.CaseNumber,
		f.Summary,
		f.Explanation,
		f.IsClery,
		f.NeedsMoreInfo,
		f.RequiresTimelyWarning,
		f.Confidence,
		f.Status,
		strategy,
	}

	i, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (Incident, error) {
		return repository.QueryOne(ctx, tx, q, args, scanIncident)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &i, nil
}
