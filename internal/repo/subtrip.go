package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// SubtripRepo defines the persistence operations for Subtrips.
// All write and single-read operations are scoped by tripID; the caller is
// responsible for checking that the trip belongs to the requesting user.
type SubtripRepo interface {
	// Create inserts a new subtrip and returns the persisted record.
	Create(ctx context.Context, s domain.Subtrip) (domain.Subtrip, error)

	// GetByID retrieves a single subtrip scoped to the given tripID.
	GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Subtrip, error)

	// ListByTripID returns the trip's subtrips ordered by start_date, then order_index.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Subtrip, error)

	// ListByTripIDs returns the subtrips of every listed trip in the same order.
	ListByTripIDs(ctx context.Context, tripIDs []uuid.UUID) ([]domain.Subtrip, error)

	// Update overwrites the mutable fields of a subtrip scoped to its TripID.
	Update(ctx context.Context, s domain.Subtrip) (domain.Subtrip, error)

	// Delete removes a subtrip; items that referenced it keep existing
	// with no subtrip.
	Delete(ctx context.Context, tripID, id uuid.UUID) error
}

type pgSubtripRepo struct {
	db db
}

// NewSubtripRepo constructs a SubtripRepo backed by the provided db connection.
func NewSubtripRepo(db db) SubtripRepo {
	return &pgSubtripRepo{db: db}
}

const subtripColumns = `id, trip_id, location, start_date, end_date, color, description, order_index, created_at, updated_at`

func (r *pgSubtripRepo) Create(ctx context.Context, s domain.Subtrip) (domain.Subtrip, error) {
	const q = `
		INSERT INTO subtrips (trip_id, location, start_date, end_date, color, description, order_index)
		VALUES (@trip_id, @location, @start_date, @end_date, @color, @description, @order_index)
		RETURNING ` + subtripColumns

	result, err := scanSubtrip(r.db.QueryRow(ctx, q, subtripArgs(s)))
	if err != nil {
		return domain.Subtrip{}, fmt.Errorf("repo.SubtripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgSubtripRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Subtrip, error) {
	const q = `SELECT ` + subtripColumns + ` FROM subtrips WHERE id = @id AND trip_id = @trip_id`

	result, err := scanSubtrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID}))
	if err != nil {
		return domain.Subtrip{}, fmt.Errorf("repo.SubtripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgSubtripRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Subtrip, error) {
	const q = `
		SELECT ` + subtripColumns + `
		FROM subtrips
		WHERE trip_id = @trip_id
		ORDER BY start_date, order_index, created_at`

	out, err := r.query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.SubtripRepo.ListByTripID: %w", err)
	}
	return out, nil
}

func (r *pgSubtripRepo) ListByTripIDs(ctx context.Context, tripIDs []uuid.UUID) ([]domain.Subtrip, error) {
	if len(tripIDs) == 0 {
		return []domain.Subtrip{}, nil
	}

	const q = `
		SELECT ` + subtripColumns + `
		FROM subtrips
		WHERE trip_id = ANY(@trip_ids)
		ORDER BY start_date, order_index, created_at`

	out, err := r.query(ctx, q, pgx.NamedArgs{"trip_ids": tripIDs})
	if err != nil {
		return nil, fmt.Errorf("repo.SubtripRepo.ListByTripIDs: %w", err)
	}
	return out, nil
}

func (r *pgSubtripRepo) Update(ctx context.Context, s domain.Subtrip) (domain.Subtrip, error) {
	const q = `
		UPDATE subtrips
		SET location    = @location,
		    start_date  = @start_date,
		    end_date    = @end_date,
		    color       = @color,
		    description = @description,
		    order_index = @order_index,
		    updated_at  = now()
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + subtripColumns

	args := subtripArgs(s)
	args["id"] = s.ID

	result, err := scanSubtrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Subtrip{}, fmt.Errorf("repo.SubtripRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgSubtripRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	const q = `DELETE FROM subtrips WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.SubtripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.SubtripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgSubtripRepo) query(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Subtrip, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Subtrip{}
	for rows.Next() {
		s, err := scanSubtrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func subtripArgs(s domain.Subtrip) pgx.NamedArgs {
	return pgx.NamedArgs{
		"trip_id":     s.TripID,
		"location":    s.Location,
		"start_date":  s.StartDate,
		"end_date":    s.EndDate,
		"color":       s.Color,
		"description": s.Description,
		"order_index": s.OrderIndex,
	}
}

func scanSubtrip(sc scanner) (domain.Subtrip, error) {
	var (
		s          domain.Subtrip
		id, tripID pgtype.UUID
		start, end pgtype.Date
	)

	err := sc.Scan(&id, &tripID, &s.Location, &start, &end, &s.Color, &s.Description,
		&s.OrderIndex, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Subtrip{}, domain.ErrNotFound
		}
		return domain.Subtrip{}, err
	}

	s.ID = uuid.UUID(id.Bytes)
	s.TripID = uuid.UUID(tripID.Bytes)
	s.StartDate = start.Time
	s.EndDate = end.Time
	return s, nil
}
