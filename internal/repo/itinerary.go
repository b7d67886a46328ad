package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// ItineraryRepo defines the persistence operations for itinerary items.
// Single-item operations are scoped by tripID.
type ItineraryRepo interface {
	Create(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error)

	// GetByID returns domain.ErrNotFound if the item does not belong to tripID.
	GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.ItineraryItem, error)

	// ListByTripID returns the trip's items matching f, ordered by start_time.
	ListByTripID(ctx context.Context, tripID uuid.UUID, f domain.ItemFilter) ([]domain.ItineraryItem, error)

	// ListByTripIDs returns the items of every listed trip matching f, ordered by start_time.
	ListByTripIDs(ctx context.Context, tripIDs []uuid.UUID, f domain.ItemFilter) ([]domain.ItineraryItem, error)

	Update(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error)

	Delete(ctx context.Context, tripID, id uuid.UUID) error
}

type pgItineraryRepo struct {
	db db
}

// NewItineraryRepo constructs an ItineraryRepo backed by the provided db connection.
func NewItineraryRepo(db db) ItineraryRepo {
	return &pgItineraryRepo{db: db}
}

// psql builds statements with Postgres $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var itemColumns = []string{
	"id", "trip_id", "subtrip_id", "type", "title", "location", "start_time", "end_time",
	"notes", "cost", "currency", "created_at", "updated_at",
}

func (r *pgItineraryRepo) Create(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	query := psql.Insert("itinerary_items").
		Columns("trip_id", "subtrip_id", "type", "title", "location", "start_time", "end_time", "notes", "cost", "currency").
		Values(item.TripID, item.SubtripID, string(item.Type), item.Title, item.Location,
			item.StartTime, item.EndTime, item.Notes, item.Cost, nullableText(item.Currency)).
		Suffix("RETURNING " + strings.Join(itemColumns, ", "))

	result, err := r.queryRow(ctx, query)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("repo.ItineraryRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgItineraryRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.ItineraryItem, error) {
	query := psql.Select(itemColumns...).
		From("itinerary_items").
		Where(sq.Eq{"id": id, "trip_id": tripID})

	result, err := r.queryRow(ctx, query)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("repo.ItineraryRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgItineraryRepo) ListByTripID(ctx context.Context, tripID uuid.UUID, f domain.ItemFilter) ([]domain.ItineraryItem, error) {
	items, err := r.list(ctx, sq.Eq{"trip_id": tripID}, f)
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ListByTripID: %w", err)
	}
	return items, nil
}

func (r *pgItineraryRepo) ListByTripIDs(ctx context.Context, tripIDs []uuid.UUID, f domain.ItemFilter) ([]domain.ItineraryItem, error) {
	if len(tripIDs) == 0 {
		return []domain.ItineraryItem{}, nil
	}
	items, err := r.list(ctx, sq.Eq{"trip_id": tripIDs}, f)
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ListByTripIDs: %w", err)
	}
	return items, nil
}

func (r *pgItineraryRepo) Update(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	query := psql.Update("itinerary_items").
		Set("subtrip_id", item.SubtripID).
		Set("type", string(item.Type)).
		Set("title", item.Title).
		Set("location", item.Location).
		Set("start_time", item.StartTime).
		Set("end_time", item.EndTime).
		Set("notes", item.Notes).
		Set("cost", item.Cost).
		Set("currency", nullableText(item.Currency)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": item.ID, "trip_id": item.TripID}).
		Suffix("RETURNING " + strings.Join(itemColumns, ", "))

	result, err := r.queryRow(ctx, query)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("repo.ItineraryRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgItineraryRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	sql, args, err := psql.Delete("itinerary_items").
		Where(sq.Eq{"id": id, "trip_id": tripID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("repo.ItineraryRepo.Delete: build: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// list applies the optional filter bounds on start_time and the type.
func (r *pgItineraryRepo) list(ctx context.Context, scope sq.Sqlizer, f domain.ItemFilter) ([]domain.ItineraryItem, error) {
	query := psql.Select(itemColumns...).
		From("itinerary_items").
		Where(scope).
		OrderBy("start_time", "created_at")
	if f.From != nil {
		query = query.Where(sq.GtOrEq{"start_time": *f.From})
	}
	if f.To != nil {
		query = query.Where(sq.LtOrEq{"start_time": *f.To})
	}
	if f.Type != "" {
		query = query.Where(sq.Eq{"type": string(f.Type)})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.ItineraryItem{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return items, nil
}

func (r *pgItineraryRepo) queryRow(ctx context.Context, query sq.Sqlizer) (domain.ItineraryItem, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("build: %w", err)
	}
	return scanItem(r.db.QueryRow(ctx, sql, args...))
}

func scanItem(s scanner) (domain.ItineraryItem, error) {
	var (
		it         domain.ItineraryItem
		id, tripID pgtype.UUID
		subtripID  pgtype.UUID
		itemType   string
		cost       pgtype.Float8
		currency   pgtype.Text
	)

	err := s.Scan(&id, &tripID, &subtripID, &itemType, &it.Title, &it.Location,
		&it.StartTime, &it.EndTime, &it.Notes, &cost, &currency, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ItineraryItem{}, domain.ErrNotFound
		}
		return domain.ItineraryItem{}, err
	}

	it.ID = uuid.UUID(id.Bytes)
	it.TripID = uuid.UUID(tripID.Bytes)
	if subtripID.Valid {
		sid := uuid.UUID(subtripID.Bytes)
		it.SubtripID = &sid
	}
	it.Type = domain.ItemType(itemType)
	if cost.Valid {
		c := cost.Float64
		it.Cost = &c
	}
	it.Currency = currency.String
	return it, nil
}

// nullableText stores an empty string as NULL.
func nullableText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
