package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository. The
// position column preserves source feature order across restarts.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL catalog repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// List retrieves all locations in catalog order.
func (r *PostgresRepository) List(ctx context.Context) ([]Location, error) {
	query := `
		SELECT name, address, hours, phone, lat, lon, distance_label
		FROM store_locations
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	defer rows.Close()

	var locations []Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, *loc)
	}

	return locations, rows.Err()
}

// Get retrieves the location at the given index.
func (r *PostgresRepository) Get(ctx context.Context, index int) (*Location, error) {
	query := `
		SELECT name, address, hours, phone, lat, lon, distance_label
		FROM store_locations
		WHERE position = $1
	`

	row := r.pool.QueryRow(ctx, query, index)
	loc, err := scanLocation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}

	return loc, nil
}

// Count returns the number of catalog entries.
func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM store_locations`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting locations: %w", err)
	}
	return count, nil
}

// SetDistance updates the distance label for the location at index.
func (r *PostgresRepository) SetDistance(ctx context.Context, index int, label string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE store_locations SET distance_label = $1 WHERE position = $2`,
		label, index,
	)
	if err != nil {
		return fmt.Errorf("updating distance label: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLocationNotFound
	}
	return nil
}

// Replace swaps the whole catalog for a freshly built one in a single
// transaction, preserving feature order via the position column.
func (r *PostgresRepository) Replace(ctx context.Context, locations []Location) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(ctx, `DELETE FROM store_locations`); err != nil {
		return fmt.Errorf("clearing locations: %w", err)
	}

	for i, loc := range locations {
		_, err := tx.Exec(ctx, `
			INSERT INTO store_locations
				(position, name, address, hours, phone, lat, lon, distance_label)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, i, loc.Name, loc.Address, loc.Hours, loc.Phone,
			loc.Coordinate.Lat, loc.Coordinate.Lon, nullable(loc.Distance))
		if err != nil {
			return fmt.Errorf("inserting location %d: %w", i, err)
		}
	}

	return tx.Commit(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLocation(row rowScanner) (*Location, error) {
	var loc Location
	var distance *string

	err := row.Scan(
		&loc.Name,
		&loc.Address,
		&loc.Hours,
		&loc.Phone,
		&loc.Coordinate.Lat,
		&loc.Coordinate.Lon,
		&distance,
	)
	if err != nil {
		return nil, err
	}

	if distance != nil {
		loc.Distance = *distance
	}
	return &loc, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
