package repository

import (
	"context"
	"fmt"
	"net"
	"net/url"

	"github.com/UnknownOlympus/cafemap/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewDatabase opens a connection pool to PostgreSQL and verifies it with a ping.
func NewDatabase(ctx context.Context, host, port, user, password, name string) (*pgxpool.Pool, error) {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(user, password),
		Host:   net.JoinHostPort(host, port),
		Path:   name,
	}

	pool, err := pgxpool.New(ctx, dsn.String())
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// FetchCafes returns every cafe of the cafes table in insertion order.
func (r *Repository) FetchCafes(ctx context.Context) ([]models.Cafe, error) {
	query := `
		SELECT name, longitude, latitude
		FROM public.cafes
		ORDER BY id ASC;
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query cafes: %w", err)
	}
	defer rows.Close()

	cafes := []models.Cafe{}
	for rows.Next() {
		var cafe models.Cafe
		if errScan := rows.Scan(&cafe.Name, &cafe.Coordinates.Longitude, &cafe.Coordinates.Latitude); errScan != nil {
			return nil, fmt.Errorf("failed to scan cafe: %w", errScan)
		}
		cafes = append(cafes, cafe)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	r.log.InfoContext(ctx, "Cafes loaded from database", "count", len(cafes))

	return cafes, nil
}
