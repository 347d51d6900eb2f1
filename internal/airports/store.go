package airports

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/flighttime-data/internal/common/db"
)

// Store persists the airport directory in Postgres so the service can
// start without the data file present. ReplaceAll swaps the full set
// in one transaction and records a dataset version row, so a reader
// never sees a half-imported directory.
type Store struct {
	db *db.DB
}

func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

func (s *Store) LoadAll(ctx context.Context) ([]*Airport, error) {
	query := `
		SELECT name, city, country, code, lat, lon
		FROM airports
		ORDER BY name
	`

	rows, err := s.db.Conn().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying airports: %w", err)
	}
	defer rows.Close()

	var airports []*Airport
	for rows.Next() {
		var a Airport
		var code sql.NullString
		if err := rows.Scan(&a.Name, &a.City, &a.Country, &code, &a.Lat, &a.Lon); err != nil {
			return nil, fmt.Errorf("scanning airport row: %w", err)
		}
		a.Code = code.String
		airports = append(airports, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating airport rows: %w", err)
	}

	if len(airports) == 0 {
		return nil, fmt.Errorf("no airports found in database, run import-airports first")
	}

	s.db.Logger().Info("Loaded airports from database", "airports", len(airports))
	return airports, nil
}

func (s *Store) ReplaceAll(ctx context.Context, airports []*Airport, sourceName string) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM airports"); err != nil {
		return fmt.Errorf("clearing airports: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO airports (name, city, country, code, lat, lon)
		VALUES ($1, $2, $3, $4, $5, $6)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range airports {
		code := sql.NullString{String: a.Code, Valid: a.Code != ""}
		if _, err := stmt.ExecContext(ctx, a.Name, a.City, a.Country, code, a.Lat, a.Lon); err != nil {
			return fmt.Errorf("inserting airport %q: %w", a.Name, err)
		}
	}

	query := `
		INSERT INTO airport_dataset_versions (source_name, airport_count, imported_at)
		VALUES ($1, $2, $3)
	`
	if _, err := tx.ExecContext(ctx, query, sourceName, len(airports), time.Now()); err != nil {
		return fmt.Errorf("recording dataset version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	s.db.Logger().Info("Replaced airport directory in database",
		"airports", len(airports),
		"source", sourceName)

	return nil
}
