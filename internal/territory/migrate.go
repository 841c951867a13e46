package territory

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/landackn/landbot/internal/db"
)

// migrations holds the schema DDL, applied in order. Statements are
// idempotent so migrate can run on every deploy.
var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS postgis`,
	`CREATE EXTENSION IF NOT EXISTS fuzzystrmatch`,
	`CREATE SCHEMA IF NOT EXISTS gazetteer`,
	`CREATE TABLE IF NOT EXISTS gazetteer.zip_codes (
		zip        TEXT PRIMARY KEY,
		city       TEXT NOT NULL,
		state_name TEXT NOT NULL,
		state_code TEXT NOT NULL,
		latitude   DOUBLE PRECISION NOT NULL,
		longitude  DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS gazetteer.territories (
		id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		description TEXT,
		geom        geometry(MultiPolygon, 4326) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_territories_geom ON gazetteer.territories USING gist (geom)`,
}

// Migrate applies the schema required by the gazetteer and land stores.
func Migrate(ctx context.Context, pool db.Pool) error {
	for _, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return eris.Wrapf(err, "territory: migrate: %.40s", stmt)
		}
	}
	return nil
}
