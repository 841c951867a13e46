// Package lands answers point-containment queries against the indigenous
// territory table.
package lands

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/landackn/landbot/internal/db"
	"github.com/landackn/landbot/internal/model"
	"github.com/landackn/landbot/internal/resilience"
)

// Store returns the land regions whose polygon contains a point. An empty
// result is a legitimate outcome, not an error. Callers must not assume any
// particular ordering, and must preserve whatever ordering is returned.
type Store interface {
	LandsAt(ctx context.Context, lon, lat float64) ([]model.Land, error)
}

// PostgresStore implements Store against gazetteer.territories with PostGIS.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgresStore creates a PostgresStore on the given pool.
func NewPostgresStore(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Points are interpreted as SRID 4326 (WGS 84).
const landsAtSQL = `
	SELECT name, COALESCE(description, '')
	FROM gazetteer.territories
	WHERE ST_Contains(geom, ST_SetSRID(ST_MakePoint($1, $2), 4326))
	GROUP BY name, description
`

// LandsAt implements Store.
func (s *PostgresStore) LandsAt(ctx context.Context, lon, lat float64) ([]model.Land, error) {
	rows, err := s.pool.Query(ctx, landsAtSQL, lon, lat)
	if err != nil {
		return nil, eris.Wrap(err, "lands: query point containment")
	}
	defer rows.Close()

	var lands []model.Land
	for rows.Next() {
		var l model.Land
		if err := rows.Scan(&l.Name, &l.Description); err != nil {
			return nil, eris.Wrap(err, "lands: scan row")
		}
		lands = append(lands, l)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "lands: iterate rows")
	}
	return lands, nil
}

// RetryingStore decorates a Store with retry-on-dropped-connection behavior.
type RetryingStore struct {
	next Store
	cfg  resilience.RetryConfig
}

// WithRetry wraps a Store in retry logic using the default configuration.
func WithRetry(next Store) *RetryingStore {
	return &RetryingStore{next: next, cfg: resilience.DefaultRetryConfig()}
}

// LandsAt implements Store.
func (s *RetryingStore) LandsAt(ctx context.Context, lon, lat float64) ([]model.Land, error) {
	cfg := s.cfg
	cfg.OnRetry = resilience.RetryLogger("lands", "lands_at")
	return resilience.DoVal(ctx, cfg, func(ctx context.Context) ([]model.Land, error) {
		return s.next.LandsAt(ctx, lon, lat)
	})
}
