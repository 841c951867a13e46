package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/landackn/landbot/internal/db"
	"github.com/landackn/landbot/internal/gazetteer"
	"github.com/landackn/landbot/internal/lands"
	"github.com/landackn/landbot/internal/lookup"
	"github.com/landackn/landbot/pkg/mapbox"
)

// env bundles the connection pool and the wired lookup service for commands
// that answer queries.
type env struct {
	pool    *pgxpool.Pool
	service *lookup.Service
}

// initEnv connects to the datastore and wires the pipeline. All collaborators
// are injected here; nothing below cmd holds a global.
func initEnv(ctx context.Context) (*env, error) {
	if cfg.Mapbox.Token == "" {
		return nil, eris.New("mapbox token is required (set LANDBOT_MAPBOX_TOKEN)")
	}

	pool, err := db.Connect(ctx, cfg.Store.DatabaseURL)
	if err != nil {
		return nil, err
	}

	matcher := gazetteer.NewMatcher(gazetteer.WithRetry(gazetteer.NewPostgresStore(pool)))
	geocoder := mapbox.NewClient(cfg.Mapbox.Token,
		mapbox.WithBaseURL(cfg.Mapbox.BaseURL),
		mapbox.WithRateLimit(cfg.Mapbox.RateLimit),
	)
	landStore := lands.WithRetry(lands.NewPostgresStore(pool))

	return &env{
		pool:    pool,
		service: lookup.New(matcher, geocoder, landStore),
	}, nil
}

func (e *env) Close() {
	e.pool.Close()
}
