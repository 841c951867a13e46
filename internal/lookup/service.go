// Package lookup runs the resolution pipeline: local gazetteer first, remote
// geocoder as fallback, land lookup, then rendering. Every failure path maps
// to exactly one deterministic user-facing message.
package lookup

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/landackn/landbot/internal/gazetteer"
	"github.com/landackn/landbot/internal/lands"
	"github.com/landackn/landbot/internal/model"
	"github.com/landackn/landbot/internal/respond"
	"github.com/landackn/landbot/pkg/mapbox"
)

// minQueryLen is the shortest query worth resolving; anything shorter gets
// the example prompt back.
const minQueryLen = 3

// Resolver is the local gazetteer surface the pipeline consumes.
type Resolver interface {
	Resolve(ctx context.Context, query string) (*model.ResolvedPlace, error)
}

// Service resolves queries end to end. All collaborators are injected; a
// Service holds no mutable state and is safe for concurrent use.
type Service struct {
	gazetteer Resolver
	geocoder  mapbox.Client
	lands     lands.Store
}

// New creates a Service from its three collaborators.
func New(gaz Resolver, geocoder mapbox.Client, landStore lands.Store) *Service {
	return &Service{gazetteer: gaz, geocoder: geocoder, lands: landStore}
}

// Lookup resolves a raw query to the final response message. It never
// returns an empty string: every outcome, including failures, renders one
// deterministic message.
func (s *Service) Lookup(ctx context.Context, query string) string {
	query = strings.TrimSpace(query)
	log := zap.L().With(zap.String("query", query))

	if utf8.RuneCountInString(query) < minQueryLen {
		return respond.Prompt()
	}

	place, err := s.resolve(ctx, log, query)
	if err != nil {
		return s.messageFor(log, query, err)
	}

	// Oversized places and POIs are answered without a land lookup.
	if !wantsLands(place.Type) {
		return respond.Render(query, *place, nil)
	}

	overlapping, err := s.lands.LandsAt(ctx, place.Longitude, place.Latitude)
	if err != nil {
		log.Error("land lookup failed", zap.Error(err))
		return respond.Trouble()
	}

	return respond.Render(query, *place, overlapping)
}

// resolve tries the local gazetteer and falls back to the remote geocoder
// when the gazetteer has no match. ZIP-shaped queries never reach the remote
// path: the gazetteer either answers them or rejects them as malformed.
func (s *Service) resolve(ctx context.Context, log *zap.Logger, query string) (*model.ResolvedPlace, error) {
	place, err := s.gazetteer.Resolve(ctx, query)
	if err == nil {
		return place, nil
	}
	if !errors.Is(err, gazetteer.ErrNoMatch) {
		return nil, err
	}

	feature, err := s.geocoder.Geolocate(ctx, query)
	if err != nil {
		return nil, err
	}

	place = placeFromFeature(feature)
	if !validCoords(place.Latitude, place.Longitude) {
		log.Warn("geocoder returned out-of-range coordinates",
			zap.Float64("lat", place.Latitude),
			zap.Float64("lon", place.Longitude),
		)
		return nil, mapbox.ErrLocationNotFound
	}
	return place, nil
}

// messageFor maps the error taxonomy onto its single response message.
func (s *Service) messageFor(log *zap.Logger, query string, err error) string {
	var badZip *gazetteer.InvalidPostalCodeError
	var apiErr *mapbox.APIError

	switch {
	case errors.As(err, &badZip):
		return respond.Prompt()
	case errors.Is(err, mapbox.ErrLocationNotFound):
		return respond.NotFound(query)
	case errors.As(err, &apiErr):
		log.Error("geocoder error", zap.Int("status", apiErr.StatusCode), zap.String("message", apiErr.Message))
		return respond.Trouble()
	default:
		log.Error("resolution failed", zap.Error(err))
		return respond.Trouble()
	}
}

func placeFromFeature(f *mapbox.Feature) *model.ResolvedPlace {
	ancestors := f.ContextMap()
	return &model.ResolvedPlace{
		Name:      f.Text,
		Region:    ancestors["region"],
		Place:     ancestors["place"],
		Longitude: f.Center[0],
		Latitude:  f.Center[1],
		Type:      model.PlaceType(f.PrimaryType()),
	}
}

func wantsLands(t model.PlaceType) bool {
	switch t {
	case model.TypeCountry, model.TypeRegion, model.TypeDistrict, model.TypePOI:
		return false
	}
	return true
}

func validCoords(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
