// Package gazetteer resolves free-text and ZIP-code queries against the local
// place table. ZIP codes are looked up exactly and never fuzzy-matched; city
// and state text goes through phonetic and edit-distance matching in SQL.
package gazetteer

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/landackn/landbot/internal/model"
)

// ErrNoMatch is returned when neither the postal nor the fuzzy path finds a
// record for the query.
var ErrNoMatch = eris.New("gazetteer: no match")

// InvalidPostalCodeError reports a query that looks like a ZIP code but fails
// the strict 5-digit check. It is surfaced to the caller rather than being
// silently passed on to fuzzy matching.
type InvalidPostalCodeError struct {
	Input string
}

func (e *InvalidPostalCodeError) Error() string {
	return fmt.Sprintf("gazetteer: %q is not a valid ZIP code", e.Input)
}

// Record is one gazetteer row: a ZIP code with its city, state, and centroid.
type Record struct {
	Zip       string
	City      string
	StateName string
	StateCode string
	Latitude  float64
	Longitude float64
}

// Store is the read-only query surface the matcher needs. Both lookups return
// (nil, nil) when nothing matches.
type Store interface {
	// PostalLookup finds the record for an exact 5-digit ZIP code.
	PostalLookup(ctx context.Context, zip string) (*Record, error)

	// FuzzyLookup finds the single closest city/state record for the two
	// normalized keys, or nil when no candidate is close enough.
	FuzzyLookup(ctx context.Context, nameKey, codeKey string) (*Record, error)
}

// Matcher resolves queries against a gazetteer Store.
type Matcher struct {
	store Store
}

// NewMatcher creates a Matcher backed by the given store.
func NewMatcher(store Store) *Matcher {
	return &Matcher{store: store}
}

// Resolve turns a raw query into a ResolvedPlace, or ErrNoMatch. ZIP-shaped
// queries take the postal path exclusively; a ZIP-shaped query that is not a
// valid 5-digit code yields an *InvalidPostalCodeError.
func (m *Matcher) Resolve(ctx context.Context, query string) (*model.ResolvedPlace, error) {
	query = strings.TrimSpace(query)

	if zipShaped.MatchString(query) {
		sub := validZip.FindStringSubmatch(query)
		if sub == nil {
			return nil, &InvalidPostalCodeError{Input: query}
		}
		return m.resolvePostal(ctx, sub[1])
	}

	nameKey, codeKey := keyCandidates(query)
	rec, err := m.store.FuzzyLookup(ctx, nameKey, codeKey)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNoMatch
	}

	return &model.ResolvedPlace{
		Name:       rec.City,
		Region:     rec.StateName,
		RegionCode: rec.StateCode,
		Latitude:   rec.Latitude,
		Longitude:  rec.Longitude,
		Type:       model.TypePlace,
	}, nil
}

func (m *Matcher) resolvePostal(ctx context.Context, zip string) (*model.ResolvedPlace, error) {
	rec, err := m.store.PostalLookup(ctx, zip)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNoMatch
	}

	// The ZIP itself is the display name for postal matches.
	return &model.ResolvedPlace{
		Name:       zip,
		Region:     rec.StateName,
		RegionCode: rec.StateCode,
		Place:      rec.City,
		Latitude:   rec.Latitude,
		Longitude:  rec.Longitude,
		Type:       model.TypePostcode,
	}, nil
}
