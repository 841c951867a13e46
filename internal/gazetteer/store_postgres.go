package gazetteer

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/landackn/landbot/internal/db"
)

// PostgresStore implements Store against gazetteer.zip_codes. The fuzzy
// predicates run in SQL via the fuzzystrmatch extension (metaphone and
// levenshtein), so matching stays inside the database.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgresStore creates a PostgresStore on the given pool.
func NewPostgresStore(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postalSQL = `
	SELECT zip, city, state_name, state_code, latitude, longitude
	FROM gazetteer.zip_codes
	WHERE zip = $1
`

// PostalLookup implements Store.
func (s *PostgresStore) PostalLookup(ctx context.Context, zip string) (*Record, error) {
	var r Record
	err := s.pool.QueryRow(ctx, postalSQL, zip).Scan(
		&r.Zip, &r.City, &r.StateName, &r.StateCode, &r.Latitude, &r.Longitude,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "gazetteer: postal lookup")
	}
	return &r, nil
}

// fuzzySQL matches either normalized representation of the query by metaphone
// equality or by levenshtein distance below 2, ranked by ascending distance
// against the state-code form. Equidistant candidates break lexicographically
// on city, state code, then zip, so the tie-break does not depend on the
// store's row ordering.
const fuzzySQL = `
	SELECT zip, city, state_name, state_code, latitude, longitude
	FROM gazetteer.zip_codes
	WHERE metaphone(city || state_name, 16) = metaphone($1, 16)
	   OR metaphone(city || state_code, 16) = metaphone($2, 16)
	   OR levenshtein(upper(regexp_replace(city || state_name, '\W', '', 'g')), $1) < 2
	   OR levenshtein(upper(regexp_replace(city || state_code, '\W', '', 'g')), $2) < 2
	ORDER BY levenshtein(upper(regexp_replace(city || state_code, '\W', '', 'g')), $2),
	         city, state_code, zip
	LIMIT 1
`

// FuzzyLookup implements Store.
func (s *PostgresStore) FuzzyLookup(ctx context.Context, nameKey, codeKey string) (*Record, error) {
	var r Record
	err := s.pool.QueryRow(ctx, fuzzySQL, nameKey, codeKey).Scan(
		&r.Zip, &r.City, &r.StateName, &r.StateCode, &r.Latitude, &r.Longitude,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "gazetteer: fuzzy lookup")
	}
	return &r, nil
}
