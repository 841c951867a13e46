package territory

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/landackn/landbot/internal/db"
)

// gazetteerColumns is the column order of both the input CSV and the COPY.
var gazetteerColumns = []string{"zip", "city", "state_name", "state_code", "latitude", "longitude"}

// LoadGazetteerCSV bulk-loads ZIP-code records from a CSV file with a header
// row into gazetteer.zip_codes via COPY. Returns the number of rows loaded.
func LoadGazetteerCSV(ctx context.Context, pool db.Pool, path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, eris.Wrapf(err, "territory: open gazetteer CSV %s", path)
	}
	defer f.Close() //nolint:errcheck

	rows, err := parseGazetteerCSV(f)
	if err != nil {
		return 0, err
	}

	if _, err := pool.Exec(ctx, `TRUNCATE gazetteer.zip_codes`); err != nil {
		return 0, eris.Wrap(err, "territory: truncate zip_codes")
	}

	n, err := db.CopyFrom(ctx, pool, "gazetteer", "zip_codes", gazetteerColumns, rows)
	if err != nil {
		return 0, err
	}

	zap.L().Info("gazetteer CSV loaded", zap.Int64("records", n))
	return n, nil
}

// parseGazetteerCSV reads the header-prefixed CSV into COPY rows. Rows with
// a non-5-digit zip or unparsable coordinates are rejected with their line
// number; the gazetteer is reference data and silent skips would hide a bad
// export.
func parseGazetteerCSV(r io.Reader) ([][]any, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(gazetteerColumns)

	header, err := cr.Read()
	if err != nil {
		return nil, eris.Wrap(err, "territory: read CSV header")
	}
	for i, col := range gazetteerColumns {
		if !strings.EqualFold(strings.TrimSpace(header[i]), col) {
			return nil, eris.Errorf("territory: unexpected CSV header %q, want %q", header[i], col)
		}
	}

	var rows [][]any
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "territory: read CSV line %d", line)
		}

		zip := strings.TrimSpace(rec[0])
		if len(zip) != 5 {
			return nil, eris.Errorf("territory: line %d: invalid zip %q", line, zip)
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(rec[4]), 64)
		if err != nil {
			return nil, eris.Wrapf(err, "territory: line %d: parse latitude", line)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(rec[5]), 64)
		if err != nil {
			return nil, eris.Wrapf(err, "territory: line %d: parse longitude", line)
		}

		rows = append(rows, []any{
			zip,
			strings.TrimSpace(rec[1]),
			strings.TrimSpace(rec[2]),
			strings.TrimSpace(rec[3]),
			lat,
			lon,
		})
	}

	return rows, nil
}
