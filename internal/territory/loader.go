package territory

import (
	"context"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/landackn/landbot/internal/db"
)

// Attribute names tried when reading a territory shapefile. DBF truncates
// attribute names at ten characters, hence "descriptio".
var (
	nameFields        = []string{"name"}
	descriptionFields = []string{"description", "descriptio"}
)

// LoadShapefile reads territory polygons from a shapefile and upserts them
// into gazetteer.territories. Records without a name or without polygonal
// geometry are skipped. Returns the number of territories loaded.
func LoadShapefile(ctx context.Context, pool db.Pool, path string) (int, error) {
	log := zap.L().With(zap.String("component", "territory.loader"))

	reader, err := shp.Open(path)
	if err != nil {
		return 0, eris.Wrapf(err, "territory: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	nameIdx := fieldIndex(reader, nameFields...)
	if nameIdx < 0 {
		return 0, eris.New("territory: shapefile has no name field")
	}
	descIdx := fieldIndex(reader, descriptionFields...)

	var loaded int
	for reader.Next() {
		if err := ctx.Err(); err != nil {
			return loaded, eris.Wrap(err, "territory: load canceled")
		}

		_, shape := reader.Shape()
		name := strings.TrimSpace(reader.Attribute(nameIdx))
		if name == "" {
			continue
		}

		var description string
		if descIdx >= 0 {
			description = strings.TrimSpace(reader.Attribute(descIdx))
		}

		wkb, err := encodePolygonWKB(shape)
		if err != nil {
			log.Warn("territory: skipping unencodable shape", zap.String("name", name), zap.Error(err))
			continue
		}
		if wkb == nil {
			continue
		}

		_, err = pool.Exec(ctx, `
			INSERT INTO gazetteer.territories (name, description, geom)
			VALUES ($1, $2, ST_GeomFromEWKB($3))
			ON CONFLICT (name) DO UPDATE SET
				description = EXCLUDED.description,
				geom = EXCLUDED.geom`,
			name, description, wkb)
		if err != nil {
			log.Warn("territory: failed to insert record", zap.String("name", name), zap.Error(err))
			continue
		}
		loaded++
	}

	log.Info("territory shapefile loaded", zap.Int("records", loaded))
	return loaded, nil
}

// fieldIndex returns the index of the first matching attribute field, or -1.
func fieldIndex(r *shp.Reader, names ...string) int {
	for i, f := range r.Fields() {
		fieldName := strings.TrimRight(f.String(), "\x00")
		for _, n := range names {
			if strings.EqualFold(fieldName, n) {
				return i
			}
		}
	}
	return -1
}
