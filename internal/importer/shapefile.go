package importer

import (
	"fmt"
	"strings"

	shp "github.com/jonas-p/go-shp"

	"github.com/SimonWaldherr/tinyInterp/internal/tables"
)

// ImportShapefile reads the attribute table (DBF) of a .shp file and
// registers one row per record. Attribute values go through the same type
// inference as CSV cells; the geometry is summarized into a "geom_type"
// column plus "x"/"y" coordinates for point shapes.
func ImportShapefile(store *tables.Store, name, path string, opts *Options) (int, error) {
	opts = applyDefaults(opts)

	r, err := shp.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open shapefile: %w", err)
	}
	defer r.Close()

	fields := r.Fields()
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = strings.TrimRight(f.String(), "\x00")
	}

	// First pass over attributes so column types can be inferred like CSV.
	var attrs [][]string
	var shapes []shp.Shape
	for r.Next() {
		idx, shape := r.Shape()
		rec := make([]string, len(fields))
		for fi := range fields {
			rec[fi] = r.ReadAttribute(idx, fi)
		}
		attrs = append(attrs, rec)
		shapes = append(shapes, shape)
	}
	types := inferColumnTypes(attrs, len(cols), opts)

	rows := make([]tables.Row, 0, len(attrs))
	for i, rec := range attrs {
		row := make(tables.Row, len(cols)+3)
		for c, col := range cols {
			row[col] = convert(rec[c], types[c], opts)
		}
		switch s := shapes[i].(type) {
		case *shp.Point:
			row["geom_type"] = "point"
			row["x"] = s.X
			row["y"] = s.Y
		case *shp.PolyLine:
			row["geom_type"] = "polyline"
		case *shp.Polygon:
			row["geom_type"] = "polygon"
		default:
			row["geom_type"] = "unknown"
		}
		rows = append(rows, row)
	}

	opts.stampRowIDs(rows)
	store.AddTable(name, rows)
	return len(rows), nil
}
