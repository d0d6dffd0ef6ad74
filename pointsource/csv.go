package pointsource

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/hupe1980/kmeans3d"
	"github.com/hupe1980/kmeans3d/blobstore"
)

// CSV reads points from "x,y,z" rows.
//
// Lines starting with '#' are ignored. A first row whose leading field is not
// a number is treated as a header. Columns after the third are ignored.
type CSV struct {
	Reader io.Reader
}

// Points implements Source.
func (c CSV) Points(ctx context.Context) ([]kmeans3d.Point, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.Reader == nil {
		return nil, errors.New("pointsource: csv reader is nil")
	}
	return ParseCSV(c.Reader)
}

// ParseCSV parses rows of at least three finite numeric fields.
func ParseCSV(r io.Reader) ([]kmeans3d.Point, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var points []kmeans3d.Point
	for first := true; ; first = false {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("pointsource: %w", err)
		}

		line, _ := cr.FieldPos(0)
		if len(record) < 3 {
			return nil, fmt.Errorf("pointsource: line %d: want 3 fields, got %d", line, len(record))
		}

		var coords [3]float64
		for i := range coords {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
			if err != nil {
				if first && i == 0 {
					break
				}
				return nil, fmt.Errorf("pointsource: line %d: field %d: %w", line, i+1, err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("pointsource: line %d: field %d: %v is not finite", line, i+1, v)
			}
			coords[i] = v
			if i == 2 {
				points = append(points, kmeans3d.Point{X: coords[0], Y: coords[1], Z: coords[2]})
			}
		}
	}

	if len(points) == 0 {
		return nil, ErrEmpty
	}
	return points, nil
}

// EncodeCSV writes points as "x,y,z" rows with a header.
func EncodeCSV(w io.Writer, points []kmeans3d.Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y", "z"}); err != nil {
		return err
	}
	for _, p := range points {
		if err := cw.Write([]string{formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Stored reads a CSV point set from a blob store.
type Stored struct {
	Store blobstore.BlobStore
	Name  string
}

// Points implements Source.
func (s Stored) Points(ctx context.Context) ([]kmeans3d.Point, error) {
	data, err := blobstore.ReadAll(ctx, s.Store, s.Name)
	if err != nil {
		return nil, fmt.Errorf("pointsource: load %s: %w", s.Name, err)
	}
	points, err := ParseCSV(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w (in %s)", err, s.Name)
	}
	return points, nil
}

// Save writes points as CSV to name in store.
func Save(ctx context.Context, store blobstore.BlobStore, name string, points []kmeans3d.Point) error {
	var buf bytes.Buffer
	if err := EncodeCSV(&buf, points); err != nil {
		return err
	}
	return store.Put(ctx, name, buf.Bytes())
}
