// Package csv loads the region snapshot from a CSV export.
package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Valentinus295/econsentinel/internal/domain/model"
	"github.com/Valentinus295/econsentinel/internal/domain/port"
	"github.com/Valentinus295/econsentinel/internal/domain/valueobject"
)

// ErrDataUnavailable aliases the port sentinel for callers of this package.
var ErrDataUnavailable = port.ErrDataUnavailable

// RowError pinpoints the first cell that failed validation.
type RowError struct {
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d, column %q: %v", e.Line, e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Required headers besides the configurable base risk column.
const (
	colName       = "name"
	colLat        = "lat"
	colLon        = "lon"
	colPopulation = "Population"
	colFuelPrice  = "Fuel_Price"
)

// RegionLoader reads the region snapshot from a CSV file. The file is
// parsed once and the result cached for the life of the process: the
// snapshot is a deliberate point-in-time export, not a live feed.
type RegionLoader struct {
	path        string
	baseRiskCol string
	logger      *slog.Logger

	once    sync.Once
	regions []model.Region
	loadErr error
}

// NewRegionLoader creates a loader for the given CSV path. baseRiskCol is
// the header of the base risk column, usually "Base_Risk".
func NewRegionLoader(path, baseRiskCol string, logger *slog.Logger) *RegionLoader {
	return &RegionLoader{
		path:        path,
		baseRiskCol: baseRiskCol,
		logger:      logger,
	}
}

// LoadAll returns every region of the snapshot. Any defect anywhere in
// the file rejects the whole snapshot; the returned error wraps
// ErrDataUnavailable.
func (l *RegionLoader) LoadAll(ctx context.Context) ([]model.Region, error) {
	l.once.Do(func() {
		l.regions, l.loadErr = l.parse()
		if l.loadErr != nil {
			l.logger.ErrorContext(ctx, "region snapshot rejected",
				slog.String("path", l.path),
				slog.String("error", l.loadErr.Error()),
			)
		} else {
			l.logger.InfoContext(ctx, "region snapshot loaded",
				slog.String("path", l.path),
				slog.Int("regions", len(l.regions)),
			)
		}
	})
	if l.loadErr != nil {
		return nil, l.loadErr
	}
	return l.regions, nil
}

func (l *RegionLoader) parse() ([]model.Region, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrDataUnavailable, l.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrDataUnavailable, err)
	}

	idx, err := l.indexHeader(header)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	var regions []model.Region
	line := 1
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrDataUnavailable, line, err)
		}

		region, rowErr := l.parseRow(record, idx, line)
		if rowErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, rowErr)
		}
		regions = append(regions, region)
	}

	if len(regions) == 0 {
		return nil, fmt.Errorf("%w: %s holds no data rows", ErrDataUnavailable, l.path)
	}
	return regions, nil
}

type columnIndex struct {
	name       int
	lat        int
	lon        int
	population int
	baseRisk   int
	fuelPrice  int // -1 when absent
}

func (l *RegionLoader) indexHeader(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.TrimSpace(h)] = i
	}

	idx := columnIndex{fuelPrice: -1}
	for _, req := range []struct {
		col string
		dst *int
	}{
		{colName, &idx.name},
		{colLat, &idx.lat},
		{colLon, &idx.lon},
		{colPopulation, &idx.population},
		{l.baseRiskCol, &idx.baseRisk},
	} {
		i, ok := pos[req.col]
		if !ok {
			return columnIndex{}, fmt.Errorf("missing required column %q", req.col)
		}
		*req.dst = i
	}
	if i, ok := pos[colFuelPrice]; ok {
		idx.fuelPrice = i
	}
	return idx, nil
}

func (l *RegionLoader) parseRow(record []string, idx columnIndex, line int) (model.Region, *RowError) {
	cell := func(i int) string {
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	lat, err := strconv.ParseFloat(cell(idx.lat), 64)
	if err != nil {
		return model.Region{}, &RowError{Line: line, Column: colLat, Err: err}
	}
	lon, err := strconv.ParseFloat(cell(idx.lon), 64)
	if err != nil {
		return model.Region{}, &RowError{Line: line, Column: colLon, Err: err}
	}
	coord, err := valueobject.NewCoordinate(lat, lon)
	if err != nil {
		return model.Region{}, &RowError{Line: line, Column: colLat, Err: err}
	}

	population, err := strconv.ParseInt(cell(idx.population), 10, 64)
	if err != nil {
		return model.Region{}, &RowError{Line: line, Column: colPopulation, Err: err}
	}

	baseRisk, err := strconv.ParseFloat(cell(idx.baseRisk), 64)
	if err != nil {
		return model.Region{}, &RowError{Line: line, Column: l.baseRiskCol, Err: err}
	}

	region, err := model.NewRegion(cell(idx.name), coord, population, baseRisk)
	if err != nil {
		return model.Region{}, &RowError{Line: line, Column: colName, Err: err}
	}

	if idx.fuelPrice >= 0 {
		if raw := cell(idx.fuelPrice); raw != "" {
			price, err := decimal.NewFromString(raw)
			if err != nil {
				return model.Region{}, &RowError{Line: line, Column: colFuelPrice, Err: err}
			}
			region = region.WithFuelPrice(price)
		}
	}

	return region, nil
}
