package tsv

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/couchcryptid/et0-merge/internal/domain"
)

// Reader loads station archives from a directory.
// It implements pipeline.Extractor.
type Reader struct {
	dir    string
	logger *slog.Logger
}

// NewReader creates a Reader rooted at dir.
func NewReader(dir string, logger *slog.Logger) *Reader {
	return &Reader{dir: dir, logger: logger}
}

// Extract reads the station's tab-separated archive. Every cell is loaded as
// text so numeric columns keep their source formatting. An archive holding
// only its header yields a table with no rows.
func (r *Reader) Extract(_ context.Context, station domain.Station) (dataframe.DataFrame, error) {
	path := filepath.Join(r.dir, station.File)
	data, err := os.ReadFile(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open archive %s: %w", station.Name, err)
	}

	df := readTable(data, true)
	if err := df.Error(); err != nil {
		empty, ok := headerOnly(data)
		if !ok {
			return dataframe.DataFrame{}, fmt.Errorf("read archive %s (%s): %w", station.Name, path, err)
		}
		df = empty
	}
	if err := domain.RequireColumns(df, domain.RequiredColumns()...); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("archive %s (%s): %w", station.Name, path, err)
	}

	r.logger.Debug("archive loaded", "station", station.Name, "path", path, "rows", df.Nrow(), "columns", df.Ncol())
	return df, nil
}

// readTable parses tab-separated text with every cell kept verbatim,
// including markers such as "NA" that gota would otherwise turn into NaN.
func readTable(data []byte, header bool) dataframe.DataFrame {
	return dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.WithDelimiter('\t'),
		dataframe.HasHeader(header),
		dataframe.DetectTypes(false),
		dataframe.NaNValues(nil),
	)
}

// headerOnly builds a zero-row text table when data holds exactly one line,
// the header. gota refuses to load a header without rows.
func headerOnly(data []byte) (dataframe.DataFrame, bool) {
	raw := readTable(data, false)
	if raw.Error() != nil || raw.Nrow() != 1 {
		return dataframe.DataFrame{}, false
	}

	names := raw.Records()[1]
	cols := make([]series.Series, len(names))
	for i, name := range names {
		cols[i] = series.New([]string{}, series.String, name)
	}
	df := dataframe.New(cols...)
	if df.Error() != nil {
		return dataframe.DataFrame{}, false
	}
	return df, true
}
