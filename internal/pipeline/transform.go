package pipeline

import (
	"context"
	"log/slog"

	"github.com/go-gota/gota/dataframe"

	"github.com/couchcryptid/et0-merge/internal/domain"
)

// MergeTransformer implements Transformer using the domain merge steps.
type MergeTransformer struct {
	window domain.Window
	logger *slog.Logger
}

// NewTransformer creates a MergeTransformer filtering to window.
func NewTransformer(window domain.Window, logger *slog.Logger) *MergeTransformer {
	return &MergeTransformer{window: window, logger: logger}
}

func (t *MergeTransformer) Transform(_ context.Context, tables []domain.StationTable) (dataframe.DataFrame, error) {
	df, err := domain.Merge(tables, t.window)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	t.logger.Debug("tables merged", "stations", len(tables), "rows", df.Nrow(), "window", t.window.String())
	return df, nil
}
