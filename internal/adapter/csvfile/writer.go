package csvfile

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-gota/gota/dataframe"
)

// Writer persists the merged table as a comma-separated file with a header row.
// It implements pipeline.Loader.
type Writer struct {
	path   string
	logger *slog.Logger
}

// NewWriter creates a Writer targeting path. The file is created or truncated
// on every Load.
func NewWriter(path string, logger *slog.Logger) *Writer {
	return &Writer{path: path, logger: logger}
}

// Path returns the destination file.
func (w *Writer) Path() string {
	return w.path
}

func (w *Writer) Load(_ context.Context, df dataframe.DataFrame) error {
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	if err := df.WriteCSV(f, dataframe.WriteHeader(true)); err != nil {
		f.Close()
		return fmt.Errorf("write output %s: %w", w.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output %s: %w", w.path, err)
	}

	w.logger.Info("output written", "path", w.path, "rows", df.Nrow())
	return nil
}
