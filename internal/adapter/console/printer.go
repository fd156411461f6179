package console

import (
	"context"
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
)

// Printer renders the merged table for a human reader.
// It implements pipeline.Loader.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Load prints gota's table preview, which is truncated to the first rows
// and shortened columns; the full table is in the output file.
func (p *Printer) Load(_ context.Context, df dataframe.DataFrame) error {
	if _, err := fmt.Fprintln(p.out, df.String()); err != nil {
		return fmt.Errorf("print table: %w", err)
	}
	return nil
}
