package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/et0-merge/internal/domain"
	"github.com/couchcryptid/et0-merge/internal/observability"
)

// Extractor reads one station archive.
type Extractor interface {
	Extract(ctx context.Context, station domain.Station) (dataframe.DataFrame, error)
}

// Transformer merges the loaded station tables into the output table.
type Transformer interface {
	Transform(ctx context.Context, tables []domain.StationTable) (dataframe.DataFrame, error)
}

// Loader writes the merged table to a destination.
type Loader interface {
	Load(ctx context.Context, df dataframe.DataFrame) error
}

// Result summarizes a completed run.
type Result struct {
	Rows          int
	PerStation    map[string]int
	OutsideWindow int
	Duration      time.Duration
}

// Pipeline runs a single extract-transform-load pass over the station catalog.
type Pipeline struct {
	extractor   Extractor
	transformer Transformer
	loaders     []Loader
	stations    []domain.Station
	logger      *slog.Logger
	metrics     *observability.Metrics
	clock       clockwork.Clock
}

// New creates a Pipeline. Loaders run in the order given.
func New(e Extractor, t Transformer, loaders []Loader, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loaders:     loaders,
		stations:    domain.Stations(),
		logger:      logger,
		metrics:     metrics,
		clock:       clock,
	}
}

// Run extracts every station, merges them, and hands the result to each
// loader. The first error aborts the run; loaders never see a partial table.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	start := p.clock.Now()
	res, err := p.run(ctx)
	res.Duration = p.clock.Since(start)
	p.metrics.RunDuration.Set(res.Duration.Seconds())

	if err != nil {
		p.metrics.LastFailure.WithLabelValues(domain.ErrorClass(err)).Set(float64(p.clock.Now().Unix()))
		return res, err
	}
	p.metrics.LastSuccess.Set(float64(p.clock.Now().Unix()))
	p.logger.Info("merge complete",
		"rows", res.Rows,
		"outside_window", res.OutsideWindow,
		"duration", res.Duration,
	)
	return res, nil
}

func (p *Pipeline) run(ctx context.Context) (Result, error) {
	res := Result{PerStation: make(map[string]int, len(p.stations))}

	tables := make([]domain.StationTable, 0, len(p.stations))
	total := 0
	for _, st := range p.stations {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		df, err := p.extractor.Extract(ctx, st)
		if err != nil {
			return res, fmt.Errorf("extract %s: %w", st.Name, err)
		}
		res.PerStation[st.Name] = df.Nrow()
		total += df.Nrow()
		p.metrics.RowsLoaded.WithLabelValues(st.Name).Set(float64(df.Nrow()))
		p.logger.Debug("station loaded", "station", st.Name, "file", st.File, "rows", df.Nrow())
		tables = append(tables, domain.StationTable{Station: st, Frame: df})
	}

	merged, err := p.transformer.Transform(ctx, tables)
	if err != nil {
		return res, fmt.Errorf("transform: %w", err)
	}
	res.Rows = merged.Nrow()
	res.OutsideWindow = total - res.Rows
	p.metrics.RowsOutsideWindow.Set(float64(res.OutsideWindow))

	for _, l := range p.loaders {
		if err := l.Load(ctx, merged); err != nil {
			return res, fmt.Errorf("load: %w", err)
		}
	}
	p.metrics.RowsWritten.Set(float64(res.Rows))
	return res, nil
}
