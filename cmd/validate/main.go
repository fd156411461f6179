// Command validate checks a merged ET_PM.csv against the station archives it
// was built from: header shape, station names, the date window, per-station
// row parity, and row order.
//
// Usage:
//
//	go run ./cmd/validate -data-dir data/mock
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/couchcryptid/et0-merge/internal/adapter/tsv"
	"github.com/couchcryptid/et0-merge/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// row is one line of the merged output or one in-window archive line.
type row struct {
	line int
	name string
	date string
	et0  string
}

func main() {
	dataDir := flag.String("data-dir", ".", "directory holding the station archives and ET_PM.csv")
	flag.Parse()

	os.Exit(run(*dataDir, os.Stdout))
}

func run(dataDir string, out io.Writer) int {
	fmt.Fprintln(out, "=== ET0 Merge Integrity Validation ===")
	fmt.Fprintln(out)

	expected, err := loadArchives(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load archives: %v\n", err)
		return 1
	}
	header, merged, err := loadOutput(filepath.Join(dataDir, domain.OutputFile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load output: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateHeader(header),
		validateNamesAndWindow(merged),
		validateStationParity(merged, expected),
		validateCatalogOrder(merged),
	}

	fmt.Fprintln(out)
	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-36s %s\n", p.name, status)
	}

	total := 0
	for _, rows := range expected {
		total += len(rows)
	}
	fmt.Fprintf(out, "\nRecords: %d in-window archive rows, %d output rows\n", total, len(merged))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

// ── Data loading ──

// loadArchives reads each station archive and keeps its in-window rows in
// file order.
func loadArchives(dir string) (map[string][]row, error) {
	reader := tsv.NewReader(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
	window := domain.DefaultWindow()

	result := make(map[string][]row)
	for _, st := range domain.Stations() {
		df, err := reader.Extract(context.Background(), st)
		if err != nil {
			return nil, err
		}
		years := df.Col(domain.ColYear).Records()
		months := df.Col(domain.ColMonth).Records()
		days := df.Col(domain.ColDay).Records()
		et0 := df.Col(domain.ColET0).Records()

		rows := make([]row, 0, len(years))
		for i := range years {
			d, err := domain.ComposeDate(years[i], months[i], days[i])
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", st.File, i+2, err)
			}
			if !window.Contains(d) {
				continue
			}
			rows = append(rows, row{line: i + 2, name: st.Name, date: d.Format(domain.DateLayout), et0: et0[i]})
		}
		result[st.Name] = rows
	}
	return result, nil
}

func loadOutput(path string) ([]string, []row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("%s is empty", path)
	}

	rows := make([]row, 0, len(all)-1)
	for i, rec := range all[1:] {
		out := row{line: i + 2}
		if len(rec) > 0 {
			out.name = rec[0]
		}
		if len(rec) > 1 {
			out.date = rec[1]
		}
		if len(rec) > 2 {
			out.et0 = rec[2]
		}
		rows = append(rows, out)
	}
	return all[0], rows, nil
}

// ── Phases ──

func validateHeader(header []string) *phase {
	p := &phase{name: "Phase 1: Output header"}
	if !slices.Equal(header, domain.OutputColumns()) {
		p.errorf("header is %q, want %q", strings.Join(header, ","), strings.Join(domain.OutputColumns(), ","))
	}
	return p
}

func validateNamesAndWindow(merged []row) *phase {
	p := &phase{name: "Phase 2: Station names and window"}
	names := domain.StationNames()
	window := domain.DefaultWindow()
	for _, r := range merged {
		if !slices.Contains(names, r.name) {
			p.errorf("line %d: unknown station %q", r.line, r.name)
		}
		d, err := time.Parse(domain.DateLayout, r.date)
		if err != nil {
			p.errorf("line %d: date %q: %v", r.line, r.date, err)
			continue
		}
		if !window.Contains(d) {
			p.errorf("line %d: date %s outside %s", r.line, r.date, window)
		}
	}
	return p
}

func validateStationParity(merged []row, expected map[string][]row) *phase {
	p := &phase{name: "Phase 3: Per-station row parity"}
	got := make(map[string][]row)
	for _, r := range merged {
		got[r.name] = append(got[r.name], r)
	}

	for _, name := range domain.StationNames() {
		want := expected[name]
		have := got[name]
		if len(have) != len(want) {
			p.errorf("%s: %d output rows, %d in-window archive rows", name, len(have), len(want))
		}
		for i := range min(len(have), len(want)) {
			if have[i].date != want[i].date || have[i].et0 != want[i].et0 {
				p.errorf("%s: output line %d is %s/%s, archive line %d is %s/%s",
					name, have[i].line, have[i].date, have[i].et0, want[i].line, want[i].date, want[i].et0)
			}
		}
	}
	return p
}

func validateCatalogOrder(merged []row) *phase {
	p := &phase{name: "Phase 4: Catalog ordering"}
	names := domain.StationNames()
	last := -1
	for _, r := range merged {
		idx := slices.Index(names, r.name)
		if idx < 0 {
			continue
		}
		if idx < last {
			p.errorf("line %d: %s after %s", r.line, r.name, names[last])
		}
		last = max(last, idx)
	}
	return p
}
