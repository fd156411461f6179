package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Merge combines the station tables into the normalized, window-filtered
// dataset. Tables are concatenated in the order given.
func Merge(tables []StationTable, w Window) (dataframe.DataFrame, error) {
	tagged := make([]dataframe.DataFrame, 0, len(tables))
	for _, t := range tables {
		df, err := TagStation(t.Frame, t.Station)
		if err != nil {
			return dataframe.DataFrame{}, err
		}
		tagged = append(tagged, df)
	}

	df, err := Concat(tagged...)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	if df, err = RenameColumns(df); err != nil {
		return dataframe.DataFrame{}, err
	}
	if df, err = ComposeDates(df); err != nil {
		return dataframe.DataFrame{}, err
	}
	if df, err = DropColumns(df); err != nil {
		return dataframe.DataFrame{}, err
	}
	if df, err = Reorder(df); err != nil {
		return dataframe.DataFrame{}, err
	}
	return FilterWindow(df, w)
}

// RequireColumns returns ErrMissingColumn naming the first of cols absent from df.
func RequireColumns(df dataframe.DataFrame, cols ...string) error {
	present := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		present[name] = true
	}
	for _, c := range cols {
		if !present[c] {
			return fmt.Errorf("%w %q", ErrMissingColumn, c)
		}
	}
	return nil
}

// TagStation narrows an archive to the required columns and adds a constant
// "name" column carrying the station label.
func TagStation(df dataframe.DataFrame, station Station) (dataframe.DataFrame, error) {
	if err := RequireColumns(df, RequiredColumns()...); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("station %s: %w", station.Name, err)
	}

	df = df.Select(RequiredColumns())
	labels := make([]string, df.Nrow())
	for i := range labels {
		labels[i] = station.Name
	}
	df = df.Mutate(series.New(labels, series.String, ColName))
	if err := df.Error(); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("tag station %s: %w", station.Name, err)
	}
	return df, nil
}

// Concat stacks tables row-wise, preserving each table's row order.
func Concat(tables ...dataframe.DataFrame) (dataframe.DataFrame, error) {
	if len(tables) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("concat: no tables")
	}
	df := tables[0]
	for _, t := range tables[1:] {
		df = df.RBind(t)
	}
	if err := df.Error(); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("concat: %w", err)
	}
	return df, nil
}

// RenameColumns applies the fixed Slovenian→English rename mapping.
func RenameColumns(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	for _, r := range renames {
		if err := RequireColumns(df, r.from); err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("rename: %w", err)
		}
		df = df.Rename(r.to, r.from)
	}
	if err := df.Error(); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("rename: %w", err)
	}
	return df, nil
}

// ComposeDate builds a UTC calendar date from textual year, month, and day
// components. Components must be integers and form a real date.
func ComposeDate(year, month, day string) (time.Time, error) {
	y, errY := strconv.Atoi(strings.TrimSpace(year))
	m, errM := strconv.Atoi(strings.TrimSpace(month))
	d, errD := strconv.Atoi(strings.TrimSpace(day))
	if errY != nil || errM != nil || errD != nil {
		return time.Time{}, fmt.Errorf("%w: %q-%q-%q", ErrInvalidDate, year, month, day)
	}
	if y < 1 || y > 9999 || m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, fmt.Errorf("%w: %d-%d-%d", ErrInvalidDate, y, m, d)
	}

	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (Feb 30 -> Mar 2); reject it.
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return time.Time{}, fmt.Errorf("%w: %d-%d-%d", ErrInvalidDate, y, m, d)
	}
	return t, nil
}

// ComposeDates adds the "date" column derived from year, month, and day.
// The first row that does not form a date fails the whole table.
func ComposeDates(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if err := RequireColumns(df, colYearEN, colMonthEN, colDayEN); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("compose dates: %w", err)
	}

	years := df.Col(colYearEN).Records()
	months := df.Col(colMonthEN).Records()
	days := df.Col(colDayEN).Records()
	var names []string
	if RequireColumns(df, ColName) == nil {
		names = df.Col(ColName).Records()
	}

	dates := make([]string, len(years))
	for i := range years {
		t, err := ComposeDate(years[i], months[i], days[i])
		if err != nil {
			if names != nil {
				return dataframe.DataFrame{}, fmt.Errorf("compose dates: station %s line %d: %w", names[i], archiveLine(names, i), err)
			}
			return dataframe.DataFrame{}, fmt.Errorf("compose dates: row %d: %w", i, err)
		}
		dates[i] = t.Format(DateLayout)
	}

	df = df.Mutate(series.New(dates, series.String, ColDate))
	if err := df.Error(); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("compose dates: %w", err)
	}
	return df, nil
}

// archiveLine maps a row of the concatenated table back to its line in the
// station archive, counting the header as line 1.
func archiveLine(names []string, i int) int {
	start := i
	for start > 0 && names[start-1] == names[i] {
		start--
	}
	return i - start + 2
}

// DropColumns removes the date components and the precipitation column.
func DropColumns(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	drop := []string{colDayEN, colMonthEN, colYearEN, ColPrecipitation}
	if err := RequireColumns(df, drop...); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("drop: %w", err)
	}
	df = df.Drop(drop)
	if err := df.Error(); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("drop: %w", err)
	}
	return df, nil
}

// Reorder projects the table onto exactly name, date, ET0.
func Reorder(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if err := RequireColumns(df, OutputColumns()...); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("reorder: %w", err)
	}
	df = df.Select(OutputColumns())
	if err := df.Error(); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("reorder: %w", err)
	}
	return df, nil
}

// FilterWindow keeps the rows whose date lies within w, bounds included.
// Dates are compared in their fixed-width DateLayout rendering, which
// orders the same as the calendar.
func FilterWindow(df dataframe.DataFrame, w Window) (dataframe.DataFrame, error) {
	if err := RequireColumns(df, ColDate); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("filter: %w", err)
	}
	if df.Nrow() == 0 {
		return df, nil
	}

	df = df.Filter(dataframe.F{
		Colname:    ColDate,
		Comparator: series.GreaterEq,
		Comparando: w.From.Format(DateLayout),
	})
	if df.Error() == nil && df.Nrow() > 0 {
		df = df.Filter(dataframe.F{
			Colname:    ColDate,
			Comparator: series.LessEq,
			Comparando: w.To.Format(DateLayout),
		})
	}
	if err := df.Error(); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("filter: %w", err)
	}
	return df, nil
}

// Records returns the rows of a merged table.
func Records(df dataframe.DataFrame) ([]Record, error) {
	if err := RequireColumns(df, OutputColumns()...); err != nil {
		return nil, err
	}
	names := df.Col(ColName).Records()
	dates := df.Col(ColDate).Records()
	et0 := df.Col(ColOutET).Records()

	out := make([]Record, len(names))
	for i := range names {
		t, err := time.Parse(DateLayout, dates[i])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w: %q", i, ErrInvalidDate, dates[i])
		}
		out[i] = Record{Name: names[i], Date: t, ET0: et0[i]}
	}
	return out, nil
}
