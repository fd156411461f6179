package domain

// Station identifies one weather station archive.
type Station struct {
	Name string // label written to the "name" column
	File string // archive file name, relative to the data directory
}

// Source archive columns.
const (
	ColYear          = "leto"
	ColMonth         = "mesec"
	ColDay           = "dan"
	ColET0           = "Evapotranspiracija"
	ColPrecipitation = "Padavine"
)

// Normalized column names.
const (
	ColName  = "name"
	ColDate  = "date"
	ColOutET = "ET0"

	colYearEN  = "year"
	colMonthEN = "month"
	colDayEN   = "day"
)

// OutputFile is the merged dataset's file name, relative to the data directory.
const OutputFile = "ET_PM.csv"

// DateLayout is the rendering of composed dates.
const DateLayout = "2006-01-02"

// Stations returns the station catalog in concatenation order.
func Stations() []Station {
	return []Station{
		{Name: "Bilje", File: "Bilje.csv"},
		{Name: "Maribor", File: "Maribor_-_letlisce.csv"},
		{Name: "Novo mesto", File: "Novo_mesto.csv"},
	}
}

// StationNames returns the catalog labels in concatenation order.
func StationNames() []string {
	stations := Stations()
	names := make([]string, len(stations))
	for i, s := range stations {
		names[i] = s.Name
	}
	return names
}

// RequiredColumns lists the archive columns every station file must carry.
func RequiredColumns() []string {
	return []string{ColYear, ColMonth, ColDay, ColET0, ColPrecipitation}
}

// OutputColumns is the final column order.
func OutputColumns() []string {
	return []string{ColName, ColDate, ColOutET}
}

// renames is the fixed source→normalized rename mapping, applied in order.
var renames = []struct{ from, to string }{
	{ColYear, colYearEN},
	{ColMonth, colMonthEN},
	{ColDay, colDayEN},
	{ColET0, ColOutET},
}
