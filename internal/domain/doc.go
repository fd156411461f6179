// Package domain models daily reference evapotranspiration (ET0) records
// from the Slovenian agrometeorological station archives and the merge that
// turns three of them into one dataset.
//
// # Data Source
//
// Station archives are downloaded from the ARSO agrometeorology ETP archive
// at https://meteo.arso.gov.si/met/sl/agromet/data/arhiv_etp/. Each station
// is one tab-separated text file with a header row and one row per day.
//
// # Archive Conventions
//
// Column names are Slovenian:
//
//	leto                year, integer
//	mesec               month, integer 1-12
//	dan                 day of month, integer 1-31
//	Evapotranspiracija  ET0 in mm (Penman-Monteith), decimal
//	Padavine            precipitation in mm, decimal (not carried forward)
//
// Archives may carry further columns; they are ignored.
//
// # Merge
//
// [Merge] performs, as whole-table operations on gota data frames:
//
//	tag      constant "name" column per station, from the catalog
//	concat   Bilje, then Maribor, then Novo mesto, each in file order
//	rename   leto→year, mesec→month, dan→day, Evapotranspiracija→ET0
//	date     compose "date" (2006-01-02) from year/month/day
//	drop     year, month, day, Padavine
//	reorder  name, date, ET0
//	filter   2020-01-01 <= date <= 2023-12-31
//
// No sort and no deduplication is applied: output order is catalog order
// and, within a station, file order.
//
// ET0 values are kept as their source text so that the output carries the
// archive's precision unchanged.
package domain
