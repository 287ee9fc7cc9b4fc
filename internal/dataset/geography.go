package dataset

import "strings"

// Layout tags the two accepted shapes of the UHF mapping file. The variant is
// resolved once per file from row 0, then each data row is parsed by the
// matching parser; the parsers share no conditional logic.
type Layout int

const (
	// LayoutHeader is the header-bearing variant; column positions are
	// located by keyword from the header row.
	LayoutHeader Layout = iota
	// LayoutPositional is the headerless variant with fixed column positions:
	// borough, type marker, UHF code, then zip codes.
	LayoutPositional
)

// headerKeywords mark a first row as a real header. Bare "uhf" is excluded so
// a data row beginning with a marker like "UHF42" is not mistaken for one.
var headerKeywords = []string{"borough", "boro", "zip", "uhf_id", "uhf id"}

// DetectLayout classifies the first non-blank row of a mapping file.
func DetectLayout(row []string) Layout {
	for _, cell := range row {
		lower := strings.ToLower(cell)
		for _, kw := range headerKeywords {
			if strings.Contains(lower, kw) {
				return LayoutHeader
			}
		}
	}
	return LayoutPositional
}

// GeoColumns holds the column positions located from a LayoutHeader header.
type GeoColumns struct {
	Area        int // borough name
	Code        int // UHF code cell
	PostalStart int // first zip-code column; all later cells are candidates
}

// LocateColumns finds column positions by header keyword, falling back to the
// conventional positions when a keyword is absent.
func LocateColumns(header []string) GeoColumns {
	return GeoColumns{
		Area:        findColumn(header, []string{"borough", "boro"}, 0),
		Code:        findColumn(header, []string{"uhf", "code", "id"}, 1),
		PostalStart: findColumn(header, []string{"zip"}, 2),
	}
}

func findColumn(header []string, keys []string, fallback int) int {
	for i, cell := range header {
		lower := strings.ToLower(cell)
		for _, k := range keys {
			if strings.Contains(lower, k) {
				return i
			}
		}
	}
	return fallback
}

// GeoRow is one mapping row's contribution to the geography indexes. A row
// with no region ids contributes nothing; the loader never inserts an area or
// zip key it cannot attach an id to.
type GeoRow struct {
	Area      string
	RegionIDs []int
	Postals   []string
}

// ParseGeoRowHeader parses a LayoutHeader data row against located columns.
// Rows that do not reach the largest located column are skipped.
func ParseGeoRowHeader(row []string, cols GeoColumns) (GeoRow, bool) {
	maxIdx := cols.Area
	if cols.Code > maxIdx {
		maxIdx = cols.Code
	}
	if cols.PostalStart > maxIdx {
		maxIdx = cols.PostalStart
	}
	if len(row) <= maxIdx {
		return GeoRow{}, false
	}
	return GeoRow{
		Area:      NormalizeArea(row[cols.Area]),
		RegionIDs: ExpandRegionCode(row[cols.Code]),
		Postals:   ExtractPostalCodes(row[cols.PostalStart:]),
	}, true
}

// ParseGeoRowPositional parses a LayoutPositional row: borough, marker
// (unused), UHF code, then zip candidates. Rows with fewer than 3 cells are
// skipped.
func ParseGeoRowPositional(row []string) (GeoRow, bool) {
	if len(row) < 3 {
		return GeoRow{}, false
	}
	return GeoRow{
		Area:      NormalizeArea(row[0]),
		RegionIDs: ExpandRegionCode(row[2]),
		Postals:   ExtractPostalCodes(row[3:]),
	}, true
}
