// Package dataset models NYC UHF air-quality data and the indexes built from it.
//
// # Data Sources
//
// Two local CSV extracts feed the system. Neither has a stable schema, so the
// parsing rules below reconcile the variants actually seen in the data.
//
// Measurement file (air_quality.csv), strict column order:
//
//	0: UHF geo id (integer)
//	1: geo description (free text)
//	2: date, YYYY/MM/DD by convention but never validated
//	3: PM2.5 reading (float, mcg/m^3)
//
// A header row is present in some extracts and absent in others. Row 0 is
// treated as a header exactly when its first cell is not a parseable integer.
//
// Mapping file (uhf.csv), two accepted layouts:
//
//	Layout A (header-bearing): column positions are located by header keyword.
//	  The header is recognized when any cell contains "borough", "boro",
//	  "zip", "uhf_id", or "uhf id". Bare "uhf" is deliberately not a header
//	  keyword: data rows begin with marker values like "UHF42" and must not
//	  be mistaken for headers.
//	Layout B (headerless, positional): 0 = borough, 1 = type marker (unused),
//	  2 = UHF code, 3+ = zip codes.
//
// # UHF Code Conventions
//
// UHF42 codes are single small integers ("205"). The denser UHF34 scheme
// concatenates several UHF42 ids into one digit string in 3-digit groups:
// "105106107" means ids 105, 106, and 107. A code cell is expanded when it is
// all digits, longer than 3 characters, and a multiple of 3 long; otherwise it
// is parsed as a single integer. See [ExpandRegionCode].
//
// # Zip Codes
//
// A cell qualifies as a zip code when it is at least 5 characters and its
// first 5 characters are digits; the retained value is exactly those first 5
// characters. Truncation of longer cells (ZIP+4, run-together entries) is a
// deliberate lossy normalization. See [ExtractPostalCodes].
//
// # Boroughs
//
// Borough names are index keys, normalized by trimming and title-casing so
// that "manhattan", " Manhattan " and "MANHATTAN" collide. See [NormalizeArea].
//
// # Indexes
//
// Four maps are built once at startup and read-only afterwards. Measurement
// lists preserve file order and are never deduplicated; region-id lists are
// ordered sets (first-seen dedup). No key ever holds an empty list.
package dataset
