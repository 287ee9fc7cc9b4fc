// Package query answers point lookups against the built indexes. All four
// functions are stateless, never mutate their inputs, and return an empty
// slice rather than an error when nothing matches — "no results" is a normal
// outcome, not a failure.
package query

import (
	"strings"

	"github.com/pondskater/airquery/internal/dataset"
)

// ByPostal returns every measurement for every region id mapped to the given
// zip code, concatenated in id-list order. Repeats are intentional: a
// measurement reachable through two ids appears twice.
func ByPostal(code string, byPostal dataset.PostalIndex, byRegion dataset.RegionIndex) []dataset.Measurement {
	return collect(byPostal[strings.TrimSpace(code)], byRegion)
}

// ByRegionID returns the measurements for a single region id given as text.
// Unparseable input yields an empty result.
func ByRegionID(idText string, byRegion dataset.RegionIndex) []dataset.Measurement {
	id, ok := dataset.ParseIntField(idText)
	if !ok {
		return nil
	}
	out := make([]dataset.Measurement, len(byRegion[id]))
	copy(out, byRegion[id])
	return out
}

// ByArea returns the measurements for every region id in the named borough.
// The name is normalized the same way the index keys were built, so case and
// surrounding whitespace do not matter.
func ByArea(name string, byArea dataset.AreaIndex, byRegion dataset.RegionIndex) []dataset.Measurement {
	return collect(byArea[dataset.NormalizeArea(name)], byRegion)
}

// ByDate returns the measurements recorded on the given date. Exact string
// match after trimming; "2019/6/1" and "2019/06/01" are different keys.
func ByDate(dateText string, byDate dataset.DateIndex) []dataset.Measurement {
	key := strings.TrimSpace(dateText)
	out := make([]dataset.Measurement, len(byDate[key]))
	copy(out, byDate[key])
	return out
}

func collect(ids []int, byRegion dataset.RegionIndex) []dataset.Measurement {
	var out []dataset.Measurement
	for _, id := range ids {
		out = append(out, byRegion[id]...)
	}
	return out
}
