package ingest

import (
	"time"

	"github.com/pondskater/airquery/internal/dataset"
)

// Stats summarizes one complete load for the startup banner.
type Stats struct {
	Records    int
	RegionKeys int
	DateKeys   int
	PostalKeys int
	AreaKeys   int
	LoadedAt   time.Time
}

// Summarize counts the loaded records and index keys. Records are counted
// from the region index; every valid measurement appears there exactly once.
func Summarize(byRegion dataset.RegionIndex, byDate dataset.DateIndex, byPostal dataset.PostalIndex, byArea dataset.AreaIndex) Stats {
	records := 0
	for _, ms := range byRegion {
		records += len(ms)
	}
	return Stats{
		Records:    records,
		RegionKeys: len(byRegion),
		DateKeys:   len(byDate),
		PostalKeys: len(byPostal),
		AreaKeys:   len(byArea),
		LoadedAt:   clock.Now(),
	}
}
