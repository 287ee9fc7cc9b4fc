package ingest_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pondskater/airquery/internal/dataset"
	"github.com/pondskater/airquery/internal/ingest"
	"github.com/pondskater/airquery/internal/observability"
)

func newTestLoader() *ingest.Loader {
	return ingest.NewLoader(slog.New(slog.DiscardHandler), observability.NewMetricsForTesting())
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMeasurements(t *testing.T) {
	t.Run("header skipped when first cell is not an integer", func(t *testing.T) {
		path := writeFile(t, "air.csv",
			"UHF Geo ID,Geo description,date,pm2.5\n"+
				"205,Sunset Park,2009/06/01,11.45\n")
		byRegion, byDate := newTestLoader().LoadMeasurements(path)

		require.Len(t, byRegion, 1)
		require.Len(t, byDate, 1)
		want := dataset.Measurement{Date: "2009/06/01", RegionID: 205, RegionName: "Sunset Park", Value: 11.45}
		assert.Equal(t, []dataset.Measurement{want}, byRegion[205])
		assert.Equal(t, []dataset.Measurement{want}, byDate["2009/06/01"])
	})

	t.Run("numeric first row is data not header", func(t *testing.T) {
		path := writeFile(t, "air.csv",
			"205,Sunset Park,2009/06/01,11.45\n"+
				"205,Sunset Park,2009/06/02,10.01\n")
		byRegion, _ := newTestLoader().LoadMeasurements(path)

		assert.Len(t, byRegion[205], 2)
	})

	t.Run("malformed rows dropped silently and order preserved", func(t *testing.T) {
		path := writeFile(t, "air.csv",
			"205,First,2009/06/01,1.0\n"+
				"abc,Bad Id,2009/06/01,2.0\n"+
				"205,,2009/06/01,3.0\n"+
				"205,Bad Value,2009/06/01,oops\n"+
				"205,Short Row\n"+
				"205,Bare Date,  ,4.0\n"+
				"205,Last,2009/06/01,5.0\n")
		byRegion, byDate := newTestLoader().LoadMeasurements(path)

		require.Len(t, byRegion[205], 2)
		assert.Equal(t, "First", byRegion[205][0].RegionName)
		assert.Equal(t, "Last", byRegion[205][1].RegionName)
		assert.Len(t, byDate["2009/06/01"], 2)
	})

	t.Run("valid row lands in both indexes exactly once", func(t *testing.T) {
		path := writeFile(t, "air.csv",
			"205,Sunset Park,2009/06/01,11.45\n"+
				"101,Riverdale,2009/06/01,8.20\n"+
				"205,Sunset Park,2009/06/02,10.70\n")
		byRegion, byDate := newTestLoader().LoadMeasurements(path)

		total := 0
		for _, ms := range byRegion {
			total += len(ms)
		}
		assert.Equal(t, 3, total)
		assert.Len(t, byDate["2009/06/01"], 2)
		assert.Len(t, byDate["2009/06/02"], 1)
		// Same records, same order, via either index.
		assert.Equal(t, byRegion[205][0], byDate["2009/06/01"][0])
	})

	t.Run("sniffed semicolon delimiter", func(t *testing.T) {
		path := writeFile(t, "air.csv",
			"205;Sunset Park;2009/06/01;11.45\n"+
				"101;Riverdale;2009/06/01;8.20\n")
		byRegion, _ := newTestLoader().LoadMeasurements(path)

		assert.Len(t, byRegion, 2)
	})

	t.Run("utf8 bom on first cell", func(t *testing.T) {
		path := writeFile(t, "air.csv",
			"\ufeff205,Sunset Park,2009/06/01,11.45\n")
		byRegion, _ := newTestLoader().LoadMeasurements(path)

		assert.Len(t, byRegion[205], 1)
	})

	t.Run("missing file yields empty non-nil indexes", func(t *testing.T) {
		byRegion, byDate := newTestLoader().LoadMeasurements(filepath.Join(t.TempDir(), "nope.csv"))

		require.NotNil(t, byRegion)
		require.NotNil(t, byDate)
		assert.Empty(t, byRegion)
		assert.Empty(t, byDate)
	})

	t.Run("idempotent across loads", func(t *testing.T) {
		path := writeFile(t, "air.csv",
			"205,Sunset Park,2009/06/01,11.45\n"+
				"bad row\n"+
				"101,Riverdale,2009/06/02,8.20\n")
		r1, d1 := newTestLoader().LoadMeasurements(path)
		r2, d2 := newTestLoader().LoadMeasurements(path)

		assert.Equal(t, r1, r2)
		assert.Equal(t, d1, d2)
	})
}

func TestLoadGeography(t *testing.T) {
	t.Run("layout A header-bearing", func(t *testing.T) {
		path := writeFile(t, "uhf.csv",
			"Borough,uhf_id,zip codes\n"+
				"Brooklyn,205,11232,11220\n"+
				"manhattan,305306307,10012\n")
		byPostal, byArea := newTestLoader().LoadGeography(path)

		assert.Equal(t, []int{205}, byPostal["11232"])
		assert.Equal(t, []int{205}, byPostal["11220"])
		assert.Equal(t, []int{305, 306, 307}, byPostal["10012"])
		assert.Equal(t, []int{205}, byArea["Brooklyn"])
		assert.Equal(t, []int{305, 306, 307}, byArea["Manhattan"])
	})

	t.Run("layout A with relocated columns", func(t *testing.T) {
		path := writeFile(t, "uhf.csv",
			"UHF Code,Borough,Zip 1,Zip 2\n"+
				"205,Brooklyn,11232,11220\n")
		byPostal, byArea := newTestLoader().LoadGeography(path)

		assert.Equal(t, []int{205}, byArea["Brooklyn"])
		assert.Equal(t, []int{205}, byPostal["11232"])
		assert.Equal(t, []int{205}, byPostal["11220"])
	})

	t.Run("layout B positional", func(t *testing.T) {
		path := writeFile(t, "uhf.csv",
			"Brooklyn,UHF42,205,11232\n"+
				"Bronx,UHF42,101,10463,10471\n")
		byPostal, byArea := newTestLoader().LoadGeography(path)

		assert.Equal(t, []int{205}, byPostal["11232"])
		assert.Equal(t, []int{101}, byPostal["10463"])
		assert.Equal(t, []int{101}, byPostal["10471"])
		assert.Equal(t, []int{205}, byArea["Brooklyn"])
		assert.Equal(t, []int{101}, byArea["Bronx"])
	})

	t.Run("first data row is not mistaken for a header", func(t *testing.T) {
		path := writeFile(t, "uhf.csv",
			"Bronx,UHF42,101,10463\n")
		byPostal, byArea := newTestLoader().LoadGeography(path)

		require.Contains(t, byPostal, "10463")
		assert.Equal(t, []int{101}, byArea["Bronx"])
	})

	t.Run("blank rows discarded before layout detection", func(t *testing.T) {
		path := writeFile(t, "uhf.csv",
			"\n"+
				" , , \n"+
				"Brooklyn,UHF42,205,11232\n")
		byPostal, _ := newTestLoader().LoadGeography(path)

		assert.Equal(t, []int{205}, byPostal["11232"])
	})

	t.Run("row with no resolvable ids inserts no keys", func(t *testing.T) {
		path := writeFile(t, "uhf.csv",
			"Brooklyn,UHF42,not-a-code,11232\n"+
				"Bronx,UHF42,101,10463\n")
		byPostal, byArea := newTestLoader().LoadGeography(path)

		assert.NotContains(t, byPostal, "11232")
		assert.NotContains(t, byArea, "Brooklyn")
		assert.Equal(t, []int{101}, byPostal["10463"])
	})

	t.Run("id lists are ordered sets across rows", func(t *testing.T) {
		path := writeFile(t, "uhf.csv",
			"Brooklyn,UHF42,205,11232\n"+
				"Brooklyn,UHF42,206,11232\n"+
				"Brooklyn,UHF42,205,11232\n")
		byPostal, byArea := newTestLoader().LoadGeography(path)

		assert.Equal(t, []int{205, 206}, byPostal["11232"])
		assert.Equal(t, []int{205, 206}, byArea["Brooklyn"])
	})

	t.Run("zip truncation and per-row dedup", func(t *testing.T) {
		path := writeFile(t, "uhf.csv",
			"Bronx,UHF42,101,104631234,10463,104\n")
		byPostal, _ := newTestLoader().LoadGeography(path)

		assert.Equal(t, []int{101}, byPostal["10463"])
		assert.Len(t, byPostal, 1)
	})

	t.Run("short layout B row skipped", func(t *testing.T) {
		path := writeFile(t, "uhf.csv",
			"Brooklyn,UHF42\n"+
				"Bronx,UHF42,101,10463\n")
		_, byArea := newTestLoader().LoadGeography(path)

		assert.NotContains(t, byArea, "Brooklyn")
		assert.Contains(t, byArea, "Bronx")
	})

	t.Run("missing file yields empty non-nil indexes", func(t *testing.T) {
		byPostal, byArea := newTestLoader().LoadGeography(filepath.Join(t.TempDir(), "nope.csv"))

		require.NotNil(t, byPostal)
		require.NotNil(t, byArea)
		assert.Empty(t, byPostal)
		assert.Empty(t, byArea)
	})

	t.Run("idempotent across loads", func(t *testing.T) {
		path := writeFile(t, "uhf.csv",
			"Borough,uhf_id,zip\n"+
				"Brooklyn,205,11232\n"+
				"Queens,401,11101,111021234\n")
		p1, a1 := newTestLoader().LoadGeography(path)
		p2, a2 := newTestLoader().LoadGeography(path)

		assert.Equal(t, p1, p2)
		assert.Equal(t, a1, a2)
	})
}

func TestCheckReadiness(t *testing.T) {
	loader := newTestLoader()
	ctx := context.Background()

	require.Error(t, loader.CheckReadiness(ctx))

	loader.LoadMeasurements(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, loader.CheckReadiness(ctx))

	loader.LoadGeography(filepath.Join(t.TempDir(), "nope.csv"))
	assert.NoError(t, loader.CheckReadiness(ctx))
}

func TestSummarize(t *testing.T) {
	frozen := time.Date(2026, time.August, 27, 12, 0, 0, 0, time.UTC)
	ingest.SetClock(clockwork.NewFakeClockAt(frozen))
	defer ingest.SetClock(nil)

	m := dataset.Measurement{Date: "2009/06/01", RegionID: 205, RegionName: "Sunset Park", Value: 11.45}
	stats := ingest.Summarize(
		dataset.RegionIndex{205: {m, m}, 101: {m}},
		dataset.DateIndex{"2009/06/01": {m, m, m}},
		dataset.PostalIndex{"11232": {205}},
		dataset.AreaIndex{"Brooklyn": {205}, "Bronx": {101}},
	)

	assert.Equal(t, 3, stats.Records)
	assert.Equal(t, 2, stats.RegionKeys)
	assert.Equal(t, 1, stats.DateKeys)
	assert.Equal(t, 1, stats.PostalKeys)
	assert.Equal(t, 2, stats.AreaKeys)
	assert.Equal(t, frozen, stats.LoadedAt)
}
