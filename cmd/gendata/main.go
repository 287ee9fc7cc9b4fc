// Command gendata writes deterministic sample input files for manual testing:
// an air_quality.csv measurement extract and a uhf.csv mapping file in either
// accepted layout. It uses the same domain conventions the loaders parse, so
// generated files exercise header detection, composite UHF codes, and zip
// truncation.
//
// Usage:
//
//	go run ./cmd/gendata -out-dir testdata -layout b -days 3 -dirty
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
)

// baseClock fixes the first measurement date for reproducible fixtures.
var baseClock = clockwork.NewFakeClockAt(time.Date(2009, time.June, 1, 0, 0, 0, 0, time.UTC))

// regionDef ties a UHF region to its borough and zip codes. Composite codes
// appear in the mapping file exactly as UHF34 extracts concatenate them.
type regionDef struct {
	borough string
	marker  string
	code    string // may be a composite like "105106107"
	ids     []int  // ids the code expands to, used for measurement rows
	names   []string
	zips    []string
}

var regions = []regionDef{
	{borough: "Brooklyn", marker: "UHF42", code: "205", ids: []int{205},
		names: []string{"Sunset Park"}, zips: []string{"11232", "11220"}},
	{borough: "Bronx", marker: "UHF42", code: "101", ids: []int{101},
		names: []string{"Kingsbridge - Riverdale"}, zips: []string{"10463", "10471"}},
	{borough: "Manhattan", marker: "UHF34", code: "305306307", ids: []int{305, 306, 307},
		names: []string{"Greenwich Village", "Union Square", "Lower Manhattan"},
		zips: []string{"10012", "100031234", "10013"}},
	{borough: "Queens", marker: "UHF42", code: "401", ids: []int{401},
		names: []string{"Long Island City - Astoria"}, zips: []string{"11101", "11102", "11101"}},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", ".", "directory to write air_quality.csv and uhf.csv into")
	layout := flag.String("layout", "b", "mapping file layout: a (header-bearing) or b (positional)")
	days := flag.Int("days", 3, "number of consecutive measurement dates")
	delim := flag.String("delimiter", ",", "field delimiter for both files")
	dirty := flag.Bool("dirty", false, "include malformed rows the loaders must skip")
	flag.Parse()

	if *layout != "a" && *layout != "b" {
		flag.Usage()
		return fmt.Errorf("invalid -layout %q: want a or b", *layout)
	}
	if len(*delim) != 1 {
		flag.Usage()
		return fmt.Errorf("invalid -delimiter %q: want a single character", *delim)
	}
	comma := rune((*delim)[0])

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	airPath := filepath.Join(*outDir, "air_quality.csv")
	n, err := writeMeasurements(airPath, comma, *days, *dirty)
	if err != nil {
		return fmt.Errorf("writing measurements: %w", err)
	}
	log.Printf("wrote %s: %d rows", airPath, n)

	uhfPath := filepath.Join(*outDir, "uhf.csv")
	n, err = writeMapping(uhfPath, comma, *layout, *dirty)
	if err != nil {
		return fmt.Errorf("writing mapping: %w", err)
	}
	log.Printf("wrote %s: %d rows (layout %s)", uhfPath, n, *layout)
	return nil
}

func writeMeasurements(path string, comma rune, days int, dirty bool) (int, error) {
	rows := [][]string{{"UHF Geo ID", "Geo description", "date", "pm2.5"}}
	for d := 0; d < days; d++ {
		date := baseClock.Now().AddDate(0, 0, d).Format("2006/01/02")
		for _, r := range regions {
			for i, id := range r.ids {
				value := 8.0 + float64(id%10) + 0.15*float64(d)
				rows = append(rows, []string{
					fmt.Sprintf("%d", id), r.names[i], date, fmt.Sprintf("%.2f", value),
				})
			}
		}
	}
	if dirty {
		rows = append(rows,
			[]string{"not-a-number", "Bad Id Row", "2009/06/01", "9.99"},
			[]string{"205", "", "2009/06/01", "9.99"},
			[]string{"205", "Short Row"},
			[]string{"205", "Bad Value Row", "2009/06/01", "n/a"},
		)
	}
	return len(rows), writeCSV(path, comma, rows)
}

func writeMapping(path string, comma rune, layout string, dirty bool) (int, error) {
	var rows [][]string
	if layout == "a" {
		rows = append(rows, []string{"Borough", "uhf_id", "zip codes"})
		for _, r := range regions {
			row := append([]string{r.borough, r.code}, r.zips...)
			rows = append(rows, row)
		}
	} else {
		for _, r := range regions {
			row := append([]string{r.borough, r.marker, r.code}, r.zips...)
			rows = append(rows, row)
		}
	}
	if dirty {
		if layout == "a" {
			rows = append(rows, []string{"Staten Island"})
		} else {
			rows = append(rows,
				[]string{"Staten Island", "UHF42"},
				[]string{"Staten Island", "UHF42", "not-a-code", "10301"},
			)
		}
		rows = append(rows, []string{"", "", ""})
	}
	return len(rows), writeCSV(path, comma, rows)
}

func writeCSV(path string, comma rune, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	w.Comma = comma
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
