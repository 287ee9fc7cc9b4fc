package dataset

import "fmt"

// Measurement is one pollutant reading for one UHF region on one date.
// Values are parsed once during loading and never mutated.
type Measurement struct {
	Date       string
	RegionID   int
	RegionName string
	Value      float64
}

// Format renders the measurement in the fixed display form used by the CLI.
func (m Measurement) Format() string {
	return fmt.Sprintf("%s UHF %d %s %.2f mcg/m^3", m.Date, m.RegionID, m.RegionName, m.Value)
}

// RegionIndex maps a UHF region id to its measurements in file order.
type RegionIndex map[int][]Measurement

// DateIndex maps a date string to its measurements in file order.
type DateIndex map[string][]Measurement

// PostalIndex maps a 5-digit zip code to an ordered set of region ids.
type PostalIndex map[string][]int

// AreaIndex maps a normalized borough name to an ordered set of region ids.
type AreaIndex map[string][]int
