package dataset

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseIntField parses a trimmed string as an integer, reporting success
// instead of an error. Malformed numeric fields drop rows, they never abort
// a load.
func ParseIntField(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	return v, err == nil
}

// ParseFloatField parses a trimmed string as a float64, reporting success.
func ParseFloatField(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v, err == nil
}

// NormalizeArea trims a borough name and title-cases it so spellings that
// differ only in case or surrounding whitespace land on the same index key.
// A letter is upper-cased when the preceding rune is not a letter, all other
// letters are lowered ("o'neill" -> "O'Neill").
func NormalizeArea(name string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range strings.TrimSpace(name) {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}

// ExpandRegionCode expands a UHF code cell into its constituent region ids.
// UHF34 concatenations like "105106107" yield [105 106 107]; a plain code
// like "205" yields [205]. A cell that parses as neither yields nil.
func ExpandRegionCode(code string) []int {
	s := strings.TrimSpace(code)
	if s == "" {
		return nil
	}
	if allDigits(s) && len(s) > 3 && len(s)%3 == 0 {
		ids := make([]int, 0, len(s)/3)
		for i := 0; i < len(s); i += 3 {
			id, _ := strconv.Atoi(s[i : i+3])
			ids = append(ids, id)
		}
		return ids
	}
	if id, ok := ParseIntField(s); ok {
		return []int{id}
	}
	return nil
}

// ExtractPostalCodes filters cells down to zip-code candidates: at least 5
// characters with the first 5 all digits, truncated to those 5. Duplicates
// within the row are dropped, first occurrence wins.
func ExtractPostalCodes(cells []string) []string {
	var zips []string
	seen := make(map[string]struct{})
	for _, c := range cells {
		c = strings.TrimSpace(c)
		if len(c) < 5 || !allDigits(c[:5]) {
			continue
		}
		z := c[:5]
		if _, dup := seen[z]; dup {
			continue
		}
		seen[z] = struct{}{}
		zips = append(zips, z)
	}
	return zips
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
