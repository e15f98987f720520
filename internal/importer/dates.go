package importer

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrDateParse reports a value under a date-like key that no known layout
// could parse. Row-scoped: the row is still imported without that field.
var ErrDateParse = errors.New("unparseable date")

// TwoDigitYearPivot defines how 2-digit years are interpreted. Years that
// would land more than this many years in the future are assumed to be in
// the previous century. Example with pivot=20 in 2025: "46" is 1946, "24"
// is 2024.
var TwoDigitYearPivot = 20

// Date layouts split by year format for proper 2-digit year handling.
var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
	fourDigitYearLayouts = []string{
		"2006-01-02", "2006/01/02", "2006.01.02",
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"Jan 2, 2006", "2 Jan 2006",
		"20060102",
	}
)

// NormalizeDate parses a spreadsheet date in any supported layout and
// returns it as YYYY-MM-DD. Empty input normalizes to empty.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}

	// 4-digit year layouts first: unambiguous
	for _, layout := range fourDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}

	pivotYear := time.Now().Year() + TwoDigitYearPivot
	for _, layout := range twoDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return t.Format("2006-01-02"), nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrDateParse, s)
}

// isDateKey reports whether a destination key should get date normalization.
func isDateKey(key string) bool {
	return strings.Contains(strings.ToLower(key), "date")
}
