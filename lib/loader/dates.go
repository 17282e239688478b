package loader

import (
	"strings"
	"time"

	"tabula/lib/value"
)

var isoLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

var monthFirstLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04",
	"01/02/2006 03:04:05 PM",
	"01/02/2006 15:04:05",
}

var dayFirstLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02/01/2006 15:04",
	"02/01/2006 03:04:05 PM",
	"02/01/2006 15:04:05",
	"02.01.2006",
}

// parseDate reads a calendar date, dropping any time of day.
func parseDate(s string, dayFirst bool) (value.Date, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 6 {
		return 0, false
	}
	layouts := monthFirstLayouts
	if dayFirst {
		layouts = dayFirstLayouts
	}
	for _, group := range [][]string{isoLayouts, layouts} {
		for _, layout := range group {
			if t, err := time.Parse(layout, s); err == nil {
				return value.DateOf(t), true
			}
		}
	}
	return 0, false
}
