package loader

import (
	"fmt"
	"strconv"
	"strings"

	"tabula/lib/value"
)

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// infer picks the narrowest type every present field parses as, trying
// Int64, Float64, Bool, then Date when dates are allowed. Columns with no
// present field are Utf8.
func infer(fields []string, present []bool, dates, dayFirst bool) value.Type {
	candidates := []value.Type{value.Types.Int64, value.Types.Float64, value.Types.Bool}
	if dates {
		candidates = append(candidates, value.Types.Date)
	}
	seen := false
	for i := range fields {
		if present[i] {
			seen = true
			break
		}
	}
	if !seen {
		return value.Types.Utf8
	}
	for _, typ := range candidates {
		ok := true
		for i, f := range fields {
			if !present[i] {
				continue
			}
			if _, err := parse(f, typ, dayFirst); err != nil {
				ok = false
				break
			}
		}
		if ok {
			return typ
		}
	}
	return value.Types.Utf8
}

func parse(field string, typ value.Type, dayFirst bool) (value.Value, error) {
	switch typ {
	case value.Types.Utf8:
		return value.String(field), nil
	case value.Types.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: '%s' is not an integer", value.ErrType, field)
		}
		return value.Int(n), nil
	case value.Types.Float64:
		f, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: '%s' is not a number", value.ErrType, field)
		}
		return value.Double(f), nil
	case value.Types.Bool:
		b, ok := parseBool(strings.TrimSpace(field))
		if !ok {
			return nil, fmt.Errorf("%w: '%s' is not a boolean", value.ErrType, field)
		}
		return value.Bool(b), nil
	case value.Types.Date:
		d, ok := parseDate(field, dayFirst)
		if !ok {
			return nil, fmt.Errorf("%w: '%s' is not a date", value.ErrType, field)
		}
		return d, nil
	case value.Types.Null:
		return nil, fmt.Errorf("%w: column of type null can not hold '%s'", value.ErrType, field)
	}
	return nil, fmt.Errorf("%w: can not load columns of type '%s'", value.ErrType, typ)
}
