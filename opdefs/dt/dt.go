package dt

import (
	"fmt"

	"tabula/engine/functions"
	"tabula/lib/value"
)

func init() {
	for name := range extractorMap {
		if err := functions.Register(extractor{name: name}); err != nil {
			panic(err)
		}
	}
	if err := functions.Register(weekdayName{}); err != nil {
		panic(err)
	}
}

func year(d value.Date) int {
	return d.Time().Year()
}

func month(d value.Date) int {
	return int(d.Time().Month())
}

func day(d value.Date) int {
	return d.Time().Day()
}

// weekday numbers days from Monday=1 to Sunday=7.
func weekday(d value.Date) int {
	return d.Weekday()
}

func yearday(d value.Date) int {
	return d.Time().YearDay()
}

var extractorMap = map[string]func(value.Date) int{
	"year":    year,
	"month":   month,
	"day":     day,
	"weekday": weekday,
	"yearday": yearday,
}

type extractor struct {
	name string
}

func (e extractor) Signature() *functions.Signature {
	return functions.NewSignature("dt", e.name).
		Input(value.Types.Date).
		Output(value.Types.Int64).
		WithHelp(fmt.Sprintf("Extracts the %s of a date as an integer", e.name))
}

func (e extractor) Apply(v value.Value) (value.Value, error) {
	d, ok := v.(value.Date)
	if !ok {
		return nil, fmt.Errorf("%w: dt.%s expects a date. Got '%s'", value.ErrType, e.name, v.Type())
	}
	return value.Int(extractorMap[e.name](d)), nil
}

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

type weekdayName struct{}

func (w weekdayName) Signature() *functions.Signature {
	return functions.NewSignature("dt", "weekday_name").
		Input(value.Types.Date, value.Types.Int64).
		Output(value.Types.Utf8).
		WithHelp("Names the weekday of a date, or of a weekday number from 1 (Monday) to 7 (Sunday)")
}

func (w weekdayName) Apply(v value.Value) (value.Value, error) {
	var n int
	switch v := v.(type) {
	case value.Date:
		n = v.Weekday()
	case value.Int:
		n = int(v)
	default:
		return nil, fmt.Errorf("%w: dt.weekday_name expects a date or an integer. Got '%s'", value.ErrType, v.Type())
	}
	if n < 1 || n > 7 {
		return nil, fmt.Errorf("%w: weekday number must be between 1 and 7. Got %d", value.ErrType, n)
	}
	return value.String(weekdayNames[n-1]), nil
}
