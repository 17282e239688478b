package cookbook

import (
	"context"
	"fmt"

	"tabula/engine"
	"tabula/engine/ast"
	"tabula/engine/functions"
	"tabula/engine/operators"
	"tabula/lib/loader"
	"tabula/lib/table"
	"tabula/lib/value"
	_ "tabula/opdefs" // dt.weekday
)

const (
	Date          = "Date"
	Berri         = "Berri 1"
	Weekday       = "weekday"
	WeekdayName   = "weekday_name"
	TotalCyclists = "total_cyclists"
)

// BikesOptions reads the Montreal bike path counts: semicolon separated,
// latin1 encoded, with day first dates.
var BikesOptions = loader.Options{
	Delimiter:     ';',
	Encoding:      "latin1",
	TryParseDates: true,
	DayFirst:      true,
}

var weekdayNames = []string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func nameWeekday(v value.Value) (value.Value, error) {
	n, ok := v.(value.Int)
	if !ok || n < 1 || int(n) >= len(weekdayNames) {
		return nil, fmt.Errorf("%w: '%s' is not a weekday number", value.ErrType, v)
	}
	return value.String(weekdayNames[n]), nil
}

// CyclistsByWeekday sums the cyclists counted on the Berri 1 path per weekday,
// Monday first.
func CyclistsByWeekday(ctx context.Context, bikes *table.Table) (*table.Table, error) {
	weekday, err := functions.Call("dt", "weekday", ast.C(Date))
	if err != nil {
		return nil, err
	}
	name := ast.Map(ast.Lambda("weekday_names", nameWeekday), ast.C(Weekday), value.Types.Utf8)
	return engine.From(ctx, bikes).
		Select(Date, Berri).
		WithColumns(ast.Alias(weekday, Weekday)).
		GroupBy(Weekday).
		Agg(operators.Sum(Berri).Alias(TotalCyclists)).
		WithColumns(ast.Alias(name, WeekdayName)).
		SortBy(Weekday, false).
		Collect()
}
