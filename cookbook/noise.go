// Package cookbook answers the questions of the pandas cookbook chapters with
// the engine: which borough has the most noise complaints, and on which
// weekday people bike the most.
package cookbook

import (
	"context"

	"tabula/engine"
	"tabula/engine/ast"
	"tabula/engine/operators"
	"tabula/lib/loader"
	"tabula/lib/table"
	"tabula/lib/value"
)

const (
	ComplaintType  = "Complaint Type"
	Borough        = "Borough"
	NoiseComplaint = "Noise - Street/Sidewalk"
	NoiseCount     = "Noise Complaint Count"
	TotalCount     = "Total Complaint Count"
	Ratio          = "Ratio"
)

// ComplaintsOptions loads the 311 service requests with every column as text.
var ComplaintsOptions = loader.Options{AllString: true}

func isNoise() ast.Ast {
	return ast.Eq(ast.C(ComplaintType), ast.L(value.String(NoiseComplaint)))
}

// NoiseIn lists the first n street noise complaints made in borough.
func NoiseIn(ctx context.Context, complaints *table.Table, borough string, n int) (*table.Table, error) {
	inBorough := ast.Eq(ast.C(Borough), ast.L(value.String(borough)))
	return engine.From(ctx, complaints).
		Filter(ast.And(isNoise(), inBorough)).
		Select(ComplaintType, Borough, "Created Date", "Descriptor").
		Head(n).
		Collect()
}

// NoiseByBorough counts street noise complaints per borough and normalises
// them by the total number of complaints of that borough. Boroughs are ordered
// from the noisiest ratio down.
func NoiseByBorough(ctx context.Context, complaints *table.Table) (*table.Table, error) {
	noise := engine.From(ctx, complaints).
		Filter(isNoise()).
		GroupBy(Borough).Count().
		Rename(map[string]string{"count": NoiseCount})
	total := engine.From(ctx, complaints).
		GroupBy(Borough).Count().
		Rename(map[string]string{"count": TotalCount})
	return noise.
		Join(total, Borough, operators.Inner).
		WithColumns(ast.Alias(ast.Div(ast.C(NoiseCount), ast.C(TotalCount)), Ratio)).
		SortBy(Ratio, true).
		Collect()
}
