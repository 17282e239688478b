package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"tabula/cookbook"
	"tabula/lib/display"
	"tabula/lib/export"
	"tabula/lib/loader"
	"tabula/lib/table"
	"tabula/lib/timer"
	"tabula/service/common"

	"github.com/alexflint/go-arg"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"go.uber.org/zap"
)

type args struct {
	Complaints string `arg:"--complaints,env:TABULA_COMPLAINTS" help:"311 service requests CSV"`
	Bikes      string `arg:"--bikes,env:TABULA_BIKES" help:"Montreal bike path counts CSV"`
	// column=type pairs overriding how a column is loaded, e.g. "Unique Key=i64"
	ComplaintsSchema map[string]string `arg:"--complaints-schema" help:"column=type pairs for the complaints file"`
	BikesSchema      map[string]string `arg:"--bikes-schema" help:"column=type pairs for the bikes file"`
	Chapter          int               `arg:"--chapter,env:TABULA_CHAPTER" default:"0" help:"3 or 4; 0 runs every chapter whose input is given"`
	CacheCells       int64             `arg:"--cache-cells,env:TABULA_CACHE_CELLS" default:"50000000" help:"cells kept by the table cache"`
	Arrow            bool              `arg:"--arrow" help:"also print the Arrow schema of every result"`
	display.Config
	common.LoggerArgs
	common.PrometheusArgs
	common.PprofArgs
}

func (args) Description() string {
	return "Answers the pandas cookbook questions on the 311 complaints and bike counts datasets."
}

type chapter struct {
	number int
	title  string
	input  func(a args) string
	schema func(a args) map[string]string
	opts   loader.Options
	run    func(ctx context.Context, tbl *table.Table) (*table.Table, error)
}

var chapters = []chapter{
	{
		number: 3,
		title:  "Which borough has the most noise complaints",
		input:  func(a args) string { return a.Complaints },
		schema: func(a args) map[string]string { return a.ComplaintsSchema },
		opts:   cookbook.ComplaintsOptions,
		run:    cookbook.NoiseByBorough,
	},
	{
		number: 4,
		title:  "On which weekday do people bike the most",
		input:  func(a args) string { return a.Bikes },
		schema: func(a args) map[string]string { return a.BikesSchema },
		opts:   cookbook.BikesOptions,
		run:    cookbook.CyclistsByWeekday,
	},
}

// selected returns the chapters to run. An explicit chapter must have its
// input, the default runs whatever has one.
func selected(a args) ([]chapter, error) {
	ret := make([]chapter, 0, len(chapters))
	for _, c := range chapters {
		if a.Chapter != 0 && a.Chapter != c.number {
			continue
		}
		if c.input(a) == "" {
			if a.Chapter == c.number {
				return nil, fmt.Errorf("chapter %d needs an input file", c.number)
			}
			continue
		}
		ret = append(ret, c)
	}
	if len(ret) == 0 {
		return nil, errors.New("nothing to run: pass --complaints and/or --bikes")
	}
	return ret, nil
}

func run(ctx context.Context, a args, cache *loader.Cache, logger *zap.Logger, out io.Writer) error {
	todo, err := selected(a)
	if err != nil {
		return err
	}
	for _, c := range todo {
		path := c.input(a)
		opts, err := c.opts.WithSchema(c.schema(a))
		if err != nil {
			return fmt.Errorf("chapter %d: %w", c.number, err)
		}
		tbl, err := cache.ReadFile(path, opts)
		if err != nil {
			return fmt.Errorf("chapter %d: %w", c.number, err)
		}
		logger.Debug("running chapter", zap.Int("chapter", c.number), zap.Strings("columns", tbl.Names()))
		ret, err := c.run(ctx, tbl)
		if err != nil {
			return fmt.Errorf("chapter %d: %w", c.number, err)
		}
		fmt.Fprintf(out, "Chapter %d: %s\n%s\n", c.number, c.title, display.Format(ret, a.Config))
		if a.Arrow {
			rec, err := export.ToRecord(ret, memory.DefaultAllocator)
			if err != nil {
				return fmt.Errorf("chapter %d: %w", c.number, err)
			}
			fmt.Fprintf(out, "%s\n", rec.Schema())
			rec.Release()
		}
	}
	return nil
}

func main() {
	os.Exit(start())
}

func start() int {
	var flags args
	arg.MustParse(&flags)

	logger, err := common.NewLogger(flags.Dev)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if flags.MetricsPort != 0 {
		srv := common.StartPromMetricsServer(flags.MetricsPort, logger)
		defer srv.Close()
	}
	if flags.PprofPort != 0 {
		common.StartPprofServer(flags.PprofPort, logger)
	}

	cache, err := loader.NewCache(flags.CacheCells, logger)
	if err != nil {
		logger.Error("failed to create table cache", zap.Error(err))
		return 1
	}
	defer cache.Close()

	ctx := timer.WithTracing(context.Background(), nil)
	err = run(ctx, flags, cache, logger, os.Stdout)
	_ = timer.LogTracingInfo(ctx, logger)
	if err != nil {
		logger.Error("cookbook failed", zap.Error(err))
		return 1
	}
	return 0
}
