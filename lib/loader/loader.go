package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"tabula/lib/table"
	"tabula/lib/timer"
	"tabula/lib/value"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

var rowsLoaded = promauto.NewCounter(prometheus.CounterOpts{
	Name: "loader_rows_total",
	Help: "Rows read from delimited text",
})

// raw holds one column's fields before typing. present is false for fields
// matching a null value.
type raw struct {
	name    string
	fields  []string
	present []bool
}

// Read parses delimited text with a header row into a table. A record with
// the wrong number of fields fails with ErrSchema naming its line; a field
// that does not parse as its column's declared type fails with ErrType.
func Read(r io.Reader, opts Options) (*table.Table, error) {
	defer timer.Start("loader.read").Stop()
	r, err := decode(r, opts.Encoding)
	if err != nil {
		return nil, err
	}
	rd := csv.NewReader(r)
	rd.Comma = opts.delimiter()
	rd.FieldsPerRecord = -1
	rd.ReuseRecord = true

	header, err := rd.Read()
	if errors.Is(err, io.EOF) {
		return table.New()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", value.ErrSchema, err)
	}
	header = append([]string(nil), header...)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	columns := make([]*raw, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, name := range header {
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w: duplicate column name '%s' in header", value.ErrSchema, name)
		}
		seen[name] = struct{}{}
		columns[i] = &raw{name: name}
	}
	for name := range opts.Schema {
		if _, ok := seen[name]; !ok {
			return nil, fmt.Errorf("%w: schema names column '%s' which the header lacks", value.ErrName, name)
		}
	}
	for _, name := range opts.DateColumns {
		if _, ok := seen[name]; !ok {
			return nil, fmt.Errorf("%w: date column '%s' not in header", value.ErrName, name)
		}
	}

	nulls := opts.nulls()
	lines := make([]int, 0)
	for {
		record, err := rd.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", value.ErrSchema, err)
		}
		line, _ := rd.FieldPos(0)
		if len(record) != len(columns) {
			return nil, fmt.Errorf("%w: line %d has %d fields, expected %d", value.ErrSchema, line, len(record), len(columns))
		}
		lines = append(lines, line)
		for i, f := range record {
			_, null := nulls[f]
			columns[i].fields = append(columns[i].fields, f)
			columns[i].present = append(columns[i].present, !null)
		}
	}

	ret := make([]*table.Column, len(columns))
	for i, c := range columns {
		typ := columnType(c, opts)
		b := table.NewBuilder(c.name, typ, len(c.fields))
		for j, f := range c.fields {
			if !c.present[j] {
				_ = b.Append(value.Nil)
				continue
			}
			v, err := parse(f, typ, opts.DayFirst)
			if err != nil {
				return nil, fmt.Errorf("column '%s' line %d: %w", c.name, lines[j], err)
			}
			if err = b.Append(v); err != nil {
				return nil, err
			}
		}
		ret[i] = b.Build()
	}
	rowsLoaded.Add(float64(len(lines)))
	return table.New(ret...)
}

func columnType(c *raw, opts Options) value.Type {
	if typ, ok := opts.Schema[c.name]; ok {
		return typ
	}
	if opts.isDateColumn(c.name) {
		return value.Types.Date
	}
	if opts.AllString {
		return value.Types.Utf8
	}
	return infer(c.fields, c.present, opts.TryParseDates, opts.DayFirst)
}

// decode wraps r so it yields UTF-8.
func decode(r io.Reader, encoding string) (io.Reader, error) {
	if encoding == "" {
		return r, nil
	}
	enc, err := ianaindex.IANA.Encoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown encoding '%s': %v", value.ErrSchema, encoding, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("%w: encoding '%s' is not supported", value.ErrSchema, encoding)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// ReadFile reads the file at path with Read.
func ReadFile(path string, opts Options) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tbl, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("loading '%s': %w", path, err)
	}
	return tbl, nil
}
