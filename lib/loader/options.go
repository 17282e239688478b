package loader

import (
	"fmt"
	"sort"
	"strings"

	"tabula/lib/value"
)

// Options control how delimited text becomes a table. The zero value reads
// comma separated UTF-8 with a header row, infers every column type and
// treats empty fields as null.
type Options struct {
	// Delimiter separates fields. Zero means ','.
	Delimiter rune
	// Schema fixes the type of the named columns. Other columns are inferred,
	// or loaded as strings when AllString is set.
	Schema map[string]value.Type
	// AllString loads every column not in Schema as Utf8.
	AllString bool
	// TryParseDates lets inference pick Date for columns whose every value
	// parses as a date.
	TryParseDates bool
	// DateColumns must parse as dates. A value that does not is an error.
	DateColumns []string
	// DayFirst reads 01/02/2012 as the 1st of February.
	DayFirst bool
	// Encoding is the IANA name of the input charset, e.g. "latin1".
	// Empty means UTF-8.
	Encoding string
	// NullValues are the field texts read as null. Nil means {""}.
	NullValues []string
}

func (o Options) delimiter() rune {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}

func (o Options) nulls() map[string]struct{} {
	vals := o.NullValues
	if vals == nil {
		vals = []string{""}
	}
	ret := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		ret[v] = struct{}{}
	}
	return ret
}

func (o Options) isDateColumn(name string) bool {
	for _, c := range o.DateColumns {
		if c == name {
			return true
		}
	}
	return false
}

// String renders the options deterministically. It is part of cache keys.
func (o Options) String() string {
	names := make([]string, 0, len(o.Schema))
	for name := range o.Schema {
		names = append(names, name)
	}
	sort.Strings(names)
	schema := make([]string, len(names))
	for i, name := range names {
		schema[i] = fmt.Sprintf("%s:%s", name, o.Schema[name])
	}
	return fmt.Sprintf("delim=%q schema=[%s] allstr=%t dates=%t datecols=[%s] dayfirst=%t enc=%s nulls=%q",
		o.delimiter(), strings.Join(schema, ","), o.AllString, o.TryParseDates,
		strings.Join(o.DateColumns, ","), o.DayFirst, strings.ToLower(o.Encoding), o.NullValues)
}

// WithSchema returns a copy of o whose Schema adds the named types, e.g.
// {"Unique Key": "i64"}. Type names are those accepted by value.ParseType.
func (o Options) WithSchema(types map[string]string) (Options, error) {
	schema := make(map[string]value.Type, len(o.Schema)+len(types))
	for name, typ := range o.Schema {
		schema[name] = typ
	}
	for name, typeName := range types {
		typ, err := value.ParseType(typeName)
		if err != nil {
			return o, fmt.Errorf("schema of column '%s': %w", name, err)
		}
		schema[name] = typ
	}
	o.Schema = schema
	return o, nil
}
