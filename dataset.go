package htmltable

import (
	"fmt"
	"math"
	"time"
)

// Row maps column names to scalar cell values. Values are strings, integer
// kinds, float32/float64, bool, [time.Time], or missing (nil or NaN).
type Row map[string]any

// Get returns the value stored under column and whether the key exists.
func (r Row) Get(column string) (any, bool) {
	v, ok := r[column]
	return v, ok
}

// Copy returns a shallow copy of r.
func (r Row) Copy() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Kind is the dtype of a dataset column.
type Kind int

const (
	KindOther Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindTime
)

var kindNames = map[Kind]string{
	KindOther:  "other",
	KindString: "string",
	KindInt:    "int",
	KindFloat:  "float",
	KindBool:   "bool",
	KindTime:   "time",
}

// String returns the kind name.
func (k Kind) String() string { return kindNames[k] }

// Dataset is the renderer's input: ordered rows sharing a column schema.
type Dataset interface {
	// Columns returns the column names in display order.
	Columns() []string
	// Len returns the number of rows. A dataset with no rows is empty.
	Len() int
	// Row returns the i-th row.
	Row(i int) Row
	// Kind reports the dtype of a column.
	Kind(column string) Kind
}

// Indexed is implemented by datasets whose rows carry labels. When
// [Options.IncludeIndex] is set the labels become the leading column.
// Without it the index is positional.
type Indexed interface {
	Index() []any
}

// IsMissing reports whether v is a missing value: nil or a NaN float.
func IsMissing(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	default:
		return false
	}
}

// KindOf classifies a single value.
func KindOf(v any) Kind {
	switch v.(type) {
	case string:
		return KindString
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInt
	case float32, float64:
		return KindFloat
	case bool:
		return KindBool
	case time.Time:
		return KindTime
	default:
		return KindOther
	}
}

// Frame is an in-memory [Dataset].
type Frame struct {
	columns []string
	rows    []Row
	kinds   map[string]Kind
	index   []any
}

// NewFrame builds a Frame from explicit columns and rows. Rows may omit a
// column (the value is treated as missing) but must not carry columns that
// are not declared.
func NewFrame(columns []string, rows ...Row) (*Frame, error) {
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c] {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrInvalidDataset, c)
		}
		seen[c] = true
	}
	for i, r := range rows {
		for k := range r {
			if !seen[k] {
				return nil, fmt.Errorf("%w: row %d has undeclared column %q", ErrInvalidDataset, i, k)
			}
		}
	}
	f := &Frame{
		columns: append([]string(nil), columns...),
		rows:    rows,
	}
	f.kinds = inferKinds(f.columns, f.rows)
	return f, nil
}

// MustFrame is like [NewFrame] but panics on error. Intended for tests and
// package-level literals.
func MustFrame(columns []string, rows ...Row) *Frame {
	f, err := NewFrame(columns, rows...)
	if err != nil {
		panic(err)
	}
	return f
}

// WithIndex returns a copy of f whose rows are labeled by index. The
// length of index must match the row count.
func (f *Frame) WithIndex(index []any) (*Frame, error) {
	if len(index) != len(f.rows) {
		return nil, fmt.Errorf("%w: index has %d labels for %d rows", ErrInvalidDataset, len(index), len(f.rows))
	}
	out := *f
	out.index = append([]any(nil), index...)
	return &out, nil
}

func (f *Frame) Columns() []string {
	out := make([]string, len(f.columns))
	copy(out, f.columns)
	return out
}

func (f *Frame) Len() int { return len(f.rows) }

func (f *Frame) Row(i int) Row { return f.rows[i] }

func (f *Frame) Kind(column string) Kind { return f.kinds[column] }

// Index returns the row labels, or nil for a positional index.
func (f *Frame) Index() []any { return f.index }

// inferKinds picks each column's kind from its first non-missing value.
// Columns whose non-missing values disagree become KindOther, except that
// mixed int and float columns are KindFloat.
func inferKinds(columns []string, rows []Row) map[string]Kind {
	kinds := make(map[string]Kind, len(columns))
	for _, c := range columns {
		kind, set := KindOther, false
		for _, r := range rows {
			v := r[c]
			if v == nil {
				continue
			}
			k := KindOf(v)
			switch {
			case !set:
				kind, set = k, true
			case k == kind:
			case (k == KindFloat && kind == KindInt) || (k == KindInt && kind == KindFloat):
				kind = KindFloat
			default:
				kind = KindOther
			}
		}
		kinds[c] = kind
	}
	return kinds
}

// indexed prepends the index as a named column.
type indexed struct {
	Dataset
	label  string
	labels []any
}

func withIndex(ds Dataset, label string) (Dataset, error) {
	for _, c := range ds.Columns() {
		if c == label {
			return nil, &ConfigError{Column: label, Err: ErrDuplicateColumn}
		}
	}
	var labels []any
	if ix, ok := ds.(Indexed); ok {
		labels = ix.Index()
	}
	if labels == nil {
		labels = make([]any, ds.Len())
		for i := range labels {
			labels[i] = i
		}
	}
	if len(labels) != ds.Len() {
		return nil, fmt.Errorf("%w: index has %d labels for %d rows", ErrInvalidDataset, len(labels), ds.Len())
	}
	return &indexed{Dataset: ds, label: label, labels: labels}, nil
}

func (d *indexed) Columns() []string {
	return append([]string{d.label}, d.Dataset.Columns()...)
}

func (d *indexed) Row(i int) Row {
	r := d.Dataset.Row(i).Copy()
	r[d.label] = d.labels[i]
	return r
}

func (d *indexed) Kind(column string) Kind {
	if column != d.label {
		return d.Dataset.Kind(column)
	}
	kind := KindOther
	for i, l := range d.labels {
		k := KindOf(l)
		if i == 0 {
			kind = k
		} else if k != kind {
			return KindOther
		}
	}
	return kind
}
