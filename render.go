package htmltable

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Markup is the result of a render: one header cell per visible column and
// one body row per dataset row, each with one cell per visible column in
// the same order. The zero Markup is empty.
type Markup[N any] struct {
	// Columns are the visible column names in display order.
	Columns []string
	// Kinds holds the dtype of each visible column.
	Kinds []Kind
	// Header holds the header cells, parallel to Columns.
	Header []N
	// Rows holds the body cells, each row parallel to Columns.
	Rows [][]N

	Head  N
	Body  N
	Table N

	// Caption is copied from TableAttrs for formats that print it.
	Caption string
}

// Empty reports whether the markup has no header and no body.
func (m Markup[N]) Empty() bool { return len(m.Columns) == 0 && len(m.Rows) == 0 }

// Render turns ds into markup built by b. An empty dataset yields an empty
// Markup for any options. A configuration error aborts the render before
// any markup is returned.
func Render[N any](ds Dataset, opts Options, b Builder[N]) (Markup[N], error) {
	if ds == nil || ds.Len() == 0 {
		return Markup[N]{}, nil
	}
	p, err := compile(opts)
	if err != nil {
		return Markup[N]{}, err
	}
	if opts.IncludeIndex {
		if ds, err = withIndex(ds, p.indexLabel); err != nil {
			return Markup[N]{}, err
		}
	}

	cols, err := resolveColumns(ds.Columns(), opts.Columns, p.suffix)
	if err != nil {
		return Markup[N]{}, err
	}

	m := Markup[N]{
		Columns: cols.visible,
		Kinds:   make([]Kind, len(cols.visible)),
		Header:  make([]N, len(cols.visible)),
		Rows:    make([][]N, ds.Len()),
		Caption: opts.Table.Caption,
	}
	for i, c := range cols.visible {
		label, err := p.label(cleanHeader(c))
		if err != nil {
			return Markup[N]{}, err
		}
		m.Header[i] = b.HeaderCell(label)
		m.Kinds[i] = ds.Kind(c)
	}

	rows := make([]N, ds.Len())
	for i := range ds.Len() {
		row := ds.Row(i)
		cells := make([]N, len(cols.visible))
		for j, c := range cols.visible {
			cell, err := renderCell(b, p, ds, cols, c, row)
			if err != nil {
				return Markup[N]{}, err
			}
			cells[j] = cell
		}
		m.Rows[i] = cells
		rows[i] = b.Row(cells)
	}

	m.Head = b.Head(b.Row(m.Header))
	m.Body = b.Body(rows)
	m.Table = b.Table(m.Head, m.Body, opts.Table)
	return m, nil
}

// columnSet is the outcome of column resolution.
type columnSet struct {
	visible []string
	links   map[string]bool // link columns available for lookup
	suffix  string
}

// linkFor returns the link column of c, if it was resolved.
func (cs columnSet) linkFor(c string) (string, bool) {
	name := c + cs.suffix
	return name, cs.links[name]
}

// resolveColumns computes the effective and visible columns. Without a
// request every dataset column is effective. With one, the request plus the
// link columns of requested columns that exist, ordered by request position
// with auto-included columns after in dataset order.
func resolveColumns(all, requested []string, suffix string) (columnSet, error) {
	exists := toSet(all)
	effective := all
	if requested != nil {
		for _, c := range requested {
			if !exists[c] {
				return columnSet{}, &ConfigError{Column: c, Err: ErrUnknownColumn}
			}
		}
		want := toSet(requested)
		for _, c := range requested {
			if exists[c+suffix] {
				want[c+suffix] = true
			}
		}
		pos := make(map[string]int, len(requested))
		for i, c := range requested {
			if _, dup := pos[c]; !dup {
				pos[c] = i
			}
		}
		effective = nil
		for _, c := range all {
			if want[c] {
				effective = append(effective, c)
			}
		}
		slices.SortStableFunc(effective, func(a, b string) int {
			pa, oka := pos[a]
			pb, okb := pos[b]
			switch {
			case oka && okb:
				return pa - pb
			case oka:
				return -1
			case okb:
				return 1
			default:
				return 0
			}
		})
	}

	cs := columnSet{links: make(map[string]bool), suffix: suffix}
	for _, c := range effective {
		if strings.HasSuffix(c, suffix) {
			cs.links[c] = true
			continue
		}
		cs.visible = append(cs.visible, c)
	}
	return cs, nil
}

// title upper-cases the first letter of each word and lower-cases the rest.
// Casers are stateful, so each call gets its own.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

// cleanHeader turns a column name into a label: underscores become spaces
// and each word is title-cased.
func cleanHeader(name string) string {
	return title(strings.ReplaceAll(name, "_", " "))
}

// renderCell resolves style, then content, then wraps both in a cell.
func renderCell[N any](b Builder[N], p *plan, ds Dataset, cols columnSet, column string, row Row) (N, error) {
	var zero N
	var style Style
	if rule, ok := p.opts.CellStyles[column]; ok {
		s, err := rule.resolve(column, row)
		if err != nil {
			return zero, err
		}
		style = s
	}
	content, err := renderContent(b, p, ds, cols, column, row)
	if err != nil {
		return zero, err
	}
	return b.Cell(content, style), nil
}

func renderContent[N any](b Builder[N], p *plan, ds Dataset, cols columnSet, column string, row Row) (N, error) {
	v := row[column]

	if link, ok := cols.linkFor(column); ok {
		if href := row[link]; !IsMissing(href) {
			target := stringify(href)
			if strings.HasPrefix(target, "http") {
				return b.ExternalLink(stringify(v), target, p.opts.LinkTarget), nil
			}
			return b.InternalLink(stringify(v), target), nil
		}
	}

	if p.buttons[column] {
		raw := stringify(v)
		return b.Button(title(raw), ButtonID{Column: column, Value: raw}), nil
	}

	if p.markdown[column] {
		n, err := b.Markdown(stringify(v))
		if err != nil {
			var zero N
			return zero, fmt.Errorf("render markdown in column %q: %w", column, err)
		}
		return n, nil
	}

	// Integers in a float column are upcast so the column reads uniformly.
	switch x := v.(type) {
	case float64:
		return b.Text(fmt.Sprintf(p.floatVerb, finite(x))), nil
	case float32:
		return b.Text(fmt.Sprintf(p.floatVerb, finite(float64(x)))), nil
	case nil:
		if ds.Kind(column) == KindFloat {
			return b.Text(fmt.Sprintf(p.floatVerb, 0.0)), nil
		}
	default:
		if f, ok := toFloat(x); ok && ds.Kind(column) == KindFloat {
			return b.Text(fmt.Sprintf(p.floatVerb, f)), nil
		}
	}

	if p.date != nil {
		if t, ok := asTime(v, ds.Kind(column)); ok {
			return b.Text(p.date.FormatString(t)), nil
		}
	}

	return b.Text(stringify(v)), nil
}

// finite replaces NaN with zero and infinities with the largest finite
// values, so a float cell never reads "NaN" or "+Inf".
func finite(f float64) float64 {
	switch {
	case math.IsNaN(f):
		return 0
	case math.IsInf(f, 1):
		return math.MaxFloat64
	case math.IsInf(f, -1):
		return -math.MaxFloat64
	default:
		return f
	}
}

// timeLayouts are tried, in order, on string values of time columns.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.DateOnly,
}

func asTime(v any, kind Kind) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case string:
		if kind != KindTime {
			return time.Time{}, false
		}
		return parseTime(x)
	default:
		return time.Time{}, false
	}
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// stringify is the default string conversion. Missing values are empty.
func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
