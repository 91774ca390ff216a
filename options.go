package htmltable

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/template"

	"github.com/lestrrat-go/strftime"
)

// Defaults applied to a zero [Options].
const (
	DefaultLinkSuffix  = "_HREF"
	DefaultFloatFormat = ".2f"
	DefaultIndexLabel  = "index"
)

// Options configures [Render]. The zero value renders every column with the
// defaults above.
type Options struct {
	// Columns is the explicit display order and subset. Link columns of the
	// listed columns are pulled in automatically.
	Columns []string `yaml:"columns"`

	// LinkSuffix names link columns: column C links through C+LinkSuffix.
	LinkSuffix string `yaml:"link_suffix"`

	// LinkTarget is the target attribute of external links, e.g. "_blank".
	LinkTarget string `yaml:"link_target"`

	// CellStyles maps a column to the rule deciding its cell styles.
	CellStyles map[string]StyleRule `yaml:"-"`

	// FloatFormat formats float values. Both ".2f" and "%.2f" are accepted.
	FloatFormat string `yaml:"float_format"`

	// DateFormat is a strftime pattern for time values. Empty leaves times
	// to default string conversion.
	DateFormat string `yaml:"date_format"`

	// IncludeIndex materializes the row index as the leading column, named
	// IndexLabel.
	IncludeIndex bool   `yaml:"include_index"`
	IndexLabel   string `yaml:"index_label"`

	// HeaderLabeler transforms a cleaned header ("Unit_price" becomes
	// "Unit Price") into the final label.
	HeaderLabeler func(string) string `yaml:"-"`

	// HeaderTemplate is a text/template executed with the cleaned header as
	// dot. Ignored when HeaderLabeler is set.
	HeaderTemplate string `yaml:"header_template"`

	ButtonColumns   []string `yaml:"button_columns"`
	MarkdownColumns []string `yaml:"markdown_columns"`

	// Table holds attributes of the table element itself.
	Table TableAttrs `yaml:"table"`

	// Border is the border style of the text format.
	Border BorderStyle `yaml:"border"`
}

// TableAttrs are attributes of the table element.
type TableAttrs struct {
	ID       string `yaml:"id"`
	Class    string `yaml:"class"`
	Striped  bool   `yaml:"striped"`
	Bordered bool   `yaml:"bordered"`
	Hover    bool   `yaml:"hover"`
	Caption  string `yaml:"caption"`

	// Attrs are passed through to the table element as is, e.g. "style" or
	// "data-size". An "id" entry is used only when ID is empty and a "class"
	// entry joins the class list.
	Attrs map[string]string `yaml:"attrs"`
}

// Extra returns the passthrough attributes other than id and class, sorted
// by name.
func (a TableAttrs) Extra() [][2]string {
	var out [][2]string
	for _, k := range slices.Sorted(maps.Keys(a.Attrs)) {
		if k == "id" || k == "class" || strings.TrimSpace(k) == "" {
			continue
		}
		out = append(out, [2]string{k, a.Attrs[k]})
	}
	return out
}

// Identifier returns ID, falling back to Attrs["id"].
func (a TableAttrs) Identifier() string {
	if a.ID != "" {
		return a.ID
	}
	return a.Attrs["id"]
}

// Classes returns the table's class list, starting with "table".
func (a TableAttrs) Classes() string {
	classes := []string{"table"}
	if a.Striped {
		classes = append(classes, "table-striped")
	}
	if a.Bordered {
		classes = append(classes, "table-bordered")
	}
	if a.Hover {
		classes = append(classes, "table-hover")
	}
	classes = append(classes, strings.Fields(a.Class)...)
	classes = append(classes, strings.Fields(a.Attrs["class"])...)
	return strings.Join(classes, " ")
}

// plan is Options validated and compiled for one render call.
type plan struct {
	opts       Options
	suffix     string
	floatVerb  string
	date       *strftime.Strftime
	label      func(string) (string, error)
	buttons    map[string]bool
	markdown   map[string]bool
	indexLabel string
}

func compile(opts Options) (*plan, error) {
	p := &plan{
		opts:       opts,
		suffix:     opts.LinkSuffix,
		indexLabel: opts.IndexLabel,
		buttons:    toSet(opts.ButtonColumns),
		markdown:   toSet(opts.MarkdownColumns),
	}
	if p.suffix == "" {
		p.suffix = DefaultLinkSuffix
	}
	if p.indexLabel == "" {
		p.indexLabel = DefaultIndexLabel
	}

	verb, err := floatVerb(opts.FloatFormat)
	if err != nil {
		return nil, &ConfigError{Value: opts.FloatFormat, Err: err}
	}
	p.floatVerb = verb

	if opts.DateFormat != "" {
		f, err := strftime.New(opts.DateFormat)
		if err != nil {
			return nil, &ConfigError{Value: opts.DateFormat, Err: fmt.Errorf("%w: %v", ErrInvalidFormat, err)}
		}
		p.date = f
	}

	label, err := headerLabel(opts)
	if err != nil {
		return nil, err
	}
	p.label = label

	for _, col := range slices.Sorted(maps.Keys(opts.CellStyles)) {
		if err := opts.CellStyles[col].check(); err != nil {
			return nil, &ConfigError{Column: col, Err: err}
		}
	}
	return p, nil
}

// floatVerb turns a float format into a fmt verb and checks that it formats
// a float64 cleanly.
func floatVerb(format string) (string, error) {
	if format == "" {
		format = DefaultFloatFormat
	}
	verb := format
	if !strings.HasPrefix(verb, "%") {
		verb = "%" + verb
	}
	if strings.Count(verb, "%") != 1 || strings.Contains(fmt.Sprintf(verb, 1.5), "%!") {
		return "", fmt.Errorf("%w: float format %q", ErrInvalidFormat, format)
	}
	return verb, nil
}

func headerLabel(opts Options) (func(string) (string, error), error) {
	if opts.HeaderLabeler != nil {
		return func(s string) (string, error) { return opts.HeaderLabeler(s), nil }, nil
	}
	if opts.HeaderTemplate == "" {
		return func(s string) (string, error) { return s, nil }, nil
	}
	tmpl, err := template.New("header").Funcs(template.FuncMap{
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"trim":  strings.TrimSpace,
	}).Parse(opts.HeaderTemplate)
	if err != nil {
		return nil, &ConfigError{Value: opts.HeaderTemplate, Err: fmt.Errorf("%w: %s", ErrInvalidTemplate, err)}
	}
	return func(s string) (string, error) {
		var sb strings.Builder
		if err := tmpl.Execute(&sb, s); err != nil {
			return "", &ConfigError{Value: s, Err: fmt.Errorf("%w: %s", ErrInvalidTemplate, err)}
		}
		return sb.String(), nil
	}, nil
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}
