package htmltable_test

import (
	"strings"
	"testing"

	"github.com/bjaus/htmltable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const companiesConfig = `
columns: [Company, Value2, Date]
link_target: _blank
float_format: "%.3f"
date_format: "%Y-%m-%d"
include_index: false
button_columns: [Company]
table:
  id: companies
  striped: true
  caption: Companies
border: ascii
cell_styles:
  Company:
    - match: [Yahoo, Apple]
      style: {font-weight: bold}
    - match: [Oracle]
      style: {className: table-danger}
  Value2:
    when: {gt: 10}
    style: {background-color: "#7FFFD4"}
`

func TestLoadOptions(t *testing.T) {
	t.Parallel()
	opts, err := htmltable.LoadOptions(strings.NewReader(companiesConfig))
	require.NoError(t, err)

	assert.Equal(t, []string{"Company", "Value2", "Date"}, opts.Columns)
	assert.Equal(t, "_blank", opts.LinkTarget)
	assert.Equal(t, "%.3f", opts.FloatFormat)
	assert.Equal(t, "%Y-%m-%d", opts.DateFormat)
	assert.Equal(t, []string{"Company"}, opts.ButtonColumns)
	assert.Equal(t, htmltable.TableAttrs{ID: "companies", Striped: true, Caption: "Companies"}, opts.Table)
	assert.Equal(t, htmltable.BorderASCII, opts.Border)
	assert.Len(t, opts.CellStyles, 2)
}

func TestLoadOptionsRulesApply(t *testing.T) {
	t.Parallel()
	opts, err := htmltable.LoadOptions(strings.NewReader(`
cell_styles:
  Company:
    - match: [Yahoo, Apple]
      style: {font-weight: bold}
    - match: [Oracle]
      style: {className: table-danger}
  Value2:
    when: {gt: 10}
    style: {background-color: "#7FFFD4"}
`))
	require.NoError(t, err)

	ds := htmltable.MustFrame([]string{"Company", "Value2"},
		htmltable.Row{"Company": "Apple", "Value2": 20},
		htmltable.Row{"Company": "Oracle", "Value2": 3},
		htmltable.Row{"Company": "Intel", "Value2": nil},
	)
	out, err := htmltable.RenderHTML(ds, opts)
	require.NoError(t, err)
	assert.Contains(t, out, `<td style="font-weight: bold">Apple</td><td style="background-color: #7FFFD4">20</td>`)
	assert.Contains(t, out, `<td class="table-danger">Oracle</td><td>3</td>`)
	assert.Contains(t, out, `<td>Intel</td><td></td>`)
}

func TestLoadOptionsNumericMatch(t *testing.T) {
	t.Parallel()
	opts, err := htmltable.LoadOptions(strings.NewReader(`
cell_styles:
  Qty:
    - match: [1, 2.5]
      style: {color: green}
`))
	require.NoError(t, err)
	ds := htmltable.MustFrame([]string{"Qty"},
		htmltable.Row{"Qty": int64(1)},
		htmltable.Row{"Qty": 2.5},
		htmltable.Row{"Qty": 3},
	)
	m, err := htmltable.Render(ds, opts, htmltable.NewHTMLBuilder())
	require.NoError(t, err)
	var sb strings.Builder
	require.NoError(t, htmltable.WriteHTML(&sb, m))
	assert.Equal(t, 2, strings.Count(sb.String(), `style="color: green"`))
}

func TestLoadOptionsEmpty(t *testing.T) {
	t.Parallel()
	opts, err := htmltable.LoadOptions(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, opts.CellStyles)
	assert.Nil(t, opts.Columns)
}

func TestLoadOptionsErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		yaml   string
		target error
		column string
	}{
		"unknown key": {
			yaml:   "colums: [a]\n",
			target: htmltable.ErrInvalidFormat,
		},
		"bad border": {
			yaml:   "border: dotted\n",
			target: htmltable.ErrInvalidFormat,
		},
		"style is a list": {
			yaml:   "cell_styles:\n  A:\n    - match: [x]\n      style: [bold]\n",
			target: htmltable.ErrStyleContract,
			column: "A",
		},
		"style is a string": {
			yaml:   "cell_styles:\n  A:\n    when: {eq: x}\n    style: bold\n",
			target: htmltable.ErrStyleContract,
			column: "A",
		},
		"nested style value": {
			yaml:   "cell_styles:\n  A:\n    when: {eq: x}\n    style: {color: {r: 1}}\n",
			target: htmltable.ErrStyleContract,
			column: "A",
		},
		"missing style": {
			yaml:   "cell_styles:\n  A:\n    when: {eq: x}\n",
			target: htmltable.ErrStyleContract,
			column: "A",
		},
		"unknown operator": {
			yaml:   "cell_styles:\n  B:\n    when: {approx: 1}\n    style: {color: red}\n",
			target: htmltable.ErrStyleContract,
			column: "B",
		},
		"two operators": {
			yaml:   "cell_styles:\n  B:\n    when: {gt: 1, lt: 5}\n    style: {color: red}\n",
			target: htmltable.ErrStyleContract,
			column: "B",
		},
		"scalar rule": {
			yaml:   "cell_styles:\n  C: bold\n",
			target: htmltable.ErrStyleContract,
			column: "C",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := htmltable.LoadOptions(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.ErrorIs(t, err, htmltable.ErrConfig)

			var cfgErr *htmltable.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.column, cfgErr.Column)
		})
	}
}

func TestStyleCSS(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		style htmltable.Style
		css   string
		class string
	}{
		"nil":        {},
		"class only": {style: htmltable.Style{htmltable.ClassKey: "a b"}, class: "a b"},
		"sorted": {
			style: htmltable.Style{"z-index": "1", "color": "red", htmltable.ClassKey: "x"},
			css:   "color: red; z-index: 1",
			class: "x",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.css, tt.style.CSS())
			assert.Equal(t, tt.class, tt.style.Class())
		})
	}
}

func TestTableAttrsClasses(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "table", htmltable.TableAttrs{}.Classes())
	assert.Equal(t, "table table-striped table-bordered table-hover a b",
		htmltable.TableAttrs{Striped: true, Bordered: true, Hover: true, Class: " a  b "}.Classes())
}

func TestZeroStyleRuleNeverStyles(t *testing.T) {
	t.Parallel()
	ds := htmltable.MustFrame([]string{"a"}, htmltable.Row{"a": "x"})
	out, err := htmltable.RenderHTML(ds, htmltable.Options{CellStyles: map[string]htmltable.StyleRule{"a": {}}})
	require.NoError(t, err)
	assert.Contains(t, out, "<td>x</td>")
}

func TestCompareTimes(t *testing.T) {
	t.Parallel()
	ds, err := htmltable.ReadCSV(strings.NewReader("Date\n2018-01-01\n2018-01-06\n"))
	require.NoError(t, err)
	opts := htmltable.Options{
		DateFormat: "%d.%m.%Y",
		CellStyles: map[string]htmltable.StyleRule{
			"Date": htmltable.Compare(htmltable.OpGE, "2018-01-05", htmltable.Style{htmltable.ClassKey: "late"}),
		},
	}
	out, err := htmltable.RenderHTML(ds, opts)
	require.NoError(t, err)
	assert.Contains(t, out, `<td>01.01.2018</td>`)
	assert.Contains(t, out, `<td class="late">06.01.2018</td>`)
}

func TestLoadOptionsEqualityOnDates(t *testing.T) {
	t.Parallel()
	opts, err := htmltable.LoadOptions(strings.NewReader(`
cell_styles:
  Start:
    when: {eq: "2018-01-01"}
    style: {color: red}
  End:
    when: {ne: "2018-01-01"}
    style: {color: blue}
`))
	require.NoError(t, err)

	ds, err := htmltable.ReadCSV(strings.NewReader("Start,End\n2018-01-01,2018-01-01\n2018-01-06,2018-01-06\n"))
	require.NoError(t, err)
	opts.DateFormat = "%Y-%m-%d"

	out, err := htmltable.RenderHTML(ds, opts)
	require.NoError(t, err)
	assert.Contains(t, out, `<tr><td style="color: red">2018-01-01</td><td>2018-01-01</td></tr>`)
	assert.Contains(t, out, `<tr><td>2018-01-06</td><td style="color: blue">2018-01-06</td></tr>`)
}

func TestLoadOptionsTableAttrs(t *testing.T) {
	t.Parallel()
	opts, err := htmltable.LoadOptions(strings.NewReader(`
table:
  bordered: true
  attrs: {data-size: sm, class: table-dark}
`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"data-size": "sm", "class": "table-dark"}, opts.Table.Attrs)
	assert.Equal(t, "table table-bordered table-dark", opts.Table.Classes())
	assert.Equal(t, [][2]string{{"data-size", "sm"}}, opts.Table.Extra())
}
