package htmltable_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bjaus/htmltable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	t.Parallel()
	in := "Company,Company_HREF,Value,Active,Date\n" +
		"Apple,https://apple.com,-0.25,true,2018-01-01\n" +
		"Intranet,,1,false,2018-01-05 10:00:00\n"
	ds, err := htmltable.ReadCSV(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"Company", "Company_HREF", "Value", "Active", "Date"}, ds.Columns())
	require.Equal(t, 2, ds.Len())

	kinds := map[string]htmltable.Kind{
		"Company":      htmltable.KindString,
		"Company_HREF": htmltable.KindString,
		"Value":        htmltable.KindFloat,
		"Active":       htmltable.KindBool,
		"Date":         htmltable.KindTime,
	}
	for col, want := range kinds {
		assert.Equal(t, want, ds.Kind(col), col)
	}

	row := ds.Row(1)
	assert.Nil(t, row["Company_HREF"])
	assert.Equal(t, 1.0, row["Value"])
	assert.Equal(t, false, row["Active"])
	assert.Equal(t, time.Date(2018, 1, 5, 10, 0, 0, 0, time.UTC), row["Date"])
}

func TestReadCSVColumnTyping(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		cells string
		kind  htmltable.Kind
		first any
	}{
		"ints":            {cells: "1\n2\n", kind: htmltable.KindInt, first: 1},
		"ints with blank": {cells: "1\n\n3\n", kind: htmltable.KindInt, first: 1},
		"floats":          {cells: "1\n2.5\n", kind: htmltable.KindFloat, first: 1.0},
		"digits not bool": {cells: "0\n1\n", kind: htmltable.KindInt, first: 0},
		"bools":           {cells: "TRUE\nfalse\n", kind: htmltable.KindBool, first: true},
		"strings":         {cells: "1\nx\n", kind: htmltable.KindString, first: "1"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ds, err := htmltable.ReadCSV(strings.NewReader("v\n" + tt.cells))
			require.NoError(t, err)
			assert.Equal(t, tt.kind, ds.Kind("v"))
			assert.Equal(t, tt.first, ds.Row(0)["v"])
		})
	}
}

func TestReadCSVEmpty(t *testing.T) {
	t.Parallel()
	ds, err := htmltable.ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())

	ds, err = htmltable.ReadCSV(strings.NewReader("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
	assert.Equal(t, []string{"a", "b"}, ds.Columns())
}

func TestReadCSVErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"too many fields":  "a\n1,2\n",
		"duplicate header": "a,a\n1,2\n",
		"bad quote":        "a\n\"x\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := htmltable.ReadCSV(strings.NewReader(in))
			assert.ErrorIs(t, err, htmltable.ErrInvalidDataset)
		})
	}
}

func TestReadTSV(t *testing.T) {
	t.Parallel()
	ds, err := htmltable.ReadTSV(strings.NewReader("Name\tQty\nwidget, large\t3\n"))
	require.NoError(t, err)
	assert.Equal(t, "widget, large", ds.Row(0)["Name"])
	assert.Equal(t, 3, ds.Row(0)["Qty"])
}

func TestReadJSON(t *testing.T) {
	t.Parallel()
	in := `[
		{"Zeta": "a", "Alpha": 1, "Date": "2018-01-01"},
		{"Zeta": "b", "Alpha": 2.5, "Date": null, "Extra": true}
	]`
	ds, err := htmltable.ReadJSON(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"Zeta", "Alpha", "Date", "Extra"}, ds.Columns())
	assert.Equal(t, 1, ds.Row(0)["Alpha"])
	assert.Equal(t, 2.5, ds.Row(1)["Alpha"])
	assert.Equal(t, htmltable.KindFloat, ds.Kind("Alpha"))
	assert.Equal(t, htmltable.KindTime, ds.Kind("Date"))
	assert.Equal(t, time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), ds.Row(0)["Date"])
	_, ok := ds.Row(0).Get("Extra")
	assert.False(t, ok)
}

func TestReadJSONErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"not an array": `{"a": 1}`,
		"not objects":  `[1, 2]`,
		"truncated":    `[{"a": 1}`,
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := htmltable.ReadJSON(strings.NewReader(in))
			assert.ErrorIs(t, err, htmltable.ErrInvalidDataset)
		})
	}
}

func TestReadJSONL(t *testing.T) {
	t.Parallel()
	in := "{\"Name\": \"Alice\", \"Age\": 30}\n\n{\"Name\": \"Bob\", \"Age\": 25}\n"
	ds, err := htmltable.ReadJSONL(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Age"}, ds.Columns())
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, htmltable.KindInt, ds.Kind("Age"))
}

func TestReadYAML(t *testing.T) {
	t.Parallel()
	in := `
- Company: Apple
  Value: -0.25
  Date: 2018-01-01
  Rank: 1
- Company: Oracle
  Value: .nan
  Date: 2018-01-06
  Rank: 2
`
	ds, err := htmltable.ReadYAML(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"Company", "Value", "Date", "Rank"}, ds.Columns())
	assert.Equal(t, htmltable.KindTime, ds.Kind("Date"))
	assert.Equal(t, htmltable.KindFloat, ds.Kind("Value"))
	assert.Equal(t, htmltable.KindInt, ds.Kind("Rank"))
	assert.True(t, htmltable.IsMissing(ds.Row(1)["Value"]))

	out, err := htmltable.RenderHTML(ds, htmltable.Options{DateFormat: "%Y/%m/%d"})
	require.NoError(t, err)
	assert.Contains(t, out, "<td>Oracle</td><td>0.00</td><td>2018/01/06</td><td>2</td>")
}

func TestReadYAMLErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"mapping":       "a: 1\n",
		"scalar record": "- 1\n- 2\n",
		"bad syntax":    "- [a\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := htmltable.ReadYAML(strings.NewReader(in))
			assert.ErrorIs(t, err, htmltable.ErrInvalidDataset)
		})
	}
}

func TestReadYAMLEmpty(t *testing.T) {
	t.Parallel()
	ds, err := htmltable.ReadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
}

func workbook(t *testing.T, sheet string, rows ...[]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestReadXLSX(t *testing.T) {
	t.Parallel()
	data := workbook(t, "Sheet1",
		[]any{"Company", "Value"},
		[]any{"Apple", 1.5},
		[]any{"Oracle", 3},
	)
	ds, err := htmltable.ReadXLSX(bytes.NewReader(data), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"Company", "Value"}, ds.Columns())
	assert.Equal(t, htmltable.KindFloat, ds.Kind("Value"))
	assert.Equal(t, "Apple", ds.Row(0)["Company"])
	assert.Equal(t, 1.5, ds.Row(0)["Value"])
}

func TestReadXLSXNamedSheet(t *testing.T) {
	t.Parallel()
	data := workbook(t, "Prices", []any{"Item"}, []any{"pen"})

	ds, err := htmltable.ReadXLSX(bytes.NewReader(data), "Prices")
	require.NoError(t, err)
	assert.Equal(t, "pen", ds.Row(0)["Item"])

	_, err = htmltable.ReadXLSX(bytes.NewReader(data), "Missing")
	assert.ErrorIs(t, err, htmltable.ErrInvalidDataset)

	_, err = htmltable.ReadXLSX(strings.NewReader("not a zip"), "")
	assert.ErrorIs(t, err, htmltable.ErrInvalidDataset)
}

func TestReadFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	files := map[string]string{
		"data.csv":   "Name,Qty\nAlice,1\n",
		"data.tsv":   "Name\tQty\nAlice\t1\n",
		"data.json":  `[{"Name": "Alice", "Qty": 1}]`,
		"data.jsonl": `{"Name": "Alice", "Qty": 1}`,
		"data.yaml":  "- {Name: Alice, Qty: 1}\n",
		"data.yml":   "- {Name: Alice, Qty: 1}\n",
	}
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
			ds, err := htmltable.ReadFile(path, "")
			require.NoError(t, err)
			assert.Equal(t, []string{"Name", "Qty"}, ds.Columns())
			assert.Equal(t, htmltable.Row{"Name": "Alice", "Qty": 1}, ds.Row(0))
		})
	}
}

func TestReadFileErrors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	_, err := htmltable.ReadFile(filepath.Join(dir, "missing.csv"), "")
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(dir, "data.parquet")
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	_, err = htmltable.ReadFile(path, "")
	assert.ErrorIs(t, err, htmltable.ErrInvalidDataset)
}

func TestNewFrameErrors(t *testing.T) {
	t.Parallel()
	_, err := htmltable.NewFrame([]string{"a", "a"})
	assert.ErrorIs(t, err, htmltable.ErrInvalidDataset)

	_, err = htmltable.NewFrame([]string{"a"}, htmltable.Row{"b": 1})
	assert.ErrorIs(t, err, htmltable.ErrInvalidDataset)

	f := htmltable.MustFrame([]string{"a"}, htmltable.Row{"a": 1})
	_, err = f.WithIndex([]any{"x", "y"})
	assert.ErrorIs(t, err, htmltable.ErrInvalidDataset)
	assert.Panics(t, func() { htmltable.MustFrame([]string{"a", "a"}) })
}

func TestFrameColumnsReturnsCopy(t *testing.T) {
	t.Parallel()
	f := htmltable.MustFrame([]string{"a", "b"})
	cols := f.Columns()
	cols[0] = "z"
	assert.Equal(t, []string{"a", "b"}, f.Columns())
}

func TestKindOf(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		value any
		want  htmltable.Kind
	}{
		"string": {value: "x", want: htmltable.KindString},
		"uint8":  {value: uint8(1), want: htmltable.KindInt},
		"f32":    {value: float32(1), want: htmltable.KindFloat},
		"bool":   {value: true, want: htmltable.KindBool},
		"time":   {value: time.Now(), want: htmltable.KindTime},
		"slice":  {value: []int{1}, want: htmltable.KindOther},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, htmltable.KindOf(tt.value))
		})
	}
	assert.Equal(t, "float", htmltable.KindFloat.String())
}

func TestCollect(t *testing.T) {
	t.Parallel()
	seq := func(yield func(htmltable.Row) bool) {
		for i := range 3 {
			if !yield(htmltable.Row{"n": i}) {
				return
			}
		}
	}
	ds, err := htmltable.Collect([]string{"n"}, seq)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, htmltable.KindInt, ds.Kind("n"))
}

func TestCollectChan(t *testing.T) {
	t.Parallel()
	ch := make(chan htmltable.Row)
	go func() {
		defer close(ch)
		ch <- htmltable.Row{"Name": "Alice"}
		ch <- htmltable.Row{"Name": "Bob"}
	}()
	ds, err := htmltable.CollectChan([]string{"Name"}, ch)
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, "Bob", ds.Row(1)["Name"])

	bad := make(chan htmltable.Row, 1)
	bad <- htmltable.Row{"Other": 1}
	close(bad)
	_, err = htmltable.CollectChan([]string{"Name"}, bad)
	assert.ErrorIs(t, err, htmltable.ErrInvalidDataset)
}
