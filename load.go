package htmltable

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ReadFile loads a dataset, choosing the reader from the file extension:
// .csv, .tsv, .json, .jsonl, .yaml/.yml or .xlsx. sheet selects the XLSX
// worksheet and is ignored otherwise; empty means the first sheet.
func ReadFile(path, sheet string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return ReadCSV(f)
	case ".tsv":
		return ReadTSV(f)
	case ".json":
		return ReadJSON(f)
	case ".jsonl", ".ndjson":
		return ReadJSONL(f)
	case ".yaml", ".yml":
		return ReadYAML(f)
	case ".xlsx":
		return ReadXLSX(f, sheet)
	default:
		return nil, fmt.Errorf("%w: unknown file extension %q", ErrInvalidDataset, ext)
	}
}

// fromRecords types string records column by column: a column becomes int,
// float, bool or time only if every non-empty cell parses as that kind.
// Bools are spelled true or false in any case. Empty cells are missing.
func fromRecords(header []string, records [][]string) (*Frame, error) {
	rows := make([]Row, len(records))
	for i := range rows {
		rows[i] = make(Row, len(header))
	}
	for j, col := range header {
		cells := make([]string, len(records))
		for i, rec := range records {
			if j < len(rec) {
				cells[i] = rec[j]
			}
		}
		parse := columnParser(cells)
		for i, c := range cells {
			if c == "" {
				rows[i][col] = nil
				continue
			}
			rows[i][col] = parse(c)
		}
	}
	return NewFrame(header, rows...)
}

type parser func(string) any

func columnParser(cells []string) parser {
	candidates := []struct {
		ok    func(string) bool
		parse parser
	}{
		{
			ok:    func(s string) bool { _, err := strconv.ParseInt(s, 10, 64); return err == nil },
			parse: func(s string) any { n, _ := strconv.ParseInt(s, 10, 64); return int(n) },
		},
		{
			ok:    func(s string) bool { _, err := strconv.ParseFloat(s, 64); return err == nil },
			parse: func(s string) any { f, _ := strconv.ParseFloat(s, 64); return f },
		},
		{
			ok:    func(s string) bool { return strings.EqualFold(s, "true") || strings.EqualFold(s, "false") },
			parse: func(s string) any { return strings.EqualFold(s, "true") },
		},
		{
			ok:    func(s string) bool { _, ok := parseTime(s); return ok },
			parse: func(s string) any { t, _ := parseTime(s); return t },
		},
	}
	for _, c := range candidates {
		all, found := true, false
		for _, s := range cells {
			if s == "" {
				continue
			}
			found = true
			if !c.ok(s) {
				all = false
				break
			}
		}
		if all && found {
			return c.parse
		}
	}
	return func(s string) any { return s }
}

// promoteTimes converts string columns whose values all parse as times.
// Typed sources (JSON, YAML) carry dates as strings.
func promoteTimes(columns []string, rows []Row) {
	for _, col := range columns {
		all, seen := true, false
		for _, r := range rows {
			switch v := r[col].(type) {
			case nil:
			case string:
				seen = true
				if _, ok := parseTime(v); !ok {
					all = false
				}
			default:
				all = false
			}
			if !all {
				break
			}
		}
		if !all || !seen {
			continue
		}
		for _, r := range rows {
			if s, ok := r[col].(string); ok {
				r[col], _ = parseTime(s)
			}
		}
	}
}
