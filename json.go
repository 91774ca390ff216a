package htmltable

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ReadJSON reads an array of objects. Column order follows the keys of the
// first object; keys first seen later are appended.
func ReadJSON(r io.Reader) (*Frame, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	return fromObjects(raw)
}

// ReadJSONL reads one object per line. Blank lines are skipped.
func ReadJSONL(r io.Reader) (*Frame, error) {
	var raw []json.RawMessage
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		raw = append(raw, json.RawMessage(bytes.Clone(line)))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return fromObjects(raw)
}

func fromObjects(raw []json.RawMessage) (*Frame, error) {
	var columns []string
	seen := make(map[string]bool)
	rows := make([]Row, len(raw))
	for i, msg := range raw {
		keys, err := objectKeys(msg)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrInvalidDataset, i, err)
		}
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
		dec := json.NewDecoder(bytes.NewReader(msg))
		dec.UseNumber()
		var obj map[string]any
		if err := dec.Decode(&obj); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrInvalidDataset, i, err)
		}
		row := make(Row, len(obj))
		for k, v := range obj {
			row[k] = jsonValue(v)
		}
		rows[i] = row
	}
	promoteTimes(columns, rows)
	return NewFrame(columns, rows...)
}

// objectKeys returns the top-level keys of a JSON object in document order.
func objectKeys(msg json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(msg))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("not an object")
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		keys = append(keys, tok.(string))
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

func jsonValue(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return int(i)
	}
	f, _ := n.Float64()
	return f
}
