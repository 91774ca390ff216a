package htmltable

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ReadYAML reads a sequence of mappings. Column order follows the keys of
// the first mapping; keys first seen later are appended.
func ReadYAML(r io.Reader) (*Frame, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return NewFrame(nil)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	seq := &doc
	if seq.Kind == yaml.DocumentNode && len(seq.Content) == 1 {
		seq = seq.Content[0]
	}
	if seq.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: line %d: expected a sequence of mappings", ErrInvalidDataset, seq.Line)
	}

	var columns []string
	seen := make(map[string]bool)
	rows := make([]Row, len(seq.Content))
	for i, item := range seq.Content {
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: line %d: record %d is not a mapping", ErrInvalidDataset, item.Line, i)
		}
		row := make(Row, len(item.Content)/2)
		for j := 0; j+1 < len(item.Content); j += 2 {
			key := item.Content[j].Value
			var v any
			if err := item.Content[j+1].Decode(&v); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidDataset, item.Content[j+1].Line, err)
			}
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
			row[key] = v
		}
		rows[i] = row
	}
	promoteTimes(columns, rows)
	return NewFrame(columns, rows...)
}
