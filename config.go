package htmltable

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Op is a comparison operator of a [Compare] rule.
type Op string

const (
	OpGT Op = "gt"
	OpGE Op = "ge"
	OpLT Op = "lt"
	OpLE Op = "le"
	OpEQ Op = "eq"
	OpNE Op = "ne"
)

var ops = []Op{OpGT, OpGE, OpLT, OpLE, OpEQ, OpNE}

type comparison struct {
	op    Op
	value any
}

// Compare styles a cell when its own value compares to value with op.
// Missing cells never match. Ordering a number against a string is a
// configuration error reported at render time.
func Compare(op Op, value any, style Style) StyleRule {
	return StyleRule{kind: ruleCompare, cmp: &comparison{op: op, value: value}, style: style}
}

func (c *comparison) check() error {
	if !slices.Contains(ops, c.op) {
		return fmt.Errorf("%w: unknown operator %q", ErrStyleContract, c.op)
	}
	return nil
}

func (c *comparison) eval(v any) (bool, error) {
	if IsMissing(v) {
		return false, nil
	}
	switch c.op {
	case OpEQ:
		return equalValues(v, c.value), nil
	case OpNE:
		return !equalValues(v, c.value), nil
	}
	order, err := compareValues(v, c.value)
	if err != nil {
		return false, err
	}
	switch c.op {
	case OpGT:
		return order > 0, nil
	case OpGE:
		return order >= 0, nil
	case OpLT:
		return order < 0, nil
	default:
		return order <= 0, nil
	}
}

// equalValues is equality under the same conversions as ordering, so a date
// cell equals a date string. Values that cannot be ordered fall back to
// [sameValue].
func equalValues(a, b any) bool {
	if order, err := compareValues(a, b); err == nil {
		return order == 0
	}
	return sameValue(a, b)
}

func compareValues(a, b any) (int, error) {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			switch {
			case fa < fb:
				return -1, nil
			case fa > fb:
				return 1, nil
			}
			return 0, nil
		}
	}
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		if s, isStr := b.(string); isStr {
			tb, ok = parseTime(s)
		}
		if ok {
			return ta.Compare(tb), nil
		}
	}
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return strings.Compare(sa, sb), nil
		}
	}
	return 0, fmt.Errorf("%w: cannot order %T against %T", ErrStyleContract, a, b)
}

// fileOptions is the YAML shape of Options. Style rules need their column
// for error reporting, so they are decoded in a second pass.
type fileOptions struct {
	Options    `yaml:",inline"`
	CellStyles map[string]yaml.Node `yaml:"cell_styles"`
}

// LoadOptions decodes Options from YAML. Unknown keys are rejected.
//
// Cell styles take one of two shapes per column. A sequence of value sets,
// first match wins:
//
//	cell_styles:
//	  Company:
//	    - match: [Yahoo, Apple]
//	      style: {font-weight: bold}
//	    - match: [Oracle]
//	      style: {className: table-danger}
//
// Or a comparison against the cell's value:
//
//	cell_styles:
//	  Value2:
//	    when: {gt: 10}
//	    style: {background-color: "#7FFFD4"}
func LoadOptions(r io.Reader) (Options, error) {
	var fo fileOptions
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fo); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, &ConfigError{Err: fmt.Errorf("%w: %v", ErrInvalidFormat, err)}
	}
	opts := fo.Options
	if len(fo.CellStyles) > 0 {
		opts.CellStyles = make(map[string]StyleRule, len(fo.CellStyles))
	}
	for _, col := range slices.Sorted(maps.Keys(fo.CellStyles)) {
		node := fo.CellStyles[col]
		rule, err := decodeRule(&node)
		if err != nil {
			return Options{}, &ConfigError{Column: col, Err: err}
		}
		opts.CellStyles[col] = rule
	}
	return opts, nil
}

func decodeRule(node *yaml.Node) (StyleRule, error) {
	switch node.Kind {
	case yaml.SequenceNode:
		pairs := make([]ValueStyle, len(node.Content))
		for i, item := range node.Content {
			var raw struct {
				Match []any     `yaml:"match"`
				Style yaml.Node `yaml:"style"`
			}
			if err := item.Decode(&raw); err != nil {
				return StyleRule{}, fmt.Errorf("line %d: %w", item.Line, err)
			}
			style, err := decodeStyle(&raw.Style, item.Line)
			if err != nil {
				return StyleRule{}, err
			}
			pairs[i] = ValueStyle{Values: raw.Match, Style: style}
		}
		return MatchValues(pairs...), nil

	case yaml.MappingNode:
		var raw struct {
			When  map[string]any `yaml:"when"`
			Style yaml.Node      `yaml:"style"`
		}
		if err := node.Decode(&raw); err != nil {
			return StyleRule{}, fmt.Errorf("line %d: %w", node.Line, err)
		}
		if len(raw.When) != 1 {
			return StyleRule{}, fmt.Errorf("%w: line %d: when needs exactly one operator", ErrStyleContract, node.Line)
		}
		style, err := decodeStyle(&raw.Style, node.Line)
		if err != nil {
			return StyleRule{}, err
		}
		var rule StyleRule
		for op, v := range raw.When {
			rule = Compare(Op(op), v, style)
		}
		if err := rule.cmp.check(); err != nil {
			return StyleRule{}, err
		}
		return rule, nil

	default:
		return StyleRule{}, fmt.Errorf("%w: line %d: rule must be a list of value sets or a comparison", ErrStyleContract, node.Line)
	}
}

// decodeStyle insists on a mapping of scalars. Anything else would silently
// style nothing, so it fails instead.
func decodeStyle(node *yaml.Node, line int) (Style, error) {
	if node.Kind == 0 {
		return nil, fmt.Errorf("%w: line %d: missing style", ErrStyleContract, line)
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: style must be a mapping, got %s", ErrStyleContract, node.Line, node.ShortTag())
	}
	style := make(Style, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: line %d: style %q must be a scalar", ErrStyleContract, v.Line, k.Value)
		}
		style[k.Value] = v.Value
	}
	return style, style.validate()
}
