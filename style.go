package htmltable

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"time"
)

// ClassKey is the [Style] key holding a space-separated CSS class list. It
// is forwarded as the cell's class attribute, not as a CSS declaration.
const ClassKey = "className"

// Style is a set of presentation attributes for a cell. Keys other than
// [ClassKey] are CSS properties. A nil or empty Style means no styling.
type Style map[string]string

// Class returns the class list, if any.
func (s Style) Class() string { return s[ClassKey] }

// CSS returns the declarations as an inline style string with keys sorted,
// excluding [ClassKey].
func (s Style) CSS() string {
	keys := slices.Sorted(maps.Keys(s))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == ClassKey {
			continue
		}
		parts = append(parts, k+": "+s[k])
	}
	return strings.Join(parts, "; ")
}

func (s Style) validate() error {
	for k := range s {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("%w: style has an empty attribute name", ErrStyleContract)
		}
	}
	return nil
}

type ruleKind int

const (
	ruleValues ruleKind = iota + 1
	rulePredicate
	ruleFunc
	ruleCompare
)

// ValueStyle pairs a set of raw cell values with the style applied when the
// cell holds one of them.
type ValueStyle struct {
	Values []any
	Style  Style
}

// StyleRule decides the style of every cell in one column. Build one with
// [MatchValues], [When], [StyleFunc] or [Compare]; the zero StyleRule never
// styles.
type StyleRule struct {
	kind  ruleKind
	pairs []ValueStyle
	pred  func(Row) bool
	fn    func(Row) Style
	cmp   *comparison
	style Style
}

// MatchValues styles a cell with the first pair whose values contain the
// cell's raw value. Later pairs are not consulted once one matches.
func MatchValues(pairs ...ValueStyle) StyleRule {
	return StyleRule{kind: ruleValues, pairs: pairs}
}

// When applies style to every cell whose row satisfies pred.
func When(pred func(Row) bool, style Style) StyleRule {
	return StyleRule{kind: rulePredicate, pred: pred, style: style}
}

// StyleFunc computes a cell's style from its full row. Returning nil or an
// empty Style leaves the cell unstyled.
func StyleFunc(fn func(Row) Style) StyleRule {
	return StyleRule{kind: ruleFunc, fn: fn}
}

// check validates the parts of a rule that do not depend on data.
func (r StyleRule) check() error {
	switch r.kind {
	case 0:
		return nil
	case ruleValues:
		for i, p := range r.pairs {
			if err := p.Style.validate(); err != nil {
				return fmt.Errorf("pair %d: %w", i, err)
			}
		}
	case rulePredicate, ruleCompare:
		if r.kind == rulePredicate && r.pred == nil {
			return fmt.Errorf("%w: predicate rule has no predicate", ErrStyleContract)
		}
		if r.kind == ruleCompare {
			if err := r.cmp.check(); err != nil {
				return err
			}
		}
		if len(r.style) == 0 {
			return fmt.Errorf("%w: predicate rule has no style", ErrStyleContract)
		}
		return r.style.validate()
	case ruleFunc:
		if r.fn == nil {
			return fmt.Errorf("%w: style function is nil", ErrStyleContract)
		}
	}
	return nil
}

// resolve returns the style for column in row.
func (r StyleRule) resolve(column string, row Row) (Style, error) {
	v := row[column]
	switch r.kind {
	case ruleValues:
		for _, p := range r.pairs {
			if slices.ContainsFunc(p.Values, func(m any) bool { return sameValue(m, v) }) {
				return p.Style, nil
			}
		}
	case rulePredicate:
		if r.pred(row) {
			return r.style, nil
		}
	case ruleCompare:
		ok, err := r.cmp.eval(v)
		if err != nil {
			return nil, &ConfigError{Column: column, Value: v, Err: err}
		}
		if ok {
			return r.style, nil
		}
	case ruleFunc:
		s := r.fn(row)
		if err := s.validate(); err != nil {
			return nil, &ConfigError{Column: column, Value: v, Err: err}
		}
		return s, nil
	}
	return nil, nil
}

// sameValue is membership equality for raw cell values. Numbers compare by
// value across Go numeric types, times by instant, everything else with ==.
func sameValue(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}
