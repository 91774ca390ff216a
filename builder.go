package htmltable

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Builder constructs the markup fragments a render produces. N is the
// builder's node type. The renderer only calls these constructors and never
// inspects the nodes.
type Builder[N any] interface {
	// Text is a plain text fragment.
	Text(s string) N
	// HeaderCell wraps one header label.
	HeaderCell(label string) N
	// Cell wraps a content fragment in a body cell carrying style.
	Cell(content N, style Style) N
	// Row groups cells into a table row.
	Row(cells []N) N
	// Head is the header block holding the header row.
	Head(row N) N
	// Body is the body block holding every body row.
	Body(rows []N) N
	// Table assembles the head and body blocks.
	Table(head, body N, attrs TableAttrs) N

	// ExternalLink points outside the application; target may be empty.
	ExternalLink(text, href, target string) N
	// InternalLink navigates within the application.
	InternalLink(text, href string) N
	// Button is a clickable label identified by id.
	Button(label string, id ButtonID) N
	// Markdown renders src as rich text.
	Markdown(src string) (N, error)
}

// ButtonID identifies the cell that produced a button click. It is derived
// only from the column and the cell's raw value, so a click handler can
// reconstruct it without shared state.
type ButtonID struct {
	Column string
	Value  string
}

// Type is the button family, one per column.
func (id ButtonID) Type() string { return id.Column + "-button" }

// String returns the identifier as a JSON object with keys "index" and
// "type", the shape pattern-matching click handlers expect.
func (id ButtonID) String() string {
	b, _ := json.Marshal(struct {
		Index string `json:"index"`
		Type  string `json:"type"`
	}{Index: id.Value, Type: id.Type()})
	return string(b)
}

// ParseButtonID reverses [ButtonID.String].
func ParseButtonID(s string) (ButtonID, error) {
	var raw struct {
		Index *string `json:"index"`
		Type  *string `json:"type"`
	}
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return ButtonID{}, fmt.Errorf("parse button id: %w", err)
	}
	if raw.Index == nil || raw.Type == nil {
		return ButtonID{}, fmt.Errorf("parse button id: missing index or type in %q", s)
	}
	col, ok := strings.CutSuffix(*raw.Type, "-button")
	if !ok {
		return ButtonID{}, fmt.Errorf("parse button id: type %q is not a button type", *raw.Type)
	}
	return ButtonID{Column: col, Value: *raw.Index}, nil
}
