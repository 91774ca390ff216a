package htmltable

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

// TextBuilder builds markup as plain strings for terminal output. Links
// keep only their text, buttons their label, and markdown its source on a
// single line.
type TextBuilder struct{}

func (TextBuilder) Text(s string) string                  { return s }
func (TextBuilder) HeaderCell(label string) string        { return label }
func (TextBuilder) Cell(content string, _ Style) string   { return content }
func (TextBuilder) Row(cells []string) string             { return strings.Join(cells, "\t") }
func (TextBuilder) Head(row string) string                { return row }
func (TextBuilder) Body(rows []string) string             { return strings.Join(rows, "\n") }
func (TextBuilder) ExternalLink(text, _, _ string) string { return text }
func (TextBuilder) InternalLink(text, _ string) string    { return text }
func (TextBuilder) Button(label string, _ ButtonID) string {
	return label
}

func (TextBuilder) Table(head, body string, _ TableAttrs) string {
	return head + "\n" + body
}

func (TextBuilder) Markdown(src string) (string, error) {
	return strings.Join(strings.Fields(src), " "), nil
}

// BorderStyle controls table border characters.
type BorderStyle int

const (
	BorderRounded BorderStyle = iota // ╭─╮╰╯│┬┴├┤┼
	BorderNone                       // No borders, space-separated columns
	BorderASCII                      // +-+|
	BorderHeavy                      // ┏━┓┗┛┃┳┻┣┫╋
	BorderDouble                     // ╔═╗╚╝║╦╩╠╣╬
)

var borderNames = map[BorderStyle]string{
	BorderRounded: "rounded",
	BorderNone:    "none",
	BorderASCII:   "ascii",
	BorderHeavy:   "heavy",
	BorderDouble:  "double",
}

func (b BorderStyle) String() string { return borderNames[b] }

// ParseBorder parses a border style name.
func ParseBorder(s string) (BorderStyle, error) {
	for b, name := range borderNames {
		if name == s {
			return b, nil
		}
	}
	return 0, fmt.Errorf("%w: border %q", ErrInvalidFormat, s)
}

// Set implements the flag value interface.
func (b *BorderStyle) Set(s string) error {
	v, err := ParseBorder(s)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Type implements the flag value interface.
func (b *BorderStyle) Type() string { return "border" }

func (b *BorderStyle) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return b.Set(s)
}

// Alignment controls column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// alignments right-aligns numeric columns.
func alignments(kinds []Kind, n int) []Alignment {
	aligns := make([]Alignment, n)
	for i := range aligns {
		if i < len(kinds) && (kinds[i] == KindFloat || kinds[i] == KindInt) {
			aligns[i] = AlignRight
		}
	}
	return aligns
}

// frame holds the glyphs of one border style: the horizontal and vertical
// strokes, then the left, inner and right joints of the top, middle and
// bottom rules.
type frame struct {
	h, v             string
	top, mid, bottom [3]string
}

// newFrame reads glyphs in the order h, v, top, mid, bottom.
func newFrame(glyphs string) frame {
	g := strings.Split(glyphs, "")
	return frame{
		h: g[0], v: g[1],
		top:    [3]string{g[2], g[3], g[4]},
		mid:    [3]string{g[5], g[6], g[7]},
		bottom: [3]string{g[8], g[9], g[10]},
	}
}

var frames = map[BorderStyle]frame{
	BorderRounded: newFrame("─│╭┬╮├┼┤╰┴╯"),
	BorderASCII:   newFrame("-|+++++++++"),
	BorderHeavy:   newFrame("━┃┏┳┓┣╋┫┗┻┛"),
	BorderDouble:  newFrame("═║╔╦╗╠╬╣╚╩╝"),
}

// rule draws a horizontal line across every column.
func (f frame) rule(joints [3]string, widths []int) string {
	segs := make([]string, len(widths))
	for i, w := range widths {
		segs[i] = strings.Repeat(f.h, w+2)
	}
	return joints[0] + strings.Join(segs, joints[1]) + joints[2]
}

// gridRow is one markup row laid out as cells of physical lines.
type gridRow [][]string

func (r gridRow) height() int {
	h := 1
	for _, cell := range r {
		h = max(h, len(cell))
	}
	return h
}

// grid is markup prepared for fixed-width output. Every cell is split into
// lines and each column is as wide as its widest line.
type grid struct {
	head   gridRow
	body   []gridRow
	widths []int
	aligns []Alignment
}

// layout measures m. Columns are at least minWidth wide; split turns a cell
// into its lines.
func layout(m Markup[string], minWidth int, split func(string) []string) *grid {
	g := &grid{
		widths: make([]int, len(m.Header)),
		aligns: alignments(m.Kinds, len(m.Header)),
	}
	for i := range g.widths {
		g.widths[i] = minWidth
	}
	g.head = g.fit(m.Header, split)
	g.body = make([]gridRow, len(m.Rows))
	for i, row := range m.Rows {
		g.body[i] = g.fit(row, split)
	}
	return g
}

func (g *grid) fit(cells []string, split func(string) []string) gridRow {
	r := make(gridRow, len(g.widths))
	for i := range r {
		var c string
		if i < len(cells) {
			c = cells[i]
		}
		r[i] = split(c)
		for _, line := range r[i] {
			g.widths[i] = max(g.widths[i], runewidth.StringWidth(line))
		}
	}
	return r
}

// lines renders r, padding each cell to its column and joining with sep.
func (g *grid) lines(r gridRow, sep string) []string {
	out := make([]string, r.height())
	parts := make([]string, len(r))
	for l := range out {
		for i, cell := range r {
			var s string
			if l < len(cell) {
				s = cell[l]
			}
			parts[i] = pad(s, g.widths[i], g.aligns[i])
		}
		out[l] = strings.Join(parts, sep)
	}
	return out
}

func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

// WriteText lays m out as a terminal table. Cells containing newlines span
// several lines. Markup without visible columns writes nothing.
func WriteText(w io.Writer, m Markup[string], border BorderStyle) error {
	if len(m.Header) == 0 {
		return nil
	}
	g := layout(m, 0, splitLines)
	var out []string
	if border == BorderNone {
		out = g.plain(m.Caption)
	} else {
		f, ok := frames[border]
		if !ok {
			return fmt.Errorf("%w: border %d", ErrInvalidFormat, border)
		}
		out = g.framed(f, m.Caption)
	}
	_, err := io.WriteString(w, strings.Join(out, "\n")+"\n")
	return err
}

func (g *grid) plain(caption string) []string {
	var out []string
	if caption != "" {
		out = append(out, caption)
	}
	trimmed := func(r gridRow) {
		for _, line := range g.lines(r, "  ") {
			out = append(out, strings.TrimRight(line, " "))
		}
	}
	trimmed(g.head)
	dashes := make([]string, len(g.widths))
	for i, w := range g.widths {
		dashes[i] = strings.Repeat("-", w)
	}
	out = append(out, strings.Join(dashes, "  "))
	for _, r := range g.body {
		trimmed(r)
	}
	return out
}

func (g *grid) framed(f frame, caption string) []string {
	var out []string
	row := func(r gridRow) {
		for _, line := range g.lines(r, " "+f.v+" ") {
			out = append(out, f.v+" "+line+" "+f.v)
		}
	}
	if caption == "" {
		out = append(out, f.rule(f.top, g.widths))
	} else {
		// The caption spans the table; a long one widens the last column.
		inner := -3
		for _, w := range g.widths {
			inner += w + 3
		}
		if need := runewidth.StringWidth(caption) - inner; need > 0 {
			g.widths[len(g.widths)-1] += need
			inner += need
		}
		out = append(out,
			f.rule([3]string{f.top[0], f.h, f.top[2]}, g.widths),
			f.v+" "+pad(caption, inner, AlignCenter)+" "+f.v,
			f.rule([3]string{f.mid[0], f.top[1], f.mid[2]}, g.widths),
		)
	}
	row(g.head)
	out = append(out, f.rule(f.mid, g.widths))
	for _, r := range g.body {
		row(r)
	}
	return append(out, f.rule(f.bottom, g.widths))
}

func pad(s string, width int, align Alignment) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", gap) + s
	case AlignCenter:
		return strings.Repeat(" ", gap/2) + s + strings.Repeat(" ", gap-gap/2)
	default:
		return s + strings.Repeat(" ", gap)
	}
}
