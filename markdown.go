package htmltable

import (
	"io"
	"strings"
)

// MarkdownBuilder builds markup as GitHub-flavored Markdown table cells.
// Links keep their target; markdown cells pass through on one line.
type MarkdownBuilder struct {
	TextBuilder
}

func (MarkdownBuilder) ExternalLink(text, href, _ string) string {
	return "[" + text + "](" + href + ")"
}

func (MarkdownBuilder) InternalLink(text, href string) string {
	return "[" + text + "](" + href + ")"
}

func (MarkdownBuilder) Button(label string, _ ButtonID) string {
	return "`" + label + "`"
}

var pipeEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")

func escapeCell(s string) []string { return []string{pipeEscaper.Replace(s)} }

// WriteMarkdown writes m as a GitHub-flavored Markdown table. Numeric
// columns get right-alignment markers and newlines in cells become spaces.
// Markup without visible columns writes nothing.
func WriteMarkdown(w io.Writer, m Markup[string]) error {
	if len(m.Header) == 0 {
		return nil
	}
	// Three dashes is the shortest separator every renderer accepts.
	g := layout(m, 3, escapeCell)

	var out []string
	if m.Caption != "" {
		out = append(out, "**"+m.Caption+"**", "")
	}
	row := func(r gridRow) {
		for _, line := range g.lines(r, " | ") {
			out = append(out, "| "+line+" |")
		}
	}
	row(g.head)
	marks := make([]string, len(g.widths))
	for i, width := range g.widths {
		if g.aligns[i] == AlignRight {
			marks[i] = strings.Repeat("-", width-1) + ":"
		} else {
			marks[i] = strings.Repeat("-", width)
		}
	}
	out = append(out, "| "+strings.Join(marks, " | ")+" |")
	for _, r := range g.body {
		row(r)
	}
	_, err := io.WriteString(w, strings.Join(out, "\n")+"\n")
	return err
}
