package htmltable

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLBuilder builds markup as golang.org/x/net/html node trees. Markdown
// cells are converted with goldmark and sanitized before they join the tree.
// It is safe for concurrent use.
type HTMLBuilder struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewHTMLBuilder returns a builder whose markdown sanitizer allows the
// usual user-generated-content elements.
func NewHTMLBuilder() *HTMLBuilder {
	return NewHTMLBuilderWithPolicy(bluemonday.UGCPolicy())
}

// NewHTMLBuilderWithPolicy is like [NewHTMLBuilder] with a custom sanitizer
// policy for markdown output.
func NewHTMLBuilderWithPolicy(policy *bluemonday.Policy) *HTMLBuilder {
	return &HTMLBuilder{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: policy,
	}
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func attr(key, val string) html.Attribute { return html.Attribute{Key: key, Val: val} }

func appendAll(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		if c != nil {
			parent.AppendChild(c)
		}
	}
	return parent
}

func (b *HTMLBuilder) Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func (b *HTMLBuilder) HeaderCell(label string) *html.Node {
	return appendAll(element(atom.Th), b.Text(label))
}

// Cell forwards style twice: CSS declarations as the style attribute and
// the class list as the class attribute.
func (b *HTMLBuilder) Cell(content *html.Node, style Style) *html.Node {
	td := element(atom.Td)
	if css := style.CSS(); css != "" {
		td.Attr = append(td.Attr, attr("style", css))
	}
	if class := style.Class(); class != "" {
		td.Attr = append(td.Attr, attr("class", class))
	}
	return appendAll(td, content)
}

func (b *HTMLBuilder) Row(cells []*html.Node) *html.Node {
	return appendAll(element(atom.Tr), cells...)
}

func (b *HTMLBuilder) Head(row *html.Node) *html.Node {
	return appendAll(element(atom.Thead), row)
}

func (b *HTMLBuilder) Body(rows []*html.Node) *html.Node {
	return appendAll(element(atom.Tbody), rows...)
}

func (b *HTMLBuilder) Table(head, body *html.Node, attrs TableAttrs) *html.Node {
	table := element(atom.Table)
	if id := attrs.Identifier(); id != "" {
		table.Attr = append(table.Attr, attr("id", id))
	}
	table.Attr = append(table.Attr, attr("class", attrs.Classes()))
	for _, kv := range attrs.Extra() {
		table.Attr = append(table.Attr, attr(kv[0], kv[1]))
	}
	if attrs.Caption != "" {
		appendAll(table, appendAll(element(atom.Caption), b.Text(attrs.Caption)))
	}
	return appendAll(table, head, body)
}

func (b *HTMLBuilder) ExternalLink(text, href, target string) *html.Node {
	a := element(atom.A, attr("href", href))
	if target != "" {
		a.Attr = append(a.Attr, attr("target", target))
		if target == "_blank" {
			a.Attr = append(a.Attr, attr("rel", "noopener noreferrer"))
		}
	}
	return appendAll(a, b.Text(text))
}

// InternalLink marks the anchor for client-side routing.
func (b *HTMLBuilder) InternalLink(text, href string) *html.Node {
	a := element(atom.A, attr("href", href), attr("data-link", "internal"))
	return appendAll(a, b.Text(text))
}

func (b *HTMLBuilder) Button(label string, id ButtonID) *html.Node {
	btn := element(atom.Button,
		attr("type", "button"),
		attr("class", "btn btn-link"),
		attr("id", id.String()),
		attr("data-type", id.Type()),
		attr("data-index", id.Value),
	)
	return appendAll(btn, b.Text(label))
}

// Markdown converts src and parses the sanitized result into a div.
func (b *HTMLBuilder) Markdown(src string) (*html.Node, error) {
	var buf bytes.Buffer
	if err := b.md.Convert([]byte(src), &buf); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}
	clean := b.policy.SanitizeBytes(buf.Bytes())

	div := element(atom.Div, attr("class", "markdown"))
	nodes, err := html.ParseFragment(bytes.NewReader(clean), element(atom.Div))
	if err != nil {
		return nil, fmt.Errorf("parse markdown html: %w", err)
	}
	return appendAll(div, nodes...), nil
}

// WriteHTML writes the table element of m. Empty markup writes nothing.
func WriteHTML(w io.Writer, m Markup[*html.Node]) error {
	if m.Empty() || m.Table == nil {
		return nil
	}
	if err := html.Render(w, m.Table); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

// RenderHTML renders ds to an HTML string with the default builder.
func RenderHTML(ds Dataset, opts Options) (string, error) {
	m, err := Render(ds, opts, NewHTMLBuilder())
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := WriteHTML(&sb, m); err != nil {
		return "", err
	}
	return sb.String(), nil
}
