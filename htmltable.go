package htmltable

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrInvalidDataset    = errors.New("invalid dataset")
	ErrInvalidTemplate   = errors.New("invalid template")

	// ErrConfig matches every [*ConfigError].
	ErrConfig          = errors.New("configuration error")
	ErrUnknownColumn   = errors.New("unknown column")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrStyleContract   = errors.New("style contract violated")
	ErrInvalidFormat   = errors.New("invalid format pattern")
)

// ConfigError reports a caller bug in [Options]: a column that does not
// exist, a style rule that broke its contract, or an unusable pattern.
type ConfigError struct {
	Column string
	Value  any // offending cell value, if any
	Err    error
}

func (e *ConfigError) Error() string {
	var sb strings.Builder
	sb.WriteString("configuration error")
	if e.Column != "" {
		fmt.Fprintf(&sb, " in column %q", e.Column)
	}
	if e.Value != nil {
		fmt.Fprintf(&sb, " for value %v", e.Value)
	}
	fmt.Fprintf(&sb, ": %v", e.Err)
	return sb.String()
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Is makes every ConfigError match [ErrConfig].
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// Format represents an output format.
type Format string

const (
	HTML     Format = "html"
	Text     Format = "text"
	Markdown Format = "markdown"
)

var formats = []Format{HTML, Text, Markdown}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format string.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Write renders ds with opts and writes it to w in format f. An empty
// dataset writes nothing.
func Write(w io.Writer, f Format, ds Dataset, opts Options) error {
	switch f {
	case HTML:
		m, err := Render(ds, opts, NewHTMLBuilder())
		if err != nil {
			return err
		}
		return WriteHTML(w, m)
	case Text:
		m, err := Render(ds, opts, TextBuilder{})
		if err != nil {
			return err
		}
		return WriteText(w, m, opts.Border)
	case Markdown:
		m, err := Render(ds, opts, MarkdownBuilder{})
		if err != nil {
			return err
		}
		return WriteMarkdown(w, m)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Marshal renders ds and returns the bytes.
func Marshal(f Format, ds Dataset, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, ds, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
