// Package htmltable renders tabular data as HTML tables.
//
// A [Dataset] of rows keyed by column name goes in; a [Markup] tree comes
// out. Along the way the renderer derives header labels, turns cells into
// hyperlinks, buttons or markdown, formats floats and dates, and styles
// cells conditionally. The central entry point is [Render], which is generic
// over the node type of a [Builder]:
//
//	m, err := htmltable.Render(frame, opts, htmltable.NewHTMLBuilder())
//
// For the common cases use [Write] or [Marshal] with a [Format]:
//
//	htmltable.Write(os.Stdout, htmltable.HTML, frame, opts)
//
// # Datasets
//
// [Frame] is the bundled in-memory dataset. Build one with [NewFrame], or
// load one with [ReadCSV], [ReadTSV], [ReadJSON], [ReadJSONL], [ReadYAML],
// [ReadXLSX] or [ReadFile]. [Collect] drains an iterator of rows. Any type
// implementing [Dataset] works; implement [Indexed] to supply row labels
// for [Options.IncludeIndex].
//
// # Columns
//
// Without [Options.Columns] every column is shown in dataset order. With
// it, only the listed columns are shown, in the listed order. Header labels
// replace underscores with spaces and title-case each word; set
// [Options.HeaderLabeler] or [Options.HeaderTemplate] to go further.
//
// # Links
//
// A column named C links through the column C+"_HREF" (see
// [Options.LinkSuffix]). Link columns are never shown, and requesting C in
// [Options.Columns] pulls its link column in automatically. Targets starting
// with "http" become external links; anything else is an internal
// navigation link. A missing target renders the plain value.
//
// # Cell content
//
// Per cell, the first matching rule wins:
//
//   - link column present and target not missing → link
//   - column in [Options.ButtonColumns] → button with a [ButtonID]
//   - column in [Options.MarkdownColumns] → markdown
//   - float value → [Options.FloatFormat], NaN shown as zero
//   - time value and [Options.DateFormat] set → strftime pattern
//   - anything else → default string conversion
//
// # Styling
//
// [Options.CellStyles] maps a column to a [StyleRule]:
//
//   - [MatchValues]: first value set containing the cell's value wins
//   - [When]: fixed style when a predicate over the row holds
//   - [Compare]: fixed style when the cell's value compares to a constant
//   - [StyleFunc]: style computed from the row
//
// The [ClassKey] entry of a [Style] becomes the cell's class attribute; the
// remaining entries become its inline style.
//
// # Output formats
//
//   - [HTML] uses [HTMLBuilder], golang.org/x/net/html nodes
//   - [Text] uses [TextBuilder], a bordered terminal table (see [BorderStyle])
//   - [Markdown] uses [MarkdownBuilder], a GitHub-flavored Markdown table
//
// # Configuration files
//
// [LoadOptions] decodes [Options] from YAML, including declarative style
// rules.
//
// # Errors
//
// Configuration mistakes surface as [*ConfigError], which matches
// [ErrConfig] and wraps one of:
//
//   - [ErrUnknownColumn]: a requested column does not exist
//   - [ErrDuplicateColumn]: the index label collides with a column
//   - [ErrStyleContract]: a style rule is malformed or returned a bad style
//   - [ErrInvalidFormat]: unusable float, date, border or file format
//   - [ErrInvalidTemplate]: invalid header template
//
// Missing link targets, unmatched style rules and NaN floats are not errors.
// A render either returns complete markup or an error.
package htmltable
