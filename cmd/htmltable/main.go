// Package main provides the CLI entry point for htmltable.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bjaus/htmltable"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop()

type flags struct {
	format      string
	config      string
	output      string
	sheet       string
	columns     []string
	buttons     []string
	markdown    []string
	floatFormat string
	dateFormat  string
	linkSuffix  string
	linkTarget  string
	indexLabel  string
	index       bool
	verbose     bool
	border      htmltable.BorderStyle
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "htmltable [flags] <input>",
		Short: "Render a tabular file as an HTML table",
		Long: `htmltable reads a CSV, TSV, JSON, JSON Lines, YAML or XLSX file and
renders it as an HTML table, a terminal table or a Markdown table.

Columns named <column>_HREF turn <column> into links. Cell styles, button and
markdown columns are configured in a YAML file passed with --config.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			config.OutputPaths = []string{"stderr"}
			if f.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			} else {
				config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			}
			l, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args[0])
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.format, "format", "f", string(htmltable.HTML), "Output format: html, text, markdown")
	fl.StringVarP(&f.config, "config", "c", "", "YAML options file")
	fl.StringVarP(&f.output, "output", "o", "", "Output file path (default: stdout)")
	fl.StringVar(&f.sheet, "sheet", "", "XLSX worksheet (default: first sheet)")
	fl.StringSliceVar(&f.columns, "columns", nil, "Columns to show, in order")
	fl.StringSliceVar(&f.buttons, "button-columns", nil, "Columns rendered as buttons")
	fl.StringSliceVar(&f.markdown, "markdown-columns", nil, "Columns rendered as markdown")
	fl.StringVar(&f.floatFormat, "float-format", "", "Float format, e.g. .2f")
	fl.StringVar(&f.dateFormat, "date-format", "", "strftime pattern for dates, e.g. %Y-%m-%d")
	fl.StringVar(&f.linkSuffix, "link-suffix", "", "Suffix of link columns (default _HREF)")
	fl.StringVar(&f.linkTarget, "link-target", "", "Target attribute of external links")
	fl.BoolVar(&f.index, "index", false, "Show the row index as the first column")
	fl.StringVar(&f.indexLabel, "index-label", "", "Header of the index column (default index)")
	fl.Var(&f.border, "border", "Border of the text format: rounded, none, ascii, heavy, double")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "Enable debug logging")
	return cmd
}

func run(cmd *cobra.Command, f *flags, input string) error {
	format, err := htmltable.ParseFormat(f.format)
	if err != nil {
		return err
	}

	opts, err := loadOptions(f.config)
	if err != nil {
		return err
	}
	applyFlags(cmd, f, &opts)

	logger.Debug("Loading dataset", zap.String("path", input), zap.String("sheet", f.sheet))
	frame, err := htmltable.ReadFile(input, f.sheet)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}
	logger.Debug("Dataset loaded",
		zap.Int("rows", frame.Len()),
		zap.Strings("columns", frame.Columns()))
	if frame.Len() == 0 {
		logger.Warn("Dataset is empty, nothing to render", zap.String("path", input))
	}

	if f.output == "" {
		return render(cmd.OutOrStdout(), format, frame, opts)
	}
	file, err := createOutput(f.output)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := render(file, format, frame, opts); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		logger.Error("Closing output failed", zap.String("path", f.output), zap.Error(err))
		return fmt.Errorf("failed to close output: %w", err)
	}
	logger.Debug("Wrote output", zap.String("path", f.output))
	return nil
}

// createOutput opens the --output destination.
var createOutput = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

func render(w io.Writer, format htmltable.Format, frame *htmltable.Frame, opts htmltable.Options) error {
	if err := htmltable.Write(w, format, frame, opts); err != nil {
		logger.Error("Render failed", zap.String("format", format.String()), zap.Error(err))
		return err
	}
	logger.Debug("Rendered table", zap.String("format", format.String()))
	return nil
}

func loadOptions(path string) (htmltable.Options, error) {
	if path == "" {
		return htmltable.Options{}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return htmltable.Options{}, err
	}
	defer file.Close()
	opts, err := htmltable.LoadOptions(file)
	if err != nil {
		return htmltable.Options{}, fmt.Errorf("config %s: %w", path, err)
	}
	logger.Debug("Loaded options", zap.String("path", path), zap.Int("styled_columns", len(opts.CellStyles)))
	return opts, nil
}

// applyFlags overrides file options with flags the user actually set.
func applyFlags(cmd *cobra.Command, f *flags, opts *htmltable.Options) {
	changed := cmd.Flags().Changed
	if changed("columns") {
		opts.Columns = f.columns
	}
	if changed("button-columns") {
		opts.ButtonColumns = f.buttons
	}
	if changed("markdown-columns") {
		opts.MarkdownColumns = f.markdown
	}
	if changed("float-format") {
		opts.FloatFormat = f.floatFormat
	}
	if changed("date-format") {
		opts.DateFormat = f.dateFormat
	}
	if changed("link-suffix") {
		opts.LinkSuffix = f.linkSuffix
	}
	if changed("link-target") {
		opts.LinkTarget = f.linkTarget
	}
	if changed("index") {
		opts.IncludeIndex = f.index
	}
	if changed("index-label") {
		opts.IndexLabel = f.indexLabel
	}
	if changed("border") {
		opts.Border = f.border
	}
}
