package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bjaus/simplecsv"
)

type rootFlags struct {
	config      string
	inputFormat string
	outDir      string
	verbose     bool

	filename    string
	separator   string
	quote       string
	decimal     string
	locale      string
	dateLayout  string
	title       string
	showTitle   bool
	noBOM       bool
	headers     []string
	useHeader   bool
	labels      []string
	nullLiteral bool
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "simplecsv [file]",
		Short: "Convert a JSON or YAML list of records to CSV",
		Long: `simplecsv reads a list of flat records (JSON array or YAML sequence) from a
file or stdin and writes it as CSV.

Without --out-dir the document is printed to stdout. With --out-dir it is
saved as <out-dir>/<filename>.csv, spaces in the name replaced by underscores.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.config, "config", "c", "", "YAML options file")
	fs.StringVarP(&f.inputFormat, "input-format", "i", "json", "input format: json or yaml")
	fs.StringVarP(&f.outDir, "out-dir", "o", "", "write the document into this directory instead of stdout")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "verbose logging")
	addEncodeFlags(fs, f)

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func addEncodeFlags(fs *pflag.FlagSet, f *rootFlags) {
	fs.StringVar(&f.filename, "filename", "", "suggested file name (default "+simplecsv.DefaultFilename+")")
	fs.StringVar(&f.separator, "separator", simplecsv.DefaultFieldSeparator, "field separator")
	fs.StringVar(&f.quote, "quote", simplecsv.DefaultQuote, "quote character; empty quotes only when needed")
	fs.StringVar(&f.decimal, "decimal", simplecsv.DefaultDecimalSeparator, `decimal separator, or "locale"`)
	fs.StringVar(&f.locale, "locale", simplecsv.DefaultLocale, "locale for --decimal locale")
	fs.StringVar(&f.dateLayout, "date-layout", "", "Go time layout for dates")
	fs.StringVar(&f.title, "title", simplecsv.DefaultTitle, "title text")
	fs.BoolVar(&f.showTitle, "show-title", false, "write the title before the header")
	fs.BoolVar(&f.noBOM, "no-bom", false, "omit the UTF-8 byte-order mark")
	fs.StringSliceVar(&f.headers, "headers", nil, "header row")
	fs.BoolVar(&f.useHeader, "use-header", false, "select columns by --headers")
	fs.StringSliceVar(&f.labels, "labels", nil, "ordered key=Label pairs selecting and naming columns")
	fs.BoolVar(&f.nullLiteral, "null-literal", false, `render null as "null" instead of empty`)
}

func run(cmd *cobra.Command, f *rootFlags, args []string) error {
	data, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	opts := []simplecsv.Option{simplecsv.WithLogger(newLogger(cmd.ErrOrStderr(), f.verbose))}

	if f.config != "" {
		cfgOpts, err := loadConfigFile(f.config)
		if err != nil {
			return err
		}
		opts = append(opts, cfgOpts...)
	}
	flagOpts, err := encodeOptions(cmd.Flags(), f)
	if err != nil {
		return err
	}
	opts = append(opts, flagOpts...)

	var sink *simplecsv.FileSink
	if f.outDir != "" {
		sink = simplecsv.NewFileSink(f.outDir)
		opts = append(opts, simplecsv.WithNoDownload(false), simplecsv.WithSink(sink))
	} else {
		opts = append(opts, simplecsv.WithNoDownload(true))
	}

	var enc *simplecsv.Encoder
	switch strings.ToLower(f.inputFormat) {
	case "json":
		enc, err = simplecsv.NewFromJSON(data, f.filename, opts...)
	case "yaml", "yml":
		enc, err = simplecsv.NewFromYAML(data, f.filename, opts...)
	default:
		return fmt.Errorf("unknown input format %q (want json or yaml)", f.inputFormat)
	}
	if err != nil {
		return err
	}

	if sink != nil {
		if enc.Len() > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", sink.Path(enc.Filename()))
		}
		return nil
	}
	_, err = enc.WriteTo(cmd.OutOrStdout())
	return err
}

// newLogger writes to w. verbose enables V(1) messages.
func newLogger(w io.Writer, verbose bool) logr.Logger {
	std := log.New(w, "simplecsv: ", 0)
	opts := funcr.Options{}
	if verbose {
		opts.Verbosity = 1
	}
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			args = prefix + ": " + args
		}
		std.Println(args)
	}, opts)
}

func readInput(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(args[0])
}

func loadConfigFile(path string) ([]simplecsv.Option, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	cfg, err := simplecsv.LoadConfig(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg.Options(), nil
}

// encodeOptions turns explicitly set flags into options so they override the
// config file without resetting its values to flag defaults.
func encodeOptions(fs *pflag.FlagSet, f *rootFlags) ([]simplecsv.Option, error) {
	var opts []simplecsv.Option
	set := fs.Changed
	if set("filename") {
		opts = append(opts, simplecsv.WithFilename(f.filename))
	}
	if set("separator") {
		opts = append(opts, simplecsv.WithFieldSeparator(f.separator))
	}
	if set("quote") {
		opts = append(opts, simplecsv.WithQuote(f.quote))
	}
	if set("decimal") {
		opts = append(opts, simplecsv.WithDecimalSeparator(f.decimal))
	}
	if set("locale") {
		opts = append(opts, simplecsv.WithLocale(f.locale))
	}
	if set("date-layout") {
		opts = append(opts, simplecsv.WithDateLayout(f.dateLayout))
	}
	if set("title") {
		opts = append(opts, simplecsv.WithTitle(f.title))
	}
	if set("show-title") {
		opts = append(opts, simplecsv.WithShowTitle(f.showTitle))
	}
	if set("no-bom") {
		opts = append(opts, simplecsv.WithBOM(!f.noBOM))
	}
	if set("headers") {
		opts = append(opts, simplecsv.WithHeaders(f.headers...))
	}
	if set("use-header") {
		opts = append(opts, simplecsv.WithUseHeader(f.useHeader))
	}
	if set("labels") {
		labels, err := parseLabels(f.labels)
		if err != nil {
			return nil, err
		}
		opts = append(opts, simplecsv.WithObjHeader(labels), simplecsv.WithUseObjHeader(true))
	}
	if set("null-literal") {
		opts = append(opts, simplecsv.WithNullToEmptyString(!f.nullLiteral))
	}
	return opts, nil
}

func parseLabels(pairs []string) (simplecsv.Labels, error) {
	labels := make(simplecsv.Labels, 0, len(pairs))
	for _, p := range pairs {
		key, label, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid label %q (want key=Label)", p)
		}
		labels = append(labels, simplecsv.KeyValue{Key: key, Value: label})
	}
	return labels, nil
}
