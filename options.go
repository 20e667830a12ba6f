package simplecsv

import (
	"fmt"
	"log"
	"os"
	"slices"
	"unicode/utf8"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"golang.org/x/text/language"
)

// Default option values.
const (
	DefaultFilename         = "mycsv.csv"
	DefaultFieldSeparator   = ","
	DefaultQuote            = `"`
	DefaultDecimalSeparator = "."
	DefaultTitle            = "My Report"
	DefaultLocale           = "en-US"
)

// DecimalLocale is the DecimalSeparator value that formats floats with the
// configured [Options.Locale].
const DecimalLocale = "locale"

// Options is the resolved encoder configuration. Build one with
// [DefaultOptions] and [Option] values; the encoder never sees a partial
// configuration.
type Options struct {
	// Filename is the suggested output name, before sanitizing.
	Filename string
	// FieldSeparator delimits columns. Must be one character.
	FieldSeparator string
	// QuoteStrings is the quote character. When non-empty every string field
	// is quoted; when empty, strings are quoted with '"' only when needed.
	QuoteStrings string
	// DecimalSeparator replaces the decimal point of floats with any string.
	// "." leaves them alone and [DecimalLocale] formats them for Locale.
	DecimalSeparator string
	// ShowLabels is accepted for compatibility and has no effect.
	ShowLabels bool
	// ShowTitle emits Title and a blank line before the header.
	ShowTitle bool
	Title     string
	// UseBOM prefixes the document with a UTF-8 byte-order mark.
	UseBOM bool
	// Headers is written verbatim as the header row when non-empty.
	Headers []string
	// ObjHeader selects and labels columns when UseObjHeader is set.
	ObjHeader    Labels
	UseObjHeader bool
	// UseHeader picks data fields by Headers instead of record order.
	UseHeader bool
	// NoDownload keeps the document away from Sink.
	NoDownload bool
	// NullToEmptyString renders null and absent values as "".
	NullToEmptyString bool
	// Locale is the BCP 47 tag used for [DecimalLocale] formatting.
	Locale string
	// DateLayout formats date values. Empty means [time.Time.String].
	DateLayout string
	Logger     logr.Logger
	// Sink receives the document unless NoDownload is set.
	Sink Sink
}

// Option overlays a single setting on [Options].
type Option func(*Options)

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Filename:          DefaultFilename,
		FieldSeparator:    DefaultFieldSeparator,
		QuoteStrings:      DefaultQuote,
		DecimalSeparator:  DefaultDecimalSeparator,
		Title:             DefaultTitle,
		UseBOM:            true,
		Headers:           []string{},
		ObjHeader:         Labels{},
		NullToEmptyString: true,
		Locale:            DefaultLocale,
		Logger:            stdr.New(log.New(os.Stderr, "simplecsv: ", log.LstdFlags)),
	}
}

// WithFilename sets the suggested output file name.
func WithFilename(name string) Option {
	return func(o *Options) { o.Filename = name }
}

// WithFieldSeparator sets the column delimiter.
func WithFieldSeparator(sep string) Option {
	return func(o *Options) { o.FieldSeparator = sep }
}

// WithQuote sets the quote character. An empty quote disables always-quoting.
func WithQuote(q string) Option {
	return func(o *Options) { o.QuoteStrings = q }
}

// WithDecimalSeparator sets the decimal separator for floats.
func WithDecimalSeparator(sep string) Option {
	return func(o *Options) { o.DecimalSeparator = sep }
}

// WithShowLabels sets the ShowLabels flag.
func WithShowLabels(show bool) Option {
	return func(o *Options) { o.ShowLabels = show }
}

// WithShowTitle toggles the title block.
func WithShowTitle(show bool) Option {
	return func(o *Options) { o.ShowTitle = show }
}

// WithTitle sets the title text.
func WithTitle(title string) Option {
	return func(o *Options) { o.Title = title }
}

// WithBOM toggles the byte-order mark.
func WithBOM(use bool) Option {
	return func(o *Options) { o.UseBOM = use }
}

// WithHeaders sets the explicit header row.
func WithHeaders(headers ...string) Option {
	return func(o *Options) { o.Headers = slices.Clone(headers) }
}

// WithUseHeader makes data rows follow Headers.
func WithUseHeader(use bool) Option {
	return func(o *Options) { o.UseHeader = use }
}

// WithObjHeader sets the label mapping.
func WithObjHeader(labels Labels) Option {
	return func(o *Options) { o.ObjHeader = slices.Clone(labels) }
}

// WithUseObjHeader activates the label mapping.
func WithUseObjHeader(use bool) Option {
	return func(o *Options) { o.UseObjHeader = use }
}

// WithNoDownload keeps the document from being handed to the sink.
func WithNoDownload(no bool) Option {
	return func(o *Options) { o.NoDownload = no }
}

// WithNullToEmptyString sets how null and absent values render.
func WithNullToEmptyString(empty bool) Option {
	return func(o *Options) { o.NullToEmptyString = empty }
}

// WithLocale sets the locale used by [DecimalLocale].
func WithLocale(tag string) Option {
	return func(o *Options) { o.Locale = tag }
}

// WithDateLayout sets the [time.Time.Format] layout for date values.
func WithDateLayout(layout string) Option {
	return func(o *Options) { o.DateLayout = layout }
}

// WithLogger sets the logger for soft failures.
func WithLogger(l logr.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithSink sets the document sink.
func WithSink(s Sink) Option {
	return func(o *Options) { o.Sink = s }
}

func resolveOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.Headers == nil {
		o.Headers = []string{}
	}
	if o.ObjHeader == nil {
		o.ObjHeader = Labels{}
	}
	return o
}

func (o Options) validate() error {
	if utf8.RuneCountInString(o.FieldSeparator) != 1 {
		return fmt.Errorf("%w: field separator %q must be one character", ErrInvalidOption, o.FieldSeparator)
	}
	if utf8.RuneCountInString(o.QuoteStrings) > 1 {
		return fmt.Errorf("%w: quote %q must be at most one character", ErrInvalidOption, o.QuoteStrings)
	}
	if _, err := language.Parse(o.Locale); err != nil {
		return fmt.Errorf("%w: locale %q: %s", ErrInvalidOption, o.Locale, err)
	}
	return nil
}
