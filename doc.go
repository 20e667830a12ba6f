// Package simplecsv turns a list of flat records into a CSV document.
//
// A [Record] is an ordered list of fields whose values are one of five kinds:
// null, string, number, boolean or date (see [Value]). [New] encodes records
// once, with the defaults of [DefaultOptions] overlaid by [Option] values:
//
//	enc, err := simplecsv.New(records, "My Report",
//		simplecsv.WithBOM(false),
//		simplecsv.WithNoDownload(true),
//	)
//	fmt.Print(enc.String())
//
// Use [NewFromJSON] or [NewFromYAML] when the records arrive as text. Both
// keep object key order and fail with [ErrNotSequence] when the top-level
// value is not a list.
//
// # Document Layout
//
// The document is, in order: an optional UTF-8 byte-order mark, an optional
// title followed by a blank line, an optional header row, and one row per
// record. Every row ends in CRLF. An empty record list always produces an
// empty document.
//
// # Columns
//
// Column order comes from the first of these that applies:
//
//   - [WithObjHeader] with [WithUseObjHeader]: the label mapping selects record
//     keys and its labels form the header row.
//   - [WithHeaders] with [WithUseHeader]: the headers form the header row and
//     select record keys.
//   - Otherwise each record's own field order. [WithHeaders] alone still
//     writes the header row.
//
// # Cells
//
// Floats honour the decimal separator ([DecimalLocale] formats them for the
// configured locale). Strings double embedded quote characters and are quoted
// when the quote option is set or they contain the separator or a line break.
// Booleans render as TRUE or FALSE. Null renders as "" unless
// [WithNullToEmptyString] is false.
//
// # Delivery
//
// Unless NoDownload is set, [New] hands the document, its sanitized file
// name and [MIMEType] to the configured [Sink]. [WriterSink], [FileSink] and
// [HTTPSink] cover writers, directories and HTTP downloads.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrNotSequence] — decoded input is not a list
//   - [ErrInvalidJSON], [ErrInvalidYAML] — malformed input or config
//   - [ErrUnsupportedValue] — a cell that is not a scalar
//   - [ErrInvalidOption] — bad separator, quote or locale
//   - [ErrDelivery] — the sink failed
//
// Empty input is not an error; it is logged through the configured
// [github.com/go-logr/logr.Logger] and yields an empty document.
package simplecsv
