package simplecsv

import (
	"errors"
	"fmt"
	"io"
	"slices"
)

// Sentinel errors for programmatic error handling.
var (
	ErrNotSequence      = errors.New("data must be an array")
	ErrInvalidJSON      = errors.New("invalid json")
	ErrInvalidYAML      = errors.New("invalid yaml")
	ErrUnsupportedValue = errors.New("unsupported value")
	ErrInvalidOption    = errors.New("invalid option")
	ErrDelivery         = errors.New("delivery failed")
)

const (
	// BOM is the UTF-8 byte-order mark written when UseBOM is set.
	BOM = "\ufeff"
	// EOL terminates every row.
	EOL = "\r\n"
	// MIMEType is the content type handed to sinks.
	MIMEType = "text/csv;charset=utf8;"
)

// Encoder holds one encoded CSV document. The document is produced once by
// [New] and never changes afterwards, so an Encoder is safe for concurrent
// reads.
type Encoder struct {
	opts     Options
	doc      string
	filename string
	records  int
}

// New encodes records with the default options overlaid by opts. A non-empty
// filename overrides any [WithFilename] option.
//
// Unless NoDownload is set, a non-empty document is handed to the configured
// [Sink]; a sink failure is returned wrapped in [ErrDelivery].
func New(records []Record, filename string, opts ...Option) (*Encoder, error) {
	if filename != "" {
		opts = append(slices.Clip(opts), WithFilename(filename))
	}
	o := resolveOptions(opts)
	if err := o.validate(); err != nil {
		return nil, err
	}
	e := &Encoder{
		opts:     o,
		filename: SanitizeFilename(o.Filename),
		records:  len(records),
	}
	e.doc = encode(records, o)
	if err := e.deliver(); err != nil {
		return nil, err
	}
	return e, nil
}

// String returns the document.
func (e *Encoder) String() string { return e.doc }

// Bytes returns a copy of the document.
func (e *Encoder) Bytes() []byte { return []byte(e.doc) }

// Len returns the document length in bytes.
func (e *Encoder) Len() int { return len(e.doc) }

// Filename returns the sanitized file name suggested to sinks.
func (e *Encoder) Filename() string { return e.filename }

// Options returns a copy of the resolved configuration.
func (e *Encoder) Options() Options {
	o := e.opts
	o.Headers = slices.Clone(o.Headers)
	o.ObjHeader = slices.Clone(o.ObjHeader)
	return o
}

// WriteTo writes the document to w.
func (e *Encoder) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, e.doc)
	return int64(n), err
}

// Deliver hands the document to s regardless of NoDownload.
func (e *Encoder) Deliver(s Sink) error {
	if err := s.Save(e.Bytes(), e.filename, MIMEType); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDelivery, e.filename, err)
	}
	return nil
}

func (e *Encoder) deliver() error {
	log := e.opts.Logger
	switch {
	case e.opts.NoDownload:
		return nil
	case e.doc == "":
		log.V(1).Info("skipping delivery of empty document", "filename", e.filename)
		return nil
	case e.opts.Sink == nil:
		log.V(1).Info("no sink configured, document not delivered", "filename", e.filename)
		return nil
	}
	if err := e.Deliver(e.opts.Sink); err != nil {
		return err
	}
	log.V(1).Info("delivered document", "filename", e.filename, "bytes", len(e.doc), "records", e.records)
	return nil
}

// Marshal encodes records and returns the document bytes. It never delivers
// to a sink.
func Marshal(records []Record, opts ...Option) ([]byte, error) {
	e, err := New(records, "", append(slices.Clip(opts), WithNoDownload(true))...)
	if err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// Write encodes records and writes the document to w. It never delivers to a
// sink.
func Write(w io.Writer, records []Record, opts ...Option) error {
	e, err := New(records, "", append(slices.Clip(opts), WithNoDownload(true))...)
	if err != nil {
		return err
	}
	_, err = e.WriteTo(w)
	return err
}
