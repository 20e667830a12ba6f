package simplecsv

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Config is a partial configuration as stored in a YAML file. Unset fields
// keep their defaults:
//
//	fieldSeparator: ";"
//	useBom: false
//	useObjHeader: true
//	objHeader:
//	  name: Name
//	  age: Age
type Config struct {
	Filename          *string  `yaml:"filename"`
	FieldSeparator    *string  `yaml:"fieldSeparator"`
	QuoteStrings      *string  `yaml:"quoteStrings"`
	DecimalSeparator  *string  `yaml:"decimalSeparator"`
	ShowLabels        *bool    `yaml:"showLabels"`
	ShowTitle         *bool    `yaml:"showTitle"`
	Title             *string  `yaml:"title"`
	UseBOM            *bool    `yaml:"useBom"`
	Headers           []string `yaml:"headers"`
	ObjHeader         Labels   `yaml:"objHeader"`
	UseObjHeader      *bool    `yaml:"useObjHeader"`
	UseHeader         *bool    `yaml:"useHeader"`
	NoDownload        *bool    `yaml:"noDownload"`
	NullToEmptyString *bool    `yaml:"nullToEmptyString"`
	Locale            *string  `yaml:"locale"`
	DateLayout        *string  `yaml:"dateLayout"`
}

// LoadConfig reads a YAML config. Unknown keys are rejected. An empty input
// yields an empty Config.
func LoadConfig(r io.Reader) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("%w: config: %s", ErrInvalidYAML, err)
	}
	return c, nil
}

// Options returns one Option per field set in c.
func (c Config) Options() []Option {
	var opts []Option
	str := func(p *string, fn func(string) Option) {
		if p != nil {
			opts = append(opts, fn(*p))
		}
	}
	flag := func(p *bool, fn func(bool) Option) {
		if p != nil {
			opts = append(opts, fn(*p))
		}
	}
	str(c.Filename, WithFilename)
	str(c.FieldSeparator, WithFieldSeparator)
	str(c.QuoteStrings, WithQuote)
	str(c.DecimalSeparator, WithDecimalSeparator)
	flag(c.ShowLabels, WithShowLabels)
	flag(c.ShowTitle, WithShowTitle)
	str(c.Title, WithTitle)
	flag(c.UseBOM, WithBOM)
	if c.Headers != nil {
		opts = append(opts, WithHeaders(c.Headers...))
	}
	if c.ObjHeader != nil {
		opts = append(opts, WithObjHeader(c.ObjHeader))
	}
	flag(c.UseObjHeader, WithUseObjHeader)
	flag(c.UseHeader, WithUseHeader)
	flag(c.NoDownload, WithNoDownload)
	flag(c.NullToEmptyString, WithNullToEmptyString)
	str(c.Locale, WithLocale)
	str(c.DateLayout, WithDateLayout)
	return opts
}

// UnmarshalYAML decodes a mapping into Labels, keeping key order.
func (l *Labels) UnmarshalYAML(n *yaml.Node) error {
	n = resolveAlias(n)
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null" {
		*l = Labels{}
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: labels must be a mapping, got %s", n.Line, yamlKindName(n))
	}
	out := make(Labels, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := resolveAlias(n.Content[i]), resolveAlias(n.Content[i+1])
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: label for %q must be a scalar", v.Line, k.Value)
		}
		out = append(out, KeyValue{Key: k.Value, Value: v.Value})
	}
	*l = out
	return nil
}

// MarshalYAML encodes Labels as an ordered mapping.
func (l Labels) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, kv := range l {
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kv.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kv.Value},
		)
	}
	return n, nil
}
