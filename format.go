package simplecsv

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// undefinedText renders a key the record does not have when
// NullToEmptyString is off.
const undefinedText = "undefined"

// localeFractionDigits matches the default precision of locale number
// formatting in browsers.
const localeFractionDigits = 3

type cellFormatter struct {
	sep         string
	quote       string
	alwaysQuote bool
	decimal     string
	nullEmpty   bool
	dateLayout  string
	printer     *message.Printer
}

func newCellFormatter(o Options) *cellFormatter {
	f := &cellFormatter{
		sep:         o.FieldSeparator,
		quote:       o.QuoteStrings,
		alwaysQuote: o.QuoteStrings != "",
		decimal:     o.DecimalSeparator,
		nullEmpty:   o.NullToEmptyString,
		dateLayout:  o.DateLayout,
	}
	if f.quote == "" {
		f.quote = DefaultQuote
	}
	if f.decimal == DecimalLocale {
		f.printer = message.NewPrinter(language.Make(o.Locale))
	}
	return f
}

// format renders one cell. present is false when the record lacks the key.
func (f *cellFormatter) format(v Value, present bool) string {
	if !present {
		if f.nullEmpty {
			return ""
		}
		return undefinedText
	}
	if v.IsFloat() {
		switch f.decimal {
		case DefaultDecimalSeparator:
		case DecimalLocale:
			return f.printer.Sprint(number.Decimal(v.num, number.MaxFractionDigits(localeFractionDigits)))
		default:
			return strings.Replace(v.text(f.dateLayout), ".", f.decimal, 1)
		}
	}
	switch v.kind {
	case KindString:
		return f.quoteString(v.str)
	case KindBool:
		if v.b {
			return "TRUE"
		}
		return "FALSE"
	case KindNull:
		if f.nullEmpty {
			return ""
		}
	}
	return v.text(f.dateLayout)
}

func (f *cellFormatter) quoteString(s string) string {
	s = strings.ReplaceAll(s, f.quote, f.quote+f.quote)
	if f.alwaysQuote || strings.Contains(s, f.sep) || strings.ContainsAny(s, "\n\r") {
		return f.quote + s + f.quote
	}
	return s
}
