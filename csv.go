package simplecsv

import "strings"

func encode(records []Record, o Options) string {
	log := o.Logger
	if len(records) == 0 {
		log.Info("no data to generate CSV")
		return ""
	}

	var b strings.Builder
	f := newCellFormatter(o)
	sep := o.FieldSeparator

	if o.UseBOM {
		b.WriteString(BOM)
	}
	if o.ShowTitle {
		b.WriteString(o.Title)
		b.WriteString(EOL)
		b.WriteString("\n")
	}

	if o.UseObjHeader && len(o.ObjHeader) > 0 {
		keys := o.ObjHeader.Keys()
		writeRow(&b, o.ObjHeader.Texts(), sep)
		for _, r := range records {
			writeRow(&b, selectCells(r, keys, f), sep)
		}
	} else {
		byHeader := o.UseHeader && len(o.Headers) > 0
		if len(o.Headers) > 0 {
			writeRow(&b, o.Headers, sep)
		}
		for _, r := range records {
			if byHeader {
				writeRow(&b, selectCells(r, o.Headers, f), sep)
			} else {
				writeRow(&b, recordCells(r, f), sep)
			}
		}
	}

	if b.Len() == 0 {
		log.Info("invalid data")
		return ""
	}
	log.V(1).Info("encoded document", "records", len(records), "bytes", b.Len())
	return b.String()
}

// buildRow joins cells with sep. An empty cell list yields an empty row.
func buildRow(cells []string, sep string) string {
	return strings.Join(cells, sep)
}

func writeRow(b *strings.Builder, cells []string, sep string) {
	b.WriteString(buildRow(cells, sep))
	b.WriteString(EOL)
}

// selectCells formats the fields of r named by keys, in key order.
func selectCells(r Record, keys []string, f *cellFormatter) []string {
	cells := make([]string, len(keys))
	for i, k := range keys {
		v, ok := r.Get(k)
		cells[i] = f.format(v, ok)
	}
	return cells
}

// recordCells formats every field of r in record order.
func recordCells(r Record, f *cellFormatter) []string {
	cells := make([]string, len(r))
	for i, fld := range r {
		cells[i] = f.format(fld.Value, true)
	}
	return cells
}
