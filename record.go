package simplecsv

import "fmt"

// Field is a single named cell of a [Record].
type Field struct {
	Key   string
	Value Value
}

// Record is an ordered list of fields. Without an explicit header, the field
// order of each record is its column order.
type Record []Field

// NewRecord builds a record from alternating key/value arguments:
//
//	simplecsv.NewRecord("name", "test", "age", 20)
//
// Values go through [Of]. It panics on an odd argument count, a non-string key
// or an unsupported value, so it is meant for literals.
func NewRecord(kv ...any) Record {
	if len(kv)%2 != 0 {
		panic("simplecsv: NewRecord called with odd argument count")
	}
	r := make(Record, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("simplecsv: NewRecord key %d is %T, not string", i/2, kv[i]))
		}
		v, err := Of(kv[i+1])
		if err != nil {
			panic(fmt.Sprintf("simplecsv: NewRecord key %q: %s", key, err))
		}
		r = append(r, Field{Key: key, Value: v})
	}
	return r
}

// Get returns the value of the first field named key.
func (r Record) Get(key string) (Value, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// set overwrites the value of the first field named key, keeping its
// position, or appends a new field.
func (r Record) set(key string, v Value) Record {
	for i := range r {
		if r[i].Key == key {
			r[i].Value = v
			return r
		}
	}
	return append(r, Field{Key: key, Value: v})
}

// Keys returns the field names in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// KeyValue is a single key-value pair.
type KeyValue struct {
	Key   string
	Value string
}

// Labels maps record keys to display labels, in column order.
type Labels []KeyValue

// Keys returns the source record keys in order.
func (l Labels) Keys() []string {
	keys := make([]string, len(l))
	for i, kv := range l {
		keys[i] = kv.Key
	}
	return keys
}

// Texts returns the display labels in order.
func (l Labels) Texts() []string {
	texts := make([]string, len(l))
	for i, kv := range l {
		texts[i] = kv.Value
	}
	return texts
}
