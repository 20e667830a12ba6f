package simplecsv

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// NewFromJSON decodes data as a JSON array of flat objects and encodes it like
// [New]. Object key order becomes field order. It fails with [ErrNotSequence]
// when the top-level value is not an array.
func NewFromJSON(data []byte, filename string, opts ...Option) (*Encoder, error) {
	records, err := DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	return New(records, filename, opts...)
}

// DecodeJSON parses a JSON array of flat objects into records, keeping key
// order. A null element becomes an empty record. A repeated key keeps the
// position of its first occurrence and the value of its last.
func DecodeJSON(data []byte) ([]Record, error) {
	it := jsoniter.ParseBytes(jsoniter.ConfigCompatibleWithStandardLibrary, data)
	switch next := it.WhatIsNext(); next {
	case jsoniter.ArrayValue:
	case jsoniter.InvalidValue:
		return nil, invalidJSON(it)
	default:
		it.Skip()
		if err := iterError(it); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidJSON, err)
		}
		return nil, fmt.Errorf("%w: got %s", ErrNotSequence, jsonTypeName(next))
	}

	records := []Record{}
	var decodeErr error
	it.ReadArrayCB(func(it *jsoniter.Iterator) bool {
		r, err := readJSONRecord(it, len(records))
		if err != nil {
			decodeErr = err
			return false
		}
		records = append(records, r)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	if err := iterError(it); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidJSON, err)
	}
	// Only whitespace may follow the array; reaching EOF proves it.
	if it.WhatIsNext(); it.Error != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after array", ErrInvalidJSON)
	}
	return records, nil
}

func readJSONRecord(it *jsoniter.Iterator, index int) (Record, error) {
	switch next := it.WhatIsNext(); next {
	case jsoniter.NilValue:
		it.ReadNil()
		return Record{}, nil
	case jsoniter.ObjectValue:
	case jsoniter.InvalidValue:
		return nil, invalidJSON(it)
	default:
		it.Skip()
		return nil, fmt.Errorf("%w: element %d is %s, not an object", ErrUnsupportedValue, index, jsonTypeName(next))
	}

	r := Record{}
	var fieldErr error
	it.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
		v, err := readJSONValue(it)
		if err != nil {
			fieldErr = fmt.Errorf("element %d key %q: %w", index, key, err)
			return false
		}
		r = r.set(key, v)
		return true
	})
	if fieldErr != nil {
		return nil, fieldErr
	}
	return r, nil
}

func readJSONValue(it *jsoniter.Iterator) (Value, error) {
	switch next := it.WhatIsNext(); next {
	case jsoniter.StringValue:
		return String(it.ReadString()), nil
	case jsoniter.NumberValue:
		return Number(it.ReadFloat64()), nil
	case jsoniter.BoolValue:
		return Bool(it.ReadBool()), nil
	case jsoniter.NilValue:
		it.ReadNil()
		return Null(), nil
	case jsoniter.InvalidValue:
		return Value{}, invalidJSON(it)
	default:
		it.Skip()
		return Value{}, fmt.Errorf("%w: nested %s", ErrUnsupportedValue, jsonTypeName(next))
	}
}

func invalidJSON(it *jsoniter.Iterator) error {
	if err := iterError(it); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidJSON, err)
	}
	if it.Error == io.EOF {
		return fmt.Errorf("%w: unexpected end of input", ErrInvalidJSON)
	}
	return fmt.Errorf("%w: unexpected character", ErrInvalidJSON)
}

func iterError(it *jsoniter.Iterator) error {
	if it.Error == nil || it.Error == io.EOF {
		return nil
	}
	return it.Error
}

func jsonTypeName(t jsoniter.ValueType) string {
	switch t {
	case jsoniter.StringValue:
		return "string"
	case jsoniter.NumberValue:
		return "number"
	case jsoniter.NilValue:
		return "null"
	case jsoniter.BoolValue:
		return "boolean"
	case jsoniter.ArrayValue:
		return "array"
	case jsoniter.ObjectValue:
		return "object"
	default:
		return "invalid"
	}
}
