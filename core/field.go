package core

import (
	"fmt"
	"strconv"
	"time"
)

// FieldType represents the type of a field value
type FieldType uint8

const (
	StringType FieldType = iota
	Int64Type
	Float64Type
	BoolType
	TimeType
	DurationType
	ErrorType
	ObjectType
	AnyType
)

// Loggable is implemented by values that can describe themselves as a
// structured mapping. LogFields is only called when the record is
// actually written.
type Loggable interface {
	LogFields() []Field
}

// Map is an ad-hoc Loggable built from fields
type Map []Field

// LogFields implements Loggable
func (m Map) LogFields() []Field { return m }

// Field represents a key-value pair for structured logging
type Field struct {
	Key     string
	Type    FieldType
	Int64   int64
	Float64 float64
	Str     string
	Object  Loggable
	Any     interface{}
}

// StringValue returns the string representation of a field's value
func (f Field) StringValue() string {
	switch f.Type {
	case StringType:
		return f.Str
	case Int64Type:
		return strconv.FormatInt(f.Int64, 10)
	case Float64Type:
		return strconv.FormatFloat(f.Float64, 'f', -1, 64)
	case BoolType:
		return strconv.FormatBool(f.Int64 == 1)
	case TimeType:
		return time.Unix(0, f.Int64).UTC().Format(time.RFC3339Nano)
	case DurationType:
		return time.Duration(f.Int64).String()
	case ErrorType:
		return f.Str
	case ObjectType:
		if f.Object == nil {
			return "{}"
		}
		return fieldsString(f.Object.LogFields())
	case AnyType:
		return fmt.Sprintf("%v", f.Any)
	default:
		return ""
	}
}

func fieldsString(fields []Field) string {
	b := make([]byte, 0, 64)
	b = append(b, '{')
	for i, f := range fields {
		if i > 0 {
			b = append(b, ' ')
		}
		b = append(b, f.Key...)
		b = append(b, '=')
		b = append(b, f.StringValue()...)
	}
	return string(append(b, '}'))
}

// Value returns the field value as a plain Go value suitable for
// encoding/json. Objects become map[string]interface{}.
func (f Field) Value() interface{} {
	switch f.Type {
	case StringType, ErrorType:
		return f.Str
	case Int64Type:
		return f.Int64
	case Float64Type:
		return f.Float64
	case BoolType:
		return f.Int64 == 1
	case TimeType:
		return time.Unix(0, f.Int64).UTC().Format(time.RFC3339Nano)
	case DurationType:
		return time.Duration(f.Int64).String()
	case ObjectType:
		if f.Object == nil {
			return map[string]interface{}{}
		}
		return FieldsMap(f.Object.LogFields())
	case AnyType:
		if l, ok := f.Any.(Loggable); ok {
			return FieldsMap(l.LogFields())
		}
		if err, ok := f.Any.(error); ok {
			return err.Error()
		}
		return f.Any
	default:
		return nil
	}
}

// FieldsMap converts fields to a map. Later keys win.
func FieldsMap(fields []Field) map[string]interface{} {
	m := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		m[f.Key] = f.Value()
	}
	return m
}
