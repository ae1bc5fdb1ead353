package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"unicode/utf16"
)

// Value is a sealed interface over the argument and reply types that can
// cross the bridge. Only Null, String, Int, Float, Bool, Array and Object
// implement it.
type Value interface {
	value()
}

// Null represents a JSON null.
type Null struct{}

func (Null) value() {}

// MarshalJSON implements json.Marshaler for Null.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// String is a string value.
type String string

func (String) value() {}

// Int is an integer value. GL enums, sizes and offsets all land here.
type Int int64

func (Int) value() {}

// Float is a finite floating-point value.
type Float float64

func (Float) value() {}

// Bool is a boolean value.
type Bool bool

func (Bool) value() {}

// Array is an ordered list of values.
type Array []Value

func (Array) value() {}

// Object maps string keys to values. Use SortedKeys for deterministic iteration.
type Object map[string]Value

func (Object) value() {}

// Correlated is implemented by in-process handles that stand in for a
// host-side resource. A correlated argument is serialized as
// {"correlationId": id} so the host can resolve it.
type Correlated interface {
	CorrelationID() int64
}

// CorrelationKey is the field name used for correlation ids, both on the
// descriptor and inside handle arguments.
const CorrelationKey = "correlationId"

// SortedKeys returns keys in RFC 8785 order (UTF-16 code units).
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

// compareKeysRFC8785 compares strings by UTF-16 code units. Go's native
// string comparison is by UTF-8 bytes and orders supplementary-plane
// characters differently.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	n := min(len(a16), len(b16))
	for i := 0; i < n; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	return 0
}

// MarshalJSON implements json.Marshaler for Object with sorted keys.
func (obj Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, k := range obj.SortedKeys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valBytes, err := MarshalValue(obj[k])
		if err != nil {
			return nil, fmt.Errorf("marshal value for key %q: %w", k, err)
		}
		buf.Write(valBytes)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler for Array.
func (arr Array) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')

	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		elemBytes, err := MarshalValue(elem)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(elemBytes)
	}

	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// MarshalValue marshals a Value to JSON bytes.
// This is the wire form, not the canonical form; see MarshalCanonical.
func MarshalValue(v Value) ([]byte, error) {
	switch val := v.(type) {
	case nil, Null:
		return []byte("null"), nil
	case String:
		return json.Marshal(string(val))
	case Int:
		return strconv.AppendInt(nil, int64(val), 10), nil
	case Float:
		return marshalFloat(float64(val))
	case Bool:
		return strconv.AppendBool(nil, bool(val)), nil
	case Array:
		return val.MarshalJSON()
	case Object:
		return val.MarshalJSON()
	default:
		return nil, fmt.Errorf("unknown Value type: %T", v)
	}
}

func marshalFloat(f float64) ([]byte, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("non-finite float %v cannot be serialized", f)
	}
	// encoding/json formats floats the way ECMAScript does.
	return json.Marshal(f)
}

// UnmarshalJSON implements json.Unmarshaler for Object.
func (obj *Object) UnmarshalJSON(data []byte) error {
	v, err := UnmarshalValue(data)
	if err != nil {
		return err
	}
	o, ok := v.(Object)
	if !ok {
		return fmt.Errorf("expected JSON object, got %T", v)
	}
	*obj = o
	return nil
}

// UnmarshalJSON implements json.Unmarshaler for Array.
func (arr *Array) UnmarshalJSON(data []byte) error {
	v, err := UnmarshalValue(data)
	if err != nil {
		return err
	}
	a, ok := v.(Array)
	if !ok {
		return fmt.Errorf("expected JSON array, got %T", v)
	}
	*arr = a
	return nil
}

// UnmarshalValue decodes JSON into a Value. Integral number literals become
// Int; anything with a fraction or exponent becomes Float.
func UnmarshalValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return convertJSON(raw)
}

func convertJSON(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return Int(n), nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %s: %w", val, err)
		}
		return Float(f), nil
	case []any:
		arr := make(Array, len(val))
		for i, elem := range val {
			conv, err := convertJSON(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = conv
		}
		return arr, nil
	case map[string]any:
		obj := make(Object, len(val))
		for k, elem := range val {
			conv, err := convertJSON(elem)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			obj[k] = conv
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported JSON type: %T", v)
	}
}

// FromGo converts a Go argument into a Value.
//
// Correlated handles become {"correlationId": id}. Typed numeric slices
// become arrays of numbers. float32 values keep their shortest decimal
// form, so float32(0.1) serializes as 0.1. A handle without a
// correlation id, or any type not listed here, is an unsupported payload.
func FromGo(v any) (Value, error) {
	if v == nil || isNilPointer(v) {
		return Null{}, nil
	}

	switch val := v.(type) {
	case Value:
		return val, nil
	case Correlated:
		id := val.CorrelationID()
		if id <= 0 {
			return nil, NewUnsupportedPayloadError("", fmt.Sprintf("%T has no correlation id", v))
		}
		return Object{CorrelationKey: Int(id)}, nil
	case string:
		return String(val), nil
	case bool:
		return Bool(val), nil
	case int:
		return Int(val), nil
	case int8:
		return Int(val), nil
	case int16:
		return Int(val), nil
	case int32:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint:
		return Int(val), nil
	case uint8:
		return Int(val), nil
	case uint16:
		return Int(val), nil
	case uint32:
		return Int(val), nil
	case uint64:
		if val > math.MaxInt64 {
			return nil, NewUnsupportedPayloadError("", fmt.Sprintf("uint64 %d overflows int64", val))
		}
		return Int(val), nil
	case float32:
		return float32Value(val)
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil, NewUnsupportedPayloadError("", fmt.Sprintf("non-finite float %v", val))
		}
		return Float(val), nil
	case []float32:
		arr := make(Array, len(val))
		for i, f := range val {
			fv, err := float32Value(f)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			arr[i] = fv
		}
		return arr, nil
	case []float64:
		return sliceOf(val, func(f float64) (Value, error) { return FromGo(f) })
	case []uint16:
		return sliceOf(val, func(n uint16) (Value, error) { return Int(n), nil })
	case []int16:
		return sliceOf(val, func(n int16) (Value, error) { return Int(n), nil })
	case []int32:
		return sliceOf(val, func(n int32) (Value, error) { return Int(n), nil })
	case []uint32:
		return sliceOf(val, func(n uint32) (Value, error) { return Int(n), nil })
	case []uint8:
		return sliceOf(val, func(n uint8) (Value, error) { return Int(n), nil })
	case []int:
		return sliceOf(val, func(n int) (Value, error) { return Int(n), nil })
	case []string:
		return sliceOf(val, func(s string) (Value, error) { return String(s), nil })
	case []any:
		return sliceOf(val, FromGo)
	case map[string]any:
		obj := make(Object, len(val))
		for k, elem := range val {
			conv, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("[%q]: %w", k, err)
			}
			obj[k] = conv
		}
		return obj, nil
	}

	return fromKind(v)
}

// fromKind handles named types (gl.Enum and friends) by their underlying kind.
func fromKind(v any) (Value, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, NewUnsupportedPayloadError("", fmt.Sprintf("%T %d overflows int64", v, u))
		}
		return Int(u), nil
	case reflect.Float32:
		return float32Value(float32(rv.Float()))
	case reflect.Float64:
		return FromGo(rv.Float())
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.String:
		return String(rv.String()), nil
	}
	return nil, NewUnsupportedPayloadError("", fmt.Sprintf("cannot serialize argument of type %T", v))
}

func float32Value(f float32) (Value, error) {
	if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
		return nil, NewUnsupportedPayloadError("", fmt.Sprintf("non-finite float %v", f))
	}
	short, err := strconv.ParseFloat(strconv.FormatFloat(float64(f), 'g', -1, 32), 64)
	if err != nil {
		return nil, err
	}
	return Float(short), nil
}

func sliceOf[T any](in []T, conv func(T) (Value, error)) (Value, error) {
	arr := make(Array, len(in))
	for i, elem := range in {
		v, err := conv(elem)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		arr[i] = v
	}
	return arr, nil
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func:
		return rv.IsNil()
	}
	return false
}

// ToGo converts a Value into plain Go data: nil, string, int64, float64,
// bool, []any or map[string]any.
func ToGo(v Value) any {
	switch val := v.(type) {
	case nil, Null:
		return nil
	case String:
		return string(val)
	case Int:
		return int64(val)
	case Float:
		return float64(val)
	case Bool:
		return bool(val)
	case Array:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = ToGo(elem)
		}
		return out
	case Object:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = ToGo(elem)
		}
		return out
	}
	return nil
}
