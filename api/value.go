package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
)

// ValueKind is the type tag of a Value.
type ValueKind int

const (
	NullValue ValueKind = iota
	BoolValue
	NumberValue
	StringValue
	ArrayValue
	ObjectValue
)

func (k ValueKind) String() string {
	switch k {
	case NullValue:
		return "null"
	case BoolValue:
		return "bool"
	case NumberValue:
		return "number"
	case StringValue:
		return "string"
	case ArrayValue:
		return "array"
	case ObjectValue:
		return "object"
	default:
		return "invalid"
	}
}

// Value is a JSON value. The zero value is null.
//
// Numbers keep their original text so large integers such as wei amounts
// survive a decode/encode round trip unchanged.
type Value struct {
	kind ValueKind
	b    bool
	s    string // string contents or number literal
	arr  []Value
	obj  map[string]Value
}

// Null returns the JSON null value.
func Null() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: BoolValue, b: b} }

// Number wraps a number literal. The literal is validated when the value is encoded.
func Number(n json.Number) Value { return Value{kind: NumberValue, s: string(n)} }

// Int wraps an integer.
func Int(i int64) Value { return Value{kind: NumberValue, s: strconv.FormatInt(i, 10)} }

// Float wraps a float. NaN and infinities cannot be encoded.
func Float(f float64) Value {
	return Value{kind: NumberValue, s: strconv.FormatFloat(f, 'g', -1, 64)}
}

// String wraps a string.
func String(s string) Value { return Value{kind: StringValue, s: s} }

// Array wraps a list of values.
func Array(items ...Value) Value {
	arr := make([]Value, len(items))
	copy(arr, items)
	return Value{kind: ArrayValue, arr: arr}
}

// Object wraps a set of members. The map is copied.
func Object(members map[string]Value) Value {
	obj := make(map[string]Value, len(members))
	for k, v := range members {
		obj[k] = v
	}
	return Value{kind: ObjectValue, obj: obj}
}

// ValueOf converts a Go value built from nil, bool, string, json.Number,
// integer and float types, slices and string-keyed maps into a Value.
func ValueOf(v interface{}) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case int:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return Value{kind: NumberValue, s: strconv.FormatUint(uint64(t), 10)}, nil
	case uint32:
		return Value{kind: NumberValue, s: strconv.FormatUint(uint64(t), 10)}, nil
	case uint64:
		return Value{kind: NumberValue, s: strconv.FormatUint(t, 10)}, nil
	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil
	case []interface{}:
		arr := make([]Value, 0, len(t))
		for i, item := range t {
			val, err := ValueOf(item)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			arr = append(arr, val)
		}
		return Value{kind: ArrayValue, arr: arr}, nil
	case map[string]interface{}:
		obj := make(map[string]Value, len(t))
		for k, item := range t {
			val, err := ValueOf(item)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			obj[k] = val
		}
		return Value{kind: ObjectValue, obj: obj}, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		arr := make([]Value, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			val, err := ValueOf(rv.Index(i).Interface())
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			arr = append(arr, val)
		}
		return Value{kind: ArrayValue, arr: arr}, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Value{}, fmt.Errorf("unsupported map key type %s", rv.Type().Key())
		}
		obj := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			val, err := ValueOf(iter.Value().Interface())
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", iter.Key().String(), err)
			}
			obj[iter.Key().String()] = val
		}
		return Value{kind: ObjectValue, obj: obj}, nil
	}
	return Value{}, fmt.Errorf("unsupported type %T", v)
}

// ParseValue decodes exactly one JSON document.
func ParseValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("unexpected data after JSON value")
	}
	return ValueOf(raw)
}

// Kind returns the type tag.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == NullValue }

func (v Value) AsBool() (bool, bool) { return v.b, v.kind == BoolValue }

func (v Value) AsString() (string, bool) { return v.s, v.kind == StringValue }

func (v Value) AsNumber() (json.Number, bool) { return json.Number(v.s), v.kind == NumberValue }

func (v Value) AsArray() ([]Value, bool) { return v.arr, v.kind == ArrayValue }

func (v Value) AsObject() (map[string]Value, bool) { return v.obj, v.kind == ObjectValue }

// Get returns the member key of an object, or null.
func (v Value) Get(key string) Value {
	if v.kind != ObjectValue {
		return Null()
	}
	return v.obj[key]
}

// Has reports whether v is an object with member key.
func (v Value) Has(key string) bool {
	if v.kind != ObjectValue {
		return false
	}
	_, ok := v.obj[key]
	return ok
}

// Index returns element i of an array, or null when out of range.
func (v Value) Index(i int) Value {
	if v.kind != ArrayValue || i < 0 || i >= len(v.arr) {
		return Null()
	}
	return v.arr[i]
}

// Len returns the number of array elements or object members.
func (v Value) Len() int {
	switch v.kind {
	case ArrayValue:
		return len(v.arr)
	case ObjectValue:
		return len(v.obj)
	default:
		return 0
	}
}

// Interface converts v back to plain Go values. Numbers become json.Number.
func (v Value) Interface() interface{} {
	switch v.kind {
	case BoolValue:
		return v.b
	case NumberValue:
		return json.Number(v.s)
	case StringValue:
		return v.s
	case ArrayValue:
		arr := make([]interface{}, len(v.arr))
		for i, item := range v.arr {
			arr[i] = item.Interface()
		}
		return arr
	case ObjectValue:
		obj := make(map[string]interface{}, len(v.obj))
		for k, item := range v.obj {
			obj[k] = item.Interface()
		}
		return obj
	default:
		return nil
	}
}

// Equal reports whether v and other hold the same JSON value. Numbers compare
// by literal text.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case NullValue:
		return true
	case BoolValue:
		return v.b == other.b
	case NumberValue, StringValue:
		return v.s == other.s
	case ArrayValue:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case ObjectValue:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for k, item := range v.obj {
			o, ok := other.obj[k]
			if !ok || !item.Equal(o) {
				return false
			}
		}
		return true
	}
	return false
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == NumberValue {
		if f, err := strconv.ParseFloat(v.s, 64); err == nil && (math.IsNaN(f) || math.IsInf(f, 0)) {
			return nil, fmt.Errorf("unsupported number %s", v.s)
		}
	}
	return json.Marshal(v.Interface())
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseValue(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// String returns the compact JSON encoding of v.
func (v Value) String() string {
	data, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<invalid json: %v>", err)
	}
	return string(data)
}
