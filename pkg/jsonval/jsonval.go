// Package jsonval provides a closed, order-preserving representation of JSON
// values. Decoding keeps object key order and distinguishes integers from
// floating-point numbers by their literal form, which plain map[string]any
// decoding loses.
package jsonval

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies which JSON kind a Value holds.
type Kind int

// The closed set of JSON kinds. KindInvalid is the zero value and marks a
// Value that was never constructed from JSON data.
const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindInteger
	KindNumber
	KindString
	KindArray
	KindObject
)

// SchemaType returns the JSON-Schema primitive name for the kind. This is the
// single mapping table shared by the type-structure summarizer and the schema
// inference engine, so the two passes cannot drift apart.
func (k Kind) SchemaType() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return ""
	}
}

func (k Kind) String() string {
	if s := k.SchemaType(); s != "" {
		return s
	}
	return "invalid"
}

// Object is an insertion-ordered string-to-Value map.
type Object = orderedmap.OrderedMap[string, Value]

// NewObject creates an empty ordered object map.
func NewObject() *Object {
	return orderedmap.New[string, Value]()
}

// Value is a tagged union over the JSON kinds. The zero Value is invalid.
type Value struct {
	kind Kind
	str  string
	num  json.Number
	bv   bool
	arr  []Value
	obj  *Object
}

// Null returns the JSON null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a JSON boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, bv: b} }

// String returns a JSON string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int returns a JSON integer value.
func Int(i int64) Value {
	return Value{kind: KindInteger, num: json.Number(strconv.FormatInt(i, 10))}
}

// Float returns a JSON number value. Whole-valued floats still classify as
// numbers here; use Number to classify from a literal instead.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}
	}
	return Value{kind: KindNumber, num: json.Number(strconv.FormatFloat(f, 'g', -1, 64))}
}

// Number classifies a JSON number literal as integer or floating-point.
// A literal without '.', 'e' or 'E' is an integer.
func Number(n json.Number) Value {
	if strings.ContainsAny(string(n), ".eE") {
		return Value{kind: KindNumber, num: n}
	}
	return Value{kind: KindInteger, num: n}
}

// Array returns a JSON array value holding the given elements.
func Array(elems ...Value) Value {
	return Value{kind: KindArray, arr: elems}
}

// ObjectValue wraps an ordered map as a JSON object value. A nil map yields
// an empty object.
func ObjectValue(obj *Object) Value {
	if obj == nil {
		obj = NewObject()
	}
	return Value{kind: KindObject, obj: obj}
}

// Kind reports the kind held by the value.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether the value holds any JSON kind.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// Bool returns the boolean payload. Valid only for KindBool.
func (v Value) Bool() bool { return v.bv }

// Str returns the string payload. Valid only for KindString.
func (v Value) Str() string { return v.str }

// Num returns the number literal. Valid for KindInteger and KindNumber.
func (v Value) Num() json.Number { return v.num }

// Elems returns the array elements. Valid only for KindArray.
func (v Value) Elems() []Value { return v.arr }

// Obj returns the ordered object map. Valid only for KindObject; never nil
// for object values produced by this package.
func (v Value) Obj() *Object { return v.obj }

// Len returns the element count for arrays and the key count for objects,
// and 0 for every other kind.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return v.obj.Len()
	default:
		return 0
	}
}

// Decode parses a single JSON value from data, preserving object key order.
// Trailing non-whitespace content is an error.
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("trailing content after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("expected object key, got %v", keyTok)
				}
				child, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				obj.Set(key, child)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Value{kind: KindObject, obj: obj}, nil

		case '[':
			elems := []Value{}
			for dec.More() {
				child, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				elems = append(elems, child)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Value{kind: KindArray, arr: elems}, nil
		}
		return Value{}, fmt.Errorf("unexpected delimiter %q", t.String())

	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

// FromAny converts a value produced by generic JSON decoding (or by jq
// evaluation) into a Value. Go maps carry no order, so object keys are
// sorted lexicographically for deterministic downstream output. Values
// outside the JSON domain (NaN, channels, ...) yield an invalid Value.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case json.Number:
		return Number(t)
	case int:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint64:
		return Value{kind: KindInteger, num: json.Number(strconv.FormatUint(t, 10))}
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return Value{}
		}
		if math.Trunc(t) == t {
			return Value{kind: KindInteger, num: json.Number(strconv.FormatFloat(t, 'f', -1, 64))}
		}
		return Value{kind: KindNumber, num: json.Number(strconv.FormatFloat(t, 'g', -1, 64))}
	case []any:
		elems := make([]Value, 0, len(t))
		for _, e := range t {
			elems = append(elems, FromAny(e))
		}
		return Value{kind: KindArray, arr: elems}
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			obj.Set(k, FromAny(t[k]))
		}
		return Value{kind: KindObject, obj: obj}
	case Value:
		return t
	default:
		return Value{}
	}
}

// Interface converts the value into the generic representation used by
// encoding/json and the JSON-Schema validator: nil, bool, json.Number,
// string, []any and map[string]any. Key order is lost.
func (v Value) Interface() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.bv
	case KindInteger, KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindArray:
		out := make([]any, 0, len(v.arr))
		for _, e := range v.arr {
			out = append(out, e.Interface())
		}
		return out
	case KindObject:
		out := make(map[string]any, v.obj.Len())
		for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
			out[pair.Key] = pair.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON serializes the value, preserving object key order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		if v.bv {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case KindInteger, KindNumber:
		if v.num == "" {
			return []byte("0"), nil
		}
		return []byte(v.num), nil
	case KindString:
		return json.Marshal(v.str)
	case KindArray:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := e.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindObject:
		var buf bytes.Buffer
		buf.WriteByte('{')
		first := true
		for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			kb, err := json.Marshal(pair.Key)
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			vb, err := pair.Value.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(vb)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("cannot marshal invalid value")
	}
}

// UnmarshalJSON decodes a single JSON value via Decode.
func (v *Value) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}
