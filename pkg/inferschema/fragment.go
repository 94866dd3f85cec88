package inferschema

import (
	"bytes"
	"encoding/json"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Type is a JSON-Schema primitive type name.
type Type string

// The seven JSON-Schema primitive types.
const (
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypeNull    Type = "null"
)

// TypeSet is an ordered list of primitive types. A fragment with a single
// type marshals it as a bare string; nullable and multi-typed fields carry
// an array of type names.
type TypeSet []Type

// Contains reports whether t is a member of the set.
func (ts TypeSet) Contains(t Type) bool {
	return slices.Contains(ts, t)
}

// MarshalJSON emits a bare string for a single type and an array otherwise.
func (ts TypeSet) MarshalJSON() ([]byte, error) {
	if len(ts) == 1 {
		return json.Marshal(string(ts[0]))
	}
	names := make([]string, 0, len(ts))
	for _, t := range ts {
		names = append(names, string(t))
	}
	return json.Marshal(names)
}

// Properties is an insertion-ordered property map.
type Properties = orderedmap.OrderedMap[string, *Fragment]

// NewProperties creates an empty ordered property map.
func NewProperties() *Properties {
	return orderedmap.New[string, *Fragment]()
}

// Fragment is a node-local JSON-Schema object describing one position of a
// JSON value. Object fragments carry Properties and Required, array
// fragments carry Items (an empty fragment means unconstrained items), and
// multi-type unions carry AnyOf instead of Type.
type Fragment struct {
	Type        TypeSet
	Description string
	Properties  *Properties
	Items       *Fragment
	AnyOf       []*Fragment
	Required    []string
}

// Clone returns a deep copy of the fragment.
func (f *Fragment) Clone() *Fragment {
	if f == nil {
		return nil
	}
	c := &Fragment{
		Type:        slices.Clone(f.Type),
		Description: f.Description,
		Items:       f.Items.Clone(),
		Required:    slices.Clone(f.Required),
	}
	if f.Properties != nil {
		c.Properties = NewProperties()
		for pair := f.Properties.Oldest(); pair != nil; pair = pair.Next() {
			c.Properties.Set(pair.Key, pair.Value.Clone())
		}
	}
	for _, a := range f.AnyOf {
		c.AnyOf = append(c.AnyOf, a.Clone())
	}
	return c
}

// MarshalJSON serializes the fragment with a fixed key order (type, anyOf,
// description, properties, items, required) so output is reproducible.
// Empty members are omitted, except Items which stays as {} to mark
// unconstrained array items.
func (f *Fragment) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true

	writeKey := func(key string) {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.WriteByte('"')
		buf.WriteString(key)
		buf.WriteString(`":`)
	}

	if len(f.Type) > 0 {
		writeKey("type")
		b, err := f.Type.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}

	if len(f.AnyOf) > 0 {
		writeKey("anyOf")
		buf.WriteByte('[')
		for i, a := range f.AnyOf {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := a.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
	}

	if f.Description != "" {
		writeKey("description")
		b, err := json.Marshal(f.Description)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}

	if f.Properties != nil {
		writeKey("properties")
		buf.WriteByte('{')
		pfirst := true
		for pair := f.Properties.Oldest(); pair != nil; pair = pair.Next() {
			if !pfirst {
				buf.WriteByte(',')
			}
			pfirst = false
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
	}

	if f.Items != nil {
		writeKey("items")
		b, err := f.Items.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}

	if len(f.Required) > 0 {
		writeKey("required")
		b, err := json.Marshal(f.Required)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
