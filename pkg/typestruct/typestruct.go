// Package typestruct mirrors a JSON value into a structure of type names,
// producing the human-readable type report: objects keep their keys, arrays
// collapse to their first element's summary, scalars become their type tag.
package typestruct

import (
	"bytes"
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/fwerner/schemaprobe/pkg/jsonval"
)

// Tags emitted for positions that have no JSON-Schema primitive name.
const (
	// TagEmptyList marks an array that had no elements to summarize.
	TagEmptyList = "empty_list"
	// TagUnknown is the fallback for values outside the JSON kinds.
	TagUnknown = "unknown"
)

// Node is one position of the mirrored type structure. Exactly one of the
// three shapes is populated: an object mapping, a one-element array, or a
// scalar tag.
type Node struct {
	obj  *orderedmap.OrderedMap[string, Node]
	elem *Node
	tag  string
}

// Tag returns the scalar tag, or "" for object and array nodes.
func (n Node) Tag() string { return n.tag }

// Object returns the per-key child summaries, or nil for non-object nodes.
func (n Node) Object() *orderedmap.OrderedMap[string, Node] { return n.obj }

// Elem returns the representative element summary, or nil for non-array nodes.
func (n Node) Elem() *Node { return n.elem }

// Summarize walks a JSON value and produces its mirrored type structure.
// Arrays are summarized by their first element only; heterogeneous arrays
// are therefore under-reported, a known limitation kept for parity with the
// schema inference pass. Total over every Value, including invalid ones.
func Summarize(v jsonval.Value) Node {
	switch v.Kind() {
	case jsonval.KindObject:
		obj := orderedmap.New[string, Node]()
		for pair := v.Obj().Oldest(); pair != nil; pair = pair.Next() {
			obj.Set(pair.Key, Summarize(pair.Value))
		}
		return Node{obj: obj}

	case jsonval.KindArray:
		elems := v.Elems()
		if len(elems) == 0 {
			return Node{elem: &Node{tag: TagEmptyList}}
		}
		first := Summarize(elems[0])
		return Node{elem: &first}

	case jsonval.KindNull, jsonval.KindBool, jsonval.KindInteger,
		jsonval.KindNumber, jsonval.KindString:
		return Node{tag: v.Kind().SchemaType()}

	default:
		return Node{tag: TagUnknown}
	}
}

// MarshalJSON serializes the node as the mirrored structure: objects as
// JSON objects, arrays as one-element JSON arrays, scalars as tag strings.
func (n Node) MarshalJSON() ([]byte, error) {
	switch {
	case n.obj != nil:
		var buf bytes.Buffer
		buf.WriteByte('{')
		first := true
		for pair := n.obj.Oldest(); pair != nil; pair = pair.Next() {
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

	case n.elem != nil:
		var buf bytes.Buffer
		buf.WriteByte('[')
		eb, err := n.elem.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(eb)
		buf.WriteByte(']')
		return buf.Bytes(), nil

	default:
		return json.Marshal(n.tag)
	}
}
