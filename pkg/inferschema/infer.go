// Package inferschema derives JSON-Schema documents from sample JSON values:
// per-node schema fragments, and for arrays of similarly-shaped objects a
// merged schema capturing the union of shapes, optional/nullable fields and
// multi-type unions. All operations are pure and total over the JSON value
// domain; degenerate inputs resolve by policy rather than by error.
package inferschema

import (
	"github.com/fwerner/schemaprobe/pkg/jsonval"
)

// Descriptions maps property names to human-readable description overrides.
// Overrides apply at the object level currently being constructed and are
// threaded through arrays into their element objects; they never override a
// description the inference itself produced (scalar fragments keep their
// "<Tag> value" text).
type Descriptions map[string]string

// Infer derives a schema fragment for a JSON value. Every key of a single
// object sample is required; optionality only emerges when multiple samples
// are merged. Arrays whose elements are all objects are merged; arrays with
// mixed or non-object elements are described by their first element only,
// a known limitation kept deliberately.
func Infer(v jsonval.Value, desc Descriptions) *Fragment {
	switch v.Kind() {
	case jsonval.KindObject:
		return inferObject(v, desc)
	case jsonval.KindArray:
		return inferArray(v, desc)
	case jsonval.KindString:
		return &Fragment{Type: TypeSet{TypeString}, Description: "String value"}
	case jsonval.KindBool:
		return &Fragment{Type: TypeSet{TypeBoolean}, Description: "Boolean value"}
	case jsonval.KindInteger:
		return &Fragment{Type: TypeSet{TypeInteger}, Description: "Integer value"}
	case jsonval.KindNumber:
		return &Fragment{Type: TypeSet{TypeNumber}, Description: "Number value"}
	case jsonval.KindNull:
		return &Fragment{Type: TypeSet{TypeNull}, Description: "Null value"}
	default:
		return &Fragment{Type: TypeSet{TypeString}, Description: "Unknown type"}
	}
}

func inferObject(v jsonval.Value, desc Descriptions) *Fragment {
	props := NewProperties()
	required := make([]string, 0, v.Len())

	for pair := v.Obj().Oldest(); pair != nil; pair = pair.Next() {
		child := Infer(pair.Value, nil)
		if child.Description == "" {
			if d := desc[pair.Key]; d != "" {
				child.Description = d
			} else {
				child.Description = "Description for " + pair.Key
			}
		}
		props.Set(pair.Key, child)
		required = append(required, pair.Key)
	}

	f := &Fragment{Type: TypeSet{TypeObject}, Properties: props}
	if len(required) > 0 {
		f.Required = required
	}
	return f
}

func inferArray(v jsonval.Value, desc Descriptions) *Fragment {
	elems := v.Elems()
	if len(elems) == 0 {
		return &Fragment{Type: TypeSet{TypeArray}, Items: &Fragment{}}
	}

	if allObjects(elems) {
		frags := make([]*Fragment, 0, len(elems))
		for _, e := range elems {
			frags = append(frags, Infer(e, desc))
		}
		return &Fragment{Type: TypeSet{TypeArray}, Items: Merge(frags)}
	}

	// Mixed or non-object elements: the first element stands in for all.
	return &Fragment{Type: TypeSet{TypeArray}, Items: Infer(elems[0], desc)}
}

func allObjects(values []jsonval.Value) bool {
	for _, v := range values {
		if v.Kind() != jsonval.KindObject {
			return false
		}
	}
	return true
}
