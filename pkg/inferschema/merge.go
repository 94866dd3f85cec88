package inferschema

import (
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// nullableMarker is appended to a field's description when the field is
// optional or null in at least one sample.
const nullableMarker = " (optional/nullable)"

// propAccumulator collects everything known about one property key across
// the N input fragments: which samples carried it, the per-sample fragments
// in input order, the distinct non-null types, and the nullability verdict.
type propAccumulator struct {
	key       string
	presence  *roaring.Bitmap
	fragments []*Fragment
	types     []Type // distinct non-null types, first-seen order
	nullable  bool
	marked    bool // description already carries the nullable marker
}

// Merge reconciles N object fragments into one schema fragment capturing the
// union of their shapes. A key is required exactly when present in all N
// inputs; a key is nullable when some sample typed it null or omitted it
// entirely. Behavior for non-object input fragments is undefined; callers
// filter before merging. Merge never fails: fragments without a type count
// for presence but are skipped during type classification.
func Merge(fragments []*Fragment) *Fragment {
	n := uint64(len(fragments))
	accs := orderedmap.New[string, *propAccumulator]()

	// Collect phase: one pass over all fragments, property order is
	// first-seen across fragments in input order.
	for i, f := range fragments {
		if f == nil || f.Properties == nil {
			continue
		}
		for pair := f.Properties.Oldest(); pair != nil; pair = pair.Next() {
			acc, ok := accs.Get(pair.Key)
			if !ok {
				acc = &propAccumulator{key: pair.Key, presence: roaring.New()}
				accs.Set(pair.Key, acc)
			}
			acc.presence.Add(uint32(i))
			acc.fragments = append(acc.fragments, pair.Value)
			acc.classify(pair.Value)
		}
	}

	// Resolve phase.
	props := NewProperties()
	required := make([]string, 0, accs.Len())
	for pair := accs.Oldest(); pair != nil; pair = pair.Next() {
		acc := pair.Value
		if acc.presence.GetCardinality() < n {
			acc.nullable = true
		}
		props.Set(acc.key, acc.resolve())
		if acc.presence.GetCardinality() == n {
			required = append(required, acc.key)
		}
	}

	merged := &Fragment{Type: TypeSet{TypeObject}, Properties: props}
	if len(required) > 0 {
		merged.Required = required
	}
	return merged
}

// classify folds one per-sample fragment into the type and nullability
// tallies. Fragments with no type at all contribute presence only.
func (acc *propAccumulator) classify(f *Fragment) {
	if strings.HasSuffix(f.Description, nullableMarker) {
		acc.marked = true
	}
	if len(f.Type) == 0 {
		return
	}
	for _, t := range f.Type {
		if t == TypeNull {
			acc.nullable = true
			continue
		}
		if !acc.hasType(t) {
			acc.types = append(acc.types, t)
		}
	}
}

func (acc *propAccumulator) hasType(t Type) bool {
	for _, have := range acc.types {
		if have == t {
			return true
		}
	}
	return false
}

// resolve reduces the accumulator to the merged fragment for this key.
func (acc *propAccumulator) resolve() *Fragment {
	switch {
	case len(acc.types) == 0:
		// Every sample was null (or typeless) for this key.
		return acc.representative().Clone()

	case len(acc.types) == 1 && acc.types[0] == TypeObject && acc.hasNestedProperties():
		merged := Merge(acc.objectFragments())
		if acc.nullable {
			merged.Type = TypeSet{TypeObject, TypeNull}
			acc.markNullable(merged)
		}
		return merged

	case len(acc.types) == 1:
		rep := acc.representative().Clone()
		if !acc.nullable {
			return rep
		}
		rep.Type = TypeSet{acc.types[0], TypeNull}
		acc.markNullable(rep)
		return rep

	default:
		return acc.resolveUnion()
	}
}

// resolveUnion builds an anyOf fragment for keys observed with more than one
// distinct non-null type.
func (acc *propAccumulator) resolveUnion() *Fragment {
	names := make([]string, 0, len(acc.types))
	for _, t := range acc.types {
		names = append(names, string(t))
	}
	sort.Strings(names)

	anyOf := make([]*Fragment, 0, len(names)+1)
	for _, name := range names {
		anyOf = append(anyOf, &Fragment{Type: TypeSet{Type(name)}})
	}
	if acc.nullable {
		anyOf = append(anyOf, &Fragment{Type: TypeSet{TypeNull}})
	}

	desc := acc.joinDescriptions()
	if desc == "" {
		desc = "Multiple types for " + acc.key
	}
	return &Fragment{AnyOf: anyOf, Description: desc}
}

// joinDescriptions comma-joins the distinct non-empty per-sample
// descriptions in first-seen order.
func (acc *propAccumulator) joinDescriptions() string {
	seen := make(map[string]bool)
	parts := make([]string, 0, len(acc.fragments))
	for _, f := range acc.fragments {
		if f.Description == "" || seen[f.Description] {
			continue
		}
		seen[f.Description] = true
		parts = append(parts, f.Description)
	}
	return strings.Join(parts, ", ")
}

// representative picks the fragment that stands in for the merged field:
// the first one in input order carrying a non-null type, else the first
// one with any type, else the first seen.
func (acc *propAccumulator) representative() *Fragment {
	for _, f := range acc.fragments {
		for _, t := range f.Type {
			if t != TypeNull {
				return f
			}
		}
	}
	for _, f := range acc.fragments {
		if len(f.Type) > 0 {
			return f
		}
	}
	if len(acc.fragments) > 0 {
		return acc.fragments[0]
	}
	return &Fragment{}
}

// objectFragments returns the per-sample fragments that are object-typed,
// the inputs for a recursive merge.
func (acc *propAccumulator) objectFragments() []*Fragment {
	out := make([]*Fragment, 0, len(acc.fragments))
	for _, f := range acc.fragments {
		if f.Type.Contains(TypeObject) {
			out = append(out, f)
		}
	}
	return out
}

func (acc *propAccumulator) hasNestedProperties() bool {
	for _, f := range acc.fragments {
		if f.Type.Contains(TypeObject) && f.Properties != nil {
			return true
		}
	}
	return false
}

// markNullable appends the nullable marker to the description exactly once.
// The marked flag is set during the collect phase when an input already
// carries the marker, keeping repeated merges idempotent.
func (acc *propAccumulator) markNullable(f *Fragment) {
	if acc.marked {
		return
	}
	f.Description += nullableMarker
	acc.marked = true
}
