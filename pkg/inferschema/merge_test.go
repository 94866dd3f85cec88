package inferschema

import (
	"strings"
	"testing"
)

func inferAll(t *testing.T, inputs ...string) []*Fragment {
	t.Helper()
	frags := make([]*Fragment, 0, len(inputs))
	for _, in := range inputs {
		frags = append(frags, Infer(decode(t, in), nil))
	}
	return frags
}

func TestMerge_SingleFragment(t *testing.T) {
	frags := inferAll(t, `{"a": 1}`)
	merged := Merge(frags)

	if got, want := marshalFragment(t, merged), marshalFragment(t, frags[0]); got != want {
		t.Errorf("Merge of one fragment = %s, want unchanged %s", got, want)
	}
}

func TestMerge_MissingKeyBecomesOptional(t *testing.T) {
	merged := Merge(inferAll(t, `{"a": 1}`, `{"a": 2, "b": "x"}`))

	if len(merged.Required) != 1 || merged.Required[0] != "a" {
		t.Errorf("required = %v, want [a]", merged.Required)
	}

	b, _ := merged.Properties.Get("b")
	if b == nil {
		t.Fatal("missing property b")
	}
	if len(b.Type) != 2 || b.Type[0] != TypeString || b.Type[1] != TypeNull {
		t.Errorf("b type = %v, want [string null]", b.Type)
	}
	if b.Description != "String value (optional/nullable)" {
		t.Errorf("b description = %q, want nullable marker appended", b.Description)
	}
}

func TestMerge_ExplicitNull(t *testing.T) {
	merged := Merge(inferAll(t, `{"v": null}`, `{"v": "x"}`))

	// Present in every sample, so still required despite being nullable.
	if len(merged.Required) != 1 || merged.Required[0] != "v" {
		t.Errorf("required = %v, want [v]", merged.Required)
	}

	v, _ := merged.Properties.Get("v")
	if len(v.Type) != 2 || v.Type[0] != TypeString || v.Type[1] != TypeNull {
		t.Errorf("v type = %v, want [string null]", v.Type)
	}
	if !strings.HasSuffix(v.Description, " (optional/nullable)") {
		t.Errorf("v description = %q, want nullable marker", v.Description)
	}
}

func TestMerge_AllNull(t *testing.T) {
	merged := Merge(inferAll(t, `{"v": null}`, `{"v": null}`))

	v, _ := merged.Properties.Get("v")
	if len(v.Type) != 1 || v.Type[0] != TypeNull {
		t.Errorf("v type = %v, want [null]", v.Type)
	}
	if v.Description != "Null value" {
		t.Errorf("v description = %q, want representative kept as-is", v.Description)
	}
	if len(merged.Required) != 1 || merged.Required[0] != "v" {
		t.Errorf("required = %v, want [v]", merged.Required)
	}
}

func TestMerge_TypeUnionSortedLexicographically(t *testing.T) {
	merged := Merge(inferAll(t, `{"v": "s"}`, `{"v": 1}`, `{"v": true}`))

	v, _ := merged.Properties.Get("v")
	if len(v.Type) != 0 {
		t.Errorf("union fragment should carry anyOf, not type, got %v", v.Type)
	}
	want := []Type{TypeBoolean, TypeInteger, TypeString}
	if len(v.AnyOf) != len(want) {
		t.Fatalf("anyOf count = %d, want %d", len(v.AnyOf), len(want))
	}
	for i, branch := range v.AnyOf {
		if len(branch.Type) != 1 || branch.Type[0] != want[i] {
			t.Errorf("anyOf[%d] = %v, want %v", i, branch.Type, want[i])
		}
	}
	if v.Description != "String value, Integer value, Boolean value" {
		t.Errorf("description = %q, want first-seen comma join", v.Description)
	}
}

func TestMerge_UnionWithNull(t *testing.T) {
	merged := Merge(inferAll(t, `{"v": 1}`, `{"v": "s"}`, `{"x": true}`))

	v, _ := merged.Properties.Get("v")
	// integer, string sorted, then the null branch appended last.
	if len(v.AnyOf) != 3 {
		t.Fatalf("anyOf count = %d, want 3", len(v.AnyOf))
	}
	last := v.AnyOf[2]
	if len(last.Type) != 1 || last.Type[0] != TypeNull {
		t.Errorf("anyOf[2] = %v, want null branch", last.Type)
	}
}

func TestMerge_NestedObjects(t *testing.T) {
	merged := Merge(inferAll(t,
		`{"user": {"id": 1, "email": "a@b.co"}}`,
		`{"user": {"id": 2}}`,
	))

	user, _ := merged.Properties.Get("user")
	if user == nil || !user.Type.Contains(TypeObject) {
		t.Fatalf("user = %+v, want merged object", user)
	}
	if len(user.Required) != 1 || user.Required[0] != "id" {
		t.Errorf("user required = %v, want [id]", user.Required)
	}
	email, _ := user.Properties.Get("email")
	if email == nil || !email.Type.Contains(TypeNull) {
		t.Errorf("email = %+v, want nullable", email)
	}
}

func TestMerge_NullableNestedObject(t *testing.T) {
	merged := Merge(inferAll(t,
		`{"meta": {"k": "v"}}`,
		`{"meta": null}`,
	))

	meta, _ := merged.Properties.Get("meta")
	if len(meta.Type) != 2 || meta.Type[0] != TypeObject || meta.Type[1] != TypeNull {
		t.Errorf("meta type = %v, want [object null]", meta.Type)
	}
	if !strings.HasSuffix(meta.Description, " (optional/nullable)") {
		t.Errorf("meta description = %q, want nullable marker", meta.Description)
	}
	if meta.Properties == nil {
		t.Error("meta should keep its nested properties")
	}
}

func TestMerge_MarkerIdempotent(t *testing.T) {
	once := Merge(inferAll(t, `{"a": 1}`, `{"b": 2}`))
	twice := Merge([]*Fragment{once, once})

	a, _ := twice.Properties.Get("a")
	if strings.Count(a.Description, "(optional/nullable)") != 1 {
		t.Errorf("a description = %q, want exactly one marker", a.Description)
	}
}

func TestMerge_KeyOrderFirstSeen(t *testing.T) {
	merged := Merge(inferAll(t, `{"b": 1, "a": 2}`, `{"c": 3, "a": 4}`))

	var keys []string
	for pair := merged.Properties.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	want := []string{"b", "a", "c"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
	if len(merged.Required) != 1 || merged.Required[0] != "a" {
		t.Errorf("required = %v, want [a]", merged.Required)
	}
}

func TestMerge_EmptyInput(t *testing.T) {
	merged := Merge(nil)
	if !merged.Type.Contains(TypeObject) {
		t.Errorf("type = %v, want object", merged.Type)
	}
	if merged.Required != nil {
		t.Errorf("required = %v, want empty", merged.Required)
	}
	if merged.Properties.Len() != 0 {
		t.Errorf("properties = %d entries, want none", merged.Properties.Len())
	}
}

func TestMerge_TypelessFragmentSkipped(t *testing.T) {
	// A property fragment without a type counts for presence but
	// contributes nothing to the type or nullability tallies.
	makeFrag := func(propFrag *Fragment) *Fragment {
		props := NewProperties()
		props.Set("v", propFrag)
		return &Fragment{Type: TypeSet{TypeObject}, Properties: props}
	}

	merged := Merge([]*Fragment{
		makeFrag(&Fragment{Description: "no type at all"}),
		makeFrag(&Fragment{Type: TypeSet{TypeInteger}, Description: "Integer value"}),
	})

	if len(merged.Required) != 1 || merged.Required[0] != "v" {
		t.Errorf("required = %v, want [v]", merged.Required)
	}

	v, _ := merged.Properties.Get("v")
	if len(v.Type) != 1 || v.Type[0] != TypeInteger {
		t.Errorf("v type = %v, want [integer] with the typeless fragment skipped", v.Type)
	}
	if strings.Contains(v.Description, "(optional/nullable)") {
		t.Errorf("v description = %q, typeless fragments must not imply nullability", v.Description)
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	frags := inferAll(t, `{"a": 1}`, `{"a": null}`)
	before := marshalFragment(t, frags[1])

	Merge(frags)

	if after := marshalFragment(t, frags[1]); after != before {
		t.Errorf("input fragment mutated: %s -> %s", before, after)
	}
}
