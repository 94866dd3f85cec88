package inferschema

import (
	"encoding/json"
	"testing"

	"github.com/fwerner/schemaprobe/pkg/jsonval"
)

func decode(t *testing.T, input string) jsonval.Value {
	t.Helper()
	v, err := jsonval.Decode([]byte(input))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return v
}

func marshalFragment(t *testing.T, f *Fragment) string {
	t.Helper()
	b, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	return string(b)
}

func TestInfer_Scalars(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		expected string
	}{
		{"string", `"hello"`, `{"type":"string","description":"String value"}`},
		{"integer", `42`, `{"type":"integer","description":"Integer value"}`},
		{"float", `3.14`, `{"type":"number","description":"Number value"}`},
		{"boolean", `true`, `{"type":"boolean","description":"Boolean value"}`},
		{"null", `null`, `{"type":"null","description":"Null value"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := marshalFragment(t, Infer(decode(t, tt.json), nil))
			if got != tt.expected {
				t.Errorf("Infer(%s) = %s, want %s", tt.json, got, tt.expected)
			}
		})
	}
}

func TestInfer_ObjectDefaultsDescriptions(t *testing.T) {
	f := Infer(decode(t, `{"name": "Alice", "age": 30}`), nil)

	if !f.Type.Contains(TypeObject) {
		t.Fatalf("type = %v, want object", f.Type)
	}

	name, ok := f.Properties.Get("name")
	if !ok {
		t.Fatal("missing property name")
	}
	if name.Description != "String value" {
		t.Errorf("name description = %q, want scalar description to win", name.Description)
	}

	if got, want := len(f.Required), 2; got != want {
		t.Fatalf("required count = %d, want %d", got, want)
	}
	if f.Required[0] != "name" || f.Required[1] != "age" {
		t.Errorf("required = %v, want key order [name age]", f.Required)
	}
}

func TestInfer_DescriptionPrecedence(t *testing.T) {
	// Scalar descriptions produced by inference always win; overrides and
	// generated defaults only fill empty descriptions.
	desc := Descriptions{"x": "custom x", "o": "the o object"}
	f := Infer(decode(t, `{"x": 1, "o": {"y": true}}`), desc)

	x, _ := f.Properties.Get("x")
	if x.Description != "Integer value" {
		t.Errorf("x description = %q, want %q", x.Description, "Integer value")
	}

	o, _ := f.Properties.Get("o")
	if o.Description != "the o object" {
		t.Errorf("o description = %q, want override %q", o.Description, "the o object")
	}

	y, _ := o.Properties.Get("y")
	if y.Description != "Boolean value" {
		t.Errorf("y description = %q, want %q", y.Description, "Boolean value")
	}
}

func TestInfer_ObjectChildDefault(t *testing.T) {
	f := Infer(decode(t, `{"meta": {}}`), nil)

	meta, _ := f.Properties.Get("meta")
	if meta.Description != "Description for meta" {
		t.Errorf("meta description = %q, want generated default", meta.Description)
	}
	if meta.Required != nil {
		t.Errorf("empty object should have no required, got %v", meta.Required)
	}
}

func TestInfer_EmptyArray(t *testing.T) {
	got := marshalFragment(t, Infer(decode(t, `[]`), nil))
	want := `{"type":"array","items":{}}`
	if got != want {
		t.Errorf("Infer([]) = %s, want %s", got, want)
	}
}

func TestInfer_MixedArrayFirstElement(t *testing.T) {
	f := Infer(decode(t, `[1, "s", true]`), nil)

	if f.Items == nil || !f.Items.Type.Contains(TypeInteger) {
		t.Errorf("items = %+v, want first element's integer schema", f.Items)
	}
}

func TestInfer_ObjectArrayMerged(t *testing.T) {
	f := Infer(decode(t, `[{"id": 1, "name": "a"}, {"id": 2}]`), nil)

	items := f.Items
	if items == nil || !items.Type.Contains(TypeObject) {
		t.Fatalf("items = %+v, want merged object schema", items)
	}
	if len(items.Required) != 1 || items.Required[0] != "id" {
		t.Errorf("required = %v, want [id]", items.Required)
	}

	name, _ := items.Properties.Get("name")
	if name == nil || !name.Type.Contains(TypeNull) {
		t.Errorf("name = %+v, want nullable string", name)
	}
}

func TestInfer_ArrayDescriptionsReachElements(t *testing.T) {
	desc := Descriptions{"tags": "tag list"}
	f := Infer(decode(t, `[{"tags": ["a"]}, {"tags": ["b"]}]`), desc)

	tags, ok := f.Items.Properties.Get("tags")
	if !ok {
		t.Fatal("missing tags property")
	}
	if tags.Description != "tag list" {
		t.Errorf("tags description = %q, want override", tags.Description)
	}
}

func TestInfer_InvalidValue(t *testing.T) {
	f := Infer(jsonval.Value{}, nil)
	if !f.Type.Contains(TypeString) || f.Description != "Unknown type" {
		t.Errorf("fragment = %+v, want string fallback with unknown description", f)
	}
}
