package schemadoc

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/fwerner/schemaprobe/pkg/inferschema"
	"github.com/fwerner/schemaprobe/pkg/jsonval"
)

func TestDocument_MarshalJSON(t *testing.T) {
	v, err := jsonval.Decode([]byte(`{"a": 1}`))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	doc := New(inferschema.Infer(v, nil))

	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	want := `{"$schema":"http://json-schema.org/draft-07/schema#","type":"object","properties":{"a":{"type":"integer","description":"Integer value"}},"required":["a"]}`
	if string(out) != want {
		t.Errorf("document = %s, want %s", out, want)
	}
}

func TestDocument_MarkerComesFirst(t *testing.T) {
	doc := New(&inferschema.Fragment{Type: inferschema.TypeSet{inferschema.TypeString}})
	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if !strings.HasPrefix(string(out), `{"$schema":`) {
		t.Errorf("document = %s, want $schema first", out)
	}
}

func TestDocument_EmptyRoot(t *testing.T) {
	for _, doc := range []*Document{New(nil), New(&inferschema.Fragment{})} {
		out, err := json.Marshal(doc)
		if err != nil {
			t.Fatalf("marshal error: %v", err)
		}
		want := `{"$schema":"http://json-schema.org/draft-07/schema#"}`
		if string(out) != want {
			t.Errorf("document = %s, want %s", out, want)
		}
	}
}

func TestDocument_RoundTripsThroughGenericDecode(t *testing.T) {
	v, err := jsonval.Decode([]byte(`[{"x": true}]`))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	doc := New(inferschema.Infer(v, nil))

	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("document is not valid JSON: %v", err)
	}
	if parsed["$schema"] != Draft07 {
		t.Errorf("$schema = %v, want %q", parsed["$schema"], Draft07)
	}
	if parsed["type"] != "array" {
		t.Errorf("type = %v, want array", parsed["type"])
	}
}
