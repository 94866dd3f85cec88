package inferschema

import (
	"slices"

	"github.com/invopop/jsonschema"
)

// ToDraft2020 converts a fragment into an invopop/jsonschema Schema for
// interop with Draft 2020-12 tooling. That model represents type as a single
// string, so multi-type sets (nullable fields) are lowered to anyOf unions.
func ToDraft2020(f *Fragment) *jsonschema.Schema {
	if f == nil {
		return nil
	}

	s := &jsonschema.Schema{Description: f.Description}

	switch {
	case len(f.AnyOf) > 0:
		for _, a := range f.AnyOf {
			s.AnyOf = append(s.AnyOf, ToDraft2020(a))
		}
	case len(f.Type) == 1:
		s.Type = string(f.Type[0])
	case len(f.Type) > 1:
		for _, t := range f.Type {
			s.AnyOf = append(s.AnyOf, &jsonschema.Schema{Type: string(t)})
		}
	}

	if f.Properties != nil {
		s.Properties = jsonschema.NewProperties()
		for pair := f.Properties.Oldest(); pair != nil; pair = pair.Next() {
			s.Properties.Set(pair.Key, ToDraft2020(pair.Value))
		}
	}
	if f.Items != nil {
		s.Items = ToDraft2020(f.Items)
	}
	if len(f.Required) > 0 {
		s.Required = slices.Clone(f.Required)
	}

	return s
}
