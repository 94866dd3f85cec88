// Package schemadoc assembles a root schema fragment into a standalone
// JSON-Schema document. The inference core never attaches the "$schema"
// marker itself; that is this caller-side step.
package schemadoc

import (
	"bytes"
	"encoding/json"

	"github.com/fwerner/schemaprobe/pkg/inferschema"
)

// Draft07 is the dialect marker attached to emitted documents.
const Draft07 = "http://json-schema.org/draft-07/schema#"

// Document is a root schema fragment plus its dialect marker.
type Document struct {
	Schema string
	Root   *inferschema.Fragment
}

// New wraps a root fragment into a Draft-07 document.
func New(root *inferschema.Fragment) *Document {
	return &Document{Schema: Draft07, Root: root}
}

// MarshalJSON emits the "$schema" marker first, followed by the root
// fragment's own members in their usual order.
func (d *Document) MarshalJSON() ([]byte, error) {
	marker, err := json.Marshal(d.Schema)
	if err != nil {
		return nil, err
	}

	root := d.Root
	if root == nil {
		root = &inferschema.Fragment{}
	}
	body, err := root.MarshalJSON()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`{"$schema":`)
	buf.Write(marker)
	// body is always an object; splice its members after the marker.
	if bytes.Equal(body, []byte("{}")) {
		buf.WriteByte('}')
		return buf.Bytes(), nil
	}
	buf.WriteByte(',')
	buf.Write(body[1:])
	return buf.Bytes(), nil
}
