package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, input string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(input), &v))
	return v
}

func TestEngine_Identity(t *testing.T) {
	e := NewEngine()
	res, err := e.Apply(parse(t, `{"a": 1}`), ".", 0)
	require.NoError(t, err)
	assert.Len(t, res.Values, 1)
	assert.Empty(t, res.Errors)
}

func TestEngine_FieldAccess(t *testing.T) {
	e := NewEngine()
	res, err := e.Apply(parse(t, `{"data": {"items": [1, 2, 3]}}`), ".data.items[]", 0)
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 2.0, 3.0}, res.Values)
}

func TestEngine_NullsDropped(t *testing.T) {
	e := NewEngine()
	res, err := e.Apply(parse(t, `[{"v": 1}, {"other": true}]`), ".[].v", 0)
	require.NoError(t, err)
	// The missing field produces null, which is dropped.
	assert.Equal(t, []any{1.0}, res.Values)
}

func TestEngine_MaxResults(t *testing.T) {
	e := NewEngine()
	res, err := e.Apply(parse(t, `[1, 2, 3, 4, 5]`), ".[]", 2)
	require.NoError(t, err)
	assert.Len(t, res.Values, 2)
}

func TestEngine_ItemErrorsCollected(t *testing.T) {
	e := NewEngine()
	// Iterating a scalar is a per-item evaluation error, not an Apply error.
	res, err := e.Apply(parse(t, `42`), ".[]", 0)
	require.NoError(t, err)
	assert.Empty(t, res.Values)
	assert.NotEmpty(t, res.Errors)
}

func TestEngine_InvalidExpression(t *testing.T) {
	e := NewEngine()
	_, err := e.Apply(parse(t, `{}`), ".[", 0)
	assert.Error(t, err)
}

func TestEngine_ValidateExpression(t *testing.T) {
	e := NewEngine()
	assert.NoError(t, e.ValidateExpression(".data[] | select(.id > 1)"))
	assert.Error(t, e.ValidateExpression("..["))
}

func TestEngine_ValuesNeverNil(t *testing.T) {
	e := NewEngine()
	res, err := e.Apply(parse(t, `null`), ".", 0)
	require.NoError(t, err)
	assert.NotNil(t, res.Values)
	assert.Empty(t, res.Values)
}
