package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchUnmarshalJSON(t *testing.T) {
	type payload struct {
		Description Patch[string]  `json:"description"`
		Location    Patch[string]  `json:"location"`
		Pending     Patch[float64] `json:"pending_hours"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"description":"fiber cut","location":null}`), &p))

	v, ok := p.Description.Value()
	assert.True(t, ok)
	assert.Equal(t, "fiber cut", v)

	assert.True(t, p.Location.IsNull())
	assert.False(t, p.Location.IsSet())

	// Key absent from the payload stays unset, which is distinct from null.
	assert.True(t, p.Pending.IsUnset())
	assert.False(t, p.Pending.IsNull())
}

func TestPatchUnmarshalJSONTypeMismatch(t *testing.T) {
	var p Patch[float64]
	assert.Error(t, json.Unmarshal([]byte(`"twelve"`), &p))
}

func TestPatchConstructors(t *testing.T) {
	set := PatchValue(7.5)
	v, ok := set.Value()
	assert.True(t, ok)
	assert.Equal(t, 7.5, v)

	cleared := PatchNull[string]()
	assert.True(t, cleared.IsNull())
	_, ok = cleared.Value()
	assert.False(t, ok)

	var zero Patch[string]
	assert.True(t, zero.IsUnset())
}

func TestPatchMarshalJSON(t *testing.T) {
	out, err := json.Marshal(PatchValue("noc"))
	require.NoError(t, err)
	assert.Equal(t, `"noc"`, string(out))

	out, err = json.Marshal(PatchNull[string]())
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
