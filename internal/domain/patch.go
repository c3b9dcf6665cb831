package domain

import "encoding/json"

type patchState uint8

const (
	patchUnset patchState = iota
	patchNull
	patchSet
)

// Patch is a tagged optional for partial updates. It distinguishes a field
// absent from the payload (Unset), explicitly null (Null), and carrying a
// value (Set), so callers can clear a field instead of only overwriting it.
type Patch[T any] struct {
	state patchState
	value T
}

// PatchValue builds a set patch.
func PatchValue[T any](v T) Patch[T] {
	return Patch[T]{state: patchSet, value: v}
}

// PatchNull builds an explicit-clear patch.
func PatchNull[T any]() Patch[T] {
	return Patch[T]{state: patchNull}
}

// IsSet reports whether the patch carries a value.
func (p Patch[T]) IsSet() bool { return p.state == patchSet }

// IsNull reports whether the field was explicitly cleared.
func (p Patch[T]) IsNull() bool { return p.state == patchNull }

// IsUnset reports whether the field was absent from the payload.
func (p Patch[T]) IsUnset() bool { return p.state == patchUnset }

// Value returns the carried value and whether one is present.
func (p Patch[T]) Value() (T, bool) {
	return p.value, p.state == patchSet
}

// UnmarshalJSON records presence: a missing key leaves the patch unset, a
// JSON null marks it cleared, anything else carries the decoded value.
func (p *Patch[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = Patch[T]{state: patchNull}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Patch[T]{state: patchSet, value: v}
	return nil
}

// MarshalJSON renders the carried value, or null when unset or cleared.
func (p Patch[T]) MarshalJSON() ([]byte, error) {
	if p.state != patchSet {
		return []byte("null"), nil
	}
	return json.Marshal(p.value)
}
