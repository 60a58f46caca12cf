package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequirementDefaultsToAny(t *testing.T) {
	r, err := NewRequirement("numpy", nil)
	require.NoError(t, err)
	assert.True(t, r.Any())
	_, pinned := r.Pinned()
	assert.False(t, pinned)
}

func TestNewRequirementBoundsFromGEQAndLEQ(t *testing.T) {
	r, err := NewRequirement("numpy", []Constraint{
		{Kind: ConstraintGEQ, Version: mustParse(t, "1.0.0")},
		{Kind: ConstraintLEQ, Version: mustParse(t, "2.0.0")},
	})
	require.NoError(t, err)
	min, max := r.Bounds()
	assert.True(t, min.Equal(mustParse(t, "1.0.0")))
	assert.True(t, max.Equal(mustParse(t, "2.0.0")))
	assert.False(t, r.Unsatisfiable())
}

func TestNewRequirementMultipleGEQTakesMax(t *testing.T) {
	r, err := NewRequirement("numpy", []Constraint{
		{Kind: ConstraintGEQ, Version: mustParse(t, "1.0.0")},
		{Kind: ConstraintGEQ, Version: mustParse(t, "1.5.0")},
	})
	require.NoError(t, err)
	min, _ := r.Bounds()
	assert.True(t, min.Equal(mustParse(t, "1.5.0")))
}

func TestNewRequirementEqualPinsBothBounds(t *testing.T) {
	r, err := NewRequirement("numpy", []Constraint{
		{Kind: ConstraintEqual, Version: mustParse(t, "1.3.0")},
	})
	require.NoError(t, err)
	pin, pinned := r.Pinned()
	require.True(t, pinned)
	assert.True(t, pin.Equal(mustParse(t, "1.3.0")))
	min, max := r.Bounds()
	assert.True(t, min.Equal(pin))
	assert.True(t, max.Equal(pin))
}

func TestNewRequirementConflictingEqualsUnsatisfiable(t *testing.T) {
	r, err := NewRequirement("numpy", []Constraint{
		{Kind: ConstraintEqual, Version: mustParse(t, "1.3.0")},
		{Kind: ConstraintEqual, Version: mustParse(t, "1.4.0")},
	})
	require.NoError(t, err)
	assert.True(t, r.Unsatisfiable())
	assert.False(t, r.Matches(r))
}

func TestNewRequirementCrossedBoundsUnsatisfiable(t *testing.T) {
	r, err := NewRequirement("numpy", []Constraint{
		{Kind: ConstraintGEQ, Version: mustParse(t, "2.0.0")},
		{Kind: ConstraintLEQ, Version: mustParse(t, "1.0.0")},
	})
	require.NoError(t, err)
	assert.True(t, r.Unsatisfiable())
}

func TestMatchesDifferentNamesAlwaysFalse(t *testing.T) {
	a, _ := NewRequirement("numpy", nil)
	b, _ := NewRequirement("scipy", nil)
	assert.False(t, a.Matches(b))
}

func TestMatchesPinnedAgainstPinned(t *testing.T) {
	a, _ := NewRequirement("numpy", []Constraint{{Kind: ConstraintEqual, Version: mustParse(t, "1.0.0")}})
	b, _ := NewRequirement("numpy", []Constraint{{Kind: ConstraintEqual, Version: mustParse(t, "1.0.0")}})
	c, _ := NewRequirement("numpy", []Constraint{{Kind: ConstraintEqual, Version: mustParse(t, "2.0.0")}})
	assert.True(t, a.Matches(b))
	assert.True(t, b.Matches(a))
	assert.False(t, a.Matches(c))
}

func TestMatchesPinnedAgainstRange(t *testing.T) {
	pinned, _ := NewRequirement("numpy", []Constraint{{Kind: ConstraintEqual, Version: mustParse(t, "1.5.0")}})
	rng, _ := NewRequirement("numpy", []Constraint{
		{Kind: ConstraintGEQ, Version: mustParse(t, "1.0.0")},
		{Kind: ConstraintLEQ, Version: mustParse(t, "2.0.0")},
	})
	assert.True(t, pinned.Matches(rng))
	assert.True(t, rng.Matches(pinned))

	outside, _ := NewRequirement("numpy", []Constraint{{Kind: ConstraintEqual, Version: mustParse(t, "3.0.0")}})
	assert.False(t, outside.Matches(rng))
}

func TestMatchesOverlappingRanges(t *testing.T) {
	a, _ := NewRequirement("numpy", []Constraint{
		{Kind: ConstraintGEQ, Version: mustParse(t, "1.0.0")},
		{Kind: ConstraintLEQ, Version: mustParse(t, "1.5.0")},
	})
	b, _ := NewRequirement("numpy", []Constraint{
		{Kind: ConstraintGEQ, Version: mustParse(t, "1.2.0")},
		{Kind: ConstraintLEQ, Version: mustParse(t, "2.0.0")},
	})
	assert.True(t, a.Matches(b))

	c, _ := NewRequirement("numpy", []Constraint{
		{Kind: ConstraintGEQ, Version: mustParse(t, "2.0.0")},
	})
	assert.False(t, a.Matches(c))
}

func TestMatchesIsSymmetricAndReflexive(t *testing.T) {
	a, _ := NewRequirement("numpy", []Constraint{
		{Kind: ConstraintGEQ, Version: mustParse(t, "1.0.0")},
	})
	b, _ := NewRequirement("numpy", []Constraint{
		{Kind: ConstraintLEQ, Version: mustParse(t, "2.0.0")},
	})
	assert.Equal(t, a.Matches(b), b.Matches(a))
	assert.True(t, a.Matches(a))
}

func TestRequirementEqualNormalizedTuple(t *testing.T) {
	a, _ := NewRequirement("numpy", []Constraint{
		{Kind: ConstraintGEQ, Version: mustParse(t, "1.0.0")},
		{Kind: ConstraintLEQ, Version: mustParse(t, "2.0.0")},
	})
	b, _ := NewRequirement("numpy", []Constraint{
		{Kind: ConstraintLEQ, Version: mustParse(t, "2.0.0")},
		{Kind: ConstraintGEQ, Version: mustParse(t, "1.0.0")},
	})
	assert.True(t, a.Equal(b))
}
