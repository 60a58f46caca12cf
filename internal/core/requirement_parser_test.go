package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depsolve/internal/types"
)

func TestParseRequirementListBareName(t *testing.T) {
	reqs, err := ParseRequirementList("numpy")
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "numpy", reqs[0].Name())
	assert.True(t, reqs[0].Any())
}

func TestParseRequirementListSingleConstraint(t *testing.T) {
	reqs, err := ParseRequirementList("numpy>=1.2.0")
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	min, _ := reqs[0].Bounds()
	assert.Equal(t, "1.2.0", min.String())
}

func TestParseRequirementListMultipleBlocks(t *testing.T) {
	reqs, err := ParseRequirementList("numpy>=1.0.0, scipy<=2.0.0, pandas")
	require.NoError(t, err)
	require.Len(t, reqs, 3)
	names := map[string]bool{}
	for _, r := range reqs {
		names[r.Name()] = true
	}
	assert.True(t, names["numpy"])
	assert.True(t, names["scipy"])
	assert.True(t, names["pandas"])
}

func TestParseRequirementListEqualOperator(t *testing.T) {
	reqs, err := ParseRequirementList("numpy==1.3.0")
	require.NoError(t, err)
	pin, pinned := reqs[0].Pinned()
	require.True(t, pinned)
	assert.Equal(t, "1.3.0", pin.String())
}

func TestParseRequirementListRejectsUnknownOperator(t *testing.T) {
	_, err := ParseRequirementList("numpy!=1.0.0")
	assert.Error(t, err)
}

func TestParseRequirementListRejectsTrailingGarbage(t *testing.T) {
	_, err := ParseRequirementList("numpy>=1.0.0 extra")
	assert.Error(t, err)
}

func TestParseRequirementListWhitespaceIgnored(t *testing.T) {
	reqs, err := ParseRequirementList("  numpy  >=  1.0.0  ,  scipy  ")
	require.NoError(t, err)
	require.Len(t, reqs, 2)
}

func TestRequirementStringRoundTripsThroughParser(t *testing.T) {
	requirementString := "numpy >= 1.3.0, numpy <= 2.0.0"
	reqs, err := ParseRequirementList(requirementString)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, requirementString, reqs[0].String())

	reparsed, err := ParseRequirementList(reqs[0].String())
	require.NoError(t, err)
	assert.True(t, reqs[0].Equal(reparsed[0]))
}

func TestRequirementStringRoundTripsPinned(t *testing.T) {
	reqs, err := ParseRequirementList("numpy == 1.3.0")
	require.NoError(t, err)
	assert.Equal(t, "numpy == 1.3.0", reqs[0].String())

	reparsed, err := ParseRequirementList(reqs[0].String())
	require.NoError(t, err)
	assert.True(t, reqs[0].Equal(reparsed[0]))
}

func TestRequirementStringRoundTripsBareName(t *testing.T) {
	reqs, err := ParseRequirementList("numpy")
	require.NoError(t, err)
	assert.Equal(t, "numpy", reqs[0].String())

	reparsed, err := ParseRequirementList(reqs[0].String())
	require.NoError(t, err)
	assert.True(t, reqs[0].Equal(reparsed[0]))
}

func TestParsePackageStringBare(t *testing.T) {
	pkg, err := ParsePackageString("numpy-1.2.3")
	require.NoError(t, err)
	assert.Equal(t, "numpy", pkg.Name())
	assert.Equal(t, "1.2.3", pkg.Version().String())
	assert.Empty(t, pkg.Provides())
	assert.Empty(t, pkg.Dependencies())
}

func TestParsePackageStringWithSections(t *testing.T) {
	pkg, err := ParsePackageString("numpy-1.2.3; depends(blas>=1.0.0); provides(array_api)")
	require.NoError(t, err)
	require.Len(t, pkg.Dependencies(), 1)
	require.Len(t, pkg.Provides(), 1)
	assert.Equal(t, "blas", pkg.Dependencies()[0].Name())
	assert.Equal(t, "array_api", pkg.Provides()[0].Name())
}

func TestParsePackageStringOrderIndependentSections(t *testing.T) {
	a, err := ParsePackageString("numpy-1.2.3; depends(blas); provides(array_api)")
	require.NoError(t, err)
	b, err := ParsePackageString("numpy-1.2.3; provides(array_api); depends(blas)")
	require.NoError(t, err)
	assert.Equal(t, a.ID(), b.ID())
}

func TestParsePackageStringUnknownSectionFails(t *testing.T) {
	_, err := ParsePackageString("numpy-1.2.3; conflicts(scipy)")
	assert.Error(t, err)
}

func TestParsePackageStringHyphenatedName(t *testing.T) {
	pkg, err := ParsePackageString("scikit-learn-0.24.0")
	require.NoError(t, err)
	assert.Equal(t, "scikit-learn", pkg.Name())
	assert.Equal(t, "0.24.0", pkg.Version().String())
}

func TestPackageIDStableAcrossEqualConstruction(t *testing.T) {
	v := mustParseType(t, "1.0.0")
	req, _ := types.NewRequirement("blas", nil)
	p1 := types.NewPackage("numpy", v, nil, []types.Requirement{req})
	p2 := types.NewPackage("numpy", v, nil, []types.Requirement{req})
	assert.Equal(t, p1.ID(), p2.ID())
}

func mustParseType(t *testing.T, raw string) types.Version {
	t.Helper()
	v, err := types.Parse(raw)
	require.NoError(t, err)
	return v
}
