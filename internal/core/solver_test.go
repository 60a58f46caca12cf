package core

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"depsolve/internal/types"
)

func opsEqual(t *testing.T, got, want []types.Operation) {
	t.Helper()
	diff := cmp.Diff(want, got,
		cmp.Comparer(func(a, b types.Package) bool { return a.ID() == b.ID() }),
		cmpopts.EquateEmpty(),
	)
	if diff != "" {
		t.Fatalf("plan mismatch (-want +got):\n%s", diff)
	}
}

func solveAndPlan(t *testing.T, poolPkgs []types.Package, installedPkgs []types.Package, reqRaw string) []types.Operation {
	t.Helper()
	pool := NewPool(NewRepository(poolPkgs))
	installedRepo := NewRepository(installedPkgs)
	installedIDs := make(map[string]bool)
	for _, p := range installedPkgs {
		installedIDs[p.ID()] = true
	}

	reqs, err := ParseRequirementList(reqRaw)
	require.NoError(t, err)
	require.Len(t, reqs, 1)

	result, err := Solve(context.Background(), pool, reqs[0], installedIDs)
	require.NoError(t, err)

	ops, err := Plan(pool, installedRepo, result)
	require.NoError(t, err)
	return ops
}

func TestScenarioPureInstall(t *testing.T) {
	mklOld := mustPkg(t, "mkl-10.3.0")
	mklNew := mustPkg(t, "mkl-11.0.0")
	ops := solveAndPlan(t, []types.Package{mklOld, mklNew}, nil, "mkl")
	opsEqual(t, ops, []types.Operation{types.Install(mklNew)})
}

func TestScenarioInstallWithDependency(t *testing.T) {
	mklOld := mustPkg(t, "mkl-10.3.0")
	mklNew := mustPkg(t, "mkl-11.0.0")
	numpy := mustPkg(t, "numpy-1.7.0; depends(mkl)")
	ops := solveAndPlan(t, []types.Package{mklOld, mklNew, numpy}, nil, "numpy")
	opsEqual(t, ops, []types.Operation{types.Install(mklNew), types.Install(numpy)})
}

func TestScenarioInstalledTakesPrecedence(t *testing.T) {
	mklOld := mustPkg(t, "mkl-10.3.0")
	mklNew := mustPkg(t, "mkl-11.0.0")
	ops := solveAndPlan(t, []types.Package{mklOld, mklNew}, []types.Package{mklOld}, "mkl")
	opsEqual(t, ops, nil)
}

func TestScenarioUpdatePath(t *testing.T) {
	numpyOld := mustPkg(t, "numpy-1.6.0")
	numpyNew := mustPkg(t, "numpy-1.7.0")
	ops := solveAndPlan(t, []types.Package{numpyOld, numpyNew}, []types.Package{numpyOld}, "numpy>=1.7.0")
	opsEqual(t, ops, []types.Operation{types.Update(numpyOld, numpyNew)})
}

func TestScenarioProvidesBasedMatch(t *testing.T) {
	nomklNumpy := mustPkg(t, "nomkl_numpy-1.7.0; provides(numpy==1.7.0)")
	scipy := mustPkg(t, "scipy-0.11.0; depends(numpy>=1.4.0)")
	ops := solveAndPlan(t, []types.Package{nomklNumpy, scipy}, nil, "scipy")
	opsEqual(t, ops, []types.Operation{types.Install(nomklNumpy), types.Install(scipy)})
}

func TestScenarioMissingRequirement(t *testing.T) {
	mkl := mustPkg(t, "mkl-10.3.0")
	pool := NewPool(NewRepository([]types.Package{mkl}))
	reqs, err := ParseRequirementList("numpy")
	require.NoError(t, err)

	_, err = Solve(context.Background(), pool, reqs[0], nil)
	require.Error(t, err)
}

func TestSolveIsIdempotent(t *testing.T) {
	mklOld := mustPkg(t, "mkl-10.3.0")
	mklNew := mustPkg(t, "mkl-11.0.0")
	first := solveAndPlan(t, []types.Package{mklOld, mklNew}, nil, "mkl")
	second := solveAndPlan(t, []types.Package{mklOld, mklNew}, nil, "mkl")
	opsEqual(t, first, second)
}

func TestSolveInstalledEqualsRequiredProducesEmptyPlan(t *testing.T) {
	mklNew := mustPkg(t, "mkl-11.0.0")
	ops := solveAndPlan(t, []types.Package{mklNew}, []types.Package{mklNew}, "mkl==11.0.0")
	opsEqual(t, ops, nil)
}
