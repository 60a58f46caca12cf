package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depsolve/internal/types"
)

func TestPlanAmbiguousUpdateFails(t *testing.T) {
	oldA := mustPkg(t, "numpy-1.0.0+variant.a")
	oldB := mustPkg(t, "numpy-1.0.0+variant.b")
	newPkg := mustPkg(t, "numpy-2.0.0")

	pool := NewPool(NewRepository([]types.Package{newPkg}))
	installedRepo := NewRepository([]types.Package{oldA, oldB})

	result := SolveResult{
		Order:     []Decision{{ID: newPkg.ID(), Value: true}},
		Values:    map[string]bool{newPkg.ID(): true},
		Installed: map[string]bool{oldA.ID(): true, oldB.ID(): true},
	}

	_, err := Plan(pool, installedRepo, result)
	assert.Error(t, err)
}

func TestPlanReversesRemovesBeforeInstalls(t *testing.T) {
	removed := mustPkg(t, "scipy-1.0.0")
	installed := mustPkg(t, "numpy-1.0.0")

	pool := NewPool(NewRepository([]types.Package{installed}))
	installedRepo := NewRepository([]types.Package{removed})

	result := SolveResult{
		Order: []Decision{
			{ID: installed.ID(), Value: true},
			{ID: removed.ID(), Value: false},
		},
		Installed: map[string]bool{removed.ID(): true},
	}

	ops, err := Plan(pool, installedRepo, result)
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, types.OpRemove, ops[0].Kind)
	assert.Equal(t, types.OpInstall, ops[1].Kind)
}
