package core

import "depsolve/internal/types"

// Plan walks a SolveResult's decision map in chronological order and
// emits the Install/Remove/Update sequence described in §4.8:
//
//   - for each (id, true) not already installed: if exactly one
//     installed package shares its name, emit Update(old, new) and
//     remember old's id as consumed; otherwise emit Install(new);
//     more than one installed package of that name is a planning
//     failure (ErrPlannerAmbiguous).
//   - for each (id, false) that is installed and was not consumed by an
//     Update above: emit Remove(old).
//
// The emitted list is reversed before returning, so removes precede
// installs by construction.
func Plan(pool *Pool, installedRepo *Repository, result SolveResult) ([]types.Operation, error) {
	consumedOldIDs := make(map[string]bool)
	var ops []types.Operation

	for _, decision := range result.Order {
		if decision.Value {
			if result.Installed[decision.ID] {
				continue
			}
			newPkg, err := pool.ByID(decision.ID)
			if err != nil {
				return nil, err
			}
			sameName := installedRepo.ByName(newPkg.Name())
			switch len(sameName) {
			case 0:
				ops = append(ops, types.Install(newPkg))
			case 1:
				oldPkg, _ := installedRepo.ByID(sameName[0])
				consumedOldIDs[oldPkg.ID()] = true
				ops = append(ops, types.Update(oldPkg, newPkg))
			default:
				return nil, types.ErrPlannerAmbiguous(newPkg.Name())
			}
			continue
		}

		if !result.Installed[decision.ID] || consumedOldIDs[decision.ID] {
			continue
		}
		oldPkg, ok := installedRepo.ByID(decision.ID)
		if !ok {
			return nil, types.ErrMissingPackageInPool(decision.ID)
		}
		ops = append(ops, types.Remove(oldPkg))
	}

	reverseOperations(ops)
	return ops, nil
}

func reverseOperations(ops []types.Operation) {
	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
}
