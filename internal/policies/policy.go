// Package policies holds the tie-breaking rules that decide, among
// several candidates satisfying a clause, which one the solver should
// try first.
package policies

import (
	"sort"

	"depsolve/internal/types"
)

// InstalledSet reports whether a package id names a currently-installed
// package.
type InstalledSet interface {
	IsInstalled(id string) bool
}

// idMap adapts a plain map[string]bool to InstalledSet.
type idMap map[string]bool

func (m idMap) IsInstalled(id string) bool { return m[id] }

// NewInstalledSet builds an InstalledSet from a set of installed ids.
func NewInstalledSet(ids map[string]bool) InstalledSet { return idMap(ids) }

// PackageLookup resolves a package id to its Package value, as needed to
// read the name/version used for ranking.
type PackageLookup interface {
	ByID(id string) (types.Package, error)
}

// PreferInstalledThenHighestVersion partitions ids by package name.
// Within each name group, installed packages rank above every
// non-installed version (as if pinned to MaxVersion); otherwise the
// rank is the package's own Version. Each group is sorted descending,
// then truncated by prune_to_best_version: keep the first entry and any
// subsequent entries of equal rank, stopping at the first strictly lower
// one. If, after pruning, candidates from more than one distinct name
// survive, this is the documented single-name limitation: callers must
// treat it as "not yet implemented" rather than guess.
//
// On success the returned deque holds the ranked candidates of the sole
// surviving name, highest rank first.
func PreferInstalledThenHighestVersion(lookup PackageLookup, installed InstalledSet, ids []string) (ranked []string, singleName bool, err error) {
	type entry struct {
		id   string
		name string
		rank types.Version
	}

	byName := make(map[string][]entry)
	var nameOrder []string

	for _, id := range ids {
		pkg, lookupErr := lookup.ByID(id)
		if lookupErr != nil {
			return nil, false, lookupErr
		}
		rank := pkg.Version()
		if installed.IsInstalled(id) {
			rank = types.MaxVersion
		}
		if _, seen := byName[pkg.Name()]; !seen {
			nameOrder = append(nameOrder, pkg.Name())
		}
		byName[pkg.Name()] = append(byName[pkg.Name()], entry{id: id, name: pkg.Name(), rank: rank})
	}

	var survivingNames []string
	pruned := make(map[string][]string)
	for _, name := range nameOrder {
		group := byName[name]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].rank.Greater(group[j].rank)
		})
		best := group[0].rank
		var keep []string
		for _, e := range group {
			if !e.rank.Equal(best) {
				break
			}
			keep = append(keep, e.id)
		}
		pruned[name] = keep
		survivingNames = append(survivingNames, name)
	}

	if len(survivingNames) != 1 {
		return nil, false, nil
	}
	return pruned[survivingNames[0]], true, nil
}
