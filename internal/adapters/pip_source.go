package adapters

import (
	"context"
	"sort"
	"strconv"

	pep440 "github.com/aquasecurity/go-pep440-version"

	"depsolve/internal/core"
	"depsolve/internal/shared"
	"depsolve/internal/types"
)

// PipSourceRecord is one raw package entry as it would appear in a PEP
// 503 "simple" index: a distribution name, its raw PEP 440 version
// string, and the raw requirement strings from its metadata.
type PipSourceRecord struct {
	Name         string
	Version      string
	Requirements []string
}

// PipSourceAdapter ingests PEP 440-versioned package records. PEP 440
// pre-release/post-release/dev-release ordering does not map cleanly
// onto the solver's own Version grammar, so ingestion sorts each
// package's raw versions with go-pep440-version -- the ordering pip
// itself uses -- before re-encoding them as loosely-parsed core
// Versions in that order. Only ingestion touches go-pep440-version; the
// core algebra compares exclusively via its own Version type.
type PipSourceAdapter struct {
	Records []PipSourceRecord
}

// NewPipSourceAdapter builds a PipSourceAdapter over records.
func NewPipSourceAdapter(records []PipSourceRecord) *PipSourceAdapter {
	return &PipSourceAdapter{Records: records}
}

// LoadPackages converts every record into a Package, preserving PEP 440
// sort order among same-named entries.
func (a *PipSourceAdapter) LoadPackages(ctx context.Context) ([]types.Package, error) {
	byName := make(map[string][]PipSourceRecord)
	var order []string
	for _, rec := range a.Records {
		key := shared.NormalizePipName(rec.Name)
		if _, seen := byName[key]; !seen {
			order = append(order, key)
		}
		byName[key] = append(byName[key], rec)
	}

	var packages []types.Package
	for _, name := range order {
		records := byName[name]
		sortByPep440Version(records)
		for i, rec := range records {
			deps, err := pipRequirementsToRequirements(rec.Requirements)
			if err != nil {
				return nil, err
			}
			version, err := types.ParseLoose(canonicalReleaseOrdinal(i))
			if err != nil {
				return nil, types.ErrInvalidVersion(rec.Version, "pip version could not be re-encoded: "+err.Error())
			}
			packages = append(packages, types.NewPackage(rec.Name, version, nil, deps))
		}
	}
	return packages, nil
}

func sortByPep440Version(records []PipSourceRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		vi, erri := pep440.Parse(records[i].Version)
		vj, errj := pep440.Parse(records[j].Version)
		if erri != nil || errj != nil {
			return false
		}
		return vi.Compare(vj) < 0
	})
}

// canonicalReleaseOrdinal returns "0.0.<ordinal>", the strict
// MAJOR.MINOR.PATCH string used in place of a record's PEP 440 version,
// where ordinal is the record's position in sorted order. PEP 440 concepts
// without a direct equivalent (pre/post/dev releases, epochs) have
// already done their job in sortByPep440Version; re-encoding only needs
// to preserve that established order, which the ingestion ordinal does
// by construction.
func canonicalReleaseOrdinal(ordinal int) string {
	return "0.0." + strconv.Itoa(ordinal)
}

func pipRequirementsToRequirements(raw []string) ([]types.Requirement, error) {
	var out []types.Requirement
	for _, entry := range raw {
		reqs, err := core.ParseRequirementList(entry)
		if err != nil {
			return nil, err
		}
		out = append(out, reqs...)
	}
	return out, nil
}
