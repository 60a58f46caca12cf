package adapters

import (
	"context"
	"sort"
	"strings"

	debversion "github.com/knqyf263/go-deb-version"

	"depsolve/internal/core"
	"depsolve/internal/types"
)

// AptSourceRecord is one raw package entry as it appears in an APT-style
// repository feed: a name, its raw (Debian-ordered) version string, and
// the raw dependency strings declared by that version's control file.
type AptSourceRecord struct {
	Name    string
	Version string
	Depends []string
}

// AptSourceAdapter ingests Debian-versioned package records into the
// solver's own Package type. Debian version ordering rules (tilde
// pre-release handling, epoch prefixes) differ from the solver's own
// Version grammar, so this adapter sorts each package's versions with
// go-deb-version -- the ordering a real APT repository promises -- and
// then re-encodes each entry as a loosely-parsed, core Version in that
// sorted order. The core algebra never calls into go-deb-version itself;
// only catalog ingestion does.
type AptSourceAdapter struct {
	Records []AptSourceRecord
}

// NewAptSourceAdapter builds an AptSourceAdapter over records.
func NewAptSourceAdapter(records []AptSourceRecord) *AptSourceAdapter {
	return &AptSourceAdapter{Records: records}
}

// LoadPackages converts every record into a Package, preserving Debian
// sort order among same-named entries.
func (a *AptSourceAdapter) LoadPackages(ctx context.Context) ([]types.Package, error) {
	byName := make(map[string][]AptSourceRecord)
	var order []string
	for _, rec := range a.Records {
		if _, seen := byName[rec.Name]; !seen {
			order = append(order, rec.Name)
		}
		byName[rec.Name] = append(byName[rec.Name], rec)
	}

	var packages []types.Package
	for _, name := range order {
		records := byName[name]
		sortByDebVersion(records)
		for _, rec := range records {
			depends, err := aptDependsToRequirements(rec.Depends)
			if err != nil {
				return nil, err
			}
			version, err := types.ParseLoose(normalizeDebVersionForCore(rec.Version))
			if err != nil {
				return nil, types.ErrInvalidVersion(rec.Version, "apt version could not be re-encoded: "+err.Error())
			}
			packages = append(packages, types.NewPackage(rec.Name, version, nil, depends))
		}
	}
	return packages, nil
}

// sortByDebVersion orders records ascending by Debian version precedence,
// falling back to a stable no-op order on a parse failure (a malformed
// entry is surfaced later, when LoadPackages re-encodes it).
func sortByDebVersion(records []AptSourceRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		vi, erri := debversion.NewVersion(records[i].Version)
		vj, errj := debversion.NewVersion(records[j].Version)
		if erri != nil || errj != nil {
			return false
		}
		return vi.Compare(vj) < 0
	})
}

// normalizeDebVersionForCore strips the parts of a Debian version string
// (epoch, revision) that the core Version grammar has no concept of,
// keeping only the upstream portion.
func normalizeDebVersionForCore(raw string) string {
	if idx := strings.IndexByte(raw, ':'); idx >= 0 {
		raw = raw[idx+1:]
	}
	if idx := strings.LastIndexByte(raw, '-'); idx >= 0 {
		raw = raw[:idx]
	}
	return raw
}

func aptDependsToRequirements(raw []string) ([]types.Requirement, error) {
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
