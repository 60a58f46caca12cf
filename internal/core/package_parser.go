package core

import (
	"strings"

	"depsolve/internal/types"
)

// ParsePackageString parses the package-string grammar of §6:
//
//	NAME "-" VERSION ( ";" SECTION )*
//	SECTION = ("depends" | "provides") "(" requirement-list ")"
//
// Sections are order-independent; any other section header is a syntax
// error.
func ParsePackageString(raw string) (types.Package, error) {
	sections := splitTopLevel(raw, ';')
	head := strings.TrimSpace(sections[0])

	name, version, err := splitNameVersion(head)
	if err != nil {
		return types.Package{}, types.ErrInvalidPackageString(raw, err.Error())
	}

	var provides, dependencies []types.Requirement
	for _, section := range sections[1:] {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}
		kind, body, err := splitSection(section)
		if err != nil {
			return types.Package{}, types.ErrInvalidPackageString(raw, err.Error())
		}
		reqs, err := ParseRequirementList(body)
		if err != nil {
			return types.Package{}, err
		}
		switch kind {
		case "depends":
			dependencies = append(dependencies, reqs...)
		case "provides":
			provides = append(provides, reqs...)
		default:
			return types.Package{}, types.ErrInvalidPackageString(raw, "unknown section header: "+kind)
		}
	}

	return types.NewPackage(name, version, provides, dependencies), nil
}

// splitNameVersion splits "name-version" on the last hyphen that leaves a
// parseable version on its right; package names may themselves contain
// hyphens, so the split scans from the right.
func splitNameVersion(head string) (string, types.Version, error) {
	for i := len(head) - 1; i >= 0; i-- {
		if head[i] != '-' {
			continue
		}
		name := head[:i]
		versionRaw := head[i+1:]
		if name == "" || versionRaw == "" {
			continue
		}
		if version, err := types.Parse(versionRaw); err == nil {
			return name, version, nil
		}
	}
	return "", types.Version{}, plainParseError("expected NAME-VERSION")
}

func splitSection(section string) (kind, body string, err error) {
	open := strings.IndexByte(section, '(')
	if open < 0 || !strings.HasSuffix(section, ")") {
		return "", "", plainParseError("section missing parentheses: " + section)
	}
	kind = strings.TrimSpace(section[:open])
	body = section[open+1 : len(section)-1]
	return kind, body, nil
}

type plainParseError string

func (e plainParseError) Error() string { return string(e) }
