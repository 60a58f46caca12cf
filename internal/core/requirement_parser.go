// Package core implements the solver's domain logic: requirement parsing,
// the package pool, clause compilation, and the DPLL search itself.
package core

import (
	"strings"

	"depsolve/internal/types"
)

// requirementOp is one comparison token recognized in a requirement string.
// All three tokens are two characters long; a lone "=" is not an operator.
type requirementOp string

const (
	opEqual requirementOp = "=="
	opGEQ   requirementOp = ">="
	opLEQ   requirementOp = "<="
)

var requirementOpTokens = []requirementOp{opEqual, opGEQ, opLEQ}

// ParseRequirementList parses a comma-separated requirement-list string
// (the grammar of §6) into a list of Requirements. Each block is either a
// bare distribution name (shorthand for an unconstrained Any requirement)
// or "name OP version". Unknown operators and trailing garbage fail with
// InvalidRequirement.
func ParseRequirementList(raw string) ([]types.Requirement, error) {
	blocks := splitTopLevel(raw, ',')
	constraintsByName := make(map[string][]types.Constraint)
	order := make([]string, 0, len(blocks))

	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			return nil, types.ErrInvalidRequirement(raw, "empty requirement block")
		}
		name, constraint, isBare, err := parseRequirementBlock(block)
		if err != nil {
			return nil, err
		}
		if _, seen := constraintsByName[name]; !seen {
			order = append(order, name)
		}
		if !isBare {
			constraintsByName[name] = append(constraintsByName[name], constraint)
		} else if _, ok := constraintsByName[name]; !ok {
			constraintsByName[name] = nil
		}
	}

	reqs := make([]types.Requirement, 0, len(order))
	for _, name := range order {
		req, err := types.NewRequirement(name, constraintsByName[name])
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// parseRequirementBlock parses one "NAME" or "NAME OP VERSION" block.
func parseRequirementBlock(block string) (name string, constraint types.Constraint, isBare bool, err error) {
	for _, op := range requirementOpTokens {
		idx := strings.Index(block, string(op))
		if idx < 0 {
			continue
		}
		name = strings.TrimSpace(block[:idx])
		versionRaw := strings.TrimSpace(block[idx+len(op):])
		if !isValidName(name) {
			return "", types.Constraint{}, false, types.ErrInvalidRequirement(block, "invalid distribution name")
		}
		if versionRaw == "" {
			return "", types.Constraint{}, false, types.ErrInvalidRequirement(block, "missing version after operator")
		}
		version, verr := types.Parse(versionRaw)
		if verr != nil {
			return "", types.Constraint{}, false, types.ErrInvalidRequirement(block, "invalid version: "+verr.Error())
		}
		return name, types.Constraint{Kind: constraintKindFor(op), Version: version}, false, nil
	}

	if !isValidName(block) {
		return "", types.Constraint{}, false, types.ErrInvalidRequirement(block, "not a valid bare distribution name")
	}
	return block, types.Constraint{}, true, nil
}

func constraintKindFor(op requirementOp) types.ConstraintKind {
	switch op {
	case opEqual:
		return types.ConstraintEqual
	case opGEQ:
		return types.ConstraintGEQ
	case opLEQ:
		return types.ConstraintLEQ
	default:
		return types.ConstraintEqual
	}
}

// isValidName reports whether s matches [A-Za-z_]\w*.
func isValidName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// splitTopLevel splits raw on sep, ignoring occurrences of sep nested
// inside parentheses (used by the package-string section parser to keep
// "depends(a, b)" from being split on its internal comma).
func splitTopLevel(raw string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		default:
			if raw[i] == sep && depth == 0 {
				parts = append(parts, raw[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, raw[start:])
	return parts
}
