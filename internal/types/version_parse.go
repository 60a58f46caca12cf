package types

import (
	"strconv"
	"strings"
)

// Parse parses a strict version string: MAJOR.MINOR.PATCH, optionally
// followed by -PRE(.PRE)* and +BUILD(.BUILD)*. MAJOR/MINOR/PATCH must each
// be all-digit; PRE/BUILD parts may contain letters, digits, and hyphens.
func Parse(raw string) (Version, error) {
	return parseVersion(raw, false)
}

// ParseLoose accepts the strict grammar plus a missing minor and/or patch
// component ("1" -> "1.0.0", "1.2" -> "1.2.0").
func ParseLoose(raw string) (Version, error) {
	return parseVersion(raw, true)
}

func parseVersion(raw string, loose bool) (Version, error) {
	rest := raw
	var buildRaw string
	if idx := strings.IndexByte(rest, '+'); idx >= 0 {
		buildRaw = rest[idx+1:]
		rest = rest[:idx]
	}
	var preRaw string
	if idx := strings.IndexByte(rest, '-'); idx >= 0 {
		preRaw = rest[idx+1:]
		rest = rest[:idx]
	}

	core := strings.Split(rest, ".")
	if !loose && len(core) != 3 {
		return Version{}, ErrInvalidVersion(raw, "expected MAJOR.MINOR.PATCH")
	}
	if loose && (len(core) < 1 || len(core) > 3) {
		return Version{}, ErrInvalidVersion(raw, "expected MAJOR[.MINOR[.PATCH]]")
	}

	major, err := parseNumericComponent(core[0])
	if err != nil {
		return Version{}, ErrInvalidVersion(raw, "invalid major component")
	}
	var minor, patch uint64
	if len(core) > 1 {
		minor, err = parseNumericComponent(core[1])
		if err != nil {
			return Version{}, ErrInvalidVersion(raw, "invalid minor component")
		}
	}
	if len(core) > 2 {
		patch, err = parseNumericComponent(core[2])
		if err != nil {
			return Version{}, ErrInvalidVersion(raw, "invalid patch component")
		}
	}

	var pre []versionPart
	if preRaw != "" {
		pre, err = parseTagParts(preRaw)
		if err != nil {
			return Version{}, ErrInvalidVersion(raw, "invalid pre-release: "+err.Error())
		}
	}

	var build []versionPart
	if buildRaw != "" {
		build, err = parseTagParts(buildRaw)
		if err != nil {
			return Version{}, ErrInvalidVersion(raw, "invalid build metadata: "+err.Error())
		}
	}

	return Version{major: major, minor: minor, patch: patch, pre: pre, build: build}, nil
}

func parseNumericComponent(raw string) (uint64, error) {
	if raw == "" {
		return 0, errInvalidComponent
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, errInvalidComponent
		}
	}
	return strconv.ParseUint(raw, 10, 64)
}

func parseTagParts(raw string) ([]versionPart, error) {
	segments := strings.Split(raw, ".")
	parts := make([]versionPart, 0, len(segments))
	for _, seg := range segments {
		if seg == "" {
			return nil, errEmptyIdentifier
		}
		for _, r := range seg {
			if !isTagRune(r) {
				return nil, errInvalidIdentifier
			}
		}
		parts = append(parts, newVersionPart(seg))
	}
	return parts, nil
}

func isTagRune(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r == '-':
		return true
	default:
		return false
	}
}

var (
	errInvalidComponent  = plainError("version component must be all-digit")
	errEmptyIdentifier   = plainError("empty identifier")
	errInvalidIdentifier = plainError("identifier contains invalid character")
)

type plainError string

func (e plainError) Error() string { return string(e) }
