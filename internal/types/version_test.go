package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	cases := []string{
		"1.2.3",
		"0.0.0",
		"1.2.3-alpha",
		"1.2.3-alpha.1",
		"1.2.3-alpha.beta.2",
		"1.2.3+build.7",
		"1.2.3-rc.1+build.7",
	}
	for _, raw := range cases {
		t.Run(raw, func(t *testing.T) {
			v, err := Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, v.String())
		})
	}
}

func TestParseRejectsLooseForms(t *testing.T) {
	cases := []string{"1", "1.2", "", "v1.2.3", "1.2.3.4", "1.2.-1"}
	for _, raw := range cases {
		t.Run(raw, func(t *testing.T) {
			_, err := Parse(raw)
			assert.Error(t, err)
		})
	}
}

func TestParseLooseFillsMissingComponents(t *testing.T) {
	cases := map[string]string{
		"1":     "1.0.0",
		"1.2":   "1.2.0",
		"1.2.3": "1.2.3",
	}
	for raw, want := range cases {
		t.Run(raw, func(t *testing.T) {
			v, err := ParseLoose(raw)
			require.NoError(t, err)
			assert.Equal(t, want, v.String())
		})
	}
}

func TestCompareCoreComponents(t *testing.T) {
	lower := mustParse(t, "1.2.3")
	higher := mustParse(t, "1.2.4")
	assert.True(t, lower.Less(higher))
	assert.True(t, higher.Greater(lower))
	assert.True(t, lower.Equal(mustParse(t, "1.2.3")))
}

func TestCompareReleaseOutranksPreRelease(t *testing.T) {
	release := mustParse(t, "1.0.0")
	pre := mustParse(t, "1.0.0-rc.1")
	assert.True(t, pre.Less(release))
	assert.True(t, release.Greater(pre))
}

func TestComparePreReleaseMixedNumericAndAlpha(t *testing.T) {
	// Numeric identifiers compare numerically and sort below alphabetic ones.
	assert.True(t, mustParse(t, "1.0.0-alpha.1").Less(mustParse(t, "1.0.0-alpha.2")))
	assert.True(t, mustParse(t, "1.0.0-alpha.9").Less(mustParse(t, "1.0.0-alpha.10")))
	assert.True(t, mustParse(t, "1.0.0-alpha.1").Less(mustParse(t, "1.0.0-alpha.beta")))
}

func TestComparePreReleaseShorterSequenceSortsLower(t *testing.T) {
	assert.True(t, mustParse(t, "1.0.0-alpha").Less(mustParse(t, "1.0.0-alpha.1")))
}

func TestCompareBuildMetadataDeviatesFromUpstreamSemver(t *testing.T) {
	// Unlike upstream semver, build metadata participates in ordering here,
	// and absence sorts below presence.
	withoutBuild := mustParse(t, "1.0.0")
	withBuild := mustParse(t, "1.0.0+build.1")
	assert.True(t, withoutBuild.Less(withBuild))

	earlier := mustParse(t, "1.0.0+build.1")
	later := mustParse(t, "1.0.0+build.2")
	assert.True(t, earlier.Less(later))
}

func TestSentinelsBoundEveryRealVersion(t *testing.T) {
	real := mustParse(t, "9999.9999.9999-zzz")
	assert.True(t, MinVersion.Less(real))
	assert.True(t, real.Less(MaxVersion))
	assert.True(t, MinVersion.Less(MaxVersion))
	assert.True(t, MinVersion.Equal(MinVersion))
	assert.True(t, MaxVersion.Equal(MaxVersion))
}

func mustParse(t *testing.T, raw string) Version {
	t.Helper()
	v, err := Parse(raw)
	require.NoError(t, err)
	return v
}
