package opts

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phyten/commentmark/internal/engine"
)

func TestParseBoolVariants(t *testing.T) {
	for _, tc := range []string{"1", "true", "TRUE", "yes", "On"} {
		got, err := ParseBool(tc, "flag")
		require.NoError(t, err, tc)
		assert.True(t, got, tc)
	}
	for _, tc := range []string{"0", "false", "FALSE", "no", "OFF"} {
		got, err := ParseBool(tc, "flag")
		require.NoError(t, err, tc)
		assert.False(t, got, tc)
	}
	_, err := ParseBool("maybe", "flag")
	assert.ErrorContains(t, err, `invalid value for flag: "maybe"`)
}

func TestParseIntInRange(t *testing.T) {
	got, err := ParseIntInRange(" 42 ", "jobs", 1, 64)
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	_, err = ParseIntInRange("-1", "truncate", 0, math.MinInt)
	assert.ErrorContains(t, err, "truncate must be >= 0")

	_, err = ParseIntInRange("65", "jobs", 1, 64)
	assert.ErrorContains(t, err, "between 1 and 64")

	_, err = ParseIntInRange("x", "jobs", 1, 64)
	assert.Error(t, err)
}

func TestNormalizeAndValidate(t *testing.T) {
	o := Defaults("")
	o.Jobs = 8
	o.DetectLangs = []string{" TS ", "golang", "ts", ""}
	o.Paths = []string{" src ", ""}
	require.NoError(t, NormalizeAndValidate(&o))
	assert.Equal(t, ".", o.RepoDir)
	assert.Equal(t, []string{"typescript", "go"}, o.DetectLangs)
	assert.Equal(t, []string{"src"}, o.Paths)

	bad := engine.Options{Jobs: 1024}
	assert.Error(t, NormalizeAndValidate(&bad))

	unknown := engine.Options{Jobs: 1, DetectLangs: []string{"cobol"}}
	assert.ErrorContains(t, NormalizeAndValidate(&unknown), "cobol")

	neg := engine.Options{Jobs: 1, MaxFileBytes: -1}
	assert.Error(t, NormalizeAndValidate(&neg))
}

func TestNormalizeOutput(t *testing.T) {
	for in, want := range map[string]string{"TABLE": "table", " ndjson": "ndjson", "md": "markdown", "csv": "csv"} {
		got, err := NormalizeOutput(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := NormalizeOutput("tsv")
	assert.Error(t, err)
}

func TestSplitMulti(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c", "d"}, SplitMulti([]string{"a,b", " c ", "", ",d"}))
	assert.Nil(t, SplitMulti(nil))
}

func TestDefaults(t *testing.T) {
	d := Defaults("/repo")
	assert.Equal(t, "/repo", d.RepoDir)
	assert.True(t, d.ExcludeTypical)
	assert.False(t, d.Keywords)
	assert.GreaterOrEqual(t, d.Jobs, 1)
	assert.LessOrEqual(t, d.Jobs, MaxJobs)
}
