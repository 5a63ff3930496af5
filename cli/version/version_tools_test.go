package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToolVersion(t *testing.T) {
	testCases := []struct {
		output   string
		expected string
	}{
		{"Python 3.12.1", "3.12.1"},
		{"Python 3.8.10\n", "3.8.10"},
		{"ruff 0.4.2", "0.4.2"},
		{"Python 3.13.0rc2", "3.13.0-rc2"},
	}

	for _, tc := range testCases {
		t.Run(tc.output, func(t *testing.T) {
			ver, err := ParseToolVersion(tc.output)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ver.String())
		})
	}

	_, err := ParseToolVersion("no digits here")
	require.Error(t, err)
}

func TestCheckMinimal(t *testing.T) {
	ver, err := ParseToolVersion("Python 3.7.17")
	require.NoError(t, err)
	require.Error(t, CheckMinimal(ver, "3.8"))

	ver, err = ParseToolVersion("Python 3.12.1")
	require.NoError(t, err)
	require.NoError(t, CheckMinimal(ver, "3.8"))

	require.Error(t, CheckMinimal(ver, "not a version"))
}

func TestGetVersion(t *testing.T) {
	savedTag, savedCommit, savedLabel := gitTag, gitCommit, versionLabel
	defer func() {
		gitTag, gitCommit, versionLabel = savedTag, savedCommit, savedLabel
	}()

	gitTag, gitCommit, versionLabel = "", "abc123", ""
	assert.Equal(t, unknownVersion, GetVersion(true, false))

	gitTag = "v0.3.0"
	assert.Equal(t, "0.3.0", GetVersion(true, false))
	assert.Equal(t, "0.3.0.abc123", GetVersion(false, true))

	versionLabel = "dev"
	assert.Contains(t, GetVersion(false, false), "litestar-manage version 0.3.0/dev")
}
