package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func resetVersionVars(t *testing.T) {
	t.Helper()
	origVersion, origBuild, origCommit := Version, Build, GitCommit
	Version, Build, GitCommit = "dev", "unknown", "unknown"
	t.Cleanup(func() {
		Version, Build, GitCommit = origVersion, origBuild, origCommit
	})
}

func TestLoadVersionFrom(t *testing.T) {
	resetVersionVars(t)

	loadVersionFrom(strings.NewReader(`
# release metadata
version: 1.2.3
build: 2025-06-02T07:00:00Z
commit: abc1234
ignored: value
not-a-pair
`))

	assert.Equal(t, "1.2.3", GetVersion())
	assert.Equal(t, "2025-06-02T07:00:00Z", GetBuild())
	assert.Equal(t, "abc1234", GetGitCommit())
	assert.Equal(t, "1.2.3 (build: 2025-06-02T07:00:00Z, commit: abc1234)", GetFullVersion())
}

func TestLoadVersionFrom_LdflagsWin(t *testing.T) {
	resetVersionVars(t)
	Version = "2.0.0"

	loadVersionFrom(strings.NewReader("version: 1.2.3\ncommit: abc1234\n"))

	// File values only fill in fields still at their defaults.
	assert.Equal(t, "2.0.0", GetVersion())
	assert.Equal(t, "abc1234", GetGitCommit())
}
