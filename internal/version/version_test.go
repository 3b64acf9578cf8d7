package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultsAreUnknown(t *testing.T) {
	assert.Equal(t, "siteconf unknown (commit unknown, built unknown)", String())
}

func TestStringUsesStampedValues(t *testing.T) {
	prevV, prevC, prevT := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = prevV, prevC, prevT })

	Version, GitCommit, BuildTime = "v1.2.3", "abc123", "2026-01-02"
	assert.Equal(t, "siteconf v1.2.3 (commit abc123, built 2026-01-02)", String())
}
