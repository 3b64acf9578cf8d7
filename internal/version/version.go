// Package version carries build metadata stamped in with -ldflags, e.g.
//
//	go build -ldflags "-X git.home.luguber.info/inful/siteconf/internal/version.Version=v0.3.0"
package version

import "fmt"

var (
	Version   = "unknown"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// String renders the line printed by --version.
func String() string {
	return fmt.Sprintf("siteconf %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
