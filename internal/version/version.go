// Package version carries the build metadata of the symdoc binary.
package version

import "fmt"

// Version is set at build time:
// go build -ldflags "-X git.home.luguber.info/inful/symdoc/internal/version.Version=v1.2.0".
var Version = "unknown"

// Additional build metadata, set the same way as Version.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the metadata for `symdoc --version`.
func String() string {
	return fmt.Sprintf("symdoc %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
