package buildinfo

import "fmt"

// These variables are intended to be set via -ldflags at build time:
//
//	-X 'github.com/m3rciful/taskbot/core/buildinfo.Version=v1.2.3'
//	-X 'github.com/m3rciful/taskbot/core/buildinfo.Commit=abcdef0'
//	-X 'github.com/m3rciful/taskbot/core/buildinfo.Date=2025-08-30T12:00:00Z'
var (
	Version = "dev"
	Commit  = "local"
	Date    = ""
)

// String renders a one-line build description for the version command.
func String() string {
	if Date == "" {
		return fmt.Sprintf("taskbot %s (%s)", Version, Commit)
	}
	return fmt.Sprintf("taskbot %s (%s, built %s)", Version, Commit, Date)
}
