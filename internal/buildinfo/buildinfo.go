// Package buildinfo carries version stamps set with
//
//	-ldflags "-X tiny3d/internal/buildinfo.Version=v1.2.0 -X tiny3d/internal/buildinfo.Commit=abc1234"
package buildinfo

import "runtime/debug"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns the version, falling back to the commit and then "dev".
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if c := commit(); c != "" {
		return c
	}
	return "dev"
}

// Banner is the one-line startup identification.
func Banner() string {
	s := "tiny3d " + Short()
	if Date != "" && Date != "unknown" {
		s += " (" + Date + ")"
	}
	return s
}

// commit prefers the stamped value and otherwise uses the VCS revision
// recorded by the go tool.
func commit() string {
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}
