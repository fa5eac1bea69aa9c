package buildinfo

import (
	"strings"
	"testing"
)

func TestShortPrefersVersion(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })

	Version, Commit, Date = "v1.2.0", "abc1234", "2024-05-01"
	if got := Short(); got != "v1.2.0" {
		t.Fatalf("Short() = %q", got)
	}
	if got := Banner(); got != "tiny3d v1.2.0 (2024-05-01)" {
		t.Fatalf("Banner() = %q", got)
	}

	Version = "dev"
	if got := Short(); got != "abc1234" {
		t.Fatalf("Short() = %q, want commit", got)
	}

	Date = "unknown"
	if got := Banner(); !strings.HasPrefix(got, "tiny3d ") || strings.Contains(got, "(") {
		t.Fatalf("Banner() = %q", got)
	}
}
