package registry

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CompareVersions compares two version strings using semver.
// Returns -1 if installed < available, 0 if equal, 1 if installed > available.
// Handles "v" prefix tolerance (strips leading "v" before parsing).
func CompareVersions(installed, available string) (int, error) {
	iv, err := parseSemver(installed)
	if err != nil {
		return 0, fmt.Errorf("parsing installed version %q: %w", installed, err)
	}
	av, err := parseSemver(available)
	if err != nil {
		return 0, fmt.Errorf("parsing available version %q: %w", available, err)
	}
	return iv.Compare(av), nil
}

// IsOutOfDate reports whether an installed extension should be upgraded to
// the available version. An installed version that is not valid semver is
// always out of date; an invalid available version is an error.
func IsOutOfDate(installed, available string) (bool, error) {
	if _, err := parseSemver(available); err != nil {
		return false, fmt.Errorf("parsing available version %q: %w", available, err)
	}
	cmp, err := CompareVersions(installed, available)
	if err != nil {
		return true, nil
	}
	return cmp < 0, nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
