// Package version provides control protocol version checks and kOS version
// parsing.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// MinProtocol is the oldest control protocol version this library supports.
// Older firmware predates several of the messages the device façade relies
// on.
const MinProtocol = 16

// Supported reports whether a device protocol version is usable.
func Supported(protocol int) bool {
	return protocol >= MinProtocol
}

// KOSVersion is a parsed kOS software version, as reported by
// SYSTEM_VERSION: "major.minor.patch-build". The build component is
// optional.
type KOSVersion struct {
	Major int
	Minor int
	Patch int
	Build string
}

// ParseKOS parses a kOS version string.
func ParseKOS(s string) (KOSVersion, error) {
	release, build, _ := strings.Cut(s, "-")

	parts := strings.Split(release, ".")
	if len(parts) != 3 {
		return KOSVersion{}, fmt.Errorf("invalid kOS version %q: expected major.minor.patch", s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || p == "" {
			return KOSVersion{}, fmt.Errorf("invalid kOS version %q: bad component %q", s, p)
		}
		nums[i] = n
	}

	return KOSVersion{Major: nums[0], Minor: nums[1], Patch: nums[2], Build: build}, nil
}

// String returns the version as "major.minor.patch" or
// "major.minor.patch-build".
func (v KOSVersion) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Build != "" {
		s += "-" + v.Build
	}
	return s
}

// AtLeast reports whether v is the same release as other or newer. Build
// numbers are not compared.
func (v KOSVersion) AtLeast(other KOSVersion) bool {
	if v.Major != other.Major {
		return v.Major > other.Major
	}
	if v.Minor != other.Minor {
		return v.Minor > other.Minor
	}
	return v.Patch >= other.Patch
}
