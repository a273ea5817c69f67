// Package version provides libmonado API version parsing and caret-range
// compatibility checks.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Required is the API range this binding was written against.
const Required = "^1.3.0"

// APIVersion is a libmonado "major.minor.patch" version triple.
type APIVersion struct {
	Major uint32
	Minor uint32
	Patch uint32
}

// Parse parses a "major.minor.patch" version string.
func Parse(s string) (APIVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return APIVersion{}, fmt.Errorf("invalid version %q: expected major.minor.patch", s)
	}

	var nums [3]uint32
	for i, p := range parts {
		if p == "" {
			return APIVersion{}, fmt.Errorf("invalid version %q: empty component", s)
		}
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return APIVersion{}, fmt.Errorf("invalid version %q: bad component %q", s, p)
		}
		nums[i] = uint32(n)
	}

	return APIVersion{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String returns the version as "major.minor.patch".
func (v APIVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// semver returns the canonical "vX.Y.Z" form used by golang.org/x/mod/semver.
func (v APIVersion) semver() string {
	return "v" + v.String()
}

// Requirement is a caret version range such as "^1.3.0".
//
// For a floor with a non-zero major version, compatible versions share the
// major version and are not lower than the floor. For 0.y.z floors the minor
// (or, for 0.0.z, the patch) version must match as well.
type Requirement struct {
	floor APIVersion
}

// ParseRequirement parses a caret requirement. The leading "^" is optional.
func ParseRequirement(s string) (Requirement, error) {
	floor, err := Parse(strings.TrimPrefix(s, "^"))
	if err != nil {
		return Requirement{}, fmt.Errorf("invalid requirement %q: %w", s, err)
	}
	return Requirement{floor: floor}, nil
}

// MustParseRequirement is like ParseRequirement but panics on error.
func MustParseRequirement(s string) Requirement {
	r, err := ParseRequirement(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Floor returns the lowest version the requirement accepts.
func (r Requirement) Floor() APIVersion {
	return r.floor
}

// String returns the requirement as "^major.minor.patch".
func (r Requirement) String() string {
	return "^" + r.floor.String()
}

// Matches reports whether v satisfies the requirement.
func (r Requirement) Matches(v APIVersion) bool {
	have, floor := v.semver(), r.floor.semver()

	switch {
	case r.floor.Major > 0:
		if semver.Major(have) != semver.Major(floor) {
			return false
		}
	case r.floor.Minor > 0:
		if semver.MajorMinor(have) != semver.MajorMinor(floor) {
			return false
		}
	default:
		return semver.Compare(have, floor) == 0
	}

	return semver.Compare(have, floor) >= 0
}
