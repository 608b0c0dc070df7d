package graph

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a three-component semantic version (major.minor.patch) used
// to track PromptTemplate revisions. Zero value is 0.0.0; use
// DefaultVersion for the conventional starting point of 1.0.0.
type Version struct {
	Major uint16
	Minor uint16
	Patch uint16
}

// DefaultVersion returns 1.0.0, the version newly created templates start at.
func DefaultVersion() Version { return Version{Major: 1, Minor: 0, Patch: 0} }

// String renders the version as "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ParseVersion parses a "major.minor.patch" string, requiring exactly
// three dot-separated components.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("graph: version %q must have exactly 3 components", s)
	}
	nums := make([]uint64, 3)
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 16)
		if err != nil {
			return Version{}, fmt.Errorf("graph: version %q: %w", s, err)
		}
		nums[i] = n
	}
	return Version{Major: uint16(nums[0]), Minor: uint16(nums[1]), Patch: uint16(nums[2])}, nil
}

// Less reports whether v sorts strictly before other.
func (v Version) Less(other Version) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	if v.Minor != other.Minor {
		return v.Minor < other.Minor
	}
	return v.Patch < other.Patch
}

// BumpMajor increments Major and resets Minor and Patch to 0.
func (v *Version) BumpMajor() {
	v.Major++
	v.Minor = 0
	v.Patch = 0
}

// BumpMinor increments Minor and resets Patch to 0.
func (v *Version) BumpMinor() {
	v.Minor++
	v.Patch = 0
}

// BumpPatch increments Patch.
func (v *Version) BumpPatch() {
	v.Patch++
}
