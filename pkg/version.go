package versionbump

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	modsemver "golang.org/x/mod/semver"
)

// Version is a semantic version: major.minor.patch with optional
// pre-release and build labels.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
	Pre   Label
	Build Label
}

// ParseVersion parses a full semantic version string such as
// "1.2.3-alpha.1+build.7". The grammar is strict: no "v" prefix, exactly
// three numeric components without leading zeros. The pre-release follows
// the identifier rules of ParseLabel; build metadata only needs to be
// well formed, so "1.0.0+001" is accepted.
func ParseVersion(s string) (Version, error) {
	sv, err := semver.StrictNewVersion(s)
	if err != nil {
		return Version{}, wrapErrorWithContext(ErrCodeInvalidVersion,
			fmt.Sprintf("invalid version %q", s), err, map[string]any{"version": s})
	}
	pre, err := ParseLabel(sv.Prerelease())
	if err != nil {
		return Version{}, wrapErrorWithContext(ErrCodeInvalidVersion,
			fmt.Sprintf("invalid version %q", s), err, map[string]any{"version": s})
	}
	build, err := parseBuildMetadata(sv.Metadata())
	if err != nil {
		return Version{}, wrapErrorWithContext(ErrCodeInvalidVersion,
			fmt.Sprintf("invalid version %q", s), err, map[string]any{"version": s})
	}
	v := Version{
		Major: sv.Major(),
		Minor: sv.Minor(),
		Patch: sv.Patch(),
		Pre:   pre,
		Build: build,
	}
	// A strictly valid version renders back to its input; anything else
	// (such as a dangling "-" or "+") slipped past the parser.
	if v.String() != s {
		return Version{}, newErrorWithContext(ErrCodeInvalidVersion,
			fmt.Sprintf("invalid version %q", s), map[string]any{"version": s})
	}
	return v, nil
}

// MustParseVersion parses a version string and panics if parsing fails.
// Only use this for hardcoded strings or in tests.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(fmt.Sprintf("MustParseVersion: %v", err))
	}
	return v
}

// String renders the canonical form major.minor.patch[-pre][+build].
func (v Version) String() string {
	return semver.New(v.Major, v.Minor, v.Patch, v.Pre.String(), v.Build.String()).String()
}

// Equal reports whether two versions are identical, build metadata included.
func (v Version) Equal(other Version) bool {
	return v.Major == other.Major && v.Minor == other.Minor && v.Patch == other.Patch &&
		v.Pre.Equal(other.Pre) && v.Build.Equal(other.Build)
}

// Compare returns -1, 0 or 1 depending on whether v has lower, equal or
// higher precedence than other. Build metadata does not take part in
// precedence.
func (v Version) Compare(other Version) int {
	return modsemver.Compare(TagName(v), TagName(other))
}
