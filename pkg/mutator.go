package versionbump

import (
	"fmt"
	"math"
	"strconv"
)

// Component selects which part of a version Select returns.
type Component int

const (
	ComponentFull Component = iota
	ComponentMajor
	ComponentMinor
	ComponentPatch
	ComponentPre
	ComponentBuild
)

func (c Component) String() string {
	switch c {
	case ComponentFull:
		return "version"
	case ComponentMajor:
		return "major"
	case ComponentMinor:
		return "minor"
	case ComponentPatch:
		return "patch"
	case ComponentPre:
		return "pre"
	case ComponentBuild:
		return "build"
	}
	return "Component(" + strconv.Itoa(int(c)) + ")"
}

// Select renders the chosen component of v. Absent pre-release or build
// labels render as the empty string.
func Select(v Version, c Component) string {
	switch c {
	case ComponentMajor:
		return strconv.FormatUint(v.Major, 10)
	case ComponentMinor:
		return strconv.FormatUint(v.Minor, 10)
	case ComponentPatch:
		return strconv.FormatUint(v.Patch, 10)
	case ComponentPre:
		return v.Pre.String()
	case ComponentBuild:
		return v.Build.String()
	}
	return v.String()
}

// Operation is a write intent. The set of operations is closed: it is one
// of IncrementMajor, IncrementMinor, IncrementPatch, SetPreRelease, SetBuild
// or SetVersion.
type Operation interface {
	// Name is the bump type recorded in VersionMeta.
	Name() string
	apply(v Version) (Version, error)
}

// Apply returns the result of performing op on v. v itself is not modified.
func Apply(v Version, op Operation) (Version, error) {
	return op.apply(v)
}

// IncrementMajor raises major and resets minor and patch. Pre-release and
// build metadata are both cleared.
type IncrementMajor struct{}

func (IncrementMajor) Name() string { return "major" }

func (IncrementMajor) apply(v Version) (Version, error) {
	if v.Major == math.MaxUint64 {
		return Version{}, overflowError(v, "major")
	}
	return Version{Major: v.Major + 1}, nil
}

// IncrementMinor raises minor and resets patch. Pre-release and build
// metadata are both cleared.
type IncrementMinor struct{}

func (IncrementMinor) Name() string { return "minor" }

func (IncrementMinor) apply(v Version) (Version, error) {
	if v.Minor == math.MaxUint64 {
		return Version{}, overflowError(v, "minor")
	}
	return Version{Major: v.Major, Minor: v.Minor + 1}, nil
}

// IncrementPatch raises patch. Pre-release and build metadata are both
// cleared, and patch is raised even when a pre-release was present.
type IncrementPatch struct{}

func (IncrementPatch) Name() string { return "patch" }

func (IncrementPatch) apply(v Version) (Version, error) {
	if v.Patch == math.MaxUint64 {
		return Version{}, overflowError(v, "patch")
	}
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}, nil
}

// SetPreRelease replaces the pre-release label wholesale.
type SetPreRelease struct {
	Label Label
}

// NewSetPreRelease parses label and returns the operation that installs it.
// An empty label removes the pre-release.
func NewSetPreRelease(label string) (SetPreRelease, error) {
	l, err := ParseLabel(label)
	if err != nil {
		return SetPreRelease{}, err
	}
	return SetPreRelease{Label: l}, nil
}

func (SetPreRelease) Name() string { return "pre" }

func (op SetPreRelease) apply(v Version) (Version, error) {
	v.Pre = op.Label
	return v, nil
}

// SetBuild replaces the build metadata label wholesale.
type SetBuild struct {
	Label Label
}

// NewSetBuild parses label and returns the operation that installs it.
// An empty label removes the build metadata.
func NewSetBuild(label string) (SetBuild, error) {
	l, err := ParseLabel(label)
	if err != nil {
		return SetBuild{}, err
	}
	return SetBuild{Label: l}, nil
}

func (SetBuild) Name() string { return "build" }

func (op SetBuild) apply(v Version) (Version, error) {
	v.Build = op.Label
	return v, nil
}

// SetVersion replaces the whole version.
type SetVersion struct {
	Version Version
}

// NewSetVersion parses s as a full semantic version.
func NewSetVersion(s string) (SetVersion, error) {
	v, err := ParseVersion(s)
	if err != nil {
		return SetVersion{}, err
	}
	return SetVersion{Version: v}, nil
}

func (SetVersion) Name() string { return "explicit" }

func (op SetVersion) apply(Version) (Version, error) {
	return op.Version, nil
}

func overflowError(v Version, component string) error {
	return newError(ErrCodeInvalidVersion,
		fmt.Sprintf("cannot increment %s of %s: value out of range", component, v))
}
