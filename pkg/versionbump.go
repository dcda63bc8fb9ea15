package versionbump

import (
	"fmt"
	"log/slog"
	"path/filepath"
)

// Config locates the manifest and controls what a bump does besides
// rewriting it.
type Config struct {
	// ManifestPath is the manifest file. Defaults to DefaultManifestPath.
	ManifestPath string
	// Field is the dotted key path of the version string. Defaults to
	// DefaultField.
	Field string
	// Commit stages the manifest and ExtraFiles, commits them with the new
	// version as the message and tags the commit with TagName.
	Commit bool
	// ExtraFiles are staged together with the manifest when Commit is set.
	ExtraFiles []string
}

func (c Config) withDefaults() Config {
	if c.ManifestPath == "" {
		c.ManifestPath = DefaultManifestPath
	}
	if c.Field == "" {
		c.Field = DefaultField
	}
	return c
}

// VersionMeta holds metadata about the version bump operation.
type VersionMeta struct {
	OldVersion   string   // The version before bumping.
	NewVersion   string   // The new version after bumping.
	BumpType     string   // The Operation name (e.g. "major", "pre", "explicit").
	UpdatedFiles []string // Paths of all files written (or that would be written on a dry run).
}

// Read loads the manifest and renders the requested component of its
// version.
func Read(cfg Config, c Component) (string, error) {
	cfg = cfg.withDefaults()
	m, err := LoadManifest(cfg.ManifestPath, cfg.Field)
	if err != nil {
		return "", err
	}
	v, err := m.Version()
	if err != nil {
		return "", err
	}
	return Select(v, c), nil
}

// plan loads the manifest and computes the new version without writing.
func plan(cfg Config, op Operation) (m *Manifest, current, next Version, meta VersionMeta, err error) {
	m, err = LoadManifest(cfg.ManifestPath, cfg.Field)
	if err != nil {
		return nil, Version{}, Version{}, meta, err
	}
	current, err = m.Version()
	if err != nil {
		return nil, Version{}, Version{}, meta, err
	}
	next, err = Apply(current, op)
	if err != nil {
		return nil, Version{}, Version{}, meta, err
	}

	meta.OldVersion = current.String()
	meta.NewVersion = next.String()
	meta.BumpType = op.Name()

	slog.Debug("version computed",
		"old", meta.OldVersion,
		"new", meta.NewVersion,
		"bump", meta.BumpType)

	m.SetVersion(next)
	return m, current, next, meta, nil
}

// Run applies op to the manifest's version and writes the manifest back.
// The manifest is only written once the new version has been computed, so
// a failed bump leaves it untouched. With cfg.Commit the change is also
// committed and tagged in git.
func Run(cfg Config, op Operation) (VersionMeta, error) {
	cfg = cfg.withDefaults()

	if cfg.Commit {
		if err := checkGit(); err != nil {
			return VersionMeta{}, err
		}
	}

	m, current, next, meta, err := plan(cfg, op)
	if err != nil {
		return meta, err
	}

	dir := filepath.Dir(cfg.ManifestPath)
	files := append([]string{cfg.ManifestPath}, cfg.ExtraFiles...)
	if cfg.Commit {
		if meta.NewVersion == meta.OldVersion {
			return meta, newError(ErrCodeGit,
				fmt.Sprintf("new version (%s) is the same as the current version", meta.NewVersion))
		}
		if err := checkUncommittedFiles(dir, files); err != nil {
			return meta, err
		}
		if err := checkStageable(dir, relativeTo(dir, files)); err != nil {
			return meta, err
		}
		if next.Compare(current) < 0 {
			slog.Warn("tagging a version with lower precedence than the current one",
				"old", meta.OldVersion,
				"new", meta.NewVersion)
		}
	}

	if err := m.Save(); err != nil {
		return meta, err
	}
	meta.UpdatedFiles = []string{cfg.ManifestPath}

	if cfg.Commit {
		if err := gitCommit(dir, next, relativeTo(dir, files)); err != nil {
			return meta, err
		}
	}
	return meta, nil
}

// DryRun computes what Run would do without writing any file or touching
// the git repository.
func DryRun(cfg Config, op Operation) (VersionMeta, error) {
	cfg = cfg.withDefaults()
	_, _, _, meta, err := plan(cfg, op)
	if err != nil {
		return meta, err
	}
	meta.UpdatedFiles = []string{cfg.ManifestPath}
	return meta, nil
}

// relativeTo rewrites paths so git, running in dir, resolves them to the
// same files.
func relativeTo(dir string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			out = append(out, p)
			continue
		}
		absDir, err := filepath.Abs(dir)
		if err != nil {
			out = append(out, abs)
			continue
		}
		if rel, err := filepath.Rel(absDir, abs); err == nil {
			out = append(out, rel)
		} else {
			out = append(out, abs)
		}
	}
	return out
}
