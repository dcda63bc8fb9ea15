package versionbump

import (
	"bytes"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
)

// TagName returns the git tag recorded for version: the version prefixed
// with "v".
func TagName(v Version) string {
	return "v" + v.String()
}

// checkGit verifies that git is available on the system.
func checkGit() error {
	cmd := exec.Command("git", "--version")
	if err := cmd.Run(); err != nil {
		return newError(ErrCodeGit, "git is not available on the system")
	}
	return nil
}

// runGit runs git in dir and returns its standard output.
func runGit(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", wrapErrorWithContext(ErrCodeGit,
			fmt.Sprintf("git %s failed: %s", args[0], strings.TrimSpace(stderr.String())), err,
			map[string]any{"args": args, "dir": dir})
	}
	return stdout.String(), nil
}

// repoRoot returns the top-level directory of the work tree containing dir.
func repoRoot(dir string) (string, error) {
	out, err := runGit(dir, "rev-parse", "--show-toplevel")
	return strings.TrimSpace(out), err
}

// checkUncommittedFiles ensures only allowed files are modified in the work
// tree containing dir.
func checkUncommittedFiles(dir string, allowed []string) error {
	root, err := repoRoot(dir)
	if err != nil {
		return err
	}
	out, err := runGit(dir, "status", "--porcelain")
	if err != nil {
		return err
	}

	allowedSet := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("failed to resolve path %q: %w", f, err)
		}
		if resolved, err := filepath.EvalSymlinks(abs); err == nil {
			abs = resolved
		}
		allowedSet[abs] = struct{}{}
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	var disallowed []string
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		path := strings.TrimSpace(line[3:])
		if i := strings.Index(path, " -> "); i >= 0 {
			path = path[i+len(" -> "):]
		}
		path = strings.Trim(path, `"`)
		if _, ok := allowedSet[filepath.Join(root, filepath.FromSlash(path))]; !ok {
			disallowed = append(disallowed, path)
		}
	}

	if len(disallowed) > 0 {
		return newErrorWithContext(ErrCodeGit,
			fmt.Sprintf("working directory is dirty; uncommitted files not included in commit: %v", disallowed),
			map[string]any{"files": disallowed})
	}
	return nil
}

// checkStageable runs a dry-run "git add" so that missing or ignored paths
// are reported before anything is written.
func checkStageable(dir string, files []string) error {
	args := append([]string{"add", "--dry-run", "--"}, files...)
	_, err := runGit(dir, args...)
	return err
}

// gitCommit stages files, commits with a message equal to the new version
// (without the "v" prefix), and tags the commit with TagName.
func gitCommit(dir string, newVersion Version, files []string) error {
	tag := TagName(newVersion)

	addArgs := append([]string{"add", "--"}, files...)
	if _, err := runGit(dir, addArgs...); err != nil {
		return err
	}
	slog.Debug("staged files", "files", files)

	if _, err := runGit(dir, "commit", "-m", newVersion.String()); err != nil {
		return err
	}
	if _, err := runGit(dir, "tag", tag); err != nil {
		return err
	}
	slog.Debug("committed and tagged", "version", newVersion.String(), "tag", tag)
	return nil
}
