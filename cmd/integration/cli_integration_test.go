package integration

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// buildCLI builds the versionbump binary into a temporary directory.
func buildCLI(t *testing.T) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "versionbump")
	// The main package is the repository root, two levels above cmd/integration.
	buildCmd := exec.Command("go", "build", "-o", binPath, "../..")
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build CLI binary: %v; build output: %s", err, string(output))
	}
	return binPath
}

// runBinary runs the binary in dir and returns stdout, stderr and the exit code.
func runBinary(t *testing.T, bin, dir string, args ...string) (string, string, int) {
	t.Helper()
	cmd := exec.Command(bin, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return stdout.String(), stderr.String(), exitErr.ExitCode()
	}
	if err != nil {
		t.Fatalf("failed to run %s: %v", bin, err)
	}
	return stdout.String(), stderr.String(), 0
}

func TestCLIBinaryScenarios(t *testing.T) {
	bin := buildCLI(t)

	tests := []struct {
		name    string
		initial string
		args    []string
		stdout  string
		want    string
	}{
		{
			name:    "bump major",
			initial: "1.2.3",
			args:    []string{"bump", "--major"},
			want:    "2.0.0",
		},
		{
			name:    "read pre-release",
			initial: "1.2.3-alpha.1+build.7",
			args:    []string{"read", "--pre"},
			stdout:  "alpha.1\n",
			want:    "1.2.3-alpha.1+build.7",
		},
		{
			name:    "read build",
			initial: "1.2.3-alpha.1+build.7",
			args:    []string{"read", "--build"},
			stdout:  "build.7\n",
			want:    "1.2.3-alpha.1+build.7",
		},
		{
			name:    "set pre-release",
			initial: "0.9.0",
			args:    []string{"bump", "--pre", "rc.2"},
			want:    "0.9.0-rc.2",
		},
		{
			name:    "set version",
			initial: "5.0.0",
			args:    []string{"bump", "--version", "6.0.0-beta"},
			want:    "6.0.0-beta",
		},
		{
			name:    "dry run",
			initial: "1.2.3",
			args:    []string{"bump", "--minor", "--dry-run"},
			stdout:  "1.3.0\n",
			want:    "1.2.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			manifest := filepath.Join(dir, "Cargo.toml")
			content := "[package]\nname = \"example\"\nversion = \"" + tt.initial + "\"\n"
			if err := os.WriteFile(manifest, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write manifest: %v", err)
			}

			stdout, stderr, code := runBinary(t, bin, dir, tt.args...)
			if code != 0 {
				t.Fatalf("CLI exited with %d; stdout: %s; stderr: %s", code, stdout, stderr)
			}
			if stdout != tt.stdout {
				t.Errorf("stdout = %q, want %q", stdout, tt.stdout)
			}

			updated, err := os.ReadFile(manifest)
			if err != nil {
				t.Fatalf("failed to read manifest: %v", err)
			}
			want := "[package]\nname = \"example\"\nversion = \"" + tt.want + "\"\n"
			if string(updated) != want {
				t.Errorf("manifest = %q, want %q", string(updated), want)
			}
		})
	}
}

func TestCLIBinaryInvalidVersion(t *testing.T) {
	bin := buildCLI(t)
	dir := t.TempDir()
	manifest := filepath.Join(dir, "Cargo.toml")
	content := "# release manifest\n[package]\nversion = \"5.0.0\"\n"
	if err := os.WriteFile(manifest, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	_, stderr, code := runBinary(t, bin, dir, "bump", "--version", "not-a-version")
	if code == 0 {
		t.Fatal("expected a non-zero exit code for an invalid version")
	}
	if !strings.HasPrefix(stderr, "Error:") {
		t.Errorf("expected an error message on stderr, got %q", stderr)
	}

	updated, err := os.ReadFile(manifest)
	if err != nil {
		t.Fatalf("failed to read manifest: %v", err)
	}
	if string(updated) != content {
		t.Errorf("manifest changed after a failed bump:\n%s", string(updated))
	}
}

func TestCLIBinaryCommit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	bin := buildCLI(t)
	tmpRepo := t.TempDir()

	gitCmds := [][]string{
		{"git", "init"},
		{"git", "config", "user.email", "test@example.com"},
		{"git", "config", "user.name", "Test User"},
	}
	for _, args := range gitCmds {
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Dir = tmpRepo
		if output, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("%v failed: %v; output: %s", args, err, string(output))
		}
	}

	crateDir := filepath.Join(tmpRepo, "crates", "core")
	if err := os.MkdirAll(crateDir, 0755); err != nil {
		t.Fatalf("failed to create crate directory: %v", err)
	}
	manifest := filepath.Join(crateDir, "Cargo.toml")
	if err := os.WriteFile(manifest, []byte("[package]\nname = \"core\"\nversion = \"1.2.3\"\n"), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	for _, args := range [][]string{{"git", "add", "."}, {"git", "commit", "-m", "initial commit"}} {
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Dir = tmpRepo
		if output, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("%v failed: %v; output: %s", args, err, string(output))
		}
	}

	stdout, stderr, code := runBinary(t, bin, tmpRepo,
		"--manifest-path", filepath.Join("crates", "core", "Cargo.toml"), "bump", "--patch", "--commit")
	if code != 0 {
		t.Fatalf("CLI command failed with %d; stdout: %s; stderr: %s", code, stdout, stderr)
	}

	updated, err := os.ReadFile(manifest)
	if err != nil {
		t.Fatalf("failed to read manifest: %v", err)
	}
	if !strings.Contains(string(updated), `version = "1.2.4"`) {
		t.Errorf("manifest not updated; expected 'version = \"1.2.4\"' in content, got:\n%s", string(updated))
	}

	gitTagCmd := exec.Command("git", "tag")
	gitTagCmd.Dir = tmpRepo
	tagOutput, err := gitTagCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git tag command failed: %v; output: %s", err, string(tagOutput))
	}
	tags := strings.Split(strings.TrimSpace(string(tagOutput)), "\n")
	expectedTag := "v1.2.4"
	if !slices.Contains(tags, expectedTag) {
		t.Errorf("expected git tag %q not found; got tags: %v", expectedTag, tags)
	}
}
