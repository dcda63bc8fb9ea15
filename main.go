package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	versionbump "github.com/bcomnes/versionbump/pkg"
	"github.com/bcomnes/versionbump/pkg/logging"
)

const name = "versionbump"

var errMissingCommand = errors.New("a subcommand is required")

type rootOptions struct {
	manifestPath string
	field        string
	logLevel     string
}

func (o *rootOptions) config() versionbump.Config {
	return versionbump.Config{
		ManifestPath: o.manifestPath,
		Field:        o.field,
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   name + " [options] <read|bump>",
		Short: "Read or bump the semantic version in a package manifest",
		Long: `Reads or bumps the semantic version stored in a package manifest (default: ./Cargo.toml,
field package.version). Only the version string is rewritten; the rest of the file is kept byte for byte.

Examples:
  versionbump read --version
  versionbump bump --minor
  versionbump --manifest-path crates/core/Cargo.toml bump --pre rc.1
  versionbump --manifest-path pyproject.toml --field project.version bump --patch`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.SetDefaultStructuredLoggerWithLevel(name, Version, opts.logLevel)
			slog.Debug("starting",
				"name", name,
				"version", Version,
				"command", cmd.Name(),
				"manifest", opts.manifestPath)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(cmd.ErrOrStderr())
			if err := cmd.Help(); err != nil {
				return err
			}
			return errMissingCommand
		},
	}
	cmd.SetVersionTemplate(name + " CLI version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&opts.manifestPath, "manifest-path", versionbump.DefaultManifestPath, "Path to the manifest file")
	cmd.PersistentFlags().StringVar(&opts.field, "field", versionbump.DefaultField, "Dotted key path of the version string in the manifest")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to $"+logging.EnvLogLevel+" or warn")

	cmd.AddCommand(newReadCmd(opts), newBumpCmd(opts))
	return cmd
}

// run executes the CLI with args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
