package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	versionbump "github.com/bcomnes/versionbump/pkg"
)

var readFlags = []struct {
	name      string
	usage     string
	component versionbump.Component
}{
	{"version", "Print the VERSION set in the given manifest", versionbump.ComponentFull},
	{"major", "Print the MAJOR version of this package", versionbump.ComponentMajor},
	{"minor", "Print the MINOR version of this package", versionbump.ComponentMinor},
	{"patch", "Print the PATCH version of this package", versionbump.ComponentPatch},
	{"pre", "Print the PRE-RELEASE version of this package", versionbump.ComponentPre},
	{"build", "Print the BUILD metadata of this package", versionbump.ComponentBuild},
}

func newReadCmd(opts *rootOptions) *cobra.Command {
	selected := make([]bool, len(readFlags))
	names := make([]string, len(readFlags))

	cmd := &cobra.Command{
		Use:   "read (--version|--major|--minor|--patch|--pre|--build)",
		Short: "Print one component of the manifest version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			component, ok := versionbump.ComponentFull, false
			for i, f := range readFlags {
				if selected[i] {
					component, ok = f.component, true
				}
			}
			if !ok {
				return fmt.Errorf("one of the flags --%s is required", joinFlags(names))
			}

			out, err := versionbump.Read(opts.config(), component)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	for i, f := range readFlags {
		names[i] = f.name
		cmd.Flags().BoolVar(&selected[i], f.name, false, f.usage)
	}
	cmd.MarkFlagsMutuallyExclusive(names...)
	cmd.MarkFlagsOneRequired(names...)
	return cmd
}

type bumpOptions struct {
	major, minor, patch bool
	pre, build, version string

	dryRun     bool
	commit     bool
	extraFiles []string
}

var bumpOperationFlags = []string{"major", "minor", "patch", "pre", "build", "version"}

// operation turns the parsed flags into the single Operation they select.
// Labels and versions are validated here, before any file is read.
func (o *bumpOptions) operation(cmd *cobra.Command) (versionbump.Operation, error) {
	flags := cmd.Flags()
	switch {
	case o.major:
		return versionbump.IncrementMajor{}, nil
	case o.minor:
		return versionbump.IncrementMinor{}, nil
	case o.patch:
		return versionbump.IncrementPatch{}, nil
	case flags.Changed("pre"):
		return versionbump.NewSetPreRelease(o.pre)
	case flags.Changed("build"):
		return versionbump.NewSetBuild(o.build)
	case flags.Changed("version"):
		return versionbump.NewSetVersion(o.version)
	}
	return nil, fmt.Errorf("one of the flags --%s is required", joinFlags(bumpOperationFlags))
}

func newBumpCmd(opts *rootOptions) *cobra.Command {
	o := &bumpOptions{}

	cmd := &cobra.Command{
		Use:   "bump (--major|--minor|--patch|--pre <label>|--build <label>|--version <version>)",
		Short: "Change the manifest version and write it back",
		Long: `Changes the manifest version and writes it back.

--major, --minor and --patch increment that component, reset the lower ones and clear
both the pre-release and the build metadata. --pre and --build replace that label
(an empty label removes it). --version replaces the whole version.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			op, err := o.operation(cmd)
			if err != nil {
				return err
			}

			cfg := opts.config()
			cfg.Commit = o.commit
			cfg.ExtraFiles = o.extraFiles

			if o.dryRun {
				meta, err := versionbump.DryRun(cfg, op)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), meta.NewVersion)
				return nil
			}

			meta, err := versionbump.Run(cfg, op)
			if err != nil {
				return err
			}
			slog.Info("version bumped",
				"old", meta.OldVersion,
				"new", meta.NewVersion,
				"bump", meta.BumpType,
				"files", meta.UpdatedFiles)
			return nil
		},
	}

	cmd.Flags().BoolVar(&o.major, "major", false, "Bump the MAJOR version")
	cmd.Flags().BoolVar(&o.minor, "minor", false, "Bump the MINOR version")
	cmd.Flags().BoolVar(&o.patch, "patch", false, "Bump the PATCH version")
	cmd.Flags().StringVar(&o.pre, "pre", "", "Set the PRE-RELEASE label")
	cmd.Flags().StringVar(&o.build, "build", "", "Set the BUILD metadata")
	cmd.Flags().StringVar(&o.version, "version", "", "Set the VERSION")
	cmd.MarkFlagsMutuallyExclusive(bumpOperationFlags...)
	cmd.MarkFlagsOneRequired(bumpOperationFlags...)

	cmd.Flags().BoolVar(&o.dryRun, "dry-run", false, "Print the new version without modifying any file")
	cmd.Flags().BoolVar(&o.commit, "commit", false, "Commit the manifest with git and tag the commit with the new version")
	cmd.Flags().StringArrayVar(&o.extraFiles, "file", nil, "Additional file to stage and commit with --commit. May be repeated.")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "commit")
	return cmd
}

func joinFlags(names []string) string {
	return strings.Join(names, "|--")
}
