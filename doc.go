// Package main implements the versionbump CLI tool.
//
// The versionbump tool reads and bumps the semantic version stored in a TOML
// package manifest (default "./Cargo.toml", field "package.version"). A bump
// rewrites only the bytes of the version string; comments, key order,
// whitespace and the quoting of the string are kept as they were. With
// --commit the manifest is also committed with the new version as the commit
// message (without the "v" prefix) and the commit is tagged with the new
// version prefixed with "v".
//
// Command Usage:
//
//	versionbump [global flags] read (--version|--major|--minor|--patch|--pre|--build)
//	versionbump [global flags] bump (--major|--minor|--patch|--pre <label>|--build <label>|--version <version>)
//
// Global Flags:
//
//	--manifest-path: Path to the manifest file. (Defaults to "Cargo.toml")
//	--field:         Dotted key path of the version string. (Defaults to "package.version")
//	--log-level:     Log level (debug, info, warn, error). Falls back to $LOG_LEVEL, then warn.
//	--version:       Displays the version of the versionbump CLI tool and exits.
//
// Bump Flags:
//
//	--dry-run: Prints the new version without writing the manifest.
//	--commit:  Commits the manifest and tags the commit with the new version.
//	--file:    Additional file to stage together with the manifest when committing.
//	           This flag may be used multiple times.
//
// Examples:
//
//	# Print the full version (e.g. 1.2.3-alpha.1+build.7)
//	versionbump read --version
//
//	# Print the pre-release label (e.g. alpha.1), or an empty line if there is none
//	versionbump read --pre
//
//	# Bump the major version (e.g. 1.2.3-rc.1 → 2.0.0)
//	versionbump bump --major
//
//	# Set a pre-release label (e.g. 0.9.0 → 0.9.0-rc.2)
//	versionbump bump --pre rc.2
//
//	# Remove the build metadata (e.g. 1.0.0+sha.1 → 1.0.0)
//	versionbump bump --build ""
//
//	# Set an explicit version
//	versionbump bump --version 6.0.0-beta
//
//	# Bump a different manifest and field
//	versionbump --manifest-path pyproject.toml --field project.version bump --minor
//
//	# Bump the patch version, commit it together with CHANGELOG.md and tag it
//	versionbump bump --patch --commit --file CHANGELOG.md
//
// Any failure prints "Error: <message>" on stderr and exits with status 1,
// leaving the manifest untouched.
//
// For the library API see the "pkg" package.
package main
