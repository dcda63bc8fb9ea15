// Package versionbump reads and changes the semantic version stored in a
// package manifest such as Cargo.toml.
//
// It provides functionalities for:
//   - Parsing versions (major.minor.patch[-pre][+build]) and the dot-separated
//     identifier labels of their pre-release and build components.
//   - Applying a single Operation to a version: incrementing major, minor or
//     patch (which clears both pre-release and build metadata), or replacing
//     the pre-release label, the build label or the whole version.
//   - Loading a TOML manifest, reading the version string at a dotted key path
//     (package.version by default) and writing a new value back while leaving
//     every other byte of the file untouched.
//   - Optionally committing the rewritten manifest with git and tagging the
//     commit with the new version prefixed with "v".
//
// This library backs the versionbump command-line tool in the repository root
// and can be used directly from other Go programs.
//
// Usage Example:
//
//	import (
//	    "log"
//	    "github.com/bcomnes/versionbump/pkg"
//	)
//
//	func main() {
//	    meta, err := versionbump.Run(versionbump.Config{ManifestPath: "Cargo.toml"}, versionbump.IncrementMinor{})
//	    if err != nil {
//	        log.Fatalf("version bump failed: %v", err)
//	    }
//	    log.Printf("bumped %s to %s", meta.OldVersion, meta.NewVersion)
//	}
package versionbump
