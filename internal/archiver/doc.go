// Package archiver packs and unpacks Sublime Text configuration directories
// by shelling out to an external 7-Zip-compatible binary (7za, 7zz, or 7z).
//
// The package owns three concerns:
//
//   - locating the binary (config override, then PATH lookup)
//   - assembling command-line arguments for the add ("a") and extract ("x")
//     modes, including -x! exclusion patterns and optional -p passwords
//   - running the process and mapping its exit code to typed errors
//
// Archives are always ZIP (-tzip) so they can be opened without 7-Zip.
// Exit code 1 ("warning", e.g. files locked during scan) is logged and
// tolerated; anything higher fails the operation with ErrArchiverFailed.
//
// The [Executor] seam exists so argument assembly and orchestration are
// testable without a 7-Zip installation.
package archiver
