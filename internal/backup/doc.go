// Package backup manages mirror backups of the Sublime Text packing roots.
//
// A mirror is a sibling copy of a packing root named <dir>.bak:
//
//	<data>/Packages           → <data>/Packages.bak
//	<data>/Installed Packages → <data>/Installed Packages.bak
//
// Mirrors are the safety net taken before an unpack overwrites the live
// directories. The operations are deliberately best-effort and tolerant of
// partial state:
//
//   - [Manager.Create] removes stale mirrors, then copies each existing root
//     to its mirror. A root that does not exist is skipped. A copy is skipped
//     when the mirror already exists.
//   - [Manager.Remove] deletes mirrors; absence is not an error.
//   - [Manager.Restore] moves mirrors back into place. A live directory is
//     never clobbered unless force is set.
//
// A root and its mirror are not required to both exist at any point; Status
// reports whatever combination is on disk.
package backup
