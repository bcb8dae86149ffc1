// Package fs abstracts the local filesystem so record files can be created
// and opened through an injectable implementation.
//
//   - [LocalFS] is the production implementation backed by package os.
//   - [FaultyFS] wraps another FileSystem and injects write, sync, close and
//     read failures for tests.
//
// Operations take no context.Context. Local file calls are not
// interruptible at the syscall level; remote storage goes through package
// blobstore instead.
package fs
