// Package mmap maps record files read-only into memory.
//
// A mapping lets a reader walk a large file without copying it through a
// read buffer. The kernel is advised that access is sequential. On platforms
// without mmap support, [Map] reads the file into memory instead so callers
// never need a second code path.
package mmap
