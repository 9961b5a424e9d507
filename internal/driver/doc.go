// Package driver runs the analysis over files on disk: source discovery,
// the parallel worker pool, the result cache and output writing. The core
// packages below it never touch the filesystem.
package driver
