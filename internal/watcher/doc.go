// Package watcher delivers file creation events for a single directory.
//
// Watching is not recursive: entries created inside sub-directories are not
// reported. Events are delivered one at a time on the goroutine that calls
// Run; modifications, removals and renames are dropped.
package watcher
