package exitcode

// Exit codes for the watcher CLI.
// Only startup failures are reported through the exit code; per-file
// upload failures are logged and never stop the process.
const (
	// Success - clean shutdown after an interrupt
	Success = 0

	// ConfigError - invalid configuration value
	// Fix the environment first
	ConfigError = 1

	// WatchError - watch directory missing, not a directory or not watchable
	WatchError = 2

	// StorageError - storage client could not be built or preflight failed
	StorageError = 3
)
