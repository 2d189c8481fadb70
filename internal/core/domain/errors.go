package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidProject is returned when a provider is constructed for a project without a root.
	ErrInvalidProject = zerr.New("project root must not be empty")

	// ErrNilDependency is returned when a required collaborator is missing at construction time.
	ErrNilDependency = zerr.New("required dependency is nil")

	// ErrProjectNotFound is returned when no build script is found above a queried path.
	ErrProjectNotFound = zerr.New("could not find a build script for path")

	// ErrBuildScriptReadFailed is returned when the build script exists but cannot be read.
	ErrBuildScriptReadFailed = zerr.New("failed to read build script")

	// ErrFailedToGetRoot is returned when the absolute path of a queried path cannot be determined.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidBuildFile is returned when the configured build file is not a plain file name.
	ErrInvalidBuildFile = zerr.New("build file must be a file name without directories")

	// ErrInvalidDebounce is returned when the configured debounce window is not a valid duration.
	ErrInvalidDebounce = zerr.New("invalid debounce duration")

	// ErrWatchFailed is returned when the file system watcher cannot watch a project.
	ErrWatchFailed = zerr.New("failed to watch project")
)
