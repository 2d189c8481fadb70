package domain

import (
	"slices"
	"time"
)

// Settings holds the resolved runtime configuration.
type Settings struct {
	// BuildFile is the build script name looked up in each project root.
	BuildFile string
	// WatchFiles are project-root file names whose changes invalidate cached options.
	WatchFiles []string
	// Debounce is the window used to coalesce bursts of file events.
	Debounce time.Duration
}

// DefaultSettings returns the settings used when no config file is present.
func DefaultSettings() Settings {
	return Settings{
		BuildFile:  BuildFileName,
		WatchFiles: DefaultWatchFiles(),
		Debounce:   DefaultDebounceWindow,
	}
}

// Watches reports whether a change to the named root-level file should invalidate the project.
func (s Settings) Watches(name string) bool {
	return name == s.BuildFile || slices.Contains(s.WatchFiles, name)
}
