package domain

import "time"

const (
	// BuildFileName is the default name of the project build script.
	BuildFileName = "build.gradle"

	// SettingsFileName is the name of the Gradle settings script.
	SettingsFileName = "settings.gradle"

	// PropertiesFileName is the name of the Gradle properties file.
	PropertiesFileName = "gradle.properties"

	// ConfigFileName is the name of the optional jopts configuration file.
	ConfigFileName = ".jopts.yaml"

	// CompilerArgsMarker introduces a compiler-arguments declaration in a build script.
	CompilerArgsMarker = "options.compilerArgs"

	// DefaultDebounceWindow is the default time window for coalescing file events.
	DefaultDebounceWindow = 50 * time.Millisecond
)

// DefaultWatchFiles returns the project-root files whose changes invalidate cached options.
func DefaultWatchFiles() []string {
	return []string{BuildFileName, SettingsFileName, PropertiesFileName}
}
