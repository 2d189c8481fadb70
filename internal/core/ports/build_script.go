// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/jopts/internal/core/domain"

// BuildScriptSource gives the core access to project build scripts.
//
//go:generate go run go.uber.org/mock/mockgen -source=build_script.go -destination=mocks/mock_build_script.go -package=mocks
type BuildScriptSource interface {
	// ResolveProject walks up from path to the nearest directory containing a build script.
	// It returns domain.ErrProjectNotFound if no such directory exists.
	ResolveProject(path string) (domain.Project, error)

	// ReadBuildScript returns the full text of the project's build script.
	// The error satisfies errors.Is(err, fs.ErrNotExist) if the file does not exist.
	ReadBuildScript(project domain.Project) (string, error)
}
