package domain

import "path/filepath"

// Project identifies the build script behind a set of compiler options.
// Root is the absolute project directory and doubles as the registry key.
type Project struct {
	Root      string
	BuildFile string
}

// NewProject creates a Project rooted at root using the given build file name.
// An empty build file name selects BuildFileName.
func NewProject(root, buildFile string) Project {
	if buildFile == "" {
		buildFile = BuildFileName
	}
	return Project{Root: root, BuildFile: buildFile}
}

// BuildScriptPath returns the absolute path of the project's build script.
func (p Project) BuildScriptPath() string {
	return filepath.Join(p.Root, p.BuildFile)
}

// IsZero reports whether the project has no root.
func (p Project) IsZero() bool {
	return p.Root == ""
}
