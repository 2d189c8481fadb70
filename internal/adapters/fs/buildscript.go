package fs

import (
	"path/filepath"

	"go.trai.ch/jopts/internal/core/domain"
	"go.trai.ch/jopts/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BuildScriptSource = (*BuildScripts)(nil)

// BuildScripts implements ports.BuildScriptSource for a given build file name.
type BuildScripts struct {
	fsys      FileSystem
	buildFile string
}

// NewBuildScripts creates a BuildScripts reading buildFile from project roots.
// An empty buildFile selects domain.BuildFileName.
func NewBuildScripts(fsys FileSystem, buildFile string) *BuildScripts {
	if buildFile == "" {
		buildFile = domain.BuildFileName
	}
	return &BuildScripts{fsys: fsys, buildFile: buildFile}
}

// ResolveProject walks up from path to the nearest directory containing the build file.
// path may name a file or a directory, and need not exist.
func (b *BuildScripts) ResolveProject(path string) (domain.Project, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return domain.Project{}, zerr.With(zerr.Wrap(err, domain.ErrFailedToGetRoot.Error()), "path", path)
	}

	dir := abs
	if info, statErr := b.fsys.Stat(abs); statErr != nil || !info.IsDir() {
		dir = filepath.Dir(abs)
	}

	for {
		if b.hasBuildFile(dir) {
			return domain.NewProject(dir, b.buildFile), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return domain.Project{}, zerr.With(domain.ErrProjectNotFound, "path", abs)
}

// ReadBuildScript returns the text of the project's build script.
func (b *BuildScripts) ReadBuildScript(project domain.Project) (string, error) {
	path := project.BuildScriptPath()
	data, err := b.fsys.ReadFile(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrBuildScriptReadFailed.Error()), "path", path)
	}
	return string(data), nil
}

func (b *BuildScripts) hasBuildFile(dir string) bool {
	info, err := b.fsys.Stat(filepath.Join(dir, b.buildFile))
	return err == nil && !info.IsDir()
}
