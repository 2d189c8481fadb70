// Package config provides the settings loader for jopts.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.trai.ch/jopts/internal/adapters/fs"
	"go.trai.ch/jopts/internal/core/domain"
	"go.trai.ch/jopts/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	FS     fs.FileSystem
}

// NewLoader creates a new Loader with the given logger and filesystem.
func NewLoader(logger ports.Logger, fsys fs.FileSystem) *Loader {
	return &Loader{Logger: logger, FS: fsys}
}

// Load walks up from cwd to the nearest config file and returns the resolved settings.
func (l *Loader) Load(cwd string) (domain.Settings, error) {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return domain.Settings{}, zerr.With(zerr.Wrap(err, domain.ErrFailedToGetRoot.Error()), "cwd", cwd)
	}

	path, ok := l.findConfiguration(abs)
	if !ok {
		return domain.DefaultSettings(), nil
	}

	var file File
	if err := l.readAndUnmarshalYAML(path, &file); err != nil {
		return domain.Settings{}, err
	}

	settings, err := l.resolve(file)
	if err != nil {
		return domain.Settings{}, zerr.With(err, "path", path)
	}
	return settings, nil
}

func (l *Loader) findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := l.FS.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", false
		}
		currentDir = parentDir
	}
}

func (l *Loader) readAndUnmarshalYAML(path string, out *File) error {
	data, err := l.FS.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	return nil
}

func (l *Loader) resolve(file File) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	if file.BuildFile != "" {
		if !isPlainName(file.BuildFile) {
			return domain.Settings{}, zerr.With(domain.ErrInvalidBuildFile, "buildFile", file.BuildFile)
		}
		settings.BuildFile = file.BuildFile
	}

	if file.WatchFiles != nil {
		watch := make([]string, 0, len(file.WatchFiles))
		for _, name := range file.WatchFiles {
			if !isPlainName(name) {
				l.Logger.Warn(fmt.Sprintf("ignoring watch file %q: only files in the project root are watched", name))
				continue
			}
			watch = append(watch, name)
		}
		slices.Sort(watch)
		settings.WatchFiles = slices.Compact(watch)
	}

	if file.Debounce != "" {
		d, err := time.ParseDuration(file.Debounce)
		if err != nil {
			return domain.Settings{}, zerr.With(zerr.Wrap(err, domain.ErrInvalidDebounce.Error()), "debounce", file.Debounce)
		}
		if d < 0 {
			return domain.Settings{}, zerr.With(domain.ErrInvalidDebounce, "debounce", file.Debounce)
		}
		settings.Debounce = d
	}

	return settings, nil
}

func isPlainName(name string) bool {
	return name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}
