package wiring_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/jopts/internal/app"
	"go.trai.ch/jopts/internal/core/domain"
	_ "go.trai.ch/jopts/internal/wiring"
)

// TestGraftDependencies ensures that the dependency injection graph is valid.
func TestGraftDependencies(t *testing.T) {
	// graft.AssertDepsValid infers the dependency ID from the package name of the
	// type used in Dep[T], so every ports.* dependency is expected to be named "ports".
	// Our nodes share the ports package, which makes the check report false positives.
	t.Skip("Skipping Graft validation due to static analysis limitation with shared ports package")
	graft.AssertDepsValid(t, "../../internal")
}

// TestExecuteForComponents builds the full graph against a real project directory.
func TestExecuteForComponents(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.BuildFileName),
		[]byte("options.compilerArgs = ['-Xlint:unchecked', \"-parameters\"]\n"), 0o600))
	t.Chdir(root)

	components, _, err := graft.ExecuteFor[*app.Components](t.Context())
	require.NoError(t, err)
	require.NotNil(t, components.App)
	require.NotNil(t, components.Logger)
	defer func() { _ = components.App.Close() }()

	args, err := components.App.Arguments(t.Context(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{"-Xlint:unchecked", "-parameters"}, args)
}
