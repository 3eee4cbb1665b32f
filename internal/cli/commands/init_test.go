package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithDefaults(t *testing.T) {
	root := filepath.Join(t.TempDir(), "newpkg")
	require.NoError(t, os.MkdirAll(root, 0755))

	code, stdout, _ := runCommand(t, "init", root, "--defaults")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "Created")

	content, err := os.ReadFile(filepath.Join(root, "MANIFEST"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Identifier: newpkg\n")
	assert.Contains(t, string(content), "Version: 0.1.0\n")

	info, err := os.Stat(filepath.Join(root, "src"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestInitRefusesToOverwrite(t *testing.T) {
	root := filepath.Join(t.TempDir(), "newpkg")
	require.NoError(t, os.MkdirAll(root, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "MANIFEST"), []byte("Identifier: newpkg\n"), 0644))

	code, _, stderr := runCommand(t, "init", root, "--defaults")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "already exists")
}

func TestInitForceOverwrites(t *testing.T) {
	root := filepath.Join(t.TempDir(), "newpkg")
	require.NoError(t, os.MkdirAll(root, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "MANIFEST"), []byte("stale\n"), 0644))

	code, _, _ := runCommand(t, "init", root, "--defaults", "--force")
	assert.Equal(t, exitOK, code)

	content, err := os.ReadFile(filepath.Join(root, "MANIFEST"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Identifier: newpkg\n")
}

func TestInitGeneratedManifestPassesGenerate(t *testing.T) {
	root := filepath.Join(t.TempDir(), "newpkg")
	require.NoError(t, os.MkdirAll(root, 0755))

	code, _, _ := runCommand(t, "init", root, "--defaults")
	require.Equal(t, exitOK, code)

	source := "#' @export\nf <- function() 1\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "f.u"), []byte(source), 0644))

	code, _, stderr := runCommand(t, "generate", root)
	assert.Equal(t, exitOK, code, "stderr: %s", stderr)
}
