package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindWithConfig(t *testing.T) {
	root := t.TempDir()
	cfg := `cache_file: out/blueprint.jsonl
blueprint_dir: docs/blueprint
lean_dir: src
`
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte(cfg), 0644))

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	proj, err := Find(nested)
	require.NoError(t, err)

	assert.Equal(t, root, proj.Root)
	assert.Equal(t, filepath.Join(root, "out", "blueprint.jsonl"), proj.CachePath())
	assert.Equal(t, filepath.Join(root, "docs", "blueprint"), proj.BlueprintDir())
	assert.Equal(t, filepath.Join(root, "src"), proj.LeanDir())
}

func TestFindDefaults(t *testing.T) {
	dir := t.TempDir()

	proj, err := Find(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, proj.Root)
	assert.Equal(t, filepath.Join(dir, DefaultCacheFile), proj.CachePath())
	assert.Equal(t, filepath.Join(dir, "blueprint"), proj.BlueprintDir())
	assert.Equal(t, dir, proj.LeanDir())
}

func TestFindBadConfig(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte("cache_file: [oops"), 0644))

	_, err := Find(root)
	assert.Error(t, err)
}
