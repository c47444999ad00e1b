package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/ailang/internal/config"
)

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tomo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("do_source_mapping: false\nmax_list_stride: 1024\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.DoSourceMapping)
	assert.Equal(t, 1024, cfg.MaxListStride)
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.True(t, cfg.DoSourceMapping)
	assert.Greater(t, cfg.MaxListStride, 0)
	assert.Nil(t, cfg.UseColor)
}
