package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
swipe_threshold_px: 80
preload_radius: 2
slideshow_interval_sec: 3
history_size: 10
cache_dir: /tmp/fynebox-test
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, float32(80), cfg.SwipeThresholdPx)
	assert.Equal(t, 2, cfg.PreloadRadius)
	assert.Equal(t, 3, cfg.SlideshowIntervalSec)
	assert.Equal(t, 10, cfg.HistorySize)
	assert.Equal(t, "/tmp/fynebox-test", cfg.CacheDir)
}

func TestLoadPartialFileKeepsRemainingDefaults(t *testing.T) {
	path := writeConfig(t, "preload_radius: 3\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.PreloadRadius)
	assert.Equal(t, Default().SwipeThresholdPx, cfg.SwipeThresholdPx)
	assert.Equal(t, Default().SlideshowIntervalSec, cfg.SlideshowIntervalSec)
}

func TestLoadNormalizesBadValues(t *testing.T) {
	path := writeConfig(t, `
swipe_threshold_px: -10
preload_radius: -1
slideshow_interval_sec: 0
history_size: -4
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadZeroRadiusAndHistoryAreKept(t *testing.T) {
	path := writeConfig(t, "preload_radius: 0\nhistory_size: 0\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.PreloadRadius)
	assert.Equal(t, 0, cfg.HistorySize)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "swipe_threshold_px: [nope\n")
	_, err := Load(path)
	assert.Error(t, err)
}
