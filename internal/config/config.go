// Package config loads the optional YAML configuration file. Every
// knob has a sensible default, so running without a file is the normal
// case.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

const fileName = "config.yaml"

// Config holds the user-tunable settings.
type Config struct {
	// SwipeThresholdPx is the minimum horizontal drag, in pixels,
	// recognized as a swipe.
	SwipeThresholdPx float32 `yaml:"swipe_threshold_px"`
	// PreloadRadius is how many neighbours on each side of the open
	// photo get prefetched.
	PreloadRadius int `yaml:"preload_radius"`
	// SlideshowIntervalSec is the delay between slideshow steps.
	SlideshowIntervalSec int `yaml:"slideshow_interval_sec"`
	// HistorySize caps the viewed-photo trail. 0 disables history.
	HistorySize int `yaml:"history_size"`
	// CacheDir overrides where the image cache database lives. Empty
	// means the platform user cache directory.
	CacheDir string `yaml:"cache_dir"`
}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		SwipeThresholdPx:     50,
		PreloadRadius:        1,
		SlideshowIntervalSec: 5,
		HistorySize:          50,
	}
}

// DefaultPath returns the per-user location of the config file.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config dir: %w", err)
	}
	return filepath.Join(base, "fynebox", fileName), nil
}

// Load reads the config at path, or at DefaultPath when path is empty.
// A missing file yields Default. Out-of-range values are replaced with
// their defaults rather than rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			klog.Warningf("config: %v, using defaults", err)
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	def := Default()
	if c.SwipeThresholdPx <= 0 {
		klog.Warningf("config: swipe_threshold_px %v not positive, using %v", c.SwipeThresholdPx, def.SwipeThresholdPx)
		c.SwipeThresholdPx = def.SwipeThresholdPx
	}
	if c.PreloadRadius < 0 {
		klog.Warningf("config: preload_radius %d negative, using %d", c.PreloadRadius, def.PreloadRadius)
		c.PreloadRadius = def.PreloadRadius
	}
	if c.SlideshowIntervalSec <= 0 {
		klog.Warningf("config: slideshow_interval_sec %d not positive, using %d", c.SlideshowIntervalSec, def.SlideshowIntervalSec)
		c.SlideshowIntervalSec = def.SlideshowIntervalSec
	}
	if c.HistorySize < 0 {
		klog.Warningf("config: history_size %d negative, using %d", c.HistorySize, def.HistorySize)
		c.HistorySize = def.HistorySize
	}
}
