// Package config loads process-level settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the daemon's process-level settings. Per-component
// tunables live in each package's Config struct; these are only the
// knobs an operator sets before launch.
type Config struct {
	Addr      string `env:"MUDRA_ADDR" envDefault:":8080"`
	CameraID  int    `env:"MUDRA_CAMERA_ID" envDefault:"0"`
	DBPath    string `env:"MUDRA_DB"`
	Scene     string `env:"MUDRA_SCENE" envDefault:"grid"`
	FPS       int    `env:"MUDRA_FPS" envDefault:"30"`
	StaticDir string `env:"MUDRA_STATIC_DIR"`
	Particles int    `env:"MUDRA_PARTICLES" envDefault:"800"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return c, nil
}
