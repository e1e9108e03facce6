package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/phanxgames/canopy/canvas"
)

type config struct {
	Width      int               `toml:"width"`
	Height     int               `toml:"height"`
	Background string            `toml:"background"`
	Time       float64           `toml:"time"`
	LogLevel   string            `toml:"log_level"`
	Debug      bool              `toml:"debug"`
	Fonts      map[string]string `toml:"fonts"`
}

func defaultConfig() config {
	return config{
		Width:      640,
		Height:     480,
		Background: "white",
		LogLevel:   "warn",
	}
}

// readConfig loads path over the defaults. An empty path returns the
// defaults.
func readConfig(path string) (config, error) {
	conf := defaultConfig()
	if path == "" {
		return conf, nil
	}
	md, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return conf, fmt.Errorf("reading config %s: %w", path, err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return conf, fmt.Errorf("config %s: unknown key %s", path, keys[0])
	}
	return conf, conf.validate()
}

func (c config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: size %dx%d is not positive", c.Width, c.Height)
	}
	if c.Time < 0 {
		return fmt.Errorf("config: negative time %v", c.Time)
	}
	if _, err := canvas.ParseColor(c.Background); err != nil {
		return fmt.Errorf("config: background: %w", err)
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

func (c config) background() canvas.Color {
	col, _ := canvas.ParseColor(c.Background)
	return col
}

func (c config) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("config: log_level: %w", err)
	}
	return l, nil
}
