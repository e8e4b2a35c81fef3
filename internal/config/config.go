// Package config loads gamepadcam settings from flags, environment and an
// optional config file, in that order of precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/soar/gamepadcam/internal/controller"
	"github.com/soar/gamepadcam/internal/frame"
	"github.com/soar/gamepadcam/internal/logger"
)

const envPrefix = "GAMEPADCAM"

type Config struct {
	Listen        string
	ScenePath     string
	Virtual       bool
	FrameInterval time.Duration
	Log           logger.Config
	Controller    controller.Settings
}

// flag name -> viper key
var flagKeys = map[string]string{
	"listen":           "listen",
	"scene":            "scene",
	"virtual":          "virtual",
	"frame-interval":   "frame.interval",
	"log-level":        "log.level",
	"log-format":       "log.format",
	"log-development":  "log.development",
	"deadzone":         "controller.deadzone",
	"rotate-step":      "controller.rotate_step_deg",
	"horizontal-speed": "controller.horizontal_speed",
	"vertical-speed":   "controller.vertical_speed",
	"pitch-limit":      "controller.pitch_limit_deg",
}

func newFlagSet() *pflag.FlagSet {
	d := controller.DefaultSettings()
	fs := pflag.NewFlagSet("gamepadcam", pflag.ContinueOnError)
	fs.StringP("config", "c", "", "config file (yaml, toml or json)")
	fs.String("listen", ":8080", "viewer HTTP listen address")
	fs.String("scene", "", "scene file (yaml); empty uses a demo scene")
	fs.Bool("virtual", false, "use a virtual gamepad instead of SDL")
	fs.Duration("frame-interval", frame.DefaultInterval, "frame period")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.String("log-format", "console", "log format: console or json")
	fs.Bool("log-development", false, "development logging")
	fs.Float64("deadzone", d.Deadzone, "stick deadzone")
	fs.Float64("rotate-step", mgl64.RadToDeg(d.RotateStep), "degrees of rotation per frame at full deflection")
	fs.Float64("horizontal-speed", d.HorizontalSpeed, "lateral distance per frame at full deflection")
	fs.Float64("vertical-speed", d.VerticalSpeed, "vertical distance per frame")
	fs.Float64("pitch-limit", mgl64.RadToDeg(d.PitchLimit), "maximum pitch in degrees")
	return fs
}

// Load parses args and resolves the final configuration.
func Load(args []string) (*Config, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{
		Listen:        v.GetString("listen"),
		ScenePath:     v.GetString("scene"),
		Virtual:       v.GetBool("virtual"),
		FrameInterval: v.GetDuration("frame.interval"),
		Log: logger.Config{
			Level:       v.GetString("log.level"),
			Format:      v.GetString("log.format"),
			Development: v.GetBool("log.development"),
		},
		Controller: controller.Settings{
			Deadzone:        v.GetFloat64("controller.deadzone"),
			RotateStep:      mgl64.DegToRad(v.GetFloat64("controller.rotate_step_deg")),
			HorizontalSpeed: v.GetFloat64("controller.horizontal_speed"),
			VerticalSpeed:   v.GetFloat64("controller.vertical_speed"),
			PitchLimit:      mgl64.DegToRad(v.GetFloat64("controller.pitch_limit_deg")),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address is empty")
	}
	if c.FrameInterval <= 0 {
		return fmt.Errorf("frame interval must be positive, got %s", c.FrameInterval)
	}
	if err := c.Controller.Validate(); err != nil {
		return fmt.Errorf("controller: %w", err)
	}
	return nil
}
