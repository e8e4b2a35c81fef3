package controller

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// Settings tunes how stick and button input maps to camera motion.
type Settings struct {
	// Deadzone is the axis magnitude at or below which input reads as zero.
	Deadzone float64
	// RotateStep is the rotation per tick at full right-stick deflection, in radians.
	RotateStep float64
	// HorizontalSpeed is the lateral distance per tick at full left-stick deflection.
	HorizontalSpeed float64
	// VerticalSpeed is the climb or descent per tick while a vertical button is held.
	VerticalSpeed float64
	// PitchLimit bounds the vertical angle to [-PitchLimit, PitchLimit] radians.
	PitchLimit float64
}

// DefaultSettings returns the stock tuning.
func DefaultSettings() Settings {
	return Settings{
		Deadzone:        0.1,
		RotateStep:      mgl64.DegToRad(2),
		HorizontalSpeed: 0.03,
		VerticalSpeed:   0.03,
		PitchLimit:      mgl64.DegToRad(80),
	}
}

// Validate reports the first out-of-range field.
func (s Settings) Validate() error {
	switch {
	case s.Deadzone < 0 || s.Deadzone >= 1:
		return fmt.Errorf("deadzone %v out of range [0, 1)", s.Deadzone)
	case s.RotateStep <= 0:
		return fmt.Errorf("rotate step must be positive, got %v", s.RotateStep)
	case s.HorizontalSpeed < 0 || s.VerticalSpeed < 0:
		return fmt.Errorf("speeds must not be negative")
	case s.PitchLimit <= 0 || s.PitchLimit >= mgl64.DegToRad(90):
		return fmt.Errorf("pitch limit %v out of range (0, π/2)", s.PitchLimit)
	}
	return nil
}

// InspectAnchor is the screen position handed to the inspect callback.
var InspectAnchor = mgl64.Vec2{100, 100}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// WithSettings replaces the default tuning.
func WithSettings(s Settings) Option {
	return func(c *Controller) {
		c.settings = s
	}
}
