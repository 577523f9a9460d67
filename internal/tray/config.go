package tray

import (
	"fmt"
	"time"
)

// SessionPolicy decides what survives a dismiss/present cycle.
type SessionPolicy string

const (
	// PolicyReset starts every presentation on the catalog defaults.
	PolicyReset SessionPolicy = "reset"
	// PolicyRetain restores the last selection within the process.
	PolicyRetain SessionPolicy = "retain"
	// PolicyPersist restores the last selection from disk.
	PolicyPersist SessionPolicy = "persist"
)

// SizingMode selects how the sheet height is chosen.
type SizingMode string

const (
	SizingFixed       SizingMode = "fixed"
	SizingBreakpoints SizingMode = "breakpoints"
)

// Sizing describes the sheet height. Heights are terminal rows.
type Sizing struct {
	Mode        SizingMode `mapstructure:"mode" yaml:"mode"`
	Height      int        `mapstructure:"height" yaml:"height"`
	Breakpoints []int      `mapstructure:"breakpoints" yaml:"breakpoints,omitempty"`
}

// Config holds the presentation settings, passed through to the renderer
// untouched, plus the session policy and coordinator delays.
type Config struct {
	Sizing             Sizing        `mapstructure:"sizing" yaml:"sizing"`
	CornerRadius       int           `mapstructure:"corner_radius" yaml:"corner_radius"`
	InteractiveDismiss bool          `mapstructure:"interactive_dismiss" yaml:"interactive_dismiss"`
	HorizontalMargin   int           `mapstructure:"horizontal_margin" yaml:"horizontal_margin"`
	BottomMargin       int           `mapstructure:"bottom_margin" yaml:"bottom_margin"`
	SessionPolicy      SessionPolicy `mapstructure:"session_policy" yaml:"session_policy"`
	PressDelay         time.Duration `mapstructure:"press_delay" yaml:"press_delay"`
	ReturnDelay        time.Duration `mapstructure:"return_delay" yaml:"return_delay"`
}

// DefaultConfig mirrors the demo tray: one fixed detent, rounded corners,
// swipe-to-dismiss allowed, small margins.
func DefaultConfig() Config {
	return Config{
		Sizing:             Sizing{Mode: SizingFixed, Height: 24},
		CornerRadius:       30,
		InteractiveDismiss: true,
		HorizontalMargin:   2,
		BottomMargin:       1,
		SessionPolicy:      PolicyReset,
		PressDelay:         DefaultPressDelay,
		ReturnDelay:        DefaultReturnDelay,
	}
}

// Validate checks the settings for values no renderer could honour.
func (c Config) Validate() error {
	switch c.SessionPolicy {
	case PolicyReset, PolicyRetain, PolicyPersist:
	default:
		return fmt.Errorf("session_policy %q: must be reset, retain or persist", c.SessionPolicy)
	}

	switch c.Sizing.Mode {
	case SizingFixed:
		if c.Sizing.Height <= 0 {
			return fmt.Errorf("sizing.height must be positive for fixed sizing")
		}
	case SizingBreakpoints:
		if len(c.Sizing.Breakpoints) == 0 {
			return fmt.Errorf("sizing.breakpoints must not be empty")
		}
		for i, bp := range c.Sizing.Breakpoints {
			if bp <= 0 {
				return fmt.Errorf("sizing.breakpoints[%d] must be positive", i)
			}
		}
	default:
		return fmt.Errorf("sizing.mode %q: must be fixed or breakpoints", c.Sizing.Mode)
	}

	if c.CornerRadius < 0 || c.HorizontalMargin < 0 || c.BottomMargin < 0 {
		return fmt.Errorf("corner_radius and margins must not be negative")
	}
	if c.PressDelay < 0 || c.ReturnDelay < 0 {
		return fmt.Errorf("press_delay and return_delay must not be negative")
	}
	return nil
}
