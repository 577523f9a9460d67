// Package catalog holds the immutable lists of modes and AI models offered by
// the tray, plus the lookups the session needs to resolve defaults.
package catalog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// DefaultModeLabel is the title of the mode selected when a session starts.
const DefaultModeLabel = "Search"

var (
	ErrNoModels           = errors.New("catalog has no models")
	ErrDefaultModeMissing = errors.New("default mode not found in catalog")
	ErrDefaultModeToggle  = errors.New("default mode is a toggle entry")
	ErrDuplicateID        = errors.New("duplicate catalog id")
)

// Mode is a top-level interaction type (Search, Research, ...). A Toggle mode
// is never selectable; it stands for an independent on/off flag.
type Mode struct {
	ID       string `mapstructure:"id" yaml:"id,omitempty"`
	Icon     string `mapstructure:"icon" yaml:"icon,omitempty"`
	Title    string `mapstructure:"title" yaml:"title"`
	Subtitle string `mapstructure:"subtitle" yaml:"subtitle"`
	Pro      bool   `mapstructure:"pro" yaml:"pro,omitempty"`
	Toggle   bool   `mapstructure:"toggle" yaml:"toggle,omitempty"`
}

// AIModel is a model option. Selected marks the catalog default; Reasoning
// models are hidden from the picker.
type AIModel struct {
	ID        string `mapstructure:"id" yaml:"id,omitempty"`
	Title     string `mapstructure:"title" yaml:"title"`
	Subtitle  string `mapstructure:"subtitle" yaml:"subtitle"`
	Selected  bool   `mapstructure:"selected" yaml:"selected,omitempty"`
	Reasoning bool   `mapstructure:"reasoning" yaml:"reasoning,omitempty"`
}

// Config is the injected catalog data.
type Config struct {
	DefaultMode  string            `mapstructure:"default_mode" yaml:"default_mode"`
	Modes        []Mode            `mapstructure:"modes" yaml:"modes"`
	Models       []AIModel         `mapstructure:"models" yaml:"models"`
	DisplayNames map[string]string `mapstructure:"display_names" yaml:"display_names,omitempty"`
}

// Catalog is read-only after New returns.
type Catalog struct {
	modes        []Mode
	models       []AIModel
	displayNames map[string]string
	defaultMode  Mode
	defaultModel AIModel
}

// New validates cfg and freezes it. Entries without an ID get a generated one.
// Every error is a data configuration problem and should abort startup.
func New(cfg Config) (*Catalog, error) {
	if len(cfg.Models) == 0 {
		return nil, ErrNoModels
	}

	label := cfg.DefaultMode
	if label == "" {
		label = DefaultModeLabel
	}

	c := &Catalog{
		modes:        make([]Mode, len(cfg.Modes)),
		models:       make([]AIModel, len(cfg.Models)),
		displayNames: make(map[string]string, len(cfg.DisplayNames)),
	}
	copy(c.modes, cfg.Modes)
	copy(c.models, cfg.Models)
	for k, v := range cfg.DisplayNames {
		c.displayNames[k] = v
	}

	seen := make(map[string]struct{}, len(c.modes)+len(c.models))
	for i := range c.modes {
		if c.modes[i].ID == "" {
			c.modes[i].ID = uuid.NewString()
		}
		if _, dup := seen[c.modes[i].ID]; dup {
			return nil, fmt.Errorf("mode %q: %w", c.modes[i].ID, ErrDuplicateID)
		}
		seen[c.modes[i].ID] = struct{}{}
	}
	for i := range c.models {
		if c.models[i].ID == "" {
			c.models[i].ID = uuid.NewString()
		}
		if _, dup := seen[c.models[i].ID]; dup {
			return nil, fmt.Errorf("model %q: %w", c.models[i].ID, ErrDuplicateID)
		}
		seen[c.models[i].ID] = struct{}{}
	}

	found := false
	for _, m := range c.modes {
		if m.Title == label {
			if m.Toggle {
				return nil, fmt.Errorf("%q: %w", label, ErrDefaultModeToggle)
			}
			c.defaultMode = m
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%q: %w", label, ErrDefaultModeMissing)
	}

	c.defaultModel = c.models[0]
	for _, m := range c.models {
		if m.Selected {
			c.defaultModel = m
			break
		}
	}

	return c, nil
}

// DefaultMode returns the mode a fresh session starts with.
func (c *Catalog) DefaultMode() Mode { return c.defaultMode }

// DefaultModel returns the first model flagged Selected, else the first model.
func (c *Catalog) DefaultModel() AIModel { return c.defaultModel }

// Modes returns every mode in catalog order.
func (c *Catalog) Modes() []Mode {
	out := make([]Mode, len(c.modes))
	copy(out, c.modes)
	return out
}

// Models returns every model in catalog order.
func (c *Catalog) Models() []AIModel {
	out := make([]AIModel, len(c.models))
	copy(out, c.models)
	return out
}

// SelectableModes returns the non-toggle modes in catalog order.
func (c *Catalog) SelectableModes() []Mode {
	out := make([]Mode, 0, len(c.modes))
	for _, m := range c.modes {
		if !m.Toggle {
			out = append(out, m)
		}
	}
	return out
}

// ToggleMode returns the first toggle entry, if the catalog has one.
func (c *Catalog) ToggleMode() (Mode, bool) {
	for _, m := range c.modes {
		if m.Toggle {
			return m, true
		}
	}
	return Mode{}, false
}

// VisibleModels returns the models shown in the picker: everything except
// reasoning models, in catalog order.
func (c *Catalog) VisibleModels() []AIModel {
	out := make([]AIModel, 0, len(c.models))
	for _, m := range c.models {
		if !m.Reasoning {
			out = append(out, m)
		}
	}
	return out
}

// ModeByID looks up a mode.
func (c *Catalog) ModeByID(id string) (Mode, bool) {
	for _, m := range c.modes {
		if m.ID == id {
			return m, true
		}
	}
	return Mode{}, false
}

// ModelByID looks up a model.
func (c *Catalog) ModelByID(id string) (AIModel, bool) {
	for _, m := range c.models {
		if m.ID == id {
			return m, true
		}
	}
	return AIModel{}, false
}

// DisplayName returns the short label for a model title, or the title itself
// when the lookup table has no entry.
func (c *Catalog) DisplayName(title string) string {
	if short, ok := c.displayNames[title]; ok {
		return short
	}
	return title
}
