package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func testConfig() Config {
	return Config{
		Modes: []Mode{
			{ID: "search", Title: "Search"},
			{ID: "research", Title: "Research"},
			{ID: "incognito", Title: "Incognito", Toggle: true},
		},
		Models: []AIModel{
			{ID: "best", Title: "Best", Selected: true},
			{ID: "sonar", Title: "Sonar"},
			{ID: "claude", Title: "Claude"},
		},
	}
}

func TestNew_Defaults(t *testing.T) {
	c, err := New(testConfig())
	require.NoError(t, err)

	require.Equal(t, "search", c.DefaultMode().ID)
	require.Equal(t, "best", c.DefaultModel().ID)
}

func TestNew_DefaultModelFallsBackToFirst(t *testing.T) {
	cfg := testConfig()
	cfg.Models[0].Selected = false

	c, err := New(cfg)
	require.NoError(t, err)
	require.Equal(t, "best", c.DefaultModel().ID)
}

func TestNew_DefaultModelPrefersSelected(t *testing.T) {
	cfg := testConfig()
	cfg.Models[0].Selected = false
	cfg.Models[2].Selected = true

	c, err := New(cfg)
	require.NoError(t, err)
	require.Equal(t, "claude", c.DefaultModel().ID)
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{
			name:   "no models",
			mutate: func(c *Config) { c.Models = nil },
			want:   ErrNoModels,
		},
		{
			name:   "default mode missing",
			mutate: func(c *Config) { c.DefaultMode = "Labs" },
			want:   ErrDefaultModeMissing,
		},
		{
			name:   "default mode is toggle",
			mutate: func(c *Config) { c.DefaultMode = "Incognito" },
			want:   ErrDefaultModeToggle,
		},
		{
			name:   "duplicate id across lists",
			mutate: func(c *Config) { c.Models[1].ID = "search" },
			want:   ErrDuplicateID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)

			_, err := New(cfg)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNew_GeneratesMissingIDs(t *testing.T) {
	cfg := testConfig()
	cfg.Modes[1].ID = ""
	cfg.Models[1].ID = ""

	c, err := New(cfg)
	require.NoError(t, err)

	modes := c.Modes()
	models := c.Models()
	require.NotEmpty(t, modes[1].ID)
	require.NotEmpty(t, models[1].ID)
	require.Empty(t, cfg.Modes[1].ID, "input config must not be mutated")
}

func TestCatalog_AccessorsReturnCopies(t *testing.T) {
	c, err := New(testConfig())
	require.NoError(t, err)

	modes := c.Modes()
	modes[0].Title = "Changed"
	models := c.VisibleModels()
	models[0].Title = "Changed"

	require.Equal(t, "Search", c.Modes()[0].Title)
	require.Equal(t, "Best", c.Models()[0].Title)
}

func TestCatalog_SelectableModes(t *testing.T) {
	c, err := New(testConfig())
	require.NoError(t, err)

	modes := c.SelectableModes()
	require.Len(t, modes, 2)
	require.Equal(t, "search", modes[0].ID)
	require.Equal(t, "research", modes[1].ID)

	toggle, ok := c.ToggleMode()
	require.True(t, ok)
	require.Equal(t, "incognito", toggle.ID)
}

func TestCatalog_Lookups(t *testing.T) {
	c, err := New(testConfig())
	require.NoError(t, err)

	m, ok := c.ModeByID("research")
	require.True(t, ok)
	require.Equal(t, "Research", m.Title)

	_, ok = c.ModeByID("missing")
	require.False(t, ok)

	model, ok := c.ModelByID("sonar")
	require.True(t, ok)
	require.Equal(t, "Sonar", model.Title)

	_, ok = c.ModelByID("search")
	require.False(t, ok)
}

func TestCatalog_DisplayName(t *testing.T) {
	c := Default()

	require.Equal(t, "Claude 3.7", c.DisplayName("Claude 3.7 Sonnet"))
	require.Equal(t, "Claude 3.7 Thinking", c.DisplayName("Claude 3.7 Sonnet Thinking"))
	require.Equal(t, "Claude 4.0 Sonnet", c.DisplayName("Claude 4.0 Sonnet"))
	require.Equal(t, "Best", c.DisplayName("Best"))
}

func TestDefault_MatchesDemoData(t *testing.T) {
	c := Default()

	require.Equal(t, "Search", c.DefaultMode().Title)
	require.Equal(t, "Best", c.DefaultModel().Title)
	require.Len(t, c.SelectableModes(), 3)
	require.Len(t, c.VisibleModels(), 6)
}

func TestVisibleModels_ExcludesReasoning(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(rt, "n")
		models := make([]AIModel, n)
		reasoning := 0
		for i := range models {
			r := rapid.Bool().Draw(rt, fmt.Sprintf("reasoning-%d", i))
			if r {
				reasoning++
			}
			models[i] = AIModel{ID: fmt.Sprintf("m%d", i), Title: fmt.Sprintf("Model %d", i), Reasoning: r}
		}

		c, err := New(Config{Modes: []Mode{{ID: "search", Title: "Search"}}, Models: models})
		require.NoError(rt, err)

		visible := c.VisibleModels()
		require.Len(rt, visible, n-reasoning)

		// Order is preserved and no reasoning model leaks through.
		last := -1
		for _, m := range visible {
			require.False(rt, m.Reasoning)
			var idx int
			_, _ = fmt.Sscanf(m.ID, "m%d", &idx)
			require.Greater(rt, idx, last)
			last = idx
		}
	})
}
