package tray

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/traysheet/internal/catalog"
)

const testDelay = time.Millisecond

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(catalog.Config{
		Modes: []catalog.Mode{
			{ID: "search", Title: "Search"},
			{ID: "research", Title: "Research"},
			{ID: "incognito", Title: "Incognito", Toggle: true},
		},
		Models: []catalog.AIModel{
			{ID: "best", Title: "Best", Selected: true},
			{ID: "sonar", Title: "Sonar"},
			{ID: "claude", Title: "Claude"},
			{ID: "deep", Title: "Deep", Reasoning: true},
		},
	})
	require.NoError(t, err)
	return c
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.PressDelay = testDelay
	cfg.ReturnDelay = 2 * testDelay
	return cfg
}

// runTask executes a scheduled command and returns the task it delivers.
func runTask(t *testing.T, cmd tea.Cmd) TaskMsg {
	t.Helper()
	require.NotNil(t, cmd, "expected a scheduled task")
	msg, ok := cmd().(TaskMsg)
	require.True(t, ok, "expected TaskMsg")
	return msg
}
