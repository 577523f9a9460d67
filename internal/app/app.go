// Package app contains the root application model: the host screen that
// launches the tray and shows what was chosen.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/traysheet/internal/catalog"
	"github.com/zjrosen/traysheet/internal/config"
	"github.com/zjrosen/traysheet/internal/keys"
	"github.com/zjrosen/traysheet/internal/log"
	"github.com/zjrosen/traysheet/internal/pubsub"
	"github.com/zjrosen/traysheet/internal/tray"
	"github.com/zjrosen/traysheet/internal/ui/markdown"
	"github.com/zjrosen/traysheet/internal/ui/styles"
	"github.com/zjrosen/traysheet/internal/ui/toaster"
	"github.com/zjrosen/traysheet/internal/ui/traysheet"
)

const zoneLaunch = "app:launch"

// CatalogReloadedMsg carries a catalog rebuilt after the config file changed.
type CatalogReloadedMsg struct {
	Catalog *catalog.Catalog
}

// Model is the root application state.
type Model struct {
	cfg   config.Config
	ctrl  *tray.Controller
	sheet traysheet.Model

	toaster toaster.Model
	help    help.Model
	tagline string

	width  int
	height int
	status string

	listenCtx    context.Context
	listenCancel context.CancelFunc
	listener     *pubsub.ContinuousListener[tray.Snapshot]
}

// New creates the host model around ctrl. The controller stays owned by the
// caller until Close.
func New(cfg config.Config, ctrl *tray.Controller) Model {
	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		cfg:          cfg,
		ctrl:         ctrl,
		sheet:        traysheet.New(ctrl),
		toaster:      toaster.New(),
		help:         help.New(),
		status:       "tray hidden",
		listenCtx:    ctx,
		listenCancel: cancel,
		listener:     pubsub.NewContinuousListener(ctx, ctrl.Events()),
	}
	m.tagline = m.renderTagline(60)
	return m
}

// Init implements tea.Model interface.
func (m Model) Init() tea.Cmd {
	return m.listener.Listen()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sheet = m.sheet.SetSize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		m.tagline = m.renderTagline(min(msg.Width-4, 60))
		return m, nil

	case pubsub.Event[tray.Snapshot]:
		cmd := m.handleEvent(msg)
		return m, tea.Batch(cmd, m.listener.Listen())

	case CatalogReloadedMsg:
		m.ctrl.SetCatalog(msg.Catalog)
		log.Info(log.CatConfig, "catalog reloaded", "modes", len(msg.Catalog.Modes()), "models", len(msg.Catalog.Models()))
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show("Catalog reloaded", toaster.StyleInfo, toaster.DefaultDuration)
		return m, cmd

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Host.Quit) {
			return m, tea.Quit
		}
		if m.ctrl.Visible() {
			var cmd tea.Cmd
			m.sheet, cmd = m.sheet.Update(msg)
			return m, cmd
		}
		if key.Matches(msg, keys.Host.Launch) {
			return m.present(), nil
		}
		return m, nil

	case tea.MouseMsg:
		if m.ctrl.Visible() {
			var cmd tea.Cmd
			m.sheet, cmd = m.sheet.Update(msg)
			return m, cmd
		}
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
			if z := zone.Get(zoneLaunch); z != nil && z.InBounds(msg) {
				return m.present(), nil
			}
		}
		return m, nil
	}

	// Deferred tray tasks and transition frames.
	var cmd tea.Cmd
	m.sheet, cmd = m.sheet.Update(msg)
	return m, cmd
}

func (m Model) present() Model {
	m.ctrl.Present()
	m.sheet = m.sheet.Opened()
	m.toaster = m.toaster.Hide()
	return m
}

func (m *Model) handleEvent(ev pubsub.Event[tray.Snapshot]) tea.Cmd {
	snap := ev.Payload
	if ev.Type == pubsub.DismissedEvent {
		m.status = "tray hidden"
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.ShowSelection(snap, m.ctrl.Catalog().DisplayName(snap.Model.Title))
		return cmd
	}

	m.status = fmt.Sprintf("%s · %s · %s · %s", ev.Type, snap.View, snap.Mode.Title, snap.Model.Title)
	if snap.Incognito {
		m.status += " · incognito"
	}
	return nil
}

func (m Model) renderTagline(width int) string {
	if m.cfg.UI.Tagline == "" {
		return ""
	}
	r, err := markdown.New(max(width, 20), m.cfg.UI.MarkdownStyle)
	if err != nil {
		log.ErrorErr(log.CatUI, "creating markdown renderer", err)
		return m.cfg.UI.Tagline
	}
	out, err := r.Render(m.cfg.UI.Tagline)
	if err != nil {
		log.ErrorErr(log.CatUI, "rendering tagline", err)
		return m.cfg.UI.Tagline
	}
	return out
}

// Status returns the line describing the latest tray event.
func (m Model) Status() string { return m.status }

// Controller returns the tray controller.
func (m Model) Controller() *tray.Controller { return m.ctrl }

// View implements tea.Model.
func (m Model) View() string {
	launch := styles.LaunchButtonStyle
	if !m.ctrl.Visible() {
		launch = styles.LaunchButtonFocusedStyle
	}

	helpView := m.help.View(keys.Host)
	if m.ctrl.Visible() {
		helpView = m.help.View(keys.Tray)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		styles.TitleStyle.Render("Dynamic Sheet"),
		m.tagline,
		"",
		zone.Mark(zoneLaunch, launch.Render("▤ Launch Sheet")),
		"",
		helpView,
		styles.StatusBarStyle.Render(m.status),
	)

	view := content
	if m.width > 0 && m.height > 0 {
		view = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}

	view = m.sheet.Overlay(view)
	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}

	return zone.Scan(strings.TrimRight(view, "\n"))
}

// Close releases resources held by the application.
func (m *Model) Close() {
	m.listenCancel()
	m.ctrl.Close()
}
