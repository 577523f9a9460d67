// Package overlay renders a foreground block, such as the tray sheet or a
// toast, on top of a background view without clearing the screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position specifies where to place the overlay content.
type Position int

const (
	// Center places the overlay in the center of the viewport.
	Center Position = iota
	// Top places the overlay at the top center of the viewport.
	Top
	// Bottom anchors the overlay to the bottom edge, like a sheet.
	Bottom
)

// Config controls overlay rendering behavior.
type Config struct {
	// Width is the total viewport width.
	Width int
	// Height is the total viewport height.
	Height int
	// Position specifies where to place the overlay (Center, Top, Bottom).
	Position Position
	// PadX is the minimum gap to the left and right edges (Top/Bottom only).
	PadX int
	// PadY adds vertical padding from edges (for Top/Bottom positions).
	PadY int
	// Scrim renders the background faint, so the overlay reads as modal.
	Scrim bool
}

// Rect is the cell area the foreground occupies.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

var scrimStyle = lipgloss.NewStyle().Faint(true)

// Place renders foreground content on top of background.
// Uses ANSI-aware string manipulation to preserve styling in both
// the foreground and background content.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	// Pad background to full height
	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	if cfg.Scrim {
		for i, line := range bgLines {
			bgLines[i] = scrimStyle.Render(ansi.Strip(line))
		}
	}

	r := Bounds(cfg, fg)

	for i, fgLine := range fgLines {
		bgY := r.Y + i
		if bgY >= len(bgLines) {
			break
		}

		bgLine := bgLines[bgY]
		fgLineWidth := ansi.StringWidth(fgLine)

		leftPart := ansi.Truncate(bgLine, r.X, "")
		if w := ansi.StringWidth(leftPart); w < r.X {
			leftPart += strings.Repeat(" ", r.X-w)
		}

		endX := r.X + fgLineWidth
		var rightPart string
		if endX < ansi.StringWidth(bgLine) {
			rightPart = ansi.TruncateLeft(bgLine, endX, "")
		}

		bgLines[bgY] = leftPart + fgLine + rightPart
	}

	return strings.Join(bgLines, "\n")
}

// Bounds returns where Place puts fg for cfg.
func Bounds(cfg Config, fg string) Rect {
	w := lipgloss.Width(fg)
	h := lipgloss.Height(fg)
	x, y := calculatePosition(cfg, w, h)
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// calculatePosition determines the x,y starting coordinates for the overlay.
func calculatePosition(cfg Config, fgWidth, fgHeight int) (x, y int) {
	x = (cfg.Width - fgWidth) / 2
	switch cfg.Position {
	case Top:
		y = cfg.PadY
	case Bottom:
		y = cfg.Height - fgHeight - cfg.PadY
	default: // Center
		y = (cfg.Height - fgHeight) / 2
	}

	if cfg.Position != Center && x < cfg.PadX && fgWidth+2*cfg.PadX <= cfg.Width {
		x = cfg.PadX
	}

	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}
