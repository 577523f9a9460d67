// Package markdown renders the host screen's markdown tagline.
package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// noMarginStyle removes document margins so the tagline can be centred, and
// drops the literal emphasis markers the notty style wraps around text.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	},
	"paragraph": {
		"margin": 0
	},
	"emph": {
		"block_prefix": "",
		"block_suffix": ""
	},
	"strong": {
		"block_prefix": "",
		"block_suffix": ""
	},
	"strikethrough": {
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps glamour with traysheet-specific configuration.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a renderer wrapping at width using a standard glamour style
// ("dark", "light" or "notty"). An empty style means "dark".
func New(width int, style string) (*Renderer, error) {
	if style == "" {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output without the blank
// lines glamour adds around blocks.
func (r *Renderer) Render(markdown string) (string, error) {
	out, err := r.renderer.Render(markdown)
	if err != nil {
		return "", err
	}
	lines := strings.Split(strings.Trim(out, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n"), nil
}
