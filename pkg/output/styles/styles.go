// Package styles holds the terminal styles of droidsdk's output.
//
// Styles are defined in the embedded styles.yaml with adaptive colors that
// follow light and dark terminal themes. Renderers look them up by name:
//
//	styles.Get("Title").Render("SDK Platform")
package styles

import (
	_ "embed"

	"github.com/arthur-debert/droidsdk/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var defaultStyles []byte

// ColorDef is an adaptive color in styles.yaml
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef is a style in styles.yaml
type StyleDef struct {
	Bold         bool   `yaml:"bold,omitempty"`
	Italic       bool   `yaml:"italic,omitempty"`
	Foreground   string `yaml:"foreground,omitempty"`
	Width        int    `yaml:"width,omitempty"`
	Align        string `yaml:"align,omitempty"`
	MarginTop    int    `yaml:"marginTop,omitempty"`
	PaddingRight int    `yaml:"paddingRight,omitempty"`
}

// Config is the content of styles.yaml
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Registry maps style names to lipgloss styles
type Registry map[string]lipgloss.Style

var defaultRegistry Registry

func init() {
	reg, err := Load(defaultStyles)
	if err != nil {
		panic("embedded styles.yaml is invalid: " + err.Error())
	}
	defaultRegistry = reg
}

// Load parses a styles configuration
func Load(data []byte) (Registry, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse styles")
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	reg := make(Registry, len(cfg.Styles))
	for name, def := range cfg.Styles {
		if def.Foreground != "" {
			if _, ok := colors[def.Foreground]; !ok {
				return nil, errors.Newf(errors.ErrConfigValid, "style %s uses unknown color %s", name, def.Foreground)
			}
		}
		reg[name] = build(def, colors)
	}
	return reg, nil
}

func build(def StyleDef, colors map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	style := lipgloss.NewStyle()
	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Foreground != "" {
		style = style.Foreground(colors[def.Foreground])
	}
	if def.Width > 0 {
		style = style.Width(def.Width)
	}
	switch def.Align {
	case "center":
		style = style.Align(lipgloss.Center)
	case "right":
		style = style.Align(lipgloss.Right)
	}
	if def.MarginTop > 0 {
		style = style.MarginTop(def.MarginTop)
	}
	if def.PaddingRight > 0 {
		style = style.PaddingRight(def.PaddingRight)
	}
	return style
}

// Get returns the named style from the embedded registry, or an empty
// style for unknown names
func Get(name string) lipgloss.Style {
	return defaultRegistry.Get(name)
}

// Get returns the named style or an empty style
func (r Registry) Get(name string) lipgloss.Style {
	if style, ok := r[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}
