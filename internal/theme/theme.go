// Package theme holds the colour palette used by the rendered pages.
package theme

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Palette is the five-colour scheme. Keys match the YAML file.
type Palette struct {
	Bg   string `yaml:"bg"`
	C100 string `yaml:"100"`
	C200 string `yaml:"200"`
	C300 string `yaml:"300"`
	C400 string `yaml:"400"`
}

var hexColour = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Default returns the built-in palette.
func Default() Palette {
	return Palette{
		Bg:   "#2B193D",
		C100: "#2C365E",
		C200: "#484D6D",
		C300: "#4B8F8C",
		C400: "#C5979D",
	}
}

// Load returns the default palette overlaid with any colours set in the
// YAML file at path. An empty path yields the defaults.
func Load(path string) (Palette, error) {
	p := Default()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Palette{}, fmt.Errorf("read theme file: %w", err)
	}

	var override Palette
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Palette{}, fmt.Errorf("parse theme file %s: %w", path, err)
	}
	p.merge(override)

	if err := p.Validate(); err != nil {
		return Palette{}, fmt.Errorf("theme file %s: %w", path, err)
	}
	return p, nil
}

func (p *Palette) merge(o Palette) {
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&p.Bg, o.Bg}, {&p.C100, o.C100}, {&p.C200, o.C200}, {&p.C300, o.C300}, {&p.C400, o.C400},
	} {
		if s := strings.TrimSpace(f.src); s != "" {
			*f.dst = s
		}
	}
}

// Validate checks every colour is a #rgb or #rrggbb hex value.
func (p Palette) Validate() error {
	for _, c := range p.named() {
		if !hexColour.MatchString(c.value) {
			return fmt.Errorf("colour %q: invalid hex value %q", c.name, c.value)
		}
	}
	return nil
}

// CSS renders the palette as custom properties on :root.
func (p Palette) CSS() string {
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, c := range p.named() {
		fmt.Fprintf(&b, "  --color-%s: %s;\n", c.name, c.value)
	}
	b.WriteString("}\n")
	return b.String()
}

type namedColour struct {
	name  string
	value string
}

func (p Palette) named() []namedColour {
	return []namedColour{
		{"bg", p.Bg},
		{"100", p.C100},
		{"200", p.C200},
		{"300", p.C300},
		{"400", p.C400},
	}
}
