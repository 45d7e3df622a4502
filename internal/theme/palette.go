package theme

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed themes.yaml
var builtinPalettes []byte

// Palette holds the colors a theme exposes to the renderers.
type Palette struct {
	Name       string `yaml:"name"`
	Accent     string `yaml:"accent"`
	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`
}

type paletteFile struct {
	Themes []Palette `yaml:"themes"`
}

// Palettes is an ordered set of theme palettes.
type Palettes struct {
	order  []string
	byName map[string]Palette
}

// Builtin returns the palettes shipped with the binary.
func Builtin() *Palettes {
	p, err := ParsePalettes(builtinPalettes)
	if err != nil {
		panic(fmt.Sprintf("builtin themes: %v", err))
	}
	return p
}

// LoadPalettes returns the builtin palettes merged with the YAML file at path.
// An entry in the file replaces the builtin palette of the same name.
func LoadPalettes(path string) (*Palettes, error) {
	palettes := Builtin()
	if path == "" {
		return palettes, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read palettes %s: %w", path, err)
	}
	extra, err := ParsePalettes(data)
	if err != nil {
		return nil, fmt.Errorf("parse palettes %s: %w", path, err)
	}
	for _, name := range extra.order {
		palettes.put(extra.byName[name])
	}
	return palettes, nil
}

// ParsePalettes decodes a `themes:` YAML document.
func ParsePalettes(data []byte) (*Palettes, error) {
	var file paletteFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	p := &Palettes{byName: map[string]Palette{}}
	for i, pal := range file.Themes {
		if pal.Name == "" {
			return nil, fmt.Errorf("theme %d: name is required", i)
		}
		if _, dup := p.byName[pal.Name]; dup {
			return nil, fmt.Errorf("theme %q: defined twice", pal.Name)
		}
		p.put(pal)
	}
	if len(p.order) == 0 {
		return nil, errors.New("no themes defined")
	}
	return p, nil
}

func (p *Palettes) put(pal Palette) {
	if _, ok := p.byName[pal.Name]; !ok {
		p.order = append(p.order, pal.Name)
	}
	p.byName[pal.Name] = pal
}

// Names lists theme names in definition order.
func (p *Palettes) Names() []string {
	return append([]string(nil), p.order...)
}

func (p *Palettes) Lookup(name string) (Palette, bool) {
	pal, ok := p.byName[name]
	return pal, ok
}

// Next returns the theme after name, wrapping around. Unknown names map to the first theme.
func (p *Palettes) Next(name string) string {
	for i, n := range p.order {
		if n == name {
			return p.order[(i+1)%len(p.order)]
		}
	}
	return p.order[0]
}
