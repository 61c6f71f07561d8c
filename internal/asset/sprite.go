package asset

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// ErrInvalidSprite is returned for sprite files without art or with an unknown color.
var ErrInvalidSprite = errors.New("asset: invalid sprite")

// yamlSprite is the on-disk sprite format.
type yamlSprite struct {
	Name  string   `yaml:"name"`
	Color string   `yaml:"color"`
	Art   []string `yaml:"art"`
}

// Sprite is the terminal stand-in for a texture: a small block of glyphs.
type Sprite struct {
	Name  string
	Color core.Color
	Art   []string
}

// Width returns the widest art row in runes.
func (s *Sprite) Width() int {
	w := 0
	for _, row := range s.Art {
		w = max(w, utf8.RuneCountInString(row))
	}
	return w
}

// Height returns the number of art rows.
func (s *Sprite) Height() int {
	return len(s.Art)
}

// ParseSprite parses a YAML sprite file.
func ParseSprite(data []byte) (*Sprite, error) {
	var ys yamlSprite
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if len(ys.Art) == 0 {
		return nil, fmt.Errorf("%w: %q has no art", ErrInvalidSprite, ys.Name)
	}

	color := core.ColorDefault
	if ys.Color != "" {
		c, ok := core.ParseColor(ys.Color)
		if !ok {
			return nil, fmt.Errorf("%w: unknown color %q", ErrInvalidSprite, ys.Color)
		}
		color = c
	}

	return &Sprite{
		Name:  ys.Name,
		Color: color,
		Art:   ys.Art,
	}, nil
}
