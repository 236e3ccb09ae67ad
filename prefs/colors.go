// Package prefs persists the player's color choices.
package prefs

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/retrogamehub/arcade/kvstore"
)

// Storage keys.
const (
	SnakeKey = "snakeColor"
	HeadKey  = "headColor"
	ScaleKey = "scaleColor"
)

// Colors are the snake body, head and scale pattern colors as #rrggbb.
type Colors struct {
	Snake string `json:"snake"`
	Head  string `json:"head"`
	Scale string `json:"scale"`
}

// DefaultColors is used for anything never customized.
var DefaultColors = Colors{
	Snake: "#3ca6a6",
	Head:  "#f6d55c",
	Scale: "#aaffee",
}

// Load reads the stored colors, falling back to the defaults per key for
// missing or unparseable values.
func Load(ctx context.Context, kv kvstore.Store) (Colors, error) {
	c := DefaultColors
	for _, f := range c.fields() {
		v, err := kvstore.GetDefault(ctx, kv, f.key, *f.value)
		if err != nil {
			return DefaultColors, err
		}
		if ValidHex(v) {
			*f.value = v
		}
	}
	return c, nil
}

// Save stores all three colors.
func Save(ctx context.Context, kv kvstore.Store, c Colors) error {
	for _, f := range c.fields() {
		if !ValidHex(*f.value) {
			return fmt.Errorf("prefs: invalid color %q for %s", *f.value, f.key)
		}
	}
	for _, f := range c.fields() {
		if err := kv.Set(ctx, f.key, *f.value); err != nil {
			return err
		}
	}
	return nil
}

type field struct {
	key   string
	value *string
}

func (c *Colors) fields() []field {
	return []field{{SnakeKey, &c.Snake}, {HeadKey, &c.Head}, {ScaleKey, &c.Scale}}
}

// ValidHex reports whether s is a #rgb or #rrggbb color.
func ValidHex(s string) bool {
	_, _, _, err := RGB(s)
	return err == nil
}

// RGB parses a #rgb or #rrggbb color.
func RGB(s string) (r, g, b uint8, err error) {
	if !strings.HasPrefix(s, "#") {
		return 0, 0, 0, fmt.Errorf("prefs: color %q must start with #", s)
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("prefs: color %q has the wrong length", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("prefs: color %q is not hex", s)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}
