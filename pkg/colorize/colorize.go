// Package colorize wraps terminal output in ANSI color sequences.
package colorize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

const (
	Green = "green"
	Blue  = "blue"
)

// ErrInvalidColor is returned for any color name outside the palette.
var ErrInvalidColor = errors.New("invalid color choice")

var palette = map[string]color.Attribute{
	Green: color.FgHiGreen,
	Blue:  color.FgHiBlue,
}

// Colorize returns text wrapped in the escape sequence for the named color.
// Sequences are always emitted, even when stdout is not a terminal.
func Colorize(name, text string) (string, error) {
	attr, ok := palette[strings.ToLower(name)]
	if !ok {
		return "", fmt.Errorf("%w [%s]", ErrInvalidColor, name)
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(text), nil
}
