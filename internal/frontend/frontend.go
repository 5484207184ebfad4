// Package frontend defines how a running machine is presented to the user.
// A frontend owns the frame loop: it advances the clock driver, feeds host
// input into the keypad and renders the display after frames that changed it.
package frontend

import (
	"context"
	"fmt"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/clock"
)

// Kind names a frontend implementation.
type Kind string

// Supported frontends.
const (
	Auto     Kind = "auto"
	GUI      Kind = "gui"
	TUI      Kind = "tui"
	Headless Kind = "headless"
)

// Kinds lists all frontend names that can be selected.
var Kinds = []Kind{Auto, GUI, TUI, Headless}

// ParseKind returns the frontend kind for the given name, an empty name
// selects Auto.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Auto, nil
	}

	for _, kind := range Kinds {
		if string(kind) == name {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unsupported frontend '%s'", name)
}

// Session is a loaded machine together with its clock driver.
type Session struct {
	Title   string
	Machine *chip8.Machine
	Driver  *clock.Driver
}

// Frontend runs a session until the user quits, the context is canceled or
// the machine fails.
type Frontend interface {
	Run(ctx context.Context, session Session) error
}
