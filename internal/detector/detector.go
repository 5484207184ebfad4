// Package detector handles system and frontend detection.
package detector

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// Detector handles system detection from file extensions and options and
// picks a frontend that works in the current environment.
type Detector struct {
	logger *log.Logger

	goos       string
	getenv     func(key string) string
	isTerminal func(fd int) bool
}

// New creates a new detector for the current process environment.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger:     logger,
		goos:       runtime.GOOS,
		getenv:     os.Getenv,
		isTerminal: term.IsTerminal,
	}
}

// Detect determines the system from options or file auto-detection.
// It first checks if a system is explicitly specified in options, otherwise
// attempts to detect the system from the input filename extension.
func (d *Detector) Detect(opts options.Program) arch.System {
	system, _ := arch.SystemFromString(opts.System)
	if system == "" {
		system = d.detectFromFile(opts.Input)
		d.logger.Debug("Auto-detected system",
			log.Stringer("system", system),
			log.String("file", opts.Input))
	}
	return system
}

// detectFromFile determines the system type based on file extension.
func (d *Detector) detectFromFile(filename string) arch.System {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".nes":
		return arch.NES
	default:
		// .ch8, .c8, .rom and files without a known extension are raw CHIP-8 images
		return arch.CHIP8System
	}
}

// DetectFrontend resolves the requested frontend. Auto prefers a window when
// one can be opened, then the terminal and falls back to headless.
// Explicit requests that can not work in the environment return an error.
func (d *Detector) DetectFrontend(requested frontend.Kind, guiAvailable bool) (frontend.Kind, error) {
	switch requested {
	case frontend.GUI:
		if !guiAvailable {
			return "", fmt.Errorf("frontend '%s' is not supported by this build", requested)
		}
		return frontend.GUI, nil

	case frontend.TUI:
		if !d.terminal() {
			return "", fmt.Errorf("frontend '%s' requires a terminal on standard input and output", requested)
		}
		return frontend.TUI, nil

	case frontend.Headless:
		return frontend.Headless, nil
	}

	kind := frontend.Headless
	switch {
	case guiAvailable && d.hasDisplay():
		kind = frontend.GUI
	case d.terminal():
		kind = frontend.TUI
	}

	d.logger.Debug("Auto-detected frontend", log.String("frontend", string(kind)))
	return kind, nil
}

// hasDisplay returns whether a window can be opened.
func (d *Detector) hasDisplay() bool {
	switch d.goos {
	case "windows", "darwin":
		return true
	default:
		return d.getenv("DISPLAY") != "" || d.getenv("WAYLAND_DISPLAY") != ""
	}
}

func (d *Detector) terminal() bool {
	return d.isTerminal(int(os.Stdin.Fd())) && d.isTerminal(int(os.Stdout.Fd()))
}
