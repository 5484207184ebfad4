//go:build headless

// Package gui is not available in headless builds.
package gui

import (
	"context"
	"errors"

	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrogolib/log"
)

// Available reports whether the binary was built with window support.
const Available = false

var errNoWindow = errors.New("window frontend is not available in headless builds")

// Frontend is a placeholder in builds without window support.
type Frontend struct{}

// New returns the placeholder frontend.
func New(*log.Logger, int) *Frontend {
	return &Frontend{}
}

// Run always fails in headless builds.
func (f *Frontend) Run(context.Context, frontend.Session) error {
	return errNoWindow
}
