// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

// ErrEmptyFile is returned for ROM files without content.
var ErrEmptyFile = errors.New("file is empty")

// Loader handles loading ROM files from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new ROM loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads the raw program image of a ROM file. CHIP-8 ROMs have no
// header, the file content is loaded into memory as is.
func (l *Loader) Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("loading %s: %w", path, ErrEmptyFile)
	}
	if len(data) > chip8.MaxProgramSize {
		return nil, fmt.Errorf("loading %s: %w: file has %d bytes, available are %d bytes",
			path, chip8.ErrCapacity, len(data), chip8.MaxProgramSize)
	}
	if len(data)%chip8.OpcodeSize != 0 {
		l.logger.Warn("ROM has an odd size, the last byte is not a complete instruction",
			log.String("file", path),
			log.Int("size", len(data)))
	}

	return data, nil
}
