package loader

import (
	"bufio"
	"errors"
	"io"
	"log"
	"os"

	"github.com/Carmen-Shannon/oxy-obj/common"
)

var (
	// ErrOpenFile is returned (wrapped) when a model or material file cannot be opened.
	ErrOpenFile = errors.New("failed to open file")

	// ErrUnsupportedFormat is returned when no loader backend handles a file extension.
	ErrUnsupportedFormat = errors.New("unsupported model format")
)

// maxLineBytes bounds a single line of a Wavefront file.
const maxLineBytes = 1 << 20

// parseConfig holds the settings shared by the Wavefront parsers.
type parseConfig struct {
	logger          *log.Logger
	verbose         bool
	initialCapacity int
}

// ParseOption configures ParseOBJ, LoadOBJ, ParseMTL and LoadMTL.
type ParseOption func(*parseConfig)

// WithLogger sets the logger that receives face diagnostics and verbose progress lines.
//
// Parameters:
//   - logger: the destination logger
//
// Returns:
//   - ParseOption: a function that applies the logger option
func WithLogger(logger *log.Logger) ParseOption {
	return func(c *parseConfig) {
		c.logger = logger
	}
}

// WithVerbose enables allocation size and phase transition log lines.
//
// Parameters:
//   - verbose: true to log progress
//
// Returns:
//   - ParseOption: a function that applies the verbose option
func WithVerbose(verbose bool) ParseOption {
	return func(c *parseConfig) {
		c.verbose = verbose
	}
}

// WithInitialCapacity sets the starting capacity of the geometry sequences.
//
// Parameters:
//   - capacity: the number of elements each sequence can hold before its first growth
//
// Returns:
//   - ParseOption: a function that applies the capacity option
func WithInitialCapacity(capacity int) ParseOption {
	return func(c *parseConfig) {
		c.initialCapacity = capacity
	}
}

func newParseConfig(opts []ParseOption) *parseConfig {
	c := &parseConfig{
		logger:          log.New(os.Stderr, "[Loader] ", log.LstdFlags),
		initialCapacity: common.DefaultInitialCapacity,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *parseConfig) verbosef(format string, args ...any) {
	if c.verbose {
		c.logger.Printf(format, args...)
	}
}

// newLineScanner returns a scanner that yields whole lines of up to maxLineBytes.
func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return sc
}
