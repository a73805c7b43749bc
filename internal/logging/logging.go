// Package logging builds the hclog logger shared by gitu's packages.
// Diagnostics go to stderr; command output never goes through the logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Name is the root logger name
const Name = "gitu"

// New returns a logger at the given level ("trace" … "off"). Unknown levels
// fall back to warn. A nil writer means stderr.
func New(level string, w io.Writer, color bool) hclog.Logger {
	if w == nil {
		w = os.Stderr
	}

	lvl := hclog.LevelFromString(strings.ToLower(level))
	if lvl == hclog.NoLevel {
		lvl = hclog.Warn
	}

	colorOpt := hclog.ColorOff
	if color {
		colorOpt = hclog.AutoColor
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:            Name,
		Level:           lvl,
		Output:          w,
		Color:           colorOpt,
		DisableTime:     true,
		IncludeLocation: lvl <= hclog.Debug,
	})
}
