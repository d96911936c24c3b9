package cliconfig

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bft-labs/shardmerge/pkg/log"
)

// ParseLevel maps a level name to a zerolog level. An empty name is info.
func ParseLevel(name string) (zerolog.Level, error) {
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", name)
	}
	return lvl, nil
}

// Logger returns the console logger for the CLI. Unknown level names fall
// back to info.
func Logger(w io.Writer, level string) zerolog.Logger {
	lvl, err := ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return log.NewConsoleLogger(w, lvl)
}
