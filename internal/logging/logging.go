// Package logging configures the process-wide zerolog logger.
package logging // import "github.com/CognitoIQ/wsdlfetch/internal/logging"

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TimeFormat is the layout of timestamps in console output.
const TimeFormat = "2006-01-02T15:04:05.000"

// Options control the logger built by Setup.
type Options struct {
	// Debug enables debug level messages.
	Debug bool
	// JSON writes one JSON object per message instead of
	// human-readable lines.
	JSON bool
	// Out receives log output. The default is standard error.
	Out io.Writer
}

// Setup sets the global log level and log.Logger from opts, and returns
// the new logger. Console output is colored only when Out is a terminal.
func Setup(opts Options) zerolog.Logger {
	if opts.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	if !opts.JSON {
		console := zerolog.ConsoleWriter{Out: out, NoColor: true, TimeFormat: TimeFormat}
		if f, ok := out.(*os.File); ok && isTerminal(f) {
			console.Out = colorable.NewColorable(f)
			console.NoColor = false
		}
		out = console
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return log.Logger
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
