// Package logger builds the zerolog logger shared by the commands.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

const timeLayout = time.TimeOnly

// New returns a logger writing to out at the given level. Console output is
// colored only when out is a terminal.
func New(level, format string, out io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parsing log level: %w", err)
	}

	var w io.Writer
	switch format {
	case FormatJSON:
		w = out
	case FormatConsole, "":
		w = zerolog.ConsoleWriter{
			Out:         out,
			NoColor:     !isTerminal(out),
			TimeFormat:  timeLayout,
			FormatLevel: formatLevel,
		}
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", format)
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func formatLevel(i any) string {
	switch i {
	case zerolog.LevelTraceValue:
		return "[TRC]"
	case zerolog.LevelDebugValue:
		return "[DBG]"
	case zerolog.LevelInfoValue:
		return "[INF]"
	case zerolog.LevelWarnValue:
		return "[WRN]"
	case zerolog.LevelErrorValue:
		return "[ERR]"
	case zerolog.LevelFatalValue:
		return "[FTL]"
	case zerolog.LevelPanicValue:
		return "[PNC]"
	default:
		return "[???]"
	}
}
