// Package log provides the process-wide diagnostic logger.
package log

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

var diagLog zerolog.Logger

func init() {
	SetOutput(os.Stderr)
}

// SetOutput redirects diagnostic output; tests use this to capture it.
func SetOutput(w io.Writer) {
	consoleWriter := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    true,
	}
	diagLog = zerolog.New(consoleWriter).With().Timestamp().Logger()
}

func Info(msg string) {
	diagLog.Info().Msg(msg)
}

func Infof(format string, args ...any) {
	diagLog.Info().Msg(fmt.Sprintf(format, args...))
}

func Warn(msg string) {
	diagLog.Warn().Msg(msg)
}

func Warnf(format string, args ...any) {
	diagLog.Warn().Msg(fmt.Sprintf(format, args...))
}

func Error(msg string) {
	diagLog.Error().Msg(msg)
}

func Errorf(format string, args ...any) {
	diagLog.Error().Msg(fmt.Sprintf(format, args...))
}
