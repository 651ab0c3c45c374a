package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// zerologLogger implements calculation.Logger on top of zerolog
type zerologLogger struct {
	log zerolog.Logger
}

func newLogger(w io.Writer, debug bool) zerologLogger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	l := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		Level(level).
		With().Timestamp().Logger()
	return zerologLogger{log: l}
}

func (z zerologLogger) Debugf(format string, args ...any) { z.log.Debug().Msg(fmt.Sprintf(format, args...)) }
func (z zerologLogger) Infof(format string, args ...any)  { z.log.Info().Msg(fmt.Sprintf(format, args...)) }
func (z zerologLogger) Warnf(format string, args ...any)  { z.log.Warn().Msg(fmt.Sprintf(format, args...)) }
func (z zerologLogger) Errorf(format string, args ...any) { z.log.Error().Msg(fmt.Sprintf(format, args...)) }
