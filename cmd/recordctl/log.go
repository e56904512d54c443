package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/zoobzio/record"
)

// quietEnv silences per-field warnings when set to 1.
const quietEnv = "RECORD_QUIET"

func newLogger(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
}

// logResult reports the warnings and failures of a load or store.
func logResult(l zerolog.Logger, res *record.Result) {
	if res == nil {
		return
	}
	if os.Getenv(quietEnv) != "1" {
		for _, w := range res.Warnings {
			l.Warn().
				Int("index", w.Index).
				Str("record", w.Record).
				Str("path", w.Path).
				Str("code", string(w.Code)).
				Msg(w.Message)
		}
	}
	for _, f := range res.Failures {
		l.Error().Err(f.Cause).Int("index", f.Index).Msg("record skipped")
	}
}
