/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package logger provides the process-wide console logger.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

var (
	output io.Writer = os.Stderr
	level            = zerolog.InfoLevel
	logger           = newLogger(output, level)
)

func newLogger(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	cw := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		PartsOrder: []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
		FormatLevel: func(i any) string {
			switch i {
			case zerolog.LevelWarnValue:
				return "warning:"
			case zerolog.LevelErrorValue:
				return "error:"
			case zerolog.LevelDebugValue:
				return "debug:"
			default:
				return ""
			}
		},
	}
	return zerolog.New(cw).Level(lvl)
}

// SetOutput configures the logger output destination.
// Use io.Discard to silence all logging.
func SetOutput(w io.Writer) {
	output = w
	logger = newLogger(output, level)
}

// SetLevel sets the minimum level that is written.
func SetLevel(lvl zerolog.Level) {
	level = lvl
	logger = newLogger(output, level)
}

// Get returns the underlying structured logger.
func Get() *zerolog.Logger {
	return &logger
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	logger.Warn().Msg(fmt.Sprintf(format, args...))
}

// Info logs an informational message.
func Info(format string, args ...any) {
	logger.Info().Msg(fmt.Sprintf(format, args...))
}

// Debug logs a debug message.
func Debug(format string, args ...any) {
	logger.Debug().Msg(fmt.Sprintf(format, args...))
}
