/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package logger_test

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"bennypowers.dev/tincture/internal/logger"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() {
		logger.SetLevel(zerolog.InfoLevel)
		logger.SetOutput(os.Stderr)
	})

	logger.Info("Building tokens...")
	logger.Warn("color %q could not be parsed", "nope")
	logger.Debug("hidden at info level")

	out := buf.String()
	assert.Contains(t, out, "Building tokens...")
	assert.Contains(t, out, `warning: color "nope" could not be parsed`)
	assert.NotContains(t, out, "hidden at info level")

	buf.Reset()
	logger.SetLevel(zerolog.DebugLevel)
	logger.Debug("now visible")
	assert.Contains(t, buf.String(), "debug: now visible")
}

func TestLogger_Discard(t *testing.T) {
	logger.SetOutput(io.Discard)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	assert.NotPanics(t, func() {
		logger.Warn("silent")
		logger.Get().Warn().Str("token", "Blue.500").Msg("silent")
	})
}
