/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package build provides the build command for tincture.
package build

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/tincture/config"
	"bennypowers.dev/tincture/fs"
	"bennypowers.dev/tincture/internal/logger"
	"bennypowers.dev/tincture/load"
	"bennypowers.dev/tincture/pipeline"
)

// Keys read from flags and TINCTURE_* environment variables. Each one
// overrides the matching field of .config/tincture.yaml when set.
const (
	KeyInput        = "input"
	KeyOutDir       = "out-dir"
	KeyTempDir      = "temp-dir"
	KeyPrefix       = "prefix"
	KeyDarkSelector = "dark-selector"

	// KeyAuthToken is read from TINCTURE_AUTH_TOKEN only and sent as a
	// bearer token when the input is a URL.
	KeyAuthToken = "auth-token"
)

// Cmd is the build cobra command.
var Cmd = &cobra.Command{
	Use:   "build",
	Short: "Build primitives.css, light.css and dark.css",
	Long: `Build OKLCh CSS custom properties from a Tokens Studio export.

The export is read from --input (a file path or http(s) URL) and the
three stylesheets are written into --out-dir. Nothing is written unless
every theme builds.`,
	Args: cobra.NoArgs,
	RunE: Run,
}

// Run builds the configured themes.
func Run(cmd *cobra.Command, args []string) error {
	filesystem := fs.NewOSFileSystem()

	cfg, err := PipelineConfig(filesystem, ".")
	if err != nil {
		return err
	}

	result, err := pipeline.Run(cmd.Context(), filesystem, cfg)
	if err != nil {
		return err
	}
	if n := result.Recovered(); n > 0 {
		logger.Warn("%d token value(s) could not be transformed and were passed through", n)
	}
	for _, f := range result.Files {
		logger.Debug("%s: %d declarations, %d skipped", f.Path, f.Tokens, f.Skipped)
	}
	return nil
}

// PipelineConfig loads the config file under root and applies flag and
// environment overrides from viper.
func PipelineConfig(filesystem fs.FileSystem, root string) (pipeline.Config, error) {
	c, err := config.LoadOrDefault(filesystem, root)
	if err != nil {
		return pipeline.Config{}, err
	}

	override(&c.Input, KeyInput)
	override(&c.OutDir, KeyOutDir)
	override(&c.TempDir, KeyTempDir)
	override(&c.Prefix, KeyPrefix)
	override(&c.DarkSelector, KeyDarkSelector)

	if err := c.Validate(); err != nil {
		return pipeline.Config{}, fmt.Errorf("error in configuration: %w", err)
	}

	cfg := pipeline.FromConfig(c)
	if load.IsRemote(cfg.Input) {
		cfg.Fetcher = load.NewHTTPFetcher(load.DefaultMaxSize,
			load.WithAuthToken(viper.GetString(KeyAuthToken)))
	}
	return cfg, nil
}

func override(field *string, key string) {
	if v := viper.GetString(key); v != "" {
		*field = v
	}
}
