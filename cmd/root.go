/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for tincture.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/tincture/cmd/build"
	"bennypowers.dev/tincture/cmd/list"
	"bennypowers.dev/tincture/cmd/search"
	"bennypowers.dev/tincture/cmd/validate"
	"bennypowers.dev/tincture/cmd/version"
	"bennypowers.dev/tincture/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "tincture",
	Short: "Build OKLCh theme stylesheets from a Tokens Studio export",
	Long: `tincture turns a Figma / Tokens Studio export into CSS custom properties:
primitives.css for the palette, light.css for the light theme and dark.css
for the dark theme, with every color in OKLCh.

Settings come from .config/tincture.yaml, then TINCTURE_* environment
variables, then flags. Running tincture without a subcommand builds.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	PersistentPreRunE: configureLogging,
	RunE:              build.Run,
}

// Execute runs the root command. An interrupt cancels the running build.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP(build.KeyInput, "i", "", "Export file path or http(s) URL (default \"tokens.json\")")
	flags.StringP(build.KeyOutDir, "o", "", "Output directory (default \"src/tokens/generated\")")
	flags.String(build.KeyTempDir, "", "Directory for intermediate files (default \".tokens-tmp\")")
	flags.StringP(build.KeyPrefix, "p", "", "Prefix for every custom property name")
	flags.String(build.KeyDarkSelector, "", "Selector wrapping dark.css (default \".dark\")")
	flags.BoolP("quiet", "q", false, "Only output warnings and errors")
	flags.BoolP("verbose", "v", false, "Output debug information")

	for _, key := range []string{build.KeyInput, build.KeyOutDir, build.KeyTempDir, build.KeyPrefix, build.KeyDarkSelector} {
		_ = viper.BindPFlag(key, flags.Lookup(key))
	}
	viper.SetEnvPrefix("tincture")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(build.Cmd)
	rootCmd.AddCommand(list.Cmd)
	rootCmd.AddCommand(search.Cmd)
	rootCmd.AddCommand(validate.Cmd)
	rootCmd.AddCommand(version.Cmd)
}

func configureLogging(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")
	verbose, _ := cmd.Flags().GetBool("verbose")
	switch {
	case verbose:
		logger.SetLevel(zerolog.DebugLevel)
	case quiet:
		logger.SetLevel(zerolog.WarnLevel)
	}
	return nil
}
