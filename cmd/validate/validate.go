/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package validate provides the validate command for tincture.
package validate

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bennypowers.dev/tincture/cmd/build"
	"bennypowers.dev/tincture/fs"
	"bennypowers.dev/tincture/pipeline"
)

// ErrStrict reports a build that succeeded with recovered problems.
var ErrStrict = errors.New("validation failed in strict mode")

// Cmd is the validate cobra command.
var Cmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the export builds",
	Long: `Run every build phase without writing outputs and report what the
build would produce. With --strict, untransformable values and skipped
tokens fail the check.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("strict", false, "Fail on warnings")
}

func run(cmd *cobra.Command, args []string) error {
	strict, _ := cmd.Flags().GetBool("strict")
	quiet, _ := cmd.Flags().GetBool("quiet")

	filesystem := fs.NewOSFileSystem()
	cfg, err := build.PipelineConfig(filesystem, ".")
	if err != nil {
		return err
	}

	rendered, err := pipeline.Render(cmd.Context(), filesystem, cfg, nil)
	if err != nil {
		return err
	}

	return report(cmd.OutOrStdout(), rendered, strict, quiet)
}

func report(w io.Writer, rendered *pipeline.Rendered, strict, quiet bool) error {
	warnings := len(rendered.Issues) + len(rendered.Problems)
	for _, out := range rendered.Outputs {
		warnings += len(out.Skipped)
		if quiet {
			continue
		}
		fmt.Fprintf(w, "%s: %d tokens", out.Destination, out.Tokens)
		if n := len(out.Skipped); n > 0 {
			fmt.Fprintf(w, ", %d skipped", n)
		}
		fmt.Fprintln(w)
	}

	if !quiet {
		for _, issue := range rendered.Issues {
			fmt.Fprintf(w, "  %s\n", issue)
		}
		for _, problem := range rendered.Problems {
			fmt.Fprintf(w, "  %s\n", problem)
		}
	}

	if strict && warnings > 0 {
		return fmt.Errorf("%w: %d warning(s)", ErrStrict, warnings)
	}
	if !quiet {
		fmt.Fprintln(w, "Export is valid.")
	}
	return nil
}
