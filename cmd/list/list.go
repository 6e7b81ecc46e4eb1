/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package list provides the list command for tincture.
package list

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"bennypowers.dev/tincture/classify"
	"bennypowers.dev/tincture/cmd/build"
	"bennypowers.dev/tincture/cmd/render"
	"bennypowers.dev/tincture/fs"
	"bennypowers.dev/tincture/pipeline"
)

// Cmd is the list cobra command.
var Cmd = &cobra.Command{
	Use:   "list",
	Short: "List built tokens of a theme",
	Long: `List every token of a theme after references are resolved and values
are transformed, without writing any files.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().String("theme", "light", "Theme to list")
	Cmd.Flags().String("class", "", "Filter by class: primitive, semantic, suppressed")
	Cmd.Flags().String("type", "", "Filter by token type")
	Cmd.Flags().String("group", "", "Filter by top-level group")
	Cmd.Flags().String("format", "table", "Output format: table, json, markdown, css, names")
	Cmd.Flags().Bool("no-swatch", false, "Omit color swatches from table output")
}

func run(cmd *cobra.Command, args []string) error {
	themeName, _ := cmd.Flags().GetString("theme")
	classFilter, _ := cmd.Flags().GetString("class")
	typeFilter, _ := cmd.Flags().GetString("type")
	groupFilter, _ := cmd.Flags().GetString("group")
	format, _ := cmd.Flags().GetString("format")
	noSwatch, _ := cmd.Flags().GetBool("no-swatch")

	filter := Filter{Type: typeFilter, Group: groupFilter}
	if classFilter != "" {
		class, err := classify.ParseClass(classFilter)
		if err != nil {
			return err
		}
		filter.Class = &class
	}

	filesystem := fs.NewOSFileSystem()
	cfg, err := build.PipelineConfig(filesystem, ".")
	if err != nil {
		return err
	}

	rendered, err := pipeline.Render(cmd.Context(), filesystem, cfg, nil)
	if err != nil {
		return err
	}

	idx := slices.IndexFunc(rendered.Themes, func(t pipeline.ThemeTokens) bool {
		return t.Name == themeName
	})
	if idx < 0 {
		names := make([]string, len(rendered.Themes))
		for i, t := range rendered.Themes {
			names[i] = t.Name
		}
		return fmt.Errorf("unknown theme %q (available: %s)", themeName, strings.Join(names, ", "))
	}

	rows := filterRows(render.ComputeRows(rendered.Themes[idx].Tokens, cfg.Classifier), filter)
	swatches := !noSwatch && render.IsTerminal(os.Stdout)
	return render.Write(cmd.OutOrStdout(), rows, format, swatches)
}

// Filter narrows the listed rows. Zero fields match everything.
type Filter struct {
	Type  string
	Group string
	Class *classify.Class
}

func filterRows(rows []render.Row, f Filter) []render.Row {
	result := make([]render.Row, 0, len(rows))
	for _, r := range rows {
		if f.Type != "" && r.Type != f.Type {
			continue
		}
		if f.Group != "" && (len(r.Path) == 0 || !strings.EqualFold(r.Path[0], f.Group)) {
			continue
		}
		if f.Class != nil && r.Class != *f.Class {
			continue
		}
		result = append(result, r)
	}
	return result
}
