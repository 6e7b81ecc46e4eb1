/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package search provides the search command for tincture.
package search

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"bennypowers.dev/tincture/cmd/build"
	"bennypowers.dev/tincture/cmd/render"
	"bennypowers.dev/tincture/fs"
	"bennypowers.dev/tincture/pipeline"
)

// Cmd is the search cobra command.
var Cmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search built tokens by name, path, or value",
	Long:  `Search the built tokens of every theme by name, path, or value with optional regex support.`,
	Args:  cobra.ExactArgs(1),
	RunE:  run,
}

func init() {
	Cmd.Flags().Bool("name", false, "Search names and paths only")
	Cmd.Flags().Bool("value", false, "Search values only")
	Cmd.Flags().Bool("regex", false, "Query is a regex")
	Cmd.Flags().String("format", "table", "Output format: table, json, names")
}

// Match selects the fields a query is compared against.
type Match int

const (
	MatchAll Match = iota
	MatchName
	MatchValue
)

func run(cmd *cobra.Command, args []string) error {
	query := args[0]
	nameOnly, _ := cmd.Flags().GetBool("name")
	valueOnly, _ := cmd.Flags().GetBool("value")
	useRegex, _ := cmd.Flags().GetBool("regex")
	format, _ := cmd.Flags().GetString("format")

	var pattern *regexp.Regexp
	if useRegex {
		var err error
		pattern, err = regexp.Compile(query)
		if err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
	}

	match := MatchAll
	switch {
	case nameOnly && valueOnly:
		return fmt.Errorf("--name and --value are mutually exclusive")
	case nameOnly:
		match = MatchName
	case valueOnly:
		match = MatchValue
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

	w := cmd.OutOrStdout()
	for i, theme := range rendered.Themes {
		rows := searchRows(render.ComputeRows(theme.Tokens, cfg.Classifier), query, pattern, match)
		if len(rows) == 0 {
			continue
		}
		if format == "table" {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "# %s\n", theme.Name)
		}
		if err := render.Write(w, rows, format, render.IsTerminal(os.Stdout)); err != nil {
			return err
		}
	}
	return nil
}

func searchRows(rows []render.Row, query string, pattern *regexp.Regexp, match Match) []render.Row {
	var result []render.Row
	for _, r := range rows {
		path := strings.Join(r.Path, ".")
		var matched bool
		switch match {
		case MatchName:
			matched = matchString(r.Name, query, pattern) || matchString(path, query, pattern)
		case MatchValue:
			matched = matchString(r.Value, query, pattern)
		default:
			matched = matchString(r.Name, query, pattern) ||
				matchString(path, query, pattern) ||
				matchString(r.Value, query, pattern) ||
				matchString(r.Description, query, pattern)
		}
		if matched {
			result = append(result, r)
		}
	}
	return result
}

func matchString(s, query string, pattern *regexp.Regexp) bool {
	if pattern != nil {
		return pattern.MatchString(s)
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(query))
}
