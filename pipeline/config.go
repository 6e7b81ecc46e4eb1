/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package pipeline

import (
	"bennypowers.dev/tincture/classify"
	"bennypowers.dev/tincture/config"
	"bennypowers.dev/tincture/emit"
	"bennypowers.dev/tincture/load"
	"bennypowers.dev/tincture/transform"
)

// Theme is one build over the shared primitives plus one semantic set.
type Theme struct {
	// Name labels the theme and its intermediate document.
	Name string

	// Set is the export key of the theme's semantic tokens.
	Set string

	// Outputs are the files rendered from the theme.
	Outputs []emit.OutputSpec
}

// Config describes a complete build.
type Config struct {
	// Input is the export path or http(s) URL.
	Input string

	// OutDir receives every output.
	OutDir string

	// TempBase is the directory each run creates its temporary
	// directory in.
	TempBase string

	// Prefix is prepended to every variable name. Ignored when
	// Transforms is set.
	Prefix string

	// PrimitiveSet is the export key of the shared primitives.
	PrimitiveSet string

	// Classifier splits tokens into primitives and semantics.
	// Defaults to classify.New().
	Classifier *classify.Classifier

	// Transforms run in order over every resolved token.
	// Defaults to transform.Default(Prefix).
	Transforms []transform.Transform

	// Exclude drops matching tokens from every output.
	Exclude config.Patterns

	// Themes are built in order.
	Themes []Theme

	// Fetcher enables http(s) inputs.
	Fetcher load.Fetcher
}

// Default returns the canonical build: the light theme emits
// primitives.css and light.css, the dark theme emits dark.css scoped to
// .dark.
func Default() Config {
	return FromConfig(config.Default())
}

// FromConfig builds a pipeline configuration from a loaded config file.
func FromConfig(c *config.Config) Config {
	c = c.WithDefaults()

	return Config{
		Input:        c.Input,
		OutDir:       c.OutDir,
		TempBase:     c.TempDir,
		Prefix:       c.Prefix,
		PrimitiveSet: c.Sets.Primitives,
		Classifier:   classify.New(c.PrimitiveGroups...),
		Exclude:      c.Exclude,
		Themes: []Theme{
			{
				Name: "light",
				Set:  c.Sets.Light,
				Outputs: []emit.OutputSpec{
					{
						Destination: "primitives.css",
						Selector:    emit.SelectorRoot,
						Filter:      classify.Primitive,
					},
					{
						Destination:      "light.css",
						Selector:         emit.SelectorRoot,
						Filter:           classify.Semantic,
						OutputReferences: true,
					},
				},
			},
			{
				Name: "dark",
				Set:  c.Sets.Dark,
				Outputs: []emit.OutputSpec{
					{
						Destination:      "dark.css",
						Selector:         c.DarkSelector,
						Filter:           classify.Semantic,
						OutputReferences: true,
					},
				},
			},
		},
	}
}

// requiredSets lists every export key the build reads.
func (c Config) requiredSets() []string {
	sets := []string{c.PrimitiveSet}
	for _, theme := range c.Themes {
		sets = append(sets, theme.Set)
	}
	return sets
}
