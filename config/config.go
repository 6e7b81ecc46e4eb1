/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for the token build.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig indicates a config value cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

const (
	// DefaultInput is the export read when none is configured.
	DefaultInput = "tokens.json"

	// DefaultOutDir is where generated CSS is written.
	DefaultOutDir = "src/tokens/generated"

	// DefaultTempDir is the base directory for per-run intermediates.
	DefaultTempDir = ".tokens-tmp"

	// DefaultDarkSelector wraps the dark theme declarations.
	DefaultDarkSelector = ".dark"
)

// Config represents the token build configuration.
type Config struct {
	// Input is the Tokens Studio export, a path or an http(s) URL.
	Input string `yaml:"input" json:"input"`

	// OutDir is the directory generated CSS files are written to.
	OutDir string `yaml:"outDir" json:"outDir"`

	// TempDir is the base directory for intermediate theme documents.
	TempDir string `yaml:"tempDir" json:"tempDir"`

	// Prefix is prepended to every CSS variable name.
	Prefix string `yaml:"prefix" json:"prefix"`

	// PrimitiveGroups overrides the top-level group names that mark a
	// token as a primitive.
	PrimitiveGroups []string `yaml:"primitiveGroups" json:"primitiveGroups"`

	// Sets names the export branches to read.
	Sets SetNames `yaml:"sets" json:"sets"`

	// Exclude lists glob patterns, matched against "/"-joined token paths,
	// of tokens that are never emitted.
	Exclude Patterns `yaml:"exclude" json:"exclude"`

	// DarkSelector wraps the dark theme declarations.
	DarkSelector string `yaml:"darkSelector" json:"darkSelector"`
}

// SetNames names the export branches the build reads.
type SetNames struct {
	Primitives string `yaml:"primitives" json:"primitives"`
	Light      string `yaml:"light" json:"light"`
	Dark       string `yaml:"dark" json:"dark"`
}

// Patterns is a list of glob patterns. It can be written as a single
// string or as a list.
type Patterns []string

// UnmarshalYAML handles both string and list forms for Patterns.
func (p *Patterns) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*p = Patterns{node.Value}
		return nil
	}

	var list []string
	if err := node.Decode(&list); err != nil {
		return err
	}
	*p = list
	return nil
}

// UnmarshalJSON handles both string and list forms for Patterns.
func (p *Patterns) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = Patterns{s}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*p = list
	return nil
}

// Match reports whether the token path matches any pattern.
func (p Patterns) Match(path []string) bool {
	joined := strings.Join(path, "/")
	for _, pattern := range p {
		if matched, _ := doublestar.Match(pattern, joined); matched {
			return true
		}
	}
	return false
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		Input:   DefaultInput,
		OutDir:  DefaultOutDir,
		TempDir: DefaultTempDir,
		Sets: SetNames{
			Primitives: "Primitives/Mode 1",
			Light:      "Tokens/Light",
			Dark:       "Tokens/Dark",
		},
		DarkSelector: DefaultDarkSelector,
	}
}

// WithDefaults returns a copy of c with every unset field taken from
// Default.
func (c *Config) WithDefaults() *Config {
	def := Default()
	out := *c
	if out.Input == "" {
		out.Input = def.Input
	}
	if out.OutDir == "" {
		out.OutDir = def.OutDir
	}
	if out.TempDir == "" {
		out.TempDir = def.TempDir
	}
	if out.Sets.Primitives == "" {
		out.Sets.Primitives = def.Sets.Primitives
	}
	if out.Sets.Light == "" {
		out.Sets.Light = def.Sets.Light
	}
	if out.Sets.Dark == "" {
		out.Sets.Dark = def.Sets.Dark
	}
	if out.DarkSelector == "" {
		out.DarkSelector = def.DarkSelector
	}
	return &out
}

// Validate checks values that would otherwise fail late in a build.
func (c *Config) Validate() error {
	var errs []error
	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, fmt.Errorf("%w: exclude pattern %q", ErrInvalidConfig, pattern))
		}
	}
	if c.Sets.Light != "" && c.Sets.Light == c.Sets.Dark {
		errs = append(errs, fmt.Errorf("%w: light and dark sets are both %q", ErrInvalidConfig, c.Sets.Light))
	}
	if c.OutDir != "" && c.OutDir == c.TempDir {
		errs = append(errs, fmt.Errorf("%w: outDir and tempDir are both %q", ErrInvalidConfig, c.OutDir))
	}
	return errors.Join(errs...)
}
