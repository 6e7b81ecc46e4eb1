/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/tincture/internal/mapfs"
	"bennypowers.dev/tincture/testutil"
)

func TestLoad_SimpleYAML(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "config/simple", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected config, got nil")
	}

	if cfg.Input != "design/tokens.json" {
		t.Errorf("expected input 'design/tokens.json', got %q", cfg.Input)
	}
	if cfg.OutDir != "dist/css" {
		t.Errorf("expected outDir 'dist/css', got %q", cfg.OutDir)
	}
	if cfg.TempDir != ".cache/tokens" {
		t.Errorf("expected tempDir '.cache/tokens', got %q", cfg.TempDir)
	}
	if cfg.Prefix != "ds" {
		t.Errorf("expected prefix 'ds', got %q", cfg.Prefix)
	}
	if !slices.Equal(cfg.PrimitiveGroups, []string{"blue", "gray", "brand"}) {
		t.Errorf("unexpected primitive groups %v", cfg.PrimitiveGroups)
	}
	want := SetNames{Primitives: "Core", Light: "Theme/Light", Dark: "Theme/Dark"}
	if cfg.Sets != want {
		t.Errorf("expected sets %+v, got %+v", want, cfg.Sets)
	}
	if len(cfg.Exclude) != 2 {
		t.Fatalf("expected 2 exclude patterns, got %d", len(cfg.Exclude))
	}
	if cfg.DarkSelector != `[data-theme="dark"]` {
		t.Errorf("unexpected dark selector %q", cfg.DarkSelector)
	}
}

func TestLoad_JSON(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "config/json", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Input != "https://example.com/tokens.json" {
		t.Errorf("unexpected input %q", cfg.Input)
	}
	if !slices.Equal(cfg.Exclude, Patterns{"Internal/**"}) {
		t.Errorf("expected scalar exclude to become a list, got %v", cfg.Exclude)
	}
}

func TestLoad_NotFound(t *testing.T) {
	cfg, err := Load(mapfs.New(), "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != nil {
		t.Errorf("expected nil config, got %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "config/invalid", "/project")

	_, err := Load(mfs, "/project")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoad_Malformed(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/project/.config/tincture.json", `{"input": `, 0o644)

	if _, err := Load(mfs, "/project"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(mapfs.New(), "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Input != DefaultInput || cfg.OutDir != DefaultOutDir || cfg.TempDir != DefaultTempDir {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if cfg.Sets.Dark != "Tokens/Dark" {
		t.Errorf("expected default dark set, got %q", cfg.Sets.Dark)
	}
}

func TestLoadOrDefault_FillsMissingFields(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "config/partial", "/project")

	cfg, err := LoadOrDefault(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Prefix != "acme" {
		t.Errorf("expected prefix 'acme', got %q", cfg.Prefix)
	}
	if cfg.OutDir != DefaultOutDir {
		t.Errorf("expected default outDir, got %q", cfg.OutDir)
	}
	if cfg.DarkSelector != DefaultDarkSelector {
		t.Errorf("expected default dark selector, got %q", cfg.DarkSelector)
	}
}

func TestPatterns_Match(t *testing.T) {
	patterns := Patterns{"Deprecated/**", "**/legacy-*"}

	tests := []struct {
		path []string
		want bool
	}{
		{[]string{"Deprecated", "Surface"}, true},
		{[]string{"Deprecated", "Text", "muted"}, true},
		{[]string{"Button", "legacy-bg"}, true},
		{[]string{"Surface"}, false},
		{[]string{"Button", "bg"}, false},
	}
	for _, tt := range tests {
		if got := patterns.Match(tt.path); got != tt.want {
			t.Errorf("Match(%v) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestPatterns_Unmarshal(t *testing.T) {
	var fromYAML struct {
		Exclude Patterns `yaml:"exclude"`
	}
	if err := yaml.Unmarshal([]byte("exclude: Foo/**\n"), &fromYAML); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(fromYAML.Exclude, Patterns{"Foo/**"}) {
		t.Errorf("unexpected YAML patterns %v", fromYAML.Exclude)
	}

	var fromJSON struct {
		Exclude Patterns `json:"exclude"`
	}
	if err := json.Unmarshal([]byte(`{"exclude": ["A", "B/**"]}`), &fromJSON); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(fromJSON.Exclude, Patterns{"A", "B/**"}) {
		t.Errorf("unexpected JSON patterns %v", fromJSON.Exclude)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid, got %v", err)
	}

	cfg.TempDir = cfg.OutDir
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for shared dirs, got %v", err)
	}
}
