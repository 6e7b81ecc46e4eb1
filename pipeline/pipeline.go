/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package pipeline builds theme CSS files from a Tokens Studio export.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"bennypowers.dev/tincture/classify"
	"bennypowers.dev/tincture/config"
	"bennypowers.dev/tincture/emit"
	"bennypowers.dev/tincture/fs"
	"bennypowers.dev/tincture/internal/logger"
	"bennypowers.dev/tincture/load"
	"bennypowers.dev/tincture/resolver"
	"bennypowers.dev/tincture/token"
	"bennypowers.dev/tincture/transform"
	"bennypowers.dev/tincture/validator"
)

// ThemeTokens are the resolved, transformed tokens of one theme.
type ThemeTokens struct {
	Name   string
	Tokens []*token.Token
}

// Rendered holds every output of a build before anything is written.
type Rendered struct {
	Outputs []*emit.Output
	Themes  []ThemeTokens
	Issues  []transform.Issue

	// Problems are names that collide or need escaping. They are
	// logged but do not stop the build.
	Problems []validator.ValidationError
}

// FileResult describes one written file.
type FileResult struct {
	Path    string
	Tokens  int
	Skipped int
}

// Result summarizes a completed build.
type Result struct {
	Files  []FileResult
	Issues []transform.Issue
}

// Recovered returns the number of per-token failures that were logged
// and passed through.
func (r *Result) Recovered() int {
	return len(r.Issues)
}

// Run builds every theme and writes the outputs into cfg.OutDir. Nothing
// is written unless every theme renders. The run's temporary directory
// is removed on every path; when only that removal fails, the returned
// Result is still valid alongside the error.
func Run(ctx context.Context, filesystem fs.FileSystem, cfg Config) (*Result, error) {
	logger.Info("Building tokens...")

	rendered, err := Render(ctx, filesystem, cfg, func(theme Theme) {
		names := make([]string, len(theme.Outputs))
		for i, out := range theme.Outputs {
			names[i] = out.Destination
		}
		logger.Info("  ✓ %s", strings.Join(names, " + "))
	})
	if rendered == nil {
		return nil, err
	}
	cleanupErr := err

	if err := ctx.Err(); err != nil {
		return nil, errors.Join(err, cleanupErr)
	}

	result, err := write(filesystem, cfg.OutDir, rendered)
	if err != nil {
		return nil, errors.Join(err, cleanupErr)
	}
	if cleanupErr != nil {
		return result, cleanupErr
	}

	logger.Info("Done → %s", cfg.OutDir)
	return result, nil
}

// Render runs every phase of a build except writing outputs. onTheme,
// when not nil, is called after each theme renders. If the build
// succeeds but its temporary directory cannot be removed, both the
// rendering and the error are returned.
func Render(ctx context.Context, filesystem fs.FileSystem, cfg Config, onTheme func(Theme)) (_ *Rendered, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	classifier := cfg.Classifier
	if classifier == nil {
		classifier = classify.New()
	}
	transforms := cfg.Transforms
	if transforms == nil {
		transforms = transform.Default(cfg.Prefix)
	}

	sets, err := load.Export(ctx, cfg.Input, load.Options{
		FS:       filesystem,
		Required: cfg.requiredSets(),
		Fetcher:  cfg.Fetcher,
	})
	if err != nil {
		return nil, err
	}
	primitives, _ := sets.Get(cfg.PrimitiveSet)

	tmpDir, cleanup, err := makeTempDir(filesystem, cfg.TempBase)
	if err != nil {
		return nil, err
	}

	rendered := &Rendered{}
	defer func() {
		if cerr := cleanup(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	emitter := emit.New(classifier)
	for _, theme := range cfg.Themes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		semantic, _ := sets.Get(theme.Set)
		tokens, issues, err := buildTheme(filesystem, tmpDir, theme, primitives, semantic, transforms)
		if err != nil {
			return nil, err
		}
		rendered.Issues = append(rendered.Issues, issues...)

		tokens = exclude(tokens, cfg)
		for _, problem := range validator.ValidateNames(theme.Name, tokens) {
			logger.Warn("%s", problem)
			rendered.Problems = append(rendered.Problems, problem)
		}
		rendered.Themes = append(rendered.Themes, ThemeTokens{Name: theme.Name, Tokens: tokens})
		for _, spec := range theme.Outputs {
			rendered.Outputs = append(rendered.Outputs, emitter.Render(tokens, spec))
		}
		if onTheme != nil {
			onTheme(theme)
		}
	}

	return rendered, nil
}

func buildTheme(filesystem fs.FileSystem, tmpDir string, theme Theme, primitives, semantic *token.Set, transforms []transform.Transform) ([]*token.Token, []transform.Issue, error) {
	docPath, err := Assemble(filesystem, tmpDir, theme.Name, primitives, semantic)
	if err != nil {
		return nil, nil, err
	}

	tokens, err := ParseTheme(filesystem, docPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s theme: %w", theme.Name, err)
	}

	if err := resolver.ResolveAliases(tokens); err != nil {
		return nil, nil, fmt.Errorf("%s theme: %w", theme.Name, err)
	}

	issues := transform.ApplyAll(tokens, transforms)
	return tokens, issues, nil
}

func exclude(tokens []*token.Token, cfg Config) []*token.Token {
	if len(cfg.Exclude) == 0 {
		return tokens
	}
	kept := make([]*token.Token, 0, len(tokens))
	for _, tok := range tokens {
		if cfg.Exclude.Match(tok.Path) {
			logger.Debug("excluding %s", tok.DotPath())
			continue
		}
		kept = append(kept, tok)
	}
	return kept
}

// makeTempDir creates a fresh directory under base. The returned cleanup
// removes it, and base too when this call created base.
func makeTempDir(filesystem fs.FileSystem, base string) (string, func() error, error) {
	if base == "" {
		base = config.DefaultTempDir
	}
	createdBase := !filesystem.Exists(base)
	if err := filesystem.MkdirAll(base, 0o755); err != nil {
		return "", nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	dir, err := filesystem.MkdirTemp(base, "build-*")
	if err != nil {
		if createdBase {
			_ = filesystem.RemoveAll(base)
		}
		return "", nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	cleanup := func() error {
		target := dir
		if createdBase {
			target = base
		}
		if err := filesystem.RemoveAll(target); err != nil {
			return fmt.Errorf("failed to remove temp directory: %w", err)
		}
		return nil
	}
	return dir, cleanup, nil
}

func write(filesystem fs.FileSystem, outDir string, rendered *Rendered) (*Result, error) {
	if err := filesystem.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &Result{Issues: rendered.Issues}
	for _, out := range rendered.Outputs {
		p := filepath.Join(outDir, out.Destination)
		if err := filesystem.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := filesystem.WriteFile(p, out.Content, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", p, err)
		}
		result.Files = append(result.Files, FileResult{
			Path:    p,
			Tokens:  out.Tokens,
			Skipped: len(out.Skipped),
		})
	}
	return result, nil
}
