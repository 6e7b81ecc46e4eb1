/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package pipeline

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"bennypowers.dev/tincture/fs"
	"bennypowers.dev/tincture/internal/logger"
	"bennypowers.dev/tincture/parser"
	"bennypowers.dev/tincture/token"
)

const (
	// SourcePrimitives is the key of the primitive branch in a theme document.
	SourcePrimitives = "Primitives"

	// SourceTokens is the key of the semantic branch in a theme document.
	SourceTokens = "Tokens"
)

type themeDocument struct {
	Primitives json.RawMessage `json:"Primitives"`
	Tokens     json.RawMessage `json:"Tokens"`
}

// Assemble writes the intermediate document for one theme,
// {"Primitives": <primitives>, "Tokens": <semantic>}, into tmpDir and
// returns its path. Neither set is modified.
func Assemble(filesystem fs.FileSystem, tmpDir, theme string, primitives, semantic *token.Set) (string, error) {
	data, err := json.Marshal(themeDocument{
		Primitives: primitives.Raw(),
		Tokens:     semantic.Raw(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to assemble %s theme: %w", theme, err)
	}

	p := filepath.Join(tmpDir, theme+".json")
	if err := filesystem.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s theme document: %w", theme, err)
	}
	return p, nil
}

// ParseTheme reads a theme document written by Assemble. Both branches
// are excluded parent keys, so paths carry no "Primitives" or "Tokens"
// segment. When a path appears in both branches the semantic token
// replaces the primitive one in place.
func ParseTheme(filesystem fs.FileSystem, p string) ([]*token.Token, error) {
	tokens, err := parser.NewJSONParser().ParseFile(filesystem, p, parser.Options{ExcludeParentKeys: true})
	if err != nil {
		return nil, err
	}

	merged := make([]*token.Token, 0, len(tokens))
	index := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		key := tok.DotPath()
		i, dup := index[key]
		if !dup {
			index[key] = len(merged)
			merged = append(merged, tok)
			continue
		}
		if tok.Source == merged[i].Source {
			return nil, fmt.Errorf("%w in %s: %s", token.ErrDuplicateToken, tok.Source, key)
		}
		logger.Warn("%s is defined in both %s and %s; using %s", key, merged[i].Source, tok.Source, SourceTokens)
		if tok.Source == SourceTokens {
			merged[i] = tok
		}
	}
	return merged, nil
}
