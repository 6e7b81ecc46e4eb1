/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"bennypowers.dev/tincture/token"
)

var (
	// ErrCircularReference indicates a circular reference was detected.
	ErrCircularReference = errors.New("circular reference detected")

	// ErrUnresolvedReference indicates a reference names no known token.
	ErrUnresolvedReference = errors.New("unresolved token reference")
)

// ResolveAliases substitutes every {path} reference in the tokens' raw
// values. It sets ResolvedValue, Value, IsResolved and, for pure aliases,
// AliasOf on each token. A dangling or circular reference fails the
// whole resolution.
func ResolveAliases(tokens []*token.Token) error {
	graph := BuildDependencyGraph(tokens)

	if missing := graph.Missing(); len(missing) > 0 {
		return unresolvedError(missing)
	}

	sortedPaths, err := graph.TopologicalSort()
	if err != nil {
		return err
	}

	tokenByPath := make(map[string]*token.Token, len(tokens))
	for _, tok := range tokens {
		tokenByPath[tok.DotPath()] = tok
	}

	for _, path := range sortedPaths {
		if tok := tokenByPath[path]; tok != nil {
			resolveToken(tok, tokenByPath)
		}
	}
	return nil
}

func resolveToken(tok *token.Token, tokenByPath map[string]*token.Token) {
	if tok.IsResolved {
		return
	}

	if s, ok := tok.RawValue.(string); ok {
		if target, ok := token.AliasTarget(s); ok {
			ref := tokenByPath[target]
			tok.AliasOf = target
			if tok.Type == "" {
				tok.Type = ref.Type
				tok.Kind = ref.Kind
			}
		}
	}

	tok.ResolvedValue = resolveValue(tok.RawValue, tokenByPath)
	tok.Value = token.FormatValue(tok.ResolvedValue)
	tok.IsResolved = true
}

// resolveValue returns value with references replaced. A string that is
// exactly one reference takes the referenced value as is, so numbers stay
// numbers; references inside longer strings are substituted as text.
func resolveValue(value any, tokenByPath map[string]*token.Token) any {
	switch v := value.(type) {
	case string:
		if target, ok := token.AliasTarget(v); ok {
			return tokenByPath[target].ResolvedValue
		}
		if !token.IsCurlyBraceRef(v) {
			return v
		}
		return token.ReplaceRefs(v, func(path string) string {
			return token.FormatValue(tokenByPath[path].ResolvedValue)
		})
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, child := range v {
			out[k] = resolveValue(child, tokenByPath)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, child := range v {
			out[i] = resolveValue(child, tokenByPath)
		}
		return out
	default:
		return v
	}
}

func unresolvedError(missing map[string][]string) error {
	paths := make([]string, 0, len(missing))
	for p := range missing {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	details := make([]string, 0, len(paths))
	for _, p := range paths {
		details = append(details, fmt.Sprintf("%s -> {%s}", p, strings.Join(missing[p], "}, {")))
	}
	return fmt.Errorf("%w: %s", ErrUnresolvedReference, strings.Join(details, "; "))
}
