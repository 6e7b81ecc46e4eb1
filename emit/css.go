/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package emit renders transformed tokens as CSS custom property files.
package emit

import (
	"fmt"
	"strings"

	"bennypowers.dev/tincture/classify"
	"bennypowers.dev/tincture/internal/logger"
	"bennypowers.dev/tincture/token"
)

// Header opens every generated file.
const Header = `/**
 * Do not edit directly, this file was auto-generated.
 */

`

// SelectorRoot is the document root selector.
const SelectorRoot = ":root"

// OutputSpec describes one generated file.
type OutputSpec struct {
	// Destination is the file name, relative to the output directory.
	Destination string

	// Selector wraps the declarations, e.g. ":root" or ".dark".
	Selector string

	// Filter selects the class of tokens written to the file.
	Filter classify.Class

	// OutputReferences writes pure aliases as var() references instead
	// of their resolved values.
	OutputReferences bool
}

// Output is a rendered file that has not been written yet.
type Output struct {
	Destination string
	Content     []byte

	// Tokens is the number of declarations in Content.
	Tokens int

	// Skipped lists the dot paths of matching tokens that could not be
	// written as a declaration.
	Skipped []string
}

// CSS renders CSS variable files.
type CSS struct {
	classifier *classify.Classifier
}

// New creates a CSS emitter that filters with classifier.
func New(classifier *classify.Classifier) *CSS {
	if classifier == nil {
		classifier = classify.New()
	}
	return &CSS{classifier: classifier}
}

// Render writes the tokens matching spec.Filter, in the order given,
// as declarations inside spec.Selector. tokens must be the full,
// transformed token list of one theme, since alias targets are looked
// up in it.
func (c *CSS) Render(tokens []*token.Token, spec OutputSpec) *Output {
	byPath := make(map[string]*token.Token, len(tokens))
	for _, tok := range tokens {
		byPath[tok.DotPath()] = tok
	}

	selector := spec.Selector
	if selector == "" {
		selector = SelectorRoot
	}

	out := &Output{Destination: spec.Destination}

	var sb strings.Builder
	sb.WriteString(Header)
	sb.WriteString(selector)
	sb.WriteString(" {\n")

	for _, tok := range tokens {
		if c.classifier.Classify(tok.Path) != spec.Filter {
			continue
		}
		value, ok := c.declarationValue(tok, byPath, spec.OutputReferences)
		if !ok {
			out.Skipped = append(out.Skipped, tok.DotPath())
			continue
		}

		fmt.Fprintf(&sb, "  %s: %s;", tok.CSSVariableName(), value)
		if tok.Description != "" {
			fmt.Fprintf(&sb, " /** %s */", commentSafe(tok.Description))
		}
		sb.WriteString("\n")
		out.Tokens++
	}

	sb.WriteString("}\n")
	out.Content = []byte(sb.String())
	return out
}

func (c *CSS) declarationValue(tok *token.Token, byPath map[string]*token.Token, references bool) (string, bool) {
	if tok.Name == "" {
		logger.Warn("skipping %s: no variable name", tok.DotPath())
		return "", false
	}
	if tok.IsComposite() {
		logger.Warn("skipping %s: composite %s values are not supported", tok.DotPath(), tok.Type)
		return "", false
	}
	if strings.TrimSpace(tok.Value) == "" {
		logger.Warn("skipping %s: empty value", tok.DotPath())
		return "", false
	}

	if references && tok.AliasOf != "" {
		if target, ok := c.referenceTarget(tok.AliasOf, byPath); ok {
			return "var(" + target.CSSVariableName() + ")", true
		}
	}
	return tok.Value, true
}

// referenceTarget returns the aliased token when it is declared in some
// generated file, so a var() reference to it resolves.
func (c *CSS) referenceTarget(path string, byPath map[string]*token.Token) (*token.Token, bool) {
	target, ok := byPath[path]
	if !ok || target.Name == "" || target.IsComposite() || strings.TrimSpace(target.Value) == "" {
		return nil, false
	}
	if c.classifier.Classify(target.Path) == classify.Suppressed {
		return nil, false
	}
	return target, true
}

func commentSafe(s string) string {
	return strings.ReplaceAll(s, "*/", "* /")
}
