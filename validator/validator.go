/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package validator checks built token names before they are written as
// CSS custom properties.
package validator

import (
	"fmt"
	"strings"

	"bennypowers.dev/tincture/token"
)

// ValidationError represents a token that would produce a broken or
// ambiguous declaration.
type ValidationError struct {
	// Theme is the theme the token was built for.
	Theme string
	// Path is the dot path of the token in the export.
	Path string
	// Message describes what's wrong.
	Message string
	// Suggestion provides an actionable fix.
	Suggestion string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	var sb strings.Builder
	if e.Theme != "" {
		sb.WriteString(e.Theme)
		sb.WriteString(": ")
	}
	if e.Path != "" {
		sb.WriteString(e.Path)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	if e.Suggestion != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Suggestion)
		sb.WriteString(")")
	}
	return sb.String()
}

// ValidateNames reports tokens of one theme whose custom property names
// collide with an earlier token or contain characters CSS requires to be
// escaped. Tokens without a name are ignored.
func ValidateNames(theme string, tokens []*token.Token) []ValidationError {
	var errors []ValidationError
	seen := make(map[string]string, len(tokens))

	for _, tok := range tokens {
		if tok.Name == "" {
			continue
		}
		path := tok.DotPath()

		if first, dup := seen[tok.Name]; dup {
			errors = append(errors, ValidationError{
				Theme:      theme,
				Path:       path,
				Message:    fmt.Sprintf("%s is also produced by %s", tok.CSSVariableName(), first),
				Suggestion: "rename one of the tokens in the export",
			})
			continue
		}
		seen[tok.Name] = path

		if bad := invalidRunes(tok.Name); bad != "" {
			errors = append(errors, ValidationError{
				Theme:      theme,
				Path:       path,
				Message:    fmt.Sprintf("%s contains %q, which is not valid in a custom property name", tok.CSSVariableName(), bad),
				Suggestion: "use letters, digits, hyphens or underscores",
			})
		}
	}

	return errors
}

// invalidRunes returns the distinct characters of name that are not
// allowed unescaped in a CSS identifier.
func invalidRunes(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if isNameRune(r) || strings.ContainsRune(sb.String(), r) {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_':
		return true
	}
	return r >= 0x80
}
