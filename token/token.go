/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package token provides design token types for Figma / Tokens Studio exports.
package token

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"
)

// Kind is the closed set of token kinds the build distinguishes.
type Kind int

const (
	// KindOther covers every type tag the build does not transform.
	KindOther Kind = iota

	// KindColor is a color token.
	KindColor

	// KindNumber is a unitless numeric token (spacing, radius, ...).
	KindNumber
)

// String returns the export type tag for the kind.
func (k Kind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindNumber:
		return "number"
	case KindOther:
		return "other"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind maps an export type tag to a Kind.
func ParseKind(typ string) Kind {
	switch strings.ToLower(strings.TrimSpace(typ)) {
	case "color":
		return KindColor
	case "number":
		return KindNumber
	default:
		return KindOther
	}
}

// Token represents a single leaf of a design token export.
type Token struct {
	// Name is the CSS custom property name without the leading "--".
	// Empty until the name transform has run.
	Name string

	// Path is the position of the token in its set, without the set's key.
	Path []string

	// Type is the type tag as written in the export.
	Type string

	// Kind is the parsed Type.
	Kind Kind

	// Description is optional documentation for the token.
	Description string

	// Source is the top-level key of the combined document the token
	// was read from ("Primitives" or "Tokens"). Empty for plain sets.
	Source string

	// RawValue is the value as written in the export: string, float64,
	// bool, or a decoded composite (map/slice).
	RawValue any

	// ResolvedValue is RawValue with every reference substituted.
	ResolvedValue any

	// IsResolved indicates if reference resolution has been performed.
	IsResolved bool

	// AliasOf is the dot path of the token this one aliases, when its raw
	// value is exactly one reference.
	AliasOf string

	// Value is the working string value. Resolution seeds it and value
	// transforms rewrite it.
	Value string

	// Line is the 0-based line number where this token is defined.
	Line uint32

	// Character is the 0-based character offset where this token is defined.
	Character uint32
}

// CSSVariableName returns the custom property name for this token.
func (t *Token) CSSVariableName() string {
	if t.Name == "" {
		return ""
	}
	return "--" + t.Name
}

// DotPath returns the dot-separated path to this token, the form used
// inside references.
func (t *Token) DotPath() string {
	return strings.Join(t.Path, ".")
}

// IsComposite reports whether the token's value is an object or array.
func (t *Token) IsComposite() bool {
	v := t.ResolvedValue
	if v == nil {
		v = t.RawValue
	}
	switch v.(type) {
	case map[string]any, []any:
		return true
	}
	return false
}

// Clone returns a copy of the token that can be resolved and transformed
// without touching the original.
func (t *Token) Clone() *Token {
	c := *t
	c.Path = slices.Clone(t.Path)
	return &c
}

// FormatValue renders a raw or resolved value as the string a CSS
// declaration would carry.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		data, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
