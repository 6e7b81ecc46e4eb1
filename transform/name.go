/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package transform

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bennypowers.dev/tincture/token"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	hyphenRun     = regexp.MustCompile(`-{2,}`)
)

// Kebab sets a token's Name to the kebab-case form of its path.
type Kebab struct {
	// Prefix, when set, is joined to every name with a hyphen.
	Prefix string
}

// Name implements Transform.
func (k *Kebab) Name() string { return "name/kebab" }

// Apply implements Transform.
func (k *Kebab) Apply(tok *token.Token) error {
	name := KebabName(tok.Path)
	if k.Prefix != "" {
		name = KebabName([]string{k.Prefix}) + "-" + name
	}
	tok.Name = name
	return nil
}

// KebabName converts a token path to a CSS variable name. Each segment
// is lowercased, whitespace runs become hyphens and hyphen runs within the
// segment collapse before the segments are joined.
// A two-segment path whose second segment already starts with the first
// drops the redundant first segment: Spacing/spacing-xs is spacing-xs.
func KebabName(path []string) string {
	lower := cases.Lower(language.Und)
	parts := make([]string, len(path))
	for i, seg := range path {
		seg = lower.String(seg)
		seg = whitespaceRun.ReplaceAllString(seg, "-")
		parts[i] = hyphenRun.ReplaceAllString(seg, "-")
	}

	if len(parts) == 2 && strings.HasPrefix(parts[1], parts[0]+"-") {
		return parts[1]
	}
	return strings.Join(parts, "-")
}
