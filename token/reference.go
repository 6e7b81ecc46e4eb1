/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import (
	"regexp"
	"strings"
)

// curlyBracePattern matches {token.path} references.
var curlyBracePattern = regexp.MustCompile(`\{([^{}]+)\}`)

// IsCurlyBraceRef returns true if the value contains a curly brace reference.
func IsCurlyBraceRef(value string) bool {
	return curlyBracePattern.MatchString(value)
}

// AliasTarget returns the referenced path when value consists of exactly
// one reference and nothing else, e.g. "{Blue.500}".
func AliasTarget(value string) (string, bool) {
	value = strings.TrimSpace(value)
	loc := curlyBracePattern.FindStringSubmatchIndex(value)
	if loc == nil || loc[0] != 0 || loc[1] != len(value) {
		return "", false
	}
	return strings.TrimSpace(value[loc[2]:loc[3]]), true
}

// ExtractAllRefs extracts all curly brace references from a string.
func ExtractAllRefs(value string) []string {
	matches := curlyBracePattern.FindAllStringSubmatch(value, -1)
	refs := make([]string, 0, len(matches))
	for _, m := range matches {
		if len(m) >= 2 {
			refs = append(refs, strings.TrimSpace(m[1]))
		}
	}
	return refs
}

// ReplaceRefs substitutes every reference in value with the string
// returned by fn for its path.
func ReplaceRefs(value string, fn func(path string) string) string {
	return curlyBracePattern.ReplaceAllStringFunc(value, func(m string) string {
		return fn(strings.TrimSpace(m[1 : len(m)-1]))
	})
}
