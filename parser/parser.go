/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package parser provides parsing of Tokens Studio and DTCG token exports.
package parser

import (
	"bennypowers.dev/tincture/fs"
	"bennypowers.dev/tincture/token"
)

// Options configures token parsing.
type Options struct {
	// ExcludeParentKeys treats every top-level key as the name of a token
	// set. The key becomes each token's Source and is left out of its Path,
	// so {"Primitives": {"Blue": {"500": ...}}} yields the path Blue.500.
	ExcludeParentKeys bool
}

// Parser parses design token files.
type Parser interface {
	// Parse parses token data and returns tokens in document order.
	Parse(data []byte, opts Options) ([]*token.Token, error)

	// ParseFile parses a token file and returns tokens in document order.
	ParseFile(filesystem fs.FileSystem, path string, opts Options) ([]*token.Token, error)
}
