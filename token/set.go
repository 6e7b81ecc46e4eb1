/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import (
	"errors"
	"fmt"
	"slices"
)

// ErrDuplicateToken indicates two tokens share a path within one set.
var ErrDuplicateToken = errors.New("duplicate token path")

// Set is a named, ordered collection of tokens read from one branch of an
// export, e.g. "Primitives/Mode 1". A Set is not modified after creation.
type Set struct {
	name   string
	raw    []byte
	tokens []*Token
	byPath map[string]*Token
}

// NewSet creates a set from tokens in document order. raw is the JSON
// text of the branch the tokens were parsed from.
func NewSet(name string, raw []byte, tokens []*Token) (*Set, error) {
	s := &Set{
		name:   name,
		raw:    slices.Clone(raw),
		tokens: make([]*Token, 0, len(tokens)),
		byPath: make(map[string]*Token, len(tokens)),
	}
	for _, t := range tokens {
		key := t.DotPath()
		if _, exists := s.byPath[key]; exists {
			return nil, fmt.Errorf("%w in %q: %s", ErrDuplicateToken, name, key)
		}
		s.byPath[key] = t
		s.tokens = append(s.tokens, t)
	}
	return s, nil
}

// Name returns the export key of the set.
func (s *Set) Name() string {
	return s.name
}

// Raw returns a copy of the JSON text of the set.
func (s *Set) Raw() []byte {
	return slices.Clone(s.raw)
}

// Len returns the number of tokens in the set.
func (s *Set) Len() int {
	return len(s.tokens)
}

// Get retrieves a token by dot path.
func (s *Set) Get(dotPath string) (*Token, bool) {
	t, ok := s.byPath[dotPath]
	return t, ok
}

// Tokens returns clones of the tokens in document order.
func (s *Set) Tokens() []*Token {
	out := make([]*Token, len(s.tokens))
	for i, t := range s.tokens {
		out[i] = t.Clone()
	}
	return out
}
