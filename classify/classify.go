/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package classify partitions tokens into primitive palette values,
// semantic theme roles, and suppressed aliases.
package classify

import (
	"fmt"
	"strings"
)

// Class is the output partition a token belongs to.
type Class int

const (
	// Semantic tokens name a role whose value is chosen per theme.
	Semantic Class = iota

	// Primitive tokens are raw palette values.
	Primitive

	// Suppressed tokens are emitted nowhere: bare white/black aliases
	// that would duplicate the primitives of the same name.
	Suppressed
)

// String returns the lowercase name of the class.
func (c Class) String() string {
	switch c {
	case Semantic:
		return "semantic"
	case Primitive:
		return "primitive"
	case Suppressed:
		return "suppressed"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// ParseClass parses the lowercase name of a class.
func ParseClass(s string) (Class, error) {
	switch strings.ToLower(s) {
	case "semantic":
		return Semantic, nil
	case "primitive":
		return Primitive, nil
	case "suppressed":
		return Suppressed, nil
	}
	return Semantic, fmt.Errorf("unknown token class %q", s)
}

// DefaultGroups are the color families treated as primitives.
var DefaultGroups = []string{
	"slate", "gray", "zinc", "neutral", "stone",
	"red", "orange", "amber", "green", "emerald",
	"teal", "cyan", "sky", "indigo", "violet",
	"purple", "fuchsia", "pink", "rose", "lime",
	"yellow", "blue", "white", "black", "primary",
}

// Classifier assigns a Class from a token path alone.
type Classifier struct {
	groups map[string]bool
}

// New creates a classifier for the given primitive group names.
// Group names are matched case-insensitively. With no groups,
// DefaultGroups is used.
func New(groups ...string) *Classifier {
	if len(groups) == 0 {
		groups = DefaultGroups
	}
	c := &Classifier{groups: make(map[string]bool, len(groups))}
	for _, g := range groups {
		c.groups[strings.ToLower(strings.TrimSpace(g))] = true
	}
	return c
}

// Classify returns the class of the token at path.
func (c *Classifier) Classify(path []string) Class {
	if len(path) == 0 {
		return Suppressed
	}
	head := strings.ToLower(path[0])
	if c.groups[head] {
		return Primitive
	}
	if len(path) == 1 && (head == "white" || head == "black") {
		return Suppressed
	}
	return Semantic
}

// IsPrimitive reports whether path is a primitive palette token.
func (c *Classifier) IsPrimitive(path []string) bool {
	return c.Classify(path) == Primitive
}

// IsSemantic reports whether path is a semantic theme token.
func (c *Classifier) IsSemantic(path []string) bool {
	return c.Classify(path) == Semantic
}
