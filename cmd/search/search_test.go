/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package search

import (
	"regexp"
	"testing"

	"bennypowers.dev/tincture/cmd/render"
)

func TestMatchString(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		query    string
		pattern  *regexp.Regexp
		expected bool
	}{
		{"simple match", "--blue-500", "blue", nil, true},
		{"case insensitive", "Text.on-surface", "ON-SURFACE", nil, true},
		{"no match", "--blue-500", "gray", nil, false},
		{"empty query", "--blue-500", "", nil, true},
		{"empty string", "", "query", nil, false},
		{"regex match", "--blue-500", "", regexp.MustCompile(`^--blue-`), true},
		{"regex no match", "--surface", "", regexp.MustCompile(`^--blue-`), false},
		{"regex case sensitive", "Blue", "", regexp.MustCompile(`blue`), false},
		{"regex case insensitive", "Blue", "", regexp.MustCompile(`(?i)blue`), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchString(tt.s, tt.query, tt.pattern)
			if got != tt.expected {
				t.Errorf("matchString(%q, %q, pattern) = %v, want %v", tt.s, tt.query, got, tt.expected)
			}
		})
	}
}

func TestSearchRows(t *testing.T) {
	rows := []render.Row{
		{Name: "--blue-500", Path: []string{"Blue", "500"}, Value: "oklch(0.6231 0.188 259.8)"},
		{Name: "--surface", Path: []string{"Surface"}, Value: "oklch(0.6231 0.188 259.8)", Description: "Page blue"},
		{Name: "--gap", Path: []string{"Gap"}, Value: "16px"},
	}

	t.Run("all fields", func(t *testing.T) {
		if got := searchRows(rows, "blue", nil, MatchAll); len(got) != 2 {
			t.Errorf("expected 2 matches, got %d", len(got))
		}
	})

	t.Run("name only", func(t *testing.T) {
		got := searchRows(rows, "blue", nil, MatchName)
		if len(got) != 1 || got[0].Name != "--blue-500" {
			t.Errorf("expected only --blue-500, got %v", got)
		}
	})

	t.Run("path segment", func(t *testing.T) {
		if got := searchRows(rows, "Blue.500", nil, MatchName); len(got) != 1 {
			t.Errorf("expected dot path match, got %d", len(got))
		}
	})

	t.Run("value only", func(t *testing.T) {
		got := searchRows(rows, "", regexp.MustCompile(`px$`), MatchValue)
		if len(got) != 1 || got[0].Name != "--gap" {
			t.Errorf("expected only --gap, got %v", got)
		}
	})
}
