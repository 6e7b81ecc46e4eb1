/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"bennypowers.dev/tincture/classify"
	"bennypowers.dev/tincture/token"
)

func builtTokens() []*token.Token {
	return []*token.Token{
		{Name: "blue-500", Path: []string{"Blue", "500"}, Type: "color", Kind: token.KindColor, Value: "oklch(0.6231 0.188 259.8)"},
		{Name: "surface", Path: []string{"Surface"}, Type: "color", Kind: token.KindColor, Value: "oklch(0.6231 0.188 259.8)", AliasOf: "Blue.500", Description: "Page background"},
		{Name: "gap", Path: []string{"Gap"}, Kind: token.KindNumber, Value: "16px"},
		{Name: "accent", Path: []string{"Accent"}, Type: "color", Kind: token.KindColor, Value: "not-a-color"},
		{Path: []string{"Unnamed"}, Value: "x"},
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Color Brand", "color-brand"},
		{"color.brand.primary", "color-brand-primary"},
		{"--color-brand-primary", "color-brand-primary"},
		{"Color  Brand", "color-brand"},
		{"with_underscores", "with-underscores"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := slugify(tt.input); got != tt.expected {
				t.Errorf("slugify(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestToTitleCase(t *testing.T) {
	if got := toTitleCase("primitive"); got != "Primitive" {
		t.Errorf("toTitleCase = %q", got)
	}
}

func TestComputeRows(t *testing.T) {
	rows := ComputeRows(builtTokens(), classify.New())

	if len(rows) != 4 {
		t.Fatalf("expected unnamed token to be skipped, got %d rows", len(rows))
	}

	blue := rows[0]
	if blue.Name != "--blue-500" || blue.Class != classify.Primitive || !blue.IsColor {
		t.Errorf("unexpected primitive row %+v", blue)
	}

	surface := rows[1]
	if surface.Reference != "--blue-500" {
		t.Errorf("expected reference --blue-500, got %q", surface.Reference)
	}
	if surface.Class != classify.Semantic {
		t.Errorf("expected semantic class, got %s", surface.Class)
	}

	if rows[2].Type != "-" {
		t.Errorf("expected untyped placeholder, got %q", rows[2].Type)
	}
	if rows[3].IsColor {
		t.Error("unparseable color should not be marked as a color")
	}
}

func TestColorSwatch(t *testing.T) {
	if got := ColorSwatch("#ff0000"); got != "\x1b[48;2;255;0;0m  \x1b[0m " {
		t.Errorf("unexpected swatch %q", got)
	}
	if got := ColorSwatch("nope"); got != "" {
		t.Errorf("expected empty swatch, got %q", got)
	}
}

func TestHex(t *testing.T) {
	if got := Hex("oklch(0.628 0.2576 29.2)"); got != "#ff0000" {
		t.Errorf("Hex = %q, want #ff0000", got)
	}
	if got := Hex("16px"); got != "" {
		t.Errorf("expected empty hex, got %q", got)
	}
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	if err := Table(&buf, ComputeRows(builtTokens(), nil), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[1] != "--surface   semantic   oklch(0.6231 0.188 259.8) → --blue-500" {
		t.Errorf("unexpected line %q", lines[1])
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Error("expected no swatches")
	}
}

func TestMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown(&buf, ComputeRows(builtTokens(), nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "## Primitive {#primitive}\n\n| Name") {
		t.Errorf("unexpected heading:\n%s", out)
	}
	if !strings.Contains(out, "## Semantic {#semantic}") {
		t.Errorf("missing semantic section:\n%s", out)
	}
	if !strings.Contains(out, "| Reference |") {
		t.Errorf("expected reference column:\n%s", out)
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, ComputeRows(builtTokens(), nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out []map[string]string
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(out))
	}
	if out[1]["path"] != "Surface" || out[1]["reference"] != "--blue-500" {
		t.Errorf("unexpected entry %v", out[1])
	}
	if out[0]["hex"] == "" {
		t.Errorf("expected hex for color, got %v", out[0])
	}
	if _, ok := out[2]["type"]; ok {
		t.Errorf("expected untyped entry to omit type, got %v", out[2])
	}
}

func TestCSS(t *testing.T) {
	var buf bytes.Buffer
	rows := ComputeRows(builtTokens()[:2], nil)
	if err := CSS(&buf, rows, ".dark"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := ".dark {\n" +
		"  --blue-500: oklch(0.6231 0.188 259.8);\n" +
		"  --surface: var(--blue-500);\n" +
		"}\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, nil, "xml", false); err == nil {
		t.Error("expected error for unknown format")
	}
}
