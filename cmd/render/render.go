/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package render provides shared rendering functions for CLI output.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bennypowers.dev/tincture/classify"
	"bennypowers.dev/tincture/token"
)

// Row holds computed display values for a single token.
type Row struct {
	Name        string         // CSS variable name, e.g. "--blue-500"
	Path        []string       // Token path, e.g. ["Blue", "500"]
	Type        string         // Token type or "-"
	Class       classify.Class // Output partition
	Value       string         // Transformed value
	Reference   string         // CSS variable the token aliases, if any
	Description string
	IsColor     bool // Whether Value is a parseable color
}

// ComputeRows transforms built tokens into display rows. Tokens without
// a name are left out.
func ComputeRows(tokens []*token.Token, classifier *classify.Classifier) []Row {
	if classifier == nil {
		classifier = classify.New()
	}

	names := make(map[string]string, len(tokens))
	for _, tok := range tokens {
		names[tok.DotPath()] = tok.CSSVariableName()
	}

	rows := make([]Row, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Name == "" {
			continue
		}
		row := Row{
			Name:        tok.CSSVariableName(),
			Path:        tok.Path,
			Type:        tok.Type,
			Class:       classifier.Classify(tok.Path),
			Value:       tok.Value,
			Description: tok.Description,
		}
		if row.Type == "" {
			row.Type = "-"
		}
		if tok.AliasOf != "" {
			row.Reference = names[tok.AliasOf]
		}
		if tok.Kind == token.KindColor {
			_, row.IsColor = parseColor(tok.Value)
		}
		rows = append(rows, row)
	}
	return rows
}

// ColumnWidths calculates the max width needed for each column.
func ColumnWidths(rows []Row) (name, class, val int) {
	name, class, val = 4, 5, 5 // minimums for headers
	for _, r := range rows {
		name = max(name, len(r.Name))
		class = max(class, len(r.Class.String()))
		val = max(val, len(r.Value))
	}
	return
}

// parseColor reads the oklch() values the build emits as well as any
// CSS color the export may carry through untransformed.
func parseColor(value string) (colorful.Color, bool) {
	var l, c, h float64
	if _, err := fmt.Sscanf(value, "oklch(%g %g %g", &l, &c, &h); err == nil {
		return colorful.OkLch(l, c, h).Clamped(), true
	}
	parsed, err := csscolorparser.Parse(value)
	if err != nil {
		return colorful.Color{}, false
	}
	return colorful.Color{R: parsed.R, G: parsed.G, B: parsed.B}, true
}

// ColorSwatch returns a 24-bit ANSI color block for the given color value.
func ColorSwatch(value string) string {
	c, ok := parseColor(value)
	if !ok {
		return ""
	}
	r, g, b := c.RGB255()
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m ", r, g, b)
}

// Hex returns the sRGB hex form of a color value, or "" when value is
// not a color.
func Hex(value string) string {
	c, ok := parseColor(value)
	if !ok {
		return ""
	}
	return c.Hex()
}

// Table renders rows as an aligned table. Swatches are ANSI escapes and
// belong on terminals only.
func Table(w io.Writer, rows []Row, swatches bool) error {
	if len(rows) == 0 {
		return nil
	}
	nameW, classW, _ := ColumnWidths(rows)
	for _, r := range rows {
		swatch := ""
		if swatches && r.IsColor {
			swatch = ColorSwatch(r.Value)
		}
		ref := ""
		if r.Reference != "" {
			ref = " → " + r.Reference
		}
		if _, err := fmt.Fprintf(w, "%-*s  %-*s  %s%s%s\n", nameW, r.Name, classW, r.Class, swatch, r.Value, ref); err != nil {
			return err
		}
	}
	return nil
}

// Markdown renders rows as markdown tables grouped by class, in order of
// first occurrence.
func Markdown(w io.Writer, rows []Row) error {
	order := make([]classify.Class, 0, 3)
	byClass := make(map[classify.Class][]Row)
	for _, r := range rows {
		if _, exists := byClass[r.Class]; !exists {
			order = append(order, r.Class)
		}
		byClass[r.Class] = append(byClass[r.Class], r)
	}

	var sb strings.Builder
	for i, class := range order {
		if i > 0 {
			sb.WriteString("\n")
		}
		title := toTitleCase(class.String())
		fmt.Fprintf(&sb, "## %s {#%s}\n\n", title, slugify(title))
		markdownTable(&sb, byClass[class])
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func markdownTable(sb *strings.Builder, group []Row) {
	nameW, valW, refW := 4, 5, 9 // "Reference"
	hasRefs := false
	for _, r := range group {
		nameW = max(nameW, len(r.Name))
		valW = max(valW, len(r.Value))
		if r.Reference != "" {
			hasRefs = true
			refW = max(refW, len(r.Reference))
		}
	}

	if hasRefs {
		fmt.Fprintf(sb, "| %-*s | %-*s | %-*s |\n", nameW, "Name", valW, "Value", refW, "Reference")
		fmt.Fprintf(sb, "|-%s-|-%s-|-%s-|\n", strings.Repeat("-", nameW), strings.Repeat("-", valW), strings.Repeat("-", refW))
		for _, r := range group {
			fmt.Fprintf(sb, "| %-*s | %-*s | %-*s |\n", nameW, r.Name, valW, r.Value, refW, r.Reference)
		}
		return
	}
	fmt.Fprintf(sb, "| %-*s | %-*s |\n", nameW, "Name", valW, "Value")
	fmt.Fprintf(sb, "|-%s-|-%s-|\n", strings.Repeat("-", nameW), strings.Repeat("-", valW))
	for _, r := range group {
		fmt.Fprintf(sb, "| %-*s | %-*s |\n", nameW, r.Name, valW, r.Value)
	}
}

// JSON renders rows as an indented JSON array.
func JSON(w io.Writer, rows []Row) error {
	type rowOutput struct {
		Name        string `json:"name"`
		Path        string `json:"path"`
		Type        string `json:"type,omitempty"`
		Class       string `json:"class"`
		Value       string `json:"value"`
		Hex         string `json:"hex,omitempty"`
		Reference   string `json:"reference,omitempty"`
		Description string `json:"description,omitempty"`
	}

	output := make([]rowOutput, 0, len(rows))
	for _, r := range rows {
		out := rowOutput{
			Name:        r.Name,
			Path:        strings.Join(r.Path, "."),
			Class:       r.Class.String(),
			Value:       r.Value,
			Reference:   r.Reference,
			Description: r.Description,
		}
		if r.Type != "-" {
			out.Type = r.Type
		}
		if r.IsColor {
			out.Hex = Hex(r.Value)
		}
		output = append(output, out)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// CSS renders rows as custom properties in one rule.
func CSS(w io.Writer, rows []Row, selector string) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s {\n", selector)
	for _, r := range rows {
		value := r.Value
		if r.Reference != "" {
			value = "var(" + r.Reference + ")"
		}
		fmt.Fprintf(&sb, "  %s: %s;\n", r.Name, value)
	}
	sb.WriteString("}\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// Names renders just the token names, one per line.
func Names(w io.Writer, rows []Row) error {
	for _, r := range rows {
		if _, err := fmt.Fprintln(w, r.Name); err != nil {
			return err
		}
	}
	return nil
}

// Write renders rows in the named format.
func Write(w io.Writer, rows []Row, format string, swatches bool) error {
	switch format {
	case "table", "":
		return Table(w, rows, swatches)
	case "json":
		return JSON(w, rows)
	case "markdown", "md":
		return Markdown(w, rows)
	case "css":
		return CSS(w, rows, ":root")
	case "names":
		return Names(w, rows)
	}
	return fmt.Errorf("unknown format %q", format)
}

// IsTerminal reports whether f is a character device.
func IsTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// slugify converts a name to a URL-safe anchor ID.
// e.g., "Color Brand" -> "color-brand"
func slugify(name string) string {
	var result strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			result.WriteRune(r)
		} else if r == ' ' || r == '-' || r == '_' || r == '.' {
			result.WriteRune('-')
		}
	}
	s := result.String()
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}

// toTitleCase converts a string to Title Case.
func toTitleCase(s string) string {
	return cases.Title(language.English).String(s)
}
