/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/tidwall/jsonc"

	"bennypowers.dev/tincture/fs"
	"bennypowers.dev/tincture/token"
)

// ErrNotObject indicates the document root is not a JSON object.
var ErrNotObject = errors.New("token document root must be an object")

// JSONParser parses Tokens Studio exports. Both the Tokens Studio
// ("value"/"type") and DTCG ("$value"/"$type") spellings are accepted.
type JSONParser struct{}

var _ Parser = (*JSONParser)(nil)

// NewJSONParser creates a new token parser.
func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

// Normalize returns data as plain JSON. Comments and trailing commas are
// stripped from JSON input; YAML input is converted to JSON with key order
// preserved.
func Normalize(data []byte) ([]byte, error) {
	if !isLikelyJSON(data) {
		return yamlToJSON(data)
	}
	clean := jsonc.ToJSON(data)
	if err := json.Unmarshal(clean, new(json.RawMessage)); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return clean, nil
}

// Branch returns the raw JSON of the top-level key in a normalized
// document. The boolean is false when the key is absent.
func Branch(data []byte, key string) ([]byte, bool, error) {
	value, dataType, _, err := jsonparser.Get(data, key)
	if errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	if dataType != jsonparser.Object {
		return nil, false, fmt.Errorf("%q: %w, got %s", key, ErrNotObject, dataType)
	}
	return value, true, nil
}

// Parse parses JSON or YAML token data and returns tokens in document order.
func (p *JSONParser) Parse(data []byte, opts Options) ([]*token.Token, error) {
	positions := isLikelyJSON(data)
	clean, err := Normalize(data)
	if err != nil {
		return nil, err
	}
	if first := firstByte(clean); first != '{' {
		return nil, ErrNotObject
	}

	w := &walker{result: []*token.Token{}}
	if positions {
		w.lines = newLineIndex(clean)
	}

	if !opts.ExcludeParentKeys {
		if err := w.walk(clean, 0, nil, "", ""); err != nil {
			return nil, err
		}
		return w.result, nil
	}

	err = jsonparser.ObjectEach(clean, func(key, value []byte, dataType jsonparser.ValueType, end int) error {
		source := string(key)
		if strings.HasPrefix(source, "$") || dataType != jsonparser.Object {
			return nil
		}
		return w.walk(value, end-len(value), nil, "", source)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk token document: %w", err)
	}
	return w.result, nil
}

// ParseFile parses a token file and returns tokens in document order.
func (p *JSONParser) ParseFile(filesystem fs.FileSystem, path string, opts Options) ([]*token.Token, error) {
	data, err := filesystem.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	tokens, err := p.Parse(data, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", path, err)
	}
	return tokens, nil
}

type walker struct {
	lines  lineIndex
	result []*token.Token
}

// walk extracts tokens from the object in data. base is the offset of
// data within the whole document; inheritedType is the nearest group type.
func (w *walker) walk(data []byte, base int, path []string, inheritedType, source string) error {
	groupType := inheritedType
	if typ, ok := stringField(data, "$type", "type"); ok {
		groupType = typ
	}

	return jsonparser.ObjectEach(data, func(key, value []byte, dataType jsonparser.ValueType, end int) error {
		name := string(key)
		if strings.HasPrefix(name, "$") || dataType != jsonparser.Object {
			return nil
		}

		start := base + end - len(value)
		childPath := slices.Clip(append(slices.Clip(path), name))

		if !isLeaf(value) {
			return w.walk(value, start, childPath, groupType, source)
		}

		t, err := createToken(value, childPath, groupType, source)
		if err != nil {
			return fmt.Errorf("%s: %w", strings.Join(childPath, "."), err)
		}
		if w.lines != nil {
			t.Line, t.Character = w.lines.position(start)
		}
		w.result = append(w.result, t)
		return nil
	})
}

// isLeaf reports whether the object is a token definition.
func isLeaf(obj []byte) bool {
	for _, key := range []string{"$value", "value"} {
		if _, _, _, err := jsonparser.Get(obj, key); err == nil {
			return true
		}
	}
	return false
}

func createToken(obj []byte, path []string, inheritedType, source string) (*token.Token, error) {
	raw, err := leafValue(obj)
	if err != nil {
		return nil, err
	}

	t := &token.Token{
		Path:     path,
		Source:   source,
		RawValue: raw,
		Type:     inheritedType,
	}
	if typ, ok := stringField(obj, "$type", "type"); ok {
		t.Type = typ
	}
	t.Kind = token.ParseKind(t.Type)
	if desc, ok := stringField(obj, "$description", "description"); ok {
		t.Description = desc
	}
	return t, nil
}

// leafValue decodes the token value into a Go value.
func leafValue(obj []byte) (any, error) {
	for _, key := range []string{"$value", "value"} {
		value, dataType, _, err := jsonparser.Get(obj, key)
		if err != nil {
			continue
		}
		switch dataType {
		case jsonparser.String:
			return jsonparser.ParseString(value)
		case jsonparser.Number:
			return jsonparser.ParseFloat(value)
		case jsonparser.Boolean:
			return jsonparser.ParseBoolean(value)
		case jsonparser.Null:
			return nil, nil
		default:
			var composite any
			if err := json.Unmarshal(value, &composite); err != nil {
				return nil, fmt.Errorf("invalid %s value: %w", key, err)
			}
			return composite, nil
		}
	}
	return nil, fmt.Errorf("token has no value")
}

// stringField returns the first of keys present in obj as a string.
func stringField(obj []byte, keys ...string) (string, bool) {
	for _, key := range keys {
		if s, err := jsonparser.GetString(obj, key); err == nil {
			return s, true
		}
	}
	return "", false
}

// isLikelyJSON checks if data appears to be JSON rather than YAML.
// JSON typically starts with '{' (optionally preceded by whitespace/BOM).
func isLikelyJSON(data []byte) bool {
	return firstByte(data) == '{'
}

func firstByte(data []byte) byte {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case 0xEF, 0xBB, 0xBF: // UTF-8 BOM
			continue
		default:
			return b
		}
	}
	return 0
}

// lineIndex holds the byte offset at which each line starts.
type lineIndex []int

func newLineIndex(data []byte) lineIndex {
	idx := lineIndex{0}
	for i, b := range data {
		if b == '\n' {
			idx = append(idx, i+1)
		}
	}
	return idx
}

// position converts a byte offset into a 0-based line and character.
func (li lineIndex) position(offset int) (uint32, uint32) {
	line := sort.Search(len(li), func(i int) bool { return li[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	char := offset - li[line]
	if line > math.MaxUint32 || char < 0 || char > math.MaxUint32 {
		return 0, 0
	}
	return uint32(line), uint32(char)
}
