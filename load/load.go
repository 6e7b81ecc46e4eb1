/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package load reads a Tokens Studio export and splits it into the
// token sets the build consumes.
package load

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bennypowers.dev/tincture/fs"
	"bennypowers.dev/tincture/parser"
	"bennypowers.dev/tincture/token"
)

var (
	// ErrMissingSet indicates a required set is absent from the export.
	ErrMissingSet = errors.New("missing token set")

	// ErrDuplicateToken indicates two tokens share a path within one set.
	ErrDuplicateToken = token.ErrDuplicateToken
)

const (
	// SetPrimitives is the export key of the shared primitive palette.
	SetPrimitives = "Primitives/Mode 1"

	// SetLight is the export key of the light theme semantics.
	SetLight = "Tokens/Light"

	// SetDark is the export key of the dark theme semantics.
	SetDark = "Tokens/Dark"
)

// DefaultSetNames returns the sets a build requires by default.
func DefaultSetNames() []string {
	return []string{SetPrimitives, SetLight, SetDark}
}

// Options configures how an export is loaded.
type Options struct {
	// FS is the filesystem to use. Defaults to OS filesystem if nil.
	FS fs.FileSystem

	// Required lists the set keys that must be present.
	// Defaults to DefaultSetNames when empty.
	Required []string

	// Fetcher enables http(s) inputs. Nil means only local files load.
	Fetcher Fetcher

	// FetchTimeout is the maximum time to wait for a network fetch.
	// Defaults to DefaultTimeout when zero.
	FetchTimeout time.Duration
}

// Sets holds every token set of an export, in document order.
type Sets struct {
	source string
	order  []string
	byName map[string]*token.Set
}

// Source returns the path or URL the export was read from.
func (s *Sets) Source() string {
	return s.source
}

// Names returns the set keys in document order.
func (s *Sets) Names() []string {
	return append([]string(nil), s.order...)
}

// Get retrieves a set by its export key.
func (s *Sets) Get(name string) (*token.Set, bool) {
	set, ok := s.byName[name]
	return set, ok
}

// Export reads the export at input, a file path or, when opts.Fetcher
// is set, an http(s) URL.
func Export(ctx context.Context, input string, opts Options) (*Sets, error) {
	var (
		data []byte
		err  error
	)
	if IsRemote(input) {
		if opts.Fetcher == nil {
			return nil, fmt.Errorf("cannot load %s: remote inputs are disabled", input)
		}
		timeout := opts.FetchTimeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		fetchCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		data, err = opts.Fetcher.Fetch(fetchCtx, input)
	} else {
		filesystem := opts.FS
		if filesystem == nil {
			filesystem = fs.NewOSFileSystem()
		}
		data, err = filesystem.ReadFile(input)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read export %s: %w", input, err)
	}

	sets, err := Parse(data, opts.Required)
	if err != nil {
		return nil, fmt.Errorf("failed to load export %s: %w", input, err)
	}
	sets.source = input
	return sets, nil
}

// Parse splits export data into sets. Each top-level object is a set;
// keys starting with "$" (such as $themes and $metadata) are skipped.
// Every name in required must be present.
func Parse(data []byte, required []string) (*Sets, error) {
	if len(required) == 0 {
		required = DefaultSetNames()
	}

	clean, err := parser.Normalize(data)
	if err != nil {
		return nil, err
	}

	tokens, err := parser.NewJSONParser().Parse(data, parser.Options{ExcludeParentKeys: true})
	if err != nil {
		return nil, err
	}

	sets := &Sets{byName: make(map[string]*token.Set)}
	bySource := make(map[string][]*token.Token)
	for _, tok := range tokens {
		if _, seen := bySource[tok.Source]; !seen {
			sets.order = append(sets.order, tok.Source)
		}
		bySource[tok.Source] = append(bySource[tok.Source], tok)
	}

	for _, name := range required {
		if _, ok := bySource[name]; ok {
			continue
		}
		// An empty object is still a set; only an absent key is an error.
		if _, ok, err := parser.Branch(clean, name); err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrMissingSet, name, err)
		} else if !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingSet, name)
		}
		sets.order = append(sets.order, name)
		bySource[name] = nil
	}

	for _, name := range sets.order {
		raw, _, err := parser.Branch(clean, name)
		if err != nil {
			return nil, err
		}
		set, err := token.NewSet(name, raw, bySource[name])
		if err != nil {
			return nil, err
		}
		sets.byName[name] = set
	}
	return sets, nil
}
