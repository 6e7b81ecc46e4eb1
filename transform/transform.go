/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package transform provides the name and value transforms applied to
// resolved tokens before CSS emission.
package transform

import (
	"errors"
	"fmt"

	"bennypowers.dev/tincture/internal/logger"
	"bennypowers.dev/tincture/token"
)

// ErrPassThrough is returned by a transform that leaves a token's value
// unchanged because it does not apply. It is not reported as an issue.
var ErrPassThrough = errors.New("value passed through")

// Transform rewrites one aspect of a resolved token in place.
type Transform interface {
	// Name identifies the transform, e.g. "color/oklch".
	Name() string

	// Apply transforms tok. A returned error other than ErrPassThrough
	// is recoverable: the token keeps the value it had before the call.
	Apply(tok *token.Token) error
}

// Issue records a recoverable per-token transform failure.
type Issue struct {
	Transform string
	Path      string
	Value     string
	Err       error
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s: %s %q: %v", i.Transform, i.Path, i.Value, i.Err)
}

func (i Issue) Unwrap() error {
	return i.Err
}

// Default returns the transforms in the order the build applies them.
// A non-empty prefix is prepended to every variable name.
func Default(prefix string) []Transform {
	return []Transform{
		&Kebab{Prefix: prefix},
		Math{},
		OKLCh{},
		PxOrZero{},
	}
}

// ApplyAll runs each transform over each token in order. Recoverable
// failures are logged as warnings and returned; they never stop the run.
func ApplyAll(tokens []*token.Token, transforms []Transform) []Issue {
	var issues []Issue
	for _, tok := range tokens {
		for _, tr := range transforms {
			before := tok.Value
			err := tr.Apply(tok)
			if err == nil || errors.Is(err, ErrPassThrough) {
				continue
			}
			tok.Value = before
			issue := Issue{
				Transform: tr.Name(),
				Path:      tok.DotPath(),
				Value:     before,
				Err:       err,
			}
			logger.Warn("%s", issue)
			issues = append(issues, issue)
		}
	}
	return issues
}
