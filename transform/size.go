/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package transform

import (
	"math"
	"strconv"
	"strings"

	"bennypowers.dev/tincture/token"
)

// PxOrZero gives unitless number tokens a px unit. Zero stays a bare 0.
type PxOrZero struct{}

// Name implements Transform.
func (PxOrZero) Name() string { return "size/px-or-zero" }

// Apply implements Transform. Values that already carry a unit pass
// through.
func (PxOrZero) Apply(tok *token.Token) error {
	if tok.IsComposite() {
		return ErrPassThrough
	}
	switch tok.Kind {
	case token.KindNumber:
		v, err := strconv.ParseFloat(strings.TrimSpace(tok.Value), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrPassThrough
		}
		if v == 0 {
			tok.Value = "0"
			return nil
		}
		tok.Value = formatNumber(v) + "px"
		return nil
	case token.KindColor, token.KindOther:
		return ErrPassThrough
	}
	return ErrPassThrough
}
