/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package transform

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"

	"bennypowers.dev/tincture/token"
)

// achromaticEpsilon is the OKLab a/b magnitude below which hue is
// undefined and printed as 0.
const achromaticEpsilon = 0.0002

// OKLCh converts color tokens to CSS oklch() notation.
type OKLCh struct{}

// Name implements Transform.
func (OKLCh) Name() string { return "color/oklch" }

// Apply implements Transform. A value that cannot be parsed as a color
// is left unchanged and reported.
func (OKLCh) Apply(tok *token.Token) error {
	if tok.IsComposite() {
		return ErrPassThrough
	}
	switch tok.Kind {
	case token.KindColor:
		out, err := ToOKLCh(tok.Value)
		if err != nil {
			return err
		}
		tok.Value = out
		return nil
	case token.KindNumber, token.KindOther:
		return ErrPassThrough
	}
	return ErrPassThrough
}

// ToOKLCh converts any CSS color string to oklch(L C H) or, when the
// color is translucent, oklch(L C H / A). Lightness and chroma carry
// 4 decimals, hue 1 and alpha 2.
func ToOKLCh(value string) (string, error) {
	parsed, err := csscolorparser.Parse(value)
	if err != nil {
		return "", fmt.Errorf("unparseable color: %w", err)
	}

	l, a, b := okLab(colorful.Color{R: parsed.R, G: parsed.G, B: parsed.B})
	chroma := math.Hypot(a, b)
	hue := 0.0
	if math.Abs(a) >= achromaticEpsilon || math.Abs(b) >= achromaticEpsilon {
		hue = math.Mod(math.Atan2(b, a)*180/math.Pi+360, 360)
	}

	out := fmt.Sprintf("%s %s %s",
		formatNumber(round(l, 4)),
		formatNumber(round(chroma, 4)),
		formatNumber(round(hue, 1)),
	)
	if parsed.A < 1 {
		out += " / " + formatNumber(round(parsed.A, 2))
	}
	return "oklch(" + out + ")", nil
}

// Linear sRGB to XYZ (D65), XYZ to LMS, and cube-rooted LMS to OKLab.
var (
	linearSRGBToXYZ = [3][3]float64{
		{0.41239079926595934, 0.357584339383878, 0.1804807884018343},
		{0.21263900587151027, 0.715168678767756, 0.07219231536073371},
		{0.01933081871559182, 0.11919477979462598, 0.9505321522496607},
	}
	xyzToLMS = [3][3]float64{
		{0.8190224379967030, 0.3619062600528904, -0.1288737815209879},
		{0.0329836539323885, 0.9292868615863434, 0.0361446663506424},
		{0.0481771893596242, 0.2642395317527308, 0.6335478284694309},
	}
	lmsToOKLab = [3][3]float64{
		{0.2104542683093140, 0.7936177747023054, -0.0040720430116193},
		{1.9779985324311684, -2.4285922420485799, 0.4505937096174110},
		{0.0259040424655478, 0.7827717124575296, -0.8086757549230774},
	}
)

// okLab converts c to OKLab through XYZ. go-colorful's OkLab uses
// rounded matrices whose error shows up in the fourth decimal of chroma.
func okLab(c colorful.Color) (l, a, b float64) {
	r, g, bl := c.LinearRgb()
	lms := mulVec(xyzToLMS, mulVec(linearSRGBToXYZ, [3]float64{r, g, bl}))
	for i := range lms {
		lms[i] = math.Cbrt(lms[i])
	}
	lab := mulVec(lmsToOKLab, lms)
	return lab[0], lab[1], lab[2]
}

func mulVec(m [3][3]float64, v [3]float64) [3]float64 {
	var out [3]float64
	for i, row := range m {
		out[i] = row[0]*v[0] + row[1]*v[1] + row[2]*v[2]
	}
	return out
}
