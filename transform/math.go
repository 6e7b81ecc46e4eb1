/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package transform

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"bennypowers.dev/tincture/token"
)

// ErrDivisionByZero is returned when an expression divides by zero.
var ErrDivisionByZero = errors.New("division by zero")

// Math evaluates arithmetic expressions left behind by reference
// resolution, such as "4 * 4" or "(8px + 2px) / 2".
type Math struct{}

// Name implements Transform.
func (Math) Name() string { return "math/resolve" }

// Apply implements Transform.
func (Math) Apply(tok *token.Token) error {
	if tok.IsComposite() {
		return ErrPassThrough
	}
	switch tok.Kind {
	case token.KindColor:
		return ErrPassThrough
	case token.KindNumber, token.KindOther:
		result, err := EvalExpression(tok.Value)
		if err != nil {
			return err
		}
		tok.Value = result
		return nil
	}
	return ErrPassThrough
}

// EvalExpression evaluates expr when it is an arithmetic expression over
// numbers with at most one unit shared by every operand, e.g. "2rem * 3"
// gives "6rem". Strings that are not expressions return ErrPassThrough.
// Results are rounded to 4 decimal places.
func EvalExpression(expr string) (string, error) {
	toks, ok := lex(expr)
	if !ok || !hasOperator(toks) {
		return "", ErrPassThrough
	}

	p := &exprParser{toks: toks}
	v, err := p.expr()
	if err != nil {
		return "", err
	}
	if p.pos != len(p.toks) {
		return "", ErrPassThrough
	}
	return formatNumber(round(v, 4)) + p.unit, nil
}

type exprTokenKind int

const (
	exprNumber exprTokenKind = iota
	exprOperator
	exprOpen
	exprClose
)

type exprToken struct {
	kind exprTokenKind
	num  float64
	unit string
	op   byte
}

func lex(s string) ([]exprToken, bool) {
	var toks []exprToken
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n':
			i++
		case c == '(':
			toks = append(toks, exprToken{kind: exprOpen})
			i++
		case c == ')':
			toks = append(toks, exprToken{kind: exprClose})
			i++
		case c == '+' || c == '-' || c == '*' || c == '/':
			toks = append(toks, exprToken{kind: exprOperator, op: c})
			i++
		case c == '.' || (c >= '0' && c <= '9'):
			start := i
			for i < len(s) && (s[i] == '.' || (s[i] >= '0' && s[i] <= '9')) {
				i++
			}
			n, err := strconv.ParseFloat(s[start:i], 64)
			if err != nil {
				return nil, false
			}
			unitStart := i
			for i < len(s) && (s[i] == '%' || unicode.IsLetter(rune(s[i]))) {
				i++
			}
			toks = append(toks, exprToken{kind: exprNumber, num: n, unit: strings.ToLower(s[unitStart:i])})
		default:
			return nil, false
		}
	}
	return toks, len(toks) > 0
}

// hasOperator reports whether toks contain a binary operator, so a bare
// number such as "-4" or "12px" is left alone.
func hasOperator(toks []exprToken) bool {
	for i, t := range toks {
		if t.kind != exprOperator || i == 0 {
			continue
		}
		if prev := toks[i-1]; prev.kind == exprNumber || prev.kind == exprClose {
			return true
		}
	}
	return false
}

type exprParser struct {
	toks []exprToken
	pos  int
	unit string
}

func (p *exprParser) peek() (exprToken, bool) {
	if p.pos >= len(p.toks) {
		return exprToken{}, false
	}
	return p.toks[p.pos], true
}

// expr := term (('+'|'-') term)*
func (p *exprParser) expr() (float64, error) {
	left, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != exprOperator || (t.op != '+' && t.op != '-') {
			return left, nil
		}
		p.pos++
		right, err := p.term()
		if err != nil {
			return 0, err
		}
		if t.op == '+' {
			left += right
		} else {
			left -= right
		}
	}
}

// term := unary (('*'|'/') unary)*
func (p *exprParser) term() (float64, error) {
	left, err := p.unary()
	if err != nil {
		return 0, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != exprOperator || (t.op != '*' && t.op != '/') {
			return left, nil
		}
		p.pos++
		right, err := p.unary()
		if err != nil {
			return 0, err
		}
		if t.op == '*' {
			left *= right
			continue
		}
		if right == 0 {
			return 0, ErrDivisionByZero
		}
		left /= right
	}
}

// unary := '-' unary | primary
func (p *exprParser) unary() (float64, error) {
	if t, ok := p.peek(); ok && t.kind == exprOperator && t.op == '-' {
		p.pos++
		v, err := p.unary()
		return -v, err
	}
	return p.primary()
}

// primary := number | '(' expr ')'
func (p *exprParser) primary() (float64, error) {
	t, ok := p.peek()
	if !ok {
		return 0, ErrPassThrough
	}
	p.pos++
	switch t.kind {
	case exprNumber:
		if t.unit != "" {
			if p.unit != "" && p.unit != t.unit {
				return 0, fmt.Errorf("mixed units %s and %s", p.unit, t.unit)
			}
			p.unit = t.unit
		}
		return t.num, nil
	case exprOpen:
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		if t, ok := p.peek(); !ok || t.kind != exprClose {
			return 0, ErrPassThrough
		}
		p.pos++
		return v, nil
	case exprOperator, exprClose:
		return 0, ErrPassThrough
	}
	return 0, ErrPassThrough
}

func round(v float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(v*scale) / scale
}

// formatNumber prints v in its shortest form, without a negative zero.
func formatNumber(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
