// Package amount turns monetary strings from trial-balance exports into
// decimals. Exports mix "1.234,56" and "1,234.56", wrap negatives in
// parentheses and carry currency symbols; all of that is handled here.
package amount

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Epsilon is the magnitude at or below which an amount counts as absent.
var Epsilon = decimal.New(1, -3)

// ErrMalformed is returned by Parse when a non-blank value holds no number.
var ErrMalformed = errors.New("malformed amount")

// Parse normalizes raw and parses it. Blank input is zero with no error.
// Non-blank input that does not reduce to a number returns ErrMalformed.
func Parse(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, nil
	}

	neg := false
	if len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		neg = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	cleaned, minus := strip(s)
	if minus {
		neg = true
	}

	num := normalizeSeparators(cleaned)
	if num == "" {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformed, raw)
	}

	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q: %v", ErrMalformed, raw, err)
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// ParseAmount is Parse with malformed input read as zero.
func ParseAmount(raw string) decimal.Decimal {
	d, err := Parse(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// IsSignificant reports whether raw parses to a magnitude above Epsilon.
func IsSignificant(raw string) bool {
	return Significant(ParseAmount(raw))
}

// Significant reports whether |d| > Epsilon.
func Significant(d decimal.Decimal) bool {
	return d.Abs().GreaterThan(Epsilon)
}

// strip keeps digits and separators. A '-' before the first digit marks the
// value negative; separators before the first digit survive only when a
// digit follows directly (".5"), so "Bs. 100" loses its dot.
func strip(s string) (string, bool) {
	var b strings.Builder
	minus := false
	seenDigit := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isDigit(c):
			seenDigit = true
			b.WriteByte(c)
		case c == '.' || c == ',':
			if seenDigit || (i+1 < len(s) && isDigit(s[i+1])) {
				b.WriteByte(c)
			}
		case c == '-' && !seenDigit:
			minus = true
		}
	}
	return b.String(), minus
}

// normalizeSeparators picks at most one decimal separator, drops the rest
// and returns a string decimal.NewFromString accepts, or "" if no digits.
func normalizeSeparators(s string) string {
	lastDot := strings.LastIndexByte(s, '.')
	lastComma := strings.LastIndexByte(s, ',')

	decimalAt := -1
	switch {
	case lastDot >= 0 && lastComma >= 0:
		decimalAt = max(lastDot, lastComma)
	case lastComma >= 0:
		if strings.Count(s, ",") == 1 && len(s)-lastComma-1 <= 3 {
			decimalAt = lastComma
		}
	case lastDot >= 0:
		// Repeated dots can only be grouping: 1.234.567
		if strings.Count(s, ".") == 1 {
			decimalAt = lastDot
		}
	}

	var b strings.Builder
	hasDigit := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '.' || c == ',' {
			if i == decimalAt {
				b.WriteByte('.')
			}
			continue
		}
		hasDigit = true
		b.WriteByte(c)
	}
	if !hasDigit {
		return ""
	}

	out := strings.TrimSuffix(b.String(), ".")
	if strings.HasPrefix(out, ".") {
		out = "0" + out
	}
	return out
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
