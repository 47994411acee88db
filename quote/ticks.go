// Package quote decodes Treasury price quotes written in 32nds.
//
// A quote has the form handle'ticks[frac]: handle is whole points, ticks is
// exactly two digits in [00,31] and the optional frac code adds a quarter
// (2), half (5 or +) or three quarters (7) of a 32nd. "99'16+" and "99'165"
// both mean 99 + 16.5/32.
package quote

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	separator      = "'"
	ticksPerPoint  = 32
	quartersPerPt  = ticksPerPoint * 4
	maxTickDigits  = 2
	maxTokenSuffix = maxTickDigits + 1
)

var (
	// ErrMalformedPrice: missing separator or a non-numeric handle.
	ErrMalformedPrice = errors.New("malformed price quote")
	// ErrInvalidTick: ticks missing, non-numeric or outside [0,31].
	ErrInvalidTick = errors.New("invalid tick value")
	// ErrInvalidFraction: trailing code is not one of 0, 2, 5, 7 (or +).
	ErrInvalidFraction = errors.New("invalid fractional tick code")
	// ErrOffGrid: a price that is not a whole number of quarter 32nds.
	ErrOffGrid = errors.New("price is not a multiple of 1/128")
)

var (
	quarterTick = decimal.New(1, 0).Div(decimal.NewFromInt(quartersPerPt))
	tickWidth   = decimal.NewFromInt(quartersPerPt)
)

// fractionQuarters maps a fraction code to quarters of a 32nd.
func fractionQuarters(code byte) (int64, bool) {
	switch code {
	case '0':
		return 0, true
	case '2':
		return 1, true
	case '5', '+':
		return 2, true
	case '7':
		return 3, true
	default:
		return 0, false
	}
}

// fractionCode is the inverse of fractionQuarters over the digit codes.
var fractionCode = [4]byte{'0', '2', '5', '7'}

// ParseTicks converts a 32nds quote into its decimal price per 100 par.
// The token must be exact; surrounding whitespace is rejected.
func ParseTicks(token string) (decimal.Decimal, error) {
	handlePart, tickPart, ok := strings.Cut(token, separator)
	if !ok || strings.Contains(tickPart, separator) {
		return decimal.Decimal{}, fmt.Errorf("ParseTicks %q: missing %s separator: %w", token, separator, ErrMalformedPrice)
	}
	handle, ok := parseDigits(handlePart)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("ParseTicks %q: handle %q: %w", token, handlePart, ErrMalformedPrice)
	}
	if len(tickPart) > maxTokenSuffix {
		return decimal.Decimal{}, fmt.Errorf("ParseTicks %q: %d characters after separator: %w", token, len(tickPart), ErrMalformedPrice)
	}

	if len(tickPart) < maxTickDigits {
		return decimal.Decimal{}, fmt.Errorf("ParseTicks %q: want two tick digits: %w", token, ErrInvalidTick)
	}
	ticks, ok := parseDigits(tickPart[:maxTickDigits])
	if !ok || ticks >= ticksPerPoint {
		return decimal.Decimal{}, fmt.Errorf("ParseTicks %q: ticks %q: %w", token, tickPart[:maxTickDigits], ErrInvalidTick)
	}

	var quarters int64
	if len(tickPart) == maxTokenSuffix {
		quarters, ok = fractionQuarters(tickPart[maxTickDigits])
		if !ok {
			return decimal.Decimal{}, fmt.Errorf("ParseTicks %q: code %q: %w", token, tickPart[maxTickDigits], ErrInvalidFraction)
		}
	}

	frac := decimal.NewFromInt(ticks*4 + quarters).Mul(quarterTick)
	return decimal.NewFromInt(handle).Add(frac), nil
}

// FormatTicks renders a price in the digit form accepted by ParseTicks.
// Whole-tick prices use two tick digits; fractional ticks add the code.
func FormatTicks(price decimal.Decimal) (string, error) {
	if price.IsNegative() {
		return "", fmt.Errorf("FormatTicks %s: negative price: %w", price, ErrMalformedPrice)
	}
	scaled := price.Mul(tickWidth)
	if !scaled.Equal(scaled.Truncate(0)) {
		return "", fmt.Errorf("FormatTicks %s: %w", price, ErrOffGrid)
	}

	total := scaled.IntPart()
	handle := total / quartersPerPt
	rem := total % quartersPerPt
	ticks, quarters := rem/4, rem%4

	if quarters == 0 {
		return fmt.Sprintf("%d%s%02d", handle, separator, ticks), nil
	}
	return fmt.Sprintf("%d%s%02d%c", handle, separator, ticks, fractionCode[quarters]), nil
}

// ParseTicksAll parses tokens in order and stops at the first bad one.
func ParseTicksAll(tokens []string) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, 0, len(tokens))
	for i, tok := range tokens {
		p, err := ParseTicks(tok)
		if err != nil {
			return nil, fmt.Errorf("ParseTicksAll: token %d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// TickResult is the per-token outcome of ParseTicksPartial.
type TickResult struct {
	Token string
	Price decimal.Decimal
	Err   error
}

// ParseTicksPartial parses every token, keeping failures alongside successes.
func ParseTicksPartial(tokens []string) []TickResult {
	out := make([]TickResult, len(tokens))
	for i, tok := range tokens {
		p, err := ParseTicks(tok)
		out[i] = TickResult{Token: tok, Price: p, Err: err}
	}
	return out
}

// parseDigits accepts only ASCII digits; strconv alone would let signs through.
func parseDigits(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
