// Package futures holds CBOT Treasury futures helpers: delivery conversion
// factors and Globex quote decoding.
package futures

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/meenmo/fimatrix/quote"
)

// Contract is a CBOT Treasury futures product code.
type Contract string

const (
	TwoYear   Contract = "TU"
	ThreeYear Contract = "3YR"
	FiveYear  Contract = "FV"
	TenYear   Contract = "TY"
	Bond      Contract = "US"
	UltraBond Contract = "UB"
)

// ErrUnsupportedContract is returned for a contract without a conversion rule.
var ErrUnsupportedContract = errors.New("unsupported futures contract")

const (
	// notionalYield is the 6% semiannual-compounded yield the exchange
	// uses to normalise deliverable bonds.
	notionalYield  = 0.06
	halfYearGrowth = 1 + notionalYield/2
)

// ConversionFactor returns the delivery conversion factor of a bond with the
// given coupon (decimal, 0.0225 for 2.25%) and time to maturity in years.
//
// Ten-year, bond and ultra-bond contracts round the remaining time down to
// whole quarters; the shorter contracts round down to whole months.
func ConversionFactor(contract Contract, coupon, timeToMaturity float64) (float64, error) {
	if timeToMaturity < 0 {
		return 0, fmt.Errorf("ConversionFactor: negative time to maturity %g", timeToMaturity)
	}

	years := math.Floor(timeToMaturity)
	yearFraction := timeToMaturity - years

	var months, v float64
	switch contract {
	case TenYear, Bond, UltraBond:
		months = math.Floor(yearFraction*4) * 3
		v = months
		if months >= 7 {
			v = 3
		}
	case TwoYear, ThreeYear, FiveYear:
		months = math.Floor(yearFraction * 12)
		v = months
		if months >= 7 {
			v = months - 6
		}
	default:
		return 0, fmt.Errorf("ConversionFactor: %q: %w", contract, ErrUnsupportedContract)
	}

	periods := 2 * years
	if months >= 7 {
		periods++
	}

	a := 1 / math.Pow(halfYearGrowth, v/6)
	b := (coupon / 2) * (6 - v) / 6
	c := 1 / math.Pow(halfYearGrowth, periods)
	d := (coupon / notionalYield) * (1 - c)

	return a*(coupon/2+c+d) - b, nil
}

// tickQuotedRoots are the Globex roots whose prices are published in 32nds.
var tickQuotedRoots = [...]string{"ZT", "ZF", "ZN", "TN", "UB", "ZB"}

// IsTickQuoted reports whether a Globex code (e.g. "ZNZ5") is quoted in 32nds.
func IsTickQuoted(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, root := range tickQuotedRoots {
		if strings.Contains(code, root) {
			return true
		}
	}
	return false
}

// DecimalQuote converts a raw Globex price for code into a decimal price.
func DecimalQuote(code, raw string) (decimal.Decimal, error) {
	if IsTickQuoted(code) {
		p, err := quote.ParseTicks(raw)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("DecimalQuote %s: %w", code, err)
		}
		return p, nil
	}
	p, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("DecimalQuote %s: %w", code, err)
	}
	return p, nil
}
