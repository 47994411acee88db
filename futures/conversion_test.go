package futures_test

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/meenmo/fimatrix/futures"
	"github.com/meenmo/fimatrix/quote"
)

func TestConversionFactor_CMEPublished(t *testing.T) {
	t.Parallel()

	ttm := func(years, months, days float64) float64 {
		return years + months/12 + days/365
	}

	cases := []struct {
		name     string
		contract futures.Contract
		coupon   float64
		ttm      float64
		want     float64
	}{
		{"2 year", futures.TwoYear, 0.75 / 100, ttm(1, 11, 29), 0.906258},
		{"3 year", futures.ThreeYear, 1.125 / 100, ttm(3, 0, 14), 0.867956},
		{"5 year", futures.FiveYear, 2.125 / 100, ttm(4, 11, 29), 0.837079},
		{"10 year", futures.TenYear, 3.375 / 100, ttm(9, 5, 14), 0.815653},
		{"classic bond", futures.Bond, 6.375 / 100, ttm(20, 11, 13), 1.044053},
		{"ultra bond", futures.UltraBond, 4.375 / 100, ttm(29, 11, 14), 0.775740},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := futures.ConversionFactor(tc.contract, tc.coupon, tc.ttm)
			if err != nil {
				t.Fatalf("ConversionFactor error: %v", err)
			}
			if math.Abs(got-tc.want) > 5e-7 {
				t.Fatalf("got %.7f want %.6f", got, tc.want)
			}
		})
	}
}

func TestConversionFactor_Errors(t *testing.T) {
	t.Parallel()

	if _, err := futures.ConversionFactor("?", 0.04375, 1.5); !errors.Is(err, futures.ErrUnsupportedContract) {
		t.Fatalf("got %v want ErrUnsupportedContract", err)
	}
	if _, err := futures.ConversionFactor(futures.TenYear, 0.04, -1); err == nil {
		t.Fatalf("expected error for negative time to maturity")
	}
}

func TestDecimalQuote(t *testing.T) {
	t.Parallel()

	got, err := futures.DecimalQuote("ZNZ5", "112'165")
	if err != nil {
		t.Fatalf("DecimalQuote error: %v", err)
	}
	if want := decimal.RequireFromString("112.515625"); !got.Equal(want) {
		t.Fatalf("got %s want %s", got, want)
	}

	got, err = futures.DecimalQuote("SR3Z5", "96.1250")
	if err != nil {
		t.Fatalf("DecimalQuote error: %v", err)
	}
	if want := decimal.RequireFromString("96.125"); !got.Equal(want) {
		t.Fatalf("got %s want %s", got, want)
	}

	if _, err := futures.DecimalQuote("zb", "118'32"); !errors.Is(err, quote.ErrInvalidTick) {
		t.Fatalf("got %v want ErrInvalidTick", err)
	}
	if _, err := futures.DecimalQuote("SR3Z5", "n/a"); err == nil {
		t.Fatalf("expected parse error for non-numeric quote")
	}
}

func TestIsTickQuoted(t *testing.T) {
	t.Parallel()

	for code, want := range map[string]bool{
		"ZT": true, "ZFH6": true, "ZN": true, "TN": true, "UB": true, "zb": true,
		"SR3": false, "GE": false, "": false,
	} {
		if got := futures.IsTickQuoted(code); got != want {
			t.Fatalf("IsTickQuoted(%q): got %v want %v", code, got, want)
		}
	}
}
