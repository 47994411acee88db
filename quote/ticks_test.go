package quote_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/meenmo/fimatrix/quote"
)

func TestParseTicks(t *testing.T) {
	t.Parallel()

	cases := []struct {
		token string
		want  string
	}{
		{"99'16", "99.5"},
		{"99'162", "99.5078125"},
		{"99'165", "99.515625"},
		{"99'16+", "99.515625"},
		{"99'167", "99.5234375"},
		{"100'31", "100.96875"},
		{"124'000", "124"},
		{"124'07", "124.21875"},
		{"124'250", "124.78125"},
		{"124'002", "124.0078125"},
		{"124'177", "124.5546875"},
		{"0'00", "0"},
	}

	for _, tc := range cases {
		got, err := quote.ParseTicks(tc.token)
		if err != nil {
			t.Fatalf("ParseTicks(%q) error: %v", tc.token, err)
		}
		if want := decimal.RequireFromString(tc.want); !got.Equal(want) {
			t.Fatalf("ParseTicks(%q): got %s want %s", tc.token, got, want)
		}
	}
}

func TestParseTicks_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		token string
		want  error
	}{
		{"100'32", quote.ErrInvalidTick},
		{"124'320", quote.ErrInvalidTick},
		{"99'1", quote.ErrInvalidTick},
		{"99'", quote.ErrInvalidTick},
		{"99'a5", quote.ErrInvalidTick},
		{"99'-1", quote.ErrInvalidTick},
		{"99'163", quote.ErrInvalidFraction},
		{"99'169", quote.ErrInvalidFraction},
		{"99'16x", quote.ErrInvalidFraction},
		{"99.5", quote.ErrMalformedPrice},
		{"", quote.ErrMalformedPrice},
		{"'16", quote.ErrMalformedPrice},
		{"-99'16", quote.ErrMalformedPrice},
		{"+99'16", quote.ErrMalformedPrice},
		{"9x'16", quote.ErrMalformedPrice},
		{"99'16'2", quote.ErrMalformedPrice},
		{"99'1625", quote.ErrMalformedPrice},
		{" 101'08", quote.ErrMalformedPrice},
		{"101'08 ", quote.ErrInvalidFraction},
		{"101' 08", quote.ErrInvalidTick},
	}

	for _, tc := range cases {
		_, err := quote.ParseTicks(tc.token)
		if !errors.Is(err, tc.want) {
			t.Fatalf("ParseTicks(%q): got %v want %v", tc.token, err, tc.want)
		}
	}
}

func TestFormatTicks_RoundTrip(t *testing.T) {
	t.Parallel()

	// Every quarter-32nd between 98 and 102.
	step := decimal.New(1, 0).Div(decimal.NewFromInt(128))
	price := decimal.NewFromInt(98)
	end := decimal.NewFromInt(102)
	tolerance := step

	for price.LessThanOrEqual(end) {
		token, err := quote.FormatTicks(price)
		if err != nil {
			t.Fatalf("FormatTicks(%s) error: %v", price, err)
		}
		back, err := quote.ParseTicks(token)
		if err != nil {
			t.Fatalf("ParseTicks(%q) error: %v", token, err)
		}
		if !back.Equal(price) || back.Sub(price).Abs().GreaterThanOrEqual(tolerance) {
			t.Fatalf("round trip %s -> %q -> %s", price, token, back)
		}
		price = price.Add(step)
	}
}

func TestFormatTicks(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"99.5":       "99'16",
		"99.5078125": "99'162",
		"99.515625":  "99'165",
		"99.5234375": "99'167",
		"100.96875":  "100'31",
		"7":          "7'00",
	}
	for in, want := range cases {
		got, err := quote.FormatTicks(decimal.RequireFromString(in))
		if err != nil {
			t.Fatalf("FormatTicks(%s) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("FormatTicks(%s): got %q want %q", in, got, want)
		}
	}

	if _, err := quote.FormatTicks(decimal.RequireFromString("99.001")); !errors.Is(err, quote.ErrOffGrid) {
		t.Fatalf("off-grid price: got %v want ErrOffGrid", err)
	}
	if _, err := quote.FormatTicks(decimal.RequireFromString("-1")); !errors.Is(err, quote.ErrMalformedPrice) {
		t.Fatalf("negative price: got %v want ErrMalformedPrice", err)
	}
}

func TestParseTicksAll_FailFast(t *testing.T) {
	t.Parallel()

	got, err := quote.ParseTicksAll([]string{"99'16", "100'00"})
	if err != nil {
		t.Fatalf("ParseTicksAll error: %v", err)
	}
	if len(got) != 2 || !got[1].Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected prices: %v", got)
	}

	got, err = quote.ParseTicksAll([]string{"99'16", "99'40", "99'163"})
	if !errors.Is(err, quote.ErrInvalidTick) {
		t.Fatalf("got %v want first failure ErrInvalidTick", err)
	}
	if got != nil {
		t.Fatalf("partial result returned: %v", got)
	}
}

func TestParseTicksPartial(t *testing.T) {
	t.Parallel()

	res := quote.ParseTicksPartial([]string{"99'16", "bad", "99'163", "101'08"})
	if len(res) != 4 {
		t.Fatalf("expected 4 results, got %d", len(res))
	}
	if res[0].Err != nil || !res[0].Price.Equal(decimal.RequireFromString("99.5")) {
		t.Fatalf("result 0: %+v", res[0])
	}
	if !errors.Is(res[1].Err, quote.ErrMalformedPrice) {
		t.Fatalf("result 1: got %v", res[1].Err)
	}
	if !errors.Is(res[2].Err, quote.ErrInvalidFraction) {
		t.Fatalf("result 2: got %v", res[2].Err)
	}
	if res[3].Err != nil || res[3].Token != "101'08" || !res[3].Price.Equal(decimal.RequireFromString("101.25")) {
		t.Fatalf("result 3: %+v", res[3])
	}
}
