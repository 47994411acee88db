package treasury

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meenmo/fimatrix/bond"
)

// Security is one auctioned Treasury security as listed by TreasuryDirect.
type Security struct {
	CUSIP        string
	IssueDate    time.Time
	SecurityType string
	SecurityTerm string
	MaturityDate time.Time
	// InterestRate is the annual coupon in percent; zero for bills.
	InterestRate decimal.Decimal
	RSPOEOpening string
}

// Quote converts the security into a cashflow matrix row. Time to maturity
// is left to be derived from the maturity date.
func (s Security) Quote() bond.SecurityQuote {
	return bond.SecurityQuote{
		CUSIP:        s.CUSIP,
		MaturityDate: s.MaturityDate,
		CouponRate:   s.InterestRate.InexactFloat64(),
	}
}

// Outstanding keeps securities that mature on or after the valuation date,
// in their original order.
func Outstanding(secs []Security, valuationDate time.Time) []Security {
	out := make([]Security, 0, len(secs))
	for _, s := range secs {
		if !s.MaturityDate.Before(valuationDate) {
			out = append(out, s)
		}
	}
	return out
}

func ToQuotes(secs []Security) []bond.SecurityQuote {
	out := make([]bond.SecurityQuote, 0, len(secs))
	for _, s := range secs {
		out = append(out, s.Quote())
	}
	return out
}

// Feed supplies securities by kind.
type Feed interface {
	Securities(ctx context.Context, kind Kind) ([]Security, error)
}

// MapFeed is a static map-backed Feed for offline runs and tests.
type MapFeed struct {
	securities map[Kind][]Security
}

func NewMapFeed(securities map[Kind][]Security) *MapFeed {
	return &MapFeed{securities: securities}
}

func (m *MapFeed) Securities(_ context.Context, kind Kind) ([]Security, error) {
	secs, ok := m.securities[kind]
	if !ok {
		return nil, fmt.Errorf("MapFeed: %q: %w", kind, ErrUnknownKind)
	}
	return secs, nil
}

// BuildMatrices fetches a kind from feed and lays out the cashflow matrices of
// everything still outstanding on valuationDate.
func BuildMatrices(ctx context.Context, feed Feed, kind Kind, valuationDate time.Time) ([]Security, bond.Matrix, bond.Matrix, error) {
	secs, err := feed.Securities(ctx, kind)
	if err != nil {
		return nil, nil, nil, err
	}
	secs = Outstanding(secs, valuationDate)

	cfs, mats, err := bond.BuildCashflowMatrix(ToQuotes(secs), valuationDate)
	if err != nil {
		return nil, nil, nil, err
	}
	return secs, cfs, mats, nil
}
