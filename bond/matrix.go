package bond

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/fimatrix/utils"
)

// PeriodLength is the length of one coupon period in years.
const PeriodLength = 0.5

// MaxTimeToMaturity bounds the time to maturity accepted by the builder, in
// years. Longer horizons would allocate absurd matrix widths.
const MaxTimeToMaturity = 100.0

// periodTolerance absorbs floating-point drift when a time to maturity is an
// exact multiple of PeriodLength.
const periodTolerance = 1e-9

// SemiannualPeriods returns ceil(ttm / 0.5), treating values within
// periodTolerance of an integer as that integer.
func SemiannualPeriods(ttm float64) int {
	x := ttm / PeriodLength
	if r := math.Round(x); math.Abs(x-r) < periodTolerance {
		return int(r)
	}
	return int(math.Ceil(x))
}

// YearsToMaturity returns the supplied time to maturity, or derives it from
// the maturity date on an ACT/365.25 basis. Values outside
// [0, MaxTimeToMaturity] are rejected.
func YearsToMaturity(q SecurityQuote, valuationDate time.Time) (float64, error) {
	var ttm float64
	switch {
	case q.TimeToMaturity != nil:
		ttm = *q.TimeToMaturity
	case !q.MaturityDate.IsZero():
		ttm = utils.YearFraction(valuationDate, q.MaturityDate, utils.Act36525)
	default:
		return 0, fmt.Errorf("YearsToMaturity: %q has no maturity date: %w", q.CUSIP, ErrInvalidMaturity)
	}
	if ttm < 0 || ttm > MaxTimeToMaturity || math.IsNaN(ttm) || math.IsInf(ttm, 0) {
		return 0, fmt.Errorf("YearsToMaturity: %q matures in %g years: %w", q.CUSIP, ttm, ErrInvalidMaturity)
	}
	return ttm, nil
}

// BuildCashflowMatrix lays out every remaining payment of each security on a
// common semiannual grid.
//
// Both matrices have one row per security, in input order, and
// N = ceil(max ttm / 0.5) columns (at least one, so a security maturing on
// the valuation date still has a slot for its redemption). Row i holds
// coupon/2 in each of its own periods with 100 added to the last one;
// maturities count backward from the security's ttm in steps of 0.5.
// Columns past a row's final period are zero in both matrices and mean
// "no cashflow".
func BuildCashflowMatrix(securities []SecurityQuote, valuationDate time.Time) (cashflows, maturities Matrix, err error) {
	if len(securities) == 0 {
		return nil, nil, fmt.Errorf("BuildCashflowMatrix: %w", ErrEmptyBatch)
	}

	ttms := make([]float64, len(securities))
	maxPeriods := 0
	for i, q := range securities {
		ttm, err := YearsToMaturity(q, valuationDate)
		if err != nil {
			return nil, nil, fmt.Errorf("BuildCashflowMatrix: security %d: %w", i, err)
		}
		ttms[i] = ttm
		maxPeriods = max(maxPeriods, SemiannualPeriods(ttm))
	}
	cols := max(maxPeriods, 1)

	cashflows = newMatrix(len(securities), cols)
	maturities = newMatrix(len(securities), cols)

	for i, q := range securities {
		ttm := ttms[i]
		periods := SemiannualPeriods(ttm)
		if periods == 0 {
			maturities[i][0] = ttm
			cashflows[i][0] = Par
			continue
		}

		coupon := q.CouponRate / 2
		last := periods - 1
		for k := 0; k < periods; k++ {
			maturities[i][k] = ttm - PeriodLength*float64(last-k)
			cashflows[i][k] = coupon
		}
		maturities[i][last] = ttm
		cashflows[i][last] += Par
	}

	return cashflows, maturities, nil
}
