package bond

import "time"

// Par is the face value every amount in this package is quoted against.
const Par = 100.0

// Cashflow is a single dated cash payment for a bond.
//
// Amounts are price-per-100 of face value.
type Cashflow struct {
	Date      time.Time
	Coupon    float64
	Principal float64
}

func (c Cashflow) Amount() float64 {
	return c.Coupon + c.Principal
}

// SecurityQuote is one row of a cashflow matrix batch.
type SecurityQuote struct {
	CUSIP        string
	MaturityDate time.Time
	// TimeToMaturity in years from the valuation date. When nil it is
	// derived from MaturityDate on an ACT/365.25 basis.
	TimeToMaturity *float64
	// CouponRate is the annual coupon in percent (e.g. 2.375 for 2.375%).
	// Zero for bills.
	CouponRate float64
}

// Matrix is a dense row-major matrix. Rows follow the input order of the
// batch, columns are semiannual period slots.
type Matrix [][]float64

// Shape returns (rows, cols). Every row has the same length.
func (m Matrix) Shape() (int, int) {
	if len(m) == 0 {
		return 0, 0
	}
	return len(m), len(m[0])
}

func newMatrix(rows, cols int) Matrix {
	backing := make([]float64, rows*cols)
	m := make(Matrix, rows)
	for i := range m {
		m[i] = backing[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return m
}
