package main

import (
	"fmt"
	"time"

	"github.com/meenmo/fimatrix/bond"
	"github.com/meenmo/fimatrix/quote"
)

func main() {
	ttm := func(v float64) *float64 { return &v }

	valuation := time.Date(2017, 12, 12, 0, 0, 0, 0, time.UTC)
	batch := []bond.SecurityQuote{
		{CUSIP: "912828K74", MaturityDate: time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC), CouponRate: 2.0},
		{CUSIP: "912828M56", MaturityDate: time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC), CouponRate: 2.25},
		{CUSIP: "bill", TimeToMaturity: ttm(0.25)},
	}

	cashflows, maturities, err := bond.BuildCashflowMatrix(batch, valuation)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	rows, cols := cashflows.Shape()
	fmt.Printf("Matrix shape: %d x %d\n", rows, cols)
	for i, q := range batch {
		fmt.Printf("%-10s first (%.6f, %.4f) last (%.6f, %.4f)\n", q.CUSIP,
			maturities[i][0], cashflows[i][0], maturities[i][cols-1], cashflows[i][cols-1])
	}

	for _, tok := range []string{"99'16", "99'162", "99'16+", "100'31"} {
		p, err := quote.ParseTicks(tok)
		if err != nil {
			fmt.Printf("%-8s error: %v\n", tok, err)
			continue
		}
		fmt.Printf("%-8s %s\n", tok, p)
	}
}
