package bonds

import (
	"time"

	"github.com/meenmo/fimatrix/bond"
	"github.com/meenmo/fimatrix/utils"
)

// ToCashflows turns one row of a cashflow matrix into dated payments.
//
// The last nonzero column is the redemption and is paid on maturity; every
// earlier column steps back six months from it (EDATE), which is how
// Treasury coupon dates are anchored. Zero columns are skipped.
func ToCashflows(maturity time.Time, row []float64) []bond.Cashflow {
	last := -1
	for k := len(row) - 1; k >= 0; k-- {
		if row[k] != 0 {
			last = k
			break
		}
	}
	if last < 0 {
		return nil
	}

	out := make([]bond.Cashflow, 0, last+1)
	for k := 0; k <= last; k++ {
		if row[k] == 0 {
			continue
		}
		cf := bond.Cashflow{
			Date:   utils.AddMonth(maturity, -6*(last-k)),
			Coupon: row[k],
		}
		if k == last {
			cf.Coupon -= bond.Par
			cf.Principal = bond.Par
		}
		out = append(out, cf)
	}
	return out
}

// Total sums the amounts of a schedule.
func Total(cfs []bond.Cashflow) float64 {
	total := 0.0
	for _, cf := range cfs {
		total += cf.Amount()
	}
	return total
}
