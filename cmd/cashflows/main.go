package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/meenmo/fimatrix/bond"
	"github.com/meenmo/fimatrix/calendar"
	"github.com/meenmo/fimatrix/internal/config"
	"github.com/meenmo/fimatrix/internal/logger"
	"github.com/meenmo/fimatrix/internal/report"
	"github.com/meenmo/fimatrix/marketdata/treasury"
	"github.com/meenmo/fimatrix/utils"
)

type batchInput struct {
	ValuationDate string          `json:"valuation_date"`
	Securities    []securityInput `json:"securities"`
}

type securityInput struct {
	CUSIP          string   `json:"cusip"`
	MaturityDate   string   `json:"maturity_date,omitempty"`
	TimeToMaturity *float64 `json:"time_to_maturity,omitempty"`
	CouponRate     float64  `json:"coupon_rate"`
}

type batchOutput struct {
	ValuationDate string      `json:"valuation_date"`
	Securities    []string    `json:"securities"`
	Columns       int         `json:"columns"`
	Cashflows     bond.Matrix `json:"cashflows"`
	Maturities    bond.Matrix `json:"maturities"`
	Error         string      `json:"error,omitempty"`
}

func main() {
	inputPath := flag.String("input", "", "JSON input path (reads stdin if omitted)")
	kind := flag.String("kind", "", "Fetch outstanding securities of this TreasuryDirect kind instead of reading input")
	valuation := flag.String("valuation-date", "", "Valuation date YYYY-MM-DD (default: input value, else previous US business day)")
	xlsxPath := flag.String("xlsx", "", "Also write the matrices to this xlsx file")
	help := flag.Bool("h", false, "Show help")
	flag.BoolVar(help, "help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Fprintln(os.Stderr, "Usage: cashflows [-input <path> | -kind Note] [-valuation-date YYYY-MM-DD] [-xlsx out.xlsx]")
		fmt.Fprintln(os.Stderr, "Lay out semiannual cashflow and time-to-cashflow matrices for a batch of securities.")
		return
	}

	cfg := config.MustLoad()
	logger.Setup(os.Stderr, cfg.LogLevel)

	ctx := utils.WithRequestID(context.Background())

	var (
		out *batchOutput
		err error
	)
	if k := strings.TrimSpace(*kind); k != "" {
		out, err = fetchAndBuild(ctx, cfg, k, *valuation)
	} else {
		path := strings.TrimSpace(*inputPath)
		if path == "" {
			if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
				fmt.Fprintln(os.Stderr, "Usage: cashflows -input <path>")
				os.Exit(2)
			}
		}
		out, err = readAndBuild(path, *valuation)
	}
	if err != nil {
		exitError(err.Error())
	}

	if *xlsxPath != "" {
		if err := writeXLSX(ctx, *xlsxPath, out); err != nil {
			exitError(fmt.Sprintf("write xlsx: %v", err))
		}
		slog.Info("matrices written", slog.String("rqID", utils.RequestIDFromCtx(ctx)), slog.String("path", *xlsxPath))
	}

	b, _ := json.Marshal(out)
	fmt.Println(string(b))
}

func readAndBuild(path, valuationOverride string) (*batchOutput, error) {
	raw, err := readInput(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %v", err)
	}
	var in batchInput
	if err := json.Unmarshal(bytes.TrimSpace(raw), &in); err != nil {
		return nil, fmt.Errorf("parse JSON: %v", err)
	}
	if valuationOverride != "" {
		in.ValuationDate = valuationOverride
	}
	valuationDate, err := resolveValuationDate(in.ValuationDate)
	if err != nil {
		return nil, err
	}

	quotes := make([]bond.SecurityQuote, 0, len(in.Securities))
	labels := make([]string, 0, len(in.Securities))
	for i, s := range in.Securities {
		q := bond.SecurityQuote{
			CUSIP:          s.CUSIP,
			TimeToMaturity: s.TimeToMaturity,
			CouponRate:     s.CouponRate,
		}
		if s.MaturityDate != "" {
			if q.MaturityDate, err = utils.ParseDate(s.MaturityDate); err != nil {
				return nil, fmt.Errorf("security %d: invalid maturity_date: %v", i, err)
			}
		}
		quotes = append(quotes, q)
		labels = append(labels, label(s.CUSIP, i))
	}

	return build(quotes, labels, valuationDate)
}

func fetchAndBuild(ctx context.Context, cfg *config.Config, rawKind, valuation string) (*batchOutput, error) {
	kind, err := treasury.ParseKind(rawKind)
	if err != nil {
		return nil, err
	}
	valuationDate, err := resolveValuationDate(valuation)
	if err != nil {
		return nil, err
	}

	secs, cfs, mats, err := treasury.BuildMatrices(ctx, treasury.New(cfg), kind, valuationDate)
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(secs))
	for i, s := range secs {
		labels = append(labels, label(s.CUSIP, i))
	}
	_, cols := cfs.Shape()
	return &batchOutput{
		ValuationDate: valuationDate.Format(utils.DateLayout),
		Securities:    labels,
		Columns:       cols,
		Cashflows:     cfs,
		Maturities:    mats,
	}, nil
}

func build(quotes []bond.SecurityQuote, labels []string, valuationDate time.Time) (*batchOutput, error) {
	cfs, mats, err := bond.BuildCashflowMatrix(quotes, valuationDate)
	if err != nil {
		return nil, err
	}
	_, cols := cfs.Shape()
	return &batchOutput{
		ValuationDate: valuationDate.Format(utils.DateLayout),
		Securities:    labels,
		Columns:       cols,
		Cashflows:     cfs,
		Maturities:    mats,
	}, nil
}

func resolveValuationDate(s string) (time.Time, error) {
	if s = strings.TrimSpace(s); s == "" {
		return calendar.PreviousBusinessDay(calendar.USD, time.Now()), nil
	}
	d, err := utils.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid valuation_date: %v", err)
	}
	return d, nil
}

func label(cusip string, i int) string {
	if cusip != "" {
		return cusip
	}
	return fmt.Sprintf("#%d", i+1)
}

func writeXLSX(ctx context.Context, path string, out *batchOutput) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteMatrices(ctx, f, out.Securities, out.Cashflows, out.Maturities); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func readInput(path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(os.Stdin)
}

func exitError(msg string) {
	b, _ := json.Marshal(batchOutput{Error: msg})
	fmt.Println(string(b))
	os.Exit(1)
}
