package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/meenmo/fimatrix/bond"
	"github.com/meenmo/fimatrix/utils"
)

const (
	CashflowsSheet  = "Cashflows"
	MaturitiesSheet = "Maturities"
	defaultSheet    = "Sheet1"
)

// WriteMatrices writes both matrices as an xlsx workbook, one sheet each.
// Column A holds the row labels, row 1 the semiannual period numbers.
func WriteMatrices(ctx context.Context, w io.Writer, labels []string, cashflows, maturities bond.Matrix) (err error) {
	rqID := utils.RequestIDFromCtx(ctx)
	op := "report.WriteMatrices"

	rows, _ := cashflows.Shape()
	if rows == 0 {
		return fmt.Errorf("%s: empty matrices", op)
	}
	if len(labels) != rows || len(maturities) != rows {
		return fmt.Errorf("%s: %d labels for %d cashflow rows and %d maturity rows", op, len(labels), rows, len(maturities))
	}

	slog.Debug("WriteMatrices start", slog.String("rqID", rqID), slog.String("op", op), slog.Int("rows", rows))

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("got error while closing file", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		}
	}()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{"#cfe2f3"},
		},
	})
	if err != nil {
		return err
	}

	if err := fillSheet(f, CashflowsSheet, labels, cashflows, headerStyle); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := fillSheet(f, MaturitiesSheet, labels, maturities, headerStyle); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := f.DeleteSheet(defaultSheet); err != nil {
		slog.Error("got error while deleting Sheet1", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}

	if _, err := f.WriteTo(w); err != nil {
		slog.Error("got error while writing workbook", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	slog.Debug("WriteMatrices completed", slog.String("rqID", rqID), slog.String("op", op))

	return nil
}

func fillSheet(f *excelize.File, sheet string, labels []string, m bond.Matrix, headerStyle int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	_, cols := m.Shape()
	header := make([]any, 0, cols+1)
	header = append(header, "security")
	for k := 1; k <= cols; k++ {
		header = append(header, k)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(cols+1, 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range m {
		values := make([]any, 0, len(row)+1)
		values = append(values, labels[i])
		for _, v := range row {
			values = append(values, v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}
