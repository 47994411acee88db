package report_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/meenmo/fimatrix/bond"
	"github.com/meenmo/fimatrix/internal/report"
)

func TestWriteMatrices(t *testing.T) {
	t.Parallel()

	cashflows := bond.Matrix{{2, 102}, {100, 0}}
	maturities := bond.Matrix{{0.5, 1}, {0.25, 0}}

	var buf bytes.Buffer
	if err := report.WriteMatrices(context.Background(), &buf, []string{"A", "B"}, cashflows, maturities); err != nil {
		t.Fatalf("WriteMatrices error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != report.CashflowsSheet || sheets[1] != report.MaturitiesSheet {
		t.Fatalf("sheets: got %v", sheets)
	}

	rows, err := f.GetRows(report.CashflowsSheet)
	if err != nil {
		t.Fatalf("GetRows error: %v", err)
	}
	want := [][]string{
		{"security", "1", "2"},
		{"A", "2", "102"},
		{"B", "100", "0"},
	}
	assertRows(t, rows, want)

	rows, err = f.GetRows(report.MaturitiesSheet)
	if err != nil {
		t.Fatalf("GetRows error: %v", err)
	}
	assertRows(t, rows, [][]string{
		{"security", "1", "2"},
		{"A", "0.5", "1"},
		{"B", "0.25", "0"},
	})
}

func TestWriteMatrices_Mismatch(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := report.WriteMatrices(context.Background(), &buf, []string{"only one"}, bond.Matrix{{1}, {2}}, bond.Matrix{{1}, {2}})
	if err == nil {
		t.Fatalf("expected error for label count mismatch")
	}
	err = report.WriteMatrices(context.Background(), &buf, nil, nil, nil)
	if err == nil || !strings.HasPrefix(err.Error(), "report.WriteMatrices: ") {
		t.Fatalf("empty matrices: got %v want report.WriteMatrices-prefixed error", err)
	}
}

func assertRows(t *testing.T, got, want [][]string) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("rows: got %d want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if len(got[i]) != len(want[i]) {
			t.Fatalf("row %d: got %v want %v", i, got[i], want[i])
		}
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Fatalf("cell (%d,%d): got %q want %q", i, j, got[i][j], want[i][j])
			}
		}
	}
}
