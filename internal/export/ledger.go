// Package export renders period ledgers as XLSX workbooks.
package export

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"fundledger/internal/models"
	"fundledger/internal/services"
)

const (
	ledgerSheet  = "Ledger"
	summarySheet = "Summary"
	dateLayout   = "2006-01-02"
)

var ledgerHeaders = []string{
	"Date", "Fund", "Type", "Category", "Description", "Event", "Payee / Merchant",
	"Evidence No.", "Inflow", "Outflow", "Running Balance",
}

// FileName returns the download name for a period ledger, e.g.
// "ledger_first-semester_sy-2025-2026.xlsx".
func FileName(period models.Period) string {
	slug := func(s string) string {
		s = strings.ToLower(s)
		s = strings.NewReplacer(".", "", " ", "-", "/", "-").Replace(s)
		return s
	}
	return fmt.Sprintf("ledger_%s_%s.xlsx", slug(period.Semester), slug(period.SchoolYear))
}

// LedgerWorkbook builds a workbook with the period's transactions, oldest
// first with a running balance, and a summary sheet with totals and fund balances.
// Transactions must already be in ascending date order.
func LedgerWorkbook(summary *services.PeriodSummary, transactions []models.Transaction) (*excelize.File, error) {
	f := excelize.NewFile()

	// NewFile starts with "Sheet1"; rename it rather than leave it empty.
	if err := f.SetSheetName(f.GetSheetName(0), ledgerSheet); err != nil {
		return nil, err
	}
	if err := writeLedger(f, transactions); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}
	if err := writeSummary(f, summary); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeLedger(f *excelize.File, transactions []models.Transaction) error {
	for i, h := range ledgerHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(ledgerSheet, cell, h); err != nil {
			return err
		}
	}

	running := decimal.Zero
	for idx, t := range transactions {
		row := idx + 2
		running = running.Add(t.Type.Signed(t.Amount))

		values := []interface{}{
			t.Date.Format(dateLayout),
			t.SourceName,
			string(t.Type),
			t.Category,
			t.Description,
			t.EventName,
			t.PayeeMerchant,
			t.EvidenceNumber,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(ledgerSheet, cell, v); err != nil {
				return err
			}
		}

		amountCol := 9
		if t.Type == models.TransactionTypeOutflow {
			amountCol = 10
		}
		if err := setAmount(f, ledgerSheet, amountCol, row, t.Amount); err != nil {
			return err
		}
		if err := setAmount(f, ledgerSheet, 11, row, running); err != nil {
			return err
		}
	}

	widths := map[string]float64{"A": 12, "B": 30, "C": 10, "D": 18, "E": 36, "F": 24, "G": 24, "H": 14, "I": 14, "J": 14, "K": 16}
	for col, w := range widths {
		if err := f.SetColWidth(ledgerSheet, col, col, w); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, summary *services.PeriodSummary) error {
	rows := [][]interface{}{
		{"Period", summary.Period.String()},
		{"Total Inflows", summary.Totals.InflowTotal},
		{"Total Outflows", summary.Totals.OutflowTotal},
		{"Net", summary.Totals.Balance},
		{"Organization Balance", summary.OrganizationBalance},
		{},
		{"Fund", "Balance"},
	}
	for _, fb := range summary.Funds {
		rows = append(rows, []interface{}{fb.SourceName, fb.Balance})
	}
	rows = append(rows, []interface{}{"Total", summary.FundTotal})

	for i, r := range rows {
		row := i + 1
		for col, v := range r {
			if d, ok := v.(decimal.Decimal); ok {
				if err := setAmount(f, summarySheet, col+1, row, d); err != nil {
					return err
				}
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(summarySheet, cell, v); err != nil {
				return err
			}
		}
	}
	return f.SetColWidth(summarySheet, "A", "A", 32)
}

func setAmount(f *excelize.File, sheet string, col, row int, amount decimal.Decimal) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellFloat(sheet, cell, amount.InexactFloat64(), 2, 64)
}
