package handlers

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	apperrors "fundledger/internal/errors"
	"fundledger/internal/models"
	"fundledger/internal/services"
)

func setupReportRouter(handler *ReportHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectOrgID(7))
	auth.GET("/reports/summary", handler.GetSummary)
	auth.GET("/reports/transactions", handler.GetTransactions)
	auth.GET("/reports/export", handler.ExportLedger)
	return r
}

func reportFixture(orgID uint, period models.Period) (*services.PeriodSummary, []models.Transaction) {
	date := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		{Base: models.Base{ID: 1}, OrgID: orgID, FundID: 1, Type: models.TransactionTypeInflow, Amount: decimal.NewFromInt(1500), Semester: period.Semester, SchoolYear: period.SchoolYear, Date: date, Category: "Dues", SourceName: "Org Fund"},
		{Base: models.Base{ID: 2}, OrgID: orgID, FundID: 1, Type: models.TransactionTypeOutflow, Amount: decimal.NewFromInt(400), Semester: period.Semester, SchoolYear: period.SchoolYear, Date: date.AddDate(0, 0, 1), Category: "Supplies", SourceName: "Org Fund"},
	}
	summary := &services.PeriodSummary{
		OrgID:               orgID,
		Period:              period,
		Totals:              services.SummarizeTransactions(txs),
		Funds:               []services.FundBalance{{FundID: 1, SourceName: "Org Fund", Balance: decimal.NewFromInt(1100)}},
		FundTotal:           decimal.NewFromInt(1100),
		OrganizationBalance: decimal.NewFromInt(1100),
	}
	return summary, txs
}

func TestReportHandler_GetSummary(t *testing.T) {
	t.Run("returns the summary for the token's organization", func(t *testing.T) {
		reportSvc := &mockReportService{
			getPeriodSummaryFn: func(orgID uint, period models.Period) (*services.PeriodSummary, error) {
				if orgID != 7 {
					t.Errorf("expected org 7, got %d", orgID)
				}
				summary, _ := reportFixture(orgID, period)
				return summary, nil
			},
		}
		r := setupReportRouter(NewReportHandler(reportSvc))

		rec := doRequest(r, "GET", "/reports/summary?"+periodQuery, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		totals := result["totals"].(map[string]interface{})
		if totals["inflow_total"] != "1500" {
			t.Errorf("expected inflow_total 1500, got %v", totals["inflow_total"])
		}
		if totals["outflow_total"] != "400" {
			t.Errorf("expected outflow_total 400, got %v", totals["outflow_total"])
		}
		inflows := totals["inflows_by_category"].([]interface{})
		if len(inflows) != 1 {
			t.Errorf("expected 1 inflow category, got %d", len(inflows))
		}
	})

	t.Run("returns 400 when the period is missing", func(t *testing.T) {
		r := setupReportRouter(NewReportHandler(&mockReportService{}))

		rec := doRequest(r, "GET", "/reports/summary?school_year=S.Y.+2025-2026", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "PERIOD_REQUIRED")
	})

	t.Run("returns 403 for another organization", func(t *testing.T) {
		r := setupReportRouter(NewReportHandler(&mockReportService{}))

		rec := doRequest(r, "GET", "/reports/summary?org_id=8&"+periodQuery, "")

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("returns 404 for a missing organization", func(t *testing.T) {
		reportSvc := &mockReportService{
			getPeriodSummaryFn: func(_ uint, _ models.Period) (*services.PeriodSummary, error) {
				return nil, apperrors.ErrOrganizationNotFound
			},
		}
		r := setupReportRouter(NewReportHandler(reportSvc))

		rec := doRequest(r, "GET", "/reports/summary?org_id=7&"+periodQuery, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestReportHandler_GetTransactions(t *testing.T) {
	t.Run("returns an empty array rather than null", func(t *testing.T) {
		r := setupReportRouter(NewReportHandler(&mockReportService{}))

		rec := doRequest(r, "GET", "/reports/transactions?"+periodQuery, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if body := rec.Body.String(); body != "[]" {
			t.Errorf("expected [], got %s", body)
		}
	})

	t.Run("returns transactions with fund names", func(t *testing.T) {
		reportSvc := &mockReportService{
			getReportTransactionsFn: func(orgID uint, period models.Period) ([]models.Transaction, error) {
				_, txs := reportFixture(orgID, period)
				return txs, nil
			},
		}
		r := setupReportRouter(NewReportHandler(reportSvc))

		rec := doRequest(r, "GET", "/reports/transactions?"+periodQuery, "")

		txs := parseJSONArray(t, rec)
		if len(txs) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(txs))
		}
		if txs[0].(map[string]interface{})["source_name"] != "Org Fund" {
			t.Errorf("expected source_name on report rows, got %v", txs[0])
		}
	})
}

func TestReportHandler_ExportLedger(t *testing.T) {
	t.Run("streams an xlsx workbook", func(t *testing.T) {
		reportSvc := &mockReportService{
			getPeriodSummaryFn: func(orgID uint, period models.Period) (*services.PeriodSummary, error) {
				summary, _ := reportFixture(orgID, period)
				return summary, nil
			},
			getReportTransactionsFn: func(orgID uint, period models.Period) ([]models.Transaction, error) {
				_, txs := reportFixture(orgID, period)
				return txs, nil
			},
		}
		r := setupReportRouter(NewReportHandler(reportSvc))

		rec := doRequest(r, "GET", "/reports/export?"+periodQuery, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
			t.Errorf("unexpected content type %q", ct)
		}
		if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="ledger_first-semester_sy-2025-2026.xlsx"` {
			t.Errorf("unexpected content disposition %q", cd)
		}

		f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()), excelize.Options{RawCellValue: true})
		if err != nil {
			t.Fatalf("response is not a workbook: %v", err)
		}
		defer f.Close()
		balance, err := f.GetCellValue("Ledger", "K3")
		if err != nil {
			t.Fatalf("GetCellValue: %v", err)
		}
		if balance != "1100.00" {
			t.Errorf("expected running balance 1100.00, got %q", balance)
		}
	})

	t.Run("returns JSON errors before streaming", func(t *testing.T) {
		r := setupReportRouter(NewReportHandler(&mockReportService{}))

		rec := doRequest(r, "GET", "/reports/export", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "PERIOD_REQUIRED")
	})
}
