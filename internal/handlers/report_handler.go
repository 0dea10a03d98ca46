package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fundledger/internal/errors"
	"fundledger/internal/export"
	"fundledger/internal/models"
	"fundledger/internal/services"
)

// ReportHandler handles period reports.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ReportQuery identifies the organization and period of a report.
type ReportQuery struct {
	OrgID uint `form:"org_id"`
	PeriodQuery
}

// bindReport resolves the organization and period of a report request.
func bindReport(c *gin.Context) (uint, models.Period, error) {
	var q ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return 0, models.Period{}, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	orgID, err := authorizeOrg(c, q.OrgID)
	if err != nil {
		return 0, models.Period{}, err
	}
	period := q.Period()
	if !period.IsComplete() {
		return 0, models.Period{}, apperrors.ErrPeriodRequired
	}
	return orgID, period, nil
}

// GetSummary returns period totals, per-category inflows and outflows, and fund balances.
// @Summary     Period summary
// @Description Totals of the period's transactions by type and category, with stored fund balances and the organization's lifetime balance.
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       org_id      query int    false "Organization ID (defaults to the token's organization)"
// @Param       semester    query string true  "Semester"
// @Param       school_year query string true  "School year"
// @Success     200 {object} services.PeriodSummary
// @Failure     400 {object} ErrorResponse "Semester and School Year are required"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Organization not found"
// @Router      /reports/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	orgID, period, err := bindReport(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reportService.GetPeriodSummary(c.Request.Context(), orgID, period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetTransactions returns the period's transactions oldest first for report rendering.
// @Summary     Report transactions
// @Description The period's transactions in ascending date order, each with its fund name.
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       org_id      query int    false "Organization ID (defaults to the token's organization)"
// @Param       semester    query string true  "Semester"
// @Param       school_year query string true  "School year"
// @Success     200 {array}  models.Transaction
// @Failure     400 {object} ErrorResponse "Semester and School Year are required"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /reports/transactions [get]
func (h *ReportHandler) GetTransactions(c *gin.Context) {
	orgID, period, err := bindReport(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.reportService.GetReportTransactions(c.Request.Context(), orgID, period)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	c.JSON(http.StatusOK, transactions)
}

// ExportLedger streams the period ledger as an XLSX workbook.
// @Summary     Export ledger
// @Description Download the period's transactions with running balance and a summary sheet as XLSX.
// @Tags        reports
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Param       org_id      query int    false "Organization ID (defaults to the token's organization)"
// @Param       semester    query string true  "Semester"
// @Param       school_year query string true  "School year"
// @Success     200 {file}   file
// @Failure     400 {object} ErrorResponse "Semester and School Year are required"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /reports/export [get]
func (h *ReportHandler) ExportLedger(c *gin.Context) {
	orgID, period, err := bindReport(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	summary, err := h.reportService.GetPeriodSummary(ctx, orgID, period)
	if err != nil {
		respondWithError(c, err)
		return
	}
	transactions, err := h.reportService.GetReportTransactions(ctx, orgID, period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	f, err := export.LedgerWorkbook(summary, transactions)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(period)))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
