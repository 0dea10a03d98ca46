package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fundledger/internal/services"
)

// FundHandler handles the period fund list and fund maintenance.
type FundHandler struct {
	fundService   services.FundServicer
	reportService services.ReportServicer
	auditService  services.AuditServicer
}

// NewFundHandler creates a new FundHandler.
func NewFundHandler(fundService services.FundServicer, reportService services.ReportServicer, auditService services.AuditServicer) *FundHandler {
	return &FundHandler{fundService: fundService, reportService: reportService, auditService: auditService}
}

// GetFunds returns the organization's funds for a period, creating the
// default funds on the first read of that period.
// @Summary     List period funds
// @Description Get the funds of an organization for a semester and school year. Default funds are created on first access.
// @Tags        funds
// @Produce     json
// @Security    BearerAuth
// @Param       org_id      path  int    true "Organization ID"
// @Param       semester    query string true "Semester, e.g. First Semester"
// @Param       school_year query string true "School year, e.g. S.Y. 2025-2026"
// @Success     200 {array}  models.Fund
// @Failure     400 {object} ErrorResponse "Semester and School Year are required"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Organization not found"
// @Router      /funds/{org_id} [get]
func (h *FundHandler) GetFunds(c *gin.Context) {
	requested, err := parsePathID(c, "org_id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	orgID, err := authorizeOrg(c, requested)
	if err != nil {
		respondWithError(c, err)
		return
	}

	period, err := bindPeriod(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	funds, err := h.fundService.GetPeriodFunds(c.Request.Context(), orgID, period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, funds)
}

// CheckFunds compares stored fund balances with the transaction log.
// @Summary     Reconcile period funds
// @Description Compare each fund's stored balance for the period with the net of its transactions. Read only.
// @Tags        funds
// @Produce     json
// @Security    BearerAuth
// @Param       org_id      path  int    true "Organization ID"
// @Param       semester    query string true "Semester"
// @Param       school_year query string true "School year"
// @Success     200 {array}  services.FundReconciliation
// @Failure     400 {object} ErrorResponse "Semester and School Year are required"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /funds/{org_id}/reconcile [get]
func (h *FundHandler) CheckFunds(c *gin.Context) {
	requested, err := parsePathID(c, "org_id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	orgID, err := authorizeOrg(c, requested)
	if err != nil {
		respondWithError(c, err)
		return
	}

	period, err := bindPeriod(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recs, err := h.reportService.ReconcileFunds(c.Request.Context(), orgID, period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, recs)
}

// RepairFunds rewrites out-of-sync fund balances from the transaction log.
// @Summary     Repair period funds
// @Description Recompute every fund balance of the period from its transactions under row locks. Requires the maintenance API key.
// @Tags        funds
// @Produce     json
// @Security    BearerAuth
// @Security    MaintenanceKey
// @Param       org_id      path  int    true "Organization ID"
// @Param       semester    query string true "Semester"
// @Param       school_year query string true "School year"
// @Success     200 {array}  services.FundReconciliation
// @Failure     400 {object} ErrorResponse "Semester and School Year are required"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     503 {object} ErrorResponse "Maintenance endpoints are not configured"
// @Router      /funds/{org_id}/reconcile [post]
func (h *FundHandler) RepairFunds(c *gin.Context) {
	requested, err := parsePathID(c, "org_id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	orgID, err := authorizeOrg(c, requested)
	if err != nil {
		respondWithError(c, err)
		return
	}

	period, err := bindPeriod(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recs, err := h.reportService.RepairFunds(c.Request.Context(), orgID, period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	for _, rec := range recs {
		if !rec.Repaired {
			continue
		}
		h.auditService.Log(orgID, services.AuditActionRepairFunds, services.AuditResourceFund, rec.FundID, c.ClientIP(),
			map[string]interface{}{
				"stored":   rec.Stored.StringFixed(2),
				"computed": rec.Computed.StringFixed(2),
			})
	}

	c.JSON(http.StatusOK, recs)
}
