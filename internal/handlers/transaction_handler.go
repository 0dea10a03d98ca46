package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	apperrors "fundledger/internal/errors"
	"fundledger/internal/logger"
	"fundledger/internal/models"
	"fundledger/internal/pagination"
	"fundledger/internal/services"
	"fundledger/internal/uuid"
)

// AttachmentURLPrefix is the public path stored attachments are served under.
const AttachmentURLPrefix = "/uploads"

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
	attachmentDir      string
	maxAttachmentBytes int64
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(
	transactionService services.TransactionServicer,
	auditService services.AuditServicer,
	attachmentDir string,
	maxAttachmentBytes int64,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		auditService:       auditService,
		attachmentDir:      attachmentDir,
		maxAttachmentBytes: maxAttachmentBytes,
	}
}

// amountInput keeps the amount exactly as the client typed it. JSON bodies
// may send it as a string ("1,500.00") or a number (1500); both reach
// models.ParseAmount unchanged.
type amountInput string

func (a *amountInput) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = amountInput(s)
		return nil
	}
	*a = amountInput(data)
	return nil
}

// AddTransactionRequest represents the posting payload. It is accepted as
// multipart form data or JSON. Amount and type are validated by the poster.
type AddTransactionRequest struct {
	OrgID                uint        `form:"org_id" json:"org_id"`
	FundID               uint        `form:"fund_id" json:"fund_id"`
	Type                 string      `form:"type" json:"type"`
	Amount               amountInput `form:"amount" json:"amount" swaggertype:"string"`
	Semester             string      `form:"semester" json:"semester"`
	SchoolYear           string      `form:"school_year" json:"school_year"`
	TransactionDate      string      `form:"transaction_date" json:"transaction_date"`
	ConfirmedDeficit     bool        `form:"confirmed_deficit" json:"confirmed_deficit"`
	IdempotencyKey       string      `form:"idempotency_key" json:"idempotency_key" binding:"max=64"`
	Category             string      `form:"category" json:"category" binding:"max=255"`
	Description          string      `form:"description" json:"description" binding:"max=1000"`
	EventName            string      `form:"event_name" json:"event_name" binding:"max=255"`
	DocumentType         string      `form:"document_type" json:"document_type" binding:"max=100"`
	PayeeMerchant        string      `form:"payee_merchant" json:"payee_merchant" binding:"max=255"`
	EvidenceNumber       string      `form:"evidence_number" json:"evidence_number" binding:"max=100"`
	Duration             string      `form:"duration" json:"duration" binding:"max=100"`
	ActivityApprovalDate string      `form:"activity_approval_date" json:"activity_approval_date"`
	ResolutionNumber     string      `form:"resolution_number" json:"resolution_number" binding:"max=100"`
}

// AddTransaction posts an inflow or outflow against a period fund.
// @Summary     Post a transaction
// @Description Post an INFLOW or OUTFLOW to a fund of the given period. An OUTFLOW larger than the fund balance returns 409 until it is re-sent with confirmed_deficit=true.
// @Tags        transactions
// @Accept      multipart/form-data
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request    body     AddTransactionRequest true  "Transaction details"
// @Param       attachment formData file                  false "Supporting document"
// @Param       image      formData file                  false "Supporting document, older clients"
// @Success     200 {object} models.Transaction "Transaction posted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     409 {object} DeficitResponse "Deficit confirmation required"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/add [post]
func (h *TransactionHandler) AddTransaction(c *gin.Context) {
	var req AddTransactionRequest
	if err := c.ShouldBindWith(&req, requestBinding(c)); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	orgID, err := authorizeOrg(c, req.OrgID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var txDate time.Time
	if req.TransactionDate != "" {
		if txDate, err = parseFlexibleTime(req.TransactionDate); err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
	}

	var approvalDate *time.Time
	if req.ActivityApprovalDate != "" {
		parsed, parseErr := parseFlexibleTime(req.ActivityApprovalDate)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		approvalDate = &parsed
	}

	attachmentPath, attachmentURL, err := h.saveAttachment(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.PostTransaction(c.Request.Context(), services.PostTransactionInput{
		OrgID:            orgID,
		FundID:           req.FundID,
		Type:             req.Type,
		Amount:           string(req.Amount),
		Period:           models.NewPeriod(req.Semester, req.SchoolYear),
		ConfirmedDeficit: req.ConfirmedDeficit,
		Date:             txDate,
		IdempotencyKey:   req.IdempotencyKey,
		Details: services.TransactionDetails{
			Category:             req.Category,
			Description:          req.Description,
			EventName:            req.EventName,
			DocumentType:         req.DocumentType,
			PayeeMerchant:        req.PayeeMerchant,
			EvidenceNumber:       req.EvidenceNumber,
			Duration:             req.Duration,
			ActivityApprovalDate: approvalDate,
			ResolutionNumber:     req.ResolutionNumber,
			AttachmentURL:        attachmentURL,
		},
	})
	if err != nil || result.Replayed {
		h.removeAttachment(attachmentPath)
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	if result.Replayed {
		c.Header("Idempotent-Replayed", "true")
	} else {
		h.auditService.Log(orgID, services.AuditActionPostTransaction, services.AuditResourceTransaction, result.Transaction.ID, c.ClientIP(),
			map[string]interface{}{
				"fund_id":      result.Transaction.FundID,
				"type":         result.Transaction.Type,
				"amount":       result.Transaction.Amount.StringFixed(2),
				"fund_balance": result.FundBalance.StringFixed(2),
				"deficit":      result.Deficit,
			})
	}

	c.JSON(http.StatusOK, result.Transaction)
}

// requestBinding picks JSON or form binding from the content type.
func requestBinding(c *gin.Context) binding.Binding {
	if c.ContentType() == binding.MIMEJSON {
		return binding.JSON
	}
	return binding.Form
}

// attachmentFields are the multipart fields a supporting document may arrive
// in, checked in order. Older clients upload it as "image".
var attachmentFields = []string{"attachment", "image"}

// saveAttachment stores the optional supporting document under a UUIDv7 name.
// It returns the stored path and the public URL, both empty when no file was sent.
func (h *TransactionHandler) saveAttachment(c *gin.Context) (string, string, error) {
	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		return "", "", nil
	}
	var (
		file *multipart.FileHeader
		err  error
	)
	for _, field := range attachmentFields {
		file, err = c.FormFile(field)
		if !errors.Is(err, http.ErrMissingFile) {
			break
		}
	}
	if errors.Is(err, http.ErrMissingFile) {
		return "", "", nil
	}
	if err != nil {
		return "", "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid attachment")
	}
	if file.Size > h.maxAttachmentBytes {
		return "", "", apperrors.ErrAttachmentTooLarge
	}

	name := uuid.New() + strings.ToLower(filepath.Ext(file.Filename))
	path := filepath.Join(h.attachmentDir, name)
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return path, AttachmentURLPrefix + "/" + name, nil
}

func (h *TransactionHandler) removeAttachment(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Get().Warnw("failed to remove orphaned attachment", "path", path, "error", err)
	}
}

// ListTransactionsQuery holds the query parameters for listing transactions.
type ListTransactionsQuery struct {
	OrgID      uint   `form:"org_id"`
	Semester   string `form:"semester"`
	SchoolYear string `form:"school_year"`
	Type       string `form:"type" binding:"omitempty,transaction_type"`
	FundID     uint   `form:"fund_id"`
}

// ListTransactions returns the organization's transactions newest first.
// @Summary     List transactions
// @Description List transactions with their fund names, newest first. Pagination applies only when page or page_size is given; totals are then returned in X-Total-Count and X-Total-Pages.
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       org_id      query int    false "Organization ID (defaults to the token's organization)"
// @Param       semester    query string false "Semester filter"
// @Param       school_year query string false "School year filter"
// @Param       type        query string false "INFLOW or OUTFLOW"
// @Param       fund_id     query int    false "Fund filter"
// @Param       page        query int    false "Page number"
// @Param       page_size   query int    false "Items per page (max 500)"
// @Success     200 {array}  models.Transaction
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var q ListTransactionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	orgID, err := authorizeOrg(c, q.OrgID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var filter services.TransactionFilter
	period := models.NewPeriod(q.Semester, q.SchoolYear)
	switch {
	case period.IsComplete():
		filter.Period = &period
	case period.Semester != "" || period.SchoolYear != "":
		respondWithError(c, apperrors.ErrPeriodRequired)
		return
	}
	if q.Type != "" {
		t, _ := models.ParseTransactionType(q.Type)
		filter.Type = &t
	}
	if q.FundID != 0 {
		filter.FundID = &q.FundID
	}

	transactions, total, err := h.transactionService.ListTransactions(c.Request.Context(), orgID, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if page.Requested() {
		page.Defaults()
		c.Header("X-Total-Count", strconv.FormatInt(total, 10))
		c.Header("X-Total-Pages", strconv.Itoa(page.TotalPages(total)))
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	c.JSON(http.StatusOK, transactions)
}
