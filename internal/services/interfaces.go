package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fundledger/internal/models"
	"fundledger/internal/pagination"
)

// OrganizationServicer defines the contract for organization onboarding and login.
type OrganizationServicer interface {
	CreateOrganization(ctx context.Context, username, password, fullName string) (*models.Organization, error)
	GetOrganizationByID(ctx context.Context, id uint) (*models.Organization, error)
	Authenticate(ctx context.Context, username, password string) (*models.Organization, error)
}

// FundServicer defines the contract for the period-scoped fund store.
type FundServicer interface {
	// GetPeriodFunds returns the organization's funds for the period,
	// seeding the default fund list the first time the period is read.
	GetPeriodFunds(ctx context.Context, orgID uint, period models.Period) ([]models.Fund, error)
}

// TransactionDetails holds the free-form descriptive fields of a transaction.
type TransactionDetails struct {
	Category             string
	Description          string
	EventName            string
	DocumentType         string
	PayeeMerchant        string
	EvidenceNumber       string
	Duration             string
	ActivityApprovalDate *time.Time
	ResolutionNumber     string
	AttachmentURL        string
}

// PostTransactionInput is one posting request. Type and Amount are the raw
// values entered by the user; the poster validates and parses them.
type PostTransactionInput struct {
	OrgID            uint
	FundID           uint
	Type             string
	Amount           string
	Period           models.Period
	ConfirmedDeficit bool
	Date             time.Time
	IdempotencyKey   string
	Details          TransactionDetails
}

// PostResult is the outcome of a successful posting.
type PostResult struct {
	Transaction *models.Transaction `json:"transaction"`
	FundBalance decimal.Decimal     `json:"fund_balance"`
	Deficit     bool                `json:"deficit"`
	Replayed    bool                `json:"replayed"`
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Period *models.Period
	Type   *models.TransactionType
	FundID *uint
}

// TransactionServicer defines the contract for posting to and reading the transaction log.
type TransactionServicer interface {
	PostTransaction(ctx context.Context, in PostTransactionInput) (*PostResult, error)
	ListTransactions(ctx context.Context, orgID uint, filter TransactionFilter, page pagination.PageRequest) ([]models.Transaction, int64, error)
}

// ReportServicer defines the contract for period aggregation and fund reconciliation.
type ReportServicer interface {
	GetPeriodSummary(ctx context.Context, orgID uint, period models.Period) (*PeriodSummary, error)
	GetReportTransactions(ctx context.Context, orgID uint, period models.Period) ([]models.Transaction, error)
	ReconcileFunds(ctx context.Context, orgID uint, period models.Period) ([]FundReconciliation, error)
	RepairFunds(ctx context.Context, orgID uint, period models.Period) ([]FundReconciliation, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(orgID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
