package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a transaction
type TransactionType string

const (
	TransactionTypeInflow  TransactionType = "INFLOW"
	TransactionTypeOutflow TransactionType = "OUTFLOW"
)

// Signed returns amount with the sign implied by the transaction type.
func (t TransactionType) Signed(amount decimal.Decimal) decimal.Decimal {
	if t == TransactionTypeOutflow {
		return amount.Neg()
	}
	return amount
}

// Transaction is an immutable ledger entry posted against exactly one fund.
// Amount is always positive; the direction is carried by Type.
type Transaction struct {
	Base
	OrgID      uint            `gorm:"not null;index:idx_transactions_org_period,priority:1;uniqueIndex:idx_transactions_org_idempotency,priority:1" json:"org_id"`
	FundID     uint            `gorm:"not null;index" json:"fund_id"`
	Type       TransactionType `gorm:"not null" json:"type"`
	Amount     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Semester   string          `gorm:"not null;index:idx_transactions_org_period,priority:2" json:"semester"`
	SchoolYear string          `gorm:"not null;index:idx_transactions_org_period,priority:3" json:"school_year"`
	Date       time.Time       `gorm:"column:transaction_date;not null" json:"transaction_date"`

	Category             string     `json:"category"`
	Description          string     `json:"description"`
	EventName            string     `json:"event_name"`
	DocumentType         string     `json:"document_type"`
	PayeeMerchant        string     `json:"payee_merchant"`
	EvidenceNumber       string     `json:"evidence_number"`
	Duration             string     `json:"duration"`
	ActivityApprovalDate *time.Time `json:"activity_approval_date,omitempty"`
	ResolutionNumber     string     `json:"resolution_number"`
	AttachmentURL        string     `json:"attachment_url,omitempty"`
	IdempotencyKey       *string    `gorm:"size:64;uniqueIndex:idx_transactions_org_idempotency,priority:2" json:"idempotency_key,omitempty"`

	// Filled by list queries joining funds; not a column.
	SourceName string `gorm:"->;-:migration" json:"source_name,omitempty"`

	Fund         Fund         `gorm:"foreignKey:FundID" json:"-"`
	Organization Organization `gorm:"foreignKey:OrgID" json:"-"`
}

// Period returns the academic period the transaction was recorded in.
func (t *Transaction) Period() Period {
	return Period{Semester: t.Semester, SchoolYear: t.SchoolYear}
}
