package models

import "github.com/shopspring/decimal"

// Organization is a student organization that owns funds and transactions.
// CurrentBalance is a lifetime cash counter across all periods; it is an
// audit figure and never used to validate postings.
type Organization struct {
	Base
	Username       string          `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash   string          `gorm:"not null" json:"-"`
	FullName       string          `json:"full_name"`
	CurrentBalance decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"current_balance"`

	Funds []Fund `gorm:"foreignKey:OrgID" json:"funds,omitempty"`
}
