package models

import "github.com/shopspring/decimal"

// Fund is a named bucket of money for one organization and one period.
// Balance is the net of all transactions posted against the fund.
type Fund struct {
	Base
	OrgID      uint            `gorm:"not null;uniqueIndex:idx_funds_org_source_period,priority:1" json:"org_id"`
	SourceName string          `gorm:"not null;uniqueIndex:idx_funds_org_source_period,priority:2" json:"source_name"`
	Semester   string          `gorm:"not null;uniqueIndex:idx_funds_org_source_period,priority:3" json:"semester"`
	SchoolYear string          `gorm:"not null;uniqueIndex:idx_funds_org_source_period,priority:4" json:"school_year"`
	Balance    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"balance"`

	Organization Organization `gorm:"foreignKey:OrgID" json:"-"`
}

// Period returns the academic period the fund belongs to.
func (f *Fund) Period() Period {
	return Period{Semester: f.Semester, SchoolYear: f.SchoolYear}
}

// InDeficit reports whether the fund balance is below zero.
func (f *Fund) InDeficit() bool {
	return f.Balance.IsNegative()
}
