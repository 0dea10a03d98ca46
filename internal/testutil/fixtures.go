package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fundledger/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of every fixture organization.
const TestPassword = "password123"

// FirstSemester is the period most fixtures are recorded in.
var FirstSemester = models.Period{Semester: "First Semester", SchoolYear: "S.Y. 2025-2026"}

// SecondSemester is a second period of the same school year.
var SecondSemester = models.Period{Semester: "Second Semester", SchoolYear: "S.Y. 2025-2026"}

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Amount parses a decimal literal, failing the test on bad input.
func Amount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal literal %q: %v", s, err)
	}
	return d
}

// CreateTestOrganization creates an organization with a hashed password and unique username.
func CreateTestOrganization(t *testing.T, db *gorm.DB) *models.Organization {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	n := nextID()
	org := &models.Organization{
		Username:       fmt.Sprintf("org%d", n),
		PasswordHash:   string(hash),
		FullName:       fmt.Sprintf("Test Organization %d", n),
		CurrentBalance: decimal.Zero,
	}
	if err := db.Create(org).Error; err != nil {
		t.Fatalf("failed to create test organization: %v", err)
	}
	return org
}

// CreateTestOrganizationWithID creates an organization with a fixed primary key.
func CreateTestOrganizationWithID(t *testing.T, db *gorm.DB, id uint) *models.Organization {
	t.Helper()

	org := &models.Organization{
		Base:           models.Base{ID: id},
		Username:       fmt.Sprintf("org%d-%d", id, nextID()),
		PasswordHash:   "unused",
		CurrentBalance: decimal.Zero,
	}
	if err := db.Create(org).Error; err != nil {
		t.Fatalf("failed to create test organization: %v", err)
	}
	return org
}

// CreateTestFund creates a fund for the organization and period with the given balance.
// The balance is stored directly, without a backing transaction.
func CreateTestFund(t *testing.T, db *gorm.DB, orgID uint, name string, period models.Period, balance string) *models.Fund {
	t.Helper()

	fund := &models.Fund{
		OrgID:      orgID,
		SourceName: name,
		Semester:   period.Semester,
		SchoolYear: period.SchoolYear,
		Balance:    Amount(t, balance),
	}
	if err := db.Create(fund).Error; err != nil {
		t.Fatalf("failed to create test fund: %v", err)
	}
	return fund
}

// CreateTestTransaction inserts a transaction row for the fund without touching balances.
func CreateTestTransaction(t *testing.T, db *gorm.DB, fund *models.Fund, txType models.TransactionType, amount string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		OrgID:      fund.OrgID,
		FundID:     fund.ID,
		Type:       txType,
		Amount:     Amount(t, amount),
		Semester:   fund.Semester,
		SchoolYear: fund.SchoolYear,
		Date:       time.Now(),
		Category:   fmt.Sprintf("Category %d", nextID()%3),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// ReloadFund re-reads a fund from the database.
func ReloadFund(t *testing.T, db *gorm.DB, id uint) *models.Fund {
	t.Helper()

	var fund models.Fund
	if err := db.First(&fund, id).Error; err != nil {
		t.Fatalf("failed to reload fund %d: %v", id, err)
	}
	return &fund
}

// ReloadOrganization re-reads an organization from the database.
func ReloadOrganization(t *testing.T, db *gorm.DB, id uint) *models.Organization {
	t.Helper()

	var org models.Organization
	if err := db.First(&org, id).Error; err != nil {
		t.Fatalf("failed to reload organization %d: %v", id, err)
	}
	return &org
}

// CountTransactions returns the number of transactions posted against the fund.
func CountTransactions(t *testing.T, db *gorm.DB, fundID uint) int64 {
	t.Helper()

	var n int64
	if err := db.Model(&models.Transaction{}).Where("fund_id = ?", fundID).Count(&n).Error; err != nil {
		t.Fatalf("failed to count transactions: %v", err)
	}
	return n
}
