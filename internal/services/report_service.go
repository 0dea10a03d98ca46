package services

import (
	"context"
	"errors"
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "fundledger/internal/errors"
	"fundledger/internal/logger"
	"fundledger/internal/models"
)

// CategoryTotal is the sum of one category's transactions of one type.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// PeriodTotals aggregates a set of transactions.
type PeriodTotals struct {
	InflowTotal        decimal.Decimal `json:"inflow_total"`
	OutflowTotal       decimal.Decimal `json:"outflow_total"`
	Balance            decimal.Decimal `json:"balance"`
	InflowsByCategory  []CategoryTotal `json:"inflows_by_category"`
	OutflowsByCategory []CategoryTotal `json:"outflows_by_category"`
	TransactionCount   int             `json:"transaction_count"`
}

// FundBalance is a fund's stored balance as reported in a period summary.
type FundBalance struct {
	FundID     uint            `json:"fund_id"`
	SourceName string          `json:"source_name"`
	Balance    decimal.Decimal `json:"balance"`
}

// PeriodSummary is the report for one organization and period.
type PeriodSummary struct {
	OrgID               uint            `json:"org_id"`
	Period              models.Period   `json:"period"`
	Totals              PeriodTotals    `json:"totals"`
	Funds               []FundBalance   `json:"funds"`
	FundTotal           decimal.Decimal `json:"fund_total"`
	OrganizationBalance decimal.Decimal `json:"organization_balance"`
}

// FundReconciliation compares a fund's stored balance with the net of its log.
type FundReconciliation struct {
	FundID     uint            `json:"fund_id"`
	SourceName string          `json:"source_name"`
	Stored     decimal.Decimal `json:"stored"`
	Computed   decimal.Decimal `json:"computed"`
	Difference decimal.Decimal `json:"difference"`
	InSync     bool            `json:"in_sync"`
	Repaired   bool            `json:"repaired,omitempty"`
}

// SummarizeTransactions totals inflows and outflows, overall and per category.
// Transactions with an unknown type are ignored.
func SummarizeTransactions(transactions []models.Transaction) PeriodTotals {
	totals := PeriodTotals{
		InflowTotal:  decimal.Zero,
		OutflowTotal: decimal.Zero,
	}
	inflows := map[string]decimal.Decimal{}
	outflows := map[string]decimal.Decimal{}

	for _, t := range transactions {
		switch t.Type {
		case models.TransactionTypeInflow:
			totals.InflowTotal = totals.InflowTotal.Add(t.Amount)
			inflows[t.Category] = inflows[t.Category].Add(t.Amount)
		case models.TransactionTypeOutflow:
			totals.OutflowTotal = totals.OutflowTotal.Add(t.Amount)
			outflows[t.Category] = outflows[t.Category].Add(t.Amount)
		default:
			continue
		}
		totals.TransactionCount++
	}

	totals.Balance = totals.InflowTotal.Sub(totals.OutflowTotal)
	totals.InflowsByCategory = categoryTotals(inflows)
	totals.OutflowsByCategory = categoryTotals(outflows)
	return totals
}

// SumByFund returns the net signed amount per fund id.
func SumByFund(transactions []models.Transaction) map[uint]decimal.Decimal {
	sums := make(map[uint]decimal.Decimal)
	for _, t := range transactions {
		sums[t.FundID] = sums[t.FundID].Add(t.Type.Signed(t.Amount))
	}
	return sums
}

func categoryTotals(m map[string]decimal.Decimal) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(m))
	for category, total := range m {
		out = append(out, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// reportService computes period reports and reconciles fund balances.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// GetPeriodSummary aggregates the period's transactions and lists the stored
// fund balances. Reading a summary never seeds funds.
func (s *reportService) GetPeriodSummary(ctx context.Context, orgID uint, period models.Period) (*PeriodSummary, error) {
	period = models.NewPeriod(period.Semester, period.SchoolYear)
	if !period.IsComplete() {
		return nil, apperrors.ErrPeriodRequired
	}

	db := s.db.WithContext(ctx)

	var org models.Organization
	if err := db.First(&org, orgID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	transactions, err := periodTransactions(db, orgID, period)
	if err != nil {
		return nil, err
	}

	var funds []models.Fund
	if err := periodFunds(db, orgID, period).Find(&funds).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &PeriodSummary{
		OrgID:               orgID,
		Period:              period,
		Totals:              SummarizeTransactions(transactions),
		Funds:               make([]FundBalance, 0, len(funds)),
		FundTotal:           decimal.Zero,
		OrganizationBalance: org.CurrentBalance,
	}
	for _, f := range funds {
		summary.Funds = append(summary.Funds, FundBalance{FundID: f.ID, SourceName: f.SourceName, Balance: f.Balance})
		summary.FundTotal = summary.FundTotal.Add(f.Balance)
	}
	return summary, nil
}

// GetReportTransactions returns the period's transactions oldest first with fund names.
func (s *reportService) GetReportTransactions(ctx context.Context, orgID uint, period models.Period) ([]models.Transaction, error) {
	period = models.NewPeriod(period.Semester, period.SchoolYear)
	if !period.IsComplete() {
		return nil, apperrors.ErrPeriodRequired
	}

	var transactions []models.Transaction
	err := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("transactions.*, funds.source_name AS source_name").
		Joins("LEFT JOIN funds ON funds.id = transactions.fund_id").
		Where("transactions.org_id = ? AND transactions.semester = ? AND transactions.school_year = ?",
			orgID, period.Semester, period.SchoolYear).
		Order("transactions.transaction_date ASC, transactions.id ASC").
		Find(&transactions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// ReconcileFunds compares every fund of the period with the net of the
// transactions posted against it. It does not write.
func (s *reportService) ReconcileFunds(ctx context.Context, orgID uint, period models.Period) ([]FundReconciliation, error) {
	period = models.NewPeriod(period.Semester, period.SchoolYear)
	if !period.IsComplete() {
		return nil, apperrors.ErrPeriodRequired
	}

	db := s.db.WithContext(ctx)
	if err := ensureOrganization(db, orgID); err != nil {
		return nil, err
	}

	var funds []models.Fund
	if err := periodFunds(db, orgID, period).Find(&funds).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return reconcileWithDB(db, funds)
}

// RepairFunds rewrites each out-of-sync fund balance of the period from the
// transaction log. The funds stay locked until the rewrite commits so no
// posting interleaves with it.
func (s *reportService) RepairFunds(ctx context.Context, orgID uint, period models.Period) ([]FundReconciliation, error) {
	period = models.NewPeriod(period.Semester, period.SchoolYear)
	if !period.IsComplete() {
		return nil, apperrors.ErrPeriodRequired
	}

	var result []FundReconciliation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureOrganization(tx, orgID); err != nil {
			return err
		}

		var funds []models.Fund
		if err := periodFunds(tx, orgID, period).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Find(&funds).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		recs, err := reconcileWithDB(tx, funds)
		if err != nil {
			return err
		}

		for i := range recs {
			if recs[i].InSync {
				continue
			}
			if err := tx.Model(&models.Fund{}).
				Where("id = ?", recs[i].FundID).
				Update("balance", recs[i].Computed).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			logger.ForOrg(orgID).Warnw("repaired fund balance",
				"fund_id", recs[i].FundID,
				"stored", recs[i].Stored.StringFixed(2),
				"computed", recs[i].Computed.StringFixed(2),
			)
			recs[i].Repaired = true
		}
		result = recs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func reconcileWithDB(db *gorm.DB, funds []models.Fund) ([]FundReconciliation, error) {
	recs := make([]FundReconciliation, 0, len(funds))
	if len(funds) == 0 {
		return recs, nil
	}

	ids := make([]uint, 0, len(funds))
	for _, f := range funds {
		ids = append(ids, f.ID)
	}

	var transactions []models.Transaction
	if err := db.Where("fund_id IN ?", ids).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	sums := SumByFund(transactions)

	for _, f := range funds {
		computed := sums[f.ID]
		recs = append(recs, FundReconciliation{
			FundID:     f.ID,
			SourceName: f.SourceName,
			Stored:     f.Balance,
			Computed:   computed,
			Difference: f.Balance.Sub(computed),
			InSync:     f.Balance.Equal(computed),
		})
	}
	return recs, nil
}

func periodTransactions(db *gorm.DB, orgID uint, period models.Period) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := db.Where("org_id = ? AND semester = ? AND school_year = ?", orgID, period.Semester, period.SchoolYear).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}
