package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "fundledger/internal/errors"
	"fundledger/internal/logger"
	"fundledger/internal/models"
	"fundledger/internal/pagination"
)

const maxIdempotencyKeyLength = 64

// transactionService posts transactions against period funds and reads the log.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// PostTransaction validates and posts one inflow or outflow. The fund row is
// locked for the duration of the database transaction, so the sufficiency
// check and the balance update see the same balance. Fund balance, the log
// entry and the organization balance are written together or not at all.
//
// An unconfirmed outflow larger than the fund balance returns
// *apperrors.DeficitError and writes nothing.
func (s *transactionService) PostTransaction(ctx context.Context, in PostTransactionInput) (*PostResult, error) {
	if in.FundID == 0 {
		return nil, apperrors.ErrFundRequired
	}
	if in.OrgID == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "organization ID is required")
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if len(key) > maxIdempotencyKeyLength {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "idempotency key must be at most 64 characters")
	}

	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	var result *PostResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		result, txErr = s.postWithDB(tx, in, key)
		return txErr
	})
	if err != nil {
		if key != "" && errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent request with the same key committed first.
			return s.replayAfterConflict(ctx, in, key)
		}
		return nil, err
	}
	return result, nil
}

// lockFund scopes tx to one fund row read with SELECT ... FOR UPDATE. A
// concurrent posting to the same fund blocks until tx commits.
func lockFund(tx *gorm.DB, id uint) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id)
}

// postWithDB runs the posting steps on an open database transaction.
func (s *transactionService) postWithDB(tx *gorm.DB, in PostTransactionInput, key string) (*PostResult, error) {
	var fund models.Fund
	if err := lockFund(tx, in.FundID).First(&fund).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFundNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if fund.OrgID != in.OrgID {
		return nil, apperrors.ErrFundNotFound
	}

	period := models.NewPeriod(in.Period.Semester, in.Period.SchoolYear)
	if !period.IsComplete() {
		return nil, apperrors.ErrPeriodRequired
	}
	if period != fund.Period() {
		return nil, apperrors.WithMessage(apperrors.ErrFundPeriodMismatch, fmt.Sprintf(
			"Fund mismatch: This fund belongs to %s, but you are adding to %s.", fund.Period(), period))
	}

	amount, err := models.ParseAmount(in.Amount)
	if err != nil {
		return nil, apperrors.ErrInvalidAmount
	}
	txType, ok := models.ParseTransactionType(in.Type)
	if !ok {
		return nil, apperrors.ErrInvalidTransactionType
	}

	if key != "" {
		replay, err := findReplay(tx, in.OrgID, key, fund.ID, txType, amount)
		if err != nil || replay != nil {
			return replay, err
		}
	}

	balance := fund.Balance
	if txType == models.TransactionTypeOutflow && amount.GreaterThan(balance) && !in.ConfirmedDeficit {
		logger.ForOrg(in.OrgID).Infow("deficit confirmation required",
			"fund_id", fund.ID,
			"balance", balance.StringFixed(2),
			"amount", amount.StringFixed(2),
		)
		return nil, apperrors.NewDeficitError(fund.ID, fund.SourceName, balance, amount)
	}

	signed := txType.Signed(amount)
	newBalance := balance.Add(signed)

	if err := tx.Model(&fund).Update("balance", newBalance).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	transaction := &models.Transaction{
		OrgID:                in.OrgID,
		FundID:               fund.ID,
		Type:                 txType,
		Amount:               amount,
		Semester:             fund.Semester,
		SchoolYear:           fund.SchoolYear,
		Date:                 in.Date,
		Category:             in.Details.Category,
		Description:          in.Details.Description,
		EventName:            in.Details.EventName,
		DocumentType:         in.Details.DocumentType,
		PayeeMerchant:        in.Details.PayeeMerchant,
		EvidenceNumber:       in.Details.EvidenceNumber,
		Duration:             in.Details.Duration,
		ActivityApprovalDate: in.Details.ActivityApprovalDate,
		ResolutionNumber:     in.Details.ResolutionNumber,
		AttachmentURL:        in.Details.AttachmentURL,
	}
	if key != "" {
		transaction.IdempotencyKey = &key
	}
	if err := tx.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	transaction.SourceName = fund.SourceName

	res := tx.Model(&models.Organization{}).
		Where("id = ?", in.OrgID).
		Update("current_balance", gorm.Expr("current_balance + ?", signed))
	if res.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrOrganizationNotFound
	}

	logger.ForOrg(in.OrgID).Infow("transaction posted",
		"fund_id", fund.ID,
		"transaction_id", transaction.ID,
		"type", txType,
		"amount", amount.StringFixed(2),
		"fund_balance", newBalance.StringFixed(2),
	)

	return &PostResult{
		Transaction: transaction,
		FundBalance: newBalance,
		Deficit:     newBalance.IsNegative(),
	}, nil
}

// findReplay looks up an earlier posting with the same idempotency key. It
// returns nil when the key is unused.
func findReplay(db *gorm.DB, orgID uint, key string, fundID uint, txType models.TransactionType, amount decimal.Decimal) (*PostResult, error) {
	var existing models.Transaction
	err := db.Where("org_id = ? AND idempotency_key = ?", orgID, key).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if existing.FundID != fundID || existing.Type != txType || !existing.Amount.Equal(amount) {
		return nil, apperrors.ErrIdempotencyKeyReused
	}

	var fund models.Fund
	if err := db.First(&fund, existing.FundID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	existing.SourceName = fund.SourceName

	return &PostResult{
		Transaction: &existing,
		FundBalance: fund.Balance,
		Deficit:     fund.InDeficit(),
		Replayed:    true,
	}, nil
}

func (s *transactionService) replayAfterConflict(ctx context.Context, in PostTransactionInput, key string) (*PostResult, error) {
	amount, err := models.ParseAmount(in.Amount)
	if err != nil {
		return nil, apperrors.ErrInvalidAmount
	}
	txType, ok := models.ParseTransactionType(in.Type)
	if !ok {
		return nil, apperrors.ErrInvalidTransactionType
	}

	replay, err := findReplay(s.db.WithContext(ctx), in.OrgID, key, in.FundID, txType, amount)
	if err != nil {
		return nil, err
	}
	if replay == nil {
		return nil, apperrors.ErrInternalServer
	}
	return replay, nil
}

// ListTransactions returns the organization's transactions, newest first, each
// carrying its fund's source name. Pagination applies only when requested;
// the total is the number of matching rows.
func (s *transactionService) ListTransactions(ctx context.Context, orgID uint, filter TransactionFilter, page pagination.PageRequest) ([]models.Transaction, int64, error) {
	if orgID == 0 {
		return nil, 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "organization ID is required")
	}

	base := s.db.WithContext(ctx).Model(&models.Transaction{}).Where("transactions.org_id = ?", orgID)
	base = applyTransactionFilters(base, filter).Session(&gorm.Session{})

	q := base.Select("transactions.*, funds.source_name AS source_name").
		Joins("LEFT JOIN funds ON funds.id = transactions.fund_id").
		Order("transactions.transaction_date DESC, transactions.id DESC")

	var total int64
	if page.Requested() {
		page.Defaults()
		if err := base.Count(&total).Error; err != nil {
			return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		q = q.Scopes(pagination.Paginate(page))
	}

	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !page.Requested() {
		total = int64(len(transactions))
	}
	return transactions, total, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.Period != nil {
		q = q.Where("transactions.semester = ? AND transactions.school_year = ?", f.Period.Semester, f.Period.SchoolYear)
	}
	if f.Type != nil {
		q = q.Where("transactions.type = ?", *f.Type)
	}
	if f.FundID != nil {
		q = q.Where("transactions.fund_id = ?", *f.FundID)
	}
	return q
}
