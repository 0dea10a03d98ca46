package services

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fundledger/internal/config"
	apperrors "fundledger/internal/errors"
	"fundledger/internal/logger"
	"fundledger/internal/models"
)

// fundService handles the period-scoped fund store.
type fundService struct {
	db           *gorm.DB
	defaultFunds []string
}

// NewFundService creates a new FundServicer. An empty defaultFunds list
// falls back to config.DefaultFundSources.
func NewFundService(db *gorm.DB, defaultFunds []string) FundServicer {
	names := make([]string, 0, len(defaultFunds))
	for _, name := range defaultFunds {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		names = append(names, config.DefaultFundSources...)
	}
	return &fundService{db: db, defaultFunds: names}
}

// GetPeriodFunds returns the organization's funds for the period ordered by id.
// The first read of a period seeds one zero-balance fund per default name.
func (s *fundService) GetPeriodFunds(ctx context.Context, orgID uint, period models.Period) ([]models.Fund, error) {
	if orgID == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "organization ID is required")
	}
	period = models.NewPeriod(period.Semester, period.SchoolYear)
	if !period.IsComplete() {
		return nil, apperrors.ErrPeriodRequired
	}

	var funds []models.Fund
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := periodFunds(tx, orgID, period).Find(&funds).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if len(funds) > 0 {
			return nil
		}

		if err := ensureOrganization(tx, orgID); err != nil {
			return err
		}

		if err := s.seedWithDB(tx, orgID, period); err != nil {
			return err
		}

		if err := periodFunds(tx, orgID, period).Find(&funds).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return funds, nil
}

// seedWithDB inserts the default funds for the period, skipping any that a
// concurrent request already created.
func (s *fundService) seedWithDB(tx *gorm.DB, orgID uint, period models.Period) error {
	seeds := make([]models.Fund, 0, len(s.defaultFunds))
	for _, name := range s.defaultFunds {
		seeds = append(seeds, models.Fund{
			OrgID:      orgID,
			SourceName: name,
			Semester:   period.Semester,
			SchoolYear: period.SchoolYear,
		})
	}

	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "org_id"}, {Name: "source_name"}, {Name: "semester"}, {Name: "school_year"},
		},
		DoNothing: true,
	}).Create(&seeds).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.ForOrg(orgID).Infow("seeded period funds",
		"semester", period.Semester,
		"school_year", period.SchoolYear,
		"count", len(seeds),
	)
	return nil
}

func periodFunds(tx *gorm.DB, orgID uint, period models.Period) *gorm.DB {
	return tx.Where("org_id = ? AND semester = ? AND school_year = ?", orgID, period.Semester, period.SchoolYear).
		Order("id ASC")
}

func ensureOrganization(tx *gorm.DB, orgID uint) error {
	var count int64
	if err := tx.Model(&models.Organization{}).Where("id = ?", orgID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrOrganizationNotFound
	}
	return nil
}
