package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "fundledger/internal/errors"
	"fundledger/internal/models"
)

// organizationService handles organization accounts and login.
type organizationService struct {
	db *gorm.DB
}

// NewOrganizationService creates a new OrganizationServicer.
func NewOrganizationService(db *gorm.DB) OrganizationServicer {
	return &organizationService{db: db}
}

// CreateOrganization registers a new organization with a zero balance.
func (s *organizationService) CreateOrganization(ctx context.Context, username, password, fullName string) (*models.Organization, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "username and password are required")
	}

	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Organization{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateUsername
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	org := &models.Organization{
		Username:       username,
		PasswordHash:   string(hashed),
		FullName:       strings.TrimSpace(fullName),
		CurrentBalance: decimal.Zero,
	}
	if err := db.Create(org).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateUsername
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return org, nil
}

// GetOrganizationByID retrieves an organization by ID.
func (s *organizationService) GetOrganizationByID(ctx context.Context, id uint) (*models.Organization, error) {
	var org models.Organization
	if err := s.db.WithContext(ctx).First(&org, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &org, nil
}

// Authenticate checks the username and password. Unknown usernames and wrong
// passwords produce the same error.
func (s *organizationService) Authenticate(ctx context.Context, username, password string) (*models.Organization, error) {
	var org models.Organization
	err := s.db.WithContext(ctx).
		Where("username = ?", strings.ToLower(strings.TrimSpace(username))).
		First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(org.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return &org, nil
}
