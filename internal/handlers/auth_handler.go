package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fundledger/internal/errors"
	"fundledger/internal/middleware"
	"fundledger/internal/services"
)

// AuthHandler handles organization login.
type AuthHandler struct {
	orgService   services.OrganizationServicer
	auditService services.AuditServicer
	jwtSecret    string
	tokenTTL     time.Duration
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(orgService services.OrganizationServicer, auditService services.AuditServicer, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		orgService:   orgService,
		auditService: auditService,
		jwtSecret:    jwtSecret,
		tokenTTL:     tokenTTL,
	}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=128"`
}

// LoginResponse represents the authentication response with token
type LoginResponse struct {
	Token    string `json:"token"`
	OrgID    uint   `json:"org_id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// Login handles organization login
// @Summary     Login organization
// @Description Authenticate an organization and get a token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "Organization credentials"
// @Success     200 {object} LoginResponse "Organization authenticated and token generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	org, err := h.orgService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateAccessToken(org, h.jwtSecret, h.tokenTTL)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.auditService.Log(org.ID, services.AuditActionLogin, services.AuditResourceOrganization, org.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, LoginResponse{
		Token:    token,
		OrgID:    org.ID,
		Username: org.Username,
		FullName: org.FullName,
	})
}
