package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fundledger/internal/errors"
	"fundledger/internal/middleware"
	"fundledger/internal/models"
	"fundledger/internal/validator"
)

const testJWTSecret = "test-secret-key-with-at-least-32-chars"

// --- mock services ---

type mockOrganizationService struct {
	createOrganizationFn  func(username, password, fullName string) (*models.Organization, error)
	getOrganizationByIDFn func(id uint) (*models.Organization, error)
	authenticateFn        func(username, password string) (*models.Organization, error)
}

func (m *mockOrganizationService) CreateOrganization(_ context.Context, username, password, fullName string) (*models.Organization, error) {
	if m.createOrganizationFn != nil {
		return m.createOrganizationFn(username, password, fullName)
	}
	return &models.Organization{}, nil
}

func (m *mockOrganizationService) GetOrganizationByID(_ context.Context, id uint) (*models.Organization, error) {
	if m.getOrganizationByIDFn != nil {
		return m.getOrganizationByIDFn(id)
	}
	return &models.Organization{Base: models.Base{ID: id}}, nil
}

func (m *mockOrganizationService) Authenticate(_ context.Context, username, password string) (*models.Organization, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(username, password)
	}
	return &models.Organization{Base: models.Base{ID: 1}, Username: username}, nil
}

type auditEntry struct {
	orgID      uint
	action     string
	resourceID uint
	changes    map[string]interface{}
}

type mockAuditService struct {
	entries []auditEntry
}

func (m *mockAuditService) Log(orgID uint, action, _ string, resourceID uint, _ string, changes map[string]interface{}) {
	m.entries = append(m.entries, auditEntry{orgID: orgID, action: action, resourceID: resourceID, changes: changes})
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/login", handler.Login)
	return r
}

func injectOrgID(orgID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.OrgIDKey, orgID)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func parseJSONArray(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var result []interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
	if result["success"] != false {
		t.Errorf("expected success=false, got %v", result["success"])
	}
}

// --- tests ---

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns 200 with a token carrying the org id", func(t *testing.T) {
		orgSvc := &mockOrganizationService{
			authenticateFn: func(username, password string) (*models.Organization, error) {
				if username != "cs-society" || password != "password123" {
					t.Errorf("unexpected credentials %q/%q", username, password)
				}
				return &models.Organization{Base: models.Base{ID: 7}, Username: username, FullName: "CS Society"}, nil
			},
		}
		audit := &mockAuditService{}
		handler := NewAuthHandler(orgSvc, audit, testJWTSecret, time.Hour)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{"username":"cs-society","password":"password123"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["org_id"].(float64) != 7 {
			t.Errorf("expected org_id 7, got %v", result["org_id"])
		}
		if result["full_name"] != "CS Society" {
			t.Errorf("expected full_name CS Society, got %v", result["full_name"])
		}
		token, _ := result["token"].(string)
		claims, err := middleware.ParseAccessToken(token, testJWTSecret)
		if err != nil {
			t.Fatalf("token did not parse: %v", err)
		}
		if claims.OrgID != 7 {
			t.Errorf("expected claim org_id 7, got %d", claims.OrgID)
		}
		if len(audit.entries) != 1 || audit.entries[0].action != "LOGIN" {
			t.Errorf("expected one LOGIN audit entry, got %+v", audit.entries)
		}
	})

	t.Run("returns 400 on missing password", func(t *testing.T) {
		handler := NewAuthHandler(&mockOrganizationService{}, &mockAuditService{}, testJWTSecret, time.Hour)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{"username":"cs-society"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 401 on invalid credentials", func(t *testing.T) {
		orgSvc := &mockOrganizationService{
			authenticateFn: func(_, _ string) (*models.Organization, error) {
				return nil, apperrors.ErrInvalidCredentials
			},
		}
		audit := &mockAuditService{}
		handler := NewAuthHandler(orgSvc, audit, testJWTSecret, time.Hour)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{"username":"cs-society","password":"wrong"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
		if len(audit.entries) != 0 {
			t.Errorf("failed login should not be audited, got %+v", audit.entries)
		}
	})

	t.Run("returns 500 without leaking internal errors", func(t *testing.T) {
		orgSvc := &mockOrganizationService{
			authenticateFn: func(_, _ string) (*models.Organization, error) {
				return nil, fmt.Errorf("connection refused")
			},
		}
		handler := NewAuthHandler(orgSvc, &mockAuditService{}, testJWTSecret, time.Hour)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{"username":"cs-society","password":"password123"}`)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		if strings.Contains(rec.Body.String(), "connection refused") {
			t.Error("internal error leaked into response")
		}
		assertErrorCode(t, parseJSON(t, rec), "INTERNAL_ERROR")
	})
}
