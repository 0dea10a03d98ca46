package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fundledger/internal/config"
	"fundledger/internal/handlers"
	"fundledger/internal/logger"
	"fundledger/internal/middleware"
	"fundledger/internal/models"
	"fundledger/internal/services"
	"fundledger/internal/testutil"
	"fundledger/internal/validator"
)

const (
	testJWTSecret   = "integration-secret-key-at-least-32-chars"
	testMaintenance = "maintenance-key"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates the full API stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	// Services
	orgService := services.NewOrganizationService(db)
	fundService := services.NewFundService(db, config.DefaultFundSources)
	transactionService := services.NewTransactionService(db)
	reportService := services.NewReportService(db)
	auditService := services.NewAuditService(db)

	// Router
	router := gin.New()
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	handlers.RegisterRoutes(router, handlers.Handlers{
		Auth:         handlers.NewAuthHandler(orgService, auditService, testJWTSecret, time.Hour),
		Funds:        handlers.NewFundHandler(fundService, reportService, auditService),
		Transactions: handlers.NewTransactionHandler(transactionService, auditService, t.TempDir(), 5<<20),
		Reports:      handlers.NewReportHandler(reportService),
	}, handlers.RouteConfig{
		JWTSecret:         testJWTSecret,
		MaintenanceAPIKey: testMaintenance,
	})

	return &testApp{DB: db, Router: router}
}

// newRequest builds a request carrying the bearer token.
func (app *testApp) newRequest(method, path, token string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// serve runs req through the router.
func (app *testApp) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// request makes a JSON request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return app.serve(req)
}

// postForm submits a urlencoded form, the way the browser client posts transactions.
func (app *testApp) postForm(path string, form url.Values, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)
	return app.serve(req)
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// parseJSONArray parses the response body into a slice of objects.
func parseJSONArray(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var result []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func errorCode(result map[string]interface{}) interface{} {
	errObj, _ := result["error"].(map[string]interface{})
	return errObj["code"]
}

// assertDecimal compares a JSON decimal string with want numerically.
func assertDecimal(t *testing.T, got interface{}, want string) {
	t.Helper()
	s, ok := got.(string)
	if !ok {
		t.Fatalf("expected decimal string, got %T %v", got, got)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", s, err)
	}
	if !d.Equal(decimal.RequireFromString(want)) {
		t.Errorf("expected %s, got %s", want, s)
	}
}

// newOrganization creates an organization and returns it with a login token.
func (app *testApp) newOrganization(t *testing.T) (*models.Organization, string) {
	t.Helper()
	org := testutil.CreateTestOrganization(t, app.DB)
	return org, app.login(t, org.Username, testutil.TestPassword)
}

// login authenticates an organization and returns the access token.
func (app *testApp) login(t *testing.T, username, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := app.request("POST", "/api/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["token"].(string)
}

// periodQuery renders the period as a query string.
func periodQuery(p models.Period) string {
	return url.Values{"semester": {p.Semester}, "school_year": {p.SchoolYear}}.Encode()
}

// periodFunds lists (and seeds) the organization's funds for the period.
func (app *testApp) periodFunds(t *testing.T, orgID uint, p models.Period, token string) []map[string]interface{} {
	t.Helper()
	rec := app.request("GET", fmt.Sprintf("/api/funds/%d?%s", orgID, periodQuery(p)), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("get funds failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSONArray(t, rec)
}

// fundByName returns the fund named name from a fund list.
func fundByName(t *testing.T, funds []map[string]interface{}, name string) map[string]interface{} {
	t.Helper()
	for _, f := range funds {
		if f["source_name"] == name {
			return f
		}
	}
	t.Fatalf("fund %q not found in %v", name, funds)
	return nil
}

// postingForm builds the form fields of a posting.
func postingForm(fundID float64, txType, amount string, p models.Period) url.Values {
	return url.Values{
		"fund_id":     {fmt.Sprintf("%.0f", fundID)},
		"type":        {txType},
		"amount":      {amount},
		"semester":    {p.Semester},
		"school_year": {p.SchoolYear},
	}
}
