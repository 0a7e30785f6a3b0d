package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"budgetplaner/internal/config"
	"budgetplaner/internal/logger"
	"budgetplaner/internal/testutil"
	"budgetplaner/internal/validator"
)

// testApp holds the full application stack for router tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	apiKey string
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates the full router backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	return setupAppWithKey(t, "")
}

func setupAppWithKey(t *testing.T, apiKey string) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	cfg := &config.Config{
		APIKey:             apiKey,
		CORSAllowedOrigins: []string{"http://localhost:5173"},
	}
	return &testApp{DB: db, Router: NewRouter(db, cfg), apiKey: apiKey}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if app.apiKey != "" {
		req.Header.Set("X-API-Key", app.apiKey)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// mustRequest performs the request, checks the status and returns the body.
func (app *testApp) mustRequest(t *testing.T, method, path, body string, wantStatus int) map[string]interface{} {
	t.Helper()
	rec := app.request(method, path, body)
	if rec.Code != wantStatus {
		t.Fatalf("%s %s: expected %d, got %d: %s", method, path, wantStatus, rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)
}

// create posts body and returns the object under key.
func (app *testApp) create(t *testing.T, path, body, key string) map[string]interface{} {
	t.Helper()
	return app.mustRequest(t, http.MethodPost, path, body, http.StatusCreated)[key].(map[string]interface{})
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

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	errObj, ok := parseJSON(t, rec)["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object, got %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}
