package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"budgetplaner/internal/logger"
	"budgetplaner/internal/uuid"
	"budgetplaner/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
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

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// assertFieldError checks that a VALIDATION_ERROR response names field.
func assertFieldError(t *testing.T, result map[string]interface{}, field string) {
	t.Helper()
	assertErrorCode(t, result, "VALIDATION_ERROR")
	errObj := result["error"].(map[string]interface{})
	fields, ok := errObj["fields"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected fields in error, got: %v", errObj)
	}
	if _, ok := fields[field]; !ok {
		t.Errorf("expected field %q in %v", field, fields)
	}
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func TestRespondWithError(t *testing.T) {
	t.Run("hides unexpected errors", func(t *testing.T) {
		r := gin.New()
		r.GET("/boom", func(c *gin.Context) {
			respondWithError(c, http.ErrHandlerTimeout)
		})

		rec := doRequest(r, http.MethodGet, "/boom", "")
		assertStatus(t, rec, http.StatusInternalServerError)
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "INTERNAL_ERROR")
		if strings.Contains(rec.Body.String(), "timeout") {
			t.Errorf("internal error leaked: %s", rec.Body.String())
		}
	})
}

func TestParseHelpers(t *testing.T) {
	r := gin.New()
	r.GET("/items/:id/monthly/:month", func(c *gin.Context) {
		if _, err := parsePathID(c, "id"); err != nil {
			respondWithError(c, err)
			return
		}
		if _, err := parseMonth(c); err != nil {
			respondWithError(c, err)
			return
		}
		year, err := parseYear(c)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"year": year})
	})

	t.Run("accepts valid parameters", func(t *testing.T) {
		rec := doRequest(r, http.MethodGet, "/items/"+uuid.New()+"/monthly/12?year=2030", "")
		assertStatus(t, rec, http.StatusOK)
		if parseJSON(t, rec)["year"] != float64(2030) {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
	})

	tests := []struct {
		name string
		path string
		code string
	}{
		{"malformed id", "/items/42/monthly/1", "INVALID_INPUT"},
		{"month out of range", "/items/" + uuid.New() + "/monthly/13", "VALIDATION_ERROR"},
		{"year out of range", "/items/" + uuid.New() + "/monthly/1?year=1999", "VALIDATION_ERROR"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(r, http.MethodGet, tc.path, "")
			assertStatus(t, rec, http.StatusBadRequest)
			assertErrorCode(t, parseJSON(t, rec), tc.code)
		})
	}
}
