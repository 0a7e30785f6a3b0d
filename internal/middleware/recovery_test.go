package middleware

import (
	"fmt"
	"net/http"
	"syscall"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "budgetplaner/internal/errors"
)

func TestRecovery(t *testing.T) {
	t.Run("panic_becomes_internal_error", func(t *testing.T) {
		r := gin.New()
		r.Use(Recovery())
		r.GET("/test", func(c *gin.Context) { panic("boom") })

		rec := doRequest(r, http.MethodGet, nil)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rec.Code)
		}
		if code := errorCode(t, rec); code != "INTERNAL_ERROR" {
			t.Errorf("error code = %q, want INTERNAL_ERROR", code)
		}
	})

	t.Run("broken_pipe_writes_nothing", func(t *testing.T) {
		r := gin.New()
		r.Use(Recovery())
		r.GET("/test", func(c *gin.Context) {
			panic(fmt.Errorf("write tcp: %w", syscall.EPIPE))
		})

		rec := doRequest(r, http.MethodGet, nil)
		if rec.Body.Len() != 0 {
			t.Errorf("expected empty body, got %s", rec.Body.String())
		}
	})
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"app_error", apperrors.ErrBudgetNotFound, http.StatusNotFound, "BUDGET_NOT_FOUND"},
		{"wrapped_app_error", fmt.Errorf("load: %w", apperrors.ErrTemplateNotFound), http.StatusNotFound, "TEMPLATE_NOT_FOUND"},
		{"unexpected_error", fmt.Errorf("disk full"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(ErrorHandler())
			r.GET("/test", func(c *gin.Context) { _ = c.Error(tt.err) })

			rec := doRequest(r, http.MethodGet, nil)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if code := errorCode(t, rec); code != tt.wantCode {
				t.Errorf("error code = %q, want %q", code, tt.wantCode)
			}
		})
	}

	t.Run("field_errors_are_included", func(t *testing.T) {
		r := gin.New()
		r.Use(ErrorHandler())
		r.GET("/test", func(c *gin.Context) {
			_ = c.Error(apperrors.WithFields(apperrors.ErrValidation, "", map[string]string{"name": "This field is required"}))
		})

		rec := doRequest(r, http.MethodGet, nil)
		errObj := parseBody(t, rec)["error"].(map[string]interface{})
		fields, ok := errObj["fields"].(map[string]interface{})
		if !ok || fields["name"] != "This field is required" {
			t.Errorf("unexpected error body %v", errObj)
		}
	})
}

func TestRequestLogging(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogging())
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, RequestID(c))
	})

	t.Run("generates_request_id", func(t *testing.T) {
		rec := doRequest(r, http.MethodGet, nil)
		id := rec.Header().Get("X-Request-ID")
		if id == "" || rec.Body.String() != id {
			t.Errorf("expected request id in header and context, got %q / %q", id, rec.Body.String())
		}
	})

	t.Run("reuses_incoming_request_id", func(t *testing.T) {
		rec := doRequest(r, http.MethodGet, map[string]string{"X-Request-ID": "abc-123"})
		if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
			t.Errorf("X-Request-ID = %q, want abc-123", got)
		}
	})
}
