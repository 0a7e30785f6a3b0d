package handlers

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	apperrors "budgetplaner/internal/errors"
	"budgetplaner/internal/logger"
	"budgetplaner/internal/pagination"
	"budgetplaner/internal/uuid"
	"budgetplaner/internal/validator"
)

// parsePathID parses a UUID path parameter.
// Returns ErrInvalidInput if the parameter is not a valid UUID.
func parsePathID(c *gin.Context, param string) (string, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// parseQueryID parses an optional UUID query parameter. An absent parameter
// yields "".
func parseQueryID(c *gin.Context, param string) (string, error) {
	raw := c.Query(param)
	if raw == "" {
		return "", nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", apperrors.WithFields(apperrors.ErrValidation, "", map[string]string{param: "Must be a valid id"})
	}
	return id, nil
}

// parseQueryInt parses an optional integer query parameter within [lo, hi].
func parseQueryInt(c *gin.Context, param string, lo, hi int) (*int, error) {
	raw := c.Query(param)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || n > hi {
		return nil, apperrors.WithFields(apperrors.ErrValidation, "",
			map[string]string{param: "Must be a number between " + strconv.Itoa(lo) + " and " + strconv.Itoa(hi)})
	}
	return &n, nil
}

// parseYear reads ?year=, defaulting to the current year.
func parseYear(c *gin.Context) (int, error) {
	year, err := parseQueryInt(c, "year", 2000, 2100)
	if err != nil {
		return 0, err
	}
	if year == nil {
		return time.Now().Year(), nil
	}
	return *year, nil
}

// parseMonth reads the :month path parameter.
func parseMonth(c *gin.Context) (int, error) {
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, apperrors.WithFields(apperrors.ErrValidation, "", map[string]string{"month": "Must be a number between 1 and 12"})
	}
	return month, nil
}

// bindJSON binds the request body into req. Validation failures become a
// VALIDATION_ERROR carrying per-field messages; malformed bodies become
// INVALID_INPUT.
func bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		if fields := validator.FieldErrors(err); fields != nil {
			return apperrors.WithFields(apperrors.ErrValidation, "", fields)
		}
		return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return nil
}

// bindJSONNulls binds like bindJSON and also reports which top-level keys
// were sent as an explicit JSON null.
func bindJSONNulls(c *gin.Context, req interface{}) (map[string]bool, error) {
	if err := c.ShouldBindBodyWith(req, binding.JSON); err != nil {
		if fields := validator.FieldErrors(err); fields != nil {
			return nil, apperrors.WithFields(apperrors.ErrValidation, "", fields)
		}
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}

	body, _ := c.Get(gin.BodyBytesKey)
	raw, _ := body.([]byte)
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	nulls := make(map[string]bool)
	for key, value := range keys {
		if string(value) == "null" {
			nulls[key] = true
		}
	}
	return nulls, nil
}

// bindPage binds page and page_size query parameters.
func bindPage(c *gin.Context) (pagination.PageRequest, error) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		if fields := validator.FieldErrors(err); fields != nil {
			return page, apperrors.WithFields(apperrors.ErrValidation, "", fields)
		}
		return page, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return page, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, message and fields.
// Otherwise it logs the unexpected error and returns a generic internal
// server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		body := gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		}
		if len(appErr.Fields) > 0 {
			body["fields"] = appErr.Fields
		}
		c.JSON(appErr.StatusCode, gin.H{"error": body})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}
