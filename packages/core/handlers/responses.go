package handlers

import (
	"errors"
	"net/http"
	"strconv"

	authMiddleware "roster-api/packages/auth/middleware"
	apperrors "roster-api/packages/core/errors"
	"roster-api/packages/core/validation"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string              `json:"error" example:"PlayerStatistic validation failed on 1 field(s)"`
	Fields map[string][]string `json:"fields,omitempty"`
}

func respondError(c *gin.Context, err error) {
	var domainErr *apperrors.Error
	if !errors.As(err, &domainErr) {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("unexpected error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	status := domainErr.HTTPStatus()
	if status == http.StatusInternalServerError {
		log.Error().
			Err(domainErr.Cause).
			Str("operation", domainErr.Operation).
			Str("entity", domainErr.Entity).
			Str("path", c.FullPath()).
			Msg("persistence failure")
		c.JSON(status, ErrorResponse{Error: "Internal server error"})
		return
	}

	if domainErr.Code == apperrors.CodeValidationFailed {
		log.Debug().
			Str("entity", domainErr.Entity).
			Strs("fields", validation.Errors(domainErr.Fields).Fields()).
			Str("path", c.FullPath()).
			Msg("validation failed")
	}
	c.JSON(status, ErrorResponse{Error: domainErr.Error(), Fields: domainErr.Fields})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// invalidField reports a single malformed field the way validation failures are reported.
func invalidField(c *gin.Context, entity, field string, err error) {
	respondError(c, apperrors.ValidationFailed(entity, map[string][]string{field: {err.Error()}}))
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func actor(c *gin.Context) (string, bool) {
	a, ok := authMiddleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return a, true
}
