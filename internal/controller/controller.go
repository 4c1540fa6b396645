// Package controller holds helpers shared by the HTTP handlers in the admin
// and user packages.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lshigami/quizforge/internal/auth"
	"github.com/lshigami/quizforge/internal/dto"
	"github.com/lshigami/quizforge/internal/model"
	"github.com/lshigami/quizforge/internal/service"
	"github.com/rs/zerolog/log"
)

// ParseID reads a UUID path parameter, answering 400 when it is malformed.
func ParseID(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return uuid.Nil, false
	}
	return id, true
}

// RequireUser returns the authenticated user or answers 401.
func RequireUser(ctx *gin.Context) (*model.User, bool) {
	user, ok := auth.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
		return nil, false
	}
	return user, true
}

// BindJSON binds the request body, answering 400 on failure.
func BindJSON(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		log.Warn().Err(err).Str("path", ctx.FullPath()).Msg("Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return false
	}
	return true
}

// StatusFor maps service errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrQuizNotFound), errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrQuizNotAvailable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as an ErrorResponse. Internal errors are logged and
// reported with the generic message only.
func RespondError(ctx *gin.Context, err error, message string) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg(message)
		ctx.JSON(status, dto.ErrorResponse{Message: message})
		return
	}
	ctx.JSON(status, dto.ErrorResponse{Message: err.Error()})
}
