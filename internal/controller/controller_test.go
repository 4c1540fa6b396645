package controller

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizforge/internal/auth"
	"github.com/lshigami/quizforge/internal/model"
	"github.com/lshigami/quizforge/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrQuizNotFound, http.StatusNotFound},
		{service.ErrNotFound, http.StatusNotFound},
		{service.ErrQuizNotAvailable, http.StatusUnprocessableEntity},
		{service.ErrForbidden, http.StatusForbidden},
		{service.ErrUnauthorized, http.StatusUnauthorized},
		{fmt.Errorf("%w: bad title", service.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("%w: taken", service.ErrConflict), http.StatusConflict},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestParseID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "quiz_id", Value: "not-a-uuid"}}
	_, ok := ParseID(c, "quiz_id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "quiz_id", Value: "0b9f6d0e-1c1a-4b7e-9a57-9c7fd1f3b8a2"}}
	id, ok := ParseID(c, "quiz_id")
	assert.True(t, ok)
	assert.Equal(t, "0b9f6d0e-1c1a-4b7e-9a57-9c7fd1f3b8a2", id.String())
}

func TestRequireUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	_, ok := RequireUser(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	auth.SetCurrentUser(c, &model.User{Username: "ann"})
	user, ok := RequireUser(c)
	assert.True(t, ok)
	assert.Equal(t, "ann", user.Username)
}

func TestRespondError_HidesInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondError(c, errors.New("pq: connection refused"), "Failed to retrieve quizzes")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Failed to retrieve quizzes"}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	RespondError(c, service.ErrQuizNotAvailable, "Failed to submit quiz")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"message":"`+service.ErrQuizNotAvailable.Error()+`"}`, w.Body.String())
}
