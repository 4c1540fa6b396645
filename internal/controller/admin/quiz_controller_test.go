package admin

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lshigami/quizforge/internal/auth"
	"github.com/lshigami/quizforge/internal/dto"
	"github.com/lshigami/quizforge/internal/model"
	"github.com/lshigami/quizforge/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAnalyticsService struct {
	mock.Mock
}

func (m *mockAnalyticsService) QuizAnalytics(requester *model.User, quizID uuid.UUID) (*dto.QuizAnalyticsDTO, error) {
	args := m.Called(requester, quizID)
	result, _ := args.Get(0).(*dto.QuizAnalyticsDTO)
	return result, args.Error(1)
}

func (m *mockAnalyticsService) StudentPerformance(requester *model.User, quizID, studentID uuid.UUID) (*dto.StudentPerformanceDTO, error) {
	args := m.Called(requester, quizID, studentID)
	result, _ := args.Get(0).(*dto.StudentPerformanceDTO)
	return result, args.Error(1)
}

type mockQuizService struct {
	mock.Mock
	service.QuizService
}

func (m *mockQuizService) CreateQuiz(actor *model.User, req dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	args := m.Called(actor, req)
	result, _ := args.Get(0).(*dto.QuizResponse)
	return result, args.Error(1)
}

func (m *mockQuizService) DeleteQuiz(actor *model.User, id uuid.UUID) error {
	return m.Called(actor, id).Error(0)
}

func newTestRouter(user *model.User, ctrl *QuizController) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(ctx *gin.Context) {
		auth.SetCurrentUser(ctx, user)
		ctx.Next()
	})
	router.POST("/manage/quizzes", ctrl.CreateQuiz)
	router.DELETE("/manage/quizzes/:quiz_id", ctrl.DeleteQuiz)
	router.GET("/manage/quizzes/:quiz_id/analytics", ctrl.QuizAnalytics)
	router.GET("/manage/quizzes/:quiz_id/students/:student_id", ctrl.StudentPerformance)
	return router
}

func TestQuizAnalytics(t *testing.T) {
	teacher := &model.User{ID: uuid.New(), Role: model.RoleTeacher, IsActive: true}
	visible, hidden, broken := uuid.New(), uuid.New(), uuid.New()

	analytics := new(mockAnalyticsService)
	analytics.On("QuizAnalytics", teacher, visible).Return(&dto.QuizAnalyticsDTO{QuizID: visible, TotalAttempts: 3, PassRate: 66.67}, nil)
	analytics.On("QuizAnalytics", teacher, hidden).Return(nil, nil)
	analytics.On("QuizAnalytics", teacher, broken).Return(nil, errors.New("db down"))

	router := newTestRouter(teacher, NewQuizController(nil, nil, nil, analytics))

	tests := []struct {
		name string
		path string
		code int
	}{
		{"visible", "/manage/quizzes/" + visible.String() + "/analytics", http.StatusOK},
		{"not owned or missing", "/manage/quizzes/" + hidden.String() + "/analytics", http.StatusNotFound},
		{"repository failure", "/manage/quizzes/" + broken.String() + "/analytics", http.StatusInternalServerError},
		{"bad id", "/manage/quizzes/abc/analytics", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.code, w.Code)
		})
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/manage/quizzes/"+visible.String()+"/analytics", nil))
	var body dto.QuizAnalyticsDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3, body.TotalAttempts)
	analytics.AssertExpectations(t)
}

func TestStudentPerformance(t *testing.T) {
	admin := &model.User{ID: uuid.New(), Role: model.RoleAdmin, IsActive: true}
	quizID, studentID, absent := uuid.New(), uuid.New(), uuid.New()

	analytics := new(mockAnalyticsService)
	analytics.On("StudentPerformance", admin, quizID, studentID).Return(&dto.StudentPerformanceDTO{
		Attempt:         dto.AttemptDTO{UserID: studentID, Score: 4},
		TimePerQuestion: []int{},
	}, nil)
	analytics.On("StudentPerformance", admin, quizID, absent).Return(nil, nil)

	router := newTestRouter(admin, NewQuizController(nil, nil, nil, analytics))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/manage/quizzes/"+quizID.String()+"/students/"+studentID.String(), nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"time_per_question":[]`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/manage/quizzes/"+quizID.String()+"/students/"+absent.String(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateQuiz(t *testing.T) {
	teacher := &model.User{ID: uuid.New(), Role: model.RoleTeacher, IsActive: true}
	quizzes := new(mockQuizService)
	quizzes.On("CreateQuiz", teacher, mock.MatchedBy(func(req dto.CreateQuizRequest) bool {
		return req.Title == "Cells"
	})).Return(&dto.QuizResponse{ID: uuid.New(), Title: "Cells"}, nil)

	router := newTestRouter(teacher, NewQuizController(quizzes, nil, nil, nil))

	body, _ := json.Marshal(map[string]interface{}{"title": "Cells"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/manage/quizzes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	// title is required
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/manage/quizzes", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	quizzes.AssertNumberOfCalls(t, "CreateQuiz", 1)
}

func TestDeleteQuiz(t *testing.T) {
	teacher := &model.User{ID: uuid.New(), Role: model.RoleTeacher, IsActive: true}
	own, foreign := uuid.New(), uuid.New()
	quizzes := new(mockQuizService)
	quizzes.On("DeleteQuiz", teacher, own).Return(nil)
	quizzes.On("DeleteQuiz", teacher, foreign).Return(service.ErrForbidden)

	router := newTestRouter(teacher, NewQuizController(quizzes, nil, nil, nil))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/manage/quizzes/"+own.String(), nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/manage/quizzes/"+foreign.String(), nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
