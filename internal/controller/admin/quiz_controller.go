package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizforge/internal/controller"
	"github.com/lshigami/quizforge/internal/dto"
	"github.com/lshigami/quizforge/internal/service"
)

// QuizController serves quiz authoring and result inspection for teachers
// and admins.
type QuizController struct {
	quizService      service.QuizService
	questionService  service.QuestionService
	attemptService   service.AttemptService
	analyticsService service.AnalyticsService
}

func NewQuizController(
	qs service.QuizService,
	qns service.QuestionService,
	as service.AttemptService,
	ans service.AnalyticsService,
) *QuizController {
	return &QuizController{
		quizService:      qs,
		questionService:  qns,
		attemptService:   as,
		analyticsService: ans,
	}
}

// CreateQuiz godoc
// @Summary (Teacher/Admin) Create a quiz
// @Description Creates a quiz, optionally with its questions. Without subject_id the quiz goes to the default subject.
// @Tags Manage - Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateQuizRequest true "Quiz data"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Router /manage/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	user, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	var req dto.CreateQuizRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	quiz, err := c.quizService.CreateQuiz(user, req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to create quiz")
		return
	}
	ctx.JSON(http.StatusCreated, quiz)
}

// MyQuizzes godoc
// @Summary (Teacher/Admin) Quizzes created by the current user
// @Tags Manage - Quizzes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.QuizResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /manage/quizzes [get]
func (c *QuizController) MyQuizzes(ctx *gin.Context) {
	user, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	quizzes, err := c.quizService.MyQuizzes(user)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve quizzes")
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// UpdateQuiz godoc
// @Summary (Owner/Admin) Update a quiz
// @Tags Manage - Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quiz_id path string true "Quiz ID"
// @Param body body dto.UpdateQuizRequest true "Fields to change"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /manage/quizzes/{quiz_id} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	user, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	quizID, ok := controller.ParseID(ctx, "quiz_id")
	if !ok {
		return
	}
	var req dto.UpdateQuizRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	quiz, err := c.quizService.UpdateQuiz(user, quizID, req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to update quiz")
		return
	}
	ctx.JSON(http.StatusOK, quiz)
}

// DeleteQuiz godoc
// @Summary (Owner/Admin) Delete a quiz with its questions and attempts
// @Tags Manage - Quizzes
// @Security BearerAuth
// @Param quiz_id path string true "Quiz ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /manage/quizzes/{quiz_id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	user, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	quizID, ok := controller.ParseID(ctx, "quiz_id")
	if !ok {
		return
	}
	if err := c.quizService.DeleteQuiz(user, quizID); err != nil {
		controller.RespondError(ctx, err, "Failed to delete quiz")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreateQuestion godoc
// @Summary (Owner/Admin) Add a question to a quiz
// @Tags Manage - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quiz_id path string true "Quiz ID"
// @Param body body dto.CreateQuestionRequest true "Question with choices"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /manage/quizzes/{quiz_id}/questions [post]
func (c *QuizController) CreateQuestion(ctx *gin.Context) {
	user, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	quizID, ok := controller.ParseID(ctx, "quiz_id")
	if !ok {
		return
	}
	var req dto.CreateQuestionRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	question, err := c.questionService.CreateQuestion(user, quizID, req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to create question")
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// UpdateQuestion godoc
// @Summary (Owner/Admin) Update a question
// @Description Supplying choices replaces all existing choices of the question.
// @Tags Manage - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param question_id path string true "Question ID"
// @Param body body dto.UpdateQuestionRequest true "Fields to change"
// @Success 200 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /manage/questions/{question_id} [put]
func (c *QuizController) UpdateQuestion(ctx *gin.Context) {
	user, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	questionID, ok := controller.ParseID(ctx, "question_id")
	if !ok {
		return
	}
	var req dto.UpdateQuestionRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	question, err := c.questionService.UpdateQuestion(user, questionID, req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to update question")
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// DeleteQuestion godoc
// @Summary (Owner/Admin) Delete a question
// @Tags Manage - Questions
// @Security BearerAuth
// @Param question_id path string true "Question ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /manage/questions/{question_id} [delete]
func (c *QuizController) DeleteQuestion(ctx *gin.Context) {
	user, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	questionID, ok := controller.ParseID(ctx, "question_id")
	if !ok {
		return
	}
	if err := c.questionService.DeleteQuestion(user, questionID); err != nil {
		controller.RespondError(ctx, err, "Failed to delete question")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// QuizAttempts godoc
// @Summary (Owner/Admin) All attempts on a quiz
// @Description Users without access to the quiz results receive an empty list.
// @Tags Manage - Results
// @Produce json
// @Security BearerAuth
// @Param quiz_id path string true "Quiz ID"
// @Success 200 {array} dto.AttemptDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /manage/quizzes/{quiz_id}/attempts [get]
func (c *QuizController) QuizAttempts(ctx *gin.Context) {
	user, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	quizID, ok := controller.ParseID(ctx, "quiz_id")
	if !ok {
		return
	}
	attempts, err := c.attemptService.QuizAttempts(user, quizID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve attempts")
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

// QuizAnalytics godoc
// @Summary (Owner/Admin) Aggregated results of a quiz
// @Tags Manage - Results
// @Produce json
// @Security BearerAuth
// @Param quiz_id path string true "Quiz ID"
// @Success 200 {object} dto.QuizAnalyticsDTO
// @Failure 404 {object} dto.ErrorResponse "Analytics not available"
// @Router /manage/quizzes/{quiz_id}/analytics [get]
func (c *QuizController) QuizAnalytics(ctx *gin.Context) {
	user, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	quizID, ok := controller.ParseID(ctx, "quiz_id")
	if !ok {
		return
	}
	analytics, err := c.analyticsService.QuizAnalytics(user, quizID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to compute analytics")
		return
	}
	if analytics == nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Analytics not available"})
		return
	}
	ctx.JSON(http.StatusOK, analytics)
}

// StudentPerformance godoc
// @Summary (Owner/Admin) A student's latest attempt on a quiz
// @Tags Manage - Results
// @Produce json
// @Security BearerAuth
// @Param quiz_id path string true "Quiz ID"
// @Param student_id path string true "Student user ID"
// @Success 200 {object} dto.StudentPerformanceDTO
// @Failure 404 {object} dto.ErrorResponse "Performance not available"
// @Router /manage/quizzes/{quiz_id}/students/{student_id} [get]
func (c *QuizController) StudentPerformance(ctx *gin.Context) {
	user, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	quizID, ok := controller.ParseID(ctx, "quiz_id")
	if !ok {
		return
	}
	studentID, ok := controller.ParseID(ctx, "student_id")
	if !ok {
		return
	}
	perf, err := c.analyticsService.StudentPerformance(user, quizID, studentID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve student performance")
		return
	}
	if perf == nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Performance not available"})
		return
	}
	ctx.JSON(http.StatusOK, perf)
}
