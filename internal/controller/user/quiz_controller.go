package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizforge/internal/controller"
	"github.com/lshigami/quizforge/internal/dto"
	"github.com/lshigami/quizforge/internal/service"
	"github.com/rs/zerolog/log"
)

type QuizController struct {
	quizService       service.QuizService
	submissionService service.SubmissionService
	attemptService    service.AttemptService
	subjectService    service.SubjectService
}

func NewQuizController(
	qs service.QuizService,
	ss service.SubmissionService,
	as service.AttemptService,
	subs service.SubjectService,
) *QuizController {
	return &QuizController{
		quizService:       qs,
		submissionService: ss,
		attemptService:    as,
		subjectService:    subs,
	}
}

// ListQuizzes godoc
// @Summary List quizzes
// @Description Admins see every quiz, everyone else only published ones.
// @Tags Quizzes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.QuizResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	user, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	quizzes, err := c.quizService.ListQuizzes(user)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve quizzes")
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// AvailableQuizzes godoc
// @Summary List quizzes open for attempts right now
// @Tags Quizzes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.QuizResponse
// @Router /quizzes/available [get]
func (c *QuizController) AvailableQuizzes(ctx *gin.Context) {
	quizzes, err := c.quizService.AvailableQuizzes()
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve available quizzes")
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// GetQuiz godoc
// @Summary Quiz details with questions and availability
// @Description Correct choices are only revealed to the quiz owner and admins.
// @Tags Quizzes
// @Produce json
// @Security BearerAuth
// @Param quiz_id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid quiz ID"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{quiz_id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	user, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	quizID, ok := controller.ParseID(ctx, "quiz_id")
	if !ok {
		return
	}
	quiz, err := c.quizService.GetQuiz(user, quizID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve quiz")
		return
	}
	ctx.JSON(http.StatusOK, quiz)
}

// SubmitQuiz godoc
// @Summary Submit answers for a quiz
// @Description Grades the submission immediately. Answers that reference unknown questions or choices are skipped.
// @Tags Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quiz_id path string true "Quiz ID"
// @Param body body dto.SubmitQuizDTO true "Answers and time taken in seconds"
// @Success 201 {object} dto.AttemptDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Failure 422 {object} dto.ErrorResponse "Quiz not available"
// @Router /quizzes/{quiz_id}/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	user, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	quizID, ok := controller.ParseID(ctx, "quiz_id")
	if !ok {
		return
	}
	var req dto.SubmitQuizDTO
	if !controller.BindJSON(ctx, &req) {
		return
	}

	answers := normalizeAnswers(req.Answers)
	log.Info().
		Str("quizID", quizID.String()).
		Str("userID", user.ID.String()).
		Int("received", len(req.Answers)).
		Int("normalized", len(answers)).
		Msg("Received quiz submission")

	attempt, err := c.submissionService.GradeSubmission(quizID, user, answers, req.TimeTaken)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to submit quiz")
		return
	}
	ctx.JSON(http.StatusCreated, attempt)
}

// MyResults godoc
// @Summary The current user's attempts, newest first
// @Tags Results
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AttemptDTO
// @Router /results/me [get]
func (c *QuizController) MyResults(ctx *gin.Context) {
	user, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	results, err := c.attemptService.MyResults(user)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve results")
		return
	}
	ctx.JSON(http.StatusOK, results)
}

// GetAttempt godoc
// @Summary Attempt details with answers
// @Tags Results
// @Produce json
// @Security BearerAuth
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptDTO
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id} [get]
func (c *QuizController) GetAttempt(ctx *gin.Context) {
	user, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	attemptID, ok := controller.ParseID(ctx, "attempt_id")
	if !ok {
		return
	}
	attempt, err := c.attemptService.GetAttempt(user, attemptID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve attempt")
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// ListSubjects godoc
// @Summary List subjects
// @Tags Subjects
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.SubjectResponse
// @Router /subjects [get]
func (c *QuizController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.subjectService.ListSubjects()
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve subjects")
		return
	}
	ctx.JSON(http.StatusOK, subjects)
}
