package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizforge/internal/controller"
	"github.com/lshigami/quizforge/internal/dto"
	"github.com/lshigami/quizforge/internal/service"
)

type SubjectController struct {
	subjectService service.SubjectService
}

func NewSubjectController(ss service.SubjectService) *SubjectController {
	return &SubjectController{subjectService: ss}
}

// CreateSubject godoc
// @Summary (Teacher/Admin) Create a subject
// @Tags Manage - Subjects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SubjectRequest true "Subject"
// @Success 201 {object} dto.SubjectResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /manage/subjects [post]
func (c *SubjectController) CreateSubject(ctx *gin.Context) {
	user, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	var req dto.SubjectRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	subject, err := c.subjectService.CreateSubject(user, req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to create subject")
		return
	}
	ctx.JSON(http.StatusCreated, subject)
}

// UpdateSubject godoc
// @Summary (Admin) Rename or describe a subject
// @Tags Manage - Subjects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param subject_id path string true "Subject ID"
// @Param body body dto.SubjectRequest true "Subject"
// @Success 200 {object} dto.SubjectResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /manage/subjects/{subject_id} [put]
func (c *SubjectController) UpdateSubject(ctx *gin.Context) {
	user, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	subjectID, ok := controller.ParseID(ctx, "subject_id")
	if !ok {
		return
	}
	var req dto.SubjectRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	subject, err := c.subjectService.UpdateSubject(user, subjectID, req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to update subject")
		return
	}
	ctx.JSON(http.StatusOK, subject)
}

// DeleteSubject godoc
// @Summary (Admin) Delete an unused subject
// @Tags Manage - Subjects
// @Security BearerAuth
// @Param subject_id path string true "Subject ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Subject still has quizzes"
// @Router /manage/subjects/{subject_id} [delete]
func (c *SubjectController) DeleteSubject(ctx *gin.Context) {
	user, ok := controller.RequireUser(ctx)
	if !ok {
		return
	}
	subjectID, ok := controller.ParseID(ctx, "subject_id")
	if !ok {
		return
	}
	if err := c.subjectService.DeleteSubject(user, subjectID); err != nil {
		controller.RespondError(ctx, err, "Failed to delete subject")
		return
	}
	ctx.Status(http.StatusNoContent)
}
