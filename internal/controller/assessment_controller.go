package controller

import (
	"errors"
	"strconv"

	"github.com/AtizaD/school-assessment-system-sub006/internal/service"
	"github.com/AtizaD/school-assessment-system-sub006/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
	AttemptService    *service.AttemptService
}

func NewAssessmentController(assessmentService *service.AssessmentService, attemptService *service.AttemptService) *AssessmentController {
	return &AssessmentController{
		AssessmentService: assessmentService,
		AttemptService:    attemptService,
	}
}

// Create godoc
// @Summary Create an assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.AssessmentInput true "Assessment details"
// @Success 201 {object} util.Response{data=model.Assessment}
// @Failure 400 {object} util.Response
// @Router /api/teacher/assessments [post]
func (c *AssessmentController) Create(ctx *gin.Context) {
	var in service.AssessmentInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	a, err := c.AssessmentService.Create(in)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, a)
}

// Get godoc
// @Summary Get an assessment
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Failure 404 {object} util.Response
// @Router /api/teacher/assessments/{id} [get]
func (c *AssessmentController) Get(ctx *gin.Context) {
	a, err := c.AssessmentService.Get(util.ParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, a)
}

// List godoc
// @Summary List assessments for a class
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param classId query int true "Class ID"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=object}
// @Router /api/teacher/assessments [get]
func (c *AssessmentController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	assessments, total, err := c.AssessmentService.List(util.ParseUint(ctx.Query("classId")), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"assessments": assessments, "total": total})
}

// ListForStudent godoc
// @Summary List the caller's available assessments
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Assessment}
// @Router /api/student/assessments [get]
func (c *AssessmentController) ListForStudent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	assessments, err := c.AssessmentService.ListForStudent(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, assessments)
}

// Update godoc
// @Summary Update an assessment
// @Description Timing and pooling settings are locked once attempts exist
// @Tags assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param body body service.AssessmentInput true "Assessment details"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Failure 409 {object} util.Response
// @Router /api/teacher/assessments/{id} [put]
func (c *AssessmentController) Update(ctx *gin.Context) {
	var in service.AssessmentInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.AssessmentService.Update(util.ParseUint(ctx.Param("id")), in)
	switch {
	case err == nil:
		util.Success(ctx, a)
	case errors.Is(err, util.ErrAssessmentNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrAssessmentLocked):
		util.Conflict(ctx, err.Error())
	default:
		util.BadRequest(ctx, err.Error())
	}
}

// Publish godoc
// @Summary Publish a draft assessment
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Router /api/teacher/assessments/{id}/publish [post]
func (c *AssessmentController) Publish(ctx *gin.Context) {
	a, err := c.AssessmentService.Publish(util.ParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrAssessmentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, a)
}

// AddQuestion godoc
// @Summary Add a question to the bank
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param body body service.QuestionInput true "Question"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response
// @Router /api/teacher/assessments/{id}/questions [post]
func (c *AssessmentController) AddQuestion(ctx *gin.Context) {
	var in service.QuestionInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.AssessmentService.AddQuestion(util.ParseUint(ctx.Param("id")), in)
	switch {
	case err == nil:
		util.Created(ctx, q)
	case errors.Is(err, util.ErrAssessmentNotFound):
		util.NotFound(ctx)
	default:
		util.BadRequest(ctx, err.Error())
	}
}

// ListQuestions godoc
// @Summary List the question bank
// @Description Teacher view; includes scoring configuration
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Router /api/teacher/assessments/{id}/questions [get]
func (c *AssessmentController) ListQuestions(ctx *gin.Context) {
	questions, err := c.AssessmentService.ListQuestions(util.ParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrAssessmentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, questions)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Description Locked once attempts exist
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param questionId path int true "Question ID"
// @Param body body service.QuestionInput true "Question"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 409 {object} util.Response
// @Router /api/teacher/assessments/{id}/questions/{questionId} [put]
func (c *AssessmentController) UpdateQuestion(ctx *gin.Context) {
	var in service.QuestionInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.AssessmentService.UpdateQuestion(util.ParseUint(ctx.Param("id")), util.ParseUint(ctx.Param("questionId")), in)
	switch {
	case err == nil:
		util.Success(ctx, q)
	case errors.Is(err, util.ErrQuestionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrAssessmentLocked):
		util.Conflict(ctx, err.Error())
	default:
		util.BadRequest(ctx, err.Error())
	}
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param questionId path int true "Question ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/teacher/assessments/{id}/questions/{questionId} [delete]
func (c *AssessmentController) DeleteQuestion(ctx *gin.Context) {
	err := c.AssessmentService.DeleteQuestion(util.ParseUint(ctx.Param("id")), util.ParseUint(ctx.Param("questionId")))
	switch {
	case err == nil:
		util.Success(ctx, nil)
	case errors.Is(err, util.ErrQuestionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrAssessmentLocked):
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

type resetRequest struct {
	StudentID uint `json:"studentId" binding:"required"`
}

// ResetStudent godoc
// @Summary Grant a student a partial time reset
// @Description The student's next time check runs against a short override window
// @Tags assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param body body resetRequest true "Student"
// @Success 201 {object} util.Response{data=model.AssessmentReset}
// @Router /api/teacher/assessments/{id}/resets [post]
func (c *AssessmentController) ResetStudent(ctx *gin.Context) {
	var req resetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	reset, err := c.AssessmentService.ResetStudent(util.ParseUint(ctx.Param("id")), req.StudentID, claims.UserID)
	switch {
	case err == nil:
		util.Created(ctx, reset)
	case errors.Is(err, util.ErrAssessmentNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrNotEnrolled):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// ListResults godoc
// @Summary List graded results for an assessment
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=object}
// @Router /api/teacher/assessments/{id}/results [get]
func (c *AssessmentController) ListResults(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	results, total, err := c.AssessmentService.ListResults(util.ParseUint(ctx.Param("id")), page, limit)
	if err != nil {
		if errors.Is(err, util.ErrAssessmentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"results": results, "total": total})
}

// StudentAnswers godoc
// @Summary View a student's answer sheet
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param studentId path int true "Student ID"
// @Success 200 {object} util.Response{data=[]model.Answer}
// @Router /api/teacher/assessments/{id}/results/{studentId}/answers [get]
func (c *AssessmentController) StudentAnswers(ctx *gin.Context) {
	answers, err := c.AssessmentService.StudentAnswers(util.ParseUint(ctx.Param("id")), util.ParseUint(ctx.Param("studentId")))
	if err != nil {
		if errors.Is(err, util.ErrAssessmentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, answers)
}

// Regrade godoc
// @Summary Recompute a student's result
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param studentId path int true "Student ID"
// @Success 200 {object} util.Response{data=model.Result}
// @Failure 409 {object} util.Response
// @Router /api/teacher/assessments/{id}/results/{studentId}/regrade [post]
func (c *AssessmentController) Regrade(ctx *gin.Context) {
	result, err := c.AttemptService.Regrade(util.ParseUint(ctx.Param("id")), util.ParseUint(ctx.Param("studentId")))
	switch {
	case err == nil:
		util.Success(ctx, result)
	case errors.Is(err, util.ErrAssessmentNotFound), errors.Is(err, util.ErrAttemptNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrAttemptNotEnded):
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
