package controller

import (
	"errors"
	"net/http"

	"github.com/AtizaD/school-assessment-system-sub006/internal/service"
	"github.com/AtizaD/school-assessment-system-sub006/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

// accessError maps the access-check sentinels onto HTTP responses.
// Returns false when err was not an access failure.
func accessError(ctx *gin.Context, err error) bool {
	switch {
	case errors.Is(err, util.ErrAssessmentNotFound), errors.Is(err, util.ErrAttemptNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrNotEnrolled), errors.Is(err, util.ErrAssessmentNotAccessible):
		util.Forbidden(ctx, err.Error())
	case errors.Is(err, util.ErrAssessmentNotToday):
		util.Forbidden(ctx, err.Error())
	case errors.Is(err, util.ErrAlreadyGraded), errors.Is(err, util.ErrAttemptAlreadyEnded):
		util.Conflict(ctx, err.Error())
	default:
		return false
	}
	return true
}

// Start godoc
// @Summary Start or resume an attempt
// @Description Idempotent; returns the existing attempt when one exists
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response{data=service.AttemptView}
// @Failure 403 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/assessments/{id}/attempt/start [post]
func (c *AttemptController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	view, err := c.AttemptService.StartAttempt(claims.UserID, util.ParseUint(ctx.Param("id")))
	if err != nil {
		if !accessError(ctx, err) {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

// Get godoc
// @Summary Get the caller's attempt
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response{data=service.AttemptView}
// @Failure 404 {object} util.Response
// @Router /api/assessments/{id}/attempt [get]
func (c *AttemptController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	view, err := c.AttemptService.GetAttempt(claims.UserID, util.ParseUint(ctx.Param("id")))
	if err != nil {
		if !accessError(ctx, err) {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

// CheckTime godoc
// @Summary Poll remaining time
// @Description Expires the attempt server-side when the clock has run out
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response{data=service.TimeStatus}
// @Failure 503 {object} util.Response
// @Router /api/assessments/{id}/attempt/time [get]
func (c *AttemptController) CheckTime(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	status, err := c.AttemptService.CheckTime(claims.UserID, util.ParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrAutoSubmitFailed) {
			util.Error(ctx, http.StatusServiceUnavailable, "time expired but submission failed, retry or submit manually")
			return
		}
		if !accessError(ctx, err) {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, status)
}

type syncClockRequest struct {
	ClientTimestamp int64 `json:"clientTimestamp" binding:"required"`
}

// SyncClock godoc
// @Summary Synchronize the client clock
// @Description Echoes the client timestamp with the server timestamp and offset
// @Tags attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body syncClockRequest true "Client Unix timestamp in milliseconds"
// @Success 200 {object} util.Response{data=service.ClockSync}
// @Router /api/time/sync [post]
func (c *AttemptController) SyncClock(ctx *gin.Context) {
	var req syncClockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, c.AttemptService.SyncClock(req.ClientTimestamp))
}

type saveAnswerRequest struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	AnswerText string `json:"answerText"`
}

// SaveAnswer godoc
// @Summary Autosave an answer
// @Description Upserts the answer with no grading side effects
// @Tags attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param body body saveAnswerRequest true "Answer"
// @Success 200 {object} util.Response{data=object}
// @Failure 403 {object} util.Response
// @Router /api/assessments/{id}/answers [post]
func (c *AttemptController) SaveAnswer(ctx *gin.Context) {
	var req saveAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	answer, err := c.AttemptService.SaveAnswer(claims.UserID, util.ParseUint(ctx.Param("id")), req.QuestionID, req.AnswerText)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		if !accessError(ctx, err) {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"questionId": answer.QuestionID, "savedAt": answer.UpdatedAt})
}

type submitRequest struct {
	Answers []service.QuestionAnswer `json:"answers"`
}

// Submit godoc
// @Summary Submit the attempt for grading
// @Tags attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param body body submitRequest true "Final answers"
// @Success 200 {object} util.Response{data=object}
// @Failure 409 {object} util.Response
// @Router /api/assessments/{id}/submit [post]
func (c *AttemptController) Submit(ctx *gin.Context) {
	var req submitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	result, err := c.AttemptService.Submit(claims.UserID, util.ParseUint(ctx.Param("id")), req.Answers)
	if err != nil {
		if !accessError(ctx, err) {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"score": result.Score, "redirect": "results"})
}

// AutoSubmit godoc
// @Summary Force-submit on client timer expiry
// @Description Fallback when the client timer fires before the next poll
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 409 {object} util.Response
// @Router /api/assessments/{id}/auto-submit [post]
func (c *AttemptController) AutoSubmit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	result, err := c.AttemptService.AutoSubmit(claims.UserID, util.ParseUint(ctx.Param("id")))
	if err != nil {
		if !accessError(ctx, err) {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"score": result.Score, "redirect": "results"})
}

// Result godoc
// @Summary Get the caller's result
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response{data=model.Result}
// @Failure 404 {object} util.Response
// @Router /api/assessments/{id}/result [get]
func (c *AttemptController) Result(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	result, err := c.AttemptService.GetResult(claims.UserID, util.ParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, result)
}
