package controller

import (
	"errors"
	"strconv"

	"github.com/AtizaD/school-assessment-system-sub006/internal/service"
	"github.com/AtizaD/school-assessment-system-sub006/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ClassController struct {
	ClassService *service.ClassService
}

func NewClassController(classService *service.ClassService) *ClassController {
	return &ClassController{ClassService: classService}
}

// Create godoc
// @Summary Create a class
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateClassInput true "Class details"
// @Success 201 {object} util.Response{data=model.Class}
// @Router /api/teacher/classes [post]
func (c *ClassController) Create(ctx *gin.Context) {
	var in service.CreateClassInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	class, err := c.ClassService.Create(in, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, class)
}

// List godoc
// @Summary List classes
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=object}
// @Router /api/teacher/classes [get]
func (c *ClassController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	classes, total, err := c.ClassService.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"classes": classes, "total": total})
}

// Get godoc
// @Summary Get a class
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Success 200 {object} util.Response{data=model.Class}
// @Failure 404 {object} util.Response
// @Router /api/teacher/classes/{id} [get]
func (c *ClassController) Get(ctx *gin.Context) {
	class, err := c.ClassService.Get(util.ParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, class)
}

type enrollRequest struct {
	StudentID uint `json:"studentId" binding:"required"`
}

// Enroll godoc
// @Summary Enroll a student
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Param body body enrollRequest true "Student"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/teacher/classes/{id}/students [post]
func (c *ClassController) Enroll(ctx *gin.Context) {
	var req enrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.ClassService.Enroll(util.ParseUint(ctx.Param("id")), req.StudentID)
	switch {
	case err == nil:
		util.Success(ctx, nil)
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, util.ErrUserNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.BadRequest(ctx, "user is not a student")
	default:
		util.LogInternalError(ctx, err)
	}
}

// Unenroll godoc
// @Summary Remove a student from a class
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Param studentId path int true "Student ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/classes/{id}/students/{studentId} [delete]
func (c *ClassController) Unenroll(ctx *gin.Context) {
	err := c.ClassService.Unenroll(util.ParseUint(ctx.Param("id")), util.ParseUint(ctx.Param("studentId")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// AllStudents godoc
// @Summary List all student accounts
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=object}
// @Router /api/teacher/students [get]
func (c *ClassController) AllStudents(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	students, total, err := c.ClassService.ListAllStudents(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"students": students, "total": total})
}

// Students godoc
// @Summary List a class roster
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /api/teacher/classes/{id}/students [get]
func (c *ClassController) Students(ctx *gin.Context) {
	students, err := c.ClassService.ListStudents(util.ParseUint(ctx.Param("id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, students)
}
