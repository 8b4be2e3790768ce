package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/learnai/learnai-backend/internal/requestdata"
	"github.com/learnai/learnai-backend/internal/services"
)

type CourseHandler struct {
	courseService services.CourseService
}

func NewCourseHandler(courseService services.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

func requestUserID(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthenticated", errors.New("no request identity"))
		return uuid.Nil, false
	}
	return rd.UserID, true
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

func (ch *CourseHandler) List(c *gin.Context) {
	courses, err := ch.courseService.ListCourses(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"courses": courses})
}

func (ch *CourseHandler) Detail(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	courseID, ok := pathUUID(c, "course_id")
	if !ok {
		return
	}
	detail, err := ch.courseService.GetCourseDetail(c.Request.Context(), userID, courseID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, detail)
}

func (ch *CourseHandler) Enroll(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	courseID, ok := pathUUID(c, "course_id")
	if !ok {
		return
	}
	enrollment, err := ch.courseService.Enroll(c.Request.Context(), userID, courseID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "enrollment": enrollment})
}

func (ch *CourseHandler) Enrollments(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	enrollments, err := ch.courseService.ListEnrollments(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"enrollments": enrollments})
}
