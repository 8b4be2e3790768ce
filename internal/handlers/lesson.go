package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/learnai/learnai-backend/internal/services"
)

type LessonHandler struct {
	lessonService services.LessonService
}

func NewLessonHandler(lessonService services.LessonService) *LessonHandler {
	return &LessonHandler{lessonService: lessonService}
}

func (lh *LessonHandler) View(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	courseID, ok := pathUUID(c, "course_id")
	if !ok {
		return
	}
	lessonID, ok := pathUUID(c, "lesson_id")
	if !ok {
		return
	}
	view, err := lh.lessonService.ViewLesson(c.Request.Context(), userID, courseID, lessonID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, view)
}

func (lh *LessonHandler) Complete(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	courseID, ok := pathUUID(c, "course_id")
	if !ok {
		return
	}
	lessonID, ok := pathUUID(c, "lesson_id")
	if !ok {
		return
	}
	enrollment, err := lh.lessonService.CompleteLesson(c.Request.Context(), userID, courseID, lessonID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true, "progress": enrollment.ProgressPercentage})
}
