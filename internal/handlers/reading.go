package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/learnai/learnai-backend/internal/services"
)

type ReadingHandler struct {
	readingService services.ReadingService
}

func NewReadingHandler(readingService services.ReadingService) *ReadingHandler {
	return &ReadingHandler{readingService: readingService}
}

func (rh *ReadingHandler) Open(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	courseID, ok := pathUUID(c, "course_id")
	if !ok {
		return
	}
	progress, err := rh.readingService.OpenReader(c.Request.Context(), userID, courseID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, progress)
}

func (rh *ReadingHandler) SaveProgress(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	var req struct {
		CourseID uuid.UUID `json:"course_id"`
		Page     int       `json:"page"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.CourseID == uuid.Nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("course_id and page are required"))
		return
	}
	progress, err := rh.readingService.SaveProgress(c.Request.Context(), userID, req.CourseID, req.Page)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true, "last_page_read": progress.LastPageRead})
}

func (rh *ReadingHandler) Stats(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	stats, err := rh.readingService.Stats(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, stats)
}
