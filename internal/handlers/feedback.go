package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/learnai/learnai-backend/internal/services"
)

type FeedbackHandler struct {
	feedbackService services.FeedbackService
}

func NewFeedbackHandler(feedbackService services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// List regenerates feedback from current state, marks everything
// read, and returns the latest items, mirroring an inbox view.
func (fh *FeedbackHandler) List(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	if _, err := fh.feedbackService.GenerateFeedback(c.Request.Context(), userID); err != nil {
		RespondServiceError(c, err)
		return
	}
	if err := fh.feedbackService.MarkAllRead(c.Request.Context(), userID); err != nil {
		RespondServiceError(c, err)
		return
	}
	items, err := fh.feedbackService.ListForUser(c.Request.Context(), userID, 20)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"feedback": items})
}

func (fh *FeedbackHandler) Dismiss(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	feedbackID, ok := pathUUID(c, "feedback_id")
	if !ok {
		return
	}
	if err := fh.feedbackService.Dismiss(c.Request.Context(), userID, feedbackID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
