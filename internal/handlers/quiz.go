package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnai/learnai-backend/internal/services"
)

type QuizHandler struct {
	quizService services.QuizService
}

func NewQuizHandler(quizService services.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

func (qh *QuizHandler) Submit(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	quizID, ok := pathUUID(c, "quiz_id")
	if !ok {
		return
	}
	var req struct {
		Answer *int `json:"answer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Answer == nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("answer is required"))
		return
	}
	result, err := qh.quizService.SubmitQuiz(c.Request.Context(), userID, quizID, *req.Answer)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"success":     true,
		"correct":     result.Correct,
		"score":       result.Score,
		"explanation": result.Explanation,
	})
}
