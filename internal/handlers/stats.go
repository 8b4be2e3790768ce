package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/learnai/learnai-backend/internal/services"
)

type StatsHandler struct {
	statsService services.StatsService
}

func NewStatsHandler(statsService services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (sh *StatsHandler) Stats(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	stats, err := sh.statsService.UserStats(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, stats)
}

func (sh *StatsHandler) Progress(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	weekly, err := sh.statsService.WeeklyProgress(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"weekly_progress": weekly,
		"last_updated":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (sh *StatsHandler) Dashboard(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	dashboard, err := sh.statsService.Dashboard(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, dashboard)
}
