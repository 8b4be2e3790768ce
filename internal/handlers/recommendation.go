package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/learnai/learnai-backend/internal/services"
)

type RecommendationHandler struct {
	recommendationService services.RecommendationService
	behaviorService       services.BehaviorService
	readingService        services.ReadingService
}

func NewRecommendationHandler(
	recommendationService services.RecommendationService,
	behaviorService services.BehaviorService,
	readingService services.ReadingService,
) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: recommendationService,
		behaviorService:       behaviorService,
		readingService:        readingService,
	}
}

func queryLimit(c *gin.Context, fallback int) int {
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// List returns recent recommendations alongside behavior insights and
// reading stats. Behavior analysis runs on every call and may rewrite
// the learning profile; its failure does not fail the request.
func (rh *RecommendationHandler) List(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	limit := queryLimit(c, 6)

	recommendations, err := rh.recommendationService.RecentForUser(c.Request.Context(), userID, limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	payload := gin.H{"recommendations": recommendations}

	if insights, err := rh.behaviorService.AnalyzeUser(c.Request.Context(), userID); err == nil {
		payload["behavior_insights"] = insights
	}
	if stats, err := rh.readingService.Stats(c.Request.Context(), userID); err == nil {
		payload["reading_stats"] = stats
	}

	RespondOK(c, payload)
}

func (rh *RecommendationHandler) Refresh(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	limit := queryLimit(c, 6)

	recommendations, err := rh.recommendationService.Refresh(c.Request.Context(), userID, limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true, "count": len(recommendations), "recommendations": recommendations})
}

func (rh *RecommendationHandler) MarkViewed(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	recommendationID, ok := pathUUID(c, "recommendation_id")
	if !ok {
		return
	}
	if err := rh.recommendationService.MarkViewed(c.Request.Context(), userID, recommendationID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
