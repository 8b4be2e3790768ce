package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/learnai/learnai-backend/internal/services"
)

type SearchHandler struct {
	searcher services.ResourceSearcher
}

func NewSearchHandler(searcher services.ResourceSearcher) *SearchHandler {
	return &SearchHandler{searcher: searcher}
}

func (sh *SearchHandler) Search(c *gin.Context) {
	if _, ok := requestUserID(c); !ok {
		return
	}
	var req struct {
		Query string `json:"query"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		RespondError(c, http.StatusBadRequest, "empty_query", errors.New("query is required"))
		return
	}

	resources, err := sh.searcher.Search(c.Request.Context(), query, 10)
	if err != nil {
		RespondOK(c, gin.H{"success": false, "resources": []services.Resource{}})
		return
	}
	RespondOK(c, gin.H{"success": true, "resources": resources})
}
