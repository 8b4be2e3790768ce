package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/learnai/learnai-backend/internal/platform/envutil"
	"github.com/learnai/learnai-backend/internal/platform/logger"
)

// Resource is one related-course link found by an external lookup.
type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ResourceSearcher is the injectable best-effort lookup used to
// augment recommendation reasons. Implementations must return an
// empty slice rather than panic on malformed responses; callers treat
// any error as "no augmentation".
type ResourceSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]Resource, error)
}

type httpResourceSearcher struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
}

// NewHTTPResourceSearcher builds the production searcher against the
// configured resource directory endpoint. A single attempt per query,
// bounded by a short timeout; no retries.
func NewHTTPResourceSearcher(log *logger.Logger) ResourceSearcher {
	baseURL := envutil.String("RESOURCE_SEARCH_URL", "https://api.learnai.io/v1/resources")
	timeoutSec := envutil.Int("RESOURCE_SEARCH_TIMEOUT_SECONDS", 10)

	return &httpResourceSearcher{
		log:        log.With("service", "ResourceSearcher"),
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}
}

type searchResponse struct {
	Results []Resource `json:"results"`
}

func (s *httpResourceSearcher) Search(ctx context.Context, query string, limit int) ([]Resource, error) {
	if limit <= 0 {
		limit = 10
	}

	endpoint := fmt.Sprintf("%s/search?q=%s&limit=%s",
		s.baseURL, url.QueryEscape(query), strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("resource search http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("resource search decode: %w", err)
	}

	out := make([]Resource, 0, limit)
	for _, r := range parsed.Results {
		if r.Title == "" || r.URL == "" {
			continue
		}
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
