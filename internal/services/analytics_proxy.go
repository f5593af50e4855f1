package services

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brightpath/brightpath-backend/internal/logger"
	"github.com/brightpath/brightpath-backend/internal/response"
	"github.com/brightpath/brightpath-backend/internal/utils"
)

// AnalyticsProxyService forwards any /analytics/* request to the upstream
// analytics backend verbatim: method, path suffix, query string, body and
// auth header. Responses are relayed as-is; transport failures surface as a
// 502 envelope.
type AnalyticsProxyService struct {
	baseURL string
	client  *http.Client
	log     *logger.Logger
}

func NewAnalyticsProxyService(baseLog *logger.Logger) *AnalyticsProxyService {
	log := baseLog.With("service", "AnalyticsProxyService")
	baseURL := strings.TrimRight(utils.GetEnv("ANALYTICS_BASE_URL", "http://localhost:9000", log), "/")
	timeout := utils.GetEnvAsInt("ANALYTICS_TIMEOUT_SECONDS", 15, log)

	return &AnalyticsProxyService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: time.Duration(timeout) * time.Second},
		log:     log,
	}
}

func (s *AnalyticsProxyService) Proxy(c *gin.Context, pathSuffix string) {
	target, err := url.Parse(s.baseURL + "/" + strings.TrimLeft(pathSuffix, "/"))
	if err != nil {
		response.RespondError(c, http.StatusBadGateway, err)
		return
	}
	target.RawQuery = c.Request.URL.RawQuery

	req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, target.String(), c.Request.Body)
	if err != nil {
		response.RespondError(c, http.StatusBadGateway, err)
		return
	}
	if ct := c.GetHeader("Content-Type"); ct != "" {
		req.Header.Set("Content-Type", ct)
	}
	if auth := c.GetHeader("Authorization"); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error("analytics upstream unreachable", "url", target.String(), "error", err)
		response.AbortError(c, http.StatusBadGateway, "analytics service unavailable")
		return
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	c.DataFromReader(resp.StatusCode, resp.ContentLength, contentType, resp.Body, nil)
}
