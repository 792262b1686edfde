package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-service/pkg/logger"
)

// CheckFunc reports whether a dependency is reachable.
type CheckFunc func(ctx context.Context) error

// HealthHandler reports service liveness together with dependency checks.
type HealthHandler struct {
	service string
	checks  map[string]CheckFunc
	timeout time.Duration
	log     *zap.Logger
}

// NewHealthHandler creates a HealthHandler. checks is keyed by dependency name.
func NewHealthHandler(service string, checks map[string]CheckFunc, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		checks:  checks,
		timeout: 3 * time.Second,
		log:     log,
	}
}

// CheckHealth handles GET /health. It answers 503 when any check fails.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	l := logger.WithContext(c.Request.Context(), h.log)
	results := make(map[string]gin.H, len(h.checks))
	healthy := true

	for name, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		start := time.Now()
		err := check(ctx)
		cancel()

		result := gin.H{
			"status":        "healthy",
			"response_time": time.Since(start).String(),
		}
		if err != nil {
			healthy = false
			result["status"] = "unhealthy"
			result["error"] = err.Error()
			l.Error("health check failed", zap.String("check", name), zap.Error(err))
		}
		results[name] = result
	}

	status, code := "healthy", http.StatusOK
	if !healthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"service":   h.service,
		"timestamp": time.Now().UTC(),
		"checks":    results,
	})
}
