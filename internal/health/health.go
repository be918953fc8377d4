package health

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/fo-news-dashboard/pkg/logger"
)

// SourceStatus reports which news sources are configured
type SourceStatus interface {
	PrimaryConfigured() bool
}

// Checker provides liveness and readiness endpoints
type Checker struct {
	sources   SourceStatus
	ready     bool
	readyMu   sync.RWMutex
	startTime time.Time
}

// HealthStatus represents process liveness
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Uptime    string `json:"uptime"`
}

// ReadinessStatus represents service readiness
type ReadinessStatus struct {
	Ready     bool              `json:"ready"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// NewChecker creates new health checker
func NewChecker(sources SourceStatus) *Checker {
	return &Checker{
		sources:   sources,
		startTime: time.Now(),
	}
}

// Register mounts probe handlers on mux
func (c *Checker) Register(mux *http.ServeMux) {
	mux.HandleFunc("/health", c.handleHealth)    // Liveness probe
	mux.HandleFunc("/ready", c.handleReadiness)  // Readiness probe
	mux.HandleFunc("/healthz", c.handleHealth)   // Alias
	mux.HandleFunc("/readyz", c.handleReadiness) // Alias
}

// SetReady marks the service as ready
func (c *Checker) SetReady(ready bool) {
	c.readyMu.Lock()
	defer c.readyMu.Unlock()
	c.ready = ready

	if ready {
		logger.Info("service marked as ready")
	} else {
		logger.Warn("service marked as not ready")
	}
}

// IsReady reports the readiness flag
func (c *Checker) IsReady() bool {
	c.readyMu.RLock()
	defer c.readyMu.RUnlock()
	return c.ready
}

// handleHealth returns 200 while the process is alive
func (c *Checker) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(c.startTime).Round(time.Second).String(),
	}

	writeJSON(w, http.StatusOK, status)
}

// handleReadiness returns 200 only after startup completed.
// A missing primary source is reported but does not make the service unready.
func (c *Checker) handleReadiness(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{
		"fallback_source": "configured",
	}
	if c.sources != nil && c.sources.PrimaryConfigured() {
		checks["primary_source"] = "configured"
	} else {
		checks["primary_source"] = "not configured (fallback only)"
	}

	ready := c.IsReady()

	status := ReadinessStatus{
		Ready:     ready,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}

	code := http.StatusOK
	if !ready {
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, status)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug("failed to write health response", zap.Error(err))
	}
}
