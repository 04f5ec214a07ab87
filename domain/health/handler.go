package health

import (
	"context"
	"net/http"
	"runtime"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthResponse is the body of /health and /health/live.
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Version   string           `json:"version,omitempty"`
	Checks    map[string]Check `json:"checks,omitempty"`
}

// Check is the result of one dependency check.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// StatsResponse holds runtime statistics.
type StatsResponse struct {
	GoVersion    string   `json:"go_version"`
	NumCPU       int      `json:"num_cpu"`
	NumGoroutine int      `json:"num_goroutine"`
	MemAlloc     uint64   `json:"mem_alloc_bytes"`
	MemSys       uint64   `json:"mem_sys_bytes"`
	Uptime       string   `json:"uptime,omitempty"`
	Dependencies []string `json:"dependencies"`
}

// Checker pings one dependency.
type Checker func(ctx context.Context) error

// Handler reports on the service and the dependencies registered with it.
type Handler struct {
	version  string
	started  time.Time
	timeout  time.Duration
	checkers map[string]Checker
	optional map[string]bool
}

func NewHandler(version string) *Handler {
	return &Handler{
		version:  version,
		started:  time.Now(),
		timeout:  3 * time.Second,
		checkers: make(map[string]Checker),
		optional: make(map[string]bool),
	}
}

// Register adds a required dependency. A failing required check makes the
// service unready.
func (h *Handler) Register(name string, check Checker) {
	h.checkers[name] = check
}

// RegisterOptional adds a dependency whose failure only degrades the service.
func (h *Handler) RegisterOptional(name string, check Checker) {
	h.checkers[name] = check
	h.optional[name] = true
}

func (h *Handler) run(ctx context.Context) (checks map[string]Check, ready, degraded bool) {
	checks = make(map[string]Check, len(h.checkers))
	ready = true
	for name, check := range h.checkers {
		start := time.Now()
		cctx, cancel := context.WithTimeout(ctx, h.timeout)
		err := check(cctx)
		cancel()

		result := Check{Status: "ok", Latency: time.Since(start).String()}
		if err != nil {
			result.Status = "error"
			result.Message = name + " check failed"
			if h.optional[name] {
				degraded = true
			} else {
				ready = false
			}
		}
		checks[name] = result
	}
	return checks, ready, degraded
}

// LivenessHandler answers 200 while the process is running.
func (h *Handler) LivenessHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// ReadinessHandler answers 503 when a required dependency is down.
func (h *Handler) ReadinessHandler(c echo.Context) error {
	checks, ready, _ := h.run(c.Request().Context())
	status, code := "ok", http.StatusOK
	if !ready {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}
	return c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}

// HealthHandler reports every check along with the version.
func (h *Handler) HealthHandler(c echo.Context) error {
	checks, ready, degraded := h.run(c.Request().Context())
	status, code := "ok", http.StatusOK
	switch {
	case !ready:
		status, code = "unhealthy", http.StatusServiceUnavailable
	case degraded:
		status = "degraded"
	}
	return c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
		Checks:    checks,
	})
}

// StatsHandler returns runtime statistics for monitoring.
func (h *Handler) StatsHandler(c echo.Context) error {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	deps := make([]string, 0, len(h.checkers))
	for name := range h.checkers {
		deps = append(deps, name)
	}
	sort.Strings(deps)

	return c.JSON(http.StatusOK, StatsResponse{
		GoVersion:    runtime.Version(),
		NumCPU:       runtime.NumCPU(),
		NumGoroutine: runtime.NumGoroutine(),
		MemAlloc:     m.Alloc,
		MemSys:       m.Sys,
		Uptime:       time.Since(h.started).Round(time.Second).String(),
		Dependencies: deps,
	})
}
