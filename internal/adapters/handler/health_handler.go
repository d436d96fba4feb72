package handler

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/milkwise/mother-care-service/internal/adapters/respond"
)

const healthCheckTimeout = 5 * time.Second

// HealthHandler exposes liveness and readiness probes. Dependencies may be
// nil in dev mode and are then skipped.
type HealthHandler struct {
	db          *sql.DB
	redisClient *redis.Client
	startTime   time.Time
	version     string
}

func NewHealthHandler(db *sql.DB, redisClient *redis.Client) *HealthHandler {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		version = "unknown"
	}
	return &HealthHandler{
		db:          db,
		redisClient: redisClient,
		startTime:   time.Now(),
		version:     version,
	}
}

type healthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]check `json:"checks"`
}

type check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Live confirms the process is running.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, healthResponse{
		Status:    "UP",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    map[string]check{"process": {Status: "UP"}},
	})
}

// Ready checks the store and the reset-code cache.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	checks := map[string]check{}
	status := "UP"
	httpStatus := http.StatusOK

	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			checks["database"] = check{Status: "DOWN", Message: err.Error()}
			status = "DOWN"
			httpStatus = http.StatusServiceUnavailable
		} else {
			checks["database"] = check{Status: "UP"}
		}
	}

	if h.redisClient != nil {
		if err := h.redisClient.Ping(ctx).Err(); err != nil {
			checks["redis"] = check{Status: "DOWN", Message: err.Error()}
			status = "DOWN"
			httpStatus = http.StatusServiceUnavailable
		} else {
			checks["redis"] = check{Status: "UP"}
		}
	}

	respond.WriteJSON(w, httpStatus, healthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    checks,
	})
}
