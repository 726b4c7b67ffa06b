// internal/handler/health_handler.go
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ticketml-service/internal/config"
	"ticketml-service/internal/service"
	"ticketml-service/internal/utils"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	printService *service.PrintService
	config       *config.Config
	startTime    time.Time
	logger       *utils.ServiceLogger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(printService *service.PrintService, config *config.Config, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		printService: printService,
		config:       config,
		startTime:    time.Now(),
		logger:       utils.NewServiceLogger(logger, "health-handler"),
	}
}

// RegisterRoutes registers health check routes
func (h *HealthHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/health", h.HealthCheck)
	router.GET("/ready", h.ReadinessCheck)
	router.GET("/live", h.LivenessCheck)
}

// HealthCheck reports service status and the printer configuration
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	health := &HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Service:   h.config.App.Name,
		Version:   h.config.App.Version,
		Uptime:    time.Since(h.startTime).String(),
		Checks:    make(map[string]CheckResult),
	}

	backend := h.printService.DefaultBackend()
	if h.backendRegistered(backend) {
		health.Checks["backend"] = CheckResult{
			Status:  "healthy",
			Message: "Backend " + backend + " available",
		}
	} else {
		health.Status = "unhealthy"
		health.Checks["backend"] = CheckResult{
			Status:  "unhealthy",
			Message: "Backend " + backend + " is not registered",
		}
	}

	health.Checks["printer"] = CheckResult{
		Status: "healthy",
		Data: map[string]interface{}{
			"connection":        h.config.Printer.Connection,
			"strip_indentation": h.config.Printer.StripIndentation,
		},
	}

	statusCode := http.StatusOK
	if health.Status == "unhealthy" {
		h.logger.Warn("Health check failed", zap.String("backend", backend))
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, health)
}

// ReadinessCheck for Kubernetes readiness probe
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	if !h.backendRegistered(h.printService.DefaultBackend()) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "configured backend not available",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now(),
	})
}

// LivenessCheck for Kubernetes liveness probe
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now(),
	})
}

func (h *HealthHandler) backendRegistered(name string) bool {
	for _, info := range h.printService.Backends() {
		if info.Name == name {
			return true
		}
	}
	return false
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Service   string                 `json:"service"`
	Version   string                 `json:"version"`
	Uptime    string                 `json:"uptime"`
	Checks    map[string]CheckResult `json:"checks"`
}

// CheckResult represents individual check result
type CheckResult struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
}
