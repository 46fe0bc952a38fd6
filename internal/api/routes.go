package api

import (
	"github.com/gin-gonic/gin"

	"github.com/gymbeam/geoaudit/internal/telemetry"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, handler *Handler, provider *telemetry.Provider) {
	// Health and readiness checks
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)

	if provider != nil {
		router.GET("/metrics", gin.WrapH(provider.Handler()))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Audit endpoints
		auditGroup := v1.Group("/audit")
		{
			auditGroup.POST("", handler.Audit)            // POST /api/v1/audit
			auditGroup.POST("/batch", handler.AuditBatch) // POST /api/v1/audit/batch
		}

		// Stored report endpoints
		reports := v1.Group("/reports")
		{
			reports.GET("", handler.ListReports)   // GET /api/v1/reports
			reports.GET("/:id", handler.GetReport) // GET /api/v1/reports/:id
		}

		// Checklist introspection endpoints
		v1.GET("/criteria", handler.ListCriteria)  // GET /api/v1/criteria
		v1.GET("/allowlist", handler.GetAllowlist) // GET /api/v1/allowlist
	}
}
