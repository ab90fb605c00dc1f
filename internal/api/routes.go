package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/riskwatch/account-risk-api/internal/services"
	"github.com/riskwatch/account-risk-api/internal/storage"
	"github.com/riskwatch/account-risk-api/pkg/config"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, cfg *config.Config) error {
	store := storage.NewMemoryStore(cfg.BatchRetention)
	svcs := services.NewServices(store, cfg)

	riskHandler := NewRiskHandler(svcs.Risk, cfg.MaxBatchSize)

	v1 := r.Group("/api/v1")
	{
		// Assessment endpoints
		v1.POST("/assess", riskHandler.AssessAccount)
		v1.POST("/assess/batch", riskHandler.AssessBatch)
		v1.GET("/demo", riskHandler.GetDemoAssessments)

		// Stored batch endpoints
		v1.POST("/batches/generate", riskHandler.GenerateBatch)
		v1.GET("/batches", riskHandler.ListBatches)
		v1.GET("/batches/:id", riskHandler.GetBatch)
		v1.GET("/batches/:id/summary", riskHandler.GetBatchSummary)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return nil
}
