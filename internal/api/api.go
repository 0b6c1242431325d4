package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAPI registers all routes on the router.
func SetupAPI(router *gin.Engine, db *gorm.DB, analyzer Analyzer, adminKeyHash string) {
	router.GET("/health", healthCheck(db))

	v1 := router.Group("/api/v1")
	{
		analysisHandler := NewAnalysisHandler(analyzer, adminKeyHash)
		analysisHandler.RegisterRoutes(v1)
	}
}

func healthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, errEnvelope("database unreachable"))
			return
		}
		c.JSON(http.StatusOK, envelope(gin.H{"status": "ok"}))
	}
}
