package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "creditscan/docs"
	"creditscan/internal/handler"
	"creditscan/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	log *zap.Logger,
	allowedOrigins []string,
	reportH *handler.ReportHandler,
	parseH *handler.ParseHandler,
	statsH *handler.StatsHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Report routes
	reports := v1.Group("/reports")
	reports.POST("", reportH.Upload)
	reports.GET("", reportH.List)
	reports.GET("/:id", reportH.GetByID)
	reports.POST("/:id/parse", reportH.RetryParse)
	reports.GET("/:id/result", reportH.GetResult)
	reports.GET("/:id/export", reportH.Export)
	reports.GET("/:id/download", reportH.Download)

	// Stateless parsing
	v1.POST("/parse/text", parseH.ParseText)

	v1.GET("/stats", statsH.GetStats)

	return r
}
