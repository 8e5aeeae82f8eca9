package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/fit-session-stats/internal/config"
	"github.com/jengzang/fit-session-stats/internal/handler"
	"github.com/jengzang/fit-session-stats/internal/middleware"
	"github.com/jengzang/fit-session-stats/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, reportService *service.ReportService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Session statistics API is running",
		})
	})

	reportHandler := handler.NewReportHandler(reportService)

	// API 路由组
	api := r.Group("/api/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		// 分析报告接口
		reports := api.Group("/reports")
		{
			reports.GET("", reportHandler.ListReports)
			reports.GET("/:id", reportHandler.GetReport)
			reports.POST("", middleware.RateLimit(cfg.AnalyzeRateLimit, time.Minute), reportHandler.CreateReport)
		}
	}

	return r
}
