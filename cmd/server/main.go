package main

import (
	"log"

	"github.com/jengzang/fit-session-stats/internal/api"
	"github.com/jengzang/fit-session-stats/internal/config"
	"github.com/jengzang/fit-session-stats/internal/database"
	"github.com/jengzang/fit-session-stats/internal/decoder"
	"github.com/jengzang/fit-session-stats/internal/repository"
	"github.com/jengzang/fit-session-stats/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}
	if cfg.JWTSecret == "" {
		log.Println("[Server] JWT_SECRET is empty, API authentication is disabled")
	}

	// 初始化数据库
	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	sessions := service.NewSessionService(decoder.NewFitDecoder(), service.Options{
		MaxDurationMinutes: cfg.MaxDurationMinutes,
		Workers:            cfg.Workers,
		SkipFailed:         cfg.SkipFailed,
	})
	reports := service.NewReportService(sessions, repository.NewReportRepository(db), cfg.AnalyzeRoot)

	// 初始化路由
	router := api.SetupRouter(cfg, reports)

	// 启动服务器
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
