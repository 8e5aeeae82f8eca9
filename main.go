package main

import (
	"context"
	"log"
	"os"

	"github.com/jengzang/fit-session-stats/internal/cli"
	"github.com/jengzang/fit-session-stats/internal/config"
	"github.com/jengzang/fit-session-stats/internal/decoder"
	"github.com/jengzang/fit-session-stats/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	svc := service.NewSessionService(decoder.NewFitDecoder(), service.Options{
		MaxDurationMinutes: cfg.MaxDurationMinutes,
		Workers:            cfg.Workers,
		SkipFailed:         cfg.SkipFailed,
	})

	os.Exit(cli.Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, svc))
}
