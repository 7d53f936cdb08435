package main

import (
	"flag"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/config"
	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/repository"
	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/server"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logrus.New()

	cfgPath := flag.String("config", "configs/config.yml", "path to the config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	repository.MigrateDB(db, logger)

	srv := server.NewServer(db, cfg, log, logger)
	srv.Run(cfg.Server.Port)
}
