package main

import (
	"os"
	"time"

	"go-orgkit/internal/app"
	"go-orgkit/internal/bootstrap"
	"go-orgkit/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// .env opsional: di container env sudah di-inject
		zap.L().Info("no .env file found, using environment variables")
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	router := gin.Default()

	if err := app.BuildApp(router); err != nil {
		zap.L().Fatal("failed to build app", zap.Error(err))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	auditLogger := bootstrap.NewStdoutAuditLogger()

	bootstrap.StartHTTPServer(router, bootstrap.ServerConfig{
		Port:         port,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, auditLogger)
}
