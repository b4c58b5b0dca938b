package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"

	"github.com/saulo-duarte/quizroom/internal/config"
	"github.com/saulo-duarte/quizroom/internal/container"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		config.Logger.WithError(err).Fatal("Failed to load config")
	}

	ctx := context.Background()
	c, err := container.New(ctx, cfg)
	if err != nil {
		config.Logger.WithError(err).Fatal("Failed to start stores")
	}

	handler := c.Router()

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		adapter := httpadapter.NewV2(handler)
		lambda.Start(adapter.ProxyWithContext)
		return
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		config.Logger.WithField("addr", cfg.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.WithError(err).Fatal("HTTP server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.Logger.WithError(err).Error("HTTP server shutdown failed")
	}
	if err := c.Close(shutdownCtx); err != nil {
		config.Logger.WithError(err).Error("Failed to flush stores")
		os.Exit(1)
	}
	config.Logger.Info("Stores flushed, bye")
}
