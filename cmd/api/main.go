package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"wfh-backend/internal/app"
	"wfh-backend/internal/config"
	"wfh-backend/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("invalid config")
	}
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	a, err := app.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("bootstrap")
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.WithError(err).Warn("close connections")
		}
	}()

	e, err := a.Echo()
	if err != nil {
		log.WithError(err).Fatal("build http server")
	}

	sched, err := a.Scheduler()
	if err != nil {
		log.WithError(err).Fatal("build scheduler")
	}
	if sched != nil {
		sched.Start()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.AppPort
	go func() {
		log.WithField("addr", addr).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("http shutdown")
	}
	if sched != nil {
		sched.Stop()
	}
}
