package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cbsinteractive/linesearch/config"
	"github.com/cbsinteractive/linesearch/db"
	"github.com/cbsinteractive/linesearch/service"
	"github.com/cbsinteractive/linesearch/service/exceptions"
	"github.com/google/gops/agent"
	"github.com/sirupsen/logrus"
)

func main() {
	agent.Listen(agent.Options{})
	defer agent.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := cfg.Log.Logger()
	if err != nil {
		log.Fatal(err)
	}

	reporter, err := exceptions.New(cfg.Sentry.DSN, cfg.Sentry.Env, logger)
	if err != nil {
		logger.Fatalf("creating exception reporter: %v", err)
	}

	repo, closeRepo := repository(cfg.Redis, logger)
	defer closeRepo()

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      service.New(repo, cfg.Fps, logger, reporter).Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server encountered a fatal error: ", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("shutdown")
	}
}

// repository connects to redis, falling back to memory when it is unreachable
func repository(cfg config.Redis, logger logrus.FieldLogger) (db.Repository, func()) {
	c, err := db.NewClient(&db.Options{Addr: cfg.Addr, DB: cfg.DB, Password: cfg.Password})
	if err == nil {
		err = c.Ping()
	}
	if err != nil {
		logger.WithError(err).Warn("redis unavailable, storing lines in memory")
		if c != nil {
			c.Close()
		}
		return db.NewMemory(), func() {}
	}
	return db.NewRepository(c), func() { c.Close() }
}
