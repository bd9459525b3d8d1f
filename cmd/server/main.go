package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hdcasedi/competenceo/internal/config"
	"github.com/hdcasedi/competenceo/internal/handlers"
	"github.com/hdcasedi/competenceo/internal/logging"
	"github.com/hdcasedi/competenceo/internal/mailer"
	authmw "github.com/hdcasedi/competenceo/internal/middleware/auth"
	loggingmw "github.com/hdcasedi/competenceo/internal/middleware/logging"
	"github.com/hdcasedi/competenceo/internal/models"
	"github.com/hdcasedi/competenceo/internal/mykafka"
	"github.com/hdcasedi/competenceo/internal/repo"
	"github.com/hdcasedi/competenceo/internal/service"
	httpserver "github.com/hdcasedi/competenceo/internal/transport/http"
	"github.com/hdcasedi/competenceo/pkg/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gormDB, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&models.User{},
		&models.InvitationToken{},
		&models.Classroom{},
		&models.CompetencyDomain{},
		&models.Competency{},
		&models.Enrollment{},
	); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	var (
		mail mailer.Mailer = mailer.Nop{}
		prod *mykafka.Producer
	)
	if len(cfg.KafkaBrokers) > 0 {
		prod = mykafka.NewProducer(cfg.KafkaBrokers, cfg.MailTopic)
		mail = &mailer.KafkaMailer{Producer: prod, BaseURL: cfg.BaseURL}
	} else {
		logger.Warn("no kafka brokers configured, invitation mail disabled")
	}

	gormRepo := &repo.GormRepo{DB: gormDB}
	guard := &service.Guard{Repo: gormRepo}
	authSvc := &service.AuthService{
		Repo:       gormRepo,
		Secret:     cfg.SessionSecret,
		SessionTTL: cfg.SessionTTL,
		DevLogin:   cfg.DevLogin,
	}
	inviteSvc := &service.InviteService{Repo: gormRepo, Mailer: mail}
	adminSvc := &service.AdminService{Repo: gormRepo, Guard: guard}
	resourceSvc := &service.ResourceService{Repo: gormRepo, Guard: guard}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(authmw.Gate())
	e.Use(authmw.SessionContext(authSvc))

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &handlers.AuthHandler{
			Auth:          authSvc,
			Invites:       inviteSvc,
			SecureCookies: cfg.Env != "development",
		},
		AdminHandler:    &handlers.AdminHandler{Admin: adminSvc, Invites: inviteSvc, Guard: guard},
		ResourceHandler: &handlers.ResourceHandler{Resources: resourceSvc},
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if prod != nil {
		if err := prod.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	logger.Info("shutdown complete")
}
