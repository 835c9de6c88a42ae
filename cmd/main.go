package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpctx "github.com/mkarpova/slidedeck-server/internal/api/http/context"
	"github.com/mkarpova/slidedeck-server/internal/api/http/router"
	"github.com/mkarpova/slidedeck-server/internal/config"
	"github.com/mkarpova/slidedeck-server/internal/logger"
	"github.com/mkarpova/slidedeck-server/internal/model"
	repo "github.com/mkarpova/slidedeck-server/internal/repository/mongo"
	"github.com/mkarpova/slidedeck-server/internal/server"
	"github.com/mkarpova/slidedeck-server/internal/service"
	"github.com/mkarpova/slidedeck-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := repo.NewConnection(ctx, cfg.Database.URI, cfg.Database.Name)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close(context.Background())

	userRepo := repo.NewUserRepository(db)
	deckRepo := repo.NewDeckRepository(db)
	elementRepo := repo.NewElementRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret)

	sessionService := service.NewSession(userRepo, tokenManager, logger)
	syncer := service.NewSyncer(sessionService, userRepo, deckRepo, elementRepo, logger)

	if err := sessionService.Initialize(ctx); err != nil {
		logger.Warn("no session state found, starting with an empty cache", "error", err.Error())
		syncer.Schedule()
	}

	ctxMgr := httpctx.NewManager()
	r := router.New(sessionService, syncer, ctxMgr, logger)
	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	// One last pass so mutations from the final requests reach the store.
	if err := syncer.Flush(shutdownCtx); err != nil {
		logger.Error("final save failed", "error", err.Error())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
