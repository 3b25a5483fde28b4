package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/djangocon/conference-site/internal/api/web"
	"github.com/djangocon/conference-site/internal/app"
	"github.com/djangocon/conference-site/internal/auth"
	"github.com/djangocon/conference-site/internal/config"
	"github.com/djangocon/conference-site/internal/logger"
	"github.com/djangocon/conference-site/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "site: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Конфиг процесса и логгер.
	appCfg, err := config.LoadAppConfig()
	if err != nil {
		return fmt.Errorf("load app config: %w", err)
	}
	logCfg, err := config.LoadLoggerSettings()
	if err != nil {
		return fmt.Errorf("load logger settings: %w", err)
	}
	log, err := logger.New(logCfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	// 2. БД и миграции.
	gormDB, closeDB, err := app.OpenDB(log, true)
	if err != nil {
		return err
	}
	defer closeDB()

	// 3. Сервисы и HTTP-роутер.
	services := app.NewServices(gormDB, appCfg)
	gin.SetMode(appCfg.GinMode)
	router := web.NewRouter(web.Deps{
		Config:    appCfg,
		Log:       log,
		Metrics:   web.NewMetrics(),
		Sessions:  auth.NewSessions(appCfg.SessionSecret, appCfg.SessionTTL),
		Schedule:  services.Schedule,
		Proposals: services.Proposals,
		Sponsors:  services.Sponsors,
		Identity:  services.Identity,
	})

	httpServer := &http.Server{
		Addr:              appCfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 4. gRPC health для проб оркестратора; пустой GRPC_ADDR отключает.
	// Порт занимаем до старта HTTP, чтобы ошибка не оставила HTTP висеть.
	var (
		healthServer *server.HealthServer
		grpcLis      net.Listener
	)
	if appCfg.GRPCAddr != "" {
		grpcLis, err = net.Listen("tcp", appCfg.GRPCAddr)
		if err != nil {
			return fmt.Errorf("listen %s: %w", appCfg.GRPCAddr, err)
		}
		healthServer = server.NewHealthServer()
		healthServer.SetServing(true)
	}

	errs := make(chan error, 2)

	// 5. HTTP и gRPC в горутинах.
	go func() {
		log.Info("http server listening", slog.String("addr", appCfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("http serve: %w", err)
		}
	}()
	if healthServer != nil {
		go func() {
			log.Info("grpc health server listening", slog.String("addr", appCfg.GRPCAddr))
			if err := healthServer.Serve(grpcLis); err != nil {
				errs <- fmt.Errorf("grpc serve: %w", err)
			}
		}()
	}

	// 6. Грейсфул-шатдаун по сигналу или падению одного из серверов.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	var serveErr error
	select {
	case serveErr = <-errs:
		log.Error("server failed", slog.Any("error", serveErr))
	case sig := <-stop:
		log.Info("shutting down", slog.String("signal", sig.String()))
	}

	if healthServer != nil {
		healthServer.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return errors.Join(serveErr, fmt.Errorf("http shutdown: %w", err))
	}
	if serveErr != nil {
		return serveErr
	}

	log.Info("server stopped")
	return nil
}
