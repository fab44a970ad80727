// @title                       Carbon Net-Zero API
// @version                     1.0.0
// @description                 Plant telemetry, offsets, net-zero reporting and reduction advice.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "carbon_netzero/docs"
	"carbon_netzero/internal/advice"
	"carbon_netzero/internal/config"
	"carbon_netzero/internal/handlers"
	"carbon_netzero/internal/llm"
	"carbon_netzero/internal/logger"
	"carbon_netzero/internal/notify"
	"carbon_netzero/internal/repository"
	"carbon_netzero/internal/repository/db"
	"carbon_netzero/internal/server"
	"carbon_netzero/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// configFileEnv points at an explicit config file; unset searches configs/.
	configFileEnv   = "CARBON_CONFIG_FILE"
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load(os.Getenv(configFileEnv))
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.GetWithFormat(cfg.LogLevel, cfg.LogFormat)

	sqlDB, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repos := repository.NewRepository(sqlDB)
	pipeline := newAdvicePipeline(ctx, cfg, repos.Telemetry, reg, log)
	alerts := newAlertDispatcher(cfg, log)

	services := service.NewService(repos, service.Deps{
		Log:            log,
		Pipeline:       pipeline,
		Alerts:         alerts,
		AlertThreshold: cfg.Alerts.CO2ThresholdKg,
		Auth:           service.AuthConfig{SigningKey: cfg.Auth.SigningKey, TokenTTL: cfg.Auth.TokenTTL},
	})
	apiHandler := handlers.NewHandler(services, log, handlers.Options{
		IngestToken:     cfg.Ingest.Token,
		EnableDevRoutes: !cfg.IsProduction(),
		Metrics:         promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	if cfg.Simulator.Enabled {
		go services.Simulator.Run(ctx, cfg.Simulator.Tick)
		log.Infow("simulator started", "tick", cfg.Simulator.Tick)
	}

	srv := &server.Server{WriteTimeout: cfg.AI.GenerateTimeout + time.Minute}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	waitForShutdown(cancel, srv, alerts, log)
}

// newAdvicePipeline builds the strategies pipeline. Without an API key the
// pipeline still answers, from the heuristic.
func newAdvicePipeline(ctx context.Context, cfg *config.Config, source advice.TelemetrySource, reg prometheus.Registerer, log *logger.Logger) *advice.Pipeline {
	metrics := advice.NewMetrics(reg)

	var invoker *advice.Invoker
	if cfg.AI.APIKey == "" {
		log.Warnw("ai.api_key not set; strategies will use the heuristic")
	} else {
		gen, err := llm.NewGemini(ctx, cfg.AI.APIKey, llm.Options{JSONMode: cfg.AI.JSONMode})
		if err != nil {
			log.Errorw("gemini client unavailable; strategies will use the heuristic", "err", err)
		} else {
			invoker = advice.NewInvoker(gen, log, metrics)
		}
	}

	return advice.NewPipeline(advice.Deps{
		Source:  source,
		Invoker: invoker,
		Log:     log,
		Metrics: metrics,
	}, cfg.AI.Pipeline())
}

func newAlertDispatcher(cfg *config.Config, log *logger.Logger) *notify.Dispatcher {
	a := cfg.Alerts
	brand := notify.Branding{OrgName: a.OrgName, DashboardURL: a.DashboardURL}
	senders := notify.BuildSenders(log, brand,
		notify.EmailConfig{
			Host:        a.Email.Host,
			Port:        a.Email.Port,
			Username:    a.Email.Username,
			Password:    a.Email.Password,
			From:        a.Email.From,
			DefaultTo:   a.Email.DefaultTo,
			Departments: a.Email.Departments,
		},
		notify.SMSConfig{
			AccountSID:  a.SMS.AccountSID,
			AuthToken:   a.SMS.AuthToken,
			From:        a.SMS.From,
			DefaultTo:   a.SMS.DefaultTo,
			BaseURL:     a.SMS.BaseURL,
			Departments: a.SMS.Departments,
		},
		&http.Client{Timeout: a.SendTimeout},
	)
	return notify.NewDispatcher(log, notify.Options{
		QueueSize:   a.QueueSize,
		Workers:     a.Workers,
		SendTimeout: a.SendTimeout,
	}, senders...)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, alerts *notify.Dispatcher, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	// allow in-flight requests to complete, then flush queued alerts
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
	if err := alerts.Close(ctx); err != nil {
		log.Errorw("alert queue not drained", "err", err)
	}
}
