package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"quote-workflow/internal/adapter/auth"
	httpadp "quote-workflow/internal/adapter/http"
	"quote-workflow/internal/adapter/mail"
	"quote-workflow/internal/adapter/middleware"
	"quote-workflow/internal/adapter/repository/mysql"
	"quote-workflow/internal/config"
	"quote-workflow/internal/infrastructure/cache"
	"quote-workflow/internal/infrastructure/db"
	"quote-workflow/internal/infrastructure/logger"
	"quote-workflow/internal/infrastructure/metrics"
	"quote-workflow/internal/usecase/audit"
	"quote-workflow/internal/usecase/emailtemplate"
	"quote-workflow/internal/usecase/guardrail"
	"quote-workflow/internal/usecase/identity"
	"quote-workflow/internal/usecase/notification"
	"quote-workflow/internal/usecase/workflow"
	"quote-workflow/pkg/id"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.IsDevelopment())
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("mysql connect")
	}
	if cfg.AutoMigrate {
		if err := mysql.Migrate(gdb); err != nil {
			log.Fatal().Err(err).Msg("auto-migrate")
		}
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			log.Fatal().Err(err).Msg("redis connect")
		}
		defer rdb.Close()
	} else {
		log.Warn().Msg("REDIS_ADDR not set, Idempotency-Key is ignored")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	quotes := mysql.NewQuoteRepository(gdb)
	events := mysql.NewQuoteEventRepository(gdb)
	settings := mysql.NewSettingRepository(gdb)
	templates := mysql.NewEmailTemplateRepository(gdb)
	profiles := mysql.NewProfileRepository(gdb)

	providers := map[string]notification.Provider{}
	if cfg.ResendAPIKey != "" {
		providers[notification.ProviderResend] = mail.NewResend(cfg.ResendAPIKey)
	}
	if cfg.SMTPHost != "" {
		providers[notification.ProviderSMTP] = mail.NewSMTP(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
		})
	}

	limits := guardrail.NewUsecase(settings, log)
	wf := workflow.NewUsecase(workflow.Deps{
		Quotes:    quotes,
		Profiles:  profiles,
		UoW:       mysql.NewGormUoW(gdb),
		Guardrail: limits,
		Audit:     audit.NewWriter(events, m, log),
		Notifier:  notification.NewDispatcher(templates, settings, providers, cfg.DefaultFromAddress, m, log),
		Metrics:   m,
		Log:       log,
		BaseURL:   cfg.AppBaseURL,
	})
	resolver := identity.NewResolver(auth.NewJWTVerifier(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience), profiles, log)

	checks := map[string]httpadp.Check{
		"mysql": func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.HTTPErrorHandler = httpadp.ErrorHandler(log)
	e.Pre(middleware.CORS())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: id.NewID32}))
	e.Use(echomw.Recover(), requestLogger(log))

	e.GET("/health", httpadp.NewHandler(checks).Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	g := e.Group(cfg.WorkflowBasePath, middleware.Auth(resolver, log))
	if rdb != nil {
		g.Use(middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, log))
	}
	httpadp.NewWorkflowHandler(wf, limits, emailtemplate.NewUsecase(templates, log), log).Register(g)

	go func() {
		addr := ":" + cfg.AppPort
		log.Info().Str("addr", addr).Str("base_path", cfg.WorkflowBasePath).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("bye")
}

// requestLogger writes one access line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
