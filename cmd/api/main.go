package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tipjar/internal/adapter/memstore"
	"tipjar/internal/adapter/repo"
	"tipjar/internal/domain"
	"tipjar/internal/http/handlers"
	httpapi "tipjar/internal/http/httpapi"
	"tipjar/internal/infra"
	"tipjar/internal/infra/credentials"
	"tipjar/internal/infra/geoip"
	"tipjar/internal/ledger"
	"tipjar/internal/metrics"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	ctx := context.Background()
	var (
		accounts  domain.AccountRepository
		donations domain.DonationStore
		gateways  handlers.GatewayVerifier
		ready     func(context.Context) error
	)
	switch cfg.StoreDriver {
	case infra.StoreDriverMemory:
		store := memstore.New()
		accounts, donations = store.Accounts(), store.Donations()
		static, err := credentials.ParseStatic(cfg.GatewaySecrets)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid GATEWAY_SECRETS")
		}
		gateways = static
		logger.Warn().Msg("using in-memory store; data is lost on restart")
	default:
		dbpool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer dbpool.Close()
		runner := infra.NewSQLRunner(dbpool, logger)
		accounts = repo.NewAccountRepository(runner)
		donations = repo.NewDonationRepository(runner)
		gateways = credentials.NewStore(runner)
		ready = dbpool.Ping
	}

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	defer resolver.Close()

	svc := ledger.New(accounts, donations,
		ledger.WithLogger(logger.With().Str("component", "ledger").Logger()),
		ledger.WithMetrics(m),
		ledger.WithMaxPageSize(cfg.ListMaxPageSize),
	)

	app := &handlers.App{
		Ledger:   svc,
		Gateways: gateways,
		Logger:   logger,
		Metrics:  promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		Ready:    ready,
	}
	router := httpapi.NewRouter(app, httpapi.Options{
		JWTSecret:       cfg.JWTSecret,
		JWTIssuer:       cfg.JWTIssuer,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		DefaultLocale:   cfg.DefaultLocale,
		CountryLookup:   resolver.Lookup(),
		RateLimitPerMin: cfg.RateLimitPerMin,
		Logger:          logger,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("addr", server.Addr()).Str("store", cfg.StoreDriver).Msg("API listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
