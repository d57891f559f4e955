// Package api implements app.Runner for the tonlinkd host API process.
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apphttp "github.com/chainsafe/ton-deeplink/pkg/app/http"
	"github.com/chainsafe/ton-deeplink/pkg/auth"
	bridgeservice "github.com/chainsafe/ton-deeplink/pkg/bridge/service"
	"github.com/chainsafe/ton-deeplink/pkg/config"
	"github.com/chainsafe/ton-deeplink/pkg/explorer"
	"github.com/chainsafe/ton-deeplink/pkg/pgutil"
	"github.com/chainsafe/ton-deeplink/pkg/platform"
	"github.com/chainsafe/ton-deeplink/pkg/storage/memstore"
	"github.com/chainsafe/ton-deeplink/pkg/storage/pgstore"
	"github.com/chainsafe/ton-deeplink/pkg/storage/redisstore"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect/client"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect/correlator"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect/proof"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect/session"
)

const defaultRequestTimeout = 60

// Server holds cfg to init the api server.
type Server struct {
	cfg *config.Config
}

// NewServer initializes new api server.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("api server config is nil")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting tonlinkd",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("storage", cfg.Storage.Driver),
	)

	storage, closeStorage, err := OpenStorage(ctx, &cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer closeStorage()

	relay := platform.NewRelay(platform.WithRelayLogger(logger))
	tc, err := s.openClient(ctx, relay, storage, logger)
	if err != nil {
		return err
	}
	// Destroy runs before the storage is closed.
	defer tc.Destroy()

	exp, err := explorer.New(&explorer.Config{
		BaseURL:    cfg.Explorer.BaseURL,
		APIKey:     cfg.Explorer.APIKey,
		Timeout:    cfg.Explorer.Timeout,
		RetryCount: cfg.Explorer.RetryCount,
	}, explorer.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("create explorer client: %w", err)
	}

	svc, err := bridgeservice.NewService(ctx, bridgeservice.Config{
		MaxOperations: cfg.TonConnect.MaxOperations,
		Network:       cfg.TonConnect.Network,
	}, tc, relay, exp, logger)
	if err != nil {
		return fmt.Errorf("create bridge service: %w", err)
	}

	router, err := s.setupRouter(bridgeservice.NewLog(svc, logger), logger)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return apphttp.ServeAndWait(gctx, router, logger, &cfg.Server)
	})
	if cfg.Monitoring.Enabled {
		g.Go(func() error {
			return apphttp.ServeAndWait(gctx, promhttp.Handler(), logger.Named("metrics"), s.metricsServerConfig())
		})
	}
	return g.Wait()
}

// OpenStorage builds the session storage selected by cfg.Driver. The returned
// function releases the underlying connection.
func OpenStorage(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (session.Storage, func(), error) {
	switch cfg.Driver {
	case config.StorageRedis:
		rdb, err := redisstore.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Connected to redis", zap.Strings("addrs", cfg.Redis.Addrs))
		return redisstore.New(rdb, cfg.Redis.TTL), func() { _ = rdb.Close() }, nil
	case config.StoragePostgres:
		db, err := pgutil.ConnectDB(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		return pgstore.NewStore(db), func() { _ = db.Close() }, nil
	case config.StorageMemory, "":
		logger.Warn("Using in-memory session storage; sessions are lost on restart")
		return memstore.New(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func (s *Server) openClient(
	ctx context.Context,
	relay *platform.Relay,
	storage session.Storage,
	logger *zap.Logger,
) (*client.Client, error) {
	tcfg := s.cfg.TonConnect
	mode, err := proof.ParseMode(tcfg.ProofMode)
	if err != nil {
		return nil, err
	}

	tc, err := client.New(&client.Config{
		ManifestURL:           tcfg.ManifestURL,
		ReturnScheme:          tcfg.ReturnScheme,
		StoragePrefix:         tcfg.StoragePrefix,
		PreferredWallet:       tcfg.PreferredWallet,
		RequestProof:          tcfg.RequestProof,
		ProofMode:             mode,
		ProofDomain:           tcfg.ProofDomain,
		Network:               tcfg.Network,
		StrictAddressChecksum: tcfg.StrictAddressChecksum,
		Timeouts: correlator.Timeouts{
			Connect:     tcfg.Timeouts.Connect,
			Transaction: tcfg.Timeouts.Transaction,
			SignData:    tcfg.Timeouts.SignData,
		},
	}, relay, storage, platform.NewCryptoRandom(), client.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("create tonconnect client: %w", err)
	}

	st, err := tc.Restore(ctx)
	if err != nil {
		tc.Destroy()
		return nil, fmt.Errorf("restore session: %w", err)
	}
	logger.Info("Session restored", zap.Bool("connected", st.Connected))
	return tc, nil
}

func (s *Server) metricsServerConfig() *config.ServerConfig {
	cfg := s.cfg.Server
	cfg.Port = s.cfg.Monitoring.MetricsPort
	return &cfg
}

func (s *Server) setupRouter(svc bridgeservice.Service, logger *zap.Logger) (chi.Router, error) {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Second * defaultRequestTimeout))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	var guard func(http.Handler) http.Handler
	if s.cfg.Auth.Enabled {
		v, err := auth.NewJWTValidator(s.cfg.Auth.JWTSecret, s.cfg.Auth.Issuer, s.cfg.Auth.Audience)
		if err != nil {
			return nil, fmt.Errorf("create jwt validator: %w", err)
		}
		guard = auth.Middleware(v, logger)
		logger.Info("Bearer token auth enabled", zap.String("issuer", s.cfg.Auth.Issuer))
	}

	r.Route("/v1", func(r chi.Router) {
		if guard != nil {
			r.Use(guard)
		}
		bridgeservice.RegisterRoutes(r, svc, logger)
	})

	return r, nil
}
