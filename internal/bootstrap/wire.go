package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/balekai/taskboard/internal/application/auth"
	"github.com/balekai/taskboard/internal/application/board"
	"github.com/balekai/taskboard/internal/config"
	"github.com/balekai/taskboard/internal/infrastructure/db/postgres"
	"github.com/balekai/taskboard/internal/infrastructure/identity"
	"github.com/balekai/taskboard/internal/infrastructure/memory"
	rabbitmq_pub "github.com/balekai/taskboard/internal/infrastructure/messaging/rabbitmq"
	"github.com/balekai/taskboard/internal/infrastructure/redis"
	"github.com/balekai/taskboard/internal/infrastructure/security"
	"github.com/balekai/taskboard/internal/logger"
	http_handlers "github.com/balekai/taskboard/internal/transport/http/handlers"
	"github.com/balekai/taskboard/internal/transport/http/middleware"
	"github.com/balekai/taskboard/internal/transport/http/response"
	"github.com/balekai/taskboard/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing.
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(addr string, debug bool) (DBCloser, error)

	NewRedis func(addr, password string, db int) RedisClient

	NewPublisher func(rabbitURL string) (auth.EventPublisher, error)

	NewIdentityProvider func(verifyURL, apiKey string) auth.IdentityProvider

	NewRouter func(router.Deps) (http.Handler, error)
}

type DBCloser interface {
	Close() error
}

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) db
	db, err := deps.NewDB(cfg.DBAddr, cfg.DBDebug)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	sqlDB, ok := db.(*sql.DB)
	if !ok {
		runCleanup(cleanupFns)
		return nil, nil, errors.New("bootstrap: NewDB did not return *sql.DB")
	}

	// 2) repos
	userRepo := postgres.NewUserRepo(sqlDB)
	boardRepo := postgres.NewBoardRepo(sqlDB)
	listRepo := postgres.NewListRepo(sqlDB)
	cardRepo := postgres.NewCardRepo(sqlDB)
	linker := postgres.NewAccountLinker(sqlDB)

	// 3) redis (best-effort); fall back to the in-memory revocation list
	var revocations auth.TokenRevocations = memory.NewTokenRevocations()
	if deps.NewRedis != nil {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; using in-memory revocation list")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			if rc, ok := c.(*redis.Client); ok {
				revocations = redis.NewTokenBlacklist(rc)
			}
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	// 4) publisher
	pub, err := deps.NewPublisher(cfg.RabbitURL)
	if err != nil {
		if cfg.Env == "dev" {
			logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
			pub = memory.NewNoopPublisher()
		} else {
			runCleanup(cleanupFns)
			return nil, nil, err
		}
	}
	if c, ok := pub.(interface{ Close() error }); ok {
		cleanupFns = append(cleanupFns, func() { _ = c.Close() })
	}

	// 5) identity provider
	var provider auth.IdentityProvider
	if deps.NewIdentityProvider != nil {
		provider = deps.NewIdentityProvider(cfg.IdentityVerifyURL, cfg.IdentityAPIKey)
	} else {
		provider = identity.NewProvider(cfg.IdentityVerifyURL, cfg.IdentityAPIKey)
	}
	if p, ok := provider.(*identity.Provider); ok && !p.IsConfigured() {
		logger.Logger.Warn().Msg("identity provider not configured; federated logins disabled")
	}

	// 6) security
	logger.Logger.Info().Str("issuer", cfg.JWTIssuer).Msg("initializing jwt signer")
	hasher := security.NewBcryptHasher(12)
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)

	// 7) services
	authSvc := auth.NewService(
		userRepo,
		linker,
		hasher,
		signer,
		provider,
		revocations,
		pub,
		auth.Config{
			AccessTTL:  cfg.AccessTokenTTL,
			RefreshTTL: cfg.RefreshTokenTTL,
		},
	)

	authSvc = authSvc.WithAudit(func(action string, fields map[string]string) {
		evt := logger.Logger.Info().
			Bool("audit", true).
			Str("action", action)
		for k, v := range fields {
			evt = evt.Str(k, v)
		}
		evt.Msg("audit")

		switch action {
		case "account_linked":
			middleware.AccountLinksTotal.WithLabelValues("linked").Inc()
		case "federated_user_created":
			middleware.AuthOutcomesTotal.WithLabelValues("federated", "verified").Inc()
		}
	})

	boardSvc := board.NewService(boardRepo, listRepo, cardRepo, userRepo)

	// 8) handlers + middleware
	authH := http_handlers.NewAuthHandler(authSvc)
	boardH := http_handlers.NewBoardHandler(boardSvc)
	healthH := http_handlers.NewHealthHandler(sqlDB)

	authMW := middleware.Auth(authSvc, response.WriteError)

	// 9) router
	mux, err := deps.NewRouter(router.Deps{
		Health: healthH,
		Auth:   authH,
		Boards: boardH,
		AuthMW: authMW,
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 10) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB: func(addr string, debug bool) (DBCloser, error) {
			return config.NewDB(addr, debug)
		},
		NewRedis: func(addr, password string, db int) RedisClient {
			return redis.New(addr, password, db)
		},
		NewPublisher: func(url string) (auth.EventPublisher, error) {
			return rabbitmq_pub.NewPublisher(url)
		},
		NewRouter: router.New,
	}
}

func runCleanup(fns []func()) {
	// reverse order, like defers
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
