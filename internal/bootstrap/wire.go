package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/application/auth"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/application/deck"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/application/grammar"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/audit"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/config"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/infrastructure/db/postgres"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/infrastructure/memory"
	rabbitmq_pub "github.com/PavelNikolaichev/LangLearn.Backend/internal/infrastructure/messaging/rabbitmq"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/infrastructure/redis"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/infrastructure/security"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/logger"
	http_handlers "github.com/PavelNikolaichev/LangLearn.Backend/internal/transport/http/handlers"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/transport/http/middleware"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/transport/http/response"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/transport/http/router"
)

const (
	cacheKeyPrefix = "langlearn:"
	migrateTimeout = 30 * time.Second
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(DefaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
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

	NewDB func(dsn string, debug bool) (*sql.DB, error)

	Migrate func(ctx context.Context, db *sql.DB) error

	NewRedis func(addr, password string, db int) RedisClient

	// NewCache builds the read-model cache on a pinged client. Nil leaves caching off.
	NewCache func(c RedisClient, prefix string) (Cache, error)

	NewPublisher func(url, exchange string) (Publisher, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
}

// Cache serves both the deck and the grammar set read models.
type Cache interface {
	deck.Cache
	grammar.Cache
}

// Publisher is an event publisher that owns a connection.
type Publisher interface {
	auth.EventPublisher
	Close() error
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	if deps.LoadConfig == nil || deps.NewDB == nil || deps.NewRouter == nil {
		return nil, nil, errors.New("bootstrap: LoadConfig, NewDB and NewRouter are required")
	}

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

	// 2) schema
	if cfg.DBAutoMigrate && deps.Migrate != nil {
		ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
		err := deps.Migrate(ctx, db)
		cancel()
		if err != nil {
			runCleanup(cleanupFns)
			return nil, nil, err
		}
		logger.Logger.Info().Msg("migrations applied")
	}

	// 3) repos
	userRepo := postgres.NewUserRepo(db)
	deckRepo := postgres.NewDeckRepo(db)
	flashcardRepo := postgres.NewFlashcardRepo(db)
	grammarSetRepo := postgres.NewGrammarSetRepo(db)
	grammarRepo := postgres.NewGrammarRepo(db)

	// 4) redis (best-effort)
	var cache Cache
	if cfg.RedisAddr != "" && deps.NewRedis != nil {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := c.Ping(context.Background()); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; cache disabled")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
			cache = buildCache(deps.NewCache, c)
		}
	}

	// 5) publisher
	var pub auth.EventPublisher = memory.NewNoopPublisher()
	if cfg.RabbitURL != "" && deps.NewPublisher != nil {
		p, err := deps.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		switch {
		case err == nil:
			pub = p
			cleanupFns = append(cleanupFns, func() { _ = p.Close() })
		case cfg.Env == "dev":
			logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
		default:
			runCleanup(cleanupFns)
			return nil, nil, err
		}
	}

	// 6) security
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	tokens, err := security.NewJWTIssuer(cfg.JWTKey, cfg.TokenTTL)
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 7) services
	authSvc := auth.NewService(userRepo, hasher, tokens, pub).
		WithAudit(audit.New(logger.Logger).Record)

	deckSvc := deck.NewService(deckRepo, flashcardRepo)
	grammarSvc := grammar.NewService(grammarSetRepo, grammarRepo)
	if cache != nil {
		deckSvc = deckSvc.WithCache(cache, cfg.CacheTTL)
		grammarSvc = grammarSvc.WithCache(cache, cfg.CacheTTL)
	}

	// 8) router
	mux, err := deps.NewRouter(router.Deps{
		Health:      http_handlers.NewHealthHandler(db),
		Auth:        http_handlers.NewAuthHandler(authSvc),
		Decks:       http_handlers.NewDeckHandler(deckSvc),
		Flashcards:  http_handlers.NewFlashcardHandler(deckSvc),
		GrammarSets: http_handlers.NewGrammarSetHandler(grammarSvc),
		Grammars:    http_handlers.NewGrammarHandler(grammarSvc),
		AuthMW:      middleware.Auth(tokens, response.WriteError),
		RequestIDMW: middleware.RequestID,
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 9) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	var once sync.Once
	cleanup := func() {
		once.Do(func() { runCleanup(cleanupFns) })
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

// DefaultDeps wires the production implementations.
func DefaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB:      config.NewDB,
		Migrate:    postgres.Migrate,
		NewRedis: func(addr, password string, db int) RedisClient {
			return redis.New(addr, password, db)
		},
		NewCache: NewRedisCache,
		NewPublisher: func(url, exchange string) (Publisher, error) {
			p, err := rabbitmq_pub.NewPublisher(url, exchange)
			if err != nil {
				return nil, err
			}
			return p, nil
		},
		NewRouter: router.New,
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}

// NewRedisCache is the default Deps.NewCache. It only accepts clients made by redis.New.
func NewRedisCache(c RedisClient, prefix string) (Cache, error) {
	rc, ok := c.(*redis.Client)
	if !ok {
		return nil, fmt.Errorf("no cache for redis client %T", c)
	}
	return redis.NewCache(rc, prefix), nil
}

// buildCache never fails startup: a missing factory or a factory error leaves
// caching off with a warning.
func buildCache(newCache func(RedisClient, string) (Cache, error), c RedisClient) Cache {
	if newCache == nil {
		logger.Logger.Warn().Msg("redis connected but no cache factory; cache disabled")
		return nil
	}
	cache, err := newCache(c, cacheKeyPrefix)
	if err != nil || cache == nil {
		logger.Logger.Warn().Err(err).Msg("cache unavailable; cache disabled")
		return nil
	}
	return cache
}
