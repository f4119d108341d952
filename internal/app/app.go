package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/ldsnotes/internal/annotations"
	"github.com/MrSnakeDoc/ldsnotes/internal/config"
	"github.com/MrSnakeDoc/ldsnotes/internal/content"
	"github.com/MrSnakeDoc/ldsnotes/internal/httpserver"
	"github.com/MrSnakeDoc/ldsnotes/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ldsnotes/internal/logger"
	"github.com/MrSnakeDoc/ldsnotes/internal/notes"
	"github.com/MrSnakeDoc/ldsnotes/internal/redis"
	"github.com/MrSnakeDoc/ldsnotes/internal/scheduler"
	"github.com/MrSnakeDoc/ldsnotes/internal/store"
	redisstore "github.com/MrSnakeDoc/ldsnotes/internal/store/redis"
	"github.com/MrSnakeDoc/ldsnotes/internal/version"
)

// Clients are the upstream clients shared by the server and the CLI.
type Clients struct {
	Content *content.Client
	Notes   *notes.Service
}

func NewClients(cfg *config.Config, log logger.Logger) Clients {
	cc := content.NewClient(content.Options{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.HTTPTimeout,
		UserAgent: cfg.UserAgent,
	}, log)
	nc := notes.NewClient(notes.Options{
		BaseURL:   cfg.BaseURL,
		Token:     cfg.Token,
		Timeout:   cfg.HTTPTimeout,
		UserAgent: cfg.UserAgent,
	}, log)
	return Clients{
		Content: cc,
		Notes:   notes.NewService(nc, annotations.NewAssembler(cc, log), log),
	}
}

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	sweeper     *scheduler.SessionSweeper
}

// New wires the session store, the upstream clients and the HTTP server.
// With the redis store it blocks until Redis answers or the connect budget
// runs out.
func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: loggerClient}

	var sessions store.TokenStore
	switch cfg.SessionStore {
	case config.StoreRedis:
		client, err := redis.Connect(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			return nil, fmt.Errorf("session store: %w", err)
		}
		a.redisClient = client
		sessions = redisstore.NewStore(client)
	default:
		mem := store.NewMemory()
		a.sweeper = scheduler.NewSessionSweeper(mem, loggerClient, cfg.SweepEvery)
		sessions = mem
	}
	loggerClient.Info("session store ready", logger.String("mode", cfg.SessionStore))

	clients := NewClients(cfg, loggerClient)

	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		Notes:        clients.Notes,
		Content:      clients.Content,
		Sessions:     sessions,
		StoreMode:    cfg.SessionStore,
		DefaultToken: cfg.Token,
		SessionTTL:   cfg.SessionTTL,
		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,
		RateBurst:    cfg.RateBurst,
		RatePerMin:   cfg.RatePerMin,
	}

	a.server = httpserver.New(cfg, loggerClient, d)
	return a, nil
}

// Run serves until SIGINT, SIGTERM or ctx cancellation, then shuts down.
func (a *App) Run(parent context.Context) error {
	a.logger.Infof("🚀 Starting ldsnotes %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.String())

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.sweeper != nil {
		a.sweeper.Start(ctx)
		a.logger.Info("session sweeper started",
			logger.Duration("interval", a.cfg.SweepEvery))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case runErr = <-errCh:
	}

	if a.sweeper != nil {
		a.sweeper.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	if runErr == nil {
		a.logger.Info("✅ ldsnotes stopped cleanly")
	}
	return runErr
}
