package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-service/internal/catalog"
	"catalog-service/internal/config"
	"catalog-service/internal/logging"
	"catalog-service/internal/storage"
	"catalog-service/internal/store"
	"catalog-service/internal/token"
	"catalog-service/internal/validator"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 10 * time.Second

func main() {
	app := &cli.Command{
		Name:  "catalog",
		Usage: "Music catalog API: songs, albums and shared playlists",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to an optional configuration file",
				Sources: cli.EnvVars("CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logging.New(os.Stderr, "error").Fatal("application error", "err", err)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "migrate",
				Usage: "Apply pending migrations before serving",
				Value: true,
			},
		},
		Action: serve,
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the database schema",
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply all pending migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := config.Load(cmd.String("config"))
					if err != nil {
						return err
					}
					return store.MigrateUp(cfg.DatabaseURL)
				},
			},
			{
				Name:  "down",
				Usage: "Roll back migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "steps",
						Usage: "Number of migrations to roll back",
						Value: 1,
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := config.Load(cmd.String("config"))
					if err != nil {
						return err
					}
					return store.MigrateDown(cfg.DatabaseURL, cmd.Int("steps"))
				},
			},
		},
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, cfg.LogLevel)

	if cmd.Bool("migrate") {
		if err := store.MigrateUp(cfg.DatabaseURL); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("pg: %w", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("pg ping: %w", err)
	}

	rdb := connectRedis(ctx, cfg.RedisURL, logger)
	if rdb != nil {
		defer rdb.Close()
	}

	var likesCache store.LikesCache
	if rdb != nil {
		likesCache = store.NewRedisLikesCache(rdb, cfg.LikesCacheTTL)
	}

	songs := store.NewSongsStore(pool)
	collaborations := store.NewCollaborationsStore(pool)

	srv := catalog.NewServer(catalog.Deps{
		Songs:           songs,
		Albums:          store.NewAlbumsStore(pool, songs, likesCache, logger),
		Playlists:       store.NewPlaylistsStore(pool, collaborations, logger),
		Collaborations:  collaborations,
		Users:           store.NewUsersStore(pool),
		Authentications: store.NewAuthenticationsStore(pool),
		Validator:       validator.New(),
		Tokens:          token.NewManager(cfg.AccessTokenKey, cfg.RefreshTokenKey, cfg.AccessTokenAge),
		Covers:          storage.NewLocalStorage(cfg.UploadsDir, cfg.PublicBaseURL()),
		Redis:           rdb,
		Logger:          logger,
	})

	router := srv.Router(
		middleware.RequestID,
		middleware.RealIP,
		catalog.RequestLogger(logger),
		middleware.Recoverer,
		catalog.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("catalog-service listening", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// connectRedis returns nil when Redis is not configured or unreachable; the API
// then runs without the likes cache and the live activity feed.
func connectRedis(ctx context.Context, url string, logger *log.Logger) *redis.Client {
	if url == "" {
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		logger.Warn("invalid REDIS_URL, continuing without redis", "err", err)
		return nil
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, continuing without redis", "err", err)
		_ = rdb.Close()
		return nil
	}
	return rdb
}
