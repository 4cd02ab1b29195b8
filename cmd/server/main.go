// Сервер контактов: REST API с JWT-аутентификацией, подтверждением email,
// аватарами (MinIO/Gravatar) и rate limiting-ом на Redis.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/api"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/config"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/gravatar"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/middleware"
	router "github.com/IvanChernomyrdin/go-contacts-api/internal/server/net/http"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/repository"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/service"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/storage"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/shared/logger"
)

//	@title			Contacts API
//	@version		1.0
//	@description	REST API для управления личными контактами.

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	// .env опционален: в проде переменные приходят из окружения
	_ = godotenv.Load()

	cfg, err := config.Load("./configs/server.yaml")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg.ApplyEnvOverrides()

	httpLog := logger.NewHTTPLogger()
	defer httpLog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.OpenDB(cfg.DB)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	if cfg.Migrations.Enabled {
		if err := config.RunMigrations(db, cfg.Migrations); err != nil {
			log.Fatalf("migrations: %v", err)
		}
	}

	var limiter *middleware.RateLimiter
	if cfg.Security.RateLimit.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis: %v", err)
		}

		limiter = middleware.NewRateLimiter(
			middleware.NewRedisCounter(rdb),
			cfg.Security.RateLimit.ReadLimit,
			cfg.Security.RateLimit.WriteLimit,
			cfg.Security.RateLimit.Window,
		)
	}

	var avatars service.AvatarStore
	if cfg.Avatars.Endpoint != "" {
		st, err := storage.New(ctx, storage.Config{
			Endpoint:      cfg.Avatars.Endpoint,
			AccessKey:     cfg.Avatars.AccessKey,
			SecretKey:     cfg.Avatars.SecretKey,
			Bucket:        cfg.Avatars.Bucket,
			UseSSL:        cfg.Avatars.UseSSL,
			PublicBaseURL: cfg.Avatars.PublicBaseURL,
		})
		if err != nil {
			log.Fatalf("avatar storage: %v", err)
		}
		avatars = st
	}

	var lookup service.AvatarLookup
	if cfg.Gravatar.Enabled {
		lookup = gravatar.New(cfg.Gravatar.BaseURL, cfg.Gravatar.Timeout)
	}

	jwtCfg := crypto.JWTConfig{
		Issuer:        cfg.Auth.Issuer,
		Audience:      cfg.Auth.Audience,
		SigningKey:    cfg.Auth.JWT.SigningKey,
		AccessTTL:     cfg.Auth.AccessTTL,
		EmailTokenTTL: cfg.Auth.EmailTokenTTL,
	}

	services := service.NewServices(service.Deps{
		Repos: service.Repositories{
			Users:    repository.NewUsersRepository(db),
			Contacts: repository.NewContactsRepository(db),
		},
		Avatars:    avatars,
		Gravatar:   lookup,
		JWT:        jwtCfg,
		RefreshTTL: cfg.Auth.RefreshTTL,
		Argon2: crypto.Argon2Params{
			Time:      cfg.Password.Argon2.Time,
			MemoryKiB: cfg.Password.Argon2.MemoryKiB,
			Threads:   cfg.Password.Argon2.Threads,
			KeyLen:    cfg.Password.Argon2.KeyLen,
			SaltLen:   cfg.Password.Argon2.SaltLen,
		},
	})

	verifier := &middleware.JWTVerifier{
		Issuer:     cfg.Auth.Issuer,
		Audience:   cfg.Auth.Audience,
		SigningKey: cfg.Auth.JWT.SigningKey,
	}

	r := router.NewRouter(router.RouterDeps{
		Handler:  api.NewHandler(services),
		Verifier: verifier,
		Log:      httpLog,
		Limiter:  limiter,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("listening on %s", srv.Addr)
		var err error
		if cfg.TLS.Enabled {
			err = srv.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server: %v", err)
	}
	log.Println("server stopped")
}
