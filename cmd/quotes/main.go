// Сервис цитат: REST API поверх MongoDB (цитаты, авторы, теги).
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
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/quotes/api"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/quotes/config"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/quotes/repository"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/quotes/service"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/shared/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("./configs/quotes.yaml")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	httpLog := logger.NewHTTPLogger()
	defer httpLog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.ConnectTimeout)
	defer cancel()

	db, err := repository.Connect(connectCtx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatalf("mongo: %v", err)
	}
	defer db.Client().Disconnect(context.Background())

	tags, err := repository.NewTagsRepository(connectCtx, db)
	if err != nil {
		log.Fatalf("tags repository: %v", err)
	}

	svc := service.NewQuotesService(
		tags,
		repository.NewAuthorsRepository(db),
		repository.NewQuotesRepository(db),
	)

	r := api.NewRouter(api.NewHandler(svc), httpLog)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("listening on %s", srv.Addr)
		err := srv.ListenAndServe()
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
