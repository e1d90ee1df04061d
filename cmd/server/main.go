package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/revature/reimbursement-system/internal/api"
	"github.com/revature/reimbursement-system/internal/api/handler"
	"github.com/revature/reimbursement-system/internal/core/ports"
	"github.com/revature/reimbursement-system/internal/core/service"
	"github.com/revature/reimbursement-system/internal/infrastructure/db/memory"
	"github.com/revature/reimbursement-system/internal/infrastructure/db/mongo"
	"github.com/revature/reimbursement-system/internal/infrastructure/db/redis"
	"github.com/revature/reimbursement-system/internal/infrastructure/queue"
	"github.com/revature/reimbursement-system/internal/pkg/config"
	"github.com/revature/reimbursement-system/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		users    ports.IdentityDirectory
		tickets  ports.TicketRepository
		events   ports.EventRepository
		sessions ports.SessionStore
		pingers  = map[string]handler.DependencyPinger{}
	)

	switch cfg.Storage {
	case "memory":
		users = memory.NewIdentityDirectory()
		tickets = memory.NewTicketRepository()
		sessions = memory.NewSessionStore()
		log.Warn().Msg("using in-memory storage; all data is lost on shutdown")
	default:
		client, db, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mongo")
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		userRepo := mongo.NewIdentityDirectory(db)
		ticketRepo := mongo.NewTicketRepository(db)
		if err := userRepo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to create user indexes")
		}
		if err := ticketRepo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to create ticket indexes")
		}
		users = userRepo
		tickets = ticketRepo
		events = mongo.NewEventRepository(db)
		pingers["mongodb"] = mongoPinger(db)

		rdb, err := redis.Connect(ctx, redis.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer func() { _ = rdb.Close() }()
		sessions = redis.NewSessionStore(rdb, cfg.SessionTTL)
		pingers["redis"] = redisPinger(rdb)
	}

	// Decision audit trail: only wired when a durable event store exists.
	var recorder ports.DecisionRecorder
	if events != nil {
		dispatcher := queue.NewDispatcher(cfg.AuditWorkers, events, log)
		dispatcher.Start(ctx)
		recorder = dispatcher
	}

	e := api.NewRouter(api.Dependencies{
		Auth:     service.NewAuthService(users, sessions, log),
		Tickets:  service.NewTicketService(tickets, recorder, log),
		Lister:   service.NewVisibilityService(users, tickets, log),
		Roles:    service.NewRoleService(users, sessions, log),
		Sessions: sessions,
		Pingers:  pingers,
		Logger:   log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("storage", cfg.Storage).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func mongoPinger(db *mongodriver.Database) handler.DependencyPinger {
	return func(ctx context.Context) error {
		return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
	}
}

func redisPinger(rdb *goredis.Client) handler.DependencyPinger {
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}
