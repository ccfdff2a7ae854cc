package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	config "github.com/severnmarket/go-backend/internal/cfg"
	v1Http "github.com/severnmarket/go-backend/internal/delivery/v1/http"
	"github.com/severnmarket/go-backend/internal/infrastructure/auth"
	"github.com/severnmarket/go-backend/internal/infrastructure/kafka"
	"github.com/severnmarket/go-backend/internal/infrastructure/sweeper"
	"github.com/severnmarket/go-backend/internal/repository/pgdb"
	pgdbConv "github.com/severnmarket/go-backend/internal/repository/pgdb/converter/generated"
	"github.com/severnmarket/go-backend/internal/repository/redis"
	redisConv "github.com/severnmarket/go-backend/internal/repository/redis/converter/generated"
	"github.com/severnmarket/go-backend/internal/usecase"
	"github.com/severnmarket/go-backend/pkg/clients"
	"github.com/severnmarket/go-backend/pkg/closer"
	"github.com/severnmarket/go-backend/pkg/e"
	"github.com/severnmarket/go-backend/pkg/logger"
	"github.com/severnmarket/go-backend/pkg/postgres"
)

// App собирает все зависимости сервиса и управляет их жизненным циклом.
type App struct {
	cfg    *config.Config
	logger logger.Logger

	db           *postgres.PgDatabase
	redisClient  *clients.RedisClient
	producer     *kafka.Producer
	notifier     *kafka.Notifier
	outboxWorker *kafka.OutboxWorker
	sweepWorker  *sweeper.Sweeper
	httpServer   *v1Http.Server
	closer       *closer.Closer
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	db, err := initPGDB(log, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	productConv := pgdbConv.NewProductConverterImpl()
	promotionConv := pgdbConv.NewPromotionConverterImpl()
	orderConv := pgdbConv.NewOrderConverterImpl()
	outboxConv := pgdbConv.NewOutboxEventConverterImpl()
	orderViewConv := redisConv.NewOrderViewConverterImpl()

	productRepo := pgdb.NewProductRepo(db.Pool, productConv)
	promotionRepo := pgdb.NewPromotionRepo(db.Pool, promotionConv)
	cartRepo := pgdb.NewCartRepo(db.Pool, productConv, promotionConv)
	orderRepo := pgdb.NewOrderRepo(db.Pool, orderConv)
	memberRepo := pgdb.NewMemberRepo(db.Pool)
	tokenRepo := pgdb.NewTokenRepo(db.Pool)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, outboxConv)

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cacheRepo := redis.NewCacheRepo(redisClient, orderViewConv, cfg.Redis, log)

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		log.Warnf("failed to ensure orders topic: %v", err)
	}

	notifier := kafka.NewNotifier(log, cfg.Kafka)

	cartUC := usecase.NewCartUC(cartRepo, productRepo, db.Pool, log)
	orderUC := usecase.NewOrderUC(orderRepo, cartRepo, productRepo, outboxRepo, cacheRepo, db.Pool, log)
	authUC := usecase.NewAuthUC(memberRepo, tokenRepo, notifier, db.Pool, log, cfg.Auth.ResetTokenTTL)
	sweepUC := usecase.NewSweepUC(promotionRepo, tokenRepo, db.Pool, log)

	issuer := auth.NewClient(cfg.Auth)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(cartUC, orderUC, authUC, issuer)

	return &App{
		cfg:          cfg,
		logger:       log,
		db:           db,
		redisClient:  redisClient,
		producer:     producer,
		notifier:     notifier,
		outboxWorker: kafka.NewOutboxWorker(outboxRepo, log, producer, db.Dsn),
		sweepWorker:  sweeper.NewSweeper(sweepUC, cfg.Sweep, log),
		httpServer:   v1Http.NewServer(r, cfg.Http),
		closer:       closer.NewCloser(2 * time.Second),
	}, nil
}

// Run запускает сервер и фоновые процессы и блокируется до сигнала
// завершения или фатальной ошибки сервера.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.outboxWorker.Start(ctx)
	a.sweepWorker.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpServer.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	a.registerClosers(cancel)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("shutdown finished with errors: %v", err)
	} else {
		a.logger.Infof("Application shutdown complete")
	}

	return appErr
}

// registerClosers регистрирует закрытие ресурсов в порядке, обратном запуску:
// сначала перестаём принимать запросы, потом гасим воркеры и соединения.
func (a *App) registerClosers(cancel context.CancelFunc) {
	a.closer.Add(
		func(ctx context.Context) error {
			a.db.Close()
			return nil
		},
		func(ctx context.Context) error {
			return a.redisClient.Client.Close()
		},
		func(ctx context.Context) error {
			return a.notifier.Close()
		},
		func(ctx context.Context) error {
			return a.producer.Close()
		},
		func(ctx context.Context) error {
			cancel()
			a.sweepWorker.Stop()
			a.outboxWorker.Stop()
			return nil
		},
		func(ctx context.Context) error {
			return a.httpServer.Stop(ctx)
		},
	)
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
