package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "smartfarm-credit/internal/adapter/http"
	"smartfarm-credit/internal/adapter/job"
	mw "smartfarm-credit/internal/adapter/middleware"
	"smartfarm-credit/internal/adapter/persistence"
	"smartfarm-credit/internal/config"
	"smartfarm-credit/internal/infrastructure/cache"
	"smartfarm-credit/internal/infrastructure/db"
	"smartfarm-credit/internal/infrastructure/token"
	"smartfarm-credit/internal/usecase/auth"
	"smartfarm-credit/internal/usecase/loan"
	"smartfarm-credit/internal/usecase/market"
	"smartfarm-credit/internal/usecase/payment"
	"smartfarm-credit/internal/usecase/review"
	ucuser "smartfarm-credit/internal/usecase/user"
	"smartfarm-credit/pkg/logger"
)

func main() {
	cfg := config.Load()
	if err := logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAgeDays,
		Compress:   true,
	}); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Log

	if err := cfg.Validate(); err != nil {
		log.Fatal("config invalid", zap.Error(err))
	}

	gdb, err := db.OpenGorm(cfg)
	if err != nil {
		log.Fatal("db open failed", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal("db migrate failed", zap.Error(err))
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal("redis unavailable", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}

	issuer := token.NewIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	deny := cache.NewDenylist(rdb)

	users := persistence.NewUserRepository(gdb)
	loans := persistence.NewLoanRepository(gdb)
	payments := persistence.NewPaymentRepository(gdb)
	products := persistence.NewProductRepository(gdb)
	orders := persistence.NewOrderRepository(gdb)
	tx := persistence.NewGormUoW(gdb)

	loanUC := loan.NewUsecase(loans, payments, tx)

	sqlDB, err := gdb.DB()
	if err != nil {
		log.Fatal("db handle", zap.Error(err))
	}
	health := httpadp.NewHandler(cfg.Version,
		httpadp.Check{Name: "db", Ping: sqlDB.PingContext},
		httpadp.Check{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
	)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(
		mw.RequestLogger(log),
		middleware.Recover(),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.CORSOrigins,
			AllowHeaders: []string{
				echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization,
				mw.HeaderIdempotencyKey, mw.HeaderRequestAt, echo.HeaderXRequestID,
			},
		}),
	)

	httpadp.Register(e, httpadp.Handlers{
		Health:   health,
		Auth:     httpadp.NewAuthHandler(auth.NewUsecase(users, issuer, deny)),
		Users:    httpadp.NewUserHandler(ucuser.NewUsecase(users, loans, products, orders)),
		Loans:    httpadp.NewLoanHandler(loanUC),
		Reviews:  httpadp.NewReviewHandler(review.NewUsecase(tx)),
		Payments: httpadp.NewPaymentHandler(payment.NewUsecase(tx)),
		Market:   httpadp.NewMarketHandler(market.NewUsecase(products, orders, tx)),
	}, httpadp.Guards{
		Auth:        mw.Auth(issuer, deny),
		Admin:       mw.RequireAdmin(),
		Idempotency: mw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second),
	})

	sweeper, err := job.NewScheduler(loanUC, cfg.DefaultSweepCron, cfg.DefaultGraceDays, log)
	if err != nil {
		log.Fatal("scheduler setup failed", zap.Error(err))
	}
	sweeper.Start()

	addr := ":" + cfg.AppPort
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.String("version", cfg.Version))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("http shutdown", zap.Error(err))
	}
	if err := sweeper.Stop(ctx); err != nil {
		log.Error("scheduler shutdown", zap.Error(err))
	}
	if err := rdb.Close(); err != nil {
		log.Warn("redis close", zap.Error(err))
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn("db close", zap.Error(err))
	}
	log.Info("bye")
}
