package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	hobbies "github.com/goliatone/go-hobbies"
	"github.com/goliatone/go-logger/glog"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("hobbies"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)
	logger := lgr.GetLogger("main")

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", "error", err)
	}

	cfg := hobbies.LoadConfig()

	ctx := context.Background()

	db, err := openDatabase(cfg)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := hobbies.RunMigrations(ctx, db, hobbies.GetMigrationsFS()); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	if err := hobbies.Seed(ctx, db); err != nil {
		logger.Error("failed to seed hobbies", "error", err)
		os.Exit(1)
	}

	repo := hobbies.NewRepositoryManager(db)
	repo.MustValidate()

	if err := hobbies.EnsureAdminUser(ctx, repo, cfg, lgr.GetLogger("bootstrap")); err != nil {
		logger.Error("failed to ensure admin user", "error", err)
		os.Exit(1)
	}

	tokens := hobbies.NewTokenService(
		[]byte(cfg.GetSigningKey()),
		cfg.GetTokenExpiration(),
		cfg.GetIssuer(),
		cfg.GetAudience(),
		lgr.GetLogger("auth:tokens"),
	)

	userProvider := hobbies.NewUserProvider(userTrackerAdapter{users: repo.Users()}).
		WithLogger(lgr.GetLogger("auth:prv"))

	authenticator := hobbies.NewAuthenticator(userProvider, tokens, repo.RevokedTokens(), repo.Users()).
		WithLogger(lgr.GetLogger("auth:authz"))

	auther, err := hobbies.NewHTTPAuthenticator(authenticator, cfg)
	if err != nil {
		logger.Error("failed to build http authenticator", "error", err)
		os.Exit(1)
	}
	auther.Logger = lgr.GetLogger("auth:http")

	controller := hobbies.NewUserController(
		hobbies.WithControllerRepo(repo),
		hobbies.WithControllerAuth(authenticator, auther),
		hobbies.WithControllerPhotos(hobbies.PhotoStore{Dir: cfg.UploadsDir}),
		hobbies.WithControllerConfig(cfg),
		hobbies.WithControllerLogger(lgr.GetLogger("http:users")),
		hobbies.WithControllerDebug(cfg.Debug),
	)

	app := fiber.New(fiber.Config{
		AppName:      "go-hobbies",
		ErrorHandler: hobbies.WriteError,
	})

	// unmatched routes and method mismatches flow through the app
	// ErrorHandler, so every failure shares the envelope shape
	controller.RegisterRoutes(app.Group("/api"))

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("listening", "addr", addr)
		if err := app.Listen(addr); err != nil {
			logger.Error("server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

type userTrackerAdapter struct {
	users hobbies.Users
}

func (a userTrackerAdapter) GetByIdentifier(ctx context.Context, identifier string) (*hobbies.User, error) {
	return a.users.GetByIdentifier(ctx, identifier)
}

func (a userTrackerAdapter) TrackAttemptedLogin(ctx context.Context, user *hobbies.User) error {
	return a.users.TrackAttemptedLogin(ctx, user)
}

func (a userTrackerAdapter) TrackSucccessfulLogin(ctx context.Context, user *hobbies.User) error {
	return a.users.TrackSucccessfulLogin(ctx, user)
}

func openDatabase(cfg *hobbies.AppConfig) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DSN)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	db.RegisterModel(
		(*hobbies.UserHobby)(nil),
		(*hobbies.User)(nil),
		(*hobbies.Hobby)(nil),
		(*hobbies.RevokedToken)(nil),
	)

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	return db, nil
}
