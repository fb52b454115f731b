package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gin-gorm-users/internal/app"
	"gin-gorm-users/internal/core/config"
	"gin-gorm-users/internal/core/logger"
	"gin-gorm-users/internal/domain"
	"gin-gorm-users/internal/service"
)

// seed migrates the schema, then fills an empty users table with fake accounts.
// A non-empty table is left alone.
func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, cleanup := logger.FromConfig(cfg.Log)
	defer cleanup()

	cfg.DB.AutoMigrate = true
	users, closeRepo, err := app.OpenRepository(cfg.DB, log)
	if err != nil {
		log.Fatal("open user store", zap.Error(err))
	}
	defer closeRepo()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := run(ctx, cfg, users, log); err != nil {
		log.Error("seed failed", zap.Error(err))
		cancel()
		closeRepo()
		cleanup()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, users domain.UserRepository, log *zap.Logger) error {
	_, existing, err := users.Page(ctx, "", 1, 0)
	if err != nil {
		return err
	}
	if existing > 0 {
		log.Info("users table not empty, skipping seed", zap.Int64("count", existing))
		return nil
	}

	svc := app.NewUserService(cfg, users, zap.NewNop())
	fake := gofakeit.New(0)
	inputs := make([]service.CreateUserInput, cfg.Seed.Count)
	for i := range inputs {
		inputs[i] = fakeUser(fake)
	}

	var created, skipped atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	// bcrypt dominates, so one worker per core
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, in := range inputs {
		g.Go(func() error {
			_, err := svc.Create(gctx, in)
			switch domain.KindOf(err) {
			case domain.KindUnknown:
				if err != nil {
					return err
				}
				created.Add(1)
			case domain.KindConflict, domain.KindValidation:
				skipped.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("seed done", zap.Int64("created", created.Load()), zap.Int64("skipped", skipped.Load()))
	return nil
}

func fakeUser(f *gofakeit.Faker) service.CreateUserInput {
	return service.CreateUserInput{
		Name:     f.FirstName(),
		Surname:  f.LastName(),
		Email:    f.Email(),
		Password: f.Password(true, true, true, false, false, 12),
		Phone:    f.Phone(),
		Age:      f.Number(18, 80),
		Country:  f.Country(),
		District: f.City(),
		Role:     domain.RoleUser,
	}
}
