package app

import (
	"go.uber.org/zap"

	"gin-gorm-users/internal/core/config"
	"gin-gorm-users/internal/core/database"
	"gin-gorm-users/internal/domain"
	"gin-gorm-users/internal/repo"
	"gin-gorm-users/internal/service"
	"gin-gorm-users/pkg/utils"
)

// OpenRepository picks the user store from db.driver. "memory" needs no
// database and is meant for local runs and demos.
func OpenRepository(c config.DB, l *zap.Logger) (domain.UserRepository, func(), error) {
	if c.Driver == "memory" {
		l.Warn("using in-memory user store, data is lost on exit")
		return repo.NewMemoryUserRepo(), func() {}, nil
	}

	db, err := database.NewGorm(c, l)
	if err != nil {
		return nil, nil, err
	}
	l.Info("database connected", zap.String("driver", c.Driver))

	if c.AutoMigrate {
		if err := repo.AutoMigrate(db); err != nil {
			_ = database.Close(db)
			return nil, nil, err
		}
		l.Info("automigrate done")
	}
	closer := func() {
		if err := database.Close(db); err != nil {
			l.Warn("db close", zap.Error(err))
		}
	}
	return repo.NewUserRepo(db), closer, nil
}

func NewUserService(cfg *config.Config, r domain.UserRepository, l *zap.Logger) *service.UserService {
	return service.NewUserService(r, utils.NewBcryptHasher(cfg.Password.Cost), l, service.Options{
		DefaultPageSize: cfg.Pagination.DefaultPageSize,
		MaxPageSize:     cfg.Pagination.MaxPageSize,
	})
}
