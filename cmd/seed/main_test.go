package main

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gin-gorm-users/internal/core/config"
	"gin-gorm-users/internal/domain"
	"gin-gorm-users/internal/repo"
	"gin-gorm-users/internal/service"
)

func seedConfig(n int) *config.Config {
	return &config.Config{
		Password:   config.Password{Cost: 4},
		Pagination: config.Pagination{DefaultPageSize: 10, MaxPageSize: 100},
		Seed:       config.Seed{Count: n},
	}
}

func TestRun_SeedsEmptyTableOnce(t *testing.T) {
	ctx := context.Background()
	users := repo.NewMemoryUserRepo()

	require.NoError(t, run(ctx, seedConfig(12), users, zap.NewNop()))
	_, total, err := users.Page(ctx, "", 1, 0)
	require.NoError(t, err)
	assert.Positive(t, total)
	assert.LessOrEqual(t, total, int64(12))

	require.NoError(t, run(ctx, seedConfig(12), users, zap.NewNop()))
	_, again, _ := users.Page(ctx, "", 1, 0)
	assert.Equal(t, total, again, "second run leaves a populated table alone")
}

func TestFakeUser_PassesValidation(t *testing.T) {
	f := gofakeit.New(42)
	for i := 0; i < 50; i++ {
		assert.NoError(t, service.Validate(fakeUser(f)))
	}
}

type downRepo struct{ *repo.MemoryUserRepo }

func (downRepo) Insert(context.Context, domain.User) (*domain.User, error) {
	return nil, domain.Storage("insert user", errors.New("connection refused"))
}

func TestRun_StorageFailureIsReturned(t *testing.T) {
	err := run(context.Background(), seedConfig(3), downRepo{repo.NewMemoryUserRepo()}, zap.NewNop())
	require.Error(t, err)
	assert.Equal(t, domain.KindStorage, domain.KindOf(err))
}
