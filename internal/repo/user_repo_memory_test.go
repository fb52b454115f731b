package repo

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gin-gorm-users/internal/domain"
)

func TestMemoryUserRepo_PageOrdersByID(t *testing.T) {
	r := NewMemoryUserRepo()
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		_, err := r.Insert(ctx, domain.User{Name: fmt.Sprintf("user%02d", i), Email: fmt.Sprintf("u%d@x.com", i)})
		require.NoError(t, err)
	}

	page, total, err := r.Page(ctx, "", 10, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	require.Len(t, page, 5)
	for i, u := range page {
		assert.EqualValues(t, 21+i, u.ID)
	}

	empty, total, err := r.Page(ctx, "", 10, 30)
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	assert.Empty(t, empty)
}

func TestMemoryUserRepo_PageOffsetBounds(t *testing.T) {
	r := NewMemoryUserRepo()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := r.Insert(ctx, domain.User{Name: "n", Email: fmt.Sprintf("u%d@x.com", i)})
		require.NoError(t, err)
	}

	far, total, err := r.Page(ctx, "", math.MaxInt, math.MaxInt)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Empty(t, far)

	neg, _, err := r.Page(ctx, "", 2, -20)
	require.NoError(t, err)
	require.Len(t, neg, 2)
	assert.EqualValues(t, 1, neg[0].ID)

	all, _, err := r.Page(ctx, "", math.MaxInt, 1)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMemoryUserRepo_SearchNameOrSurname(t *testing.T) {
	r := NewMemoryUserRepo()
	ctx := context.Background()
	_, _ = r.Insert(ctx, domain.User{Name: "Marie", Surname: "Curie", Email: "m@x.com"})
	_, _ = r.Insert(ctx, domain.User{Name: "Pierre", Surname: "MARIEN", Email: "p@x.com"})
	_, _ = r.Insert(ctx, domain.User{Name: "Alan", Surname: "Turing", Email: "a@x.com"})

	users, total, err := r.Page(ctx, "arie", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, users, 2)
	assert.Equal(t, "Marie", users[0].Name)
	assert.Equal(t, "Pierre", users[1].Name)
}

func TestMemoryUserRepo_UniqueEmailAndTimestamps(t *testing.T) {
	r := NewMemoryUserRepo()
	ctx := context.Background()

	a, err := r.Insert(ctx, domain.User{Name: "A", Email: "a@x.com"})
	require.NoError(t, err)
	b, err := r.Insert(ctx, domain.User{Name: "B", Email: "b@x.com"})
	require.NoError(t, err)

	_, err = r.Insert(ctx, domain.User{Name: "dup", Email: "a@x.com"})
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	changed := *b
	changed.Email = "a@x.com"
	_, err = r.Update(ctx, b.ID, changed)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	renamed := *a
	renamed.Name = "A2"
	got, err := r.Update(ctx, a.ID, renamed)
	require.NoError(t, err)
	assert.Equal(t, "A2", got.Name)
	assert.Equal(t, a.CreatedAt, got.CreatedAt)
	assert.False(t, got.UpdatedAt.Before(a.UpdatedAt))
}

func TestMemoryUserRepo_DeleteIsIdempotent(t *testing.T) {
	r := NewMemoryUserRepo()
	ctx := context.Background()
	u, _ := r.Insert(ctx, domain.User{Name: "A", Email: "a@x.com"})

	require.NoError(t, r.Delete(ctx, u.ID))
	require.NoError(t, r.Delete(ctx, u.ID))

	got, err := r.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
