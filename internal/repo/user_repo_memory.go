package repo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"gin-gorm-users/internal/domain"
)

var _ domain.UserRepository = (*MemoryUserRepo)(nil)

// MemoryUserRepo keeps users in process memory. It honours the same ordering,
// filtering and email uniqueness as the SQL table.
type MemoryUserRepo struct {
	mu     sync.RWMutex
	users  map[int64]domain.User
	nextID int64
	now    func() time.Time
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{
		users:  make(map[int64]domain.User),
		nextID: 1,
		now:    time.Now,
	}
}

func (r *MemoryUserRepo) Page(_ context.Context, search string, limit, offset int) ([]domain.User, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(search)
	matched := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		if needle == "" ||
			strings.Contains(strings.ToLower(u.Name), needle) ||
			strings.Contains(strings.ToLower(u.Surname), needle) {
			matched = append(matched, u)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	offset = max(offset, 0)
	if offset >= len(matched) || limit <= 0 {
		return []domain.User{}, total, nil
	}
	end := len(matched)
	if limit < end-offset {
		end = offset + limit
	}
	return matched[offset:end], total, nil
}

func (r *MemoryUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *MemoryUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepo) Insert(_ context.Context, u domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(u.Email, 0) {
		return nil, domain.Conflict("Email already exists.")
	}
	now := r.now()
	u.ID = r.nextID
	r.nextID++
	u.CreatedAt, u.UpdatedAt = now, now
	r.users[u.ID] = u
	return &u, nil
}

func (r *MemoryUserRepo) Update(_ context.Context, id int64, u domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	if r.emailTaken(u.Email, id) {
		return nil, domain.Conflict("Email already exists.")
	}
	u.ID = id
	u.CreatedAt = cur.CreatedAt
	u.UpdatedAt = r.now()
	r.users[id] = u
	return &u, nil
}

func (r *MemoryUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	return nil
}

// emailTaken must be called with r.mu held.
func (r *MemoryUserRepo) emailTaken(email string, except int64) bool {
	for id, u := range r.users {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}
