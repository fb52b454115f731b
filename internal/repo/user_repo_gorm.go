package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"gin-gorm-users/internal/domain"
)

var _ domain.UserRepository = (*UserRepo)(nil)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

// Page filters on name/surname (case-insensitive substring) and orders by id so
// repeated calls page over a stable sequence.
func (r *UserRepo) Page(ctx context.Context, search string, limit, offset int) ([]domain.User, int64, error) {
	scoped := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&UserModel{})
		if search != "" {
			like := "%" + escapeLike(strings.ToLower(search)) + "%"
			q = q.Where("LOWER(name) LIKE ? OR LOWER(surname) LIKE ?", like, like)
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, domain.Storage("count users", err)
	}

	var rows []UserModel
	if err := scoped().Order("id ASC").Limit(limit).Offset(max(offset, 0)).Find(&rows).Error; err != nil {
		return nil, 0, domain.Storage("list users", err)
	}

	users := make([]domain.User, 0, len(rows))
	for _, m := range rows {
		users = append(users, m.toDomain())
	}
	return users, total, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.first(ctx, "find user by id", "id = ?", id)
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "find user by email", "email = ?", email)
}

func (r *UserRepo) first(ctx context.Context, op, cond string, arg any) (*domain.User, error) {
	var m UserModel
	err := r.db.WithContext(ctx).Where(cond, arg).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.Storage(op, err)
	}
	u := m.toDomain()
	return &u, nil
}

func (r *UserRepo) Insert(ctx context.Context, u domain.User) (*domain.User, error) {
	m := toModel(u)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isDupKey(err) {
			return nil, domain.Conflict("Email already exists.")
		}
		return nil, domain.Storage("insert user", err)
	}
	out := m.toDomain()
	return &out, nil
}

// Update overwrites every mutable column with the caller's merged values.
func (r *UserRepo) Update(ctx context.Context, id int64, u domain.User) (*domain.User, error) {
	res := r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", id).Updates(map[string]any{
		"name":          u.Name,
		"surname":       u.Surname,
		"email":         u.Email,
		"password_hash": u.PasswordHash,
		"phone":         u.Phone,
		"age":           u.Age,
		"country":       u.Country,
		"district":      u.District,
		"role":          u.Role,
		"updated_at":    time.Now(),
	})
	if res.Error != nil {
		if isDupKey(res.Error) {
			return nil, domain.Conflict("Email already exists.")
		}
		return nil, domain.Storage("update user", res.Error)
	}
	return r.FindByID(ctx, id)
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&UserModel{}).Error; err != nil {
		return domain.Storage("delete user", err)
	}
	return nil
}

// isDupKey recognises unique violations from both supported drivers.
func isDupKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
