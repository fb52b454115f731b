package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"gin-gorm-users/internal/domain"
)

// PasswordHasher produces a salted one-way hash. Verification never happens here.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// UserView is the only user representation that leaves the service. It has
// no password field on purpose.
type UserView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Age       int       `json:"age"`
	Country   string    `json:"country"`
	District  string    `json:"district"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ListResult struct {
	Users      []UserView `json:"users"`
	TotalPages int        `json:"totalPages"`
	TotalCount int64      `json:"totalCount"`
}

type DeleteResult struct {
	ID int64 `json:"id"`
}

// PageQuery is a normalized list request; see ParsePageQuery.
type PageQuery struct {
	Page     int
	PageSize int
	Search   string
}

type Options struct {
	DefaultPageSize int
	MaxPageSize     int
}

type UserService struct {
	repo   domain.UserRepository
	hasher PasswordHasher
	log    *zap.Logger
	opts   Options
}

func NewUserService(repo domain.UserRepository, hasher PasswordHasher, log *zap.Logger, opts Options) *UserService {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = 10
	}
	return &UserService{repo: repo, hasher: hasher, log: log, opts: opts}
}

// ParsePageQuery turns raw query values into a PageQuery. Missing values take
// defaults; anything non-numeric or below 1 is rejected. search is used as given.
func (s *UserService) ParsePageQuery(page, pageSize, search string) (PageQuery, error) {
	q := PageQuery{Page: 1, PageSize: s.opts.DefaultPageSize, Search: search}
	var err error
	if page = strings.TrimSpace(page); page != "" {
		if q.Page, err = strconv.Atoi(page); err != nil {
			return PageQuery{}, domain.Validation("Invalid page or pageSize parameters")
		}
	}
	if pageSize = strings.TrimSpace(pageSize); pageSize != "" {
		if q.PageSize, err = strconv.Atoi(pageSize); err != nil {
			return PageQuery{}, domain.Validation("Invalid page or pageSize parameters")
		}
	}
	return q, s.checkPage(q)
}

func (s *UserService) checkPage(q PageQuery) error {
	if q.Page < 1 || q.PageSize < 1 {
		return domain.Validation("Invalid page or pageSize parameters")
	}
	if s.opts.MaxPageSize > 0 && q.PageSize > s.opts.MaxPageSize {
		return domain.Validation(fmt.Sprintf("pageSize must be at most %d", s.opts.MaxPageSize))
	}
	return nil
}

func (s *UserService) List(ctx context.Context, q PageQuery) (ListResult, error) {
	if err := s.checkPage(q); err != nil {
		return ListResult{}, err
	}
	offset := pageOffset(q)
	rows, total, err := s.repo.Page(ctx, q.Search, q.PageSize, offset)
	if err != nil {
		return ListResult{}, err
	}
	out := ListResult{
		Users:      make([]UserView, 0, len(rows)),
		TotalPages: int((total + int64(q.PageSize) - 1) / int64(q.PageSize)),
		TotalCount: total,
	}
	for _, u := range rows {
		out.Users = append(out.Users, toView(u))
	}
	return out, nil
}

// pageOffset saturates at math.MaxInt, which still lands past the last row.
func pageOffset(q PageQuery) int {
	if q.Page-1 > math.MaxInt/q.PageSize {
		return math.MaxInt
	}
	return (q.Page - 1) * q.PageSize
}

func (s *UserService) Get(ctx context.Context, id int64) (UserView, error) {
	u, err := s.mustFind(ctx, id)
	if err != nil {
		return UserView{}, err
	}
	return toView(*u), nil
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (UserView, error) {
	if err := Validate(in); err != nil {
		return UserView{}, err
	}
	if err := s.ensureEmailFree(ctx, in.Email); err != nil {
		return UserView{}, err
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return UserView{}, fmt.Errorf("hash password: %w", err)
	}
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}

	created, err := s.repo.Insert(ctx, domain.User{
		Name:         in.Name,
		Surname:      in.Surname,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        in.Phone,
		Age:          in.Age,
		Country:      in.Country,
		District:     in.District,
		Role:         role,
	})
	if err != nil {
		return UserView{}, err
	}
	userMutations.WithLabelValues("create").Inc()
	s.log.Info("user created", zap.Int64("id", created.ID))
	return toView(*created), nil
}

func (s *UserService) Update(ctx context.Context, id int64, in UpdateUserInput) (UserView, error) {
	if err := Validate(in); err != nil {
		return UserView{}, err
	}
	cur, err := s.mustFind(ctx, id)
	if err != nil {
		return UserView{}, err
	}
	if in.Email != nil && *in.Email != cur.Email {
		if err := s.ensureEmailFree(ctx, *in.Email); err != nil {
			return UserView{}, err
		}
	}

	merged := *cur
	if in.Password != nil {
		if merged.PasswordHash, err = s.hasher.Hash(*in.Password); err != nil {
			return UserView{}, fmt.Errorf("hash password: %w", err)
		}
	}
	setIf(&merged.Name, in.Name)
	setIf(&merged.Surname, in.Surname)
	setIf(&merged.Email, in.Email)
	setIf(&merged.Phone, in.Phone)
	setIf(&merged.Age, in.Age)
	setIf(&merged.Country, in.Country)
	setIf(&merged.District, in.District)
	setIf(&merged.Role, in.Role)

	updated, err := s.repo.Update(ctx, id, merged)
	if err != nil {
		return UserView{}, err
	}
	if updated == nil {
		// deleted between the read and the write
		return UserView{}, notFound(id)
	}
	userMutations.WithLabelValues("update").Inc()
	s.log.Info("user updated", zap.Int64("id", id), zap.Bool("password_changed", in.Password != nil))
	return toView(*updated), nil
}

func (s *UserService) Delete(ctx context.Context, id int64) (DeleteResult, error) {
	if _, err := s.mustFind(ctx, id); err != nil {
		return DeleteResult{}, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return DeleteResult{}, err
	}
	userMutations.WithLabelValues("delete").Inc()
	s.log.Info("user deleted", zap.Int64("id", id))
	return DeleteResult{ID: id}, nil
}

func (s *UserService) mustFind(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, notFound(id)
	}
	return u, nil
}

// ensureEmailFree is check-then-act; the unique index on users.email catches the
// race between two concurrent writers.
func (s *UserService) ensureEmailFree(ctx context.Context, email string) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.Conflict("Email already exists.")
	}
	return nil
}

func notFound(id int64) error {
	return domain.NotFound(fmt.Sprintf("User with ID %d not found.", id))
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func toView(u domain.User) UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Surname:   u.Surname,
		Email:     u.Email,
		Phone:     u.Phone,
		Age:       u.Age,
		Country:   u.Country,
		District:  u.District,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
