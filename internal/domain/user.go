package domain

import (
	"context"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	Age          int       `json:"age"`
	Country      string    `json:"country"`
	District     string    `json:"district"`
	Role         string    `json:"role"` // "user"/"admin"
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserRepository is the storage contract of the user service.
// FindByID and FindByEmail return (nil, nil) when no row matches.
type UserRepository interface {
	Page(ctx context.Context, search string, limit, offset int) ([]User, int64, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Insert(ctx context.Context, u User) (*User, error)
	Update(ctx context.Context, id int64, u User) (*User, error)
	Delete(ctx context.Context, id int64) error
}
