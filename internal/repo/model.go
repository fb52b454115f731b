package repo

import (
	"time"

	"gorm.io/gorm"

	"gin-gorm-users/internal/domain"
)

// UserModel is the row shape of the users table. No DeletedAt: deletes are hard.
type UserModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"size:255;not null"`
	Surname      string `gorm:"size:255;not null"`
	Email        string `gorm:"uniqueIndex:users_email_unique_idx;size:255;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Phone        string `gorm:"size:255;not null"`
	Age          int    `gorm:"not null"`
	Country      string `gorm:"size:255;not null"`
	District     string `gorm:"size:255;not null"`
	Role         string `gorm:"size:16;not null;default:user"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string { return "users" }

// AutoMigrate creates or widens the users table, including the unique email index.
func AutoMigrate(db *gorm.DB) error { return db.AutoMigrate(&UserModel{}) }

func toModel(u domain.User) UserModel {
	return UserModel{
		ID:           u.ID,
		Name:         u.Name,
		Surname:      u.Surname,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Phone:        u.Phone,
		Age:          u.Age,
		Country:      u.Country,
		District:     u.District,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m UserModel) toDomain() domain.User {
	return domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Surname:      m.Surname,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Phone:        m.Phone,
		Age:          m.Age,
		Country:      m.Country,
		District:     m.District,
		Role:         m.Role,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
