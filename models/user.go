package models

import (
	"time"
)

type UserRole string

const RoleUser UserRole = "user"

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserDisabled UserStatus = "disabled"
)

type User struct {
	ID        uint       `json:"id" gorm:"primarykey"`
	Name      string     `json:"name" gorm:"size:100;not null"`
	Email     string     `json:"email" gorm:"size:100;uniqueIndex;not null"`
	Password  string     `json:"-" gorm:"not null"`
	Avatar    *string    `json:"avatar" gorm:"size:255"`
	Bio       *string    `json:"bio" gorm:"type:text"`
	Role      UserRole   `json:"role" gorm:"size:20;default:'user'"`
	Status    UserStatus `json:"status" gorm:"size:20;default:'active'"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Identity is the caller resolved from a bearer token.
type Identity struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PublicUser is the subset of a user returned by the auth endpoints.
type PublicUser struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    *string   `json:"avatar,omitempty"`
	Bio       *string   `json:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Avatar:    u.Avatar,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
	}
}

func (u *User) Identity() *Identity {
	return &Identity{ID: u.ID, Name: u.Name, Email: u.Email}
}
