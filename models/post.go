package models

import (
	"time"
)

type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

type Post struct {
	ID        uint       `json:"id" gorm:"primarykey"`
	Title     string     `json:"title" gorm:"size:200;not null"`
	Content   string     `json:"content" gorm:"type:text;not null"`
	AuthorID  uint       `json:"author_id" gorm:"not null;index"`
	Author    *User      `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Status    PostStatus `json:"status" gorm:"size:20;default:'draft';index"`
	Image     *string    `json:"image" gorm:"size:255"`
	Tags      *string    `json:"tags" gorm:"size:500"`
	Views     int        `json:"views" gorm:"default:0"`
	Comments  []Comment  `json:"comments,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (p *Post) IsPublished() bool {
	return p.Status == StatusPublished
}
