package models

import "time"

type CommentStatus string

const (
	CommentApproved CommentStatus = "approved"
	CommentPending  CommentStatus = "pending"
)

type Comment struct {
	ID         uint          `json:"id" gorm:"primarykey"`
	PostID     uint          `json:"post_id" gorm:"not null;index"`
	AuthorID   *uint         `json:"author_id" gorm:"index"`
	Author     *User         `json:"-" gorm:"foreignKey:AuthorID"`
	AuthorName string        `json:"author_name" gorm:"size:100"`
	Content    string        `json:"content" gorm:"type:text;not null"`
	Status     CommentStatus `json:"status" gorm:"size:20;default:'approved';index"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// OwnerID returns the author id, or 0 for comments without an account.
func (c *Comment) OwnerID() uint {
	if c.AuthorID == nil {
		return 0
	}
	return *c.AuthorID
}
