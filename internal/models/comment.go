package models

import (
	"time"
)

// Comment 讀者對故事的留言
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	StoryID   uint      `gorm:"index;not null" json:"story_id"`
	Text      string    `gorm:"type:varchar(2000);not null" json:"text"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author *User  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Story  *Story `gorm:"foreignKey:StoryID;constraint:OnDelete:CASCADE" json:"-"`
}

// CommentLike 用戶對留言的按讚
type CommentLike struct {
	CommentID uint      `gorm:"primaryKey" json:"comment_id"`
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Comment *Comment `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"-"`
	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
