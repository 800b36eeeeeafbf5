package models

import (
	"time"
)

// Story 表示一個故事，由作者建立並包含多個章節
type Story struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	AuthorID    uint       `gorm:"index;not null" json:"author_id"`
	CategoryID  *uint      `gorm:"index" json:"category_id"`
	Image       string     `json:"image"`
	Published   bool       `gorm:"default:false;index" json:"published"`
	PublishDate *time.Time `json:"publish_date"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// 僅用於宣告外鍵約束，程式中不會預載
	Author   *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
}

// StoryLike 用戶對故事的按讚
type StoryLike struct {
	StoryID   uint      `gorm:"primaryKey" json:"story_id"`
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Story *Story `gorm:"foreignKey:StoryID;constraint:OnDelete:CASCADE" json:"-"`
	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// SavedStory 用戶收藏的故事，同一用戶對同一故事只能收藏一次
type SavedStory struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	UserID  uint      `gorm:"uniqueIndex:idx_saved_user_story;not null" json:"user_id"`
	StoryID uint      `gorm:"uniqueIndex:idx_saved_user_story;not null" json:"story_id"`
	SavedAt time.Time `gorm:"autoCreateTime;index" json:"saved_at"`

	Story *Story `gorm:"foreignKey:StoryID;constraint:OnDelete:CASCADE" json:"-"`
	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
