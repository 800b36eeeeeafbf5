package models

import (
	"time"
)

// Episode 故事中的一個章節，擁有一串依 Order 排序的訊息
type Episode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	StoryID   uint      `gorm:"index;not null" json:"story_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Story *Story `gorm:"foreignKey:StoryID;constraint:OnDelete:CASCADE" json:"-"`
}
