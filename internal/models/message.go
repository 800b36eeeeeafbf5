package models

import (
	"time"
)

// MessageType 定義訊息內容的種類
type MessageType string

const (
	MessageTypeText   MessageType = "text"
	MessageTypeImage  MessageType = "image"
	MessageTypeVideo  MessageType = "video"
	MessageTypeAudio  MessageType = "audio"
	MessageTypeStatus MessageType = "status"
)

// Message 章節中的一則訊息
//
// Order 是浮點數排序鍵，同一章節內唯一且大於零；
// 依 MessageType 只會有一個內容欄位有值。
type Message struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	EpisodeID   uint        `gorm:"not null;uniqueIndex:idx_episode_order,priority:1" json:"episode_id"`
	CharacterID *uint       `gorm:"index" json:"character_id"`
	Order       float64     `gorm:"column:sort_order;not null;uniqueIndex:idx_episode_order,priority:2;check:chk_messages_order_positive,sort_order > 0" json:"order"`
	MessageType MessageType `gorm:"type:varchar(20);not null;default:'text'" json:"message_type"`

	TextContent   *string `gorm:"type:varchar(200)" json:"text_content"`
	ImageContent  *string `json:"image_content"`
	VideoContent  *string `json:"video_content"`
	AudioContent  *string `json:"audio_content"`
	StatusContent *string `gorm:"type:varchar(255)" json:"status_content"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 刪除角色時訊息保留，只清除 character_id
	Episode   *Episode   `gorm:"foreignKey:EpisodeID;constraint:OnDelete:CASCADE" json:"-"`
	Character *Character `gorm:"foreignKey:CharacterID;constraint:OnDelete:SET NULL" json:"-"`
}
