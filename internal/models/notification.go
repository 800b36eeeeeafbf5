package models

import (
	"time"
)

// Notification 推送給用戶的通知，同時寫入資料庫與 WebSocket
type Notification struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RecipientID uint      `gorm:"index;not null" json:"recipient"`
	SenderID    *uint     `json:"sender"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	IsRead      bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`

	Recipient *User `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE" json:"-"`
	Sender    *User `gorm:"foreignKey:SenderID;constraint:OnDelete:SET NULL" json:"-"`
}
