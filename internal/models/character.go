package models

// Character 故事中的角色，名稱在同一故事內唯一，有設定的顏色也是
type Character struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"type:varchar(50);not null;uniqueIndex:idx_story_character_name,priority:2" json:"name"`
	Color   string `gorm:"type:varchar(7);uniqueIndex:idx_story_character_color,priority:2,where:color <> ''" json:"color"`
	StoryID uint   `gorm:"not null;uniqueIndex:idx_story_character_name,priority:1;uniqueIndex:idx_story_character_color,priority:1" json:"story_id"`

	Story *Story `gorm:"foreignKey:StoryID;constraint:OnDelete:CASCADE" json:"-"`
}
