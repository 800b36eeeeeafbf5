package models

// All 回傳需要自動遷移的模型，依外鍵相依順序排列
func All() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&Story{},
		&StoryLike{},
		&SavedStory{},
		&Character{},
		&Episode{},
		&Message{},
		&Comment{},
		&CommentLike{},
		&Notification{},
	}
}
