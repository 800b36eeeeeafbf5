package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"unicode/utf8"

	"story_web/internal/models"
	"story_web/internal/repository"
)

// ContentPayload 訊息的內容欄位，nil 代表請求中沒有帶這個欄位
type ContentPayload struct {
	CharacterID   *uint
	TextContent   *string
	ImageContent  *string
	VideoContent  *string
	AudioContent  *string
	StatusContent *string
}

type contentField int

const (
	fieldText contentField = iota
	fieldImage
	fieldVideo
	fieldAudio
	fieldStatus
)

var allContentFields = []contentField{fieldText, fieldImage, fieldVideo, fieldAudio, fieldStatus}

func (p ContentPayload) value(f contentField) *string {
	switch f {
	case fieldText:
		return p.TextContent
	case fieldImage:
		return p.ImageContent
	case fieldVideo:
		return p.VideoContent
	case fieldAudio:
		return p.AudioContent
	case fieldStatus:
		return p.StatusContent
	}
	return nil
}

func storedValue(m *models.Message, f contentField) *string {
	return ContentPayload{
		TextContent:   m.TextContent,
		ImageContent:  m.ImageContent,
		VideoContent:  m.VideoContent,
		AudioContent:  m.AudioContent,
		StatusContent: m.StatusContent,
	}.value(f)
}

type contentRule struct {
	field          contentField
	needsCharacter bool
	maxLen         int      // 以字元計，0 為不限
	extensions     []string // 媒體檔允許的副檔名
}

var (
	imageExtensions = []string{".png", ".jpg", ".jpeg"}
	videoExtensions = []string{".mp4"}
	audioExtensions = []string{".mp3", ".wav"}
)

// contentRules 訊息種類對應必填欄位的固定表
var contentRules = map[models.MessageType]contentRule{
	models.MessageTypeText:   {field: fieldText, needsCharacter: true, maxLen: 200},
	models.MessageTypeImage:  {field: fieldImage, needsCharacter: true, extensions: imageExtensions},
	models.MessageTypeVideo:  {field: fieldVideo, needsCharacter: true, extensions: videoExtensions},
	models.MessageTypeAudio:  {field: fieldAudio, needsCharacter: true, extensions: audioExtensions},
	models.MessageTypeStatus: {field: fieldStatus, maxLen: 255},
}

// ValidMessageType 判斷是否為已知的訊息種類
func ValidMessageType(t models.MessageType) bool {
	_, ok := contentRules[t]
	return ok
}

// MessageContent 解析完成的訊息內容，只帶有該種類對應的一個欄位
type MessageContent struct {
	Type        models.MessageType
	CharacterID *uint
	Value       string
}

// Apply 把內容寫入訊息，並清空其他所有內容欄位
func (c MessageContent) Apply(m *models.Message) {
	m.MessageType = c.Type
	m.CharacterID = c.CharacterID
	m.TextContent, m.ImageContent, m.VideoContent, m.AudioContent, m.StatusContent = nil, nil, nil, nil, nil

	value := c.Value
	switch contentRules[c.Type].field {
	case fieldText:
		m.TextContent = &value
	case fieldImage:
		m.ImageContent = &value
	case fieldVideo:
		m.VideoContent = &value
	case fieldAudio:
		m.AudioContent = &value
	case fieldStatus:
		m.StatusContent = &value
	}
}

// CharacterLookup 由儲存層提供的角色查詢
type CharacterLookup interface {
	FindByID(ctx context.Context, id uint) (*models.Character, error)
}

// ResolveContent 依訊息種類驗證新訊息的內容
//
// status 只需要 status_content，角色可省略；
// 其他種類需要同一故事中存在的角色，以及對應的內容欄位。
func ResolveContent(ctx context.Context, storyID uint, messageType models.MessageType, payload ContentPayload, characters CharacterLookup) (MessageContent, error) {
	rule, ok := contentRules[messageType]
	if !ok {
		return MessageContent{}, ErrUnknownMessageType
	}

	if err := checkNoForeignContent(rule, payload); err != nil {
		return MessageContent{}, err
	}

	characterID, err := resolveCharacter(ctx, storyID, payload.CharacterID, characters)
	if err != nil {
		return MessageContent{}, err
	}
	if rule.needsCharacter && characterID == nil {
		return MessageContent{}, ErrCharacterNotFound
	}

	value, err := checkValue(rule, payload.value(rule.field))
	if err != nil {
		return MessageContent{}, err
	}

	return MessageContent{Type: messageType, CharacterID: characterID, Value: value}, nil
}

// ResolveContentUpdate 驗證部分更新的內容
//
// 只檢查請求中有帶的欄位，其餘沿用現有內容。
// requestedType 為空代表未指定；與現有種類不同時拒絕，不支援變更種類。
func ResolveContentUpdate(ctx context.Context, storyID uint, current *models.Message, requestedType models.MessageType, payload ContentPayload, characters CharacterLookup) (MessageContent, error) {
	if requestedType != "" && requestedType != current.MessageType {
		return MessageContent{}, ErrMessageTypeImmutable
	}

	rule, ok := contentRules[current.MessageType]
	if !ok {
		return MessageContent{}, ErrUnknownMessageType
	}

	if err := checkNoForeignContent(rule, payload); err != nil {
		return MessageContent{}, err
	}

	content := MessageContent{Type: current.MessageType, CharacterID: current.CharacterID}
	if stored := storedValue(current, rule.field); stored != nil {
		content.Value = *stored
	}

	if payload.CharacterID != nil {
		characterID, err := resolveCharacter(ctx, storyID, payload.CharacterID, characters)
		if err != nil {
			return MessageContent{}, err
		}
		content.CharacterID = characterID
	}

	if v := payload.value(rule.field); v != nil {
		value, err := checkValue(rule, v)
		if err != nil {
			return MessageContent{}, err
		}
		content.Value = value
	}

	return content, nil
}

// checkNoForeignContent 其他種類的欄位不可有值
func checkNoForeignContent(rule contentRule, payload ContentPayload) error {
	for _, f := range allContentFields {
		if f == rule.field {
			continue
		}
		if v := payload.value(f); v != nil && strings.TrimSpace(*v) != "" {
			return ErrMismatchedContent
		}
	}
	return nil
}

func resolveCharacter(ctx context.Context, storyID uint, id *uint, characters CharacterLookup) (*uint, error) {
	if id == nil {
		return nil, nil
	}
	character, err := characters.FindByID(ctx, *id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCharacterNotFound
		}
		return nil, fmt.Errorf("failed to find character %d: %w", *id, err)
	}
	// 其他故事的角色視同不存在
	if character.StoryID != storyID {
		return nil, ErrCharacterNotFound
	}
	resolved := character.ID
	return &resolved, nil
}

func checkValue(rule contentRule, v *string) (string, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return "", ErrMissingContent
	}
	value := *v
	if rule.maxLen > 0 && utf8.RuneCountInString(value) > rule.maxLen {
		return "", withDetail(ErrContentTooLong, fmt.Sprintf("at most %d characters", rule.maxLen))
	}
	if len(rule.extensions) > 0 && !hasExtension(value, rule.extensions) {
		return "", withDetail(ErrInvalidMediaExtension, "allowed: "+strings.Join(rule.extensions, ", "))
	}
	return value, nil
}

func hasExtension(ref string, allowed []string) bool {
	ext := strings.ToLower(path.Ext(ref))
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}
