package service

import (
	"errors"
	"fmt"
)

// ValidationError 表示使用者輸入不合法，Code 會原樣回傳給前端
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// 訊息排序鍵
var (
	ErrMissingOrder     = newValidationError("missing_order", "order is required")
	ErrInvalidOrder     = newValidationError("invalid_order", "order must be a finite number")
	ErrNonPositiveOrder = newValidationError("non_positive_order", "order must be greater than zero")
	ErrDuplicateOrder   = newValidationError("duplicate_order", "order is already used in this episode")
)

// 訊息內容
var (
	ErrUnknownMessageType    = newValidationError("unknown_message_type", "unknown message type")
	ErrMissingContent        = newValidationError("missing_content", "content for the message type is required")
	ErrCharacterNotFound     = newValidationError("character_not_found", "character not found")
	ErrMismatchedContent     = newValidationError("mismatched_content", "content field does not match the message type")
	ErrMessageTypeImmutable  = newValidationError("message_type_immutable", "message type cannot be changed")
	ErrContentTooLong        = newValidationError("content_too_long", "content is too long")
	ErrInvalidMediaExtension = newValidationError("invalid_media_extension", "unsupported media file extension")
)

// 其他領域驗證
var (
	ErrInvalidColor        = newValidationError("invalid_color", "enter a valid hex color code")
	ErrCharacterNameTaken  = newValidationError("character_name_taken", "this name is already in use")
	ErrCharacterColorTaken = newValidationError("character_color_taken", "this color is already in use")
	ErrMissingTitle        = newValidationError("missing_title", "title is required")
	ErrMissingName         = newValidationError("missing_name", "name is required")
	ErrEmptyComment        = newValidationError("empty_comment", "comment text is required")
	ErrCategoryNotFound    = newValidationError("category_not_found", "category not found")
	ErrInvalidMediaKind    = newValidationError("invalid_media_kind", "media kind must be image, video or audio")
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("permission denied")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidToken       = errors.New("token is invalid or expired")
)

// withDetail 在保留 errors.Is 比對的前提下附加說明
func withDetail(err *ValidationError, detail string) error {
	return fmt.Errorf("%w: %s", err, detail)
}
