package service

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MediaURLPrefix 媒體檔對外的路徑前綴
const MediaURLPrefix = "/media"

var mediaExtensions = map[string][]string{
	"image": imageExtensions,
	"video": videoExtensions,
	"audio": audioExtensions,
}

// MediaService 把上傳的媒體檔存到本機目錄，回傳可放入訊息內容的參照
type MediaService struct {
	root string
}

func NewMediaService(root string) *MediaService {
	return &MediaService{root: root}
}

func (s *MediaService) Root() string {
	return s.root
}

// Store 依種類檢查副檔名後寫入檔案，檔名以 uuid 取代
func (s *MediaService) Store(kind, filename string, src io.Reader) (string, error) {
	allowed, ok := mediaExtensions[kind]
	if !ok {
		return "", ErrInvalidMediaKind
	}
	if !hasExtension(filename, allowed) {
		return "", withDetail(ErrInvalidMediaExtension, "allowed: "+strings.Join(allowed, ", "))
	}

	dir := filepath.Join(s.root, kind+"s")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create media dir: %w", err)
	}

	name := uuid.NewString() + strings.ToLower(path.Ext(filename))
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}
	return path.Join(MediaURLPrefix, kind+"s", name), nil
}
