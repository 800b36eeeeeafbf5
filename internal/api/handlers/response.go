package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"story_web/internal/middleware"
	"story_web/internal/repository"
	"story_web/internal/service"
)

// respondError 把服務層錯誤轉成 HTTP 回應；未預期的錯誤交給日誌中間件記錄
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrDuplicateOrder) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error(), "code": verr.Code})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": "not_found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "code": "forbidden"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "code": "invalid_credentials"})
	case errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "code": "invalid_token"})
	case errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "username_taken"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "code": "internal"})
	}
}

// pathID 解析路徑中的數字 ID，失敗時直接回 400
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name, "code": "invalid_request"})
		return 0, false
	}
	return uint(id), true
}

func currentUser(c *gin.Context) uint {
	return middleware.UserID(c)
}

type pageLinks struct {
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// Paginated 分頁列表的回應格式
type Paginated struct {
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
	Links    pageLinks `json:"links"`
	Results  any       `json:"results"`
}

func pageFromQuery(c *gin.Context) repository.Page {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("page_size"))
	return repository.Page{Page: page, PageSize: size}.Normalize()
}

func respondPage(c *gin.Context, page repository.Page, total int64, results any) {
	link := func(p int) *string {
		u := *c.Request.URL
		q := u.Query()
		q.Set("page", strconv.Itoa(p))
		u.RawQuery = q.Encode()
		s := u.RequestURI()
		return &s
	}

	body := Paginated{Total: total, Page: page.Page, PageSize: page.PageSize, Results: results}
	if int64(page.Page*page.PageSize) < total {
		body.Links.Next = link(page.Page + 1)
	}
	if page.Page > 1 {
		body.Links.Previous = link(page.Page - 1)
	}
	c.JSON(http.StatusOK, body)
}
