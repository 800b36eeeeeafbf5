package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"story_web/internal/repository"
	"story_web/internal/service"
)

func TestRawOrder(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		present bool
	}{
		{raw: ``, want: "", present: false},
		{raw: `null`, want: "", present: false},
		{raw: `1024`, want: "1024", present: true},
		{raw: `1.5e3`, want: "1.5e3", present: true},
		{raw: `"2048"`, want: "2048", present: true},
		{raw: `""`, want: "", present: true},
		{raw: `true`, want: "true", present: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, present := rawOrder(json.RawMessage(tt.raw))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.present, present)
		})
	}
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "validation", err: service.ErrMissingContent, status: http.StatusBadRequest, code: "missing_content"},
		{name: "wrapped validation", err: fmt.Errorf("x: %w", service.ErrInvalidOrder), status: http.StatusBadRequest, code: "invalid_order"},
		{name: "duplicate order", err: service.ErrDuplicateOrder, status: http.StatusConflict, code: "duplicate_order"},
		{name: "not found", err: fmt.Errorf("story: %w", service.ErrNotFound), status: http.StatusNotFound, code: "not_found"},
		{name: "forbidden", err: service.ErrForbidden, status: http.StatusForbidden, code: "forbidden"},
		{name: "credentials", err: service.ErrInvalidCredentials, status: http.StatusUnauthorized, code: "invalid_credentials"},
		{name: "username", err: service.ErrUsernameTaken, status: http.StatusConflict, code: "username_taken"},
		{name: "token", err: service.ErrInvalidToken, status: http.StatusUnauthorized, code: "invalid_token"},
		{name: "internal", err: errors.New("connection reset"), status: http.StatusInternalServerError, code: "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body["code"])
			if tt.status == http.StatusInternalServerError {
				assert.NotContains(t, body["error"], "connection reset")
				assert.Len(t, c.Errors, 1)
			}
		})
	}
}

func TestRespondPageLinks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/stories?search=night&page=2&page_size=5", nil)

	page := pageFromQuery(c)
	respondPage(c, page, 12, []int{1, 2, 3, 4, 5})

	var body Paginated
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(12), body.Total)
	assert.Equal(t, 2, body.Page)
	assert.Equal(t, 5, body.PageSize)
	require.NotNil(t, body.Links.Next)
	assert.Equal(t, "/api/stories?page=3&page_size=5&search=night", *body.Links.Next)
	require.NotNil(t, body.Links.Previous)
	assert.Equal(t, "/api/stories?page=1&page_size=5&search=night", *body.Links.Previous)
}

func TestPageFromQueryDefaults(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?page=-1&page_size=1000", nil)

	assert.Equal(t, repository.Page{Page: 1, PageSize: repository.MaxPageSize}, pageFromQuery(c))
}
