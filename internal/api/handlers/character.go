package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"story_web/internal/service"
)

// CharacterHandler 角色只開放給故事作者操作
type CharacterHandler struct {
	characterService *service.CharacterService
}

func NewCharacterHandler(characterService *service.CharacterService) *CharacterHandler {
	return &CharacterHandler{characterService: characterService}
}

type CharacterInput struct {
	Name  *string `json:"name" binding:"omitempty,max=50"`
	Color *string `json:"color" binding:"omitempty,max=7"`
}

func (h *CharacterHandler) List(c *gin.Context) {
	storyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	characters, err := h.characterService.List(c.Request.Context(), currentUser(c), storyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, characters)
}

func (h *CharacterHandler) Create(c *gin.Context) {
	storyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input CharacterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	character, err := h.characterService.Create(c.Request.Context(), currentUser(c), storyID,
		service.CharacterInput{Name: input.Name, Color: input.Color})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, character)
}

func (h *CharacterHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input CharacterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	character, err := h.characterService.Update(c.Request.Context(), currentUser(c), id,
		service.CharacterInput{Name: input.Name, Color: input.Color})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *CharacterHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.characterService.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
