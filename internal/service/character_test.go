package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"story_web/internal/repository"
)

func TestCharacterCreate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	author := env.user(t, "author")
	reader := env.user(t, "reader")
	story := env.story(t, author, true)

	c, err := env.characters.Create(ctx, author, story.ID, CharacterInput{Name: strPtr(" Alice "), Color: strPtr("#ff00aa")})
	require.NoError(t, err)
	assert.Equal(t, "Alice", c.Name)
	assert.Equal(t, "#FF00AA", c.Color)

	tests := []struct {
		name    string
		in      CharacterInput
		wantErr error
	}{
		{name: "no name", in: CharacterInput{}, wantErr: ErrMissingName},
		{name: "blank name", in: CharacterInput{Name: strPtr(" ")}, wantErr: ErrMissingName},
		{name: "name taken", in: CharacterInput{Name: strPtr("Alice")}, wantErr: ErrCharacterNameTaken},
		{name: "bad color", in: CharacterInput{Name: strPtr("Bob"), Color: strPtr("red")}, wantErr: ErrInvalidColor},
		{name: "color taken", in: CharacterInput{Name: strPtr("Bob"), Color: strPtr("#FF00AA")}, wantErr: ErrCharacterColorTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.characters.Create(ctx, author, story.ID, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err = env.characters.Create(ctx, reader, story.ID, CharacterInput{Name: strPtr("Eve")})
	assert.ErrorIs(t, err, ErrForbidden)

	short, err := env.characters.Create(ctx, author, story.ID, CharacterInput{Name: strPtr("Bob"), Color: strPtr("#abc")})
	require.NoError(t, err)
	assert.Equal(t, "#ABC", short.Color)
}

func TestCharacterUpdateKeepsOwnNameAndColor(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	author := env.user(t, "author")
	story := env.story(t, author, false)

	c, err := env.characters.Create(ctx, author, story.ID, CharacterInput{Name: strPtr("Alice"), Color: strPtr("#000000")})
	require.NoError(t, err)

	updated, err := env.characters.Update(ctx, author, c.ID, CharacterInput{Name: strPtr("Alice"), Color: strPtr("#000000")})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.Name)

	updated, err = env.characters.Update(ctx, author, c.ID, CharacterInput{Color: strPtr("")})
	require.NoError(t, err)
	assert.Empty(t, updated.Color)

	list, err := env.characters.List(ctx, author, story.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Alice", list[0].Name)
}

// unseenCharacters 模擬兩個請求同時通過名稱與顏色的檢查
type unseenCharacters struct {
	repository.CharacterRepository
}

func (unseenCharacters) NameTaken(context.Context, uint, string, uint) (bool, error) {
	return false, nil
}

func (unseenCharacters) ColorTaken(context.Context, uint, string, uint) (bool, error) {
	return false, nil
}

func TestCharacterConstraintViolations(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	author := env.user(t, "author")
	story := env.story(t, author, true)
	racing := NewCharacterService(unseenCharacters{env.repos.Character}, env.repos.Story, env.repos.Episode)

	_, err := env.characters.Create(ctx, author, story.ID, CharacterInput{Name: strPtr("Alice"), Color: strPtr("#FF00AA")})
	require.NoError(t, err)

	_, err = racing.Create(ctx, author, story.ID, CharacterInput{Name: strPtr("Bob"), Color: strPtr("#ff00aa")})
	assert.ErrorIs(t, err, ErrCharacterColorTaken)

	_, err = racing.Create(ctx, author, story.ID, CharacterInput{Name: strPtr("Alice"), Color: strPtr("#000000")})
	assert.ErrorIs(t, err, ErrCharacterNameTaken)

	bob, err := racing.Create(ctx, author, story.ID, CharacterInput{Name: strPtr("Bob")})
	require.NoError(t, err)
	_, err = racing.Update(ctx, author, bob.ID, CharacterInput{Color: strPtr("#ff00aa")})
	assert.ErrorIs(t, err, ErrCharacterColorTaken)

	list, err := env.characters.List(ctx, author, story.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
