package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ViewRepository 以 Redis set 記錄每個故事的不重複瀏覽 IP
type ViewRepository interface {
	Record(ctx context.Context, storyID uint, ip string) error
	Count(ctx context.Context, storyID uint) (int64, error)
	Counts(ctx context.Context, storyIDs []uint) (map[uint]int64, error)
	Forget(ctx context.Context, storyID uint) error
}

type viewRepository struct {
	client *redis.Client
}

func NewViewRepository(client *redis.Client) ViewRepository {
	return &viewRepository{client: client}
}

func viewKey(storyID uint) string {
	return fmt.Sprintf("story_views:%d", storyID)
}

func (r *viewRepository) Record(ctx context.Context, storyID uint, ip string) error {
	return r.client.SAdd(ctx, viewKey(storyID), ip).Err()
}

func (r *viewRepository) Count(ctx context.Context, storyID uint) (int64, error) {
	return r.client.SCard(ctx, viewKey(storyID)).Result()
}

func (r *viewRepository) Counts(ctx context.Context, storyIDs []uint) (map[uint]int64, error) {
	out := make(map[uint]int64, len(storyIDs))
	if len(storyIDs) == 0 {
		return out, nil
	}

	pipe := r.client.Pipeline()
	cmds := make(map[uint]*redis.IntCmd, len(storyIDs))
	for _, id := range storyIDs {
		cmds[id] = pipe.SCard(ctx, viewKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to count views: %w", err)
	}
	for id, cmd := range cmds {
		out[id] = cmd.Val()
	}
	return out, nil
}

func (r *viewRepository) Forget(ctx context.Context, storyID uint) error {
	return r.client.Del(ctx, viewKey(storyID)).Err()
}
