package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Xushengqwer/blog_service/myErrors"
)

// getJSON 读取 String 类型的 JSON 缓存，Key 不存在时返回 myErrors.ErrCacheMiss
func getJSON[T any](ctx context.Context, client redis.Cmdable, key string) (*T, error) {
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, myErrors.ErrCacheMiss
		}
		return nil, fmt.Errorf("读取缓存 %s 失败: %w", key, err)
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("反序列化缓存 %s 失败: %w", key, err)
	}
	return &out, nil
}

// setJSON 写入 JSON 缓存，ttl <= 0 表示不过期
func setJSON(ctx context.Context, client redis.Cmdable, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("序列化缓存 %s 失败: %w", key, err)
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("写入缓存 %s 失败: %w", key, err)
	}
	return nil
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
