package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/core"
)

const defaultScanBatchSize int64 = 500

// NamespaceCleaner 按 Key 前缀批量删除缓存。
// 通过 SCAN 游标分批遍历，UNLINK 删除。
type NamespaceCleaner interface {
	// DeleteByPrefix 删除所有以 prefix 开头的 Key，返回删除数量。prefix 不能为空。
	DeleteByPrefix(ctx context.Context, prefix string) (int64, error)
}

type namespaceCleaner struct {
	redisClient *redis.Client
	batchSize   int64
	logger      *core.ZapLogger
}

// NewNamespaceCleaner batchSize <= 0 时使用默认值 500
func NewNamespaceCleaner(redisClient *redis.Client, batchSize int64, logger *core.ZapLogger) NamespaceCleaner {
	if batchSize <= 0 {
		batchSize = defaultScanBatchSize
	}
	return &namespaceCleaner{redisClient: redisClient, batchSize: batchSize, logger: logger}
}

func (n *namespaceCleaner) DeleteByPrefix(ctx context.Context, prefix string) (int64, error) {
	if prefix == "" {
		return 0, errors.New("拒绝清理空前缀")
	}
	var (
		cursor  uint64
		deleted int64
	)
	pattern := prefix + "*"
	for {
		keys, next, err := n.redisClient.Scan(ctx, cursor, pattern, n.batchSize).Result()
		if err != nil {
			n.logger.Error("SCAN 缓存 Key 失败", zap.String("pattern", pattern), zap.Error(err))
			return deleted, fmt.Errorf("扫描 %s 失败: %w", pattern, err)
		}
		if len(keys) > 0 {
			count, err := n.redisClient.Unlink(ctx, keys...).Result()
			if err != nil {
				n.logger.Error("UNLINK 缓存 Key 失败", zap.String("pattern", pattern), zap.Int("batch", len(keys)), zap.Error(err))
				return deleted, fmt.Errorf("删除 %s 失败: %w", pattern, err)
			}
			deleted += count
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	n.logger.Info("缓存命名空间已清理", zap.String("prefix", prefix), zap.Int64("deleted", deleted))
	return deleted, nil
}
