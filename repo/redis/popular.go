package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/core"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// RankedPost 榜单中的一项
type RankedPost struct {
	PostID    uint64
	LikeCount int64
}

// PopularPostsCache 热门帖子榜单 (blog:query:popular_posts)，成员为帖子 ID，分数为点赞数。
type PopularPostsCache interface {
	// ReplaceRanking 用新的统计结果整体替换榜单 (临时 Key + RENAME)，读方不会看到半成品。
	// counts 为空时删除榜单。
	ReplaceRanking(ctx context.Context, counts []mysql.PostLikeCount) error

	// GetRanking 按点赞数降序返回前 limit 项，榜单不存在时返回空切片。
	GetRanking(ctx context.Context, limit int) ([]RankedPost, error)

	// RemovePost 帖子删除或取消发布后立即移出榜单
	RemovePost(ctx context.Context, postID uint64) error
}

type popularPostsCache struct {
	redisClient *redis.Client
	logger      *core.ZapLogger
}

func NewPopularPostsCache(redisClient *redis.Client, logger *core.ZapLogger) PopularPostsCache {
	return &popularPostsCache{redisClient: redisClient, logger: logger}
}

func (c *popularPostsCache) ReplaceRanking(ctx context.Context, counts []mysql.PostLikeCount) error {
	finalKey := constant.PopularPostsRankKey
	if len(counts) == 0 {
		c.logger.Info("没有可上榜的帖子，清空热门榜单", zap.String("key", finalKey))
		if err := c.redisClient.Del(ctx, finalKey).Err(); err != nil {
			return fmt.Errorf("清空热门榜单失败: %w", err)
		}
		return nil
	}

	tempKey := finalKey + "_temp_" + strconv.FormatInt(time.Now().UnixNano(), 10)
	members := make([]redis.Z, 0, len(counts))
	for _, pc := range counts {
		members = append(members, redis.Z{
			Score:  float64(pc.LikeCount),
			Member: strconv.FormatUint(pc.PostID, 10),
		})
	}

	pipe := c.redisClient.TxPipeline()
	pipe.Del(ctx, tempKey)
	pipe.ZAdd(ctx, tempKey, members...)
	pipe.Rename(ctx, tempKey, finalKey)
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Error("写入热门榜单失败，旧榜单保留", zap.Error(err), zap.String("tempKey", tempKey))
		c.redisClient.Del(ctx, tempKey)
		return fmt.Errorf("替换热门榜单失败: %w", err)
	}
	c.logger.Info("热门榜单已更新", zap.String("key", finalKey), zap.Int("size", len(members)))
	return nil
}

func (c *popularPostsCache) GetRanking(ctx context.Context, limit int) ([]RankedPost, error) {
	if limit <= 0 {
		return []RankedPost{}, nil
	}
	key := constant.PopularPostsRankKey
	scores, err := c.redisClient.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []RankedPost{}, nil
		}
		c.logger.Error("读取热门榜单失败", zap.Error(err), zap.String("key", key))
		return nil, fmt.Errorf("读取热门榜单失败: %w", err)
	}

	ranked := make([]RankedPost, 0, len(scores))
	for _, z := range scores {
		idStr, ok := z.Member.(string)
		if !ok {
			c.logger.Warn("热门榜单成员类型异常，已跳过", zap.Any("member", z.Member))
			continue
		}
		id, parseErr := strconv.ParseUint(idStr, 10, 64)
		if parseErr != nil {
			c.logger.Warn("解析热门榜单成员失败，已跳过", zap.String("member", idStr), zap.Error(parseErr))
			continue
		}
		ranked = append(ranked, RankedPost{PostID: id, LikeCount: int64(z.Score)})
	}
	return ranked, nil
}

func (c *popularPostsCache) RemovePost(ctx context.Context, postID uint64) error {
	if err := c.redisClient.ZRem(ctx, constant.PopularPostsRankKey, strconv.FormatUint(postID, 10)).Err(); err != nil {
		return fmt.Errorf("从热门榜单移除帖子 %d 失败: %w", postID, err)
	}
	return nil
}
