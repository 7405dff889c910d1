package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/core"
	"github.com/Xushengqwer/blog_service/models/vo"
)

// MetadataCache 标签、分类全量列表缓存 (blog:metadata)，以及用户资料缓存 (blog:app:user)
type MetadataCache interface {
	GetTags(ctx context.Context) ([]*vo.TaxonomyVO, error)
	SetTags(ctx context.Context, tags []*vo.TaxonomyVO) error
	InvalidateTags(ctx context.Context) error

	GetCategories(ctx context.Context) ([]*vo.TaxonomyVO, error)
	SetCategories(ctx context.Context, categories []*vo.TaxonomyVO) error
	InvalidateCategories(ctx context.Context) error

	GetUser(ctx context.Context, userID uint64) (*vo.UserVO, error)
	SetUser(ctx context.Context, user *vo.UserVO) error
	InvalidateUser(ctx context.Context, userID uint64) error
}

type metadataCache struct {
	redisClient *redis.Client
	cfg         config.CacheConfig
	logger      *core.ZapLogger
}

func NewMetadataCache(redisClient *redis.Client, cfg config.CacheConfig, logger *core.ZapLogger) MetadataCache {
	return &metadataCache{redisClient: redisClient, cfg: cfg, logger: logger}
}

func (c *metadataCache) GetTags(ctx context.Context) ([]*vo.TaxonomyVO, error) {
	return c.getList(ctx, constant.TagListCacheKey)
}

func (c *metadataCache) SetTags(ctx context.Context, tags []*vo.TaxonomyVO) error {
	return setJSON(ctx, c.redisClient, constant.TagListCacheKey, tags, seconds(c.cfg.TaxonomyTTL))
}

func (c *metadataCache) InvalidateTags(ctx context.Context) error {
	return c.del(ctx, constant.TagListCacheKey)
}

func (c *metadataCache) GetCategories(ctx context.Context) ([]*vo.TaxonomyVO, error) {
	return c.getList(ctx, constant.CategoryListCacheKey)
}

func (c *metadataCache) SetCategories(ctx context.Context, categories []*vo.TaxonomyVO) error {
	return setJSON(ctx, c.redisClient, constant.CategoryListCacheKey, categories, seconds(c.cfg.TaxonomyTTL))
}

func (c *metadataCache) InvalidateCategories(ctx context.Context) error {
	return c.del(ctx, constant.CategoryListCacheKey)
}

func userKey(userID uint64) string {
	return constant.UserCacheKeyPrefix + strconv.FormatUint(userID, 10)
}

func (c *metadataCache) GetUser(ctx context.Context, userID uint64) (*vo.UserVO, error) {
	return getJSON[vo.UserVO](ctx, c.redisClient, userKey(userID))
}

// SetUser 用户资料与帖子详情共用详情 TTL
func (c *metadataCache) SetUser(ctx context.Context, user *vo.UserVO) error {
	return setJSON(ctx, c.redisClient, userKey(user.ID), user, seconds(c.cfg.PostDetailTTL))
}

func (c *metadataCache) InvalidateUser(ctx context.Context, userID uint64) error {
	return c.del(ctx, userKey(userID))
}

func (c *metadataCache) getList(ctx context.Context, key string) ([]*vo.TaxonomyVO, error) {
	list, err := getJSON[[]*vo.TaxonomyVO](ctx, c.redisClient, key)
	if err != nil {
		return nil, err
	}
	return *list, nil
}

func (c *metadataCache) del(ctx context.Context, key string) error {
	if err := c.redisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("删除缓存 %s 失败: %w", key, err)
	}
	return nil
}
