package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/core"
	"github.com/Xushengqwer/blog_service/models/vo"
)

// PostListKey 帖子列表查询条件，用于拼出 blog:result 下的缓存 Key
type PostListKey struct {
	Published *bool
	Title     string
	Page      int
	PageSize  int
}

func (k PostListKey) String() string {
	published := "any"
	if k.Published != nil {
		published = strconv.FormatBool(*k.Published)
	}
	return fmt.Sprintf("%spublished=%s|title=%s|page=%d|size=%d",
		constant.PostListCacheKeyPrefix, published, strings.ToLower(k.Title), k.Page, k.PageSize)
}

// PostCache 帖子读缓存
// - 详情缓存在 blog:app:post:{id}
// - 列表分页结果缓存在 blog:result:posts:{条件}，任何帖子写操作后整体失效
// - 未命中统一返回 myErrors.ErrCacheMiss，由服务层回源
type PostCache interface {
	GetPostDetail(ctx context.Context, postID uint64) (*vo.PostVO, error)
	SetPostDetail(ctx context.Context, post *vo.PostVO) error
	// DeletePostDetail 删除详情缓存，Key 不存在不报错
	DeletePostDetail(ctx context.Context, postID uint64) error
	// InvalidatePostDetails 删除所有帖子详情缓存 (用户、标签等被删除时影响的帖子无法逐一确定)
	InvalidatePostDetails(ctx context.Context) (int64, error)

	GetPostList(ctx context.Context, key PostListKey) (*vo.PostListVO, error)
	SetPostList(ctx context.Context, key PostListKey, list *vo.PostListVO) error
	// InvalidatePostLists 删除所有列表分页缓存，返回删除的 Key 数
	InvalidatePostLists(ctx context.Context) (int64, error)
}

type postCache struct {
	redisClient *redis.Client
	cleaner     NamespaceCleaner
	cfg         config.CacheConfig
	logger      *core.ZapLogger
}

// NewPostCache 构造帖子缓存
func NewPostCache(redisClient *redis.Client, cleaner NamespaceCleaner, cfg config.CacheConfig, logger *core.ZapLogger) PostCache {
	return &postCache{redisClient: redisClient, cleaner: cleaner, cfg: cfg, logger: logger}
}

func postDetailKey(postID uint64) string {
	return constant.PostDetailCacheKeyPrefix + strconv.FormatUint(postID, 10)
}

func (c *postCache) GetPostDetail(ctx context.Context, postID uint64) (*vo.PostVO, error) {
	return getJSON[vo.PostVO](ctx, c.redisClient, postDetailKey(postID))
}

func (c *postCache) SetPostDetail(ctx context.Context, post *vo.PostVO) error {
	return setJSON(ctx, c.redisClient, postDetailKey(post.ID), post, seconds(c.cfg.PostDetailTTL))
}

func (c *postCache) DeletePostDetail(ctx context.Context, postID uint64) error {
	if err := c.redisClient.Del(ctx, postDetailKey(postID)).Err(); err != nil {
		c.logger.Error("删除帖子详情缓存失败", zap.Uint64("postID", postID), zap.Error(err))
		return fmt.Errorf("删除帖子详情缓存失败: %w", err)
	}
	return nil
}

func (c *postCache) InvalidatePostDetails(ctx context.Context) (int64, error) {
	return c.cleaner.DeleteByPrefix(ctx, constant.PostDetailCacheKeyPrefix)
}

func (c *postCache) GetPostList(ctx context.Context, key PostListKey) (*vo.PostListVO, error) {
	return getJSON[vo.PostListVO](ctx, c.redisClient, key.String())
}

func (c *postCache) SetPostList(ctx context.Context, key PostListKey, list *vo.PostListVO) error {
	return setJSON(ctx, c.redisClient, key.String(), list, seconds(c.cfg.PostListTTL))
}

func (c *postCache) InvalidatePostLists(ctx context.Context) (int64, error) {
	return c.cleaner.DeleteByPrefix(ctx, constant.PostListCacheKeyPrefix)
}
