package redis

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/core"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestPostCache_DetailRoundTripAndMiss(t *testing.T) {
	mr, client := newTestRedis(t)
	logger := core.NewNopLogger()
	cache := NewPostCache(client, NewNamespaceCleaner(client, 10, logger), config.CacheConfig{PostDetailTTL: 60}, logger)
	ctx := context.Background()

	_, err := cache.GetPostDetail(ctx, 1)
	assert.ErrorIs(t, err, myErrors.ErrCacheMiss)

	require.NoError(t, cache.SetPostDetail(ctx, &vo.PostVO{ID: 1, Title: "hello"}))
	assert.True(t, mr.Exists("blog:app:post:1"))
	assert.Greater(t, mr.TTL("blog:app:post:1").Seconds(), 0.0)

	got, err := cache.GetPostDetail(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Title)

	require.NoError(t, cache.DeletePostDetail(ctx, 1))
	_, err = cache.GetPostDetail(ctx, 1)
	assert.ErrorIs(t, err, myErrors.ErrCacheMiss)
}

func TestPostCache_ListKeysAndInvalidate(t *testing.T) {
	mr, client := newTestRedis(t)
	logger := core.NewNopLogger()
	cache := NewPostCache(client, NewNamespaceCleaner(client, 2, logger), config.CacheConfig{}, logger)
	ctx := context.Background()

	published := true
	k1 := PostListKey{Published: &published, Title: "Go", Page: 1, PageSize: 10}
	k2 := PostListKey{Page: 2, PageSize: 10}
	assert.Equal(t, "blog:result:posts:published=true|title=go|page=1|size=10", k1.String())
	assert.Equal(t, "blog:result:posts:published=any|title=|page=2|size=10", k2.String())

	require.NoError(t, cache.SetPostList(ctx, k1, &vo.PostListVO{Total: 1, Page: 1, PageSize: 10}))
	require.NoError(t, cache.SetPostList(ctx, k2, &vo.PostListVO{Total: 0, Page: 2, PageSize: 10}))
	require.NoError(t, mr.Set("blog:app:post:9", "{}"))

	got, err := cache.GetPostList(ctx, k1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.Total)

	n, err := cache.InvalidatePostLists(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	_, err = cache.GetPostList(ctx, k1)
	assert.ErrorIs(t, err, myErrors.ErrCacheMiss)
	assert.True(t, mr.Exists("blog:app:post:9"))
}

func TestNamespaceCleaner_DeleteByPrefix(t *testing.T) {
	mr, client := newTestRedis(t)
	cleaner := NewNamespaceCleaner(client, 3, core.NewNopLogger())
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, mr.Set(fmt.Sprintf("%spost:%d", constant.NamespaceApp, i), "x"))
	}
	require.NoError(t, mr.Set(constant.TagListCacheKey, "[]"))
	_, err := mr.ZAdd(constant.PopularPostsRankKey, 1, "1")
	require.NoError(t, err)

	n, err := cleaner.DeleteByPrefix(ctx, constant.NamespaceApp)
	require.NoError(t, err)
	assert.EqualValues(t, 10, n)
	assert.True(t, mr.Exists(constant.TagListCacheKey))
	assert.True(t, mr.Exists(constant.PopularPostsRankKey))

	n, err = cleaner.DeleteByPrefix(ctx, constant.NamespaceApp)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = cleaner.DeleteByPrefix(ctx, "")
	assert.Error(t, err)
}

func TestNamespaceCleaner_ServerDown(t *testing.T) {
	mr, client := newTestRedis(t)
	cleaner := NewNamespaceCleaner(client, 0, core.NewNopLogger())
	mr.Close()

	_, err := cleaner.DeleteByPrefix(context.Background(), constant.NamespaceQuery)
	assert.Error(t, err)
}

func TestMetadataCache(t *testing.T) {
	_, client := newTestRedis(t)
	cache := NewMetadataCache(client, config.CacheConfig{TaxonomyTTL: 30}, core.NewNopLogger())
	ctx := context.Background()

	_, err := cache.GetTags(ctx)
	assert.ErrorIs(t, err, myErrors.ErrCacheMiss)

	require.NoError(t, cache.SetTags(ctx, []*vo.TaxonomyVO{{ID: 1, Name: "go"}}))
	tags, err := cache.GetTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "go", tags[0].Name)

	require.NoError(t, cache.SetCategories(ctx, []*vo.TaxonomyVO{}))
	categories, err := cache.GetCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)

	require.NoError(t, cache.InvalidateTags(ctx))
	_, err = cache.GetTags(ctx)
	assert.ErrorIs(t, err, myErrors.ErrCacheMiss)

	require.NoError(t, cache.SetUser(ctx, &vo.UserVO{ID: 7, Username: "alice"}))
	u, err := cache.GetUser(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	require.NoError(t, cache.InvalidateUser(ctx, 7))
	_, err = cache.GetUser(ctx, 7)
	assert.ErrorIs(t, err, myErrors.ErrCacheMiss)
}

func TestPopularPostsCache(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewPopularPostsCache(client, core.NewNopLogger())
	ctx := context.Background()

	ranked, err := cache.GetRanking(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, ranked)

	require.NoError(t, cache.ReplaceRanking(ctx, []mysql.PostLikeCount{
		{PostID: 3, LikeCount: 5},
		{PostID: 1, LikeCount: 9},
		{PostID: 2, LikeCount: 1},
	}))
	ranked, err = cache.GetRanking(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []RankedPost{{PostID: 1, LikeCount: 9}, {PostID: 3, LikeCount: 5}}, ranked)

	require.NoError(t, cache.ReplaceRanking(ctx, []mysql.PostLikeCount{{PostID: 4, LikeCount: 2}}))
	ranked, err = cache.GetRanking(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []RankedPost{{PostID: 4, LikeCount: 2}}, ranked)
	assert.Len(t, mr.Keys(), 1)

	require.NoError(t, cache.RemovePost(ctx, 4))
	ranked, err = cache.GetRanking(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, ranked)

	require.NoError(t, cache.ReplaceRanking(ctx, nil))
	assert.False(t, mr.Exists(constant.PopularPostsRankKey))
}
