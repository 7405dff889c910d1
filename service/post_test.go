package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/blog_service/core"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

func postRequest(title string, published bool) *dto.CreatePostRequest {
	return &dto.CreatePostRequest{
		Title:          title,
		Content:        "some content for " + title,
		Published:      published,
		CommentsActive: boolPtr(true),
	}
}

func TestPostService_CreateRequiresLogin(t *testing.T) {
	e := newTestEnv(t)
	_, err := e.posts.CreatePost(context.Background(), 0, postRequest("hi", false))
	assert.ErrorIs(t, err, myErrors.ErrUnauthenticated)

	_, err = e.posts.CreatePost(context.Background(), 999, postRequest("hi", false))
	assert.ErrorIs(t, err, myErrors.ErrUnauthenticated)
}

func TestPostService_CreateValidatesAndResolvesTaxonomies(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	author := e.user(t, "alice", true)

	tag, err := e.taxonomies.CreateTag(ctx, author.ID, &dto.TaxonomyRequest{Name: "go"})
	require.NoError(t, err)
	category, err := e.taxonomies.CreateCategory(ctx, author.ID, &dto.TaxonomyRequest{Name: "backend"})
	require.NoError(t, err)

	req := postRequest("Tagged", false)
	req.TagIDs = []uint64{tag.ID}
	req.CategoryIDs = []uint64{category.ID}
	post, err := e.posts.CreatePost(ctx, author.ID, req)
	require.NoError(t, err)
	require.Len(t, post.Tags, 1)
	assert.Equal(t, "go", post.Tags[0].Name)
	require.Len(t, post.Categories, 1)
	assert.Equal(t, author.ID, post.Author.ID)

	bad := postRequest("Unknown tag", false)
	bad.TagIDs = []uint64{tag.ID, 404}
	_, err = e.posts.CreatePost(ctx, author.ID, bad)
	assert.ErrorIs(t, err, myErrors.ErrValidation)

	blank := postRequest("   ", false)
	_, err = e.posts.CreatePost(ctx, author.ID, blank)
	assert.ErrorIs(t, err, myErrors.ErrValidation)
}

func TestPostService_PublishEventOnlyOnFirstPublication(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	owner := e.user(t, "bob", false)

	post, err := e.posts.CreatePost(ctx, owner.ID, postRequest("Draft", false))
	require.NoError(t, err)
	assert.Nil(t, post.PublishedAt)

	published, err := e.posts.ReplacePost(ctx, owner.ID, post.ID, postRequest("Draft", true))
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	firstStamp := *published.PublishedAt

	_, err = e.posts.ReplacePost(ctx, owner.ID, post.ID, postRequest("Draft", false))
	require.NoError(t, err)
	again, err := e.posts.ReplacePost(ctx, owner.ID, post.ID, postRequest("Draft", true))
	require.NoError(t, err)
	require.NotNil(t, again.PublishedAt)
	assert.True(t, firstStamp.Equal(*again.PublishedAt))

	e.waitEvents()
	require.Len(t, e.publisher.published, 1)
	assert.Equal(t, post.ID, e.publisher.published[0].PostID)
	assert.Equal(t, owner.ID, e.publisher.published[0].AuthorID)
}

func TestPostService_ReplaceAuthorization(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner", false)
	stranger := e.user(t, "stranger", false)
	editor := e.user(t, "editor", true)

	post, err := e.posts.CreatePost(ctx, owner.ID, postRequest("Mine", true))
	require.NoError(t, err)

	_, err = e.posts.ReplacePost(ctx, stranger.ID, post.ID, postRequest("Hijacked", true))
	assert.ErrorIs(t, err, myErrors.ErrForbidden)
	current, err := e.posts.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mine", current.Title)

	updated, err := e.posts.ReplacePost(ctx, editor.ID, post.ID, postRequest("Edited", true))
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Title)
	assert.Equal(t, owner.ID, updated.Author.ID)

	assert.ErrorIs(t, e.posts.DeletePost(ctx, stranger.ID, post.ID), myErrors.ErrForbidden)
	require.NoError(t, e.posts.DeletePost(ctx, owner.ID, post.ID))
	_, err = e.posts.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, myErrors.ErrRepoNotFound)

	e.waitEvents()
	assert.Equal(t, []uint64{post.ID}, e.publisher.deleted)
}

func TestPostService_ListFiltersAndCacheInvalidation(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	owner := e.user(t, "carol", false)

	_, err := e.posts.CreatePost(ctx, owner.ID, postRequest("Learning Go", true))
	require.NoError(t, err)
	_, err = e.posts.CreatePost(ctx, owner.ID, postRequest("Go drafts", false))
	require.NoError(t, err)

	published, err := e.posts.ListPosts(ctx, dto.ListPostsQuery{Published: boolPtr(true)})
	require.NoError(t, err)
	assert.EqualValues(t, 1, published.Total)
	assert.Equal(t, 1, published.Page)

	byTitle, err := e.posts.ListPosts(ctx, dto.ListPostsQuery{Title: "go"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, byTitle.Total)
	assert.NotEmpty(t, e.mr.Keys())

	// 新帖子让列表缓存失效
	_, err = e.posts.CreatePost(ctx, owner.ID, postRequest("More Go", true))
	require.NoError(t, err)
	byTitle, err = e.posts.ListPosts(ctx, dto.ListPostsQuery{Title: "go"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, byTitle.Total)
}

func TestPostService_GetFallsBackWhenCacheDown(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	owner := e.user(t, "dave", false)
	post, err := e.posts.CreatePost(ctx, owner.ID, postRequest("Resilient", true))
	require.NoError(t, err)

	e.mr.Close()
	got, err := e.posts.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Resilient", got.Title)
}

func TestPostService_LikesAndPopularRanking(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	owner := e.user(t, "erin", false)
	fans := []uint64{owner.ID, e.user(t, "fan1", false).ID, e.user(t, "fan2", false).ID}

	quiet, err := e.posts.CreatePost(ctx, owner.ID, postRequest("Quiet", true))
	require.NoError(t, err)
	loud, err := e.posts.CreatePost(ctx, owner.ID, postRequest("Loud", true))
	require.NoError(t, err)

	for _, id := range fans {
		_, err := e.posts.LikePost(ctx, id, loud.ID)
		require.NoError(t, err)
	}
	view, err := e.posts.LikePost(ctx, fans[0], loud.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, view.LikeCount)

	_, err = e.posts.LikePost(ctx, fans[1], quiet.ID)
	require.NoError(t, err)

	require.NoError(t, e.posts.RefreshPopularPosts(ctx, 10))
	popular, err := e.posts.PopularPosts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, loud.ID, popular[0].Post.ID)
	assert.EqualValues(t, 3, popular[0].LikeCount)
	assert.Equal(t, 1, popular[0].Rank)

	view, err = e.posts.UnlikePost(ctx, fans[0], loud.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, view.LikeCount)

	// 取消发布后立即移出榜单
	_, err = e.posts.ReplacePost(ctx, owner.ID, loud.ID, postRequest("Loud", false))
	require.NoError(t, err)
	popular, err = e.posts.PopularPosts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, popular, 1)
	assert.Equal(t, quiet.ID, popular[0].Post.ID)
	assert.Equal(t, 1, popular[0].Rank)
}

// countingLikeRepo 统计 likes 表写入次数
type countingLikeRepo struct {
	mysql.PostRepository
	adds, removes int
}

func (r *countingLikeRepo) AddLike(ctx context.Context, postID, userID uint64) error {
	r.adds++
	return r.PostRepository.AddLike(ctx, postID, userID)
}

func (r *countingLikeRepo) RemoveLike(ctx context.Context, postID, userID uint64) error {
	r.removes++
	return r.PostRepository.RemoveLike(ctx, postID, userID)
}

func TestPostService_LikeUnlikeKeepsBothSides(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	owner := e.user(t, "frank", false)
	fan := e.user(t, "gina", false)

	repo := &countingLikeRepo{PostRepository: e.postRepo}
	posts := NewPostService(e.db, repo, e.userRepo, e.tagRepo, e.categoryRepo, e.postCache, e.popular, nil, core.NewNopLogger())

	created, err := posts.CreatePost(ctx, owner.ID, postRequest("Likeable", true))
	require.NoError(t, err)

	assertLikes := func(wantCount int, wantLiked bool) {
		t.Helper()
		view, err := posts.GetPost(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, wantCount, view.LikeCount)

		liked, err := e.users.GetLikedPosts(ctx, fan.ID)
		require.NoError(t, err)
		if wantLiked {
			require.Len(t, liked, 1)
			assert.Equal(t, created.ID, liked[0].ID)
		} else {
			assert.Empty(t, liked)
		}
	}

	view, err := posts.LikePost(ctx, fan.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.LikeCount)
	assertLikes(1, true)

	// 重复点赞不改变拥有端集合，也不写库
	view, err = posts.LikePost(ctx, fan.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.LikeCount)
	assert.Equal(t, 1, repo.adds)
	assertLikes(1, true)

	view, err = posts.UnlikePost(ctx, fan.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, view.LikeCount)
	assertLikes(0, false)

	_, err = posts.UnlikePost(ctx, fan.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.removes)
}

func TestPostService_CreateLinksOwnerBothWays(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	owner := e.user(t, "hank", false)

	created, err := e.posts.CreatePost(ctx, owner.ID, postRequest("Mine", false))
	require.NoError(t, err)
	require.NotNil(t, created.Author)
	assert.Equal(t, owner.ID, created.Author.ID)
}
