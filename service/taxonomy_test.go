package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/myErrors"
)

func TestTaxonomyService_WritesRequireAuthor(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	reader := e.user(t, "reader", false)

	_, err := e.taxonomies.CreateTag(ctx, reader.ID, &dto.TaxonomyRequest{Name: "go"})
	assert.ErrorIs(t, err, myErrors.ErrForbidden)
	_, err = e.taxonomies.CreateCategory(ctx, 0, &dto.TaxonomyRequest{Name: "news"})
	assert.ErrorIs(t, err, myErrors.ErrUnauthenticated)
}

func TestTaxonomyService_ListIsCachedAndInvalidated(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	author := e.user(t, "author", true)

	_, err := e.taxonomies.CreateTag(ctx, author.ID, &dto.TaxonomyRequest{Name: "rust"})
	require.NoError(t, err)
	tags, err := e.taxonomies.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.True(t, e.mr.Exists(constant.TagListCacheKey))

	created, err := e.taxonomies.CreateTag(ctx, author.ID, &dto.TaxonomyRequest{Name: "  go  "})
	require.NoError(t, err)
	assert.Equal(t, "go", created.Name)
	assert.False(t, e.mr.Exists(constant.TagListCacheKey))

	tags, err = e.taxonomies.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "go", tags[0].Name)

	_, err = e.taxonomies.CreateTag(ctx, author.ID, &dto.TaxonomyRequest{Name: "   "})
	assert.ErrorIs(t, err, myErrors.ErrValidation)
}

func TestTaxonomyService_ReplaceAndDeleteRefreshPosts(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	author := e.user(t, "author", true)

	category, err := e.taxonomies.CreateCategory(ctx, author.ID, &dto.TaxonomyRequest{Name: "misc"})
	require.NoError(t, err)
	req := postRequest("Categorised", true)
	req.CategoryIDs = []uint64{category.ID}
	post, err := e.posts.CreatePost(ctx, author.ID, req)
	require.NoError(t, err)

	renamed, err := e.taxonomies.ReplaceCategory(ctx, author.ID, category.ID, &dto.TaxonomyRequest{Name: "engineering"})
	require.NoError(t, err)
	assert.Equal(t, "engineering", renamed.Name)

	detail, err := e.posts.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, detail.Categories, 1)
	assert.Equal(t, "engineering", detail.Categories[0].Name)

	require.NoError(t, e.taxonomies.DeleteCategory(ctx, author.ID, category.ID))
	detail, err = e.posts.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Categories)

	_, err = e.taxonomies.GetCategory(ctx, category.ID)
	assert.ErrorIs(t, err, myErrors.ErrRepoNotFound)
}
