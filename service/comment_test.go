package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/myErrors"
)

func TestCommentService_CreateAndModerate(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner", false)
	reader := e.user(t, "reader", false)
	post, err := e.posts.CreatePost(ctx, owner.ID, postRequest("Open", true))
	require.NoError(t, err)

	comment, err := e.comments.CreateComment(ctx, reader.ID, &dto.CreateCommentRequest{PostID: post.ID, Content: "first!"})
	require.NoError(t, err)
	assert.False(t, comment.Approved)
	assert.Equal(t, reader.ID, comment.Author.ID)

	e.waitEvents()
	require.Len(t, e.publisher.comments, 1)
	assert.Equal(t, comment.ID, e.publisher.comments[0].CommentID)
	assert.Equal(t, post.ID, e.publisher.comments[0].PostID)

	require.NoError(t, e.comments.SetApproval(ctx, comment.ID, true))
	detail, err := e.posts.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, detail.Comments, 1)
	assert.True(t, detail.Comments[0].Approved)
}

func TestCommentService_CommentsClosed(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner", false)
	req := postRequest("Closed", true)
	req.CommentsActive = boolPtr(false)
	post, err := e.posts.CreatePost(ctx, owner.ID, req)
	require.NoError(t, err)

	_, err = e.comments.CreateComment(ctx, owner.ID, &dto.CreateCommentRequest{PostID: post.ID, Content: "hello"})
	assert.ErrorIs(t, err, myErrors.ErrCommentsClosed)

	_, err = e.comments.CreateComment(ctx, owner.ID, &dto.CreateCommentRequest{PostID: 404, Content: "hello"})
	assert.ErrorIs(t, err, myErrors.ErrRepoNotFound)
}

func TestCommentService_ReplaceAndDeletePolicy(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	postOwner := e.user(t, "postowner", false)
	commenter := e.user(t, "commenter", false)
	stranger := e.user(t, "stranger", false)
	moderator := e.user(t, "moderator", true)

	post, err := e.posts.CreatePost(ctx, postOwner.ID, postRequest("Discuss", true))
	require.NoError(t, err)
	comment, err := e.comments.CreateComment(ctx, commenter.ID, &dto.CreateCommentRequest{PostID: post.ID, Content: "hmm"})
	require.NoError(t, err)

	_, err = e.comments.ReplaceComment(ctx, stranger.ID, comment.ID, &dto.ReplaceCommentRequest{Content: "spam"})
	assert.ErrorIs(t, err, myErrors.ErrForbidden)

	// 评论者可以改内容，但不能自己审核通过
	_, err = e.comments.ReplaceComment(ctx, commenter.ID, comment.ID, &dto.ReplaceCommentRequest{Content: "edited", Approved: boolPtr(true)})
	assert.ErrorIs(t, err, myErrors.ErrForbidden)
	edited, err := e.comments.ReplaceComment(ctx, commenter.ID, comment.ID, &dto.ReplaceCommentRequest{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", edited.Content)

	approved, err := e.comments.ReplaceComment(ctx, moderator.ID, comment.ID, &dto.ReplaceCommentRequest{Content: "edited", Approved: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, approved.Approved)

	assert.ErrorIs(t, e.comments.DeleteComment(ctx, stranger.ID, comment.ID), myErrors.ErrForbidden)
	require.NoError(t, e.comments.DeleteComment(ctx, postOwner.ID, comment.ID))
	_, err = e.comments.GetComment(ctx, comment.ID)
	assert.ErrorIs(t, err, myErrors.ErrRepoNotFound)
}

func TestCommentService_ListByPost(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner", false)
	a, err := e.posts.CreatePost(ctx, owner.ID, postRequest("A", true))
	require.NoError(t, err)
	b, err := e.posts.CreatePost(ctx, owner.ID, postRequest("B", true))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := e.comments.CreateComment(ctx, owner.ID, &dto.CreateCommentRequest{PostID: a.ID, Content: "on a"})
		require.NoError(t, err)
	}
	_, err = e.comments.CreateComment(ctx, owner.ID, &dto.CreateCommentRequest{PostID: b.ID, Content: "on b"})
	require.NoError(t, err)

	list, err := e.comments.ListComments(ctx, dto.ListCommentsQuery{PostID: &a.ID, PageQuery: dto.PageQuery{PageSize: 2}})
	require.NoError(t, err)
	assert.EqualValues(t, 3, list.Total)
	assert.Len(t, list.Comments, 2)

	all, err := e.comments.ListComments(ctx, dto.ListCommentsQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, all.Total)
}
