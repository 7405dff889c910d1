package entities

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freezeClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func TestPost_GetSummary(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"empty", "", ""},
		{"short", "hello", "hello"},
		{"exactly 40", strings.Repeat("a", 40), strings.Repeat("a", 40)},
		{"41 chars", strings.Repeat("a", 41), strings.Repeat("a", 40) + "..."},
		{"long", strings.Repeat("abcdefghij", 10), strings.Repeat("abcdefghij", 4) + "..."},
		{"multibyte kept whole", strings.Repeat("博客", 21), strings.Repeat("博客", 20) + "..."},
		{"multibyte 40 runes", strings.Repeat("文", 40), strings.Repeat("文", 40)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPost()
			p.Content = tc.content
			assert.Equal(t, tc.want, p.GetSummary())
		})
	}
}

func TestPost_GetSummaryTracksContent(t *testing.T) {
	p := NewPost()
	p.Content = strings.Repeat("x", 50)
	first := p.GetSummary()
	p.Content = "changed"
	assert.NotEqual(t, first, p.GetSummary())
	assert.Equal(t, "changed", p.GetSummary())
}

func TestPost_SetPublished(t *testing.T) {
	t1 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	freezeClock(t, t1)

	p := NewPost()
	assert.Nil(t, p.PublishedAt)

	assert.True(t, p.SetPublished(true))
	require.NotNil(t, p.PublishedAt)
	assert.Equal(t, t1, *p.PublishedAt)
	assert.True(t, p.Published)

	// true -> true 不会改变时间
	freezeClock(t, t1.Add(time.Hour))
	assert.False(t, p.SetPublished(true))
	assert.Equal(t, t1, *p.PublishedAt)

	// 取消发布保留首次发布时间
	assert.False(t, p.SetPublished(false))
	assert.False(t, p.Published)
	require.NotNil(t, p.PublishedAt)
	assert.Equal(t, t1, *p.PublishedAt)

	// 再次发布同样保留
	assert.False(t, p.SetPublished(true))
	assert.True(t, p.Published)
	assert.Equal(t, t1, *p.PublishedAt)
}

func TestPost_SetPublishedFalseOnNewPost(t *testing.T) {
	p := NewPost()
	assert.False(t, p.SetPublished(false))
	assert.Nil(t, p.PublishedAt)
}

func TestPost_AddCommentIsIdempotent(t *testing.T) {
	p := NewPost()
	c := NewComment()

	p.AddComment(c)
	p.AddComment(c)

	assert.Len(t, p.Comments, 1)
	assert.Same(t, p, c.Post)
}

func TestPost_AddCommentMatchesPersistedIdentity(t *testing.T) {
	p := NewPost()
	a := NewComment()
	a.ID = 7
	b := NewComment()
	b.ID = 7

	p.AddComment(a)
	p.AddComment(b)
	assert.Len(t, p.Comments, 1)
}

func TestPost_RemoveCommentClearsBackReference(t *testing.T) {
	p := NewPost()
	p.ID = 1
	c := NewComment()
	p.AddComment(c)
	require.Equal(t, uint64(1), c.PostID)

	p.RemoveComment(c)
	assert.Empty(t, p.Comments)
	assert.Nil(t, c.Post)
	assert.Zero(t, c.PostID)
}

func TestPost_RemoveCommentLeavesReassignedComment(t *testing.T) {
	p := NewPost()
	other := NewPost()
	c := NewComment()

	p.AddComment(c)
	c.SetPost(other) // 评论已被改挂到其他帖子

	p.RemoveComment(c)
	assert.Empty(t, p.Comments)
	assert.Same(t, other, c.Post)
}

func TestPost_RemoveAbsentCommentIsNoop(t *testing.T) {
	p := NewPost()
	c := NewComment()
	other := NewPost()
	other.AddComment(c)

	p.RemoveComment(c)
	assert.Same(t, other, c.Post)
}

func TestPost_LikesStaySymmetric(t *testing.T) {
	p := NewPost()
	u := NewUser()

	p.AddLike(u)
	p.AddLike(u)
	assert.Len(t, p.Likes, 1)
	assert.Len(t, u.LikedPosts, 1)
	assert.True(t, p.HasLike(u))
	assert.True(t, u.LikesPost(p))

	p.RemoveLike(u)
	assert.Empty(t, p.Likes)
	assert.Empty(t, u.LikedPosts)
}

func TestPost_TagsAndCategories(t *testing.T) {
	p := NewPost()
	tag := NewTag("go")
	cat := NewCategory("backend")

	p.AddTag(tag)
	p.AddTag(tag)
	p.AddCategory(cat)
	p.AddCategory(cat)
	assert.Len(t, p.Tags, 1)
	assert.Len(t, p.Categories, 1)

	p.RemoveTag(tag)
	p.RemoveCategory(cat)
	assert.Empty(t, p.Tags)
	assert.Empty(t, p.Categories)
}

func TestPost_Validate(t *testing.T) {
	p := NewPost()
	p.Title = "   "
	p.Content = ""
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Title")
	assert.Contains(t, err.Error(), "Content")
	assert.Contains(t, err.Error(), "UserID")

	p.Title = "Hello"
	p.Content = "World"
	p.SetUser(&User{BaseModel: BaseModel{ID: 3}})
	assert.NoError(t, p.Validate())
}
