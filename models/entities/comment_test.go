package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewComment_StampsCreatedAt(t *testing.T) {
	at := time.Date(2025, 3, 3, 3, 3, 3, 0, time.UTC)
	freezeClock(t, at)

	c := NewComment()
	assert.Equal(t, at, c.CreatedAt)
	assert.False(t, c.Approved)
	assert.Nil(t, c.Post)
	assert.Nil(t, c.User)
}

func TestComment_ValidateRequiresPostAndUser(t *testing.T) {
	c := NewComment()
	c.Content = "nice"
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PostID")
	assert.Contains(t, err.Error(), "UserID")

	c.SetPost(&Post{BaseModel: BaseModel{ID: 1}})
	c.SetUser(&User{BaseModel: BaseModel{ID: 2}})
	assert.NoError(t, c.Validate())

	c.Content = " \n\t"
	assert.ErrorContains(t, c.Validate(), "Content")
}

func TestTaxonomy_Validate(t *testing.T) {
	assert.Error(t, NewTag("  ").Validate())
	assert.NoError(t, NewTag(" go ").Validate())
	assert.Equal(t, "go", NewTag(" go ").Name)

	assert.Error(t, NewCategory("").Validate())
	assert.NoError(t, NewCategory("news").Validate())
}

func TestComment_ApproveReject(t *testing.T) {
	c := NewComment()
	c.Approve()
	assert.True(t, c.Approved)
	c.Reject()
	assert.False(t, c.Approved)
}
