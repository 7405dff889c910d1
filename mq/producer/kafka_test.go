package producer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/core"
	"github.com/Xushengqwer/blog_service/models/events"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func newTestProducer(w *recordingWriter) *KafkaProducer {
	return &KafkaProducer{
		writer: w,
		logger: core.NewNopLogger(),
		topics: config.Topics{PostPublished: "blog.post.published", PostDeleted: "blog.post.deleted", CommentCreated: "blog.comment.created"},
	}
}

func TestKafkaProducer_SendPostPublishedEvent(t *testing.T) {
	w := &recordingWriter{}
	p := newTestProducer(w)

	require.NoError(t, p.SendPostPublishedEvent(context.Background(), events.PostPublishedEvent{PostID: 42, Title: "hi"}))
	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "blog.post.published", msg.Topic)
	assert.Equal(t, "42", string(msg.Key))

	var got events.PostPublishedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.EqualValues(t, 42, got.PostID)
	assert.NotEmpty(t, got.EventID)
	assert.False(t, got.Timestamp.IsZero())
}

func TestKafkaProducer_RoutesByTopic(t *testing.T) {
	w := &recordingWriter{}
	p := newTestProducer(w)
	ctx := context.Background()

	require.NoError(t, p.SendPostDeletedEvent(ctx, 7))
	require.NoError(t, p.SendCommentCreatedEvent(ctx, events.CommentCreatedEvent{CommentID: 1, PostID: 7}))
	require.Len(t, w.msgs, 2)
	assert.Equal(t, "blog.post.deleted", w.msgs[0].Topic)
	assert.Equal(t, "blog.comment.created", w.msgs[1].Topic)
	assert.Equal(t, "7", string(w.msgs[1].Key))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaProducer_WriteError(t *testing.T) {
	boom := errors.New("broker down")
	p := newTestProducer(&recordingWriter{err: boom})
	assert.ErrorIs(t, p.SendPostDeletedEvent(context.Background(), 1), boom)
}
