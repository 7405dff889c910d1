package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appConfig "github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/core"
	"github.com/Xushengqwer/blog_service/models/events"
	"github.com/Xushengqwer/blog_service/myErrors"
)

type approvalCall struct {
	commentID uint64
	approved  bool
}

type fakeApprover struct {
	calls []approvalCall
	err   error
}

func (f *fakeApprover) SetApproval(_ context.Context, commentID uint64, approved bool) error {
	f.calls = append(f.calls, approvalCall{commentID, approved})
	return f.err
}

type fakeRecorder struct {
	userID uint64
	at     time.Time
	err    error
}

func (f *fakeRecorder) RecordLogin(_ context.Context, userID uint64, at time.Time) error {
	f.userID, f.at = userID, at
	return f.err
}

func message(t *testing.T, v any) kafka.Message {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return kafka.Message{Topic: "test", Value: raw}
}

func TestCommentAuditHandler_ApprovedAndRejected(t *testing.T) {
	approver := &fakeApprover{}
	logger := core.NewNopLogger()
	ctx := context.Background()

	require.NoError(t, NewApprovedAuditHandler(approver, logger).Handle(ctx, message(t, events.CommentAuditEvent{CommentID: 7})))
	require.NoError(t, NewRejectedAuditHandler(approver, logger).Handle(ctx, message(t, events.CommentAuditEvent{CommentID: 8, Reason: "spam"})))

	assert.Equal(t, []approvalCall{{7, true}, {8, false}}, approver.calls)
}

func TestCommentAuditHandler_DropsBadMessages(t *testing.T) {
	approver := &fakeApprover{}
	h := NewApprovedAuditHandler(approver, core.NewNopLogger())

	assert.NoError(t, h.Handle(context.Background(), kafka.Message{Value: []byte("{not json")}))
	assert.NoError(t, h.Handle(context.Background(), message(t, map[string]any{"reason": "missing id"})))
	assert.Empty(t, approver.calls)
}

func TestCommentAuditHandler_Errors(t *testing.T) {
	approver := &fakeApprover{err: myErrors.ErrRepoNotFound}
	h := NewApprovedAuditHandler(approver, core.NewNopLogger())
	assert.NoError(t, h.Handle(context.Background(), message(t, events.CommentAuditEvent{CommentID: 1})))

	approver.err = errors.New("db down")
	assert.Error(t, h.Handle(context.Background(), message(t, events.CommentAuditEvent{CommentID: 1})))
}

func TestLoginEventHandler(t *testing.T) {
	recorder := &fakeRecorder{}
	h := NewLoginEventHandler(recorder, core.NewNopLogger())
	loginAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, h.Handle(context.Background(), message(t, events.UserLoggedInEvent{UserID: 5, LoginAt: loginAt})))
	assert.EqualValues(t, 5, recorder.userID)
	assert.True(t, loginAt.Equal(recorder.at))

	stamp := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, h.Handle(context.Background(), message(t, events.UserLoggedInEvent{UserID: 6, Timestamp: stamp})))
	assert.True(t, stamp.Equal(recorder.at))

	recorder.userID = 0
	require.NoError(t, h.Handle(context.Background(), kafka.Message{Value: []byte("garbage")}))
	assert.Zero(t, recorder.userID)
}

// memoryReader 依次返回预置消息，取完后返回 io.EOF
type memoryReader struct {
	mu        sync.Mutex
	msgs      []kafka.Message
	committed []int64
	closed    bool
}

func (r *memoryReader) FetchMessage(context.Context) (kafka.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.msgs) == 0 {
		return kafka.Message{}, io.EOF
	}
	msg := r.msgs[0]
	r.msgs = r.msgs[1:]
	return msg, nil
}

func (r *memoryReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, msg := range msgs {
		r.committed = append(r.committed, msg.Offset)
	}
	return nil
}

func (r *memoryReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *memoryReader) commits() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.committed...)
}

// flakyApprover 前 failures 次调用返回错误
type flakyApprover struct {
	mu       sync.Mutex
	failures int
	calls    []uint64
}

func (f *flakyApprover) SetApproval(_ context.Context, commentID uint64, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, commentID)
	if f.failures > 0 {
		f.failures--
		return errors.New("db down")
	}
	return nil
}

func (f *flakyApprover) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func auditMessage(t *testing.T, commentID uint64, offset int64) kafka.Message {
	t.Helper()
	msg := message(t, events.CommentAuditEvent{CommentID: commentID})
	msg.Offset = offset
	return msg
}

func TestConsumer_RetriesFailedMessageBeforeCommit(t *testing.T) {
	approver := &flakyApprover{failures: 2}
	reader := &memoryReader{msgs: []kafka.Message{
		auditMessage(t, 1, 10),
		auditMessage(t, 2, 11),
		{Topic: "test", Value: []byte("{not json"), Offset: 12},
	}}
	c := newConsumer(reader, "audit", NewApprovedAuditHandler(approver, core.NewNopLogger()), core.NewNopLogger())
	c.backoff = time.Millisecond

	done := make(chan struct{})
	go func() {
		c.Start(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("消费循环没有在 EOF 后退出")
	}

	// 第一条失败两次后成功，之后才轮到第二条；无法解析的消息直接提交
	assert.Equal(t, []uint64{1, 1, 1, 2}, approver.calls)
	assert.Equal(t, []int64{10, 11, 12}, reader.commits())
	require.NoError(t, c.Close())
	assert.True(t, reader.closed)
}

func TestConsumer_StopWhileFailingLeavesOffsetUncommitted(t *testing.T) {
	approver := &flakyApprover{failures: 1 << 30}
	reader := &memoryReader{msgs: []kafka.Message{auditMessage(t, 1, 10)}}
	c := newConsumer(reader, "audit", NewApprovedAuditHandler(approver, core.NewNopLogger()), core.NewNopLogger())
	c.backoff = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return approver.callCount() >= 2 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("取消后消费循环没有退出")
	}

	assert.Empty(t, reader.commits())
}

func TestNewConsumer_RequiresTopicAndBrokers(t *testing.T) {
	_, err := NewConsumer(&appConfig.KafkaConfig{Brokers: []string{"localhost:9092"}}, "g", "", nil, core.NewNopLogger())
	assert.Error(t, err)
	_, err = NewConsumer(&appConfig.KafkaConfig{}, "g", "comment-audit-approved", nil, core.NewNopLogger())
	assert.Error(t, err)
}
