package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/core"
	"github.com/Xushengqwer/blog_service/models/events"
)

// EventPublisher 领域事件的发送端，由 producer.KafkaProducer 实现
type EventPublisher interface {
	SendPostPublishedEvent(ctx context.Context, event events.PostPublishedEvent) error
	SendPostDeletedEvent(ctx context.Context, postID uint64) error
	SendCommentCreatedEvent(ctx context.Context, event events.CommentCreatedEvent) error
}

const eventSendTimeout = 10 * time.Second

// eventDispatcher 在后台 goroutine 中发送事件，发送失败只记录日志，不影响已提交的业务操作。
// publisher 为 nil (未配置 Kafka) 时直接忽略。
type eventDispatcher struct {
	publisher EventPublisher
	logger    *core.ZapLogger
	wg        sync.WaitGroup
}

func newEventDispatcher(publisher EventPublisher, logger *core.ZapLogger) *eventDispatcher {
	return &eventDispatcher{publisher: publisher, logger: logger}
}

func (d *eventDispatcher) dispatch(name string, send func(ctx context.Context, p EventPublisher) error) {
	if d == nil || d.publisher == nil {
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), eventSendTimeout)
		defer cancel()
		if err := send(ctx, d.publisher); err != nil {
			d.logger.Error("发送领域事件失败", zap.String("event", name), zap.Error(err))
		}
	}()
}

// wait 等待已派发的事件发送完成
func (d *eventDispatcher) wait() {
	if d != nil {
		d.wg.Wait()
	}
}

// drain 在 ctx 到期前等待在途事件发送完成，超时返回 ctx.Err()。
// 关停时必须先于 Kafka 生产者 Close 调用。
func (d *eventDispatcher) drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
