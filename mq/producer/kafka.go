package producer

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/core"
	"github.com/Xushengqwer/blog_service/models/events"
)

// messageWriter kafka.Writer 中生产者用到的部分，测试时替换
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaProducer Kafka 消息生产者
type KafkaProducer struct {
	writer messageWriter
	logger *core.ZapLogger
	topics config.Topics
}

// NewKafkaProducer 创建一个新的 Kafka 生产者实例
func NewKafkaProducer(cfg config.KafkaConfig, logger *core.ZapLogger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaProducer{
		writer: writer,
		logger: logger,
		topics: cfg.Topics,
	}
}

// SendEvent 序列化事件并写入指定主题，key 用于分区 (同一帖子的事件落在同一分区)
func (p *KafkaProducer) SendEvent(ctx context.Context, topic string, key string, event interface{}) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event", zap.Error(err), zap.String("topic", topic))
		return err
	}

	p.logger.Debug("Sending Kafka message",
		zap.String("topic", topic),
		zap.ByteString("payload", eventBytes))

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: eventBytes,
	})
	if err != nil {
		p.logger.Error("Failed to write Kafka message", zap.Error(err), zap.String("topic", topic))
	} else {
		p.logger.Info("Successfully sent Kafka message", zap.String("topic", topic))
	}
	return err
}

// SendPostPublishedEvent 帖子首次发布
func (p *KafkaProducer) SendPostPublishedEvent(ctx context.Context, event events.PostPublishedEvent) error {
	fillEnvelope(&event.EventID, &event.Timestamp)
	return p.SendEvent(ctx, p.topics.PostPublished, formatKey(event.PostID), event)
}

// SendPostDeletedEvent 帖子删除
func (p *KafkaProducer) SendPostDeletedEvent(ctx context.Context, postID uint64) error {
	event := events.PostDeletedEvent{PostID: postID}
	fillEnvelope(&event.EventID, &event.Timestamp)
	return p.SendEvent(ctx, p.topics.PostDeleted, formatKey(postID), event)
}

// SendCommentCreatedEvent 新评论待审核
func (p *KafkaProducer) SendCommentCreatedEvent(ctx context.Context, event events.CommentCreatedEvent) error {
	fillEnvelope(&event.EventID, &event.Timestamp)
	return p.SendEvent(ctx, p.topics.CommentCreated, formatKey(event.PostID), event)
}

// Close 关闭底层 writer，刷出缓冲中的消息
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

func fillEnvelope(eventID *string, ts *time.Time) {
	if *eventID == "" {
		*eventID = uuid.New().String()
	}
	if ts.IsZero() {
		*ts = time.Now()
	}
}

func formatKey(id uint64) string {
	return strconv.FormatUint(id, 10)
}
