package consumer

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	appConfig "github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/core"
)

const (
	handleTimeout = 30 * time.Second
	retryBackoff  = time.Second
	maxBackoff    = 30 * time.Second
)

// messageReader 是 kafka.Reader 的最小子集，测试中用内存实现替换
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer 单个主题的消费循环
type Consumer struct {
	reader  messageReader
	handler MessageHandler
	logger  *core.ZapLogger
	topic   string
	backoff time.Duration
}

// NewConsumer 为 topicName 创建消费者，同一 groupID 的多个实例分摊分区
func NewConsumer(cfg *appConfig.KafkaConfig, groupID string, topicName string, handler MessageHandler, logger *core.ZapLogger) (*Consumer, error) {
	if topicName == "" {
		return nil, errors.New("kafka topic 名称不能为空")
	}
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka brokers 配置不能为空")
	}

	logger.Info("初始化 Kafka 消费者",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", topicName),
		zap.String("group_id", groupID))

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    topicName,
		GroupID:  groupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
		MaxWait:  3 * time.Second,
	})
	return newConsumer(reader, topicName, handler, logger), nil
}

func newConsumer(reader messageReader, topic string, handler MessageHandler, logger *core.ZapLogger) *Consumer {
	return &Consumer{reader: reader, handler: handler, logger: logger, topic: topic, backoff: retryBackoff}
}

// Start 阻塞读取消息直到 ctx 取消或 Reader 关闭。
// 偏移量只在处理器返回 nil 后提交；处理失败时按退避重试同一条消息，
// 期间退出则不提交，重启后重新投递。
func (c *Consumer) Start(ctx context.Context) {
	c.logger.Info("Kafka 消费者已启动", zap.String("topic", c.topic))
	defer c.logger.Info("Kafka 消费者已停止", zap.String("topic", c.topic))

	for {
		if ctx.Err() != nil {
			return
		}

		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if isReaderClosed(err) {
				c.logger.Warn("消费者读取循环退出", zap.String("topic", c.topic), zap.Error(err))
				return
			}
			c.logger.Error("读取 Kafka 消息失败", zap.String("topic", c.topic), zap.Error(err))
			if !c.sleep(ctx, c.backoff) {
				return
			}
			continue
		}

		if !c.handleUntilDone(ctx, msg) {
			return
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if isReaderClosed(err) {
				return
			}
			// 提交失败的消息会被重新投递，处理器需要幂等
			c.logger.Error("提交 Kafka 偏移量失败",
				zap.Error(err),
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset))
		}
	}
}

// handleUntilDone 重复处理 msg 直到成功，ctx 取消时返回 false
func (c *Consumer) handleUntilDone(ctx context.Context, msg kafka.Message) bool {
	backoff := c.backoff
	for attempt := 1; ; attempt++ {
		handleCtx, cancel := context.WithTimeout(ctx, handleTimeout)
		err := c.handler.Handle(handleCtx, msg)
		cancel()
		if err == nil {
			return true
		}

		c.logger.Error("处理 Kafka 消息时发生错误，稍后重试",
			zap.Error(err),
			zap.String("topic", msg.Topic),
			zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempt))
		if !c.sleep(ctx, backoff) {
			return false
		}
		backoff = min(backoff*2, maxBackoff)
	}
}

func (c *Consumer) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

func isReaderClosed(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed)
}

func (c *Consumer) Close() error {
	if err := c.reader.Close(); err != nil {
		c.logger.Error("关闭 Kafka Reader 失败", zap.Error(err), zap.String("topic", c.topic))
		return err
	}
	c.logger.Info("Kafka 消费者已关闭", zap.String("topic", c.topic))
	return nil
}
