package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/core"
	"github.com/Xushengqwer/blog_service/models/events"
	"github.com/Xushengqwer/blog_service/myErrors"
)

// MessageHandler 处理一条 Kafka 消息。返回 nil 表示处理完成或消息无法处理需丢弃，
// 返回错误表示暂时失败，消费者会重试同一条消息且不提交偏移量。
type MessageHandler interface {
	Handle(ctx context.Context, msg kafka.Message) error
}

// CommentApprover 由 service.CommentService 实现
type CommentApprover interface {
	SetApproval(ctx context.Context, commentID uint64, approved bool) error
}

// LoginRecorder 由 service.UserService 实现
type LoginRecorder interface {
	RecordLogin(ctx context.Context, userID uint64, at time.Time) error
}

// CommentAuditHandler 审核结果回写。通过与拒绝分别订阅两个主题，approved 决定写入的状态。
type CommentAuditHandler struct {
	approved bool
	comments CommentApprover
	logger   *core.ZapLogger
}

func NewApprovedAuditHandler(comments CommentApprover, logger *core.ZapLogger) *CommentAuditHandler {
	return &CommentAuditHandler{approved: true, comments: comments, logger: logger}
}

func NewRejectedAuditHandler(comments CommentApprover, logger *core.ZapLogger) *CommentAuditHandler {
	return &CommentAuditHandler{approved: false, comments: comments, logger: logger}
}

func (h *CommentAuditHandler) Handle(ctx context.Context, msg kafka.Message) error {
	var event events.CommentAuditEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil || event.CommentID == 0 {
		// 无法解析的消息重试也不会成功，直接丢弃
		h.logger.Error("审核消息无法解析，已丢弃", zap.String("topic", msg.Topic), zap.ByteString("value", msg.Value), zap.Error(err))
		return nil
	}

	if err := h.comments.SetApproval(ctx, event.CommentID, h.approved); err != nil {
		if errors.Is(err, myErrors.ErrRepoNotFound) {
			h.logger.Warn("审核的评论不存在或已删除", zap.Uint64("commentID", event.CommentID))
			return nil
		}
		return fmt.Errorf("回写评论 %d 审核结果失败: %w", event.CommentID, err)
	}
	h.logger.Info("评论审核结果已回写",
		zap.String("eventID", event.EventID),
		zap.Uint64("commentID", event.CommentID),
		zap.Bool("approved", h.approved),
		zap.String("reason", event.Reason))
	return nil
}

// LoginEventHandler 记录外部登录事件中的登录时间
type LoginEventHandler struct {
	users  LoginRecorder
	logger *core.ZapLogger
}

func NewLoginEventHandler(users LoginRecorder, logger *core.ZapLogger) *LoginEventHandler {
	return &LoginEventHandler{users: users, logger: logger}
}

func (h *LoginEventHandler) Handle(ctx context.Context, msg kafka.Message) error {
	var event events.UserLoggedInEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil || event.UserID == 0 {
		h.logger.Error("登录消息无法解析，已丢弃", zap.String("topic", msg.Topic), zap.ByteString("value", msg.Value), zap.Error(err))
		return nil
	}
	at := event.LoginAt
	if at.IsZero() {
		at = event.Timestamp
	}
	if at.IsZero() {
		at = time.Now()
	}

	if err := h.users.RecordLogin(ctx, event.UserID, at); err != nil {
		if errors.Is(err, myErrors.ErrRepoNotFound) {
			h.logger.Warn("登录事件中的用户不存在", zap.Uint64("userID", event.UserID))
			return nil
		}
		return fmt.Errorf("记录用户 %d 登录时间失败: %w", event.UserID, err)
	}
	return nil
}
