// Package events 定义博客服务在 Kafka 上收发的事件结构。
package events

import "time"

// PostPublishedEvent 帖子首次发布
type PostPublishedEvent struct {
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	PostID      uint64    `json:"post_id"`
	AuthorID    uint64    `json:"author_id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	PublishedAt time.Time `json:"published_at"`
}

// PostDeletedEvent 帖子被删除
type PostDeletedEvent struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	PostID    uint64    `json:"post_id"`
}

// CommentCreatedEvent 新评论，审核服务据此发出审核结果
type CommentCreatedEvent struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	CommentID uint64    `json:"comment_id"`
	PostID    uint64    `json:"post_id"`
	UserID    uint64    `json:"user_id"`
	Content   string    `json:"content"`
}

// CommentAuditEvent 审核服务的结果 (通过/拒绝分别在两个主题上)
type CommentAuditEvent struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	CommentID uint64    `json:"comment_id"`
	Reason    string    `json:"reason,omitempty"`
}

// UserLoggedInEvent 外部登录事件，例如网关完成 SSO 登录后发出
type UserLoggedInEvent struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	UserID    uint64    `json:"user_id"`
	LoginAt   time.Time `json:"login_at"`
}
