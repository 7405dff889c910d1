package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/core"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/events"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/repo/redis"
)

// CommentService 评论的发布、修改、删除与审核
type CommentService interface {
	// CreateComment 当前用户对帖子发表评论。帖子关闭评论时返回 myErrors.ErrCommentsClosed。
	// 新评论处于未审核状态，创建后发送 commentCreated 事件。
	CreateComment(ctx context.Context, actorID uint64, req *dto.CreateCommentRequest) (*vo.CommentVO, error)
	GetComment(ctx context.Context, commentID uint64) (*vo.CommentVO, error)
	ListComments(ctx context.Context, query dto.ListCommentsQuery) (*vo.CommentListVO, error)
	// ReplaceComment 修改内容需要作者角色或评论者本人，修改审核状态只有作者可以。
	ReplaceComment(ctx context.Context, actorID, commentID uint64, req *dto.ReplaceCommentRequest) (*vo.CommentVO, error)
	// DeleteComment 作者、评论者本人或帖子所有者可以删除。
	DeleteComment(ctx context.Context, actorID, commentID uint64) error
	// SetApproval 审核结果回写，由审核事件消费者调用，不做权限检查。
	SetApproval(ctx context.Context, commentID uint64, approved bool) error
	// DrainEvents 等待在途的 commentCreated 事件发送完成
	DrainEvents(ctx context.Context) error
}

type commentService struct {
	db          *gorm.DB
	commentRepo mysql.CommentRepository
	postRepo    mysql.PostRepository
	userRepo    mysql.UserRepository
	postCache   redis.PostCache
	events      *eventDispatcher
	logger      *core.ZapLogger
}

func NewCommentService(
	db *gorm.DB,
	commentRepo mysql.CommentRepository,
	postRepo mysql.PostRepository,
	userRepo mysql.UserRepository,
	postCache redis.PostCache,
	publisher EventPublisher,
	logger *core.ZapLogger,
) CommentService {
	return &commentService{
		db:          db,
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		postCache:   postCache,
		events:      newEventDispatcher(publisher, logger),
		logger:      logger,
	}
}

func (s *commentService) CreateComment(ctx context.Context, actorID uint64, req *dto.CreateCommentRequest) (*vo.CommentVO, error) {
	actor, err := loadActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetPostByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}
	if !post.CommentsActive {
		return nil, myErrors.ErrCommentsClosed
	}

	comment := entities.NewComment()
	comment.Content = req.Content
	actor.AddComment(comment)
	post.AddComment(comment)
	if err := comment.Validate(); err != nil {
		return nil, validationError(err)
	}

	if err := s.commentRepo.CreateComment(ctx, s.db, comment); err != nil {
		s.logger.Error("创建评论失败", zap.Uint64("postID", post.ID), zap.Uint64("userID", actor.ID), zap.Error(err))
		return nil, fmt.Errorf("创建评论失败: %w", err)
	}
	s.invalidatePost(ctx, post.ID)

	event := events.CommentCreatedEvent{
		CommentID: comment.ID,
		PostID:    post.ID,
		UserID:    actor.ID,
		Content:   comment.Content,
	}
	s.events.dispatch("commentCreated", func(ctx context.Context, p EventPublisher) error {
		return p.SendCommentCreatedEvent(ctx, event)
	})
	return vo.NewCommentVO(comment), nil
}

func (s *commentService) GetComment(ctx context.Context, commentID uint64) (*vo.CommentVO, error) {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return vo.NewCommentVO(comment), nil
}

func (s *commentService) ListComments(ctx context.Context, query dto.ListCommentsQuery) (*vo.CommentListVO, error) {
	offset, limit := query.Normalize()
	comments, total, err := s.commentRepo.ListComments(ctx, query.PostID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("查询评论列表失败: %w", err)
	}
	views := make([]*vo.CommentVO, 0, len(comments))
	for _, c := range comments {
		views = append(views, vo.NewCommentVO(c))
	}
	return &vo.CommentListVO{Comments: views, Total: total, Page: query.Page, PageSize: query.PageSize}, nil
}

func (s *commentService) ReplaceComment(ctx context.Context, actorID, commentID uint64, req *dto.ReplaceCommentRequest) (*vo.CommentVO, error) {
	actor, err := loadActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if !canEditComment(actor, comment) {
		return nil, myErrors.ErrForbidden
	}
	if req.Approved != nil && *req.Approved != comment.Approved {
		if !isAuthor(actor) {
			return nil, fmt.Errorf("只有作者可以修改审核状态: %w", myErrors.ErrForbidden)
		}
		if *req.Approved {
			comment.Approve()
		} else {
			comment.Reject()
		}
	}
	comment.Content = req.Content
	if err := comment.Validate(); err != nil {
		return nil, validationError(err)
	}

	if err := s.commentRepo.UpdateComment(ctx, s.db, comment); err != nil {
		return nil, err
	}
	s.invalidatePost(ctx, comment.PostID)
	return vo.NewCommentVO(comment), nil
}

func (s *commentService) DeleteComment(ctx context.Context, actorID, commentID uint64) error {
	actor, err := loadActor(ctx, s.userRepo, actorID)
	if err != nil {
		return err
	}
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if !canDeleteComment(actor, comment, comment.Post) {
		return myErrors.ErrForbidden
	}
	if err := s.commentRepo.DeleteComment(ctx, s.db, commentID); err != nil {
		return err
	}
	s.invalidatePost(ctx, comment.PostID)
	s.logger.Info("评论已删除", zap.Uint64("commentID", commentID), zap.Uint64("actorID", actorID))
	return nil
}

func (s *commentService) SetApproval(ctx context.Context, commentID uint64, approved bool) error {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if err := s.commentRepo.SetApproved(ctx, commentID, approved); err != nil {
		return err
	}
	s.invalidatePost(ctx, comment.PostID)
	s.logger.Info("评论审核状态已更新", zap.Uint64("commentID", commentID), zap.Bool("approved", approved))
	return nil
}

// invalidatePost 评论嵌在帖子详情中，评论变化只影响所属帖子的详情缓存
func (s *commentService) invalidatePost(ctx context.Context, postID uint64) {
	if err := s.postCache.DeletePostDetail(ctx, postID); err != nil {
		s.logger.Warn("删除帖子详情缓存失败", zap.Uint64("postID", postID), zap.Error(err))
	}
}

func (s *commentService) DrainEvents(ctx context.Context) error {
	return s.events.drain(ctx)
}
