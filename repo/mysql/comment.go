package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Xushengqwer/blog_service/core"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/myErrors"
)

// CommentRepository 评论持久化接口
type CommentRepository interface {
	// CreateComment 插入评论，所属帖子与评论者必须已存在。
	CreateComment(ctx context.Context, db *gorm.DB, comment *entities.Comment) error

	// GetCommentByID 预加载评论者与所属帖子。
	GetCommentByID(ctx context.Context, id uint64) (*entities.Comment, error)

	// ListComments postID 为 nil 时不过滤帖子，按 ID 升序分页。
	ListComments(ctx context.Context, postID *uint64, offset, limit int) ([]*entities.Comment, int64, error)

	// UpdateComment 更新内容与审核状态，创建时间不可修改。
	UpdateComment(ctx context.Context, db *gorm.DB, comment *entities.Comment) error

	// SetApproved 只修改审核状态，供审核事件消费者使用。
	SetApproved(ctx context.Context, id uint64, approved bool) error

	// DeleteComment 物理删除。
	DeleteComment(ctx context.Context, db *gorm.DB, id uint64) error
}

type commentRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

func NewCommentRepository(db *gorm.DB, logger *core.ZapLogger) CommentRepository {
	return &commentRepository{db: db, logger: logger}
}

func (r *commentRepository) CreateComment(ctx context.Context, db *gorm.DB, comment *entities.Comment) error {
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *commentRepository) GetCommentByID(ctx context.Context, id uint64) (*entities.Comment, error) {
	var comment entities.Comment
	if err := r.db.WithContext(ctx).Preload("User").Preload("Post").First(&comment, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &comment, nil
}

func (r *commentRepository) ListComments(ctx context.Context, postID *uint64, offset, limit int) ([]*entities.Comment, int64, error) {
	query := r.db.WithContext(ctx).Model(&entities.Comment{})
	if postID != nil {
		query = query.Where("post_id = ?", *postID)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var comments []*entities.Comment
	if err := query.Preload("User").Order("id ASC").Offset(offset).Limit(limit).Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) UpdateComment(ctx context.Context, db *gorm.DB, comment *entities.Comment) error {
	result := db.WithContext(ctx).Model(comment).Select("content", "approved").Updates(comment)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRepoNotFound
	}
	return nil
}

func (r *commentRepository) SetApproved(ctx context.Context, id uint64, approved bool) error {
	result := r.db.WithContext(ctx).Model(&entities.Comment{}).Where("id = ?", id).Update("approved", approved)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRepoNotFound
	}
	return nil
}

func (r *commentRepository) DeleteComment(ctx context.Context, db *gorm.DB, id uint64) error {
	result := db.WithContext(ctx).Delete(&entities.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRepoNotFound
	}
	return nil
}
