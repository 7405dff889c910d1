package mysql

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Xushengqwer/blog_service/core"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/myErrors"
)

// UserRepository 定义了用户数据在 MySQL 中的持久化操作。
type UserRepository interface {
	// CreateUser 插入新用户，email / username 冲突时返回 myErrors.ErrDuplicateEntry。
	CreateUser(ctx context.Context, db *gorm.DB, user *entities.User) error

	// GetUserByID 根据主键查询，不存在时返回 myErrors.ErrRepoNotFound。
	GetUserByID(ctx context.Context, id uint64) (*entities.User, error)

	// GetUserByLogin 按用户名或邮箱查询，用于登录。
	GetUserByLogin(ctx context.Context, login string) (*entities.User, error)

	// ListUsers 按 ID 升序分页，返回当前页和总数。
	ListUsers(ctx context.Context, offset, limit int) ([]*entities.User, int64, error)

	// UpdateUser 按实体整体更新可写字段 (不含 registered_at / created_at，也不触碰关联)。
	UpdateUser(ctx context.Context, db *gorm.DB, user *entities.User) error

	// TouchLastLogin 记录最近登录时间。
	TouchLastLogin(ctx context.Context, id uint64, at time.Time) error

	// UpdateAvatar 更新头像地址。
	UpdateAvatar(ctx context.Context, id uint64, avatarURL string) error

	// GetLikedPosts 查询用户点赞过的帖子 (预加载作者)。
	GetLikedPosts(ctx context.Context, userID uint64) ([]*entities.Post, error)

	// DeleteUser 物理删除用户。
	// - 必须在事务中调用：会先删除该用户的点赞、评论，以及其名下帖子 (连同这些帖子的评论与关联行)。
	DeleteUser(ctx context.Context, db *gorm.DB, id uint64) error
}

type userRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewUserRepository 构造函数
func NewUserRepository(db *gorm.DB, logger *core.ZapLogger) UserRepository {
	return &userRepository{db: db, logger: logger}
}

func (r *userRepository) CreateUser(ctx context.Context, db *gorm.DB, user *entities.User) error {
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(user).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *userRepository) GetUserByLogin(ctx context.Context, login string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", login, login).
		First(&user).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *userRepository) ListUsers(ctx context.Context, offset, limit int) ([]*entities.User, int64, error) {
	var (
		users []*entities.User
		total int64
	)
	query := r.db.WithContext(ctx).Model(&entities.User{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("id ASC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, db *gorm.DB, user *entities.User) error {
	result := db.WithContext(ctx).Model(user).
		Select("email", "username", "first_name", "last_name", "password", "avatar_url", "verified", "is_author", "extra_roles", "last_login_at").
		Updates(user)
	if result.Error != nil {
		r.logger.Error("更新用户失败", zap.Uint64("userID", user.ID), zap.Error(result.Error))
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRepoNotFound
	}
	return nil
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id uint64, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", id).Update("last_login_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRepoNotFound
	}
	return nil
}

func (r *userRepository) UpdateAvatar(ctx context.Context, id uint64, avatarURL string) error {
	result := r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", id).Update("avatar_url", avatarURL)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRepoNotFound
	}
	return nil
}

func (r *userRepository) GetLikedPosts(ctx context.Context, userID uint64) ([]*entities.Post, error) {
	var posts []*entities.Post
	err := r.db.WithContext(ctx).
		Joins("JOIN "+likesTable+" ON "+likesTable+".post_id = posts.id").
		Where(likesTable+".user_id = ?", userID).
		Preload("User").
		Order("posts.id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *userRepository) DeleteUser(ctx context.Context, db *gorm.DB, id uint64) error {
	tx := db.WithContext(ctx)

	// 1. 用户名下的帖子连同其评论、点赞与标签/分类关联
	var postIDs []uint64
	if err := tx.Model(&entities.Post{}).Where("user_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
		return err
	}
	if err := deletePostsCascade(tx, postIDs); err != nil {
		return err
	}

	// 2. 用户在其他帖子上的点赞与评论
	if err := tx.Exec("DELETE FROM "+likesTable+" WHERE user_id = ?", id).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", id).Delete(&entities.Comment{}).Error; err != nil {
		return err
	}

	// 3. 用户本身
	result := tx.Delete(&entities.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRepoNotFound
	}
	r.logger.Info("用户及其关联数据已删除", zap.Uint64("userID", id), zap.Int("postCount", len(postIDs)))
	return nil
}
