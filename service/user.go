package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/core"
	"github.com/Xushengqwer/blog_service/dependencies"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/repo/redis"
)

// UserService 用户注册、资料维护与头像管理
type UserService interface {
	// RegisterUser 注册新用户。email / username 冲突返回 myErrors.ErrDuplicateEntry。
	RegisterUser(ctx context.Context, req *dto.CreateUserRequest) (*vo.UserVO, error)

	// GetUser 读取用户资料，优先走 blog:app:user 缓存。
	GetUser(ctx context.Context, userID uint64) (*vo.UserVO, error)

	ListUsers(ctx context.Context, page dto.PageQuery) (*vo.UserListVO, error)

	// ReplaceUser 整体替换资料，本人或作者可操作；verified / is_author 只有作者能改。
	ReplaceUser(ctx context.Context, actorID, userID uint64, req *dto.ReplaceUserRequest) (*vo.UserVO, error)

	// DeleteUser 删除用户及其帖子、评论、点赞，本人或作者可操作。
	DeleteUser(ctx context.Context, actorID, userID uint64) error

	// UploadAvatar 上传头像到 COS 并回填 AvatarURL，旧头像在成功后异步删除。
	UploadAvatar(ctx context.Context, actorID, userID uint64, file *multipart.FileHeader) (*vo.UserVO, error)

	// GetLikedPosts 用户点赞过的帖子
	GetLikedPosts(ctx context.Context, userID uint64) ([]*vo.PostSummaryVO, error)

	// RecordLogin 记录最近登录时间，登录接口与登录事件消费者共用。
	RecordLogin(ctx context.Context, userID uint64, at time.Time) error
}

type userService struct {
	db             *gorm.DB
	userRepo       mysql.UserRepository
	metaCache      redis.MetadataCache
	postCache      redis.PostCache
	hasher         entities.PasswordHasher
	cosClient      dependencies.COSClientInterface // 可为 nil，此时头像上传不可用
	maxAvatarBytes int64
	logger         *core.ZapLogger
}

// NewUserService 构造函数
func NewUserService(
	db *gorm.DB,
	userRepo mysql.UserRepository,
	metaCache redis.MetadataCache,
	postCache redis.PostCache,
	hasher entities.PasswordHasher,
	cosClient dependencies.COSClientInterface,
	maxAvatarBytes int64,
	logger *core.ZapLogger,
) UserService {
	if maxAvatarBytes <= 0 {
		maxAvatarBytes = constant.DefaultMaxAvatarBytes
	}
	return &userService{
		db:             db,
		userRepo:       userRepo,
		metaCache:      metaCache,
		postCache:      postCache,
		hasher:         hasher,
		cosClient:      cosClient,
		maxAvatarBytes: maxAvatarBytes,
		logger:         logger,
	}
}

func (s *userService) RegisterUser(ctx context.Context, req *dto.CreateUserRequest) (*vo.UserVO, error) {
	user := entities.NewUser()
	user.Email = strings.TrimSpace(req.Email)
	user.Username = strings.TrimSpace(req.Username)
	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)
	if err := user.SetPassword(s.hasher, req.Password); err != nil {
		return nil, err
	}
	if err := user.Validate(); err != nil {
		return nil, validationError(err)
	}

	if err := s.userRepo.CreateUser(ctx, s.db, user); err != nil {
		if errors.Is(err, myErrors.ErrDuplicateEntry) {
			return nil, fmt.Errorf("邮箱或用户名已被占用: %w", err)
		}
		s.logger.Error("注册用户失败", zap.String("username", user.Username), zap.Error(err))
		return nil, fmt.Errorf("注册用户失败: %w", err)
	}
	s.logger.Info("新用户注册成功", zap.Uint64("userID", user.ID), zap.String("username", user.Username))
	return vo.NewUserVO(user), nil
}

func (s *userService) GetUser(ctx context.Context, userID uint64) (*vo.UserVO, error) {
	cached, err := s.metaCache.GetUser(ctx, userID)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, myErrors.ErrCacheMiss) {
		s.logger.Warn("读取用户缓存失败，回源数据库", zap.Uint64("userID", userID), zap.Error(err))
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := vo.NewUserVO(user)
	if err := s.metaCache.SetUser(ctx, view); err != nil {
		s.logger.Warn("写入用户缓存失败", zap.Uint64("userID", userID), zap.Error(err))
	}
	return view, nil
}

func (s *userService) ListUsers(ctx context.Context, page dto.PageQuery) (*vo.UserListVO, error) {
	offset, limit := page.Normalize()
	users, total, err := s.userRepo.ListUsers(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("查询用户列表失败: %w", err)
	}
	views := make([]*vo.UserVO, 0, len(users))
	for _, u := range users {
		views = append(views, vo.NewUserVO(u))
	}
	return &vo.UserListVO{Users: views, Total: total, Page: page.Page, PageSize: page.PageSize}, nil
}

func (s *userService) ReplaceUser(ctx context.Context, actorID, userID uint64, req *dto.ReplaceUserRequest) (*vo.UserVO, error) {
	actor, err := loadActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	if !canManageUser(actor, userID) {
		return nil, myErrors.ErrForbidden
	}
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if (req.Verified != nil && *req.Verified != user.Verified) || (req.IsAuthor != nil && *req.IsAuthor != user.IsAuthor) {
		if !isAuthor(actor) {
			return nil, fmt.Errorf("只有作者可以修改认证或作者标记: %w", myErrors.ErrForbidden)
		}
	}

	user.Email = strings.TrimSpace(req.Email)
	user.Username = strings.TrimSpace(req.Username)
	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)
	if req.Verified != nil {
		user.Verified = *req.Verified
	}
	if req.IsAuthor != nil {
		user.IsAuthor = *req.IsAuthor
	}
	if req.Password != "" {
		if err := user.SetPassword(s.hasher, req.Password); err != nil {
			return nil, err
		}
	}
	if err := user.Validate(); err != nil {
		return nil, validationError(err)
	}

	if err := s.userRepo.UpdateUser(ctx, s.db, user); err != nil {
		return nil, err
	}
	s.invalidateUser(ctx, userID, true)
	return vo.NewUserVO(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, actorID, userID uint64) error {
	actor, err := loadActor(ctx, s.userRepo, actorID)
	if err != nil {
		return err
	}
	if !canManageUser(actor, userID) {
		return myErrors.ErrForbidden
	}
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.userRepo.DeleteUser(ctx, tx, userID)
	})
	if err != nil {
		s.logger.Error("删除用户事务失败", zap.Uint64("userID", userID), zap.Error(err))
		return err
	}

	s.invalidateUser(ctx, userID, true)
	s.removeAvatarAsync(user.AvatarURL)
	s.logger.Info("用户已删除", zap.Uint64("userID", userID), zap.Uint64("actorID", actorID))
	return nil
}

func (s *userService) UploadAvatar(ctx context.Context, actorID, userID uint64, file *multipart.FileHeader) (*vo.UserVO, error) {
	actor, err := loadActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	if !canManageUser(actor, userID) {
		return nil, myErrors.ErrForbidden
	}
	if s.cosClient == nil {
		return nil, myErrors.ErrStorageUnavailable
	}
	if file == nil {
		return nil, fmt.Errorf("%w: 缺少头像文件", myErrors.ErrValidation)
	}
	if file.Size > s.maxAvatarBytes {
		return nil, fmt.Errorf("头像大小 %d 超过上限 %d: %w", file.Size, s.maxAvatarBytes, myErrors.ErrPayloadTooLarge)
	}
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: 头像必须是图片 (收到 %q)", myErrors.ErrValidation, contentType)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("打开头像文件失败: %w", err)
	}
	defer src.Close()

	objectKey := avatarObjectKey(userID, file.Filename)
	avatarURL, err := s.cosClient.UploadFile(ctx, objectKey, src, file.Size, contentType)
	if err != nil {
		s.logger.Error("上传头像到 COS 失败", zap.Uint64("userID", userID), zap.String("objectKey", objectKey), zap.Error(err))
		return nil, fmt.Errorf("上传头像失败: %w", err)
	}

	if err := s.userRepo.UpdateAvatar(ctx, userID, avatarURL); err != nil {
		// 数据库没更新成功，新上传的对象没有引用，删掉
		s.removeAvatarAsync(avatarURL)
		return nil, err
	}
	previous := user.AvatarURL
	user.AvatarURL = avatarURL
	s.invalidateUser(ctx, userID, true)
	if previous != "" && previous != avatarURL {
		s.removeAvatarAsync(previous)
	}
	return vo.NewUserVO(user), nil
}

func (s *userService) GetLikedPosts(ctx context.Context, userID uint64) ([]*vo.PostSummaryVO, error) {
	if _, err := s.userRepo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	posts, err := s.userRepo.GetLikedPosts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询点赞帖子失败: %w", err)
	}
	return vo.NewPostSummaryVOs(posts), nil
}

func (s *userService) RecordLogin(ctx context.Context, userID uint64, at time.Time) error {
	if err := s.userRepo.TouchLastLogin(ctx, userID, at); err != nil {
		return err
	}
	s.invalidateUser(ctx, userID, false)
	return nil
}

// invalidateUser 用户资料变化后清理缓存。用户名、头像会出现在帖子视图中，affectsPosts 为 true 时一并清理帖子缓存。
func (s *userService) invalidateUser(ctx context.Context, userID uint64, affectsPosts bool) {
	if err := s.metaCache.InvalidateUser(ctx, userID); err != nil {
		s.logger.Warn("清理用户缓存失败", zap.Uint64("userID", userID), zap.Error(err))
	}
	if !affectsPosts {
		return
	}
	if _, err := s.postCache.InvalidatePostLists(ctx); err != nil {
		s.logger.Warn("清理帖子列表缓存失败", zap.Error(err))
	}
	if _, err := s.postCache.InvalidatePostDetails(ctx); err != nil {
		s.logger.Warn("清理帖子详情缓存失败", zap.Error(err))
	}
}

func (s *userService) removeAvatarAsync(avatarURL string) {
	if s.cosClient == nil || avatarURL == "" {
		return
	}
	key, ok := s.cosClient.ObjectKeyFromURL(avatarURL)
	if !ok {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.cosClient.DeleteObject(ctx, key); err != nil {
			s.logger.Warn("删除旧头像失败", zap.String("objectKey", key), zap.Error(err))
		}
	}()
}

// avatarObjectKey avatars/YYYYMMDD/{userID}_{uuid}{ext}
func avatarObjectKey(userID uint64, filename string) string {
	return fmt.Sprintf("%s%s/%d_%s%s",
		constant.COSObjectKeyPrefixAvatars,
		time.Now().Format("20060102"),
		userID,
		uuid.NewString(),
		strings.ToLower(filepath.Ext(filename)),
	)
}
