package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/core"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/security"
)

// AuthService 登录并签发访问令牌
type AuthService interface {
	// Login 用户名或邮箱 + 密码登录。用户不存在与密码错误返回同一个 myErrors.ErrInvalidCredentials。
	Login(ctx context.Context, req *dto.LoginRequest) (*vo.LoginVO, error)
}

type authService struct {
	userRepo mysql.UserRepository
	users    UserService
	hasher   entities.PasswordHasher
	tokens   *security.TokenManager
	logger   *core.ZapLogger
}

func NewAuthService(userRepo mysql.UserRepository, users UserService, hasher entities.PasswordHasher, tokens *security.TokenManager, logger *core.ZapLogger) AuthService {
	return &authService{userRepo: userRepo, users: users, hasher: hasher, tokens: tokens, logger: logger}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*vo.LoginVO, error) {
	user, err := s.userRepo.GetUserByLogin(ctx, strings.TrimSpace(req.Login))
	if err != nil {
		if errors.Is(err, myErrors.ErrRepoNotFound) {
			return nil, myErrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("查询登录用户失败: %w", err)
	}
	if !user.VerifyPassword(s.hasher, req.Password) {
		s.logger.Info("登录失败：密码错误", zap.Uint64("userID", user.ID))
		return nil, myErrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Username, user.GetRoles())
	if err != nil {
		return nil, err
	}

	at := time.Now()
	if err := s.users.RecordLogin(ctx, user.ID, at); err != nil {
		// 登录时间只是附加信息，不影响本次登录
		s.logger.Warn("记录登录时间失败", zap.Uint64("userID", user.ID), zap.Error(err))
	} else {
		user.LastLoginAt = &at
	}

	return &vo.LoginVO{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        vo.NewUserVO(user),
	}, nil
}
