package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// 授权规则
//
//	资源          读取   创建            替换                     删除
//	User          公开   公开(注册)      本人或作者               本人或作者
//	Post          公开   登录用户        作者或帖子所有者         作者或帖子所有者
//	Comment       公开   登录用户        作者或评论者             作者、评论者或帖子所有者
//	Tag/Category  公开   作者            作者                     作者
//
// "作者" 指具备 ROLE_AUTHOR 角色的用户。角色以数据库中的用户为准，不信任令牌中的角色声明。

func isAuthor(actor *entities.User) bool {
	return actor != nil && actor.HasRole(constant.RoleAuthor)
}

func canManageUser(actor *entities.User, targetID uint64) bool {
	return actor != nil && (actor.ID == targetID || isAuthor(actor))
}

func canEditPost(actor *entities.User, post *entities.Post) bool {
	return actor != nil && (isAuthor(actor) || post.IsOwnedBy(actor.ID))
}

func canEditComment(actor *entities.User, comment *entities.Comment) bool {
	return actor != nil && (isAuthor(actor) || comment.IsOwnedBy(actor.ID))
}

// canDeleteComment 帖子所有者可以清理自己帖子下的评论
func canDeleteComment(actor *entities.User, comment *entities.Comment, post *entities.Post) bool {
	if canEditComment(actor, comment) {
		return true
	}
	return actor != nil && post != nil && post.IsOwnedBy(actor.ID)
}

func canManageTaxonomy(actor *entities.User) bool {
	return isAuthor(actor)
}

// loadActor 根据令牌中的用户 ID 加载当前用户。
// 未登录，或令牌对应的用户已被删除，都返回 myErrors.ErrUnauthenticated。
func loadActor(ctx context.Context, users mysql.UserRepository, actorID uint64) (*entities.User, error) {
	if actorID == 0 {
		return nil, myErrors.ErrUnauthenticated
	}
	actor, err := users.GetUserByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, myErrors.ErrRepoNotFound) {
			return nil, myErrors.ErrUnauthenticated
		}
		return nil, fmt.Errorf("加载当前用户失败: %w", err)
	}
	return actor, nil
}

// validationError 把实体校验错误包装为 myErrors.ErrValidation
func validationError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", myErrors.ErrValidation, err)
}
