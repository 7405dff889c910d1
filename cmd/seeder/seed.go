package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/brianvoe/gofakeit/v6"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/core"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/service"
)

const seedConcurrency = 10

type seeder struct {
	db       *gorm.DB
	userRepo mysql.UserRepository
	users    service.UserService
	posts    service.PostService
	comments service.CommentService
	taxonomy service.TaxonomyService
	logger   *core.ZapLogger
}

// Seed 通过服务层写入测试数据: 用户 → 标签/分类 → 帖子 (并发) → 点赞与评论 → 热门榜单。
func (s *seeder) Seed(ctx context.Context, numUsers, numPosts, popularSize int) error {
	userIDs, err := s.seedUsers(ctx, numUsers)
	if err != nil {
		return err
	}
	authorID := userIDs[0]
	if err := s.promoteAuthor(ctx, authorID); err != nil {
		return err
	}

	tagIDs := s.seedTaxonomy(ctx, "标签", func(name string) (uint64, error) {
		v, err := s.taxonomy.CreateTag(ctx, authorID, &dto.TaxonomyRequest{Name: name})
		if err != nil {
			return 0, err
		}
		return v.ID, nil
	})
	categoryIDs := s.seedTaxonomy(ctx, "分类", func(name string) (uint64, error) {
		v, err := s.taxonomy.CreateCategory(ctx, authorID, &dto.TaxonomyRequest{Name: name})
		if err != nil {
			return 0, err
		}
		return v.ID, nil
	})

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, seedConcurrency)
	for i := 0; i < numPosts; i++ {
		i := i
		wg.Add(1)
		semaphore <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-semaphore }()
			s.seedPost(ctx, i, numPosts, userIDs, tagIDs, categoryIDs)
		}()
	}
	wg.Wait()

	if popularSize <= 0 {
		popularSize = constant.PopularPostsDefaultSize
	}
	if err := s.posts.RefreshPopularPosts(ctx, popularSize); err != nil {
		s.logger.Warn("刷新热门帖子榜单失败", zap.Error(err))
	}
	s.logger.Info("测试数据填充完毕 (通过服务层)")
	return nil
}

func (s *seeder) drainEvents(ctx context.Context) error {
	if err := s.posts.DrainEvents(ctx); err != nil {
		return err
	}
	return s.comments.DrainEvents(ctx)
}

func (s *seeder) seedUsers(ctx context.Context, n int) ([]uint64, error) {
	ids := make([]uint64, 0, n)
	for i := 0; i < n; i++ {
		req := &dto.CreateUserRequest{
			Email:     fmt.Sprintf("seed%d.%s", i, gofakeit.Email()),
			Username:  fmt.Sprintf("%s_%d", gofakeit.Username(), i),
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			Password:  gofakeit.Password(true, true, true, false, false, 12),
		}
		u, err := s.users.RegisterUser(ctx, req)
		if err != nil {
			if errors.Is(err, myErrors.ErrDuplicateEntry) {
				s.logger.Warn("用户已存在，跳过", zap.String("username", req.Username))
				continue
			}
			return nil, fmt.Errorf("注册用户 %s 失败: %w", req.Username, err)
		}
		s.logger.Info("成功创建用户", zap.Uint64("user_id", u.ID), zap.String("username", u.Username))
		ids = append(ids, u.ID)
	}
	if len(ids) == 0 {
		return nil, errors.New("没有成功创建任何用户")
	}
	return ids, nil
}

// promoteAuthor 直接在仓库层授予作者角色，服务层的 ReplaceUser 要求操作者本身已是作者。
func (s *seeder) promoteAuthor(ctx context.Context, userID uint64) error {
	u, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	u.IsAuthor = true
	u.Verified = true
	if err := s.userRepo.UpdateUser(ctx, s.db, u); err != nil {
		return fmt.Errorf("授予作者角色失败: %w", err)
	}
	s.logger.Info("已授予作者角色", zap.Uint64("user_id", userID), zap.String("username", u.Username))
	return nil
}

func (s *seeder) seedTaxonomy(ctx context.Context, kind string, create func(name string) (uint64, error)) []uint64 {
	var ids []uint64
	for i := 0; i < 5; i++ {
		name := gofakeit.Noun()
		id, err := create(name)
		if err != nil {
			s.logger.Warn("创建"+kind+"失败，跳过", zap.String("name", name), zap.Error(err))
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func (s *seeder) seedPost(ctx context.Context, index, total int, userIDs, tagIDs, categoryIDs []uint64) {
	ownerID := userIDs[gofakeit.Number(0, len(userIDs)-1)]
	commentsActive := gofakeit.Number(1, 10) > 2
	req := &dto.CreatePostRequest{
		Title:          gofakeit.Sentence(gofakeit.Number(3, 10)),
		Content:        gofakeit.Paragraph(3, 5, 20, "\n\n"),
		Published:      gofakeit.Bool(),
		CommentsActive: &commentsActive,
		TagIDs:         pickSome(tagIDs, 3),
		CategoryIDs:    pickSome(categoryIDs, 2),
	}
	post, err := s.posts.CreatePost(ctx, ownerID, req)
	if err != nil {
		s.logger.Error(fmt.Sprintf("创建帖子 %d/%d 失败", index+1, total), zap.Error(err), zap.String("title", req.Title))
		return
	}
	s.logger.Info(fmt.Sprintf("成功创建帖子 %d/%d", index+1, total), zap.Uint64("post_id", post.ID))

	for _, likerID := range pickSome(userIDs, len(userIDs)) {
		if _, err := s.posts.LikePost(ctx, likerID, post.ID); err != nil {
			s.logger.Warn("点赞失败", zap.Uint64("post_id", post.ID), zap.Error(err))
		}
	}
	if !commentsActive {
		return
	}
	for i := gofakeit.Number(0, 3); i > 0; i-- {
		commenterID := userIDs[gofakeit.Number(0, len(userIDs)-1)]
		_, err := s.comments.CreateComment(ctx, commenterID, &dto.CreateCommentRequest{
			PostID:  post.ID,
			Content: gofakeit.Sentence(gofakeit.Number(4, 20)),
		})
		if err != nil {
			s.logger.Warn("创建评论失败", zap.Uint64("post_id", post.ID), zap.Error(err))
		}
	}
}

// pickSome 随机挑选最多 limit 个不重复的 ID
func pickSome(ids []uint64, limit int) []uint64 {
	if len(ids) == 0 || limit <= 0 {
		return nil
	}
	shuffled := make([]uint64, len(ids))
	copy(shuffled, ids)
	gofakeit.ShuffleAnySlice(shuffled)
	return shuffled[:gofakeit.Number(0, min(limit, len(shuffled)))]
}
