package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

// PostService 定义了处理帖子核心业务逻辑的接口。
type PostService interface {
	// CreatePost 以当前用户为作者创建帖子。
	// - 标签、分类必须已存在，否则返回校验错误。
	// - 创建即发布时发送 postPublished 事件。
	CreatePost(ctx context.Context, actorID uint64, req *dto.CreatePostRequest) (*vo.PostVO, error)

	// GetPost 帖子详情 (含评论、标签、分类、点赞数)，优先读 blog:app:post 缓存。
	GetPost(ctx context.Context, postID uint64) (*vo.PostVO, error)

	// ListPosts 帖子分页列表，支持 published 精确过滤与 title 模糊过滤，结果缓存在 blog:result。
	ListPosts(ctx context.Context, query dto.ListPostsQuery) (*vo.PostListVO, error)

	// ReplacePost 整体替换帖子，需要作者角色或帖子所有者。
	// - 首次发布 (从未发布过) 时发送 postPublished 事件；取消发布后重新发布不会重复发送。
	ReplacePost(ctx context.Context, actorID, postID uint64, req *dto.ReplacePostRequest) (*vo.PostVO, error)

	// DeletePost 删除帖子 (级联删除评论、点赞、标签/分类关联)，需要作者角色或帖子所有者。
	DeletePost(ctx context.Context, actorID, postID uint64) error

	// LikePost / UnlikePost 当前用户点赞、取消点赞，均为幂等操作。
	LikePost(ctx context.Context, actorID, postID uint64) (*vo.PostVO, error)
	UnlikePost(ctx context.Context, actorID, postID uint64) (*vo.PostVO, error)

	// PopularPosts 按点赞数排序的热门帖子，数据来自定时任务生成的 blog:query:popular_posts 榜单。
	PopularPosts(ctx context.Context, limit int) ([]*vo.PopularPostVO, error)

	// RefreshPopularPosts 重新统计点赞数并替换榜单，由定时任务调用。
	RefreshPopularPosts(ctx context.Context, size int) error

	// DrainEvents 等待在途的领域事件发送完成，服务关停时调用。
	DrainEvents(ctx context.Context) error
}

type postService struct {
	db           *gorm.DB
	postRepo     mysql.PostRepository
	userRepo     mysql.UserRepository
	tagRepo      mysql.TagRepository
	categoryRepo mysql.CategoryRepository
	postCache    redis.PostCache
	popular      redis.PopularPostsCache
	events       *eventDispatcher
	logger       *core.ZapLogger
}

// NewPostService 是 postService 的构造函数。publisher 为 nil 时不发送事件。
func NewPostService(
	db *gorm.DB,
	postRepo mysql.PostRepository,
	userRepo mysql.UserRepository,
	tagRepo mysql.TagRepository,
	categoryRepo mysql.CategoryRepository,
	postCache redis.PostCache,
	popular redis.PopularPostsCache,
	publisher EventPublisher,
	logger *core.ZapLogger,
) PostService {
	return &postService{
		db:           db,
		postRepo:     postRepo,
		userRepo:     userRepo,
		tagRepo:      tagRepo,
		categoryRepo: categoryRepo,
		postCache:    postCache,
		popular:      popular,
		events:       newEventDispatcher(publisher, logger),
		logger:       logger,
	}
}

func (s *postService) CreatePost(ctx context.Context, actorID uint64, req *dto.CreatePostRequest) (*vo.PostVO, error) {
	actor, err := loadActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}

	post := entities.NewPost()
	actor.AddPost(post)
	firstPublish, err := s.applyRequest(ctx, post, req)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.postRepo.CreatePost(ctx, tx, post)
	})
	if err != nil {
		s.logger.Error("创建帖子失败", zap.Uint64("actorID", actorID), zap.Error(err))
		return nil, fmt.Errorf("创建帖子失败: %w", err)
	}
	s.logger.Info("帖子创建成功", zap.Uint64("postID", post.ID), zap.Uint64("userID", actorID), zap.Bool("published", post.Published))

	s.invalidateLists(ctx)
	if firstPublish {
		s.publishFirstPublication(post)
	}
	return s.loadAndCache(ctx, post.ID)
}

func (s *postService) GetPost(ctx context.Context, postID uint64) (*vo.PostVO, error) {
	cached, err := s.postCache.GetPostDetail(ctx, postID)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, myErrors.ErrCacheMiss) {
		s.logger.Warn("读取帖子详情缓存失败，回源数据库", zap.Uint64("postID", postID), zap.Error(err))
	}
	return s.loadAndCache(ctx, postID)
}

func (s *postService) ListPosts(ctx context.Context, query dto.ListPostsQuery) (*vo.PostListVO, error) {
	offset, limit := query.Normalize()
	title := strings.TrimSpace(query.Title)
	key := redis.PostListKey{Published: query.Published, Title: title, Page: query.Page, PageSize: query.PageSize}

	cached, err := s.postCache.GetPostList(ctx, key)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, myErrors.ErrCacheMiss) {
		s.logger.Warn("读取帖子列表缓存失败，回源数据库", zap.Error(err))
	}

	posts, total, err := s.postRepo.ListPosts(ctx, mysql.PostFilter{
		Published: query.Published,
		Title:     title,
		Offset:    offset,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("查询帖子列表失败: %w", err)
	}
	list := &vo.PostListVO{
		Posts:    vo.NewPostSummaryVOs(posts),
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if err := s.postCache.SetPostList(ctx, key, list); err != nil {
		s.logger.Warn("写入帖子列表缓存失败", zap.Error(err))
	}
	return list, nil
}

func (s *postService) ReplacePost(ctx context.Context, actorID, postID uint64, req *dto.ReplacePostRequest) (*vo.PostVO, error) {
	actor, err := loadActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !canEditPost(actor, post) {
		return nil, myErrors.ErrForbidden
	}

	firstPublish, err := s.applyRequest(ctx, post, req)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.postRepo.UpdatePost(ctx, tx, post)
	})
	if err != nil {
		s.logger.Error("更新帖子失败", zap.Uint64("postID", postID), zap.Error(err))
		return nil, fmt.Errorf("更新帖子失败: %w", err)
	}

	s.invalidatePost(ctx, postID)
	if !post.Published {
		if err := s.popular.RemovePost(ctx, postID); err != nil {
			s.logger.Warn("从热门榜单移除帖子失败", zap.Uint64("postID", postID), zap.Error(err))
		}
	}
	if firstPublish {
		s.publishFirstPublication(post)
	}
	return s.loadAndCache(ctx, postID)
}

func (s *postService) DeletePost(ctx context.Context, actorID, postID uint64) error {
	actor, err := loadActor(ctx, s.userRepo, actorID)
	if err != nil {
		return err
	}
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if !canEditPost(actor, post) {
		return myErrors.ErrForbidden
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.postRepo.DeletePost(ctx, tx, postID)
	})
	if err != nil {
		s.logger.Error("删除帖子事务失败", zap.Uint64("postID", postID), zap.Error(err))
		return err
	}
	s.logger.Info("帖子已删除", zap.Uint64("postID", postID), zap.Uint64("actorID", actorID))

	s.invalidatePost(ctx, postID)
	if err := s.popular.RemovePost(ctx, postID); err != nil {
		s.logger.Warn("从热门榜单移除帖子失败", zap.Uint64("postID", postID), zap.Error(err))
	}
	s.events.dispatch("postDeleted", func(ctx context.Context, p EventPublisher) error {
		return p.SendPostDeletedEvent(ctx, postID)
	})
	return nil
}

func (s *postService) LikePost(ctx context.Context, actorID, postID uint64) (*vo.PostVO, error) {
	return s.toggleLike(ctx, actorID, postID, true)
}

func (s *postService) UnlikePost(ctx context.Context, actorID, postID uint64) (*vo.PostVO, error) {
	return s.toggleLike(ctx, actorID, postID, false)
}

// toggleLike 通过实体的点赞方法修改两侧集合，只有拥有端 Post.Likes 实际发生变化时才写入 likes 表。
func (s *postService) toggleLike(ctx context.Context, actorID, postID uint64, like bool) (*vo.PostVO, error) {
	actor, err := loadActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	before := post.HasLike(actor)
	if like {
		actor.AddLikedPost(post)
	} else {
		actor.RemoveLikedPost(post)
	}
	after := post.HasLike(actor)
	if before == after {
		return vo.NewPostVO(post), nil
	}

	if after {
		err = s.postRepo.AddLike(ctx, post.ID, actor.ID)
	} else {
		err = s.postRepo.RemoveLike(ctx, post.ID, actor.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("更新点赞失败: %w", err)
	}
	s.logger.Debug("点赞状态已更新", zap.Uint64("postID", post.ID), zap.Uint64("userID", actor.ID), zap.Bool("liked", after))
	s.invalidatePost(ctx, post.ID)
	return s.loadAndCache(ctx, post.ID)
}

func (s *postService) PopularPosts(ctx context.Context, limit int) ([]*vo.PopularPostVO, error) {
	ranked, err := s.popular.GetRanking(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return []*vo.PopularPostVO{}, nil
	}

	ids := make([]uint64, 0, len(ranked))
	for _, r := range ranked {
		ids = append(ids, r.PostID)
	}
	posts, err := s.postRepo.GetPostsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("批量查询热门帖子失败: %w", err)
	}
	byID := make(map[uint64]*entities.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}

	// 榜单在两次刷新之间可能包含已删除或已取消发布的帖子，跳过它们
	result := make([]*vo.PopularPostVO, 0, len(ranked))
	for _, r := range ranked {
		p, ok := byID[r.PostID]
		if !ok || !p.Published {
			continue
		}
		result = append(result, &vo.PopularPostVO{
			Rank:      len(result) + 1,
			LikeCount: r.LikeCount,
			Post:      vo.NewPostSummaryVO(p),
		})
	}
	return result, nil
}

func (s *postService) RefreshPopularPosts(ctx context.Context, size int) error {
	counts, err := s.postRepo.TopLikedPosts(ctx, size)
	if err != nil {
		return fmt.Errorf("统计帖子点赞数失败: %w", err)
	}
	return s.popular.ReplaceRanking(ctx, counts)
}

// applyRequest 把请求写入实体并校验，返回本次是否为首次发布
func (s *postService) applyRequest(ctx context.Context, post *entities.Post, req *dto.CreatePostRequest) (bool, error) {
	post.Title = strings.TrimSpace(req.Title)
	post.Content = req.Content
	if req.CommentsActive != nil {
		post.CommentsActive = *req.CommentsActive
	}

	tags, err := s.tagRepo.GetTagsByIDs(ctx, req.TagIDs)
	if err != nil {
		if errors.Is(err, myErrors.ErrRepoNotFound) {
			return false, fmt.Errorf("%w: 包含不存在的标签", myErrors.ErrValidation)
		}
		return false, err
	}
	categories, err := s.categoryRepo.GetCategoriesByIDs(ctx, req.CategoryIDs)
	if err != nil {
		if errors.Is(err, myErrors.ErrRepoNotFound) {
			return false, fmt.Errorf("%w: 包含不存在的分类", myErrors.ErrValidation)
		}
		return false, err
	}
	for _, t := range append([]*entities.Tag(nil), post.Tags...) {
		post.RemoveTag(t)
	}
	for _, t := range tags {
		post.AddTag(t)
	}
	for _, c := range append([]*entities.Category(nil), post.Categories...) {
		post.RemoveCategory(c)
	}
	for _, c := range categories {
		post.AddCategory(c)
	}

	if err := post.Validate(); err != nil {
		return false, validationError(err)
	}
	return post.SetPublished(req.Published), nil
}

func (s *postService) publishFirstPublication(post *entities.Post) {
	event := events.PostPublishedEvent{
		PostID:   post.ID,
		AuthorID: post.UserID,
		Title:    post.Title,
		Summary:  post.GetSummary(),
	}
	if post.PublishedAt != nil {
		event.PublishedAt = *post.PublishedAt
	}
	s.events.dispatch("postPublished", func(ctx context.Context, p EventPublisher) error {
		return p.SendPostPublishedEvent(ctx, event)
	})
}

func (s *postService) DrainEvents(ctx context.Context) error {
	return s.events.drain(ctx)
}

func (s *postService) loadAndCache(ctx context.Context, postID uint64) (*vo.PostVO, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	view := vo.NewPostVO(post)
	if err := s.postCache.SetPostDetail(ctx, view); err != nil {
		s.logger.Warn("写入帖子详情缓存失败", zap.Uint64("postID", postID), zap.Error(err))
	}
	return view, nil
}

func (s *postService) invalidatePost(ctx context.Context, postID uint64) {
	if err := s.postCache.DeletePostDetail(ctx, postID); err != nil {
		s.logger.Warn("删除帖子详情缓存失败", zap.Uint64("postID", postID), zap.Error(err))
	}
	s.invalidateLists(ctx)
}

func (s *postService) invalidateLists(ctx context.Context) {
	if _, err := s.postCache.InvalidatePostLists(ctx); err != nil {
		s.logger.Warn("清理帖子列表缓存失败", zap.Error(err))
	}
}
