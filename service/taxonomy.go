package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/core"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/repo/redis"
)

// TaxonomyService 标签与分类。读取公开，写入需要作者角色。
type TaxonomyService interface {
	ListTags(ctx context.Context) ([]*vo.TaxonomyVO, error)
	GetTag(ctx context.Context, id uint64) (*vo.TaxonomyVO, error)
	CreateTag(ctx context.Context, actorID uint64, req *dto.TaxonomyRequest) (*vo.TaxonomyVO, error)
	ReplaceTag(ctx context.Context, actorID, id uint64, req *dto.TaxonomyRequest) (*vo.TaxonomyVO, error)
	DeleteTag(ctx context.Context, actorID, id uint64) error

	ListCategories(ctx context.Context) ([]*vo.TaxonomyVO, error)
	GetCategory(ctx context.Context, id uint64) (*vo.TaxonomyVO, error)
	CreateCategory(ctx context.Context, actorID uint64, req *dto.TaxonomyRequest) (*vo.TaxonomyVO, error)
	ReplaceCategory(ctx context.Context, actorID, id uint64, req *dto.TaxonomyRequest) (*vo.TaxonomyVO, error)
	DeleteCategory(ctx context.Context, actorID, id uint64) error
}

type taxonomyService struct {
	db           *gorm.DB
	tagRepo      mysql.TagRepository
	categoryRepo mysql.CategoryRepository
	userRepo     mysql.UserRepository
	metaCache    redis.MetadataCache
	postCache    redis.PostCache
	logger       *core.ZapLogger
}

func NewTaxonomyService(
	db *gorm.DB,
	tagRepo mysql.TagRepository,
	categoryRepo mysql.CategoryRepository,
	userRepo mysql.UserRepository,
	metaCache redis.MetadataCache,
	postCache redis.PostCache,
	logger *core.ZapLogger,
) TaxonomyService {
	return &taxonomyService{
		db:           db,
		tagRepo:      tagRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		metaCache:    metaCache,
		postCache:    postCache,
		logger:       logger,
	}
}

func (s *taxonomyService) ListTags(ctx context.Context) ([]*vo.TaxonomyVO, error) {
	cached, err := s.metaCache.GetTags(ctx)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, myErrors.ErrCacheMiss) {
		s.logger.Warn("读取标签缓存失败，回源数据库", zap.Error(err))
	}
	tags, err := s.tagRepo.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询标签失败: %w", err)
	}
	views := vo.NewTagVOs(tags)
	if err := s.metaCache.SetTags(ctx, views); err != nil {
		s.logger.Warn("写入标签缓存失败", zap.Error(err))
	}
	return views, nil
}

func (s *taxonomyService) GetTag(ctx context.Context, id uint64) (*vo.TaxonomyVO, error) {
	tag, err := s.tagRepo.GetTagByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &vo.TaxonomyVO{ID: tag.ID, Name: tag.Name}, nil
}

func (s *taxonomyService) CreateTag(ctx context.Context, actorID uint64, req *dto.TaxonomyRequest) (*vo.TaxonomyVO, error) {
	if err := s.authorize(ctx, actorID); err != nil {
		return nil, err
	}
	tag := entities.NewTag(req.Name)
	if err := tag.Validate(); err != nil {
		return nil, validationError(err)
	}
	if err := s.tagRepo.CreateTag(ctx, tag); err != nil {
		return nil, fmt.Errorf("创建标签失败: %w", err)
	}
	s.invalidateTags(ctx, false)
	return &vo.TaxonomyVO{ID: tag.ID, Name: tag.Name}, nil
}

func (s *taxonomyService) ReplaceTag(ctx context.Context, actorID, id uint64, req *dto.TaxonomyRequest) (*vo.TaxonomyVO, error) {
	if err := s.authorize(ctx, actorID); err != nil {
		return nil, err
	}
	tag, err := s.tagRepo.GetTagByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tag.SetName(req.Name)
	if err := tag.Validate(); err != nil {
		return nil, validationError(err)
	}
	if err := s.tagRepo.UpdateTag(ctx, tag); err != nil {
		return nil, err
	}
	s.invalidateTags(ctx, true)
	return &vo.TaxonomyVO{ID: tag.ID, Name: tag.Name}, nil
}

func (s *taxonomyService) DeleteTag(ctx context.Context, actorID, id uint64) error {
	if err := s.authorize(ctx, actorID); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.tagRepo.DeleteTag(ctx, tx, id)
	})
	if err != nil {
		return err
	}
	s.invalidateTags(ctx, true)
	return nil
}

func (s *taxonomyService) ListCategories(ctx context.Context) ([]*vo.TaxonomyVO, error) {
	cached, err := s.metaCache.GetCategories(ctx)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, myErrors.ErrCacheMiss) {
		s.logger.Warn("读取分类缓存失败，回源数据库", zap.Error(err))
	}
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询分类失败: %w", err)
	}
	views := vo.NewCategoryVOs(categories)
	if err := s.metaCache.SetCategories(ctx, views); err != nil {
		s.logger.Warn("写入分类缓存失败", zap.Error(err))
	}
	return views, nil
}

func (s *taxonomyService) GetCategory(ctx context.Context, id uint64) (*vo.TaxonomyVO, error) {
	category, err := s.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &vo.TaxonomyVO{ID: category.ID, Name: category.Name}, nil
}

func (s *taxonomyService) CreateCategory(ctx context.Context, actorID uint64, req *dto.TaxonomyRequest) (*vo.TaxonomyVO, error) {
	if err := s.authorize(ctx, actorID); err != nil {
		return nil, err
	}
	category := entities.NewCategory(req.Name)
	if err := category.Validate(); err != nil {
		return nil, validationError(err)
	}
	if err := s.categoryRepo.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("创建分类失败: %w", err)
	}
	s.invalidateCategories(ctx, false)
	return &vo.TaxonomyVO{ID: category.ID, Name: category.Name}, nil
}

func (s *taxonomyService) ReplaceCategory(ctx context.Context, actorID, id uint64, req *dto.TaxonomyRequest) (*vo.TaxonomyVO, error) {
	if err := s.authorize(ctx, actorID); err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	category.SetName(req.Name)
	if err := category.Validate(); err != nil {
		return nil, validationError(err)
	}
	if err := s.categoryRepo.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	s.invalidateCategories(ctx, true)
	return &vo.TaxonomyVO{ID: category.ID, Name: category.Name}, nil
}

func (s *taxonomyService) DeleteCategory(ctx context.Context, actorID, id uint64) error {
	if err := s.authorize(ctx, actorID); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.categoryRepo.DeleteCategory(ctx, tx, id)
	})
	if err != nil {
		return err
	}
	s.invalidateCategories(ctx, true)
	return nil
}

func (s *taxonomyService) authorize(ctx context.Context, actorID uint64) error {
	actor, err := loadActor(ctx, s.userRepo, actorID)
	if err != nil {
		return err
	}
	if !canManageTaxonomy(actor) {
		return myErrors.ErrForbidden
	}
	return nil
}

func (s *taxonomyService) invalidateTags(ctx context.Context, affectsPosts bool) {
	if err := s.metaCache.InvalidateTags(ctx); err != nil {
		s.logger.Warn("清理标签缓存失败", zap.Error(err))
	}
	if affectsPosts {
		s.invalidatePosts(ctx)
	}
}

func (s *taxonomyService) invalidateCategories(ctx context.Context, affectsPosts bool) {
	if err := s.metaCache.InvalidateCategories(ctx); err != nil {
		s.logger.Warn("清理分类缓存失败", zap.Error(err))
	}
	if affectsPosts {
		s.invalidatePosts(ctx)
	}
}

// invalidatePosts 标签/分类名称嵌在帖子视图里，改名或删除后帖子缓存整体失效
func (s *taxonomyService) invalidatePosts(ctx context.Context) {
	if _, err := s.postCache.InvalidatePostDetails(ctx); err != nil {
		s.logger.Warn("清理帖子详情缓存失败", zap.Error(err))
	}
	if _, err := s.postCache.InvalidatePostLists(ctx); err != nil {
		s.logger.Warn("清理帖子列表缓存失败", zap.Error(err))
	}
}
