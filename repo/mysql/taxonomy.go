package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/core"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/myErrors"
)

// TagRepository 标签持久化接口
type TagRepository interface {
	CreateTag(ctx context.Context, tag *entities.Tag) error
	GetTagByID(ctx context.Context, id uint64) (*entities.Tag, error)
	// GetTagsByIDs 批量查询，任意一个 ID 不存在时返回 myErrors.ErrRepoNotFound
	GetTagsByIDs(ctx context.Context, ids []uint64) ([]*entities.Tag, error)
	// ListTags 按名称排序的全量列表
	ListTags(ctx context.Context) ([]*entities.Tag, error)
	UpdateTag(ctx context.Context, tag *entities.Tag) error
	// DeleteTag 删除标签及其 post_to_tag 关联 (需在事务中调用)
	DeleteTag(ctx context.Context, db *gorm.DB, id uint64) error
}

// CategoryRepository 分类持久化接口
type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *entities.Category) error
	GetCategoryByID(ctx context.Context, id uint64) (*entities.Category, error)
	// GetCategoriesByIDs 批量查询，任意一个 ID 不存在时返回 myErrors.ErrRepoNotFound
	GetCategoriesByIDs(ctx context.Context, ids []uint64) ([]*entities.Category, error)
	ListCategories(ctx context.Context) ([]*entities.Category, error)
	UpdateCategory(ctx context.Context, category *entities.Category) error
	// DeleteCategory 删除分类及其 post_to_category 关联 (需在事务中调用)
	DeleteCategory(ctx context.Context, db *gorm.DB, id uint64) error
}

type tagRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

func NewTagRepository(db *gorm.DB, logger *core.ZapLogger) TagRepository {
	return &tagRepository{db: db, logger: logger}
}

func (r *tagRepository) CreateTag(ctx context.Context, tag *entities.Tag) error {
	return translateError(r.db.WithContext(ctx).Create(tag).Error)
}

func (r *tagRepository) GetTagByID(ctx context.Context, id uint64) (*entities.Tag, error) {
	var tag entities.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &tag, nil
}

func (r *tagRepository) GetTagsByIDs(ctx context.Context, ids []uint64) ([]*entities.Tag, error) {
	tags := []*entities.Tag{}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return tags, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, myErrors.ErrRepoNotFound
	}
	return tags, nil
}

func (r *tagRepository) ListTags(ctx context.Context) ([]*entities.Tag, error) {
	tags := []*entities.Tag{}
	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) UpdateTag(ctx context.Context, tag *entities.Tag) error {
	result := r.db.WithContext(ctx).Model(tag).Select("name").Updates(tag)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRepoNotFound
	}
	return nil
}

func (r *tagRepository) DeleteTag(ctx context.Context, db *gorm.DB, id uint64) error {
	tx := db.WithContext(ctx)
	if err := tx.Exec("DELETE FROM "+postToTagTable+" WHERE tag_id = ?", id).Error; err != nil {
		return err
	}
	result := tx.Delete(&entities.Tag{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRepoNotFound
	}
	return nil
}

type categoryRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

func NewCategoryRepository(db *gorm.DB, logger *core.ZapLogger) CategoryRepository {
	return &categoryRepository{db: db, logger: logger}
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category *entities.Category) error {
	return translateError(r.db.WithContext(ctx).Create(category).Error)
}

func (r *categoryRepository) GetCategoryByID(ctx context.Context, id uint64) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &category, nil
}

func (r *categoryRepository) GetCategoriesByIDs(ctx context.Context, ids []uint64) ([]*entities.Category, error) {
	categories := []*entities.Category{}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return categories, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	if len(categories) != len(ids) {
		return nil, myErrors.ErrRepoNotFound
	}
	return categories, nil
}

func (r *categoryRepository) ListCategories(ctx context.Context) ([]*entities.Category, error) {
	categories := []*entities.Category{}
	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, category *entities.Category) error {
	result := r.db.WithContext(ctx).Model(category).Select("name").Updates(category)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRepoNotFound
	}
	return nil
}

func (r *categoryRepository) DeleteCategory(ctx context.Context, db *gorm.DB, id uint64) error {
	tx := db.WithContext(ctx)
	if err := tx.Exec("DELETE FROM "+postToCategoryTable+" WHERE category_id = ?", id).Error; err != nil {
		return err
	}
	result := tx.Delete(&entities.Category{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRepoNotFound
	}
	return nil
}

// uniqueIDs 去重并保持原有顺序
func uniqueIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
