package mysql

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Xushengqwer/blog_service/core"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/myErrors"
)

// PostFilter 帖子列表的筛选与分页条件
type PostFilter struct {
	// Published 非 nil 时按发布状态精确匹配
	Published *bool
	// Title 非空时按标题模糊匹配 (LIKE %title%)
	Title  string
	Offset int
	Limit  int
}

// PostLikeCount 点赞数统计结果
type PostLikeCount struct {
	PostID    uint64
	LikeCount int64
}

// PostRepository 定义了帖子数据在 MySQL 中的持久化操作接口。
// 帖子是评论、点赞关系的拥有端，关联表的写入都经由这里完成。
type PostRepository interface {
	// CreatePost 插入帖子并写入 post_to_tag / post_to_category 关联。
	// - 作者与评论、点赞不会被级联写入，作者必须已存在。
	CreatePost(ctx context.Context, db *gorm.DB, post *entities.Post) error

	// GetPostByID 查询帖子详情，预加载作者、评论 (含评论者)、标签、分类、点赞用户。
	// - 不存在时返回 myErrors.ErrRepoNotFound。
	GetPostByID(ctx context.Context, id uint64) (*entities.Post, error)

	// GetPostsByIDs 批量查询 (列表视图需要的关联)，结果顺序与 ids 无关。
	GetPostsByIDs(ctx context.Context, ids []uint64) ([]*entities.Post, error)

	// ListPosts 按筛选条件分页，按 ID 降序 (新帖在前)。
	ListPosts(ctx context.Context, filter PostFilter) ([]*entities.Post, int64, error)

	// UpdatePost 更新标题、正文、发布状态、评论开关，并按实体当前的 Tags / Categories 整体替换关联。
	UpdatePost(ctx context.Context, db *gorm.DB, post *entities.Post) error

	// DeletePost 物理删除帖子，同一事务内级联删除评论、点赞与标签/分类关联。
	DeletePost(ctx context.Context, db *gorm.DB, id uint64) error

	// AddLike 写入点赞关系，重复点赞不报错。
	AddLike(ctx context.Context, postID, userID uint64) error

	// RemoveLike 删除点赞关系，本就不存在时不报错。
	RemoveLike(ctx context.Context, postID, userID uint64) error

	// TopLikedPosts 统计已发布帖子的点赞数，按点赞数降序取前 limit 条。
	TopLikedPosts(ctx context.Context, limit int) ([]PostLikeCount, error)
}

// postRepository 是 PostRepository 接口针对 MySQL 的具体实现。
type postRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewPostRepository 是 postRepository 的构造函数。
func NewPostRepository(db *gorm.DB, logger *core.ZapLogger) PostRepository {
	return &postRepository{db: db, logger: logger}
}

func (r *postRepository) CreatePost(ctx context.Context, db *gorm.DB, post *entities.Post) error {
	tx := db.WithContext(ctx)
	if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
		return translateError(err)
	}
	return replaceTaxonomies(tx, post)
}

func (r *postRepository) GetPostByID(ctx context.Context, id uint64) (*entities.Post, error) {
	var post entities.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("comments.id ASC") }).
		Preload("Comments.User").
		Preload("Tags").
		Preload("Categories").
		Preload("Likes").
		First(&post, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &post, nil
}

func (r *postRepository) GetPostsByIDs(ctx context.Context, ids []uint64) ([]*entities.Post, error) {
	if len(ids) == 0 {
		return []*entities.Post{}, nil
	}
	var posts []*entities.Post
	err := listPreloads(r.db.WithContext(ctx)).Where("id IN ?", ids).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) ListPosts(ctx context.Context, filter PostFilter) ([]*entities.Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&entities.Post{})
	if filter.Published != nil {
		query = query.Where("published = ?", *filter.Published)
	}
	if filter.Title != "" {
		query = query.Where("title LIKE ? ESCAPE '"+likeEscapeChar+"'", "%"+escapeLike(filter.Title)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Error("统计帖子数量失败", zap.Error(err))
		return nil, 0, err
	}
	if total == 0 {
		return []*entities.Post{}, 0, nil
	}

	var posts []*entities.Post
	err := listPreloads(query).
		Order("id DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&posts).Error
	if err != nil {
		r.logger.Error("查询帖子列表失败", zap.Error(err))
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) UpdatePost(ctx context.Context, db *gorm.DB, post *entities.Post) error {
	tx := db.WithContext(ctx)
	result := tx.Model(post).
		Select("title", "content", "published", "published_at", "comments_active").
		Updates(post)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRepoNotFound
	}
	return replaceTaxonomies(tx, post)
}

func (r *postRepository) DeletePost(ctx context.Context, db *gorm.DB, id uint64) error {
	tx := db.WithContext(ctx)
	var exists int64
	if err := tx.Model(&entities.Post{}).Where("id = ?", id).Count(&exists).Error; err != nil {
		return err
	}
	if exists == 0 {
		return myErrors.ErrRepoNotFound
	}
	if err := deletePostsCascade(tx, []uint64{id}); err != nil {
		r.logger.Error("级联删除帖子失败", zap.Uint64("postID", id), zap.Error(err))
		return err
	}
	return nil
}

func (r *postRepository) AddLike(ctx context.Context, postID, userID uint64) error {
	tx := r.db.WithContext(ctx)
	var count int64
	if err := tx.Table(likesTable).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	err := tx.Exec("INSERT INTO "+likesTable+" (post_id, user_id) VALUES (?, ?)", postID, userID).Error
	// 并发点赞时可能撞上联合主键，视为成功
	if err = translateError(err); errors.Is(err, myErrors.ErrDuplicateEntry) {
		return nil
	}
	return err
}

func (r *postRepository) RemoveLike(ctx context.Context, postID, userID uint64) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM "+likesTable+" WHERE post_id = ? AND user_id = ?", postID, userID).Error
}

func (r *postRepository) TopLikedPosts(ctx context.Context, limit int) ([]PostLikeCount, error) {
	var rows []PostLikeCount
	err := r.db.WithContext(ctx).
		Table(likesTable).
		Select(likesTable+".post_id AS post_id, COUNT(*) AS like_count").
		Joins("JOIN posts ON posts.id = "+likesTable+".post_id").
		Where("posts.published = ?", true).
		Group(likesTable + ".post_id").
		Order("like_count DESC, post_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// listPreloads 列表视图需要的关联
func listPreloads(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("Tags").Preload("Categories").Preload("Likes")
}

// replaceTaxonomies 以实体上的 Tags / Categories 为准重写两张关联表
func replaceTaxonomies(tx *gorm.DB, post *entities.Post) error {
	if err := tx.Exec("DELETE FROM "+postToTagTable+" WHERE post_id = ?", post.ID).Error; err != nil {
		return err
	}
	for _, t := range post.Tags {
		if err := tx.Exec("INSERT INTO "+postToTagTable+" (post_id, tag_id) VALUES (?, ?)", post.ID, t.ID).Error; err != nil {
			return translateError(err)
		}
	}
	if err := tx.Exec("DELETE FROM "+postToCategoryTable+" WHERE post_id = ?", post.ID).Error; err != nil {
		return err
	}
	for _, c := range post.Categories {
		if err := tx.Exec("INSERT INTO "+postToCategoryTable+" (post_id, category_id) VALUES (?, ?)", post.ID, c.ID).Error; err != nil {
			return translateError(err)
		}
	}
	return nil
}

// deletePostsCascade 删除帖子及其评论、点赞、标签/分类关联
func deletePostsCascade(tx *gorm.DB, postIDs []uint64) error {
	if len(postIDs) == 0 {
		return nil
	}
	if err := tx.Where("post_id IN ?", postIDs).Delete(&entities.Comment{}).Error; err != nil {
		return err
	}
	for _, table := range []string{likesTable, postToTagTable, postToCategoryTable} {
		if err := tx.Exec("DELETE FROM "+table+" WHERE post_id IN ?", postIDs).Error; err != nil {
			return err
		}
	}
	return tx.Where("id IN ?", postIDs).Delete(&entities.Post{}).Error
}
