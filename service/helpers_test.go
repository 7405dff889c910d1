package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/core"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/events"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/repo/mysql/mysqltest"
	"github.com/Xushengqwer/blog_service/repo/redis"
	"github.com/Xushengqwer/blog_service/security"
)

// testHasher 降低 argon2 成本，只用于测试
var testHasher = security.NewArgon2Hasher(security.Argon2Params{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  8,
	KeyLength:   16,
})

type recordingPublisher struct {
	mu        sync.Mutex
	published []events.PostPublishedEvent
	deleted   []uint64
	comments  []events.CommentCreatedEvent
}

func (p *recordingPublisher) SendPostPublishedEvent(_ context.Context, event events.PostPublishedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, event)
	return nil
}

func (p *recordingPublisher) SendPostDeletedEvent(_ context.Context, postID uint64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleted = append(p.deleted, postID)
	return nil
}

func (p *recordingPublisher) SendCommentCreatedEvent(_ context.Context, event events.CommentCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.comments = append(p.comments, event)
	return nil
}

type fakeCOS struct {
	mu       sync.Mutex
	uploaded []string
	deleted  chan string
}

func newFakeCOS() *fakeCOS {
	return &fakeCOS{deleted: make(chan string, 4)}
}

func (f *fakeCOS) UploadFile(_ context.Context, objectKey string, reader io.Reader, _ int64, _ string) (string, error) {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploaded = append(f.uploaded, objectKey)
	return "https://cdn.example.com/" + objectKey, nil
}

func (f *fakeCOS) DeleteObject(_ context.Context, objectKey string) error {
	f.deleted <- objectKey
	return nil
}

func (f *fakeCOS) ObjectKeyFromURL(publicURL string) (string, bool) {
	const base = "https://cdn.example.com/"
	if len(publicURL) <= len(base) || publicURL[:len(base)] != base {
		return "", false
	}
	return publicURL[len(base):], true
}

type testEnv struct {
	db        *gorm.DB
	mr        *miniredis.Miniredis
	publisher *recordingPublisher
	cos       *fakeCOS

	userRepo     mysql.UserRepository
	postRepo     mysql.PostRepository
	commentRepo  mysql.CommentRepository
	tagRepo      mysql.TagRepository
	categoryRepo mysql.CategoryRepository
	postCache    redis.PostCache
	metaCache    redis.MetadataCache
	popular      redis.PopularPostsCache
	cleaner      redis.NamespaceCleaner

	users      UserService
	auth       AuthService
	posts      PostService
	comments   CommentService
	taxonomies TaxonomyService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := mysqltest.NewDB(t)
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := core.NewNopLogger()
	cacheCfg := config.CacheConfig{PostDetailTTL: 60, PostListTTL: 60, TaxonomyTTL: 60}
	e := &testEnv{
		db:           db,
		mr:           mr,
		publisher:    &recordingPublisher{},
		cos:          newFakeCOS(),
		userRepo:     mysql.NewUserRepository(db, logger),
		postRepo:     mysql.NewPostRepository(db, logger),
		commentRepo:  mysql.NewCommentRepository(db, logger),
		tagRepo:      mysql.NewTagRepository(db, logger),
		categoryRepo: mysql.NewCategoryRepository(db, logger),
		cleaner:      redis.NewNamespaceCleaner(client, 10, logger),
	}
	e.postCache = redis.NewPostCache(client, e.cleaner, cacheCfg, logger)
	e.metaCache = redis.NewMetadataCache(client, cacheCfg, logger)
	e.popular = redis.NewPopularPostsCache(client, logger)

	e.users = NewUserService(db, e.userRepo, e.metaCache, e.postCache, testHasher, e.cos, 1024, logger)
	tokens := security.NewTokenManager("test-secret", time.Hour, "blog-test")
	e.auth = NewAuthService(e.userRepo, e.users, testHasher, tokens, logger)
	e.posts = NewPostService(db, e.postRepo, e.userRepo, e.tagRepo, e.categoryRepo, e.postCache, e.popular, e.publisher, logger)
	e.comments = NewCommentService(db, e.commentRepo, e.postRepo, e.userRepo, e.postCache, e.publisher, logger)
	e.taxonomies = NewTaxonomyService(db, e.tagRepo, e.categoryRepo, e.userRepo, e.metaCache, e.postCache, logger)
	return e
}

// user 直接落库一个用户，author 为 true 时具备 ROLE_AUTHOR
func (e *testEnv) user(t *testing.T, name string, author bool) *entities.User {
	t.Helper()
	u := entities.NewUser()
	u.Username = name
	u.Email = name + "@example.com"
	u.FirstName = name
	u.IsAuthor = author
	require.NoError(t, u.SetPassword(testHasher, "password-"+name))
	require.NoError(t, e.userRepo.CreateUser(context.Background(), e.db, u))
	return u
}

// waitEvents 等待异步派发的事件发送完毕
func (e *testEnv) waitEvents() {
	e.posts.(*postService).events.wait()
	e.comments.(*commentService).events.wait()
}

func boolPtr(b bool) *bool { return &b }
