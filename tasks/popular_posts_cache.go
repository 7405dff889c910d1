package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/core"
)

// PopularPostsRefresher 由 service.PostService 实现
type PopularPostsRefresher interface {
	RefreshPopularPosts(ctx context.Context, size int) error
}

// PopularPostsCacheTask 定时重建 blog:query:popular_posts 榜单。
// 上一次执行尚未结束时跳过本次调度。
type PopularPostsCacheTask struct {
	refresher PopularPostsRefresher
	size      int
	schedule  string
	cron      *cron.Cron
	logger    *core.ZapLogger
}

// NewPopularPostsCacheTask 注册 cron 作业但不启动，调用 Start 后开始调度
func NewPopularPostsCacheTask(refresher PopularPostsRefresher, cfg config.PopularPostsConfig, logger *core.ZapLogger) (*PopularPostsCacheTask, error) {
	schedule := cfg.CronSpec
	if schedule == "" {
		schedule = constant.PopularPostsCronSpec
	}
	size := cfg.Size
	if size <= 0 {
		size = constant.PopularPostsDefaultSize
	}

	t := &PopularPostsCacheTask{
		refresher: refresher,
		size:      size,
		schedule:  schedule,
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger,
	}
	if _, err := t.cron.AddFunc(schedule, t.run); err != nil {
		return nil, fmt.Errorf("注册热门帖子刷新任务失败 (schedule=%s): %w", schedule, err)
	}
	return t, nil
}

// Start 先同步刷新一次，使榜单在服务启动后立即可用，然后开始周期调度
func (t *PopularPostsCacheTask) Start() {
	t.run()
	t.cron.Start()
	t.logger.Info("热门帖子刷新任务已启动", zap.String("schedule", t.schedule), zap.Int("size", t.size))
}

func (t *PopularPostsCacheTask) run() {
	ctx, cancel := context.WithTimeout(context.Background(), constant.PopularPostsTaskTimeout)
	defer cancel()
	if err := t.RunOnce(ctx); err != nil {
		t.logger.Error("刷新热门帖子榜单失败", zap.Error(err))
	}
}

// RunOnce 执行一次刷新
func (t *PopularPostsCacheTask) RunOnce(ctx context.Context) error {
	start := time.Now()
	if err := t.refresher.RefreshPopularPosts(ctx, t.size); err != nil {
		return err
	}
	t.logger.Debug("热门帖子榜单已刷新", zap.Duration("duration", time.Since(start)))
	return nil
}

// Stop 停止调度，返回的 context 在正在执行的任务结束后完成
func (t *PopularPostsCacheTask) Stop() context.Context {
	t.logger.Info("正在停止热门帖子刷新任务...")
	return t.cron.Stop()
}
