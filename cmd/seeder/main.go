package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	appConfig "github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/core"
	"github.com/Xushengqwer/blog_service/dependencies"
	"github.com/Xushengqwer/blog_service/mq/producer"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	redisRepo "github.com/Xushengqwer/blog_service/repo/redis"
	"github.com/Xushengqwer/blog_service/security"
	"github.com/Xushengqwer/blog_service/service"
)

func main() {
	var (
		configFile  string
		numUsers    int
		numPosts    int
		waitSeconds int
	)
	flag.StringVar(&configFile, "config", "config/config.development.yaml", "配置文件路径")
	flag.IntVar(&numUsers, "users", 5, "要生成的用户数量，第一个用户会被设为作者")
	flag.IntVar(&numPosts, "n", 20, "要生成的帖子数量")
	flag.IntVar(&waitSeconds, "wait", 3, "数据填充后等待异步 Kafka 事件发送的最长秒数")
	flag.Parse()

	if numUsers <= 0 || numPosts <= 0 {
		fmt.Println("错误: 用户数与帖子数必须大于 0")
		os.Exit(1)
	}
	if waitSeconds < 0 {
		fmt.Println("错误: 等待秒数不能为负")
		os.Exit(1)
	}

	absConfigFile, err := filepath.Abs(configFile)
	if err != nil {
		absConfigFile = configFile
	}

	// --- 1. 加载配置 ---
	var cfg appConfig.BlogConfig
	if err := core.LoadConfig(absConfigFile, &cfg); err != nil {
		fmt.Printf("加载配置失败 (%s): %v\n", absConfigFile, err)
		os.Exit(1)
	}
	if cfg.MySQLConfig.Write.DSN == "" {
		fmt.Println("警告: MySQL Write DSN 为空，请检查配置文件或 BLOG_MYSQLCONFIG_WRITE_DSN 环境变量")
	}

	// --- 2. 日志 ---
	logger, loggerErr := core.NewZapLogger(cfg.ZapConfig)
	if loggerErr != nil {
		fmt.Printf("初始化 ZapLogger 失败: %v\n", loggerErr)
		os.Exit(1)
	}
	defer func() { _ = logger.Logger().Sync() }()

	// --- 3. 依赖 ---
	db, err := dependencies.InitMySQL(&cfg, logger)
	if err != nil {
		logger.Fatal("初始化 MySQL 失败 (Seeder)", zap.Error(err))
	}
	rdb, err := dependencies.InitRedis(&cfg.RedisConfig, logger)
	if err != nil {
		logger.Fatal("初始化 Redis 失败 (Seeder)", zap.Error(err))
	}
	defer func() { _ = rdb.Close() }()

	var publisher service.EventPublisher
	if len(cfg.KafkaConfig.Brokers) > 0 {
		kafkaProducer := producer.NewKafkaProducer(cfg.KafkaConfig, logger)
		defer func() { _ = kafkaProducer.Close() }()
		publisher = kafkaProducer
	}

	hasher := security.NewArgon2Hasher(security.DefaultArgon2Params)

	userRepo := mysql.NewUserRepository(db, logger)
	postRepo := mysql.NewPostRepository(db, logger)
	tagRepo := mysql.NewTagRepository(db, logger)
	categoryRepo := mysql.NewCategoryRepository(db, logger)
	commentRepo := mysql.NewCommentRepository(db, logger)

	cleaner := redisRepo.NewNamespaceCleaner(rdb, cfg.CacheConfig.ScanBatchSize, logger)
	postCache := redisRepo.NewPostCache(rdb, cleaner, cfg.CacheConfig, logger)
	metaCache := redisRepo.NewMetadataCache(rdb, cfg.CacheConfig, logger)
	popularCache := redisRepo.NewPopularPostsCache(rdb, logger)

	s := &seeder{
		db:       db,
		userRepo: userRepo,
		users:    service.NewUserService(db, userRepo, metaCache, postCache, hasher, nil, 0, logger),
		posts:    service.NewPostService(db, postRepo, userRepo, tagRepo, categoryRepo, postCache, popularCache, publisher, logger),
		comments: service.NewCommentService(db, commentRepo, postRepo, userRepo, postCache, publisher, logger),
		taxonomy: service.NewTaxonomyService(db, tagRepo, categoryRepo, userRepo, metaCache, postCache, logger),
		logger:   logger,
	}

	// --- 4. 数据填充 ---
	ctx := context.Background()
	startTime := time.Now()
	if err := s.Seed(ctx, numUsers, numPosts, cfg.PopularPostsConfig.Size); err != nil {
		logger.Fatal("数据填充失败", zap.Error(err))
	}
	logger.Info("数据填充主要逻辑完成", zap.Duration("耗时", time.Since(startTime)))

	if publisher != nil && waitSeconds > 0 {
		logger.Info(fmt.Sprintf("最多等待 %d 秒以完成异步 Kafka 事件发送", waitSeconds))
		drainCtx, cancel := context.WithTimeout(ctx, time.Duration(waitSeconds)*time.Second)
		if err := s.drainEvents(drainCtx); err != nil {
			logger.Warn("部分领域事件未在等待时间内发送完成", zap.Error(err))
		}
		cancel()
	}
	fmt.Printf("数据填充完成！总耗时: %v\n", time.Since(startTime))
}
