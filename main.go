package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	appConfig "github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/controller"
	"github.com/Xushengqwer/blog_service/core"
	"github.com/Xushengqwer/blog_service/core/tracing"
	"github.com/Xushengqwer/blog_service/dependencies"
	_ "github.com/Xushengqwer/blog_service/docs"
	"github.com/Xushengqwer/blog_service/mq/consumer"
	"github.com/Xushengqwer/blog_service/mq/producer"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	redisrepo "github.com/Xushengqwer/blog_service/repo/redis"
	"github.com/Xushengqwer/blog_service/router"
	"github.com/Xushengqwer/blog_service/security"
	"github.com/Xushengqwer/blog_service/service"
	"github.com/Xushengqwer/blog_service/tasks"
)

// @title           Blog Service API
// @version         1.0
// @description     博客服务，提供用户、帖子、评论、标签与分类的 REST 接口。

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 格式: Bearer <token>
func main() {
	var configFile string
	flag.StringVar(&configFile, "config", "config/config.development.yaml", "Path to configuration file")
	flag.Parse()

	// .env 只在本地开发时存在，缺失不是错误
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("WARN: 读取 .env 失败: %v", err)
	}

	// 1. 加载配置
	var cfg appConfig.BlogConfig
	if err := core.LoadConfig(configFile, &cfg); err != nil {
		log.Fatalf("FATAL: 加载配置失败 (%s): %v", configFile, err)
	}
	if configBytes, err := json.MarshalIndent(cfg, "", "  "); err == nil {
		log.Printf("配置加载成功，最终生效的配置如下:\n%s\n", string(configBytes))
	}

	// 2. 初始化 Logger
	logger, loggerErr := core.NewZapLogger(cfg.ZapConfig)
	if loggerErr != nil {
		log.Fatalf("FATAL: 初始化 ZapLogger 失败: %v", loggerErr)
	}
	defer func() {
		if err := logger.Logger().Sync(); err != nil {
			log.Printf("WARN: ZapLogger Sync 失败: %v\n", err)
		}
	}()
	logger.Info("Logger 初始化成功")

	// 3. 分布式追踪
	if cfg.TracerConfig.Enabled {
		tracerShutdown, err := tracing.InitTracerProvider(constant.ServiceName, constant.ServiceVersion, cfg.TracerConfig)
		if err != nil {
			logger.Fatal("初始化 TracerProvider 失败", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracerShutdown(ctx); err != nil {
				logger.Error("关闭 TracerProvider 失败", zap.Error(err))
			}
		}()
		logger.Info("分布式追踪已初始化", zap.String("exporter", cfg.TracerConfig.Exporter))
	} else {
		logger.Info("分布式追踪已禁用")
	}

	// 4. 核心依赖
	db, err := dependencies.InitMySQL(&cfg, logger)
	if err != nil {
		logger.Fatal("初始化 MySQL 数据库失败", zap.Error(err))
	}
	rdb, err := dependencies.InitRedis(&cfg.RedisConfig, logger)
	if err != nil {
		logger.Fatal("初始化 Redis 失败", zap.Error(err))
	}
	defer func() { _ = rdb.Close() }()

	// COS 只服务头像上传，未配置时上传接口返回 503，其他功能不受影响
	cosClient, err := dependencies.InitCOS(&cfg.COSConfig, logger)
	if err != nil {
		logger.Warn("COS 客户端未启用，头像上传不可用", zap.Error(err))
		cosClient = nil
	}

	var publisher service.EventPublisher
	var kafkaProducer *producer.KafkaProducer
	if len(cfg.KafkaConfig.Brokers) > 0 {
		kafkaProducer = producer.NewKafkaProducer(cfg.KafkaConfig, logger)
		publisher = kafkaProducer
		logger.Info("Kafka 生产者已初始化")
	} else {
		logger.Warn("未配置 Kafka brokers，领域事件不会发送")
	}

	tokens := security.NewTokenManager(
		cfg.AuthConfig.JWTSecret,
		time.Duration(cfg.AuthConfig.AccessTokenTTL)*time.Minute,
		cfg.AuthConfig.Issuer,
	)
	hasher := security.NewArgon2Hasher(security.DefaultArgon2Params)

	// 5. 数据仓库层
	userRepo := mysql.NewUserRepository(db, logger)
	postRepo := mysql.NewPostRepository(db, logger)
	commentRepo := mysql.NewCommentRepository(db, logger)
	tagRepo := mysql.NewTagRepository(db, logger)
	categoryRepo := mysql.NewCategoryRepository(db, logger)

	cleaner := redisrepo.NewNamespaceCleaner(rdb, cfg.CacheConfig.ScanBatchSize, logger)
	postCache := redisrepo.NewPostCache(rdb, cleaner, cfg.CacheConfig, logger)
	metaCache := redisrepo.NewMetadataCache(rdb, cfg.CacheConfig, logger)
	popularCache := redisrepo.NewPopularPostsCache(rdb, logger)

	// 6. 服务层
	userService := service.NewUserService(db, userRepo, metaCache, postCache, hasher, cosClient, cfg.COSConfig.MaxAvatarBytes, logger)
	authService := service.NewAuthService(userRepo, userService, hasher, tokens, logger)
	postService := service.NewPostService(db, postRepo, userRepo, tagRepo, categoryRepo, postCache, popularCache, publisher, logger)
	commentService := service.NewCommentService(db, commentRepo, postRepo, userRepo, postCache, publisher, logger)
	taxonomyService := service.NewTaxonomyService(db, tagRepo, categoryRepo, userRepo, metaCache, postCache, logger)

	// 7. Kafka 消费者
	var consumers []*consumer.Consumer
	var consumerWg sync.WaitGroup
	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	defer consumerCancel()

	if len(cfg.KafkaConfig.Brokers) > 0 {
		groupID := cfg.KafkaConfig.ConsumerGroupID
		if groupID == "" {
			groupID = "blog_service_group"
			logger.Warn("Kafka ConsumerGroupID 未配置，使用默认值", zap.String("groupID", groupID))
		}
		subscriptions := []struct {
			topic   string
			handler consumer.MessageHandler
		}{
			{cfg.KafkaConfig.Topics.CommentAuditApproved, consumer.NewApprovedAuditHandler(commentService, logger)},
			{cfg.KafkaConfig.Topics.CommentAuditRejected, consumer.NewRejectedAuditHandler(commentService, logger)},
			{cfg.KafkaConfig.Topics.UserLoggedIn, consumer.NewLoginEventHandler(userService, logger)},
		}
		for _, sub := range subscriptions {
			if sub.topic == "" {
				continue
			}
			c, err := consumer.NewConsumer(&cfg.KafkaConfig, groupID, sub.topic, sub.handler, logger)
			if err != nil {
				logger.Fatal("初始化 Kafka 消费者失败", zap.String("topic", sub.topic), zap.Error(err))
			}
			consumers = append(consumers, c)
		}
		logger.Info(fmt.Sprintf("准备启动 %d 个 Kafka 消费者", len(consumers)))
		for _, c := range consumers {
			c := c
			consumerWg.Add(1)
			go func() {
				defer consumerWg.Done()
				c.Start(consumerCtx)
			}()
		}
	} else {
		logger.Warn("Kafka Brokers 未配置，跳过所有 Kafka 消费者初始化")
	}

	// 8. 定时任务
	popularTask, err := tasks.NewPopularPostsCacheTask(postService, cfg.PopularPostsConfig, logger)
	if err != nil {
		logger.Fatal("初始化热门帖子任务失败", zap.Error(err))
	}
	popularTask.Start()

	// 9. 路由与 HTTP 服务器
	ginRouter := router.SetupRouter(logger, &cfg, tokens,
		controller.NewAuthController(authService),
		controller.NewUserController(userService),
		controller.NewPostController(postService),
		controller.NewCommentController(commentService),
		controller.NewTaxonomyController(taxonomyService),
	)

	serverAddr := fmt.Sprintf(":%s", cfg.ServerConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: ginRouter,
	}
	go func() {
		logger.Info("HTTP 服务器开始监听", zap.String("address", serverAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP 服务器启动失败", zap.Error(err))
		}
	}()

	// 10. 优雅关停
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	logger.Info("收到关停信号，开始优雅退出", zap.String("signal", receivedSignal.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("关闭 HTTP 服务器失败", zap.Error(err))
	}

	consumerCancel()
	consumerWg.Wait()
	for _, c := range consumers {
		if err := c.Close(); err != nil {
			logger.Error("关闭 Kafka 消费者失败", zap.Error(err))
		}
	}

	select {
	case <-popularTask.Stop().Done():
		logger.Info("热门帖子任务已停止")
	case <-shutdownCtx.Done():
		logger.Error("等待定时任务停止超时", zap.Error(shutdownCtx.Err()))
	}

	// 在途事件发送完成后才能关闭生产者
	for name, drainer := range map[string]interface {
		DrainEvents(ctx context.Context) error
	}{"post": postService, "comment": commentService} {
		if err := drainer.DrainEvents(shutdownCtx); err != nil {
			logger.Error("等待领域事件发送超时", zap.String("service", name), zap.Error(err))
		}
	}

	if kafkaProducer != nil {
		if err := kafkaProducer.Close(); err != nil {
			logger.Error("关闭 Kafka 生产者失败", zap.Error(err))
		}
	}
	logger.Info("服务已成功关闭")
}
