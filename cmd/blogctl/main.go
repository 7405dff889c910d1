package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	appConfig "github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/core"
	"github.com/Xushengqwer/blog_service/dependencies"
	redisRepo "github.com/Xushengqwer/blog_service/repo/redis"
	"github.com/Xushengqwer/blog_service/service"
)

const cacheClearCommand = "blog:cache:clear"

func main() {
	var configFile string
	flag.StringVar(&configFile, "config", "config/config.development.yaml", "配置文件路径")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "用法: blogctl [-config 路径] %s\n", cacheClearCommand)
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, configFile, flag.Args(), os.Stdout, os.Stderr))
}

// run 执行子命令并返回进程退出码
func run(ctx context.Context, configFile string, args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 || args[0] != cacheClearCommand {
		fmt.Fprintf(stderr, "未知命令 %q，可用命令: %s\n", args, cacheClearCommand)
		return 2
	}

	var cfg appConfig.BlogConfig
	if err := core.LoadConfig(configFile, &cfg); err != nil {
		fmt.Fprintf(stderr, "加载配置失败 (%s): %v\n", configFile, err)
		return 1
	}
	logger, err := core.NewZapLogger(cfg.ZapConfig)
	if err != nil {
		fmt.Fprintf(stderr, "初始化 ZapLogger 失败: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Logger().Sync() }()

	rdb, err := dependencies.InitRedis(&cfg.RedisConfig, logger)
	if err != nil {
		fmt.Fprintf(stderr, "连接 Redis 失败: %v\n", err)
		return 1
	}
	defer func() { _ = rdb.Close() }()

	cleaner := redisRepo.NewNamespaceCleaner(rdb, cfg.CacheConfig.ScanBatchSize, logger)
	if err := service.NewDefaultCacheClearer(cleaner, logger).Run(ctx, stdout); err != nil {
		fmt.Fprintln(stderr, err)
		return exitCode(err)
	}
	return 0
}

func exitCode(err error) int {
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) && coded.ExitCode() != 0 {
		return coded.ExitCode()
	}
	return 1
}
