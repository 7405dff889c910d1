package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/core"
	"github.com/Xushengqwer/blog_service/repo/redis"
)

// CacheClearStep 是 blog:cache:clear 的一个步骤
type CacheClearStep struct {
	Name string
	Run  func(ctx context.Context) error
}

// StepFailedError 记录失败的步骤与退出码
type StepFailedError struct {
	Step string
	Code int
	Err  error
}

func (e *StepFailedError) Error() string {
	return fmt.Sprintf("步骤 %s 执行失败(退出码 %d): %v", e.Step, e.Code, e.Err)
}

func (e *StepFailedError) Unwrap() error { return e.Err }

// ExitCode 供命令行入口作为进程退出码
func (e *StepFailedError) ExitCode() int { return e.Code }

// exitCoder 由需要自定义退出码的步骤错误实现
type exitCoder interface {
	ExitCode() int
}

// CacheClearer 依次执行清理步骤，遇到第一个失败即停止。
// 已完成的步骤不会回滚，失败也不会重试。
type CacheClearer struct {
	steps  []CacheClearStep
	logger *core.ZapLogger
}

func NewCacheClearer(steps []CacheClearStep, logger *core.ZapLogger) *CacheClearer {
	return &CacheClearer{steps: steps, logger: logger}
}

// NewDefaultCacheClearer 按四个 Redis 命名空间依次清理
func NewDefaultCacheClearer(cleaner redis.NamespaceCleaner, logger *core.ZapLogger) *CacheClearer {
	return NewCacheClearer(DefaultCacheClearSteps(cleaner, logger), logger)
}

// DefaultCacheClearSteps 应用缓存、查询结果、元数据、查询派生数据
func DefaultCacheClearSteps(cleaner redis.NamespaceCleaner, logger *core.ZapLogger) []CacheClearStep {
	namespaces := []struct {
		name   string
		prefix string
	}{
		{"cache:clear", constant.NamespaceApp},
		{"cache:clear-result", constant.NamespaceResult},
		{"cache:clear-metadata", constant.NamespaceMetadata},
		{"cache:clear-query", constant.NamespaceQuery},
	}
	steps := make([]CacheClearStep, 0, len(namespaces))
	for _, ns := range namespaces {
		ns := ns
		steps = append(steps, CacheClearStep{
			Name: ns.name,
			Run: func(ctx context.Context) error {
				n, err := cleaner.DeleteByPrefix(ctx, ns.prefix)
				if err != nil {
					return err
				}
				logger.Info("命名空间已清理", zap.String("prefix", ns.prefix), zap.Int64("deleted", n))
				return nil
			},
		})
	}
	return steps
}

// Run 每执行一个步骤向 w 写入一行 "Executing <name>"
func (c *CacheClearer) Run(ctx context.Context, w io.Writer) error {
	for _, step := range c.steps {
		if _, err := fmt.Fprintf(w, "Executing %s\n", step.Name); err != nil {
			return fmt.Errorf("写入输出失败: %w", err)
		}
		if err := step.Run(ctx); err != nil {
			code := 1
			var ec exitCoder
			if errors.As(err, &ec) && ec.ExitCode() != 0 {
				code = ec.ExitCode()
			}
			c.logger.Error("缓存清理步骤失败", zap.String("step", step.Name), zap.Int("exitCode", code), zap.Error(err))
			return &StepFailedError{Step: step.Name, Code: code, Err: err}
		}
	}
	c.logger.Info("缓存清理完成", zap.Int("steps", len(c.steps)))
	return nil
}
