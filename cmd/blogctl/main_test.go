package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/blog_service/service"
)

func writeConfig(t *testing.T, redisAddr string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := fmt.Sprintf(`zapConfig:
  level: error
  encoding: json
  outputPaths: ["stderr"]
redisConfig:
  address: %q
cacheConfig:
  scanBatchSize: 10
`, redisAddr)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_UnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), "unused.yaml", []string{"blog:nope"}, &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), cacheClearCommand)
}

func TestRun_CacheClear(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.Set("blog:app:post:1", "x")
	mr.Set("blog:result:posts:page=1", "x")
	mr.Set("blog:metadata:tags", "x")
	_, err := mr.ZAdd("blog:query:popular_posts", 3, "1")
	require.NoError(t, err)
	mr.Set("other:key", "keep")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), writeConfig(t, mr.Addr()), []string{cacheClearCommand}, &stdout, &stderr)

	assert.Equal(t, 0, code, stderr.String())
	assert.Equal(t,
		"Executing cache:clear\nExecuting cache:clear-result\nExecuting cache:clear-metadata\nExecuting cache:clear-query\n",
		stdout.String())
	assert.Equal(t, []string{"other:key"}, mr.Keys())
}

func TestRun_MissingConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"), []string{cacheClearCommand}, &stdout, &stderr)
	assert.Equal(t, 1, code)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 4, exitCode(&service.StepFailedError{Step: "cache:clear-query", Code: 4, Err: errors.New("boom")}))
	assert.Equal(t, 1, exitCode(&service.StepFailedError{Step: "cache:clear", Code: 0, Err: errors.New("boom")}))
	assert.Equal(t, 1, exitCode(errors.New("plain")))
}
