package dependencies

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tencentyun/cos-go-sdk-v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/core"
)

// COSClientInterface 头像存储需要的对象存储操作
type COSClientInterface interface {
	// UploadFile 上传对象并返回公开访问地址，objectKey 由调用方生成
	UploadFile(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error)
	// DeleteObject 删除对象，对象不存在视为成功
	DeleteObject(ctx context.Context, objectKey string) error
	// ObjectKeyFromURL 把 UploadFile 返回的公开 URL 还原为对象键，不属于本存储桶时返回 false
	ObjectKeyFromURL(publicURL string) (string, bool)
}

type cosClient struct {
	client     *cos.Client
	publicBase *url.URL // 头像公开地址的前缀，CDN 或存储桶默认域名
	logger     *core.ZapLogger
}

// InitCOS 根据头像存储配置创建 COS 客户端，出站请求经 otelhttp 记录链路。
// 配置不完整时返回错误，调用方据此决定是否禁用头像上传。
func InitCOS(cfg *config.COSConfig, logger *core.ZapLogger) (COSClientInterface, error) {
	if cfg == nil {
		return nil, fmt.Errorf("头像存储配置 (avatarCosConfig) 为空")
	}
	var missing []string
	for name, v := range map[string]string{
		"secret_id": cfg.SecretID, "secret_key": cfg.SecretKey,
		"bucket_name": cfg.BucketName, "app_id": cfg.AppID, "region": cfg.Region,
	} {
		if v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("头像存储配置缺少字段: %s", strings.Join(missing, ", "))
	}

	bucketURL, err := cos.NewBucketURL(cfg.BucketName+"-"+cfg.AppID, cfg.Region, true)
	if err != nil {
		return nil, fmt.Errorf("构造存储桶地址失败: %w", err)
	}
	publicBase := bucketURL
	if cfg.BaseURL != "" {
		if publicBase, err = url.Parse(cfg.BaseURL); err != nil {
			return nil, fmt.Errorf("解析头像公开地址前缀 %q 失败: %w", cfg.BaseURL, err)
		}
	}

	c := newCOSClient(bucketURL, publicBase, cfg.SecretID, cfg.SecretKey, logger)
	logger.Info("头像存储客户端初始化成功",
		zap.String("bucket", bucketURL.Host),
		zap.String("publicBase", publicBase.String()))
	return c, nil
}

func newCOSClient(bucketURL, publicBase *url.URL, secretID, secretKey string, logger *core.ZapLogger) *cosClient {
	httpClient := &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  secretID,
			SecretKey: secretKey,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	return &cosClient{
		client:     cos.NewClient(&cos.BaseURL{BucketURL: bucketURL}, httpClient),
		publicBase: publicBase,
		logger:     logger,
	}
}

func (c *cosClient) UploadFile(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error) {
	opts := &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{
			ContentType:   contentType,
			ContentLength: size,
		},
	}
	// SDK 对非 2xx 响应直接返回 *cos.ErrorResponse
	resp, err := c.client.Object.Put(ctx, objectKey, reader, opts)
	if err != nil {
		c.logger.Error("上传头像到 COS 失败", zap.String("objectKey", objectKey), zap.Error(err))
		return "", fmt.Errorf("上传对象 %s 失败: %w", objectKey, err)
	}
	_ = resp.Body.Close()

	publicURL := c.publicURL(objectKey)
	c.logger.Debug("头像已上传", zap.String("objectKey", objectKey), zap.Int64("size", size), zap.String("url", publicURL))
	return publicURL, nil
}

func (c *cosClient) DeleteObject(ctx context.Context, objectKey string) error {
	resp, err := c.client.Object.Delete(ctx, objectKey)
	if err != nil {
		if cos.IsNotFoundError(err) {
			return nil
		}
		c.logger.Error("删除 COS 对象失败", zap.String("objectKey", objectKey), zap.Error(err))
		return fmt.Errorf("删除对象 %s 失败: %w", objectKey, err)
	}
	_ = resp.Body.Close()
	return nil
}

func (c *cosClient) ObjectKeyFromURL(publicURL string) (string, bool) {
	u, err := url.Parse(publicURL)
	if err != nil || u.Host != c.publicBase.Host {
		return "", false
	}
	key, found := strings.CutPrefix(u.Path, c.basePath())
	return key, found && key != ""
}

func (c *cosClient) publicURL(objectKey string) string {
	u := *c.publicBase
	u.Path = c.basePath() + strings.TrimPrefix(objectKey, "/")
	return u.String()
}

// basePath 公开地址前缀的路径部分，始终以 / 结尾
func (c *cosClient) basePath() string {
	p := c.publicBase.Path
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}
