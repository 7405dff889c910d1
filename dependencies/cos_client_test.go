package dependencies

import (
	"context"
	"hash/crc64"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/core"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestCOSClient_PublicURLRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		base string
	}{
		{"bucket root", "https://blog-1250000000.cos.ap-guangzhou.myqcloud.com"},
		{"cdn with path", "https://cdn.example.com/static/"},
		{"cdn path without slash", "https://cdn.example.com/static"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := &cosClient{publicBase: mustParse(t, tc.base), logger: core.NewNopLogger()}

			public := c.publicURL("avatars/20250101/7_abc.png")
			assert.True(t, strings.HasPrefix(public, strings.TrimSuffix(tc.base, "/")+"/avatars/"))
			key, ok := c.ObjectKeyFromURL(public)
			assert.True(t, ok)
			assert.Equal(t, "avatars/20250101/7_abc.png", key)
		})
	}
}

func TestCOSClient_ObjectKeyFromForeignURL(t *testing.T) {
	c := &cosClient{publicBase: mustParse(t, "https://cdn.example.com/static"), logger: core.NewNopLogger()}

	for _, raw := range []string{
		"https://gravatar.com/avatar/abc",
		"https://cdn.example.com/other/a.png",
		"https://cdn.example.com/static/",
		"",
	} {
		_, ok := c.ObjectKeyFromURL(raw)
		assert.False(t, ok, raw)
	}
}

// fakeBucket 模拟 COS 对象接口的最小子集
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	failPut bool
}

func (b *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := strings.TrimPrefix(r.URL.Path, "/")
	switch r.Method {
	case http.MethodPut:
		if b.failPut {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusForbidden)
			_, _ = io.WriteString(w, `<Error><Code>AccessDenied</Code><Message>denied</Message></Error>`)
			return
		}
		body, _ := io.ReadAll(r.Body)
		b.objects[key] = body
		// SDK 默认开启 CRC64 校验
		w.Header().Set("x-cos-hash-crc64ecma", strconv.FormatUint(crc64.Checksum(body, crc64.MakeTable(crc64.ECMA)), 10))
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		if _, ok := b.objects[key]; !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<Error><Code>NoSuchKey</Code><Message>not found</Message></Error>`)
			return
		}
		delete(b.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newFakeBucketClient(t *testing.T) (*cosClient, *fakeBucket) {
	t.Helper()
	bucket := &fakeBucket{objects: map[string][]byte{}}
	srv := httptest.NewServer(bucket)
	t.Cleanup(srv.Close)
	c := newCOSClient(mustParse(t, srv.URL), mustParse(t, "https://cdn.example.com/"), "id", "key", core.NewNopLogger())
	return c, bucket
}

func TestCOSClient_UploadAndDelete(t *testing.T) {
	c, bucket := newFakeBucketClient(t)
	ctx := context.Background()

	publicURL, err := c.UploadFile(ctx, "avatars/1.png", strings.NewReader("png"), 3, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/avatars/1.png", publicURL)
	assert.Equal(t, []byte("png"), bucket.objects["avatars/1.png"])

	require.NoError(t, c.DeleteObject(ctx, "avatars/1.png"))
	assert.Empty(t, bucket.objects)

	// 已经不存在的对象
	assert.NoError(t, c.DeleteObject(ctx, "avatars/1.png"))
}

func TestCOSClient_UploadRejected(t *testing.T) {
	c, bucket := newFakeBucketClient(t)
	bucket.failPut = true

	_, err := c.UploadFile(context.Background(), "avatars/2.png", strings.NewReader("png"), 3, "image/png")
	assert.Error(t, err)
}

func TestInitCOS_IncompleteConfig(t *testing.T) {
	_, err := InitCOS(&config.COSConfig{SecretID: "id", Region: "ap-guangzhou"}, core.NewNopLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket_name")

	_, err = InitCOS(nil, core.NewNopLogger())
	assert.Error(t, err)

	c, err := InitCOS(&config.COSConfig{
		SecretID: "id", SecretKey: "key", BucketName: "blog", AppID: "1250000000", Region: "ap-guangzhou",
	}, core.NewNopLogger())
	require.NoError(t, err)
	key, ok := c.ObjectKeyFromURL("https://blog-1250000000.cos.ap-guangzhou.myqcloud.com/avatars/a.png")
	assert.True(t, ok)
	assert.Equal(t, "avatars/a.png", key)
}
