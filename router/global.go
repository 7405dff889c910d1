package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	appConfig "github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/core"
	"github.com/Xushengqwer/blog_service/middleware"
	"github.com/Xushengqwer/blog_service/security"
)

// RouteRegistrar 由各个控制器实现
type RouteRegistrar interface {
	RegisterRoutes(group *gin.RouterGroup)
}

// SetupRouter 配置 Gin 引擎、全局中间件与路由。中间件顺序:
// otelgin → panic 恢复 → 访问日志 → CORS → 超时 → 令牌解析。
func SetupRouter(
	logger *core.ZapLogger,
	cfg *appConfig.BlogConfig,
	tokens *security.TokenManager,
	controllers ...RouteRegistrar,
) *gin.Engine {
	router := gin.New()

	router.Use(otelgin.Middleware(constant.ServiceName))
	router.Use(middleware.ErrorHandlingMiddleware(logger))
	router.Use(middleware.RequestLoggerMiddleware(logger.Logger()))
	router.Use(cors.New(corsConfig(cfg.ServerConfig.AllowOrigins)))

	requestTimeout := time.Duration(cfg.ServerConfig.RequestTimeout) * time.Second
	router.Use(middleware.RequestTimeoutMiddleware(logger, requestTimeout))
	router.Use(middleware.UserContextMiddleware(tokens))

	v1 := router.Group("/api/v1/blog")
	for _, c := range controllers {
		c.RegisterRoutes(v1)
	}
	logger.Info("所有控制器路由已注册到 /api/v1/blog 分组")

	swaggerURL := ginSwagger.URL("/swagger/doc.json")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, swaggerURL))

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

// corsConfig 未配置白名单时允许所有来源 (此时不允许携带凭证)
func corsConfig(allowOrigins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(allowOrigins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = allowOrigins
	c.AllowCredentials = true
	return c
}
