package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/response"
	"github.com/Xushengqwer/blog_service/service"
)

// AuthController 登录
type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login 用户名或邮箱登录，返回访问令牌
// @Summary      登录
// @Description  使用用户名或邮箱加密码登录，成功后返回 Bearer 令牌并记录最近登录时间。
// @Tags         auth (认证)
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录请求"
// @Success      200 {object} vo.LoginResponseWrapper "登录成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      401 {object} vo.BaseResponseWrapper "用户名或密码错误"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求负载: "+err.Error())
		return
	}
	result, err := ctrl.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "登录")
		return
	}
	response.RespondSuccess(c, result, "登录成功")
}

func (ctrl *AuthController) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/auth/login", ctrl.Login)
}
