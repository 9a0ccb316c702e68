package controllers

import (
	"net/http"

	"crisislink-http-service/config"
	"crisislink-http-service/models"
	"crisislink-http-service/services"
	"crisislink-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// AuthController 处理登录认证相关的请求
type AuthController struct {
	BaseControllerImpl
}

// NewAuthController 创建一个新的认证控制器
func (f *ControllerFactory) NewAuthController(ctx *gin.Context) *AuthController {
	return &AuthController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// LoginRequest 表示登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"zhangwei"`
	Password string `json:"password" binding:"required" example:"secret123"`
	UserType string `json:"userType" binding:"required" example:"people_in_crisis"` // people_in_crisis、volunteer、relief_provider、government_agency、admin
}

// Login 处理登录认证
// @Summary      用户登录
// @Description  按用户类型验证用户名密码，成功时返回用户ID
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "登录参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /auth/login [post]
func (c *AuthController) Login() {
	var req LoginRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的请求参数: " + err.Error(),
		})
		return
	}

	authenticated := false
	var userID uint

	switch req.UserType {
	case "people_in_crisis":
		personService := c.Container.GetService("person").(services.InterfacePersonService)
		if person, ok := personService.Authenticate(req.Username, req.Password); ok {
			authenticated = true
			userID = person.ID
		}
	case "volunteer":
		volunteerService := c.Container.GetService("volunteer").(services.InterfaceVolunteerService)
		if volunteer, ok := volunteerService.Authenticate(req.Username, req.Password); ok {
			authenticated = true
			userID = volunteer.ID
		}
	case "relief_provider":
		providerService := c.Container.GetService("relief_provider").(services.InterfaceReliefProviderService)
		if provider, ok := providerService.Authenticate(req.Username, req.Password); ok {
			authenticated = true
			userID = provider.ID
		}
	case "government_agency":
		agencyService := c.Container.GetService("agency").(services.InterfaceAgencyService)
		if agency, ok := agencyService.Authenticate(req.Username, req.Password); ok {
			authenticated = true
			userID = agency.ID
		}
	case "admin":
		adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
		if admin, ok := adminService.Authenticate(req.Username, req.Password); ok {
			authenticated = true
			userID = admin.ID
		}
	default:
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "未知的用户类型",
		})
		return
	}

	if !authenticated {
		// 记录失败事件，写入失败不影响响应
		securityService := c.Container.GetService("security").(services.InterfaceSecurityService)
		if err := securityService.LogEvent(models.SecurityEventFailedLogin, req.Username); err != nil {
			config.Warning("记录登录失败事件失败: %v", err)
		}

		c.Context.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Invalid credentials",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"userId":   userID,
		"userType": req.UserType,
	})
}

// HandleAuthFunc 返回一个处理认证请求的Gin处理函数
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewAuthController(ctx)

		switch method {
		case "login":
			controller.Login()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "无效的方法",
			})
		}
	}
}
