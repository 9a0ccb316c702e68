package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"crisislink-http-service/services"
	"crisislink-http-service/services/container"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SecurityController 处理安全审计与账号审核相关的请求
type SecurityController struct {
	BaseControllerImpl
}

// NewSecurityController 创建一个新的安全控制器
func (f *ControllerFactory) NewSecurityController(ctx *gin.Context) *SecurityController {
	return &SecurityController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// UpdateSecuritySettingsRequest 表示更新安全设置的请求
type UpdateSecuritySettingsRequest struct {
	TwoFactorEnabled *bool `json:"two_factor_enabled"`
	MaxLoginAttempts *int  `json:"max_login_attempts"`
	SessionTimeout   *int  `json:"session_timeout"`
	IPRestriction    *bool `json:"ip_restriction"`
}

// VerifyAccountRequest 表示账号审核的请求
type VerifyAccountRequest struct {
	Status string `json:"status" binding:"required" example:"approved"` // approved 之外的值一律视为驳回
	Notes  string `json:"notes" example:"Documents checked"`
}

func (c *SecurityController) securityService() services.InterfaceSecurityService {
	return c.Container.GetService("security").(services.InterfaceSecurityService)
}

// GetLogs 处理获取安全事件记录
// @Summary      获取安全事件记录
// @Tags         Security
// @Produce      json
// @Param        limit query int false "返回条数，默认100"
// @Success      200  {object}  map[string]interface{}
// @Router       /security/logs [get]
func (c *SecurityController) GetLogs() {
	limit := 0
	if raw := c.Context.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.Context.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "无效的limit参数",
			})
			return
		}
		limit = parsed
	}

	logs, err := c.securityService().GetSecurityLogs(limit)
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "获取安全事件记录失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"logs": logs,
	})
}

// GetStatus 处理获取安全状况汇总
// @Summary      获取安全状况汇总
// @Tags         Security
// @Produce      json
// @Success      200  {object}  services.SecurityStatus
// @Router       /security/status [get]
func (c *SecurityController) GetStatus() {
	status, err := c.securityService().GetSecurityStatus()
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "获取安全状况失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, status)
}

// UpdateSettings 处理更新安全设置
// @Summary      更新安全设置
// @Tags         Security
// @Accept       json
// @Produce      json
// @Param        request body UpdateSecuritySettingsRequest true "安全设置参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /security/settings [put]
func (c *SecurityController) UpdateSettings() {
	var req UpdateSecuritySettingsRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的请求参数: " + err.Error(),
		})
		return
	}

	updates := make(map[string]interface{})
	if req.TwoFactorEnabled != nil {
		updates["two_factor_enabled"] = *req.TwoFactorEnabled
	}
	if req.MaxLoginAttempts != nil {
		updates["max_login_attempts"] = *req.MaxLoginAttempts
	}
	if req.SessionTimeout != nil {
		updates["session_timeout"] = *req.SessionTimeout
	}
	if req.IPRestriction != nil {
		updates["ip_restriction"] = *req.IPRestriction
	}

	settings, err := c.securityService().UpdateSecuritySettings(updates)
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update security settings",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"settings": settings,
	})
}

// GetPendingVerifications 处理获取待审核账号列表
// @Summary      获取待审核账号列表
// @Tags         Security
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /security/verifications [get]
func (c *SecurityController) GetPendingVerifications() {
	verifications, err := c.securityService().GetPendingVerifications()
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "获取待审核账号失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"verifications": verifications,
	})
}

// VerifyAccount 处理账号审核
// @Summary      审核账号
// @Description  通过时同步把对应用户标记为已认证
// @Tags         Security
// @Accept       json
// @Produce      json
// @Param        id path int true "审核记录ID"
// @Param        request body VerifyAccountRequest true "审核参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /security/verify/{id} [post]
func (c *SecurityController) VerifyAccount() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的审核记录ID",
		})
		return
	}

	var req VerifyAccountRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的请求参数: " + err.Error(),
		})
		return
	}

	approved := req.Status == "approved"

	if err := c.securityService().VerifyAccount(uint(id), approved, req.Notes); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Context.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Verification record not found",
			})
			return
		}
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to verify account",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// HandleSecurityFunc 返回一个处理安全请求的Gin处理函数
func HandleSecurityFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewSecurityController(ctx)

		switch method {
		case "getLogs":
			controller.GetLogs()
		case "getStatus":
			controller.GetStatus()
		case "updateSettings":
			controller.UpdateSettings()
		case "getPendingVerifications":
			controller.GetPendingVerifications()
		case "verifyAccount":
			controller.VerifyAccount()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "无效的方法",
			})
		}
	}
}
