package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"crisislink-http-service/models"
	"crisislink-http-service/services"
	"crisislink-http-service/services/container"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReliefProviderController 处理救援物资提供方相关的请求
type ReliefProviderController struct {
	BaseControllerImpl
}

// NewReliefProviderController 创建一个新的救援物资提供方控制器
func (f *ControllerFactory) NewReliefProviderController(ctx *gin.Context) *ReliefProviderController {
	return &ReliefProviderController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// ReliefProviderSignupRequest 表示救援物资提供方注册请求
type ReliefProviderSignupRequest struct {
	Name     string `json:"name" binding:"required" example:"Red Cross East"`
	OrgType  string `json:"org_type" example:"NGO"`
	Location string `json:"location" example:"East Warehouse"`
	Username string `json:"username" binding:"required" example:"redcross_east"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// UpdateReliefProviderRequest 表示更新救援物资提供方的请求
type UpdateReliefProviderRequest struct {
	Name     *string `json:"name"`
	OrgType  *string `json:"org_type"`
	Location *string `json:"location"`
	Verified *bool   `json:"verified"`
}

// SignUp 处理救援物资提供方注册
// @Summary      救援物资提供方注册
// @Tags         ReliefProvider
// @Accept       json
// @Produce      json
// @Param        request body ReliefProviderSignupRequest true "注册参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /relief-providers/signup [post]
func (c *ReliefProviderController) SignUp() {
	var req ReliefProviderSignupRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的请求参数: " + err.Error(),
		})
		return
	}

	providerService := c.Container.GetService("relief_provider").(services.InterfaceReliefProviderService)

	provider := &models.ReliefProvider{
		Name:     req.Name,
		OrgType:  req.OrgType,
		Location: req.Location,
		Username: req.Username,
		Password: req.Password,
	}

	if err := providerService.Register(provider); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Failed to sign up relief provider.",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
		"id":     provider.ID,
	})
}

// GetAllProviders 处理获取所有救援物资提供方
// @Summary      获取所有救援物资提供方
// @Tags         ReliefProvider
// @Produce      json
// @Success      200  {array}  models.ReliefProvider
// @Router       /relief-providers [get]
func (c *ReliefProviderController) GetAllProviders() {
	providerService := c.Container.GetService("relief_provider").(services.InterfaceReliefProviderService)

	providers, err := providerService.GetAllProviders()
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "获取救援物资提供方列表失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, providers)
}

// GetProviderByID 处理按ID获取救援物资提供方
// @Summary      获取单个救援物资提供方
// @Tags         ReliefProvider
// @Produce      json
// @Param        id path int true "提供方ID"
// @Success      200  {object}  models.ReliefProvider
// @Failure      404  {object}  map[string]interface{}
// @Router       /relief-providers/{id} [get]
func (c *ReliefProviderController) GetProviderByID() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的提供方ID",
		})
		return
	}

	providerService := c.Container.GetService("relief_provider").(services.InterfaceReliefProviderService)

	provider, err := providerService.GetProviderByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Context.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Relief provider not found",
			})
			return
		}
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "获取救援物资提供方失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, provider)
}

// UpdateProvider 处理更新救援物资提供方
// @Summary      更新救援物资提供方
// @Tags         ReliefProvider
// @Accept       json
// @Produce      json
// @Param        id path int true "提供方ID"
// @Param        request body UpdateReliefProviderRequest true "更新参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /relief-providers/{id} [put]
func (c *ReliefProviderController) UpdateProvider() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的提供方ID",
		})
		return
	}

	var req UpdateReliefProviderRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的请求参数: " + err.Error(),
		})
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.OrgType != nil {
		updates["org_type"] = *req.OrgType
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Verified != nil {
		updates["verified"] = *req.Verified
	}

	providerService := c.Container.GetService("relief_provider").(services.InterfaceReliefProviderService)

	if _, err := providerService.UpdateProvider(uint(id), updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Context.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Relief provider not found",
			})
			return
		}
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "更新救援物资提供方失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// DeleteProvider 处理删除救援物资提供方
// @Summary      删除救援物资提供方
// @Tags         ReliefProvider
// @Produce      json
// @Param        id path int true "提供方ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /relief-providers/{id} [delete]
func (c *ReliefProviderController) DeleteProvider() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的提供方ID",
		})
		return
	}

	providerService := c.Container.GetService("relief_provider").(services.InterfaceReliefProviderService)

	if err := providerService.DeleteProvider(uint(id)); err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete relief provider",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// HandleReliefProviderFunc 返回一个处理救援物资提供方请求的Gin处理函数
func HandleReliefProviderFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewReliefProviderController(ctx)

		switch method {
		case "signUp":
			controller.SignUp()
		case "getAllProviders":
			controller.GetAllProviders()
		case "getProviderByID":
			controller.GetProviderByID()
		case "updateProvider":
			controller.UpdateProvider()
		case "deleteProvider":
			controller.DeleteProvider()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "无效的方法",
			})
		}
	}
}
