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

// AdminController 处理系统管理员相关的请求
type AdminController struct {
	BaseControllerImpl
}

// NewAdminController 创建一个新的管理员控制器
func (f *ControllerFactory) NewAdminController(ctx *gin.Context) *AdminController {
	return &AdminController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// CreateAdminRequest 表示创建管理员的请求
type CreateAdminRequest struct {
	Name     string `json:"name" binding:"required" example:"Ops Admin"`
	Username string `json:"username" binding:"required" example:"opsadmin"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
}

// UpdateAdminRequest 表示更新管理员的请求
type UpdateAdminRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
}

// GetAllAdmins 处理分页获取管理员列表
// @Summary      获取管理员列表
// @Tags         Admin
// @Produce      json
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200  {object}  map[string]interface{}
// @Router       /admins [get]
func (c *AdminController) GetAllAdmins() {
	page, _ := strconv.Atoi(c.Context.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Context.DefaultQuery("page_size", "10"))

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)

	admins, total, err := adminService.GetAllAdmins(page, pageSize)
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "获取管理员列表失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"admins":     admins,
		"pagination": models.NewPaginationResult(int(total), page, pageSize),
	})
}

// GetAdminByID 处理按ID获取管理员
// @Summary      获取单个管理员
// @Tags         Admin
// @Produce      json
// @Param        id path int true "管理员ID"
// @Success      200  {object}  models.Admin
// @Failure      404  {object}  map[string]interface{}
// @Router       /admins/{id} [get]
func (c *AdminController) GetAdminByID() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的管理员ID",
		})
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)

	admin, err := adminService.GetAdminByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Context.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Admin not found",
			})
			return
		}
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "获取管理员失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, admin)
}

// CreateAdmin 处理创建管理员
// @Summary      创建管理员
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body CreateAdminRequest true "管理员参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /admins [post]
func (c *AdminController) CreateAdmin() {
	var req CreateAdminRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的请求参数: " + err.Error(),
		})
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)

	admin := &models.Admin{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
		IsActive: true,
	}

	if err := adminService.CreateAdmin(admin); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
		"id":     admin.ID,
	})
}

// UpdateAdmin 处理更新管理员
// @Summary      更新管理员
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path int true "管理员ID"
// @Param        request body UpdateAdminRequest true "更新参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /admins/{id} [put]
func (c *AdminController) UpdateAdmin() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的管理员ID",
		})
		return
	}

	var req UpdateAdminRequest
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
	if req.Password != nil {
		updates["password"] = *req.Password
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)

	if _, err := adminService.UpdateAdmin(uint(id), updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Context.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Admin not found",
			})
			return
		}
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "更新管理员失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// DeleteAdmin 处理删除管理员
// @Summary      删除管理员
// @Description  系统中最后一个管理员不允许删除
// @Tags         Admin
// @Produce      json
// @Param        id path int true "管理员ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /admins/{id} [delete]
func (c *AdminController) DeleteAdmin() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的管理员ID",
		})
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)

	if err := adminService.DeleteAdmin(uint(id)); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// HandleAdminFunc 返回一个处理管理员请求的Gin处理函数
func HandleAdminFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewAdminController(ctx)

		switch method {
		case "getAllAdmins":
			controller.GetAllAdmins()
		case "getAdminByID":
			controller.GetAdminByID()
		case "createAdmin":
			controller.CreateAdmin()
		case "updateAdmin":
			controller.UpdateAdmin()
		case "deleteAdmin":
			controller.DeleteAdmin()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "无效的方法",
			})
		}
	}
}
