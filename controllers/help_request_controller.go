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

// HelpRequestController 处理求助请求相关的请求
type HelpRequestController struct {
	BaseControllerImpl
}

// NewHelpRequestController 创建一个新的求助请求控制器
func (f *ControllerFactory) NewHelpRequestController(ctx *gin.Context) *HelpRequestController {
	return &HelpRequestController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// CreateHelpRequestRequest 表示创建求助请求的参数
type CreateHelpRequestRequest struct {
	RequesterID uint   `json:"requesterId" binding:"required" example:"1"`
	Type        string `json:"type" binding:"required" example:"Medical"` // 如：Medical(医疗)、Food(食品)、Shelter(避难所)等
	Description string `json:"description" example:"Need insulin urgently"`
	Location    string `json:"location" binding:"required" example:"Riverside District"`
	Urgency     int    `json:"urgency" binding:"required,min=1,max=10" example:"7"`
}

// UpdateHelpRequestStatusRequest 表示更新求助请求状态的参数
type UpdateHelpRequestStatusRequest struct {
	Status string `json:"status" binding:"required" example:"Resolved"`
}

// CreateRequest 处理创建求助请求
// @Summary      创建求助请求
// @Description  提交新的求助请求，并同步更新求助人的活跃请求标志
// @Tags         HelpRequest
// @Accept       json
// @Produce      json
// @Param        request body CreateHelpRequestRequest true "求助请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /help-requests [post]
func (c *HelpRequestController) CreateRequest() {
	var req CreateHelpRequestRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的请求参数: " + err.Error(),
		})
		return
	}

	helpRequestService := c.Container.GetService("help_request").(services.InterfaceHelpRequestService)

	request := &models.HelpRequest{
		RequesterID: req.RequesterID,
		Type:        req.Type,
		Description: req.Description,
		Location:    req.Location,
		Urgency:     req.Urgency,
	}

	if err := helpRequestService.CreateRequest(request); err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create help request",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
		"id":     request.ID,
	})
}

// GetAllRequests 处理获取所有求助请求
// @Summary      获取所有求助请求
// @Tags         HelpRequest
// @Produce      json
// @Success      200  {array}  models.HelpRequest
// @Router       /help-requests [get]
func (c *HelpRequestController) GetAllRequests() {
	helpRequestService := c.Container.GetService("help_request").(services.InterfaceHelpRequestService)

	requests, err := helpRequestService.GetAllRequests()
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "获取求助请求列表失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, requests)
}

// GetRequestByID 处理按ID获取求助请求
// @Summary      获取单个求助请求
// @Tags         HelpRequest
// @Produce      json
// @Param        id path int true "求助请求ID"
// @Success      200  {object}  models.HelpRequest
// @Failure      404  {object}  map[string]interface{}
// @Router       /help-requests/{id} [get]
func (c *HelpRequestController) GetRequestByID() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的求助请求ID",
		})
		return
	}

	helpRequestService := c.Container.GetService("help_request").(services.InterfaceHelpRequestService)

	request, err := helpRequestService.GetRequestByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Context.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Help request not found",
			})
			return
		}
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "获取求助请求失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, request)
}

// GetRequestsByUser 处理按求助人ID获取求助请求
// @Summary      获取指定求助人的所有求助请求
// @Tags         HelpRequest
// @Produce      json
// @Param        id path int true "求助人ID"
// @Success      200  {array}  models.HelpRequest
// @Router       /help-requests/user/{id} [get]
func (c *HelpRequestController) GetRequestsByUser() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的求助人ID",
		})
		return
	}

	helpRequestService := c.Container.GetService("help_request").(services.InterfaceHelpRequestService)

	requests, err := helpRequestService.GetRequestsByRequesterID(uint(id))
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "获取求助请求列表失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, requests)
}

// UpdateStatus 处理更新求助请求状态
// @Summary      更新求助请求状态
// @Description  更新状态；当状态变为 Resolved 或 Cancelled 时同步清除求助人的活跃请求标志
// @Tags         HelpRequest
// @Accept       json
// @Produce      json
// @Param        id path int true "求助请求ID"
// @Param        request body UpdateHelpRequestStatusRequest true "状态参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /help-requests/{id} [put]
func (c *HelpRequestController) UpdateStatus() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的求助请求ID",
		})
		return
	}

	var req UpdateHelpRequestStatusRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的请求参数: " + err.Error(),
		})
		return
	}

	helpRequestService := c.Container.GetService("help_request").(services.InterfaceHelpRequestService)

	if err := helpRequestService.UpdateStatus(uint(id), req.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Context.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Help request not found",
			})
			return
		}
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update help request",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// DeleteRequest 处理删除求助请求
// @Summary      删除求助请求
// @Tags         HelpRequest
// @Produce      json
// @Param        id path int true "求助请求ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /help-requests/{id} [delete]
func (c *HelpRequestController) DeleteRequest() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的求助请求ID",
		})
		return
	}

	helpRequestService := c.Container.GetService("help_request").(services.InterfaceHelpRequestService)

	if err := helpRequestService.DeleteRequest(uint(id)); err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete help request",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// HandleHelpRequestFunc 返回一个处理求助请求的Gin处理函数
func HandleHelpRequestFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewHelpRequestController(ctx)

		switch method {
		case "createRequest":
			controller.CreateRequest()
		case "getAllRequests":
			controller.GetAllRequests()
		case "getRequestByID":
			controller.GetRequestByID()
		case "getRequestsByUser":
			controller.GetRequestsByUser()
		case "updateStatus":
			controller.UpdateStatus()
		case "deleteRequest":
			controller.DeleteRequest()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "无效的方法",
			})
		}
	}
}
