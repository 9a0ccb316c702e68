package controllers

import (
	"net/http"
	"strconv"

	"crisislink-http-service/services"
	"crisislink-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// AlertController 处理告警广播相关的请求
type AlertController struct {
	BaseControllerImpl
}

// NewAlertController 创建一个新的告警控制器
func (f *ControllerFactory) NewAlertController(ctx *gin.Context) *AlertController {
	return &AlertController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// UpdateAlertConfigRequest 表示更新告警配置的请求
type UpdateAlertConfigRequest struct {
	UrgencyThreshold *int  `json:"urgency_threshold" example:"8"`
	AutoAssign       *bool `json:"auto_assign" example:"false"`
}

// AddSubscriberRequest 表示添加订阅者的请求
type AddSubscriberRequest struct {
	Subscriber string `json:"subscriber" binding:"required" example:"ops-team"`
}

// BroadcastRequest 表示广播告警的请求
type BroadcastRequest struct {
	Message string `json:"message" binding:"required" example:"Evacuation route 3 is now open"`
	Type    string `json:"type" example:"General"`
}

// GetConfig 处理获取告警配置
// @Summary      获取告警配置
// @Tags         Alert
// @Produce      json
// @Success      200  {object}  models.AlertSystem
// @Router       /alerts/config [get]
func (c *AlertController) GetConfig() {
	alertService := c.Container.GetService("alert").(services.InterfaceAlertService)

	system, err := alertService.GetAlertConfig()
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "获取告警配置失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, system)
}

// UpdateConfig 处理更新告警配置
// @Summary      更新告警配置
// @Tags         Alert
// @Accept       json
// @Produce      json
// @Param        request body UpdateAlertConfigRequest true "配置参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /alerts/config [put]
func (c *AlertController) UpdateConfig() {
	var req UpdateAlertConfigRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的请求参数: " + err.Error(),
		})
		return
	}

	// 阈值取值范围不做限制，与旧客户端保持一致
	updates := make(map[string]interface{})
	if req.UrgencyThreshold != nil {
		updates["urgency_threshold"] = *req.UrgencyThreshold
	}
	if req.AutoAssign != nil {
		updates["auto_assign"] = *req.AutoAssign
	}

	alertService := c.Container.GetService("alert").(services.InterfaceAlertService)

	system, err := alertService.UpdateAlertConfig(updates)
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update alert config",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
		"config": system,
	})
}

// GetSubscribers 处理获取订阅者列表
// @Summary      获取告警订阅者列表
// @Tags         Alert
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /alerts/subscribers [get]
func (c *AlertController) GetSubscribers() {
	alertService := c.Container.GetService("alert").(services.InterfaceAlertService)

	c.Context.JSON(http.StatusOK, gin.H{
		"subscribers": alertService.GetSubscribers(),
	})
}

// AddSubscriber 处理添加订阅者
// @Summary      添加告警订阅者
// @Description  重复添加同一订阅者不会报错也不会产生重复记录
// @Tags         Alert
// @Accept       json
// @Produce      json
// @Param        request body AddSubscriberRequest true "订阅者参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /alerts/subscribers [post]
func (c *AlertController) AddSubscriber() {
	var req AddSubscriberRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的请求参数: " + err.Error(),
		})
		return
	}

	alertService := c.Container.GetService("alert").(services.InterfaceAlertService)

	if err := alertService.AddSubscriber(req.Subscriber); err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "添加订阅者失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// RemoveSubscriber 处理移除订阅者
// @Summary      移除告警订阅者
// @Tags         Alert
// @Produce      json
// @Param        subscriber path string true "订阅者标识"
// @Success      200  {object}  map[string]interface{}
// @Router       /alerts/subscribers/{subscriber} [delete]
func (c *AlertController) RemoveSubscriber() {
	subscriber := c.Context.Param("subscriber")

	alertService := c.Container.GetService("alert").(services.InterfaceAlertService)

	if err := alertService.RemoveSubscriber(subscriber); err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "移除订阅者失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// Broadcast 处理广播告警
// @Summary      广播告警
// @Description  写入告警历史并为每个订阅者生成待投递通知
// @Tags         Alert
// @Accept       json
// @Produce      json
// @Param        request body BroadcastRequest true "广播参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /alerts/broadcast [post]
func (c *AlertController) Broadcast() {
	var req BroadcastRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的请求参数: " + err.Error(),
		})
		return
	}

	alertService := c.Container.GetService("alert").(services.InterfaceAlertService)

	if err := alertService.Broadcast(req.Message, req.Type); err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "广播告警失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// GetHistory 处理获取告警历史
// @Summary      获取告警历史
// @Description  按时间倒序返回，未指定limit时默认100条
// @Tags         Alert
// @Produce      json
// @Param        limit query int false "返回条数上限"
// @Success      200  {array}  models.AlertHistory
// @Router       /alerts/history [get]
func (c *AlertController) GetHistory() {
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

	alertService := c.Container.GetService("alert").(services.InterfaceAlertService)

	history, err := alertService.GetHistory(limit)
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "获取告警历史失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, history)
}

// GetPendingNotifications 处理获取订阅者的待投递通知
// @Summary      获取订阅者的待投递通知
// @Tags         Alert
// @Produce      json
// @Param        subscriber path string true "订阅者标识"
// @Success      200  {array}  models.AlertNotification
// @Router       /alerts/notifications/{subscriber} [get]
func (c *AlertController) GetPendingNotifications() {
	subscriber := c.Context.Param("subscriber")

	alertService := c.Container.GetService("alert").(services.InterfaceAlertService)

	notifications, err := alertService.GetPendingNotifications(subscriber)
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "获取待投递通知失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, notifications)
}

// MarkDelivered 处理标记通知已投递
// @Summary      标记订阅者的通知为已投递
// @Description  一次性标记该订阅者的所有待投递通知
// @Tags         Alert
// @Produce      json
// @Param        subscriber path string true "订阅者标识"
// @Success      200  {object}  map[string]interface{}
// @Router       /alerts/notifications/{subscriber}/delivered [post]
func (c *AlertController) MarkDelivered() {
	subscriber := c.Context.Param("subscriber")

	alertService := c.Container.GetService("alert").(services.InterfaceAlertService)

	if err := alertService.MarkDelivered(subscriber); err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "标记通知投递失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// HandleAlertFunc 返回一个处理告警请求的Gin处理函数
func HandleAlertFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewAlertController(ctx)

		switch method {
		case "getConfig":
			controller.GetConfig()
		case "updateConfig":
			controller.UpdateConfig()
		case "getSubscribers":
			controller.GetSubscribers()
		case "addSubscriber":
			controller.AddSubscriber()
		case "removeSubscriber":
			controller.RemoveSubscriber()
		case "broadcast":
			controller.Broadcast()
		case "getHistory":
			controller.GetHistory()
		case "getPendingNotifications":
			controller.GetPendingNotifications()
		case "markDelivered":
			controller.MarkDelivered()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "无效的方法",
			})
		}
	}
}
