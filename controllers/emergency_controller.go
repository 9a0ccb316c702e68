package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"crisislink-http-service/models"
	"crisislink-http-service/services"
	"crisislink-http-service/services/container"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// 仪表盘缓存过期时间
const dashboardCacheTTL = 30 * time.Second

// EmergencyController 处理应急协调相关的请求
type EmergencyController struct {
	BaseControllerImpl
}

// NewEmergencyController 创建一个新的应急协调控制器
func (f *ControllerFactory) NewEmergencyController(ctx *gin.Context) *EmergencyController {
	return &EmergencyController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// TriggerProtocolRequest 表示触发应急预案的请求
type TriggerProtocolRequest struct {
	Level       string `json:"level" binding:"required" example:"severe"` // 如：elevated、severe、critical
	Description string `json:"description" example:"Flood level rising in Riverside District"`
	TriggeredBy *uint  `json:"triggeredBy" example:"1"` // 触发机构ID，可为空
}

// AllocatePersonnelRequest 表示调配救援人员的请求
type AllocatePersonnelRequest struct {
	Type     string `json:"type" binding:"required" example:"Medical"`
	Location string `json:"location" binding:"required" example:"Riverside District"`
	Count    int    `json:"count" binding:"required,min=1" example:"20"`
	Priority int    `json:"priority" example:"2"`
}

// CreateBudgetRequest 表示建立应急预算的请求
type CreateBudgetRequest struct {
	Category string  `json:"category" binding:"required" example:"Medical Supplies"`
	Amount   float64 `json:"amount" binding:"required" example:"50000"`
	Priority int     `json:"priority" example:"1"`
	Location string  `json:"location" binding:"required" example:"Riverside District"`
}

// MilitarySupportRequestBody 表示请求军事支援的参数
type MilitarySupportRequestBody struct {
	Type        string `json:"type" binding:"required" example:"Engineering"`
	Location    string `json:"location" binding:"required" example:"Collapsed Bridge"`
	Priority    int    `json:"priority" example:"3"`
	Description string `json:"description" example:"Need heavy lifting equipment"`
}

// dashboardCache 获取Redis缓存服务
func (c *EmergencyController) dashboardCache() services.InterfaceRedisService {
	return c.Container.GetService("redis").(services.InterfaceRedisService)
}

// TriggerProtocol 处理触发应急预案
// @Summary      触发应急预案
// @Description  记录新的应急预案，不会结束已有的活跃预案
// @Tags         Emergency
// @Accept       json
// @Produce      json
// @Param        request body TriggerProtocolRequest true "预案参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /emergency/protocol [post]
func (c *EmergencyController) TriggerProtocol() {
	var req TriggerProtocolRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的请求参数: " + err.Error(),
		})
		return
	}

	protocolService := c.Container.GetService("emergency_protocol").(services.InterfaceEmergencyProtocolService)

	protocol := &models.EmergencyProtocol{
		Level:       req.Level,
		Description: req.Description,
		TriggeredBy: req.TriggeredBy,
	}

	if err := protocolService.TriggerProtocol(protocol); err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to trigger emergency protocol",
		})
		return
	}

	_ = c.dashboardCache().InvalidateDashboard()

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
		"id":     protocol.ID,
	})
}

// ResolveProtocol 处理解除应急预案
// @Summary      解除应急预案
// @Tags         Emergency
// @Produce      json
// @Param        id path int true "预案ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /emergency/protocol/{id}/resolve [put]
func (c *EmergencyController) ResolveProtocol() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的预案ID",
		})
		return
	}

	protocolService := c.Container.GetService("emergency_protocol").(services.InterfaceEmergencyProtocolService)

	if err := protocolService.ResolveProtocol(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Context.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Emergency protocol not found",
			})
			return
		}
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "解除应急预案失败",
		})
		return
	}

	_ = c.dashboardCache().InvalidateDashboard()

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// GetEmergencyLevel 处理获取当前应急级别
// @Summary      获取当前应急级别
// @Description  返回最近触发的活跃预案的级别；无活跃预案时返回 normal
// @Tags         Emergency
// @Produce      json
// @Success      200  {object}  services.EmergencyLevel
// @Router       /emergency/level [get]
func (c *EmergencyController) GetEmergencyLevel() {
	cache := c.dashboardCache()

	var cached services.EmergencyLevel
	if err := cache.GetCachedEmergencyLevel(&cached); err == nil {
		c.Context.JSON(http.StatusOK, cached)
		return
	}

	protocolService := c.Container.GetService("emergency_protocol").(services.InterfaceEmergencyProtocolService)

	level, err := protocolService.GetCurrentEmergencyLevel()
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "获取应急级别失败",
		})
		return
	}

	_ = cache.CacheEmergencyLevel(level, dashboardCacheTTL)

	c.Context.JSON(http.StatusOK, level)
}

// TrackReliefEffort 处理获取救援行动汇总
// @Summary      获取救援行动汇总
// @Description  汇总所有活跃行动及其资源与人员投入
// @Tags         Emergency
// @Produce      json
// @Success      200  {object}  services.ReliefEffortReport
// @Router       /emergency/relief-effort [get]
func (c *EmergencyController) TrackReliefEffort() {
	cache := c.dashboardCache()

	var cached services.ReliefEffortReport
	if err := cache.GetCachedReliefEffort(&cached); err == nil {
		c.Context.JSON(http.StatusOK, cached)
		return
	}

	operationService := c.Container.GetService("relief_operation").(services.InterfaceReliefOperationService)

	report, err := operationService.TrackReliefEffort()
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "获取救援行动汇总失败",
		})
		return
	}

	_ = cache.CacheReliefEffort(report, dashboardCacheTTL)

	c.Context.JSON(http.StatusOK, report)
}

// AllocatePersonnel 处理调配救援人员
// @Summary      调配救援人员
// @Description  向目标地点的活跃行动追加人员，无活跃行动时自动创建
// @Tags         Emergency
// @Accept       json
// @Produce      json
// @Param        request body AllocatePersonnelRequest true "调配参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /emergency/personnel [post]
func (c *EmergencyController) AllocatePersonnel() {
	var req AllocatePersonnelRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的请求参数: " + err.Error(),
		})
		return
	}

	operationService := c.Container.GetService("relief_operation").(services.InterfaceReliefOperationService)

	allocation := &models.PersonnelAllocation{
		Type:     req.Type,
		Location: req.Location,
		Count:    req.Count,
		Priority: req.Priority,
	}

	if err := operationService.AllocatePersonnel(allocation); err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to allocate personnel",
		})
		return
	}

	_ = c.dashboardCache().InvalidateDashboard()

	c.Context.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"id":           allocation.ID,
		"operation_id": allocation.OperationID,
	})
}

// GetPersonnelStatus 处理获取人员调配状态
// @Summary      获取人员调配状态
// @Tags         Emergency
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /emergency/personnel [get]
func (c *EmergencyController) GetPersonnelStatus() {
	operationService := c.Container.GetService("relief_operation").(services.InterfaceReliefOperationService)

	rows, err := operationService.GetPersonnelStatus()
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "获取人员调配状态失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"allocations": rows,
	})
}

// CompletePersonnel 处理完成人员调配
// @Summary      完成人员调配
// @Tags         Emergency
// @Produce      json
// @Param        id path int true "调配记录ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /emergency/personnel/{id}/complete [put]
func (c *EmergencyController) CompletePersonnel() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的调配记录ID",
		})
		return
	}

	operationService := c.Container.GetService("relief_operation").(services.InterfaceReliefOperationService)

	if err := operationService.CompletePersonnel(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Context.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Personnel allocation not found",
			})
			return
		}
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "完成人员调配失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// CreateBudget 处理建立应急预算
// @Summary      建立应急预算
// @Description  在目标地点的活跃行动下登记预算，无活跃行动时自动创建
// @Tags         Emergency
// @Accept       json
// @Produce      json
// @Param        request body CreateBudgetRequest true "预算参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /emergency/budget [post]
func (c *EmergencyController) CreateBudget() {
	var req CreateBudgetRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的请求参数: " + err.Error(),
		})
		return
	}

	operationService := c.Container.GetService("relief_operation").(services.InterfaceReliefOperationService)

	budget := &models.EmergencyBudget{
		Category: req.Category,
		Amount:   req.Amount,
		Priority: req.Priority,
	}

	if err := operationService.CreateBudget(budget, req.Location); err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create emergency budget",
		})
		return
	}

	_ = c.dashboardCache().InvalidateDashboard()

	c.Context.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"id":           budget.ID,
		"operation_id": budget.OperationID,
	})
}

// GetBudgetStatus 处理获取预算状态
// @Summary      获取应急预算状态
// @Tags         Emergency
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /emergency/budget [get]
func (c *EmergencyController) GetBudgetStatus() {
	operationService := c.Container.GetService("relief_operation").(services.InterfaceReliefOperationService)

	rows, err := operationService.GetBudgetStatus()
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "获取预算状态失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"budgets": rows,
	})
}

// AllocateBudget 处理拨付预算
// @Summary      拨付应急预算
// @Tags         Emergency
// @Produce      json
// @Param        id path int true "预算ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /emergency/budget/{id}/allocate [put]
func (c *EmergencyController) AllocateBudget() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的预算ID",
		})
		return
	}

	operationService := c.Container.GetService("relief_operation").(services.InterfaceReliefOperationService)

	if err := operationService.AllocateBudget(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Context.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Emergency budget not found",
			})
			return
		}
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "拨付预算失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// RequestMilitarySupport 处理请求军事支援
// @Summary      请求军事支援
// @Description  在目标地点的活跃行动下登记支援请求，无活跃行动时自动创建
// @Tags         Emergency
// @Accept       json
// @Produce      json
// @Param        request body MilitarySupportRequestBody true "支援请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /emergency/military [post]
func (c *EmergencyController) RequestMilitarySupport() {
	var req MilitarySupportRequestBody
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的请求参数: " + err.Error(),
		})
		return
	}

	operationService := c.Container.GetService("relief_operation").(services.InterfaceReliefOperationService)

	request := &models.MilitarySupportRequest{
		Type:        req.Type,
		Location:    req.Location,
		Priority:    req.Priority,
		Description: req.Description,
	}

	if err := operationService.RequestMilitarySupport(request); err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to request military support",
		})
		return
	}

	_ = c.dashboardCache().InvalidateDashboard()

	c.Context.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"id":           request.ID,
		"operation_id": request.OperationID,
	})
}

// GetMilitaryStatus 处理获取军事支援状态
// @Summary      获取军事支援状态
// @Tags         Emergency
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /emergency/military [get]
func (c *EmergencyController) GetMilitaryStatus() {
	operationService := c.Container.GetService("relief_operation").(services.InterfaceReliefOperationService)

	rows, err := operationService.GetMilitaryStatus()
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "获取军事支援状态失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"requests": rows,
	})
}

// CompleteMilitary 处理完成军事支援
// @Summary      完成军事支援请求
// @Tags         Emergency
// @Produce      json
// @Param        id path int true "支援请求ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /emergency/military/{id}/complete [put]
func (c *EmergencyController) CompleteMilitary() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的支援请求ID",
		})
		return
	}

	operationService := c.Container.GetService("relief_operation").(services.InterfaceReliefOperationService)

	if err := operationService.CompleteMilitary(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Context.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Military support request not found",
			})
			return
		}
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "完成军事支援失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// EndOperation 处理结束救援行动
// @Summary      结束救援行动
// @Description  行动结束后不再参与救援行动汇总
// @Tags         Emergency
// @Produce      json
// @Param        id path int true "行动ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /emergency/operations/{id}/end [put]
func (c *EmergencyController) EndOperation() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的行动ID",
		})
		return
	}

	operationService := c.Container.GetService("relief_operation").(services.InterfaceReliefOperationService)

	if err := operationService.EndOperation(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Context.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Relief operation not found",
			})
			return
		}
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "结束救援行动失败",
		})
		return
	}

	_ = c.dashboardCache().InvalidateDashboard()

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// HandleEmergencyFunc 返回一个处理应急协调请求的Gin处理函数
func HandleEmergencyFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewEmergencyController(ctx)

		switch method {
		case "triggerProtocol":
			controller.TriggerProtocol()
		case "resolveProtocol":
			controller.ResolveProtocol()
		case "getEmergencyLevel":
			controller.GetEmergencyLevel()
		case "trackReliefEffort":
			controller.TrackReliefEffort()
		case "allocatePersonnel":
			controller.AllocatePersonnel()
		case "getPersonnelStatus":
			controller.GetPersonnelStatus()
		case "completePersonnel":
			controller.CompletePersonnel()
		case "createBudget":
			controller.CreateBudget()
		case "getBudgetStatus":
			controller.GetBudgetStatus()
		case "allocateBudget":
			controller.AllocateBudget()
		case "requestMilitarySupport":
			controller.RequestMilitarySupport()
		case "getMilitaryStatus":
			controller.GetMilitaryStatus()
		case "completeMilitary":
			controller.CompleteMilitary()
		case "endOperation":
			controller.EndOperation()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "无效的方法",
			})
		}
	}
}
