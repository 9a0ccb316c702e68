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

// AgencyController 处理政府救援机构相关的请求
type AgencyController struct {
	BaseControllerImpl
}

// NewAgencyController 创建一个新的政府救援机构控制器
func (f *ControllerFactory) NewAgencyController(ctx *gin.Context) *AgencyController {
	return &AgencyController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// AgencySignupRequest 表示政府救援机构注册请求
type AgencySignupRequest struct {
	AgencyName string `json:"agencyName" binding:"required" example:"National Disaster Response"`
	Username   string `json:"username" binding:"required" example:"ndr_admin"`
	Password   string `json:"password" binding:"required" example:"secret123"`
}

// UpdateAgencyRequest 表示更新政府救援机构的请求
type UpdateAgencyRequest struct {
	AgencyName *string `json:"agencyName"`
	Verified   *bool   `json:"verified"`
}

// EscalateSeverityRequest 表示调整事态级别的请求
type EscalateSeverityRequest struct {
	Delta *int `json:"delta" binding:"required" example:"2"` // 可为负，结果不允许小于0
}

// SignUp 处理政府救援机构注册
// @Summary      政府救援机构注册
// @Tags         GovernmentAgency
// @Accept       json
// @Produce      json
// @Param        request body AgencySignupRequest true "注册参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /government-agencies/signup [post]
func (c *AgencyController) SignUp() {
	var req AgencySignupRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的请求参数: " + err.Error(),
		})
		return
	}

	agencyService := c.Container.GetService("agency").(services.InterfaceAgencyService)

	agency := &models.GovernmentAgency{
		AgencyName: req.AgencyName,
		Username:   req.Username,
		Password:   req.Password,
	}

	if err := agencyService.Register(agency); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Failed to sign up government agency.",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
		"id":     agency.ID,
	})
}

// GetAllAgencies 处理获取所有政府救援机构
// @Summary      获取所有政府救援机构
// @Tags         GovernmentAgency
// @Produce      json
// @Success      200  {array}  models.GovernmentAgency
// @Router       /government-agencies [get]
func (c *AgencyController) GetAllAgencies() {
	agencyService := c.Container.GetService("agency").(services.InterfaceAgencyService)

	agencies, err := agencyService.GetAllAgencies()
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "获取机构列表失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, agencies)
}

// GetAgencyByID 处理按ID获取政府救援机构
// @Summary      获取单个政府救援机构
// @Tags         GovernmentAgency
// @Produce      json
// @Param        id path int true "机构ID"
// @Success      200  {object}  models.GovernmentAgency
// @Failure      404  {object}  map[string]interface{}
// @Router       /government-agencies/{id} [get]
func (c *AgencyController) GetAgencyByID() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的机构ID",
		})
		return
	}

	agencyService := c.Container.GetService("agency").(services.InterfaceAgencyService)

	agency, err := agencyService.GetAgencyByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Context.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Government agency not found",
			})
			return
		}
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "获取机构失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, agency)
}

// UpdateAgency 处理更新政府救援机构
// @Summary      更新政府救援机构
// @Tags         GovernmentAgency
// @Accept       json
// @Produce      json
// @Param        id path int true "机构ID"
// @Param        request body UpdateAgencyRequest true "更新参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /government-agencies/{id} [put]
func (c *AgencyController) UpdateAgency() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的机构ID",
		})
		return
	}

	var req UpdateAgencyRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的请求参数: " + err.Error(),
		})
		return
	}

	updates := make(map[string]interface{})
	if req.AgencyName != nil {
		updates["agency_name"] = *req.AgencyName
	}
	if req.Verified != nil {
		updates["verified"] = *req.Verified
	}

	agencyService := c.Container.GetService("agency").(services.InterfaceAgencyService)

	if _, err := agencyService.UpdateAgency(uint(id), updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Context.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Government agency not found",
			})
			return
		}
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "更新机构失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// DeleteAgency 处理删除政府救援机构
// @Summary      删除政府救援机构
// @Tags         GovernmentAgency
// @Produce      json
// @Param        id path int true "机构ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /government-agencies/{id} [delete]
func (c *AgencyController) DeleteAgency() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的机构ID",
		})
		return
	}

	agencyService := c.Container.GetService("agency").(services.InterfaceAgencyService)

	if err := agencyService.DeleteAgency(uint(id)); err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete government agency",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// EscalateSeverity 处理调整机构事态级别
// @Summary      调整机构事态级别
// @Description  按增量调整事态级别，调整结果为负时拒绝
// @Tags         GovernmentAgency
// @Accept       json
// @Produce      json
// @Param        id path int true "机构ID"
// @Param        request body EscalateSeverityRequest true "级别增量"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /government-agencies/{id}/severity [put]
func (c *AgencyController) EscalateSeverity() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的机构ID",
		})
		return
	}

	var req EscalateSeverityRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的请求参数: " + err.Error(),
		})
		return
	}

	protocolService := c.Container.GetService("emergency_protocol").(services.InterfaceEmergencyProtocolService)

	if err := protocolService.EscalateSeverity(uint(id), *req.Delta); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Context.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Government agency not found",
			})
			return
		}
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

// TriggerEmergency 处理机构自触发应急
// @Summary      机构自触发应急
// @Description  事态级别加一，并向所有订阅者广播应急告警
// @Tags         GovernmentAgency
// @Produce      json
// @Param        id path int true "机构ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /government-agencies/{id}/emergency [post]
func (c *AgencyController) TriggerEmergency() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的机构ID",
		})
		return
	}

	protocolService := c.Container.GetService("emergency_protocol").(services.InterfaceEmergencyProtocolService)

	if err := protocolService.TriggerAgencyEmergency(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Context.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Government agency not found",
			})
			return
		}
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "触发应急失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// GetSeverityReport 处理获取事态级别报表
// @Summary      获取所有机构的事态级别报表
// @Description  按事态级别从高到低排列
// @Tags         GovernmentAgency
// @Produce      json
// @Success      200  {array}  services.AgencySeverityRow
// @Router       /government-agencies/severity-report [get]
func (c *AgencyController) GetSeverityReport() {
	agencyService := c.Container.GetService("agency").(services.InterfaceAgencyService)

	report, err := agencyService.GetSeverityReport()
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "获取事态级别报表失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, report)
}

// HandleAgencyFunc 返回一个处理政府救援机构请求的Gin处理函数
func HandleAgencyFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewAgencyController(ctx)

		switch method {
		case "signUp":
			controller.SignUp()
		case "getAllAgencies":
			controller.GetAllAgencies()
		case "getAgencyByID":
			controller.GetAgencyByID()
		case "updateAgency":
			controller.UpdateAgency()
		case "deleteAgency":
			controller.DeleteAgency()
		case "escalateSeverity":
			controller.EscalateSeverity()
		case "triggerEmergency":
			controller.TriggerEmergency()
		case "getSeverityReport":
			controller.GetSeverityReport()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "无效的方法",
			})
		}
	}
}
