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

// VolunteerController 处理志愿者相关的请求
type VolunteerController struct {
	BaseControllerImpl
}

// NewVolunteerController 创建一个新的志愿者控制器
func (f *ControllerFactory) NewVolunteerController(ctx *gin.Context) *VolunteerController {
	return &VolunteerController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// VolunteerSignupRequest 表示志愿者注册请求
type VolunteerSignupRequest struct {
	Name     string `json:"name" binding:"required" example:"Li Na"`
	Location string `json:"location" example:"North Station"`
	OrgType  string `json:"org_type" example:"Medical"`
	Username string `json:"username" binding:"required" example:"lina"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// UpdateVolunteerRequest 表示更新志愿者信息的请求
type UpdateVolunteerRequest struct {
	Name      *string `json:"name"`
	Location  *string `json:"location"`
	Available *bool   `json:"available"`
	OrgType   *string `json:"org_type"`
	Verified  *bool   `json:"verified"`
}

// DonateRequest 表示志愿者捐款请求
type DonateRequest struct {
	Amount float64 `json:"amount" binding:"required" example:"150.5"`
}

// OfferHelpRequest 表示志愿者提交协助任务的请求
type OfferHelpRequest struct {
	Task string `json:"task" binding:"required" example:"Deliver water to shelter 3"`
}

// SignUp 处理志愿者注册
// @Summary      志愿者注册
// @Tags         Volunteer
// @Accept       json
// @Produce      json
// @Param        request body VolunteerSignupRequest true "注册参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /volunteers/signup [post]
func (c *VolunteerController) SignUp() {
	var req VolunteerSignupRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的请求参数: " + err.Error(),
		})
		return
	}

	volunteerService := c.Container.GetService("volunteer").(services.InterfaceVolunteerService)

	volunteer := &models.Volunteer{
		Name:      req.Name,
		Location:  req.Location,
		Available: true,
		OrgType:   req.OrgType,
		Username:  req.Username,
		Password:  req.Password,
	}

	if err := volunteerService.Register(volunteer); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Failed to sign up volunteer.",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
		"id":     volunteer.ID,
	})
}

// GetAllVolunteers 处理获取所有志愿者
// @Summary      获取所有志愿者
// @Tags         Volunteer
// @Produce      json
// @Success      200  {array}  models.Volunteer
// @Router       /volunteers [get]
func (c *VolunteerController) GetAllVolunteers() {
	volunteerService := c.Container.GetService("volunteer").(services.InterfaceVolunteerService)

	volunteers, err := volunteerService.GetAllVolunteers()
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "获取志愿者列表失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, volunteers)
}

// GetVolunteerByID 处理按ID获取志愿者
// @Summary      获取单个志愿者
// @Tags         Volunteer
// @Produce      json
// @Param        id path int true "志愿者ID"
// @Success      200  {object}  models.Volunteer
// @Failure      404  {object}  map[string]interface{}
// @Router       /volunteers/{id} [get]
func (c *VolunteerController) GetVolunteerByID() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的志愿者ID",
		})
		return
	}

	volunteerService := c.Container.GetService("volunteer").(services.InterfaceVolunteerService)

	volunteer, err := volunteerService.GetVolunteerByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Context.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Volunteer not found",
			})
			return
		}
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "获取志愿者失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, volunteer)
}

// UpdateVolunteer 处理更新志愿者信息
// @Summary      更新志愿者信息
// @Description  更新基础信息或可用状态
// @Tags         Volunteer
// @Accept       json
// @Produce      json
// @Param        id path int true "志愿者ID"
// @Param        request body UpdateVolunteerRequest true "更新参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /volunteers/{id} [put]
func (c *VolunteerController) UpdateVolunteer() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的志愿者ID",
		})
		return
	}

	var req UpdateVolunteerRequest
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
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Available != nil {
		updates["available"] = *req.Available
	}
	if req.OrgType != nil {
		updates["org_type"] = *req.OrgType
	}
	if req.Verified != nil {
		updates["verified"] = *req.Verified
	}

	volunteerService := c.Container.GetService("volunteer").(services.InterfaceVolunteerService)

	if _, err := volunteerService.UpdateVolunteer(uint(id), updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Context.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Volunteer not found",
			})
			return
		}
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update availability",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// DeleteVolunteer 处理删除志愿者
// @Summary      删除志愿者
// @Tags         Volunteer
// @Produce      json
// @Param        id path int true "志愿者ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /volunteers/{id} [delete]
func (c *VolunteerController) DeleteVolunteer() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的志愿者ID",
		})
		return
	}

	volunteerService := c.Container.GetService("volunteer").(services.InterfaceVolunteerService)

	if err := volunteerService.DeleteVolunteer(uint(id)); err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete volunteer",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// Donate 处理志愿者捐款
// @Summary      志愿者捐款
// @Tags         Volunteer
// @Accept       json
// @Produce      json
// @Param        id path int true "志愿者ID"
// @Param        request body DonateRequest true "捐款参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /volunteers/donate/{id} [post]
func (c *VolunteerController) Donate() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的志愿者ID",
		})
		return
	}

	var req DonateRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的请求参数: " + err.Error(),
		})
		return
	}

	volunteerService := c.Container.GetService("volunteer").(services.InterfaceVolunteerService)

	if err := volunteerService.Donate(uint(id), req.Amount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Context.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Volunteer not found",
			})
			return
		}
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to process donation",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// OfferHelp 处理志愿者提交协助任务
// @Summary      志愿者提交协助任务
// @Tags         Volunteer
// @Accept       json
// @Produce      json
// @Param        id path int true "志愿者ID"
// @Param        request body OfferHelpRequest true "任务参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /volunteers/help/{id} [post]
func (c *VolunteerController) OfferHelp() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的志愿者ID",
		})
		return
	}

	var req OfferHelpRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的请求参数: " + err.Error(),
		})
		return
	}

	volunteerService := c.Container.GetService("volunteer").(services.InterfaceVolunteerService)

	if err := volunteerService.OfferHelp(uint(id), req.Task); err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to submit help request",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// GetHistory 处理获取志愿者接单历史
// @Summary      获取志愿者接单历史
// @Tags         Volunteer
// @Produce      json
// @Param        id path int true "志愿者ID"
// @Success      200  {array}  map[string]interface{}
// @Router       /volunteers/history/{id} [get]
func (c *VolunteerController) GetHistory() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的志愿者ID",
		})
		return
	}

	volunteerService := c.Container.GetService("volunteer").(services.InterfaceVolunteerService)

	requestIDs, err := volunteerService.GetVolunteerHistory(uint(id))
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "获取接单历史失败",
		})
		return
	}

	history := make([]gin.H, 0, len(requestIDs))
	for _, requestID := range requestIDs {
		history = append(history, gin.H{"requestId": requestID})
	}

	c.Context.JSON(http.StatusOK, history)
}

// HandleVolunteerFunc 返回一个处理志愿者请求的Gin处理函数
func HandleVolunteerFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewVolunteerController(ctx)

		switch method {
		case "signUp":
			controller.SignUp()
		case "getAllVolunteers":
			controller.GetAllVolunteers()
		case "getVolunteerByID":
			controller.GetVolunteerByID()
		case "updateVolunteer":
			controller.UpdateVolunteer()
		case "deleteVolunteer":
			controller.DeleteVolunteer()
		case "donate":
			controller.Donate()
		case "offerHelp":
			controller.OfferHelp()
		case "getHistory":
			controller.GetHistory()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "无效的方法",
			})
		}
	}
}
