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

// PersonController 处理受灾群众相关的请求
type PersonController struct {
	BaseControllerImpl
}

// NewPersonController 创建一个新的受灾群众控制器
func (f *ControllerFactory) NewPersonController(ctx *gin.Context) *PersonController {
	return &PersonController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// PersonSignupRequest 表示受灾群众注册请求
type PersonSignupRequest struct {
	Name        string `json:"name" binding:"required" example:"Zhang Wei"`
	Location    string `json:"location" example:"Riverside District"`
	Phone       string `json:"phone" example:"13800000000"`
	Description string `json:"description" example:"Trapped by flood water"`
	Username    string `json:"username" binding:"required" example:"zhangwei"`
	Password    string `json:"password" binding:"required" example:"secret123"`
}

// UpdatePersonRequest 表示更新受灾群众信息的请求
type UpdatePersonRequest struct {
	Name        *string `json:"name"`
	Location    *string `json:"location"`
	Phone       *string `json:"phone"`
	Description *string `json:"description"`
	Status      *string `json:"status" example:"Aid Provided"`
	Verified    *bool   `json:"verified"`
}

// SignUp 处理受灾群众注册
// @Summary      受灾群众注册
// @Tags         PersonInCrisis
// @Accept       json
// @Produce      json
// @Param        request body PersonSignupRequest true "注册参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /people-in-crisis/signup [post]
func (c *PersonController) SignUp() {
	var req PersonSignupRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的请求参数: " + err.Error(),
		})
		return
	}

	personService := c.Container.GetService("person").(services.InterfacePersonService)

	person := &models.PersonInCrisis{
		Name:        req.Name,
		Location:    req.Location,
		Phone:       req.Phone,
		Description: req.Description,
		Username:    req.Username,
		Password:    req.Password,
	}

	if err := personService.Register(person); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Failed to create user. Username may already exist.",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
		"id":     person.ID,
	})
}

// GetAllPersons 处理获取所有受灾群众
// @Summary      获取所有受灾群众
// @Tags         PersonInCrisis
// @Produce      json
// @Success      200  {array}  models.PersonInCrisis
// @Router       /people-in-crisis [get]
func (c *PersonController) GetAllPersons() {
	personService := c.Container.GetService("person").(services.InterfacePersonService)

	persons, err := personService.GetAllPersons()
	if err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "获取受灾群众列表失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, persons)
}

// GetPersonByID 处理按ID获取受灾群众
// @Summary      获取单个受灾群众
// @Tags         PersonInCrisis
// @Produce      json
// @Param        id path int true "受灾群众ID"
// @Success      200  {object}  models.PersonInCrisis
// @Failure      404  {object}  map[string]interface{}
// @Router       /people-in-crisis/{id} [get]
func (c *PersonController) GetPersonByID() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的用户ID",
		})
		return
	}

	personService := c.Container.GetService("person").(services.InterfacePersonService)

	person, err := personService.GetPersonByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Context.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Person not found",
			})
			return
		}
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "获取受灾群众失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, person)
}

// UpdatePerson 处理更新受灾群众信息
// @Summary      更新受灾群众信息
// @Tags         PersonInCrisis
// @Accept       json
// @Produce      json
// @Param        id path int true "受灾群众ID"
// @Param        request body UpdatePersonRequest true "更新参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /people-in-crisis/{id} [put]
func (c *PersonController) UpdatePerson() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的用户ID",
		})
		return
	}

	var req UpdatePersonRequest
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
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Verified != nil {
		updates["verified"] = *req.Verified
	}

	personService := c.Container.GetService("person").(services.InterfacePersonService)

	if _, err := personService.UpdatePerson(uint(id), updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Context.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Person not found",
			})
			return
		}
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "更新受灾群众失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// DeletePerson 处理删除受灾群众
// @Summary      删除受灾群众
// @Tags         PersonInCrisis
// @Produce      json
// @Param        id path int true "受灾群众ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /people-in-crisis/{id} [delete]
func (c *PersonController) DeletePerson() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的用户ID",
		})
		return
	}

	personService := c.Container.GetService("person").(services.InterfacePersonService)

	if err := personService.DeletePerson(uint(id)); err != nil {
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete user",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// UpdateProfileRequest 表示更新个人档案的请求
type UpdateProfileRequest struct {
	Name     string `json:"name" binding:"required" example:"Zhang Wei"`
	Location string `json:"location" binding:"required" example:"Riverside District"`
	Phone    string `json:"phone" binding:"required" example:"13800000000"`
}

// GetProfile 处理获取个人档案
// @Summary      获取受灾群众个人档案
// @Tags         Profile
// @Produce      json
// @Param        id path int true "用户ID"
// @Success      200  {object}  models.PersonInCrisis
// @Failure      404  {object}  map[string]interface{}
// @Router       /profiles/{id} [get]
func (c *PersonController) GetProfile() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的用户ID",
		})
		return
	}

	personService := c.Container.GetService("person").(services.InterfacePersonService)

	person, err := personService.GetPersonByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Context.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Profile not found",
			})
			return
		}
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "获取个人档案失败",
		})
		return
	}

	c.Context.JSON(http.StatusOK, person)
}

// UpdateProfile 处理更新个人档案，只覆盖姓名、位置、电话三个字段
// @Summary      更新受灾群众个人档案
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Param        id path int true "用户ID"
// @Param        request body UpdateProfileRequest true "档案参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /profiles/{id} [put]
func (c *PersonController) UpdateProfile() {
	id, err := strconv.ParseUint(c.Context.Param("id"), 10, 32)
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的用户ID",
		})
		return
	}

	var req UpdateProfileRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "无效的请求参数: " + err.Error(),
		})
		return
	}

	personService := c.Container.GetService("person").(services.InterfacePersonService)

	_, err = personService.UpdatePerson(uint(id), map[string]interface{}{
		"name":     req.Name,
		"location": req.Location,
		"phone":    req.Phone,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Context.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Profile not found",
			})
			return
		}
		c.Context.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update profile",
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}

// HandlePersonFunc 返回一个处理受灾群众请求的Gin处理函数
func HandlePersonFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewPersonController(ctx)

		switch method {
		case "signUp":
			controller.SignUp()
		case "getAllPersons":
			controller.GetAllPersons()
		case "getPersonByID":
			controller.GetPersonByID()
		case "updatePerson":
			controller.UpdatePerson()
		case "deletePerson":
			controller.DeletePerson()
		case "getProfile":
			controller.GetProfile()
		case "updateProfile":
			controller.UpdateProfile()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "无效的方法",
			})
		}
	}
}
