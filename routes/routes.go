package routes

import (
	"net/http"

	"crisislink-http-service/config"
	"crisislink-http-service/controllers"
	_ "crisislink-http-service/docs"
	"crisislink-http-service/middleware"
	"crisislink-http-service/services/container"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 设置正确的Content-Type，确保UTF-8编码
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})

	// 未匹配的路由统一返回错误结构
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Endpoint not found",
		})
	})

	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)

	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")

	// 健康检查
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// 认证路由
	api.POST("/auth/login", middleware.IPRateLimiter(5, 10), controllers.HandleAuthFunc(container, "login"))

	registerPersonRoutes(api, container)
	registerProfileRoutes(api, container)
	registerVolunteerRoutes(api, container)
	registerReliefProviderRoutes(api, container)
	registerAgencyRoutes(api, container)
	registerAdminRoutes(api, container)
	registerHelpRequestRoutes(api, container)
	registerEmergencyRoutes(api, container)
	registerAlertRoutes(api, container)
	registerSecurityRoutes(api, container)
}

// registerProfileRoutes 注册个人资料路由
func registerProfileRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	profiles := api.Group("/profiles")
	{
		profiles.GET("/:id", controllers.HandlePersonFunc(container, "getProfile"))
		profiles.PUT("/:id", controllers.HandlePersonFunc(container, "updateProfile"))
	}
}

// registerPersonRoutes 注册受灾群众路由
func registerPersonRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	people := api.Group("/people-in-crisis")
	{
		people.POST("/signup", controllers.HandlePersonFunc(container, "signUp"))
		people.GET("", controllers.HandlePersonFunc(container, "getAllPersons"))
		people.GET("/:id", controllers.HandlePersonFunc(container, "getPersonByID"))
		people.PUT("/:id", controllers.HandlePersonFunc(container, "updatePerson"))
		people.DELETE("/:id", controllers.HandlePersonFunc(container, "deletePerson"))
	}
}

// registerVolunteerRoutes 注册志愿者路由
func registerVolunteerRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	volunteers := api.Group("/volunteers")
	{
		volunteers.POST("/signup", controllers.HandleVolunteerFunc(container, "signUp"))
		volunteers.GET("", controllers.HandleVolunteerFunc(container, "getAllVolunteers"))
		volunteers.GET("/history/:id", controllers.HandleVolunteerFunc(container, "getHistory"))
		volunteers.POST("/donate/:id", controllers.HandleVolunteerFunc(container, "donate"))
		volunteers.POST("/help/:id", controllers.HandleVolunteerFunc(container, "offerHelp"))
		volunteers.GET("/:id", controllers.HandleVolunteerFunc(container, "getVolunteerByID"))
		volunteers.PUT("/:id", controllers.HandleVolunteerFunc(container, "updateVolunteer"))
		volunteers.DELETE("/:id", controllers.HandleVolunteerFunc(container, "deleteVolunteer"))
	}
}

// registerReliefProviderRoutes 注册救援物资提供方路由
func registerReliefProviderRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	providers := api.Group("/relief-providers")
	{
		providers.POST("/signup", controllers.HandleReliefProviderFunc(container, "signUp"))
		providers.GET("", controllers.HandleReliefProviderFunc(container, "getAllProviders"))
		providers.GET("/:id", controllers.HandleReliefProviderFunc(container, "getProviderByID"))
		providers.PUT("/:id", controllers.HandleReliefProviderFunc(container, "updateProvider"))
		providers.DELETE("/:id", controllers.HandleReliefProviderFunc(container, "deleteProvider"))
	}
}

// registerAgencyRoutes 注册政府救援机构路由
func registerAgencyRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	agencies := api.Group("/government-agencies")
	{
		agencies.POST("/signup", controllers.HandleAgencyFunc(container, "signUp"))
		agencies.GET("", controllers.HandleAgencyFunc(container, "getAllAgencies"))
		agencies.GET("/severity-report", controllers.HandleAgencyFunc(container, "getSeverityReport"))
		agencies.GET("/:id", controllers.HandleAgencyFunc(container, "getAgencyByID"))
		agencies.PUT("/:id", controllers.HandleAgencyFunc(container, "updateAgency"))
		agencies.DELETE("/:id", controllers.HandleAgencyFunc(container, "deleteAgency"))
		agencies.PUT("/:id/severity", controllers.HandleAgencyFunc(container, "escalateSeverity"))
		agencies.POST("/:id/emergency", controllers.HandleAgencyFunc(container, "triggerEmergency"))
	}
}

// registerAdminRoutes 注册系统管理员路由
func registerAdminRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	admins := api.Group("/admins")
	{
		admins.GET("", controllers.HandleAdminFunc(container, "getAllAdmins"))
		admins.GET("/:id", controllers.HandleAdminFunc(container, "getAdminByID"))
		admins.POST("", controllers.HandleAdminFunc(container, "createAdmin"))
		admins.PUT("/:id", controllers.HandleAdminFunc(container, "updateAdmin"))
		admins.DELETE("/:id", controllers.HandleAdminFunc(container, "deleteAdmin"))
	}
}

// registerHelpRequestRoutes 注册求助请求路由
func registerHelpRequestRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	requests := api.Group("/help-requests")
	{
		requests.POST("", controllers.HandleHelpRequestFunc(container, "createRequest"))
		requests.GET("", controllers.HandleHelpRequestFunc(container, "getAllRequests"))
		requests.GET("/user/:id", controllers.HandleHelpRequestFunc(container, "getRequestsByUser"))
		requests.GET("/:id", controllers.HandleHelpRequestFunc(container, "getRequestByID"))
		requests.PUT("/:id", controllers.HandleHelpRequestFunc(container, "updateStatus"))
		requests.DELETE("/:id", controllers.HandleHelpRequestFunc(container, "deleteRequest"))
	}
}

// registerEmergencyRoutes 注册应急协调路由
func registerEmergencyRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	emergency := api.Group("/emergency")
	{
		emergency.POST("/protocol", controllers.HandleEmergencyFunc(container, "triggerProtocol"))
		emergency.PUT("/protocol/:id/resolve", controllers.HandleEmergencyFunc(container, "resolveProtocol"))
		emergency.GET("/level", controllers.HandleEmergencyFunc(container, "getEmergencyLevel"))
		emergency.GET("/relief-effort", controllers.HandleEmergencyFunc(container, "trackReliefEffort"))

		emergency.POST("/personnel", controllers.HandleEmergencyFunc(container, "allocatePersonnel"))
		emergency.GET("/personnel", controllers.HandleEmergencyFunc(container, "getPersonnelStatus"))
		emergency.PUT("/personnel/:id/complete", controllers.HandleEmergencyFunc(container, "completePersonnel"))

		emergency.POST("/budget", controllers.HandleEmergencyFunc(container, "createBudget"))
		emergency.GET("/budget", controllers.HandleEmergencyFunc(container, "getBudgetStatus"))
		emergency.PUT("/budget/:id/allocate", controllers.HandleEmergencyFunc(container, "allocateBudget"))

		emergency.POST("/military", controllers.HandleEmergencyFunc(container, "requestMilitarySupport"))
		emergency.GET("/military", controllers.HandleEmergencyFunc(container, "getMilitaryStatus"))
		emergency.PUT("/military/:id/complete", controllers.HandleEmergencyFunc(container, "completeMilitary"))

		emergency.PUT("/operations/:id/end", controllers.HandleEmergencyFunc(container, "endOperation"))
	}
}

// registerAlertRoutes 注册告警路由
func registerAlertRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	alerts := api.Group("/alerts")
	{
		alerts.GET("/config", controllers.HandleAlertFunc(container, "getConfig"))
		alerts.PUT("/config", controllers.HandleAlertFunc(container, "updateConfig"))

		alerts.GET("/subscribers", controllers.HandleAlertFunc(container, "getSubscribers"))
		alerts.POST("/subscribers", controllers.HandleAlertFunc(container, "addSubscriber"))
		alerts.DELETE("/subscribers/:subscriber", controllers.HandleAlertFunc(container, "removeSubscriber"))

		// 广播是重操作，追加路径级限流
		alerts.POST("/broadcast", middleware.PathRateLimiter(2, 5), controllers.HandleAlertFunc(container, "broadcast"))
		alerts.GET("/history", controllers.HandleAlertFunc(container, "getHistory"))

		alerts.GET("/notifications/:subscriber", controllers.HandleAlertFunc(container, "getPendingNotifications"))
		alerts.POST("/notifications/:subscriber/delivered", controllers.HandleAlertFunc(container, "markDelivered"))
	}
}

// registerSecurityRoutes 注册安全审计路由
func registerSecurityRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	security := api.Group("/security")
	{
		security.GET("/logs", controllers.HandleSecurityFunc(container, "getLogs"))
		security.GET("/status", controllers.HandleSecurityFunc(container, "getStatus"))
		security.PUT("/settings", controllers.HandleSecurityFunc(container, "updateSettings"))
		security.GET("/verifications", controllers.HandleSecurityFunc(container, "getPendingVerifications"))
		security.POST("/verify/:id", controllers.HandleSecurityFunc(container, "verifyAccount"))
	}
}
