package container

import (
	"context"
	"log"
	"sync"
	"time"

	"crisislink-http-service/config"
	"crisislink-http-service/services"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 数据存储服务
	redisService services.InterfaceRedisService

	// MQTT告警推送服务
	mqttAlertService services.InterfaceMQTTAlertService

	// 业务服务
	personService            services.InterfacePersonService
	volunteerService         services.InterfaceVolunteerService
	reliefProviderService    services.InterfaceReliefProviderService
	agencyService            services.InterfaceAgencyService
	adminService             services.InterfaceAdminService
	helpRequestService       services.InterfaceHelpRequestService
	reliefOperationService   services.InterfaceReliefOperationService
	alertService             services.InterfaceAlertService
	emergencyProtocolService services.InterfaceEmergencyProtocolService
	securityService          services.InterfaceSecurityService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	// 测试Redis连接
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis连接测试失败: %v，将不使用Redis缓存", err)
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化Redis服务
	c.redisService = services.NewRedisService(c.config)

	// 初始化MQTT告警推送服务 - 使用接口类型
	c.mqttAlertService = services.NewMQTTAlertService(c.config)

	// 连接MQTT服务器（未启用时跳过，广播退化为纯拉取模式）
	if c.config.MQTTEnabled {
		if err := c.mqttAlertService.Connect(); err != nil {
			log.Printf("MQTT服务连接失败: %v", err)
		}
	}

	// 初始化业务服务
	c.personService = services.NewPersonService(c.db, c.config)
	c.volunteerService = services.NewVolunteerService(c.db, c.config)
	c.reliefProviderService = services.NewReliefProviderService(c.db, c.config)
	c.agencyService = services.NewAgencyService(c.db, c.config)
	c.adminService = services.NewAdminService(c.db, c.config)
	c.helpRequestService = services.NewHelpRequestService(c.db, c.config)
	c.reliefOperationService = services.NewReliefOperationService(c.db, c.config)
	c.securityService = services.NewSecurityService(c.db, c.config)

	// 告警服务带可选的MQTT推送通道；应急预案服务依赖告警服务
	c.alertService = services.NewAlertService(c.db, c.config, c.mqttAlertService)
	c.emergencyProtocolService = services.NewEmergencyProtocolService(c.db, c.config, c.alertService)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "redis":
		return c.redisService
	case "mqtt_alert":
		return c.mqttAlertService
	case "person":
		return c.personService
	case "volunteer":
		return c.volunteerService
	case "relief_provider":
		return c.reliefProviderService
	case "agency":
		return c.agencyService
	case "admin":
		return c.adminService
	case "help_request":
		return c.helpRequestService
	case "relief_operation":
		return c.reliefOperationService
	case "alert":
		return c.alertService
	case "emergency_protocol":
		return c.emergencyProtocolService
	case "security":
		return c.securityService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
