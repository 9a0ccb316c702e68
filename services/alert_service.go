package services

import (
	"errors"
	"sync"
	"time"

	"crisislink-http-service/config"
	"crisislink-http-service/models"

	"gorm.io/gorm"
)

// InterfaceAlertService 定义告警广播服务接口
type InterfaceAlertService interface {
	AddSubscriber(subscriber string) error
	RemoveSubscriber(subscriber string) error
	GetSubscribers() []string
	ReloadSubscribers() error
	Broadcast(message, alertType string) error
	GetPendingNotifications(subscriber string) ([]models.AlertNotification, error)
	MarkDelivered(subscriber string) error
	GetAlertConfig() (*models.AlertSystem, error)
	UpdateAlertConfig(updates map[string]interface{}) (*models.AlertSystem, error)
	GetHistory(limit int) ([]models.AlertHistory, error)
}

// AlertService 维护订阅者集合并向其广播告警
// 订阅者集合以数据库唯一索引为准，内存镜像仅服务于快速读取，
// 由互斥锁保护；广播展开时直接读库，避免镜像过期导致漏发
type AlertService struct {
	DB        *gorm.DB
	Config    *config.Config
	Publisher InterfaceMQTTAlertService // 可选的MQTT推送通道，可为 nil

	subscribers []string
	mu          sync.RWMutex
}

// NewAlertService 创建一个新的告警广播服务
func NewAlertService(db *gorm.DB, cfg *config.Config, publisher InterfaceMQTTAlertService) InterfaceAlertService {
	service := &AlertService{
		DB:        db,
		Config:    cfg,
		Publisher: publisher,
	}
	// 启动时加载一次订阅者镜像，失败不致命
	if err := service.ReloadSubscribers(); err != nil {
		config.Warning("加载告警订阅者失败: %v", err)
	}
	return service
}

// getOrCreateSystem 获取告警系统单例记录，不存在则按默认配置创建
func (s *AlertService) getOrCreateSystem(tx *gorm.DB) (*models.AlertSystem, error) {
	var system models.AlertSystem
	err := tx.First(&system).Error
	if err == nil {
		return &system, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	system = models.AlertSystem{
		UrgencyThreshold: s.Config.AlertUrgencyThreshold,
		AutoAssign:       false,
	}
	if err := tx.Create(&system).Error; err != nil {
		return nil, err
	}
	return &system, nil
}

// AddSubscriber 添加订阅者，幂等：重复添加不报错
func (s *AlertService) AddSubscriber(subscriber string) error {
	if subscriber == "" {
		return errors.New("订阅者标识不能为空")
	}

	var count int64
	if err := s.DB.Model(&models.AlertSubscriber{}).Where("subscriber = ?", subscriber).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		if err := s.DB.Create(&models.AlertSubscriber{Subscriber: subscriber}).Error; err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.subscribers {
		if existing == subscriber {
			return nil
		}
	}
	s.subscribers = append(s.subscribers, subscriber)
	return nil
}

// RemoveSubscriber 移除订阅者，幂等：不存在时不报错
func (s *AlertService) RemoveSubscriber(subscriber string) error {
	if err := s.DB.Where("subscriber = ?", subscriber).Delete(&models.AlertSubscriber{}).Error; err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.subscribers {
		if existing == subscriber {
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			break
		}
	}
	return nil
}

// GetSubscribers 返回内存镜像中的订阅者列表
func (s *AlertService) GetSubscribers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]string, len(s.subscribers))
	copy(result, s.subscribers)
	return result
}

// ReloadSubscribers 从数据库重新加载订阅者镜像
func (s *AlertService) ReloadSubscribers() error {
	var rows []models.AlertSubscriber
	if err := s.DB.Order("id").Find(&rows).Error; err != nil {
		return err
	}

	subscribers := make([]string, 0, len(rows))
	for _, row := range rows {
		subscribers = append(subscribers, row.Subscriber)
	}

	s.mu.Lock()
	s.subscribers = subscribers
	s.mu.Unlock()
	return nil
}

// Broadcast 广播一条告警：写入一条历史记录，更新单例的最近告警信息，
// 并为每个当前订阅者生成一行待投递通知，全部在同一个事务中完成。
// 事务提交后再尽力通过MQTT推送，推送失败不影响广播结果
func (s *AlertService) Broadcast(message, alertType string) error {
	if alertType == "" {
		alertType = models.AlertTypeGeneral
	}

	var fanout int
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		if err := tx.Create(&models.AlertHistory{
			Type:      alertType,
			Message:   message,
			Timestamp: now,
		}).Error; err != nil {
			return err
		}

		system, err := s.getOrCreateSystem(tx)
		if err != nil {
			return err
		}
		if err := tx.Model(system).Updates(map[string]interface{}{
			"last_alert_time":    now,
			"last_alert_type":    alertType,
			"last_alert_message": message,
		}).Error; err != nil {
			return err
		}

		var subscriberRows []models.AlertSubscriber
		if err := tx.Find(&subscriberRows).Error; err != nil {
			return err
		}
		for _, row := range subscriberRows {
			if err := tx.Create(&models.AlertNotification{
				Subscriber: row.Subscriber,
				AlertType:  alertType,
				Message:    message,
				Timestamp:  now,
			}).Error; err != nil {
				return err
			}
		}
		fanout = len(subscriberRows)
		return nil
	})
	if err != nil {
		return err
	}

	config.Info("广播告警: %s (%s)，订阅者 %d 人", message, alertType, fanout)

	if s.Publisher != nil && s.Publisher.IsConnected() {
		if err := s.Publisher.PublishAlert(alertType, message); err != nil {
			config.Warning("MQTT推送告警失败: %v", err)
		}
	}
	return nil
}

// GetPendingNotifications 获取某订阅者的待投递通知，按时间升序
func (s *AlertService) GetPendingNotifications(subscriber string) ([]models.AlertNotification, error) {
	var notifications []models.AlertNotification
	err := s.DB.Where("subscriber = ? AND delivered = ?", subscriber, false).
		Order("timestamp ASC, id ASC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkDelivered 将某订阅者的所有待投递通知批量置为已投递。
// 不带水位线：与并发的 Broadcast 竞争时，刚插入的通知可能被
// 本次调用一并置为已投递，属于已知且可接受的模糊语义
func (s *AlertService) MarkDelivered(subscriber string) error {
	return s.DB.Model(&models.AlertNotification{}).
		Where("subscriber = ? AND delivered = ?", subscriber, false).
		Update("delivered", true).Error
}

// GetAlertConfig 获取告警系统配置（含最近一次告警信息）
func (s *AlertService) GetAlertConfig() (*models.AlertSystem, error) {
	return s.getOrCreateSystem(s.DB)
}

// UpdateAlertConfig 部分更新告警系统配置
func (s *AlertService) UpdateAlertConfig(updates map[string]interface{}) (*models.AlertSystem, error) {
	system, err := s.getOrCreateSystem(s.DB)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.DB.Model(system).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.getOrCreateSystem(s.DB)
}

// GetHistory 获取广播历史，按时间倒序
func (s *AlertService) GetHistory(limit int) ([]models.AlertHistory, error) {
	if limit <= 0 {
		limit = 100
	}
	var history []models.AlertHistory
	err := s.DB.Order("timestamp DESC, id DESC").Limit(limit).Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}
