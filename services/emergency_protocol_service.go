package services

import (
	"errors"

	"crisislink-http-service/config"
	"crisislink-http-service/models"

	"gorm.io/gorm"
)

// EmergencyLevel 当前应急级别
type EmergencyLevel struct {
	Level       string `json:"level"`
	Description string `json:"description"`
}

// InterfaceEmergencyProtocolService 定义应急预案与事态升级服务接口
type InterfaceEmergencyProtocolService interface {
	TriggerProtocol(protocol *models.EmergencyProtocol) error
	ResolveProtocol(protocolID uint) error
	GetCurrentEmergencyLevel() (*EmergencyLevel, error)
	EscalateSeverity(agencyID uint, delta int) error
	TriggerAgencyEmergency(agencyID uint) error
}

// EmergencyProtocolService 记录应急预案触发并维护机构事态级别
// 触发新预案不会结束之前的预案，多个预案可同时处于 active 状态
type EmergencyProtocolService struct {
	DB     *gorm.DB
	Config *config.Config
	Alerts InterfaceAlertService
}

// NewEmergencyProtocolService 创建一个新的应急预案服务
func NewEmergencyProtocolService(db *gorm.DB, cfg *config.Config, alerts InterfaceAlertService) InterfaceEmergencyProtocolService {
	return &EmergencyProtocolService{
		DB:     db,
		Config: cfg,
		Alerts: alerts,
	}
}

// TriggerProtocol 记录一次应急预案触发，状态为 active
func (s *EmergencyProtocolService) TriggerProtocol(protocol *models.EmergencyProtocol) error {
	if protocol.Level == "" {
		return errors.New("必须指定预案级别")
	}
	protocol.Status = models.ProtocolStatusActive
	return s.DB.Create(protocol).Error
}

// ResolveProtocol 将某预案标记为已解除
func (s *EmergencyProtocolService) ResolveProtocol(protocolID uint) error {
	var protocol models.EmergencyProtocol
	if err := s.DB.First(&protocol, protocolID).Error; err != nil {
		return err
	}
	if protocol.Status != models.ProtocolStatusActive {
		return errors.New("预案已解除")
	}
	return s.DB.Model(&protocol).Update("status", models.ProtocolStatusResolved).Error
}

// GetCurrentEmergencyLevel 返回最近触发且仍 active 的预案级别；
// 没有任何活跃预案时返回 normal 哨兵值
func (s *EmergencyProtocolService) GetCurrentEmergencyLevel() (*EmergencyLevel, error) {
	var protocol models.EmergencyProtocol
	err := s.DB.Where("status = ?", models.ProtocolStatusActive).
		Order("triggered_at DESC, id DESC").
		Limit(1).First(&protocol).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &EmergencyLevel{
				Level:       models.EmergencyLevelNormal,
				Description: "No active emergency protocols",
			}, nil
		}
		return nil, err
	}

	return &EmergencyLevel{
		Level:       protocol.Level,
		Description: protocol.Description,
	}, nil
}

// EscalateSeverity 调整机构事态级别，结果为负时拒绝且不写入
func (s *EmergencyProtocolService) EscalateSeverity(agencyID uint, delta int) error {
	var agency models.GovernmentAgency
	if err := s.DB.First(&agency, agencyID).Error; err != nil {
		return err
	}

	newLevel := agency.SeverityLevel + delta
	if newLevel < 0 {
		return errors.New("事态级别不能为负")
	}

	return s.DB.Model(&agency).Update("severity_level", newLevel).Error
}

// TriggerAgencyEmergency 机构自触发应急：事态级别加一并广播告警
func (s *EmergencyProtocolService) TriggerAgencyEmergency(agencyID uint) error {
	var agency models.GovernmentAgency
	if err := s.DB.First(&agency, agencyID).Error; err != nil {
		return err
	}

	newLevel := agency.SeverityLevel + 1
	if err := s.DB.Model(&agency).Update("severity_level", newLevel).Error; err != nil {
		return err
	}

	message := "EMERGENCY PROTOCOL triggered by " + agency.AgencyName
	if err := s.Alerts.Broadcast(message, "Emergency"); err != nil {
		config.Warning("应急广播失败: %v", err)
	}
	return nil
}
