package services

import (
	"errors"
	"time"

	"crisislink-http-service/config"
	"crisislink-http-service/models"

	"gorm.io/gorm"
)

// SecurityStatus 安全状况汇总
type SecurityStatus struct {
	ActiveSessions      int   `json:"active_sessions"`
	FailedLoginsLastHr  int64 `json:"failed_logins_last_hour"`
	ActiveAlerts        int64 `json:"active_alerts"`
	PendingVerification int64 `json:"pending_verifications"`
}

// InterfaceSecurityService 定义安全审计与账号审核服务接口
type InterfaceSecurityService interface {
	LogEvent(eventType, detail string) error
	GetSecurityLogs(limit int) ([]models.SecurityLog, error)
	GetSecurityStatus() (*SecurityStatus, error)
	UpdateSecuritySettings(updates map[string]interface{}) (*models.SecuritySetting, error)
	GetPendingVerifications() ([]models.AccountVerification, error)
	VerifyAccount(verificationID uint, approved bool, notes string) error
}

// SecurityService 记录安全事件并处理账号审核流转
type SecurityService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewSecurityService 创建一个新的安全服务
func NewSecurityService(db *gorm.DB, cfg *config.Config) InterfaceSecurityService {
	return &SecurityService{
		DB:     db,
		Config: cfg,
	}
}

// LogEvent 追加一条安全事件记录
func (s *SecurityService) LogEvent(eventType, detail string) error {
	if eventType == "" {
		return errors.New("事件类型不能为空")
	}
	return s.DB.Create(&models.SecurityLog{
		EventType: eventType,
		Detail:    detail,
	}).Error
}

// GetSecurityLogs 按时间倒序返回安全事件记录
func (s *SecurityService) GetSecurityLogs(limit int) ([]models.SecurityLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var logs []models.SecurityLog
	err := s.DB.Order("timestamp DESC, id DESC").Limit(limit).Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// GetSecurityStatus 汇总安全状况。无会话跟踪，active_sessions 恒为0；
// active_alerts 取当前活跃的应急预案数
func (s *SecurityService) GetSecurityStatus() (*SecurityStatus, error) {
	status := &SecurityStatus{}

	cutoff := time.Now().Add(-time.Hour)
	err := s.DB.Model(&models.SecurityLog{}).
		Where("event_type = ? AND timestamp > ?", models.SecurityEventFailedLogin, cutoff).
		Count(&status.FailedLoginsLastHr).Error
	if err != nil {
		return nil, err
	}

	err = s.DB.Model(&models.EmergencyProtocol{}).
		Where("status = ?", models.ProtocolStatusActive).
		Count(&status.ActiveAlerts).Error
	if err != nil {
		return nil, err
	}

	err = s.DB.Model(&models.AccountVerification{}).
		Where("status = ?", models.VerificationStatusPending).
		Count(&status.PendingVerification).Error
	if err != nil {
		return nil, err
	}

	return status, nil
}

// getOrCreateSettings 获取安全设置单例记录，不存在则按默认值创建
func (s *SecurityService) getOrCreateSettings(tx *gorm.DB) (*models.SecuritySetting, error) {
	var settings models.SecuritySetting
	err := tx.First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = models.SecuritySetting{
		MaxLoginAttempts: 5,
		SessionTimeout:   30,
	}
	if err := tx.Create(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSecuritySettings 部分更新安全设置
func (s *SecurityService) UpdateSecuritySettings(updates map[string]interface{}) (*models.SecuritySetting, error) {
	settings, err := s.getOrCreateSettings(s.DB)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.DB.Model(settings).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.getOrCreateSettings(s.DB)
}

// GetPendingVerifications 返回所有待审核的账号记录
func (s *SecurityService) GetPendingVerifications() ([]models.AccountVerification, error) {
	var verifications []models.AccountVerification
	err := s.DB.Where("status = ?", models.VerificationStatusPending).
		Order("created_at ASC, id ASC").
		Find(&verifications).Error
	if err != nil {
		return nil, err
	}
	return verifications, nil
}

// VerifyAccount 审核账号：更新审核记录，通过时同步把对应用户标记为已认证
func (s *SecurityService) VerifyAccount(verificationID uint, approved bool, notes string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var verification models.AccountVerification
		if err := tx.First(&verification, verificationID).Error; err != nil {
			return err
		}

		status := models.VerificationStatusRejected
		if approved {
			status = models.VerificationStatusApproved
		}

		now := time.Now()
		err := tx.Model(&verification).Updates(map[string]interface{}{
			"status":      status,
			"notes":       notes,
			"verified_at": now,
		}).Error
		if err != nil {
			return err
		}

		if !approved {
			return nil
		}

		switch verification.UserType {
		case "people_in_crisis":
			return tx.Model(&models.PersonInCrisis{}).Where("id = ?", verification.UserID).
				Update("verified", true).Error
		case "volunteer":
			return tx.Model(&models.Volunteer{}).Where("id = ?", verification.UserID).
				Update("verified", true).Error
		case "relief_provider":
			return tx.Model(&models.ReliefProvider{}).Where("id = ?", verification.UserID).
				Update("verified", true).Error
		case "government_agency":
			return tx.Model(&models.GovernmentAgency{}).Where("id = ?", verification.UserID).
				Update("verified", true).Error
		default:
			return errors.New("未知的用户类型")
		}
	})
}
