package services

import (
	"errors"

	"crisislink-http-service/config"
	"crisislink-http-service/models"

	"gorm.io/gorm"
)

// InterfaceHelpRequestService 定义求助请求服务接口
type InterfaceHelpRequestService interface {
	CreateRequest(request *models.HelpRequest) error
	UpdateStatus(requestID uint, status string) error
	GetRequestByID(requestID uint) (*models.HelpRequest, error)
	GetRequestsByRequesterID(requesterID uint) ([]models.HelpRequest, error)
	GetAllRequests() ([]models.HelpRequest, error)
	DeleteRequest(requestID uint) error
}

// HelpRequestService 管理求助请求的生命周期
// 请求写入和请求人活跃标志的同步在同一个事务中完成，避免两者漂移
type HelpRequestService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewHelpRequestService 创建一个新的求助请求服务
func NewHelpRequestService(db *gorm.DB, cfg *config.Config) InterfaceHelpRequestService {
	return &HelpRequestService{
		DB:     db,
		Config: cfg,
	}
}

// CreateRequest 创建求助请求，状态为 Pending，并置位请求人的活跃请求标志
func (s *HelpRequestService) CreateRequest(request *models.HelpRequest) error {
	if request.RequesterID == 0 {
		return errors.New("必须指定请求人")
	}
	request.Status = models.HelpRequestStatusPending

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(request).Error; err != nil {
			return err
		}

		// 同步请求人的活跃请求标志；请求人不存在时不视为错误
		var person models.PersonInCrisis
		if err := tx.First(&person, request.RequesterID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		return tx.Model(&person).Update("has_active_request", true).Error
	})
}

// UpdateStatus 更新求助请求状态
// status 在 API 边界上是自由字符串，未知值原样接受；
// Resolved / Cancelled 会清除请求人的活跃请求标志
func (s *HelpRequestService) UpdateStatus(requestID uint, status string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var request models.HelpRequest
		if err := tx.First(&request, requestID).Error; err != nil {
			return err
		}

		request.Status = status
		if err := tx.Save(&request).Error; err != nil {
			return err
		}

		if !request.IsClosed() {
			return nil
		}

		var person models.PersonInCrisis
		if err := tx.First(&person, request.RequesterID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		return tx.Model(&person).Update("has_active_request", false).Error
	})
}

// GetRequestByID 根据ID获取求助请求
func (s *HelpRequestService) GetRequestByID(requestID uint) (*models.HelpRequest, error) {
	var request models.HelpRequest
	if err := s.DB.First(&request, requestID).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// GetRequestsByRequesterID 获取某请求人的所有求助请求
func (s *HelpRequestService) GetRequestsByRequesterID(requesterID uint) ([]models.HelpRequest, error) {
	var requests []models.HelpRequest
	if err := s.DB.Where("requester_id = ?", requesterID).Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// GetAllRequests 获取所有求助请求
func (s *HelpRequestService) GetAllRequests() ([]models.HelpRequest, error) {
	var requests []models.HelpRequest
	if err := s.DB.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// DeleteRequest 删除求助请求（硬删除，无其他副作用）
func (s *HelpRequestService) DeleteRequest(requestID uint) error {
	var request models.HelpRequest
	if err := s.DB.First(&request, requestID).Error; err != nil {
		return err
	}
	return s.DB.Delete(&request).Error
}
