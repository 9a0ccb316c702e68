package services

import (
	"errors"

	"crisislink-http-service/config"
	"crisislink-http-service/models"
	"crisislink-http-service/utils"

	"gorm.io/gorm"
)

// InterfaceReliefProviderService 定义救援提供方服务接口
type InterfaceReliefProviderService interface {
	Register(provider *models.ReliefProvider) error
	Authenticate(username, password string) (*models.ReliefProvider, bool)
	GetAllProviders() ([]models.ReliefProvider, error)
	GetProviderByID(id uint) (*models.ReliefProvider, error)
	GetProviderByUsername(username string) (*models.ReliefProvider, error)
	UpdateProvider(id uint, updates map[string]interface{}) (*models.ReliefProvider, error)
	DeleteProvider(id uint) error
}

// ReliefProviderService 提供救援提供方相关的服务
type ReliefProviderService struct {
	DB       *gorm.DB
	Config   *config.Config
	Verifier utils.PasswordVerifier
}

// NewReliefProviderService 创建一个新的救援提供方服务
func NewReliefProviderService(db *gorm.DB, cfg *config.Config) InterfaceReliefProviderService {
	return &ReliefProviderService{
		DB:       db,
		Config:   cfg,
		Verifier: utils.BcryptVerifier{},
	}
}

// Register 注册新的救援提供方
func (s *ReliefProviderService) Register(provider *models.ReliefProvider) error {
	var count int64
	if err := s.DB.Model(&models.ReliefProvider{}).Where("username = ?", provider.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("用户名已存在")
	}

	if provider.Password != "" {
		hashed, err := s.Verifier.Hash(provider.Password)
		if err != nil {
			return errors.New("密码加密失败")
		}
		provider.Password = hashed
	}

	return s.DB.Create(provider).Error
}

// Authenticate 校验用户名和密码，仅返回是否通过
func (s *ReliefProviderService) Authenticate(username, password string) (*models.ReliefProvider, bool) {
	provider, err := s.GetProviderByUsername(username)
	if err != nil {
		return nil, false
	}
	if !s.Verifier.Verify(password, provider.Password) {
		return nil, false
	}
	return provider, true
}

// GetAllProviders 获取所有救援提供方
func (s *ReliefProviderService) GetAllProviders() ([]models.ReliefProvider, error) {
	var providers []models.ReliefProvider
	if err := s.DB.Find(&providers).Error; err != nil {
		return nil, err
	}
	return providers, nil
}

// GetProviderByID 根据ID获取救援提供方
func (s *ReliefProviderService) GetProviderByID(id uint) (*models.ReliefProvider, error) {
	var provider models.ReliefProvider
	if err := s.DB.First(&provider, id).Error; err != nil {
		return nil, err
	}
	return &provider, nil
}

// GetProviderByUsername 根据用户名获取救援提供方
func (s *ReliefProviderService) GetProviderByUsername(username string) (*models.ReliefProvider, error) {
	var provider models.ReliefProvider
	if err := s.DB.Where("username = ?", username).First(&provider).Error; err != nil {
		return nil, err
	}
	return &provider, nil
}

// UpdateProvider 更新救援提供方信息
func (s *ReliefProviderService) UpdateProvider(id uint, updates map[string]interface{}) (*models.ReliefProvider, error) {
	provider, err := s.GetProviderByID(id)
	if err != nil {
		return nil, err
	}

	if password, ok := updates["password"].(string); ok && password != "" {
		hashed, err := s.Verifier.Hash(password)
		if err != nil {
			return nil, errors.New("密码加密失败")
		}
		updates["password"] = hashed
	}

	if err := s.DB.Model(provider).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetProviderByID(id)
}

// DeleteProvider 删除救援提供方
func (s *ReliefProviderService) DeleteProvider(id uint) error {
	provider, err := s.GetProviderByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(provider).Error
}
