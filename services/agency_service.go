package services

import (
	"errors"

	"crisislink-http-service/config"
	"crisislink-http-service/models"
	"crisislink-http-service/utils"

	"gorm.io/gorm"
)

// AgencySeverityRow 机构事态报告中的一行
type AgencySeverityRow struct {
	ID            uint   `json:"id"`
	AgencyName    string `json:"agencyName"`
	SeverityLevel int    `json:"severityLevel"`
}

// InterfaceAgencyService 定义政府机构服务接口
type InterfaceAgencyService interface {
	Register(agency *models.GovernmentAgency) error
	Authenticate(username, password string) (*models.GovernmentAgency, bool)
	GetAllAgencies() ([]models.GovernmentAgency, error)
	GetAgencyByID(id uint) (*models.GovernmentAgency, error)
	GetAgencyByUsername(username string) (*models.GovernmentAgency, error)
	UpdateAgency(id uint, updates map[string]interface{}) (*models.GovernmentAgency, error)
	DeleteAgency(id uint) error
	GetSeverityReport() ([]AgencySeverityRow, error)
}

// AgencyService 提供政府机构相关的服务
type AgencyService struct {
	DB       *gorm.DB
	Config   *config.Config
	Verifier utils.PasswordVerifier
}

// NewAgencyService 创建一个新的政府机构服务
func NewAgencyService(db *gorm.DB, cfg *config.Config) InterfaceAgencyService {
	return &AgencyService{
		DB:       db,
		Config:   cfg,
		Verifier: utils.BcryptVerifier{},
	}
}

// Register 注册新的政府机构
func (s *AgencyService) Register(agency *models.GovernmentAgency) error {
	var count int64
	if err := s.DB.Model(&models.GovernmentAgency{}).Where("username = ?", agency.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("用户名已存在")
	}

	if agency.Password != "" {
		hashed, err := s.Verifier.Hash(agency.Password)
		if err != nil {
			return errors.New("密码加密失败")
		}
		agency.Password = hashed
	}

	return s.DB.Create(agency).Error
}

// Authenticate 校验用户名和密码，仅返回是否通过
func (s *AgencyService) Authenticate(username, password string) (*models.GovernmentAgency, bool) {
	agency, err := s.GetAgencyByUsername(username)
	if err != nil {
		return nil, false
	}
	if !s.Verifier.Verify(password, agency.Password) {
		return nil, false
	}
	return agency, true
}

// GetAllAgencies 获取所有政府机构
func (s *AgencyService) GetAllAgencies() ([]models.GovernmentAgency, error) {
	var agencies []models.GovernmentAgency
	if err := s.DB.Find(&agencies).Error; err != nil {
		return nil, err
	}
	return agencies, nil
}

// GetAgencyByID 根据ID获取政府机构
func (s *AgencyService) GetAgencyByID(id uint) (*models.GovernmentAgency, error) {
	var agency models.GovernmentAgency
	if err := s.DB.First(&agency, id).Error; err != nil {
		return nil, err
	}
	return &agency, nil
}

// GetAgencyByUsername 根据用户名获取政府机构
func (s *AgencyService) GetAgencyByUsername(username string) (*models.GovernmentAgency, error) {
	var agency models.GovernmentAgency
	if err := s.DB.Where("username = ?", username).First(&agency).Error; err != nil {
		return nil, err
	}
	return &agency, nil
}

// UpdateAgency 更新政府机构信息
func (s *AgencyService) UpdateAgency(id uint, updates map[string]interface{}) (*models.GovernmentAgency, error) {
	agency, err := s.GetAgencyByID(id)
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

	if err := s.DB.Model(agency).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetAgencyByID(id)
}

// DeleteAgency 删除政府机构
func (s *AgencyService) DeleteAgency(id uint) error {
	agency, err := s.GetAgencyByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(agency).Error
}

// GetSeverityReport 生成所有机构的事态级别报告
func (s *AgencyService) GetSeverityReport() ([]AgencySeverityRow, error) {
	var rows []AgencySeverityRow
	if err := s.DB.Model(&models.GovernmentAgency{}).
		Select("id, agency_name, severity_level").
		Order("severity_level DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
