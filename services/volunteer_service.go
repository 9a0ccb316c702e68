package services

import (
	"errors"

	"crisislink-http-service/config"
	"crisislink-http-service/models"
	"crisislink-http-service/utils"

	"gorm.io/gorm"
)

// InterfaceVolunteerService 定义志愿者服务接口
type InterfaceVolunteerService interface {
	Register(volunteer *models.Volunteer) error
	Authenticate(username, password string) (*models.Volunteer, bool)
	GetAllVolunteers() ([]models.Volunteer, error)
	GetVolunteerByID(id uint) (*models.Volunteer, error)
	GetVolunteerByUsername(username string) (*models.Volunteer, error)
	UpdateVolunteer(id uint, updates map[string]interface{}) (*models.Volunteer, error)
	DeleteVolunteer(id uint) error
	Donate(volunteerID uint, amount float64) error
	OfferHelp(volunteerID uint, description string) error
	AcceptRequest(volunteerID, requestID uint) error
	GetVolunteerHistory(volunteerID uint) ([]uint, error)
}

// VolunteerService 提供志愿者相关的服务
type VolunteerService struct {
	DB       *gorm.DB
	Config   *config.Config
	Verifier utils.PasswordVerifier
}

// NewVolunteerService 创建一个新的志愿者服务
func NewVolunteerService(db *gorm.DB, cfg *config.Config) InterfaceVolunteerService {
	return &VolunteerService{
		DB:       db,
		Config:   cfg,
		Verifier: utils.BcryptVerifier{},
	}
}

// Register 注册新志愿者，并同时建立一条待审核记录
func (s *VolunteerService) Register(volunteer *models.Volunteer) error {
	var count int64
	if err := s.DB.Model(&models.Volunteer{}).Where("username = ?", volunteer.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("用户名已存在")
	}

	if volunteer.Password != "" {
		hashed, err := s.Verifier.Hash(volunteer.Password)
		if err != nil {
			return errors.New("密码加密失败")
		}
		volunteer.Password = hashed
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(volunteer).Error; err != nil {
			return err
		}
		return tx.Create(&models.AccountVerification{
			UserType: "volunteer",
			UserID:   volunteer.ID,
			Status:   models.VerificationStatusPending,
		}).Error
	})
}

// Authenticate 校验用户名和密码，仅返回是否通过
func (s *VolunteerService) Authenticate(username, password string) (*models.Volunteer, bool) {
	volunteer, err := s.GetVolunteerByUsername(username)
	if err != nil {
		return nil, false
	}
	if !s.Verifier.Verify(password, volunteer.Password) {
		return nil, false
	}
	return volunteer, true
}

// GetAllVolunteers 获取所有志愿者
func (s *VolunteerService) GetAllVolunteers() ([]models.Volunteer, error) {
	var volunteers []models.Volunteer
	if err := s.DB.Find(&volunteers).Error; err != nil {
		return nil, err
	}
	return volunteers, nil
}

// GetVolunteerByID 根据ID获取志愿者
func (s *VolunteerService) GetVolunteerByID(id uint) (*models.Volunteer, error) {
	var volunteer models.Volunteer
	if err := s.DB.First(&volunteer, id).Error; err != nil {
		return nil, err
	}
	return &volunteer, nil
}

// GetVolunteerByUsername 根据用户名获取志愿者
func (s *VolunteerService) GetVolunteerByUsername(username string) (*models.Volunteer, error) {
	var volunteer models.Volunteer
	if err := s.DB.Where("username = ?", username).First(&volunteer).Error; err != nil {
		return nil, err
	}
	return &volunteer, nil
}

// UpdateVolunteer 更新志愿者信息
func (s *VolunteerService) UpdateVolunteer(id uint, updates map[string]interface{}) (*models.Volunteer, error) {
	volunteer, err := s.GetVolunteerByID(id)
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

	if err := s.DB.Model(volunteer).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetVolunteerByID(id)
}

// DeleteVolunteer 删除志愿者
func (s *VolunteerService) DeleteVolunteer(id uint) error {
	volunteer, err := s.GetVolunteerByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(volunteer).Error
}

// Donate 记录志愿者的一笔捐款
func (s *VolunteerService) Donate(volunteerID uint, amount float64) error {
	if _, err := s.GetVolunteerByID(volunteerID); err != nil {
		return err
	}
	return s.DB.Create(&models.Donation{
		VolunteerID: volunteerID,
		Amount:      amount,
	}).Error
}

// OfferHelp 登记志愿者的现场支援意向
func (s *VolunteerService) OfferHelp(volunteerID uint, description string) error {
	return s.DB.Create(&models.VolunteerHelpOffer{
		VolunteerID: volunteerID,
		Description: description,
	}).Error
}

// AcceptRequest 记录志愿者承接某条求助请求
func (s *VolunteerService) AcceptRequest(volunteerID, requestID uint) error {
	return s.DB.Create(&models.VolunteerAssignment{
		VolunteerID: volunteerID,
		RequestID:   requestID,
	}).Error
}

// GetVolunteerHistory 按时间倒序返回志愿者承接过的求助请求ID
func (s *VolunteerService) GetVolunteerHistory(volunteerID uint) ([]uint, error) {
	var assignments []models.VolunteerAssignment
	err := s.DB.Where("volunteer_id = ?", volunteerID).
		Order("timestamp DESC, id DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	history := make([]uint, 0, len(assignments))
	for _, assignment := range assignments {
		history = append(history, assignment.RequestID)
	}
	return history, nil
}
