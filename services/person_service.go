package services

import (
	"errors"

	"crisislink-http-service/config"
	"crisislink-http-service/models"
	"crisislink-http-service/utils"

	"gorm.io/gorm"
)

// InterfacePersonService 定义受灾用户服务接口
type InterfacePersonService interface {
	Register(person *models.PersonInCrisis) error
	Authenticate(username, password string) (*models.PersonInCrisis, bool)
	GetAllPersons() ([]models.PersonInCrisis, error)
	GetPersonByID(id uint) (*models.PersonInCrisis, error)
	GetPersonByUsername(username string) (*models.PersonInCrisis, error)
	UpdatePerson(id uint, updates map[string]interface{}) (*models.PersonInCrisis, error)
	DeletePerson(id uint) error
}

// PersonService 提供受灾用户相关的服务
type PersonService struct {
	DB       *gorm.DB
	Config   *config.Config
	Verifier utils.PasswordVerifier
}

// NewPersonService 创建一个新的受灾用户服务
func NewPersonService(db *gorm.DB, cfg *config.Config) InterfacePersonService {
	return &PersonService{
		DB:       db,
		Config:   cfg,
		Verifier: utils.BcryptVerifier{},
	}
}

// Register 注册新的受灾用户
func (s *PersonService) Register(person *models.PersonInCrisis) error {
	// 验证用户名唯一性
	var count int64
	if err := s.DB.Model(&models.PersonInCrisis{}).Where("username = ?", person.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("用户名已存在")
	}

	// 设置密码哈希
	if person.Password != "" {
		hashed, err := s.Verifier.Hash(person.Password)
		if err != nil {
			return errors.New("密码加密失败")
		}
		person.Password = hashed
	}

	return s.DB.Create(person).Error
}

// Authenticate 校验用户名和密码，仅返回是否通过
func (s *PersonService) Authenticate(username, password string) (*models.PersonInCrisis, bool) {
	person, err := s.GetPersonByUsername(username)
	if err != nil {
		return nil, false
	}
	if !s.Verifier.Verify(password, person.Password) {
		return nil, false
	}
	return person, true
}

// GetAllPersons 获取所有受灾用户
func (s *PersonService) GetAllPersons() ([]models.PersonInCrisis, error) {
	var persons []models.PersonInCrisis
	if err := s.DB.Find(&persons).Error; err != nil {
		return nil, err
	}
	return persons, nil
}

// GetPersonByID 根据ID获取受灾用户
func (s *PersonService) GetPersonByID(id uint) (*models.PersonInCrisis, error) {
	var person models.PersonInCrisis
	if err := s.DB.First(&person, id).Error; err != nil {
		return nil, err
	}
	return &person, nil
}

// GetPersonByUsername 根据用户名获取受灾用户
func (s *PersonService) GetPersonByUsername(username string) (*models.PersonInCrisis, error) {
	var person models.PersonInCrisis
	if err := s.DB.Where("username = ?", username).First(&person).Error; err != nil {
		return nil, err
	}
	return &person, nil
}

// UpdatePerson 更新受灾用户信息
func (s *PersonService) UpdatePerson(id uint, updates map[string]interface{}) (*models.PersonInCrisis, error) {
	person, err := s.GetPersonByID(id)
	if err != nil {
		return nil, err
	}

	// 如果更新密码，需要进行哈希处理
	if password, ok := updates["password"].(string); ok && password != "" {
		hashed, err := s.Verifier.Hash(password)
		if err != nil {
			return nil, errors.New("密码加密失败")
		}
		updates["password"] = hashed
	}

	if err := s.DB.Model(person).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetPersonByID(id)
}

// DeletePerson 删除受灾用户（硬删除，不级联删除其求助请求）
func (s *PersonService) DeletePerson(id uint) error {
	person, err := s.GetPersonByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(person).Error
}
