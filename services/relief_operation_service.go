package services

import (
	"errors"
	"sync"
	"time"

	"crisislink-http-service/config"
	"crisislink-http-service/models"

	"gorm.io/gorm"
)

// PersonnelStatusRow 人员分配看板中的一行
type PersonnelStatusRow struct {
	Type      string `json:"type"`
	Location  string `json:"location"`
	Count     int    `json:"count"`
	Priority  int    `json:"priority"`
	Status    string `json:"status"`
	Operation string `json:"operation"`
}

// BudgetStatusRow 预算看板中的一行
type BudgetStatusRow struct {
	Category  string  `json:"category"`
	Amount    float64 `json:"amount"`
	Priority  int     `json:"priority"`
	Status    string  `json:"status"`
	Location  string  `json:"location"`
	Operation string  `json:"operation"`
}

// MilitaryStatusRow 军事支援看板中的一行（历史接口不关联行动名称）
type MilitaryStatusRow struct {
	Type        string `json:"type"`
	Location    string `json:"location"`
	Priority    int    `json:"priority"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// ReliefEffortReport 救援行动总览
type ReliefEffortReport struct {
	Operations        []models.ReliefOperation `json:"operations"`
	ActiveOperations  int                      `json:"active_operations"`
	ResourcesDeployed int                      `json:"resources_deployed"`
	PersonnelDeployed int                      `json:"personnel_deployed"`
}

// InterfaceReliefOperationService 定义救援行动协调服务接口
type InterfaceReliefOperationService interface {
	AllocatePersonnel(allocation *models.PersonnelAllocation) error
	CreateBudget(budget *models.EmergencyBudget, location string) error
	RequestMilitarySupport(request *models.MilitarySupportRequest) error
	GetPersonnelStatus() ([]PersonnelStatusRow, error)
	GetBudgetStatus() ([]BudgetStatusRow, error)
	GetMilitaryStatus() ([]MilitaryStatusRow, error)
	TrackReliefEffort() (*ReliefEffortReport, error)
	EndOperation(operationID uint) error
	CompletePersonnel(allocationID uint) error
	AllocateBudget(budgetID uint) error
	CompleteMilitary(requestID uint) error
}

// ReliefOperationService 按地点协调救援行动
// 同一地点同时最多存在一个 active 行动是硬性约定：
// find-or-create 序列放在单个事务中，并按地点串行化，
// 避免并发请求在同一地点各自创建行动
type ReliefOperationService struct {
	DB     *gorm.DB
	Config *config.Config

	locationLocks sync.Map // location -> *sync.Mutex
}

// NewReliefOperationService 创建一个新的救援行动协调服务
func NewReliefOperationService(db *gorm.DB, cfg *config.Config) InterfaceReliefOperationService {
	return &ReliefOperationService{
		DB:     db,
		Config: cfg,
	}
}

// lockLocation 获取某地点的互斥锁，返回解锁函数
func (s *ReliefOperationService) lockLocation(location string) func() {
	value, _ := s.locationLocks.LoadOrStore(location, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// resolveOperation 查找该地点的 active 行动，不存在则按给定名称创建
// 行动身份完全由地点字符串（区分大小写的精确匹配）决定
func (s *ReliefOperationService) resolveOperation(tx *gorm.DB, location, name string) (uint, error) {
	var operation models.ReliefOperation
	err := tx.Where("location = ? AND status = ?", location, models.OperationStatusActive).
		Limit(1).First(&operation).Error
	if err == nil {
		return operation.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	operation = models.ReliefOperation{
		Name:     name,
		Location: location,
		Status:   models.OperationStatusActive,
	}
	if err := tx.Create(&operation).Error; err != nil {
		return 0, err
	}
	return operation.ID, nil
}

// AllocatePersonnel 向某地点的救援行动分配人员，必要时按需创建行动
func (s *ReliefOperationService) AllocatePersonnel(allocation *models.PersonnelAllocation) error {
	if allocation.Location == "" {
		return errors.New("必须指定地点")
	}
	unlock := s.lockLocation(allocation.Location)
	defer unlock()

	return s.DB.Transaction(func(tx *gorm.DB) error {
		operationID, err := s.resolveOperation(tx, allocation.Location, allocation.Type+" Operation")
		if err != nil {
			return err
		}

		allocation.OperationID = operationID
		allocation.Status = models.AllocationStatusPending
		return tx.Create(allocation).Error
	})
}

// CreateBudget 为某地点的救援行动创建应急预算
func (s *ReliefOperationService) CreateBudget(budget *models.EmergencyBudget, location string) error {
	if location == "" {
		return errors.New("必须指定地点")
	}
	unlock := s.lockLocation(location)
	defer unlock()

	return s.DB.Transaction(func(tx *gorm.DB) error {
		operationID, err := s.resolveOperation(tx, location, budget.Category+" Operation")
		if err != nil {
			return err
		}

		budget.OperationID = operationID
		budget.Status = models.BudgetStatusAvailable
		return tx.Create(budget).Error
	})
}

// RequestMilitarySupport 为某地点的救援行动申请军事支援
func (s *ReliefOperationService) RequestMilitarySupport(request *models.MilitarySupportRequest) error {
	if request.Location == "" {
		return errors.New("必须指定地点")
	}
	unlock := s.lockLocation(request.Location)
	defer unlock()

	return s.DB.Transaction(func(tx *gorm.DB) error {
		operationID, err := s.resolveOperation(tx, request.Location, request.Type+" Operation")
		if err != nil {
			return err
		}

		request.OperationID = operationID
		request.Status = models.MilitaryStatusPending
		return tx.Create(request).Error
	})
}

// GetPersonnelStatus 获取未完成的人员分配及所属行动名称
func (s *ReliefOperationService) GetPersonnelStatus() ([]PersonnelStatusRow, error) {
	var rows []PersonnelStatusRow
	err := s.DB.Table("personnel_allocations pa").
		Select("pa.type, pa.location, pa.count, pa.priority, pa.status, ro.name AS operation").
		Joins("LEFT JOIN relief_operations ro ON pa.operation_id = ro.id").
		Where("pa.status <> ?", models.AllocationStatusCompleted).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetBudgetStatus 获取未划拨的预算及所属行动的地点和名称
func (s *ReliefOperationService) GetBudgetStatus() ([]BudgetStatusRow, error) {
	var rows []BudgetStatusRow
	err := s.DB.Table("emergency_budgets eb").
		Select("eb.category, eb.amount, eb.priority, eb.status, ro.location, ro.name AS operation").
		Joins("LEFT JOIN relief_operations ro ON eb.operation_id = ro.id").
		Where("eb.status <> ?", models.BudgetStatusAllocated).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetMilitaryStatus 获取未完成的军事支援请求（平铺列表，保持历史行为不关联行动）
func (s *ReliefOperationService) GetMilitaryStatus() ([]MilitaryStatusRow, error) {
	var rows []MilitaryStatusRow
	err := s.DB.Model(&models.MilitarySupportRequest{}).
		Select("type, location, priority, description, status").
		Where("status <> ?", models.MilitaryStatusCompleted).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TrackReliefEffort 返回 active 行动列表及其聚合指标
func (s *ReliefOperationService) TrackReliefEffort() (*ReliefEffortReport, error) {
	report := &ReliefEffortReport{Operations: []models.ReliefOperation{}}

	if err := s.DB.Where("status = ?", models.OperationStatusActive).
		Find(&report.Operations).Error; err != nil {
		return nil, err
	}

	var metrics struct {
		ActiveOps int
		Resources int
		Personnel int
	}
	err := s.DB.Model(&models.ReliefOperation{}).
		Select("COUNT(*) AS active_ops, COALESCE(SUM(resources_deployed), 0) AS resources, COALESCE(SUM(personnel_deployed), 0) AS personnel").
		Where("status = ?", models.OperationStatusActive).
		Scan(&metrics).Error
	if err != nil {
		return nil, err
	}

	report.ActiveOperations = metrics.ActiveOps
	report.ResourcesDeployed = metrics.Resources
	report.PersonnelDeployed = metrics.Personnel
	return report, nil
}

// EndOperation 结束救援行动，结束后不再计入总览聚合
func (s *ReliefOperationService) EndOperation(operationID uint) error {
	var operation models.ReliefOperation
	if err := s.DB.First(&operation, operationID).Error; err != nil {
		return err
	}
	if operation.Status != models.OperationStatusActive {
		return errors.New("救援行动已经结束")
	}

	now := time.Now()
	return s.DB.Model(&operation).Updates(map[string]interface{}{
		"status":   models.OperationStatusEnded,
		"ended_at": now,
	}).Error
}

// CompletePersonnel 将人员分配标记为已完成
func (s *ReliefOperationService) CompletePersonnel(allocationID uint) error {
	var allocation models.PersonnelAllocation
	if err := s.DB.First(&allocation, allocationID).Error; err != nil {
		return err
	}

	now := time.Now()
	return s.DB.Model(&allocation).Updates(map[string]interface{}{
		"status":       models.AllocationStatusCompleted,
		"completed_at": now,
	}).Error
}

// AllocateBudget 将预算标记为已划拨
func (s *ReliefOperationService) AllocateBudget(budgetID uint) error {
	var budget models.EmergencyBudget
	if err := s.DB.First(&budget, budgetID).Error; err != nil {
		return err
	}

	now := time.Now()
	return s.DB.Model(&budget).Updates(map[string]interface{}{
		"status":       models.BudgetStatusAllocated,
		"allocated_at": now,
	}).Error
}

// CompleteMilitary 将军事支援请求标记为已完成
func (s *ReliefOperationService) CompleteMilitary(requestID uint) error {
	var request models.MilitarySupportRequest
	if err := s.DB.First(&request, requestID).Error; err != nil {
		return err
	}

	now := time.Now()
	return s.DB.Model(&request).Updates(map[string]interface{}{
		"status":       models.MilitaryStatusCompleted,
		"responded_at": now,
	}).Error
}
