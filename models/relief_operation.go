package models

import (
	"time"
)

// 救援行动及下属资源记录的状态
const (
	OperationStatusActive = "active"
	OperationStatusEnded  = "ended"

	AllocationStatusPending   = "pending"
	AllocationStatusCompleted = "completed"

	BudgetStatusAvailable = "available"
	BudgetStatusAllocated = "allocated"

	MilitaryStatusPending   = "pending"
	MilitaryStatusCompleted = "completed"
)

// ReliefOperation 表示某地点的救援行动，是人员、预算、军事支援的聚合单位
// 约定：同一地点同时最多存在一个 active 行动
type ReliefOperation struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	Name               string     `gorm:"type:varchar(100);not null" json:"name"`
	Location           string     `gorm:"type:varchar(100);not null;index" json:"location"`
	Status             string     `gorm:"type:varchar(20);default:'active'" json:"status"`
	ResourcesDeployed  int        `gorm:"default:0" json:"resources_deployed"`
	PersonnelDeployed  int        `gorm:"default:0" json:"personnel_deployed"`
	StartedAt          time.Time  `gorm:"autoCreateTime" json:"started_at"`
	EndedAt            *time.Time `json:"ended_at,omitempty"`
	ProtocolID         *uint      `json:"protocol_id,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	// Relations
	PersonnelAllocations    []PersonnelAllocation    `gorm:"foreignKey:OperationID" json:"personnel_allocations,omitempty"`
	EmergencyBudgets        []EmergencyBudget        `gorm:"foreignKey:OperationID" json:"emergency_budgets,omitempty"`
	MilitarySupportRequests []MilitarySupportRequest `gorm:"foreignKey:OperationID" json:"military_support_requests,omitempty"`
}

// PersonnelAllocation 表示分配到某救援行动的人员
type PersonnelAllocation struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Type        string     `gorm:"type:varchar(50);not null" json:"type"`
	Location    string     `gorm:"type:varchar(100);not null" json:"location"`
	Count       int        `gorm:"not null" json:"count"`
	Priority    int        `gorm:"default:1" json:"priority"`
	Status      string     `gorm:"type:varchar(20);default:'pending'" json:"status"`
	AllocatedAt time.Time  `gorm:"autoCreateTime" json:"allocated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	OperationID uint       `gorm:"index" json:"operation_id"`
}

// EmergencyBudget 表示分配到某救援行动的应急预算
type EmergencyBudget struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Category    string     `gorm:"type:varchar(50);not null" json:"category"`
	Amount      float64    `gorm:"not null" json:"amount"`
	Priority    int        `gorm:"default:1" json:"priority"`
	Status      string     `gorm:"type:varchar(20);default:'available'" json:"status"`
	AllocatedAt *time.Time `json:"allocated_at,omitempty"`
	OperationID uint       `gorm:"index" json:"operation_id"`
	CreatedAt   time.Time  `json:"created_at"`
}

// MilitarySupportRequest 表示某救援行动的军事支援请求
type MilitarySupportRequest struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Type        string     `gorm:"type:varchar(50);not null" json:"type"`
	Location    string     `gorm:"type:varchar(100);not null" json:"location"`
	Priority    int        `gorm:"default:1" json:"priority"`
	Description string     `gorm:"type:text" json:"description"`
	Status      string     `gorm:"type:varchar(20);default:'pending'" json:"status"`
	RequestedAt time.Time  `gorm:"autoCreateTime" json:"requested_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	OperationID uint       `gorm:"index" json:"operation_id"`
}

// TableName 指定表名，与历史数据保持一致
func (MilitarySupportRequest) TableName() string {
	return "military_support"
}
