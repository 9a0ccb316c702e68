package models

import (
	"time"

	"gorm.io/gorm"
)

// 求助请求状态。API 边界上 status 是自由字符串（兼容旧客户端），
// 这里只导出已知值，未知值原样存取
const (
	HelpRequestStatusPending     = "Pending"
	HelpRequestStatusResolved    = "Resolved"
	HelpRequestStatusCancelled   = "Cancelled"
	HelpRequestStatusAidProvided = "Aid Provided"
)

// HelpRequest 表示一条求助请求，归属于发起请求的受灾用户
type HelpRequest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RequesterID uint      `gorm:"index;not null" json:"requesterId"`
	Type        string    `gorm:"type:varchar(50)" json:"type"`
	Description string    `gorm:"type:text" json:"description"`
	Location    string    `gorm:"type:varchar(100)" json:"location"`
	Urgency     int       `gorm:"default:3" json:"urgency"`
	Status      string    `gorm:"type:varchar(30);default:'Pending'" json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate 是一个GORM钩子，在创建新记录前运行
func (r *HelpRequest) BeforeCreate(tx *gorm.DB) error {
	if r.Status == "" {
		r.Status = HelpRequestStatusPending
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}
	return nil
}

// IsClosed 判断状态是否会结束请求人的活跃请求标志
func (r *HelpRequest) IsClosed() bool {
	return r.Status == HelpRequestStatusResolved || r.Status == HelpRequestStatusCancelled
}
