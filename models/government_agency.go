package models

import (
	"time"
)

// GovernmentAgency 表示政府应急管理机构
// SeverityLevel 是机构当前的事态升级计数，约定只增不减且永不为负
type GovernmentAgency struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AgencyName    string    `gorm:"type:varchar(100);not null" json:"agencyName"`
	SeverityLevel int       `gorm:"default:0" json:"severityLevel"`
	Username      string    `gorm:"type:varchar(50);unique" json:"username"`
	Password      string    `gorm:"type:varchar(100)" json:"-"`
	Verified      bool      `gorm:"default:false" json:"verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName 指定表名
func (GovernmentAgency) TableName() string {
	return "government_agencies"
}
