package models

import (
	"time"
)

// ReliefProvider 表示救援物资/服务提供方
type ReliefProvider struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(50);not null" json:"name"`
	OrgType   string    `gorm:"type:varchar(50)" json:"org_type"`
	Location  string    `gorm:"type:varchar(100)" json:"location"`
	Username  string    `gorm:"type:varchar(50);unique" json:"username"`
	Password  string    `gorm:"type:varchar(100)" json:"-"`
	Verified  bool      `gorm:"default:false" json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
