package models

import (
	"time"
)

// Volunteer 表示志愿者用户
type Volunteer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(50);not null" json:"name"`
	Location  string    `gorm:"type:varchar(100)" json:"location"`
	Available bool      `gorm:"default:true" json:"available"`
	OrgType   string    `gorm:"type:varchar(50)" json:"org_type"`
	Username  string    `gorm:"type:varchar(50);unique" json:"username"`
	Password  string    `gorm:"type:varchar(100)" json:"-"`
	Verified  bool      `gorm:"default:false" json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
