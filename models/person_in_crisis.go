package models

import (
	"time"
)

// PersonInCrisis 表示受灾求助用户
type PersonInCrisis struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"type:varchar(50);not null" json:"name"`
	Location         string    `gorm:"type:varchar(100)" json:"location"`
	Phone            string    `gorm:"type:varchar(20)" json:"phone"`
	Description      string    `gorm:"type:text" json:"description"`
	Status           string    `gorm:"type:varchar(30);default:'Pending'" json:"status"`
	HasActiveRequest bool      `gorm:"default:false" json:"has_active_request"` // 冗余标志位：是否存在未结束的求助请求
	Username         string    `gorm:"type:varchar(50);unique" json:"username"`
	Password         string    `gorm:"type:varchar(100)" json:"-"` // 不在JSON中暴露密码
	Verified         bool      `gorm:"default:false" json:"verified"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Relations
	HelpRequests []HelpRequest `gorm:"foreignKey:RequesterID" json:"help_requests,omitempty"`
}

// TableName 指定表名
func (PersonInCrisis) TableName() string {
	return "people_in_crisis"
}
