package models

import (
	"time"
)

// Donation 表示志愿者的一笔捐款
type Donation struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	VolunteerID uint      `gorm:"index;not null" json:"volunteerId"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Timestamp   time.Time `gorm:"autoCreateTime" json:"timestamp"`
}

// VolunteerHelpOffer 表示志愿者登记的现场支援意向
type VolunteerHelpOffer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	VolunteerID uint      `gorm:"index;not null" json:"volunteerId"`
	Description string    `gorm:"type:text" json:"description"`
	Timestamp   time.Time `gorm:"autoCreateTime" json:"timestamp"`
}

// VolunteerAssignment 表示志愿者接下的求助请求，构成其历史记录
type VolunteerAssignment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	VolunteerID uint      `gorm:"index;not null" json:"volunteerId"`
	RequestID   uint      `gorm:"not null" json:"requestId"`
	Timestamp   time.Time `gorm:"autoCreateTime" json:"timestamp"`
}
