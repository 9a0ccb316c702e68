package models

import (
	"time"
)

// 安全事件类型
const (
	SecurityEventFailedLogin = "failed_login"
)

// 账号审核状态
const (
	VerificationStatusPending  = "pending"
	VerificationStatusApproved = "approved"
	VerificationStatusRejected = "rejected"
)

// SecurityLog 表示一条安全事件记录
type SecurityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventType string    `gorm:"type:varchar(50);index" json:"event_type"`
	Detail    string    `gorm:"type:varchar(255)" json:"detail"`
	Timestamp time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}

// TableName 指定表名
func (SecurityLog) TableName() string {
	return "security_logs"
}

// SecuritySetting 表示安全设置单例记录
type SecuritySetting struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	TwoFactorEnabled bool      `gorm:"default:false" json:"two_factor_enabled"`
	MaxLoginAttempts int       `gorm:"default:5" json:"max_login_attempts"`
	SessionTimeout   int       `gorm:"default:30" json:"session_timeout"`
	IPRestriction    bool      `gorm:"default:false" json:"ip_restriction"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// AccountVerification 表示一条待管理员审核的账号记录
type AccountVerification struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserType   string     `gorm:"type:varchar(30);not null" json:"user_type"`
	UserID     uint       `gorm:"not null" json:"user_id"`
	Status     string     `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	Notes      string     `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time  `json:"created_at"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
}

// TableName 指定表名
func (AccountVerification) TableName() string {
	return "account_verifications"
}
