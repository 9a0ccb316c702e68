package models

import (
	"time"
)

// AlertTypeGeneral 未指定类型时的默认告警类型
const AlertTypeGeneral = "General"

// AlertSystem 告警系统的单例配置记录
type AlertSystem struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UrgencyThreshold int       `gorm:"default:8" json:"urgency_threshold"`
	AutoAssign       bool      `gorm:"default:false" json:"auto_assign"`
	LastAlertTime    time.Time `json:"last_alert_time"`
	LastAlertType    string    `gorm:"type:varchar(50)" json:"last_alert_type"`
	LastAlertMessage string    `gorm:"type:text" json:"last_alert_message"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName 指定表名
func (AlertSystem) TableName() string {
	return "alert_system"
}

// AlertSubscriber 告警订阅者，subscriber 为不透明标识（如联系地址）
type AlertSubscriber struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Subscriber string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"subscriber"`
	CreatedAt  time.Time `json:"created_at"`
}

// AlertHistory 广播历史，只追加
type AlertHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Type      string    `gorm:"type:varchar(50)" json:"type"`
	Message   string    `gorm:"type:text" json:"message"`
	Timestamp time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
	Sender    string    `gorm:"type:varchar(100)" json:"sender,omitempty"`
}

// TableName 指定表名
func (AlertHistory) TableName() string {
	return "alert_history"
}

// AlertNotification 每次广播按订阅者展开的一行通知
// delivered=false 为待拉取，MarkDelivered 后翻转为 true
type AlertNotification struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Subscriber string    `gorm:"type:varchar(100);index;not null" json:"subscriber"`
	AlertType  string    `gorm:"type:varchar(50)" json:"alert_type"`
	Message    string    `gorm:"type:text" json:"message"`
	Timestamp  time.Time `gorm:"autoCreateTime" json:"timestamp"`
	Delivered  bool      `gorm:"default:false;index" json:"delivered"`
}
