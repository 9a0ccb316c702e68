package models

import (
	"time"
)

// 应急预案状态
const (
	ProtocolStatusActive   = "active"
	ProtocolStatusResolved = "resolved"

	// EmergencyLevelNormal 没有任何活跃预案时的哨兵级别
	EmergencyLevelNormal = "normal"
)

// EmergencyProtocol 表示一次被触发的应急预案
// 当前应急级别取最近触发且仍为 active 的一条
type EmergencyProtocol struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Level       string    `gorm:"type:varchar(30);not null" json:"level"`
	Description string    `gorm:"type:text" json:"description"`
	TriggeredAt time.Time `gorm:"autoCreateTime;index" json:"triggered_at"`
	TriggeredBy *uint     `json:"triggered_by,omitempty"` // 触发机构ID，系统触发时为空
	Status      string    `gorm:"type:varchar(20);default:'active'" json:"status"`
}
