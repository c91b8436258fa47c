package model

import (
	"time"
)

// 设备分类
const (
	DeviceDesktop = "Desktop"
	DeviceMobile  = "Mobile"
	DeviceTablet  = "Tablet"
	DeviceUnknown = "Unknown"
)

// AccessEvent 一次短链接访问记录，只追加不修改
type AccessEvent struct {
	ID        string    `gorm:"size:36;primarykey" json:"id"`
	LinkID    uint      `gorm:"not null;index:idx_access_link_time" json:"link_id"`
	Timestamp time.Time `gorm:"column:accessed_at;not null;index:idx_access_link_time" json:"timestamp"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	UserAgent string    `gorm:"type:text" json:"user_agent"`
	Referrer  string    `gorm:"type:text" json:"referrer,omitempty"`

	// 地理位置（可选）
	City       string   `gorm:"size:100" json:"city,omitempty"`
	State      string   `gorm:"size:100" json:"state,omitempty"`
	Country    string   `gorm:"size:100" json:"country,omitempty"`
	PostalCode string   `gorm:"size:20" json:"postal_code,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`

	SessionID string `gorm:"size:64" json:"session_id,omitempty"`

	// UTM 参数（可选）
	UTMSource   string `gorm:"size:100" json:"utm_source,omitempty"`
	UTMMedium   string `gorm:"size:100" json:"utm_medium,omitempty"`
	UTMCampaign string `gorm:"size:100" json:"utm_campaign,omitempty"`

	DeviceType string `gorm:"size:20" json:"device_type,omitempty"`
}

// TableName 指定表名
func (AccessEvent) TableName() string {
	return "access_events"
}
