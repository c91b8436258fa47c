package model

import (
	"time"
)

// ShortLink 短链接模型
// ShortPath 一经分配不可修改，AccessCount 只增不减
type ShortLink struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	Title          string     `gorm:"size:200;not null" json:"title"`
	ShortPath      string     `gorm:"size:64;uniqueIndex;not null" json:"short_path"`
	DestinationURL string     `gorm:"type:text;not null" json:"destination_url"`
	AccessCount    int64      `gorm:"default:0" json:"access_count"`
	LastAccessedAt *time.Time `json:"last_accessed_at,omitempty"`
	IsActive       bool       `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TableName 指定表名
func (ShortLink) TableName() string {
	return "short_links"
}
