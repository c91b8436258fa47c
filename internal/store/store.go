// Package store 提供短链接与访问事件的持久化实现。
package store

import (
	"context"
	"errors"
	"time"

	"shorturl-analytics/internal/model"
)

var (
	// ErrLinkNotFound 链接不存在
	ErrLinkNotFound = errors.New("store: link not found")
	// ErrPathTaken 短路径已被占用
	ErrPathTaken = errors.New("store: short path already taken")
)

// TimeRange 时间范围，零值端点表示不限
type TimeRange struct {
	From time.Time
	To   time.Time
}

// LinkQuery 链接列表查询条件
type LinkQuery struct {
	Search string // 标题、短路径、目标地址的子串，大小写不敏感
}

// Totals 仪表盘汇总数据
type Totals struct {
	TotalLinks  int64 `json:"total_links"`
	TotalClicks int64 `json:"total_clicks"`
	ActiveLinks int64 `json:"active_links"`
}

// LinkStore 短链接存储
type LinkStore interface {
	Create(ctx context.Context, link *model.ShortLink) error
	ByID(ctx context.Context, id uint) (*model.ShortLink, error)
	ByPath(ctx context.Context, path string) (*model.ShortLink, error)
	List(ctx context.Context, q LinkQuery) ([]model.ShortLink, error)
	PathExists(ctx context.Context, path string) (bool, error)
	SetActive(ctx context.Context, id uint, active bool) error
	// Delete 删除链接；cascade 为 false 时保留其访问事件
	Delete(ctx context.Context, id uint, cascade bool) error
	// Touch 访问计数加一并更新最后访问时间
	Touch(ctx context.Context, id uint, at time.Time) error
	Totals(ctx context.Context) (Totals, error)
}

// EventSource 读取某个链接的访问事件，按时间倒序返回
type EventSource interface {
	EventsForLink(ctx context.Context, linkID uint, r TimeRange) ([]model.AccessEvent, error)
}

// EventStore 追加写入的访问事件存储
type EventStore interface {
	EventSource
	Append(ctx context.Context, event *model.AccessEvent) error
}
