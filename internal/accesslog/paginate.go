// Package accesslog 对访问日志做排序、过滤与分页。
package accesslog

import (
	"errors"
	"sort"

	"shorturl-analytics/internal/model"
)

var (
	// ErrInvalidPageSize 每页条数必须为正数
	ErrInvalidPageSize = errors.New("accesslog: page size must be positive")
	// ErrInvalidPageNumber 页码从 1 开始
	ErrInvalidPageNumber = errors.New("accesslog: page number must be positive")
)

// Result 分页结果，TotalCount/TotalPages 基于过滤后的集合
type Result struct {
	Items      []model.AccessEvent `json:"items"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
	TotalCount int                 `json:"total_count"`
}

// Page 先过滤再分页。事件按时间倒序排列，时间相同按 ID 升序。
// 页码超出范围时返回空列表而不是错误。
func Page(events []model.AccessEvent, pageSize, pageNumber int, filter Filter) (*Result, error) {
	if pageSize <= 0 {
		return nil, ErrInvalidPageSize
	}
	if pageNumber <= 0 {
		return nil, ErrInvalidPageNumber
	}

	matched := make([]model.AccessEvent, 0, len(events))
	for i := range events {
		if filter == nil || filter(&events[i]) {
			matched = append(matched, events[i])
		}
	}
	SortNewestFirst(matched)

	total := len(matched)
	totalPages := (total + pageSize - 1) / pageSize
	res := &Result{
		Items:      []model.AccessEvent{},
		Page:       pageNumber,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalCount: total,
	}
	if pageNumber > totalPages {
		return res, nil
	}

	start := (pageNumber - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	res.Items = matched[start:end]
	return res, nil
}

// SortNewestFirst 原地排序：时间倒序，ID 升序
func SortNewestFirst(events []model.AccessEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Timestamp.Equal(events[j].Timestamp) {
			return events[i].Timestamp.After(events[j].Timestamp)
		}
		return events[i].ID < events[j].ID
	})
}
