package accesslog

import (
	"strings"
	"time"

	"shorturl-analytics/internal/analytics"
	"shorturl-analytics/internal/model"
)

// Filter 访问日志过滤条件，返回 true 表示保留
type Filter func(event *model.AccessEvent) bool

// Between 时间区间过滤，from/to 为零值时表示不限
func Between(from, to time.Time) Filter {
	return func(event *model.AccessEvent) bool {
		if !from.IsZero() && event.Timestamp.Before(from) {
			return false
		}
		if !to.IsZero() && event.Timestamp.After(to) {
			return false
		}
		return true
	}
}

// DeviceIs 按设备类型过滤，大小写不敏感
func DeviceIs(device string) Filter {
	return func(event *model.AccessEvent) bool {
		return strings.EqualFold(analytics.Device(event), device)
	}
}

// HasReferrer 按是否带来源过滤
func HasReferrer(want bool) Filter {
	return func(event *model.AccessEvent) bool {
		return (strings.TrimSpace(event.Referrer) != "") == want
	}
}

// All 组合多个过滤条件，nil 条件会被忽略
func All(filters ...Filter) Filter {
	return func(event *model.AccessEvent) bool {
		for _, f := range filters {
			if f != nil && !f(event) {
				return false
			}
		}
		return true
	}
}
