package analytics

import (
	"math"
	"time"
)

// Period 仪表盘上可选的统计周期
type Period string

const (
	Period7Days  Period = "7d"
	Period30Days Period = "30d"
	Period90Days Period = "90d"
)

// DefaultPeriod 未指定周期时使用
const DefaultPeriod = Period30Days

var periodDays = map[Period]int{
	Period7Days:  7,
	Period30Days: 30,
	Period90Days: 90,
}

// ParsePeriod 解析周期字符串，空串返回默认周期
func ParsePeriod(raw string) (Period, error) {
	if raw == "" {
		return DefaultPeriod, nil
	}
	p := Period(raw)
	if _, ok := periodDays[p]; !ok {
		return "", ErrInvalidPeriod
	}
	return p, nil
}

// Days 周期天数
func (p Period) Days() int {
	return periodDays[p]
}

// Label 周期的展示名称
func (p Period) Label() string {
	switch p {
	case Period7Days:
		return "Last 7 days"
	case Period30Days:
		return "Last 30 days"
	case Period90Days:
		return "Last 90 days"
	default:
		return string(p)
	}
}

// WindowForPeriod 以 now 为最后一天构造窗口
func WindowForPeriod(p Period, now time.Time) (Window, error) {
	days, ok := periodDays[p]
	if !ok {
		return Window{}, ErrInvalidPeriod
	}
	return Window{Start: now.AddDate(0, 0, -(days - 1)), End: now}, nil
}

// AverageDaily 链接生命周期内的日均访问量，不足一天按一天计
func AverageDaily(total int64, created, now time.Time) int64 {
	days := int64(now.Sub(created) / (24 * time.Hour))
	if days < 1 {
		days = 1
	}
	return int64(math.Round(float64(total) / float64(days)))
}
