package analytics

import (
	"errors"
	"time"
)

var (
	// ErrInvalidWindow 统计窗口起点晚于终点
	ErrInvalidWindow = errors.New("analytics: window start is after window end")
	// ErrWindowTooLong 统计窗口超过 MaxWindowDays 天
	ErrWindowTooLong = errors.New("analytics: window spans too many days")
	// ErrInvalidPeriod 未知的统计周期
	ErrInvalidPeriod = errors.New("analytics: unknown period")
)

const (
	// DayLayout 日桶标签格式
	DayLayout = "2006-01-02"
	// MaxWindowDays 单个窗口最多包含的天数
	MaxWindowDays = 366
)

// Window 统计时间窗口，按自然日计算，首尾两天都包含在内。
// 日界线使用 Start 所在的时区。
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Validate 校验窗口
func (w Window) Validate() error {
	if w.Start.After(w.End) {
		return ErrInvalidWindow
	}
	lo, hi := w.bounds()
	if lo.AddDate(0, 0, MaxWindowDays).Before(hi) {
		return ErrWindowTooLong
	}
	return nil
}

// FirstDay 返回窗口首日零点，即窗口的闭下界
func (w Window) FirstDay() time.Time {
	lo, _ := w.bounds()
	return lo
}

// bounds 返回 [首日零点, 末日次日零点)
func (w Window) bounds() (time.Time, time.Time) {
	loc := w.Start.Location()
	return startOfDay(w.Start, loc), startOfDay(w.End, loc).AddDate(0, 0, 1)
}

// Contains 判断时间点是否落在窗口内
func (w Window) Contains(t time.Time) bool {
	lo, hi := w.bounds()
	return !t.Before(lo) && t.Before(hi)
}

// Days 返回窗口内每一天的零点
func (w Window) Days() []time.Time {
	lo, hi := w.bounds()
	var days []time.Time
	for d := lo; d.Before(hi); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DayKey 返回时间点在窗口时区下的日桶标签
func (w Window) DayKey(t time.Time) string {
	return t.In(w.Start.Location()).Format(DayLayout)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
