// Package analytics 根据原始访问事件计算单个短链接的统计指标。
// 所有函数都是纯函数，不读写任何外部状态。
package analytics

import (
	"shorturl-analytics/internal/model"
)

// MetricPoint 序列中的一个点
type MetricPoint struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// MetricSeries 有序的 (标签, 数值) 序列，标签在序列内唯一
type MetricSeries []MetricPoint

// Sum 序列数值之和
func (s MetricSeries) Sum() int64 {
	var total int64
	for _, p := range s {
		total += p.Value
	}
	return total
}

// Result 一次聚合的输出
type Result struct {
	Window         Window       `json:"window"`
	TotalCount     int64        `json:"total_count"`
	UniqueVisitors int64        `json:"unique_visitors"`
	Daily          MetricSeries `json:"daily"`
	Browsers       []Share      `json:"browsers"`
	Devices        []Share      `json:"devices"`
	Referrers      []Share      `json:"referrers"`
	Countries      []Share      `json:"countries"`
	Campaigns      []Share      `json:"campaigns"`
}

// Aggregate 统计窗口内的访问事件。
// 窗口内每一天都会出现在 Daily 中，没有访问的日子值为 0；
// 没有事件时返回全零结果而不是错误。
func Aggregate(events []model.AccessEvent, w Window) (*Result, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	days := w.Days()
	daily := make(map[string]int64, len(days))
	browsers := make(map[string]int64)
	devices := make(map[string]int64)
	referrers := make(map[string]int64)
	countries := make(map[string]int64)
	campaigns := make(map[string]int64)
	visitors := make(map[string]struct{})

	var total int64
	for i := range events {
		ev := &events[i]
		if !w.Contains(ev.Timestamp) {
			continue
		}
		total++
		daily[w.DayKey(ev.Timestamp)]++
		browsers[Browser(ev.UserAgent)]++
		devices[Device(ev)]++
		referrers[Referrer(ev.Referrer)]++
		countries[Country(ev)]++
		campaigns[Campaign(ev)]++
		if key := VisitorKey(ev); key != "" {
			visitors[key] = struct{}{}
		}
	}

	series := make(MetricSeries, 0, len(days))
	for _, d := range days {
		label := d.Format(DayLayout)
		series = append(series, MetricPoint{Label: label, Value: daily[label]})
	}

	return &Result{
		Window:         w,
		TotalCount:     total,
		UniqueVisitors: int64(len(visitors)),
		Daily:          series,
		Browsers:       Percentages(browsers),
		Devices:        Percentages(devices),
		Referrers:      Percentages(referrers),
		Countries:      Percentages(countries),
		Campaigns:      Percentages(campaigns),
	}, nil
}
