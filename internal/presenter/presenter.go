// Package presenter 把统计结果整理成前端图表和表格直接可用的结构。
package presenter

import (
	"strings"
	"time"

	"shorturl-analytics/internal/analytics"
	"shorturl-analytics/internal/model"
)

const (
	chartDayLayout  = "Jan 2"
	chartYearLayout = "Jan 2, 2006"
	logTimeLayout   = "Jan 2, 2006 15:04:05"
)

// ChartPoint 图表上的一个点
type ChartPoint struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// ChartSeries 转换时间序列，日期标签改为 "Jan 2" 形式，跨年的序列带上年份；
// 无法解析的标签原样保留
func ChartSeries(series analytics.MetricSeries) []ChartPoint {
	days := make([]time.Time, len(series))
	layout := chartDayLayout
	year := 0
	for i, p := range series {
		day, err := time.Parse(analytics.DayLayout, p.Label)
		if err != nil {
			continue
		}
		days[i] = day
		if year != 0 && day.Year() != year {
			layout = chartYearLayout
		}
		year = day.Year()
	}

	points := make([]ChartPoint, 0, len(series))
	for i, p := range series {
		name := p.Label
		if !days[i].IsZero() {
			name = days[i].Format(layout)
		}
		points = append(points, ChartPoint{Name: name, Value: p.Value})
	}
	return points
}

// SharePoint 饼图的一个扇区
type SharePoint struct {
	Name    string `json:"name"`
	Value   int64  `json:"value"`
	Percent int    `json:"percent"`
}

// ShareChart 转换占比数据
func ShareChart(shares []analytics.Share) []SharePoint {
	points := make([]SharePoint, 0, len(shares))
	for _, s := range shares {
		points = append(points, SharePoint{Name: s.Category, Value: s.Count, Percent: s.Percent})
	}
	return points
}

// LogRow 访问日志表格的一行
type LogRow struct {
	ID        string `json:"id"`
	Time      string `json:"time"`
	IPAddress string `json:"ip_address"`
	Browser   string `json:"browser"`
	Device    string `json:"device"`
	Referrer  string `json:"referrer"`
	Location  string `json:"location"`
	Campaign  string `json:"campaign,omitempty"`
}

// LogRows 转换访问事件，时间按 loc 显示，loc 为 nil 时使用 UTC
func LogRows(events []model.AccessEvent, loc *time.Location) []LogRow {
	if loc == nil {
		loc = time.UTC
	}
	rows := make([]LogRow, 0, len(events))
	for i := range events {
		ev := &events[i]
		row := LogRow{
			ID:        ev.ID,
			Time:      ev.Timestamp.In(loc).Format(logTimeLayout),
			IPAddress: ev.IPAddress,
			Browser:   analytics.Browser(ev.UserAgent),
			Device:    analytics.Device(ev),
			Referrer:  analytics.Referrer(ev.Referrer),
			Location:  Location(ev),
		}
		if ev.UTMCampaign != "" {
			row.Campaign = ev.UTMCampaign
		}
		rows = append(rows, row)
	}
	return rows
}

// Location 拼接城市、省份、国家，全部为空时返回 Unknown
func Location(ev *model.AccessEvent) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{ev.City, ev.State, ev.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return analytics.CategoryUnknown
	}
	return strings.Join(parts, ", ")
}

// ShortURL 拼接对外访问地址
func ShortURL(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + "/" + path
}
