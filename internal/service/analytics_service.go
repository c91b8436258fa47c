package service

import (
	"context"
	"time"

	"shorturl-analytics/internal/accesslog"
	"shorturl-analytics/internal/analytics"
	"shorturl-analytics/internal/model"
	"shorturl-analytics/internal/store"
)

// AnalyticsOptions 分析服务参数
type AnalyticsOptions struct {
	DefaultPeriod analytics.Period
	PageSize      int
	MaxPageSize   int
	Now           func() time.Time
}

// AnalyticsService 组合存储与纯计算模块，给出单个链接的统计与日志
type AnalyticsService struct {
	links  store.LinkStore
	events store.EventSource
	opts   AnalyticsOptions
}

// NewAnalyticsService 创建分析服务
func NewAnalyticsService(links store.LinkStore, events store.EventSource, opts AnalyticsOptions) *AnalyticsService {
	if opts.DefaultPeriod == "" {
		opts.DefaultPeriod = analytics.DefaultPeriod
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 10
	}
	if opts.MaxPageSize < opts.PageSize {
		opts.MaxPageSize = opts.PageSize
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &AnalyticsService{links: links, events: events, opts: opts}
}

// OverviewQuery 统计查询条件：指定 From/To 时忽略 Period
type OverviewQuery struct {
	Period string
	From   time.Time
	To     time.Time
}

// Overview 链接分析页的数据
type Overview struct {
	Link               *model.ShortLink  `json:"link"`
	Period             analytics.Period  `json:"period,omitempty"`
	PeriodLabel        string            `json:"period_label"`
	TotalClicks        int64             `json:"total_clicks"`
	AverageDailyClicks int64             `json:"average_daily_clicks"`
	Metrics            *analytics.Result `json:"metrics"`
}

// Overview 计算指定窗口内的统计数据
func (s *AnalyticsService) Overview(ctx context.Context, linkID uint, q OverviewQuery) (*Overview, error) {
	window, period, err := s.window(q)
	if err != nil {
		return nil, err
	}

	link, err := s.links.ByID(ctx, linkID)
	if err != nil {
		return nil, err
	}

	events, err := s.events.EventsForLink(ctx, linkID, store.TimeRange{From: window.FirstDay()})
	if err != nil {
		return nil, err
	}

	metrics, err := analytics.Aggregate(events, window)
	if err != nil {
		return nil, err
	}

	ov := &Overview{
		Link:               link,
		Period:             period,
		TotalClicks:        link.AccessCount,
		AverageDailyClicks: analytics.AverageDaily(link.AccessCount, link.CreatedAt, s.opts.Now()),
		Metrics:            metrics,
	}
	if period != "" {
		ov.PeriodLabel = period.Label()
	} else {
		ov.PeriodLabel = window.Start.Format(analytics.DayLayout) + " ~ " + window.End.Format(analytics.DayLayout)
	}
	return ov, nil
}

func (s *AnalyticsService) window(q OverviewQuery) (analytics.Window, analytics.Period, error) {
	if !q.From.IsZero() || !q.To.IsZero() {
		w := analytics.Window{Start: q.From, End: q.To}
		if w.End.IsZero() {
			w.End = s.opts.Now().In(w.Start.Location())
		}
		if w.Start.IsZero() {
			w.Start = w.End
		}
		return w, "", w.Validate()
	}

	period := s.opts.DefaultPeriod
	if q.Period != "" {
		p, err := analytics.ParsePeriod(q.Period)
		if err != nil {
			return analytics.Window{}, "", err
		}
		period = p
	}
	w, err := analytics.WindowForPeriod(period, s.opts.Now())
	return w, period, err
}

// LogQuery 访问日志查询条件
type LogQuery struct {
	Page     int
	PageSize int
	From     time.Time
	To       time.Time
	Device   string
	Referrer *bool // nil 表示不限
}

// Logs 分页查询访问日志。PageSize 为 0 时使用默认值，超过上限时截断。
func (s *AnalyticsService) Logs(ctx context.Context, linkID uint, q LogQuery) (*accesslog.Result, error) {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = s.opts.PageSize
	}
	if q.PageSize > s.opts.MaxPageSize {
		q.PageSize = s.opts.MaxPageSize
	}

	if _, err := s.links.ByID(ctx, linkID); err != nil {
		return nil, err
	}
	events, err := s.events.EventsForLink(ctx, linkID, store.TimeRange{From: q.From, To: q.To})
	if err != nil {
		return nil, err
	}

	// 存储层已按时间范围查询，这里再过滤一遍保证边界一致
	filters := []accesslog.Filter{accesslog.Between(q.From, q.To)}
	if q.Device != "" {
		filters = append(filters, accesslog.DeviceIs(q.Device))
	}
	if q.Referrer != nil {
		filters = append(filters, accesslog.HasReferrer(*q.Referrer))
	}
	return accesslog.Page(events, q.PageSize, q.Page, accesslog.All(filters...))
}
