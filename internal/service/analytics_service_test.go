package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"shorturl-analytics/internal/accesslog"
	"shorturl-analytics/internal/analytics"
	"shorturl-analytics/internal/model"
	"shorturl-analytics/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2023, time.October, 31, 18, 0, 0, 0, time.UTC)

func seedAnalytics(t *testing.T) (*AnalyticsService, *model.ShortLink) {
	t.Helper()
	mem := store.NewMemory()
	ctx := context.Background()
	link := &model.ShortLink{
		Title:          "Official Website",
		ShortPath:      "website",
		DestinationURL: "https://example.com",
		IsActive:       true,
		CreatedAt:      now.AddDate(0, 0, -16),
	}
	require.NoError(t, mem.Create(ctx, link))

	// 12 条访问：最近 12 小时每小时一条，偶数条带来源，前 4 条来自手机
	for i := 0; i < 12; i++ {
		ev := &model.AccessEvent{
			ID:        fmt.Sprintf("log-%02d", i),
			LinkID:    link.ID,
			Timestamp: now.Add(-time.Duration(i) * time.Hour),
			IPAddress: fmt.Sprintf("192.168.1.%d", i),
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/118.0.0.0 Safari/537.36",
		}
		if i%2 == 0 {
			ev.Referrer = "https://google.com"
		}
		if i < 4 {
			ev.DeviceType = model.DeviceMobile
		}
		require.NoError(t, mem.Append(ctx, ev))
		require.NoError(t, mem.Touch(ctx, link.ID, ev.Timestamp))
	}
	// 窗口之外的旧事件
	require.NoError(t, mem.Append(ctx, &model.AccessEvent{ID: "old", LinkID: link.ID, Timestamp: now.AddDate(0, 0, -10)}))

	svc := NewAnalyticsService(mem, mem, AnalyticsOptions{PageSize: 5, MaxPageSize: 50, Now: func() time.Time { return now }})
	return svc, link
}

func TestOverview_Period(t *testing.T) {
	svc, link := seedAnalytics(t)

	ov, err := svc.Overview(context.Background(), link.ID, OverviewQuery{Period: "7d"})
	require.NoError(t, err)

	assert.Equal(t, analytics.Period7Days, ov.Period)
	assert.Equal(t, "Last 7 days", ov.PeriodLabel)
	assert.Equal(t, int64(12), ov.TotalClicks)
	assert.Equal(t, int64(1), ov.AverageDailyClicks)
	require.Len(t, ov.Metrics.Daily, 7)
	assert.Equal(t, int64(12), ov.Metrics.TotalCount)
	assert.Equal(t, ov.Metrics.TotalCount, ov.Metrics.Daily.Sum())

	ov, err = svc.Overview(context.Background(), link.ID, OverviewQuery{})
	require.NoError(t, err)
	assert.Equal(t, analytics.Period30Days, ov.Period)
	assert.Len(t, ov.Metrics.Daily, 30)
	assert.Equal(t, int64(13), ov.Metrics.TotalCount)
}

func TestOverview_Errors(t *testing.T) {
	svc, link := seedAnalytics(t)
	ctx := context.Background()

	_, err := svc.Overview(ctx, link.ID, OverviewQuery{Period: "1y"})
	assert.ErrorIs(t, err, analytics.ErrInvalidPeriod)

	_, err = svc.Overview(ctx, link.ID, OverviewQuery{From: now, To: now.AddDate(0, 0, -1)})
	assert.ErrorIs(t, err, analytics.ErrInvalidWindow)

	_, err = svc.Overview(ctx, 999, OverviewQuery{})
	assert.ErrorIs(t, err, ErrLinkNotFound)
}

func TestOverview_CustomWindow(t *testing.T) {
	svc, link := seedAnalytics(t)

	ov, err := svc.Overview(context.Background(), link.ID, OverviewQuery{From: now.AddDate(0, 0, -10), To: now.AddDate(0, 0, -10)})
	require.NoError(t, err)
	assert.Equal(t, analytics.Period(""), ov.Period)
	assert.Equal(t, "2023-10-21 ~ 2023-10-21", ov.PeriodLabel)
	assert.Equal(t, int64(1), ov.Metrics.TotalCount)
}

func TestOverview_WindowTooLong(t *testing.T) {
	svc, link := seedAnalytics(t)
	ctx := context.Background()

	from := time.Date(2, time.January, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Overview(ctx, link.ID, OverviewQuery{From: from, To: time.Date(2999, time.December, 31, 0, 0, 0, 0, time.UTC)})
	assert.ErrorIs(t, err, analytics.ErrWindowTooLong)

	// 只给 From 时终点取当前时间，同样受天数上限约束
	_, err = svc.Overview(ctx, link.ID, OverviewQuery{From: now.AddDate(-2, 0, 0)})
	assert.ErrorIs(t, err, analytics.ErrWindowTooLong)

	ov, err := svc.Overview(ctx, link.ID, OverviewQuery{From: now.AddDate(0, 0, -(analytics.MaxWindowDays - 1))})
	require.NoError(t, err)
	assert.Len(t, ov.Metrics.Daily, analytics.MaxWindowDays)
	assert.Equal(t, int64(13), ov.Metrics.TotalCount)
}

// rangeRecorder 记录传给存储层的时间范围
type rangeRecorder struct {
	store.EventSource
	ranges []store.TimeRange
}

func (r *rangeRecorder) EventsForLink(ctx context.Context, linkID uint, tr store.TimeRange) ([]model.AccessEvent, error) {
	r.ranges = append(r.ranges, tr)
	return r.EventSource.EventsForLink(ctx, linkID, tr)
}

func TestStoreQueriesAreBoundedByRange(t *testing.T) {
	svc, link := seedAnalytics(t)
	rec := &rangeRecorder{EventSource: svc.events}
	svc.events = rec
	ctx := context.Background()

	from, to := now.Add(-3*time.Hour), now.Add(-time.Hour)
	res, err := svc.Logs(ctx, link.ID, LogQuery{From: from, To: to})
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalCount)

	_, err = svc.Overview(ctx, link.ID, OverviewQuery{Period: "7d"})
	require.NoError(t, err)

	require.Len(t, rec.ranges, 2)
	assert.Equal(t, store.TimeRange{From: from, To: to}, rec.ranges[0])
	assert.Equal(t, time.Date(2023, time.October, 25, 0, 0, 0, 0, time.UTC), rec.ranges[1].From)
}

func TestLogs_Pagination(t *testing.T) {
	svc, link := seedAnalytics(t)
	ctx := context.Background()

	// 默认每页 5 条，只看最近一天的 12 条
	res, err := svc.Logs(ctx, link.ID, LogQuery{Page: 3, From: now.AddDate(0, 0, -1)})
	require.NoError(t, err)
	assert.Equal(t, 12, res.TotalCount)
	assert.Equal(t, 3, res.TotalPages)
	assert.Len(t, res.Items, 2)

	res, err = svc.Logs(ctx, link.ID, LogQuery{Page: 4, From: now.AddDate(0, 0, -1)})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 3, res.TotalPages)

	_, err = svc.Logs(ctx, link.ID, LogQuery{PageSize: -1})
	assert.ErrorIs(t, err, accesslog.ErrInvalidPageSize)

	_, err = svc.Logs(ctx, 999, LogQuery{})
	assert.ErrorIs(t, err, ErrLinkNotFound)
}

func TestLogs_Filters(t *testing.T) {
	svc, link := seedAnalytics(t)
	ctx := context.Background()

	withRef := true
	res, err := svc.Logs(ctx, link.ID, LogQuery{Referrer: &withRef})
	require.NoError(t, err)
	assert.Equal(t, 6, res.TotalCount)

	res, err = svc.Logs(ctx, link.ID, LogQuery{Device: "mobile", PageSize: 1000})
	require.NoError(t, err)
	assert.Equal(t, 4, res.TotalCount)
	assert.Equal(t, 50, res.PageSize)
	assert.Equal(t, "log-00", res.Items[0].ID)
}
