package worker

import (
	"context"
	"net/url"
	"testing"
	"time"

	"shorturl-analytics/internal/model"
	"shorturl-analytics/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewEvent(t *testing.T) {
	created := time.Date(2023, 10, 15, 10, 30, 0, 0, time.UTC)
	q := url.Values{}
	q.Set("utm_source", "email")
	q.Set("utm_campaign", "bf2023")

	ev := NewEvent(Visit{
		LinkID:        7,
		LinkCreatedAt: created,
		At:            created.Add(-time.Hour),
		IPAddress:     "192.168.1.101",
		UserAgent:     "Mozilla/5.0 (iPhone; CPU iPhone OS 16_5 like Mac OS X) Mobile/15E148 Safari/604.1",
		Referrer:      " https://twitter.com ",
		Query:         q,
	})

	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, uint(7), ev.LinkID)
	assert.True(t, ev.Timestamp.Equal(created), "timestamp clamped to link creation")
	assert.Equal(t, "https://twitter.com", ev.Referrer)
	assert.Equal(t, "email", ev.UTMSource)
	assert.Equal(t, "bf2023", ev.UTMCampaign)
	assert.Equal(t, "", ev.UTMMedium)
	assert.Equal(t, model.DeviceMobile, ev.DeviceType)
}

func TestRecorder_StoresAndTouches(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()
	link := &model.ShortLink{Title: "Docs", ShortPath: "docs", DestinationURL: "https://docs.example.com", IsActive: true}
	require.NoError(t, mem.Create(ctx, link))

	rec := NewRecorder(mem, mem, 16, 2, zap.NewNop().Sugar())
	rec.Start()
	for i := 0; i < 5; i++ {
		assert.True(t, rec.Record(Visit{LinkID: link.ID, LinkCreatedAt: link.CreatedAt, At: time.Now()}))
	}
	rec.Stop()

	events, err := mem.EventsForLink(ctx, link.ID, store.TimeRange{})
	require.NoError(t, err)
	assert.Len(t, events, 5)

	got, err := mem.ByID(ctx, link.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.AccessCount)
	assert.NotNil(t, got.LastAccessedAt)

	// 停止后不再接收
	assert.False(t, rec.Record(Visit{LinkID: link.ID}))
}

func TestRecorder_DropsWhenFull(t *testing.T) {
	mem := store.NewMemory()
	rec := NewRecorder(mem, mem, 1, 1, zap.NewNop().Sugar())
	// 未启动写入协程，队列只能容纳一个事件
	assert.True(t, rec.Record(Visit{LinkID: 1}))
	assert.False(t, rec.Record(Visit{LinkID: 1}))
}
