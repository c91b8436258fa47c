package worker

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"shorturl-analytics/internal/analytics"
	"shorturl-analytics/internal/metrics"
	"shorturl-analytics/internal/model"
	"shorturl-analytics/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Visit 一次重定向请求中采集到的信息
type Visit struct {
	LinkID        uint
	LinkCreatedAt time.Time
	At            time.Time
	IPAddress     string
	UserAgent     string
	Referrer      string
	SessionID     string
	Query         url.Values
	City          string
	State         string
	Country       string
	PostalCode    string
	Latitude      *float64
	Longitude     *float64
}

// NewEvent 把访问信息转换为访问事件。时间早于链接创建时间时按创建时间记录。
func NewEvent(v Visit) model.AccessEvent {
	at := v.At
	if at.IsZero() {
		at = time.Now()
	}
	if at.Before(v.LinkCreatedAt) {
		at = v.LinkCreatedAt
	}

	return model.AccessEvent{
		ID:          uuid.NewString(),
		LinkID:      v.LinkID,
		Timestamp:   at.UTC(),
		IPAddress:   v.IPAddress,
		UserAgent:   v.UserAgent,
		Referrer:    strings.TrimSpace(v.Referrer),
		City:        v.City,
		State:       v.State,
		Country:     v.Country,
		PostalCode:  v.PostalCode,
		Latitude:    v.Latitude,
		Longitude:   v.Longitude,
		SessionID:   v.SessionID,
		UTMSource:   v.Query.Get("utm_source"),
		UTMMedium:   v.Query.Get("utm_medium"),
		UTMCampaign: v.Query.Get("utm_campaign"),
		DeviceType:  analytics.DeviceFromUserAgent(v.UserAgent),
	}
}

// Recorder 异步写入访问事件，重定向请求不等待落库
type Recorder struct {
	events   store.EventStore
	links    store.LinkStore
	queue    chan model.AccessEvent
	workers  int
	wg       sync.WaitGroup
	mu       sync.RWMutex
	stopped  bool
	logger   *zap.SugaredLogger
	stopOnce sync.Once
}

// NewRecorder 创建记录器
func NewRecorder(events store.EventStore, links store.LinkStore, buffer, workers int, logger *zap.SugaredLogger) *Recorder {
	if buffer <= 0 {
		buffer = 1024
	}
	if workers <= 0 {
		workers = 1
	}
	return &Recorder{
		events:  events,
		links:   links,
		queue:   make(chan model.AccessEvent, buffer),
		workers: workers,
		logger:  logger.Named("recorder"),
	}
}

// Start 启动写入协程
func (r *Recorder) Start() {
	r.logger.Infof("启动 %d 个访问事件写入协程", r.workers)
	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.run()
	}
}

// Record 把访问放入队列；队列已满或已停止时丢弃并返回 false
func (r *Recorder) Record(v Visit) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.stopped {
		return false
	}

	select {
	case r.queue <- NewEvent(v):
		metrics.AccessEvents.WithLabelValues("queued").Inc()
		metrics.RecorderQueue.Set(float64(len(r.queue)))
		return true
	default:
		metrics.AccessEvents.WithLabelValues("dropped").Inc()
		r.logger.Warnw("访问事件队列已满，丢弃事件", "link_id", v.LinkID)
		return false
	}
}

// Stop 停止接收新事件，并等待队列中的事件写完
func (r *Recorder) Stop() {
	r.stopOnce.Do(func() {
		r.mu.Lock()
		r.stopped = true
		close(r.queue)
		r.mu.Unlock()
		r.wg.Wait()
		r.logger.Info("访问事件写入协程已退出")
	})
}

func (r *Recorder) run() {
	defer r.wg.Done()
	for event := range r.queue {
		metrics.RecorderQueue.Set(float64(len(r.queue)))
		r.store(event)
	}
}

func (r *Recorder) store(event model.AccessEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.events.Append(ctx, &event); err != nil {
		metrics.AccessEvents.WithLabelValues("failed").Inc()
		r.logger.Errorw("写入访问事件失败", "link_id", event.LinkID, "error", err)
		return
	}
	if err := r.links.Touch(ctx, event.LinkID, event.Timestamp); err != nil {
		r.logger.Errorw("更新访问计数失败", "link_id", event.LinkID, "error", err)
	}
	metrics.AccessEvents.WithLabelValues("stored").Inc()
}
