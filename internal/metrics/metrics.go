// Package metrics 定义服务暴露给 Prometheus 的指标。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests 按路由与状态码统计请求数
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shorturl_http_requests_total",
		Help: "HTTP 请求数",
	}, []string{"method", "route", "status"})

	// HTTPDuration 请求耗时
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shorturl_http_request_duration_seconds",
		Help:    "HTTP 请求耗时",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
	}, []string{"method", "route"})

	// Redirects 重定向结果：found, not_found, error
	Redirects = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shorturl_redirects_total",
		Help: "短链接重定向次数",
	}, []string{"result"})

	// AccessEvents 访问事件处理阶段：queued, stored, dropped, failed
	AccessEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shorturl_access_events_total",
		Help: "访问事件在各阶段的数量",
	}, []string{"stage"})

	// RecorderQueue 待写入的访问事件数量
	RecorderQueue = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "shorturl_recorder_queue_length",
		Help: "访问事件队列长度",
	})
)
