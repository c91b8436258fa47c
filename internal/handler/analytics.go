package handler

import (
	"net/http"
	"strconv"

	"shorturl-analytics/internal/analytics"
	"shorturl-analytics/internal/model"
	"shorturl-analytics/internal/presenter"
	"shorturl-analytics/internal/service"

	"github.com/gin-gonic/gin"
)

// AnalyticsResponse 链接分析页数据
type AnalyticsResponse struct {
	Link               LinkResponse           `json:"link"`
	Period             analytics.Period       `json:"period,omitempty" example:"30d"`
	PeriodLabel        string                 `json:"period_label" example:"Last 30 days"`
	Window             analytics.Window       `json:"window"`
	TotalClicks        int64                  `json:"total_clicks"`
	AverageDailyClicks int64                  `json:"average_daily_clicks"`
	PeriodClicks       int64                  `json:"period_clicks"`
	UniqueVisitors     int64                  `json:"unique_visitors"`
	Daily              []presenter.ChartPoint `json:"daily"`
	Browsers           []presenter.SharePoint `json:"browsers"`
	Devices            []presenter.SharePoint `json:"devices"`
	Referrers          []presenter.SharePoint `json:"referrers"`
	Countries          []presenter.SharePoint `json:"countries"`
	Campaigns          []presenter.SharePoint `json:"campaigns"`
}

// GetAnalytics godoc
// @Summary 链接访问统计
// @Description 按周期（7d/30d/90d）或自定义日期区间统计访问量、浏览器、设备、来源分布
// @Tags Analytics
// @Security ApiKeyAuth
// @Produce  json
// @Param   id      path   int     true   "链接 ID"
// @Param   period  query  string  false  "统计周期" Enums(7d, 30d, 90d)
// @Param   from    query  string  false  "开始日期 YYYY-MM-DD"
// @Param   to      query  string  false  "结束日期 YYYY-MM-DD"
// @Success 200 {object} AnalyticsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/links/{id}/analytics [get]
func (h *ShortLinkHandler) GetAnalytics(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	from, err := parseTime(c.Query("from"), false)
	if err != nil {
		respondError(c, err)
		return
	}
	to, err := parseTime(c.Query("to"), false)
	if err != nil {
		respondError(c, err)
		return
	}

	ov, err := h.analytics.Overview(c.Request.Context(), id, service.OverviewQuery{
		Period: c.Query("period"),
		From:   from,
		To:     to,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	m := ov.Metrics
	c.JSON(http.StatusOK, AnalyticsResponse{
		Link:               h.linkResponse(*ov.Link),
		Period:             ov.Period,
		PeriodLabel:        ov.PeriodLabel,
		Window:             m.Window,
		TotalClicks:        ov.TotalClicks,
		AverageDailyClicks: ov.AverageDailyClicks,
		PeriodClicks:       m.TotalCount,
		UniqueVisitors:     m.UniqueVisitors,
		Daily:              presenter.ChartSeries(m.Daily),
		Browsers:           presenter.ShareChart(m.Browsers),
		Devices:            presenter.ShareChart(m.Devices),
		Referrers:          presenter.ShareChart(m.Referrers),
		Countries:          presenter.ShareChart(m.Countries),
		Campaigns:          presenter.ShareChart(m.Campaigns),
	})
}

// LogsResponse 访问日志分页结果
type LogsResponse struct {
	Items      []presenter.LogRow  `json:"items"`
	Events     []model.AccessEvent `json:"events"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
	TotalCount int                 `json:"total_count"`
}

// GetLogs godoc
// @Summary 访问日志
// @Description 按时间倒序分页返回访问记录，支持按时间、设备、是否有来源过滤
// @Tags Analytics
// @Security ApiKeyAuth
// @Produce  json
// @Param   id         path   int     true   "链接 ID"
// @Param   page       query  int     false  "页码，从 1 开始"
// @Param   page_size  query  int     false  "每页条数"
// @Param   from       query  string  false  "开始时间"
// @Param   to         query  string  false  "结束时间"
// @Param   device     query  string  false  "设备类型" Enums(Desktop, Mobile, Tablet, Unknown)
// @Param   referrer   query  bool    false  "是否有来源"
// @Success 200 {object} LogsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/links/{id}/logs [get]
func (h *ShortLinkHandler) GetLogs(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	q := service.LogQuery{Device: c.Query("device")}
	if q.Page, err = queryInt(c, "page"); err != nil {
		respondError(c, err)
		return
	}
	if q.PageSize, err = queryInt(c, "page_size"); err != nil {
		respondError(c, err)
		return
	}
	if q.From, err = parseTime(c.Query("from"), false); err != nil {
		respondError(c, err)
		return
	}
	if q.To, err = parseTime(c.Query("to"), true); err != nil {
		respondError(c, err)
		return
	}
	if raw := c.Query("referrer"); raw != "" {
		want, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, &service.ValidationError{Field: "referrer", Message: "must be a boolean"})
			return
		}
		q.Referrer = &want
	}

	res, err := h.analytics.Logs(c.Request.Context(), id, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, LogsResponse{
		Items:      presenter.LogRows(res.Items, nil),
		Events:     res.Items,
		Page:       res.Page,
		PageSize:   res.PageSize,
		TotalPages: res.TotalPages,
		TotalCount: res.TotalCount,
	})
}
