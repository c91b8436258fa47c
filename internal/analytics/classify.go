package analytics

import (
	"net/url"
	"strings"

	"shorturl-analytics/internal/model"
)

// 缺省分类
const (
	CategoryUnknown = "Unknown"
	CategoryDirect  = "Direct"
	CategoryOther   = "Other"
	CategoryNone    = "None"
)

// 浏览器特征，顺序敏感：Edge/Opera 的 UA 同时带有 Chrome 与 Safari 标识
var browserSignatures = []struct {
	name    string
	needles []string
}{
	{"Edge", []string{"edg/", "edge/", "edga/", "edgios/"}},
	{"Opera", []string{"opr/", "opera"}},
	{"Firefox", []string{"firefox/", "fxios/"}},
	{"Chrome", []string{"chrome/", "crios/"}},
	{"Safari", []string{"safari/"}},
}

// 常见来源域名对应的展示名
var referrerNames = map[string]string{
	"t.co":            "Twitter",
	"twitter.com":     "Twitter",
	"x.com":           "Twitter",
	"facebook.com":    "Facebook",
	"m.facebook.com":  "Facebook",
	"l.facebook.com":  "Facebook",
	"fb.com":          "Facebook",
	"linkedin.com":    "LinkedIn",
	"lnkd.in":         "LinkedIn",
	"instagram.com":   "Instagram",
	"l.instagram.com": "Instagram",
	"youtube.com":     "YouTube",
	"bing.com":        "Bing",
}

// Browser 根据 User-Agent 识别浏览器
func Browser(userAgent string) string {
	ua := strings.ToLower(strings.TrimSpace(userAgent))
	if ua == "" {
		return CategoryUnknown
	}
	for _, sig := range browserSignatures {
		for _, needle := range sig.needles {
			if strings.Contains(ua, needle) {
				return sig.name
			}
		}
	}
	return CategoryOther
}

// Device 识别设备类型，事件上已有的 DeviceType 优先
func Device(event *model.AccessEvent) string {
	switch strings.ToLower(strings.TrimSpace(event.DeviceType)) {
	case "desktop":
		return model.DeviceDesktop
	case "mobile":
		return model.DeviceMobile
	case "tablet":
		return model.DeviceTablet
	}
	return DeviceFromUserAgent(event.UserAgent)
}

// DeviceFromUserAgent 仅根据 User-Agent 判断设备类型
func DeviceFromUserAgent(userAgent string) string {
	ua := strings.ToLower(strings.TrimSpace(userAgent))
	switch {
	case ua == "":
		return model.DeviceUnknown
	case strings.Contains(ua, "ipad") || strings.Contains(ua, "tablet"):
		return model.DeviceTablet
	case strings.Contains(ua, "android") && !strings.Contains(ua, "mobile"):
		return model.DeviceTablet
	case strings.Contains(ua, "mobi") || strings.Contains(ua, "iphone") || strings.Contains(ua, "android"):
		return model.DeviceMobile
	default:
		return model.DeviceDesktop
	}
}

// Referrer 把来源 URL 归类为展示名称，没有来源视为直接访问
func Referrer(referrer string) string {
	ref := strings.TrimSpace(referrer)
	if ref == "" {
		return CategoryDirect
	}
	if !strings.Contains(ref, "://") {
		ref = "//" + ref
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return CategoryUnknown
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	if host == "" {
		return CategoryUnknown
	}
	if name, ok := referrerNames[host]; ok {
		return name
	}
	if host == "google.com" || strings.HasPrefix(host, "google.") {
		return "Google"
	}
	return host
}

// Country 国家分类
func Country(event *model.AccessEvent) string {
	if c := strings.TrimSpace(event.Country); c != "" {
		return c
	}
	return CategoryUnknown
}

// Campaign UTM 活动分类
func Campaign(event *model.AccessEvent) string {
	if c := strings.TrimSpace(event.UTMCampaign); c != "" {
		return c
	}
	return CategoryNone
}

// VisitorKey 用于统计独立访客：优先会话 ID，其次 IP
func VisitorKey(event *model.AccessEvent) string {
	if event.SessionID != "" {
		return "s:" + event.SessionID
	}
	if event.IPAddress != "" {
		return "ip:" + event.IPAddress
	}
	return ""
}
