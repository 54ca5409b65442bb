// Package analytics implements the visit collector behind the CV page:
// recording page visits and answering aggregate queries for the dashboard.
// Tracking is best-effort by design — a failed insert never surfaces to the
// visitor.
package analytics

import "time"

// Visit is one recorded page view.
type Visit struct {
	ID         int64     `json:"id,omitempty"`
	IPAddress  string    `json:"ip_address"`
	UserAgent  string    `json:"user_agent,omitempty"`
	Browser    string    `json:"browser"`
	OS         string    `json:"os"`
	DeviceType string    `json:"device_type"`
	Referer    string    `json:"referer,omitempty"`
	Language   string    `json:"language,omitempty"`
	VisitedAt  time.Time `json:"visited_at"`
}

// Summary holds the headline counters for the dashboard.
type Summary struct {
	TotalVisits    int64 `json:"total_visits"`
	UniqueVisitors int64 `json:"unique_visitors"`
	RecentVisits7d int64 `json:"recent_visits_7d"`
	TodayVisits    int64 `json:"today_visits"`
}

// LabelCount is a generic (label, count) aggregation row: browsers,
// devices, operating systems.
type LabelCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// VisitorCount aggregates visits per IP address.
type VisitorCount struct {
	IPAddress string    `json:"ip_address"`
	Visits    int64     `json:"visits"`
	LastVisit time.Time `json:"last_visit"`
}

// DailyCount is one day's visit total.
type DailyCount struct {
	Date   string `json:"date"`
	Visits int64  `json:"visits"`
}

// Report is the full GET /api/analytics response.
type Report struct {
	Summary     Summary        `json:"summary"`
	TopBrowsers []LabelCount   `json:"top_browsers"`
	TopVisitors []VisitorCount `json:"top_ips"`
	DeviceStats []LabelCount   `json:"device_stats"`
	OSStats     []LabelCount   `json:"os_stats"`
	DailyVisits []DailyCount   `json:"daily_visits"`
}
