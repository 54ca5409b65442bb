package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// timeFormat is how timestamps are stored in the visits table: UTC, second
// precision, lexicographically ordered so range comparisons and DATE() work
// on the raw text.
const timeFormat = "2006-01-02 15:04:05"

// VisitRepo persists and aggregates visits. Inserts go through the write
// pool, aggregate queries through the read pool.
type VisitRepo struct {
	writeDB *sql.DB
	readDB  *sql.DB
}

func NewVisitRepo(writeDB, readDB *sql.DB) *VisitRepo {
	return &VisitRepo{writeDB: writeDB, readDB: readDB}
}

// Insert records one visit.
func (r *VisitRepo) Insert(ctx context.Context, v Visit) error {
	if v.VisitedAt.IsZero() {
		v.VisitedAt = time.Now()
	}
	_, err := r.writeDB.ExecContext(ctx, `
		INSERT INTO visits (ip_address, user_agent, browser, os, device_type, referer, language, visited_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		v.IPAddress, nullable(v.UserAgent), v.Browser, v.OS, v.DeviceType,
		nullable(v.Referer), nullable(v.Language), encodeTime(v.VisitedAt),
	)
	if err != nil {
		return fmt.Errorf("insert visit: %w", err)
	}
	return nil
}

// Summarize computes the headline counters.
func (r *VisitRepo) Summarize(ctx context.Context, now time.Time) (Summary, error) {
	var s Summary
	err := r.readDB.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(DISTINCT ip_address),
			COUNT(*) FILTER (WHERE visited_at > ?),
			COUNT(*) FILTER (WHERE visited_at >= ?)
		FROM visits`,
		encodeTime(now.Add(-7*24*time.Hour)),
		encodeTime(startOfUTCDay(now)),
	).Scan(&s.TotalVisits, &s.UniqueVisitors, &s.RecentVisits7d, &s.TodayVisits)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize visits: %w", err)
	}
	return s, nil
}

// TopBrowsers returns the most common browsers, highest count first.
func (r *VisitRepo) TopBrowsers(ctx context.Context, limit int) ([]LabelCount, error) {
	return r.labelCounts(ctx, `
		SELECT browser, COUNT(*) AS count FROM visits
		GROUP BY browser ORDER BY count DESC LIMIT ?`, limit)
}

// DeviceStats returns visit counts per device type.
func (r *VisitRepo) DeviceStats(ctx context.Context) ([]LabelCount, error) {
	return r.labelCounts(ctx, `
		SELECT device_type, COUNT(*) AS count FROM visits
		GROUP BY device_type ORDER BY count DESC LIMIT ?`, 10)
}

// OSStats returns the most common operating systems.
func (r *VisitRepo) OSStats(ctx context.Context, limit int) ([]LabelCount, error) {
	return r.labelCounts(ctx, `
		SELECT os, COUNT(*) AS count FROM visits
		GROUP BY os ORDER BY count DESC LIMIT ?`, limit)
}

func (r *VisitRepo) labelCounts(ctx context.Context, query string, limit int) ([]LabelCount, error) {
	rows, err := r.readDB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("label counts: %w", err)
	}
	defer rows.Close()

	var out []LabelCount
	for rows.Next() {
		var lc LabelCount
		var label sql.NullString
		if err := rows.Scan(&label, &lc.Count); err != nil {
			return nil, fmt.Errorf("scan label count: %w", err)
		}
		lc.Label = label.String
		if lc.Label == "" {
			lc.Label = "Unknown"
		}
		out = append(out, lc)
	}
	return out, rows.Err()
}

// TopVisitors returns the IPs with the most visits.
func (r *VisitRepo) TopVisitors(ctx context.Context, limit int) ([]VisitorCount, error) {
	rows, err := r.readDB.QueryContext(ctx, `
		SELECT ip_address, COUNT(*) AS visits, MAX(visited_at) AS last_visit
		FROM visits GROUP BY ip_address ORDER BY visits DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("top visitors: %w", err)
	}
	defer rows.Close()

	var out []VisitorCount
	for rows.Next() {
		var vc VisitorCount
		var last string
		if err := rows.Scan(&vc.IPAddress, &vc.Visits, &last); err != nil {
			return nil, fmt.Errorf("scan visitor count: %w", err)
		}
		vc.LastVisit = decodeTime(last)
		out = append(out, vc)
	}
	return out, rows.Err()
}

// DailyVisits returns per-day visit totals for the trailing window.
func (r *VisitRepo) DailyVisits(ctx context.Context, now time.Time, days int) ([]DailyCount, error) {
	rows, err := r.readDB.QueryContext(ctx, `
		SELECT DATE(visited_at) AS date, COUNT(*) AS visits
		FROM visits WHERE visited_at > ?
		GROUP BY DATE(visited_at) ORDER BY date DESC`,
		encodeTime(now.Add(-time.Duration(days)*24*time.Hour)))
	if err != nil {
		return nil, fmt.Errorf("daily visits: %w", err)
	}
	defer rows.Close()

	var out []DailyCount
	for rows.Next() {
		var dc DailyCount
		if err := rows.Scan(&dc.Date, &dc.Visits); err != nil {
			return nil, fmt.Errorf("scan daily count: %w", err)
		}
		out = append(out, dc)
	}
	return out, rows.Err()
}

// Recent returns the latest visits, newest first.
func (r *VisitRepo) Recent(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := r.readDB.QueryContext(ctx, `
		SELECT id, ip_address, COALESCE(user_agent, ''), COALESCE(browser, ''),
		       COALESCE(os, ''), COALESCE(device_type, ''), COALESCE(referer, ''),
		       COALESCE(language, ''), visited_at
		FROM visits ORDER BY visited_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent visits: %w", err)
	}
	defer rows.Close()

	var out []Visit
	for rows.Next() {
		var v Visit
		var visited string
		if err := rows.Scan(&v.ID, &v.IPAddress, &v.UserAgent, &v.Browser,
			&v.OS, &v.DeviceType, &v.Referer, &v.Language, &visited); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		v.VisitedAt = decodeTime(visited)
		out = append(out, v)
	}
	return out, rows.Err()
}

// BuildReport assembles the full aggregate report served by the analytics
// API and rendered on the dashboard.
func (r *VisitRepo) BuildReport(ctx context.Context, now time.Time) (Report, error) {
	summary, err := r.Summarize(ctx, now)
	if err != nil {
		return Report{}, err
	}
	browsers, err := r.TopBrowsers(ctx, topBrowsersLimit)
	if err != nil {
		return Report{}, err
	}
	visitors, err := r.TopVisitors(ctx, topVisitorsLimit)
	if err != nil {
		return Report{}, err
	}
	devices, err := r.DeviceStats(ctx)
	if err != nil {
		return Report{}, err
	}
	oses, err := r.OSStats(ctx, topOSLimit)
	if err != nil {
		return Report{}, err
	}
	daily, err := r.DailyVisits(ctx, now, dailyWindowDays)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Summary:     summary,
		TopBrowsers: browsers,
		TopVisitors: visitors,
		DeviceStats: devices,
		OSStats:     oses,
		DailyVisits: daily,
	}, nil
}

// DeleteOlderThan removes visits before the cutoff and returns how many
// rows went away. Used by the retention job.
func (r *VisitRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.writeDB.ExecContext(ctx, `DELETE FROM visits WHERE visited_at < ?`, encodeTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("prune visits: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Ping verifies the read pool is reachable, for the health endpoint.
func (r *VisitRepo) Ping(ctx context.Context) error {
	var one int
	return r.readDB.QueryRowContext(ctx, `SELECT 1`).Scan(&one)
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func encodeTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func decodeTime(s string) time.Time {
	t, err := time.ParseInLocation(timeFormat, s, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}

func startOfUTCDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
