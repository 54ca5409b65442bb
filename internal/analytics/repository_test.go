package analytics

import (
	"context"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvsite/internal/db"
)

func newTestRepo(t *testing.T) *VisitRepo {
	t.Helper()
	writeDB, readDB := db.OpenTestSQLite(t)
	return NewVisitRepo(writeDB, readDB)
}

func seedVisit(t *testing.T, repo *VisitRepo, ip, browser, os, device string, at time.Time) {
	t.Helper()
	require.NoError(t, repo.Insert(context.Background(), Visit{
		IPAddress:  ip,
		UserAgent:  "test-agent",
		Browser:    browser,
		OS:         os,
		DeviceType: device,
		Language:   "en-US",
		VisitedAt:  at,
	}))
}

func TestVisitRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	at := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)

	require.NoError(t, repo.Insert(context.Background(), Visit{
		IPAddress:  "203.0.113.9",
		UserAgent:  "Mozilla/5.0",
		Browser:    "Firefox",
		OS:         "Linux",
		DeviceType: "Desktop",
		Referer:    "https://news.ycombinator.com",
		Language:   "es-VE",
		VisitedAt:  at,
	}))

	visits, err := repo.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, visits, 1)

	v := visits[0]
	assert.Equal(t, "203.0.113.9", v.IPAddress)
	assert.Equal(t, "Firefox", v.Browser)
	assert.Equal(t, "https://news.ycombinator.com", v.Referer)
	assert.Equal(t, at, v.VisitedAt)
}

func TestSummarizeCountsWindows(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)

	// One visit today, one earlier this week, one outside the 7d window.
	seedVisit(t, repo, "203.0.113.1", "Chrome", "Windows", "Desktop", now.Add(-2*time.Hour))
	seedVisit(t, repo, "203.0.113.1", "Chrome", "Windows", "Desktop", now.Add(-3*24*time.Hour))
	seedVisit(t, repo, "203.0.113.2", "Firefox", "Linux", "Desktop", now.Add(-20*24*time.Hour))

	s, err := repo.Summarize(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, int64(3), s.TotalVisits)
	assert.Equal(t, int64(2), s.UniqueVisitors)
	assert.Equal(t, int64(2), s.RecentVisits7d)
	assert.Equal(t, int64(1), s.TodayVisits)
}

func TestTopBrowsersAndVisitors(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	for i := range 3 {
		seedVisit(t, repo, "203.0.113.1", "Chrome", "Windows", "Desktop", now.Add(-time.Duration(i)*time.Hour))
	}
	seedVisit(t, repo, "203.0.113.2", "Firefox", "Linux", "Desktop", now)

	browsers, err := repo.TopBrowsers(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, browsers, 2)
	assert.Equal(t, LabelCount{Label: "Chrome", Count: 3}, browsers[0])

	visitors, err := repo.TopVisitors(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, visitors, 2)
	assert.Equal(t, "203.0.113.1", visitors[0].IPAddress)
	assert.Equal(t, int64(3), visitors[0].Visits)
	assert.Equal(t, now, visitors[0].LastVisit)
}

func TestDailyVisitsGroupsByDate(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	seedVisit(t, repo, "203.0.113.1", "Chrome", "Windows", "Desktop", now.Add(-1*time.Hour))
	seedVisit(t, repo, "203.0.113.1", "Chrome", "Windows", "Desktop", now.Add(-2*time.Hour))
	seedVisit(t, repo, "203.0.113.2", "Firefox", "Linux", "Desktop", now.Add(-26*time.Hour))

	daily, err := repo.DailyVisits(context.Background(), now, 30)
	require.NoError(t, err)
	require.Len(t, daily, 2)

	// Newest day first.
	assert.Equal(t, "2026-08-28", daily[0].Date)
	assert.Equal(t, int64(2), daily[0].Visits)
	assert.Equal(t, "2026-08-27", daily[1].Date)
	assert.Equal(t, int64(1), daily[1].Visits)
}

func TestDeleteOlderThan(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	seedVisit(t, repo, "203.0.113.1", "Chrome", "Windows", "Desktop", now)
	seedVisit(t, repo, "203.0.113.2", "Firefox", "Linux", "Desktop", now.Add(-90*24*time.Hour))

	n, err := repo.DeleteOlderThan(context.Background(), now.Add(-30*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	visits, err := repo.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, "203.0.113.1", visits[0].IPAddress)
}

func TestRecentRespectsLimitAndOrder(t *testing.T) {
	repo := newTestRepo(t)
	base := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	for i := range 5 {
		seedVisit(t, repo, "203.0.113.1", "Chrome", "Windows", "Desktop", base.Add(time.Duration(i)*time.Minute))
	}

	visits, err := repo.Recent(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, visits, 3)
	assert.Equal(t, base.Add(4*time.Minute), visits[0].VisitedAt)
	assert.True(t, visits[0].VisitedAt.After(visits[2].VisitedAt))
}
