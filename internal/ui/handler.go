// Package ui renders the CV page and the analytics dashboard. Widget behavior
// lives in embedded scripts; the server only ships anchors and state.
package ui

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	gomponents "maragu.dev/gomponents"

	"cvsite/internal/analytics"
	"cvsite/internal/content"
	"cvsite/internal/telemetry"
)

const dashboardRecentLimit = 20

type Handler struct {
	Profile   *content.Profile
	Repo      *analytics.VisitRepo
	Telemetry *telemetry.Client
	Log       *slog.Logger

	now func() time.Time
}

func NewHandler(profile *content.Profile, repo *analytics.VisitRepo, tc *telemetry.Client, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		Profile:   profile,
		Repo:      repo,
		Telemetry: tc,
		Log:       log.With("component", "ui"),
		now:       time.Now,
	}
}

// Home serves the CV page and reports the visit to the collector. The
// telemetry dispatch never delays or fails the render.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.Telemetry.NotifyVisit(telemetry.VisitEvent{
		Timestamp: h.now().UTC(),
		UserAgent: r.UserAgent(),
		Referrer:  r.Referer(),
		Language:  analytics.PrimaryLanguage(r.Header.Get("Accept-Language")),
		RemoteIP:  analytics.FirstForwardedFor(r.Header.Get("X-Forwarded-For"), remoteHost(r)),
	})
	renderHTML(w, http.StatusOK, CVPage(h.Profile))
}

// Dashboard serves the analytics dashboard page.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	report, err := h.Repo.BuildReport(ctx, h.now())
	if err != nil {
		h.Log.Error("building analytics report failed", "error", err)
		http.Error(w, "analytics unavailable", http.StatusInternalServerError)
		return
	}
	recent, err := h.Repo.Recent(ctx, dashboardRecentLimit)
	if err != nil {
		h.Log.Error("loading recent visits failed", "error", err)
		http.Error(w, "analytics unavailable", http.StatusInternalServerError)
		return
	}
	renderHTML(w, http.StatusOK, DashboardPage(report, recent))
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
