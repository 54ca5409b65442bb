package analytics

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
	topBrowsersLimit   = 5
	topVisitorsLimit   = 10
	topOSLimit         = 5
	dailyWindowDays    = 30
)

// Handler serves the visit-tracking API: the POST /api/track collector and
// the read-side analytics endpoints consumed by the dashboard.
type Handler struct {
	repo *VisitRepo
	log  *slog.Logger
	now  func() time.Time
}

func NewHandler(repo *VisitRepo, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		repo: repo,
		log:  log.With("component", "analytics"),
		now:  time.Now,
	}
}

// MountRoutes attaches the analytics endpoints to r. Middlewares, if any,
// wrap only the track endpoint: aggregates are cheap to serve, but each
// track request costs a write.
func (h *Handler) MountRoutes(r chi.Router, trackMiddlewares ...func(http.Handler) http.Handler) {
	if len(trackMiddlewares) > 0 {
		r.With(trackMiddlewares...).Post("/api/track", h.Track)
	} else {
		r.Post("/api/track", h.Track)
	}
	r.Get("/api/analytics", h.Analytics)
	r.Get("/api/analytics/recent", h.RecentVisits)
	r.Get("/health", h.Health)
}

// trackRequest is the optional JSON body of POST /api/track. Everything in
// it can also be derived from request headers; header values win only when
// the body leaves them empty.
type trackRequest struct {
	Timestamp time.Time `json:"timestamp"`
	UserAgent string    `json:"user_agent"`
	Referrer  string    `json:"referrer"`
	Language  string    `json:"language"`
}

// Track records a visit. It always answers 200: tracking failures must
// never break the page that fired the event, so errors are reported in the
// body and the log only.
func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	var body trackRequest
	if r.Body != nil {
		// A missing or malformed body is fine; headers cover the rest.
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	ua := body.UserAgent
	if ua == "" {
		ua = r.UserAgent()
	}
	referer := body.Referrer
	if referer == "" {
		referer = r.Referer()
	}
	language := body.Language
	if language == "" {
		language = PrimaryLanguage(r.Header.Get("Accept-Language"))
	}
	visitedAt := body.Timestamp
	if visitedAt.IsZero() {
		visitedAt = h.now()
	}

	info := ParseUserAgent(ua)
	visit := Visit{
		IPAddress:  FirstForwardedFor(r.Header.Get("X-Forwarded-For"), remoteHost(r)),
		UserAgent:  ua,
		Browser:    info.Browser,
		OS:         info.OS,
		DeviceType: info.DeviceType,
		Referer:    referer,
		Language:   language,
		VisitedAt:  visitedAt,
	}

	if err := h.repo.Insert(r.Context(), visit); err != nil {
		h.log.Error("tracking visit failed", "error", err)
		writeJSON(w, http.StatusOK, map[string]string{"status": "error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "tracked",
		"timestamp": visit.VisitedAt.UTC().Format(time.RFC3339),
	})
}

// Analytics returns the aggregate report for the dashboard.
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	report, err := h.repo.BuildReport(r.Context(), h.now())
	if err != nil {
		h.serverError(w, "build report", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// RecentVisits returns the latest visits; ?limit= defaults to 20, capped
// at 100.
func (h *Handler) RecentVisits(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	visits, err := h.repo.Recent(r.Context(), limit)
	if err != nil {
		h.serverError(w, "recent visits", err)
		return
	}
	if visits == nil {
		visits = []Visit{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"visits": visits})
}

// Health reports whether the visit store answers a trivial query.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Ping(r.Context()); err != nil {
		h.log.Warn("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy", "database": "unreachable",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy", "database": "connected",
	})
}

func (h *Handler) serverError(w http.ResponseWriter, what string, err error) {
	h.log.Error("analytics query failed", "query", what, "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "analytics unavailable"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
