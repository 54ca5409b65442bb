package ui

import (
	"strconv"
	"strings"
	"time"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"

	"cvsite/internal/analytics"
)

// DashboardPage renders the visit analytics dashboard. The page refreshes
// itself every 30 seconds; the recent-visits table has a client-side quick
// filter.
func DashboardPage(report analytics.Report, recent []analytics.Visit) Node {
	return page("Visit Analytics",
		Meta(Attr("http-equiv", "refresh"), Content("30")),
		Script(
			Type("module"),
			Src("https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.7/bundles/datastar.js"),
		),
		Header(Class("site-header"),
			Div(Class("identity"),
				H1(Text("Visit Analytics")),
				P(Class(mutedClass()), Text("Refreshes every 30 seconds")),
			),
			Div(Class("header-actions"),
				A(Href("/"), Class("icon-button"), Attr("aria-label", "Back to CV"), Text("←")),
			),
		),
		Main(Class("dashboard-main"),
			summaryCards(report.Summary),
			Div(Class("dashboard-grid"),
				labelCountCard("Top Browsers", report.TopBrowsers),
				labelCountCard("Devices", report.DeviceStats),
				labelCountCard("Operating Systems", report.OSStats),
				dailyVisitsCard(report.DailyVisits),
			),
			topVisitorsCard(report.TopVisitors),
			recentVisitsCard(recent),
		),
	)
}

func summaryCards(s analytics.Summary) Node {
	stat := func(label string, value int64) Node {
		return Div(Class(cardClass("stat")),
			Strong(Text(strconv.FormatInt(value, 10))),
			P(Class(mutedClass()), Text(label)),
		)
	}
	return Div(Class("stat-row"),
		stat("Total visits", s.TotalVisits),
		stat("Unique visitors", s.UniqueVisitors),
		stat("Last 7 days", s.RecentVisits7d),
		stat("Today", s.TodayVisits),
	)
}

func labelCountCard(title string, counts []analytics.LabelCount) Node {
	rows := make([]Node, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, Tr(
			Td(Text(c.Label)),
			Td(Class("count"), Text(strconv.FormatInt(c.Count, 10))),
		))
	}
	body := Node(P(Class(mutedClass()), Text("No visits yet.")))
	if len(rows) > 0 {
		body = Table(TBody(Group(rows)))
	}
	return Div(Class(cardClass()),
		H3(Text(title)),
		body,
	)
}

func dailyVisitsCard(daily []analytics.DailyCount) Node {
	rows := make([]Node, 0, len(daily))
	for _, d := range daily {
		rows = append(rows, Tr(
			Td(Text(d.Date)),
			Td(Class("count"), Text(strconv.FormatInt(d.Visits, 10))),
		))
	}
	body := Node(P(Class(mutedClass()), Text("No visits yet.")))
	if len(rows) > 0 {
		body = Table(TBody(Group(rows)))
	}
	return Div(Class(cardClass()),
		H3(Text("Daily Visits (30d)")),
		body,
	)
}

func topVisitorsCard(visitors []analytics.VisitorCount) Node {
	rows := make([]Node, 0, len(visitors))
	for _, v := range visitors {
		rows = append(rows, Tr(
			Td(Text(v.IPAddress)),
			Td(Class("count"), Text(strconv.FormatInt(v.Visits, 10))),
			Td(Class(mutedClass()), Text(formatVisitTime(v.LastVisit))),
		))
	}
	if len(rows) == 0 {
		return Div(Class(cardClass()), H3(Text("Top Visitors")), P(Class(mutedClass()), Text("No visits yet.")))
	}
	return Div(Class(cardClass()),
		H3(Text("Top Visitors")),
		Table(
			THead(Tr(Th(Text("IP")), Th(Text("Visits")), Th(Text("Last visit")))),
			TBody(Group(rows)),
		),
	)
}

func recentVisitsCard(visits []analytics.Visit) Node {
	rows := make([]Node, 0, len(visits))
	for _, v := range visits {
		haystack := strings.Join([]string{v.IPAddress, v.Browser, v.OS, v.DeviceType, v.Referer}, " ")
		rows = append(rows, Tr(
			data.Show(containsExpr(haystack)),
			Td(Text(formatVisitTime(v.VisitedAt))),
			Td(Text(v.IPAddress)),
			Td(Text(v.Browser+" / "+v.OS)),
			Td(Text(v.DeviceType)),
			Td(Class(mutedClass()), Text(v.Referer)),
		))
	}
	if len(rows) == 0 {
		return Div(Class(cardClass()), H3(Text("Recent Visits")), P(Class(mutedClass()), Text("No visits yet.")))
	}
	return Div(Class(cardClass()),
		data.Signals(map[string]any{"q": ""}),
		H3(Text("Recent Visits")),
		Input(Type("search"), Class("quick-filter"), Placeholder("Filter visits"),
			data.Bind("q"), AutoComplete("off")),
		Table(
			THead(Tr(Th(Text("When")), Th(Text("IP")), Th(Text("Browser / OS")), Th(Text("Device")), Th(Text("Referrer")))),
			TBody(Group(rows)),
		),
	)
}

func containsExpr(value string) string {
	lower := strings.ToLower(value)
	return "$q === '' || " + strconv.Quote(lower) + ".includes($q.toLowerCase())"
}

func formatVisitTime(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.UTC().Format("2006-01-02 15:04")
}
