package analytics

import "strings"

// UserAgentInfo is the coarse classification stored with each visit. The
// parser is deliberately keyword-based: it only needs to be good enough for
// dashboard aggregation, not for fingerprinting.
type UserAgentInfo struct {
	Browser    string
	OS         string
	DeviceType string
}

var mobileKeywords = []string{"mobile", "android", "iphone", "ipad", "phone", "tablet"}

// ParseUserAgent classifies a User-Agent string into browser, operating
// system, and device type. Unknown strings classify as "Unknown"/"Desktop".
func ParseUserAgent(ua string) UserAgentInfo {
	lower := strings.ToLower(ua)

	var browser string
	switch {
	case strings.Contains(lower, "edg"):
		browser = "Edge"
	case strings.Contains(lower, "chrome"):
		browser = "Chrome"
	case strings.Contains(lower, "firefox"):
		browser = "Firefox"
	case strings.Contains(lower, "safari"):
		browser = "Safari"
	case strings.Contains(lower, "opera"), strings.Contains(lower, "opr"):
		browser = "Opera"
	default:
		browser = "Unknown"
	}

	var osName string
	switch {
	case strings.Contains(lower, "windows"):
		osName = "Windows"
	case strings.Contains(lower, "mac"), strings.Contains(lower, "darwin"):
		osName = "macOS"
	case strings.Contains(lower, "linux"):
		// Android user agents also contain "linux"; they land here and
		// still count as Mobile through the device keywords.
		osName = "Linux"
	case strings.Contains(lower, "android"):
		osName = "Android"
	case strings.Contains(lower, "iphone"), strings.Contains(lower, "ipad"):
		osName = "iOS"
	default:
		osName = "Unknown"
	}

	device := "Desktop"
	for _, kw := range mobileKeywords {
		if strings.Contains(lower, kw) {
			device = "Mobile"
			break
		}
	}

	return UserAgentInfo{Browser: browser, OS: osName, DeviceType: device}
}

// PrimaryLanguage reduces an Accept-Language header to its first entry.
func PrimaryLanguage(header string) string {
	if header == "" {
		return "Unknown"
	}
	if i := strings.IndexByte(header, ','); i >= 0 {
		header = header[:i]
	}
	return strings.TrimSpace(header)
}

// FirstForwardedFor returns the first (client) address of an
// X-Forwarded-For header, or fallback when the header is empty.
func FirstForwardedFor(header, fallback string) string {
	if header == "" {
		return fallback
	}
	if i := strings.IndexByte(header, ','); i >= 0 {
		header = header[:i]
	}
	return strings.TrimSpace(header)
}
