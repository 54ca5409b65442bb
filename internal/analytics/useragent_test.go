package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUserAgent(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want UserAgentInfo
	}{
		{
			name: "chrome on windows",
			ua:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36",
			want: UserAgentInfo{Browser: "Chrome", OS: "Windows", DeviceType: "Desktop"},
		},
		{
			name: "edge on windows",
			ua:   "Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 Chrome/126.0 Safari/537.36 Edg/126.0",
			want: UserAgentInfo{Browser: "Edge", OS: "Windows", DeviceType: "Desktop"},
		},
		{
			name: "firefox on linux",
			ua:   "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0",
			want: UserAgentInfo{Browser: "Firefox", OS: "Linux", DeviceType: "Desktop"},
		},
		{
			name: "safari on iphone",
			ua:   "Mozilla/5.0 (iPhone; CPU iPhone OS 17_5 like Mac OS X) AppleWebKit/605.1.15 Version/17.5 Mobile/15E148 Safari/604.1",
			want: UserAgentInfo{Browser: "Safari", OS: "macOS", DeviceType: "Mobile"},
		},
		{
			name: "android counts as mobile",
			ua:   "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 Chrome/126.0 Mobile Safari/537.36",
			want: UserAgentInfo{Browser: "Chrome", OS: "Linux", DeviceType: "Mobile"},
		},
		{
			name: "empty",
			ua:   "",
			want: UserAgentInfo{Browser: "Unknown", OS: "Unknown", DeviceType: "Desktop"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseUserAgent(tt.ua))
		})
	}
}

func TestPrimaryLanguage(t *testing.T) {
	assert.Equal(t, "es-VE", PrimaryLanguage("es-VE,es;q=0.9,en;q=0.8"))
	assert.Equal(t, "en-US", PrimaryLanguage("en-US"))
	assert.Equal(t, "Unknown", PrimaryLanguage(""))
}

func TestFirstForwardedFor(t *testing.T) {
	assert.Equal(t, "203.0.113.9", FirstForwardedFor("203.0.113.9, 10.0.0.1, 10.0.0.2", "127.0.0.1"))
	assert.Equal(t, "203.0.113.9", FirstForwardedFor("203.0.113.9", "127.0.0.1"))
	assert.Equal(t, "127.0.0.1", FirstForwardedFor("", "127.0.0.1"))
}
