package utils

import (
	"net/http/httptest"
	"testing"
)

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{"10.0.0.0/8", " 192.168.1.7 ", "::1", "garbage", ""})
	if m.IsEmpty() {
		t.Fatal("IsEmpty() = true, want false")
	}

	tests := []struct {
		ip   string
		want bool
	}{
		{"10.20.30.40", true},
		{"192.168.1.7", true},
		{"192.168.1.8", false},
		{"::1", true},
		{"::ffff:10.1.1.1", true},
		{"not-an-ip", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := m.Allow(tt.ip); got != tt.want {
			t.Errorf("Allow(%q) = %v, want %v", tt.ip, got, tt.want)
		}
	}

	if !NewIPMatcher(nil).IsEmpty() {
		t.Error("NewIPMatcher(nil).IsEmpty() = false, want true")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remote     string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{name: "remote addr", remote: "1.2.3.4:5678", want: "1.2.3.4"},
		{name: "ipv6 remote", remote: "[::1]:80", want: "::1"},
		{name: "untrusted xff ignored", remote: "1.2.3.4:1", headers: map[string]string{"X-Forwarded-For": "9.9.9.9"}, want: "1.2.3.4"},
		{name: "trusted xff first entry", remote: "1.2.3.4:1", headers: map[string]string{"X-Forwarded-For": "9.9.9.9, 8.8.8.8"}, trustProxy: true, want: "9.9.9.9"},
		{name: "cloudflare wins", remote: "1.2.3.4:1", headers: map[string]string{"CF-Connecting-IP": "5.5.5.5", "X-Forwarded-For": "9.9.9.9"}, trustProxy: true, want: "5.5.5.5"},
		{name: "real ip fallback", remote: "1.2.3.4:1", headers: map[string]string{"X-Real-IP": "7.7.7.7"}, trustProxy: true, want: "7.7.7.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("ClientIP() = %v, want %v", got, tt.want)
			}
		})
	}
}
