package model

import (
	"testing"
)

// FuzzValidateURL exercises URL validation with hostile inputs: SSRF bypass
// attempts, malformed URLs, and encoding tricks must never cause a panic.
func FuzzValidateURL(f *testing.F) {
	f.Add("https://blog.example/feed.xml", false)
	f.Add("http://feeds.example.org/rss", false)

	// Localhost and private ranges
	f.Add("http://localhost/feed.xml", false)
	f.Add("https://127.0.0.1:8080/rss", false)
	f.Add("http://[::1]/atom", false)
	f.Add("http://10.0.0.1/feed", false)
	f.Add("http://192.168.1.1/rss", false)
	f.Add("http://169.254.1.1/feed", false)

	// Schemes that must always be rejected
	f.Add("file:///etc/passwd", false)
	f.Add("ftp://example.com/feed", false)
	f.Add("javascript:alert(1)", false)
	f.Add("gopher://example.com/feed", false)

	// Bypass attempts
	f.Add("http://localhost@example.com/feed", false)
	f.Add("http://example.com@localhost/feed", false)
	f.Add("http://127.1/feed", false)
	f.Add("http://0x7f000001/feed", false)
	f.Add("http://%6C%6F%63%61%6C%68%6F%73%74/feed", false)

	// Malformed
	f.Add("", false)
	f.Add("not-a-url", false)
	f.Add("://example.com", false)
	f.Add("http://", false)

	f.Add("http://localhost/feed", true)

	f.Fuzz(func(t *testing.T, url string, allowPrivateIPs bool) {
		_ = ValidateURL(url, allowPrivateIPs)
	})
}
