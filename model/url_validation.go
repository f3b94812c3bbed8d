package model

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// URL validation errors
var (
	ErrInvalidURL        = errors.New("invalid URL format")
	ErrUnsupportedScheme = errors.New("unsupported URL scheme - only HTTP and HTTPS are allowed")
	ErrPrivateIPBlocked  = errors.New("private IP addresses and localhost are blocked")
	ErrMissingHost       = errors.New("URL must have a valid host")
	ErrEmptyURL          = errors.New("URL cannot be empty")
)

// ValidateURL validates a feed or server URL before any request is made.
// Checks the scheme and host, and unless allowPrivateIPs is set, blocks
// localhost and RFC 1918 ranges. A self-hosted reader often lives on a
// private network, so the add-feed command exposes --allow-private-ips.
func ValidateURL(rawURL string, allowPrivateIPs bool) error {
	if rawURL == "" {
		return ErrEmptyURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return ErrUnsupportedScheme
	}

	if u.Host == "" {
		return ErrMissingHost
	}

	if !allowPrivateIPs {
		if err := checkHostIsPublic(u.Host); err != nil {
			return err
		}
	}

	return nil
}

// checkHostIsPublic rejects localhost and hosts resolving only to private
// ranges. Unresolvable hosts pass; the HTTP client reports those with better
// context at request time.
func checkHostIsPublic(host string) error {
	hostname, _, err := net.SplitHostPort(host)
	if err != nil {
		hostname = host
	}

	if isLocalhost(hostname) {
		return ErrPrivateIPBlocked
	}

	ips, err := net.LookupIP(hostname)
	if err != nil {
		return nil
	}

	for _, ip := range ips {
		if isPrivateIP(ip) {
			return ErrPrivateIPBlocked
		}
	}

	return nil
}

func isLocalhost(hostname string) bool {
	hostname = strings.ToLower(hostname)

	switch hostname {
	case "localhost", "127.0.0.1", "::1", "[::1]":
		return true
	}

	return strings.HasPrefix(hostname, "127.")
}

func isPrivateIP(ip net.IP) bool {
	if ip4 := ip.To4(); ip4 != nil {
		switch {
		case ip4[0] == 10: // 10.0.0.0/8
			return true
		case ip4[0] == 172 && ip4[1] >= 16 && ip4[1] <= 31: // 172.16.0.0/12
			return true
		case ip4[0] == 192 && ip4[1] == 168: // 192.168.0.0/16
			return true
		case ip4[0] == 169 && ip4[1] == 254: // link-local
			return true
		case ip4[0] == 127: // loopback
			return true
		}
		return false
	}

	if ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
		return true
	}

	// IPv6 unique local addresses (fc00::/7)
	return len(ip) == 16 && (ip[0]&0xfe) == 0xfc
}
