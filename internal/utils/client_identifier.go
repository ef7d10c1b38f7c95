package utils

import (
	"net"
	"net/http"
	"strings"
)

// UnknownClientAddress is the rate-limit key used when no address can be found.
const UnknownClientAddress = "unknown"

// GetClientAddress returns the best caller IP from proxy headers or RemoteAddr.
func GetClientAddress(r *http.Request) string {
	if ip := detectIP(r); ip != "" {
		return ip
	}
	return UnknownClientAddress
}

// detectIP extracts the best IP address from typical headers or RemoteAddr.
func detectIP(r *http.Request) string {
	if forwardedFor := r.Header.Get("X-Forwarded-For"); forwardedFor != "" {
		for _, ip := range strings.Split(forwardedFor, ",") {
			cleanIP := strings.TrimSpace(ip)
			if isValidIP(cleanIP) {
				return cleanIP
			}
		}
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" && isValidIP(realIP) {
		return realIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && isValidIP(ip) {
		return ip
	}
	return ""
}

func isValidIP(ip string) bool {
	return net.ParseIP(ip) != nil
}
