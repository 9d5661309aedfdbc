package api

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"
)

// validHostnameRegex is a regular expression to validate hostnames
var validHostnameRegex = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?\.)*[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?$`)

// blockedNetworks are address ranges an import may never target. Fetching
// runs server-side, so requests into private or link-local space would be
// a server-side request forgery vector.
var blockedNetworks = mustParseCIDRs(
	"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16",
	"169.254.0.0/16", "fc00::/7", "fe80::/10",
)

func mustParseCIDRs(cidrs ...string) []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, cidr := range cidrs {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			panic(err)
		}
		nets = append(nets, network)
	}
	return nets
}

// validateURL normalizes and validates an import URL. A bare hostname is
// upgraded to https.
func validateURL(rawURL string) (string, error) {
	if rawURL == "" {
		return "", errors.New("url is required")
	}

	rawURL = strings.TrimSpace(rawURL)

	if len(rawURL) > 2048 {
		return "", errors.New("url too long (max 2048 characters)")
	}

	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid url format: %w", err)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("unsupported scheme '%s': only http and https are allowed", u.Scheme)
	}

	if u.Host == "" {
		return "", errors.New("hostname is required")
	}

	hostname := u.Hostname()
	if hostname == "" {
		return "", errors.New("invalid hostname")
	}

	if err := validateHostname(hostname); err != nil {
		return "", fmt.Errorf("invalid hostname: %w", err)
	}

	if strings.Contains(u.Path, "..") {
		return "", errors.New("path traversal patterns are not allowed")
	}

	return u.String(), nil
}

// validateHostname validates the hostname
func validateHostname(hostname string) error {
	if isLocalhost(hostname) {
		return errors.New("localhost and loopback addresses are not allowed")
	}

	if isBlockedIP(hostname) {
		return errors.New("private IP addresses are not allowed")
	}

	if !validHostnameRegex.MatchString(hostname) {
		if net.ParseIP(hostname) == nil {
			return errors.New("invalid hostname or IP address format")
		}
	}

	if len(hostname) > 253 {
		return errors.New("hostname too long (max 253 characters)")
	}

	return nil
}

// isLocalhost checks if the hostname is a localhost address
func isLocalhost(hostname string) bool {
	hostname = strings.ToLower(hostname)
	switch hostname {
	case "localhost", "127.0.0.1", "::1", "0.0.0.0":
		return true
	}
	return strings.HasSuffix(hostname, ".localhost")
}

// isBlockedIP checks if the hostname is an IP inside a blocked range
func isBlockedIP(hostname string) bool {
	ip := net.ParseIP(hostname)
	if ip == nil {
		return false
	}

	for _, network := range blockedNetworks {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
