package storage

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const defaultEndpoint = "s3.amazonaws.com"

// parseEndpoint splits an endpoint into host[:port] and whether TLS is used.
// A bare host defaults to TLS.
func parseEndpoint(raw string) (string, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultEndpoint, true, nil
	}
	if !strings.Contains(raw, "://") {
		return strings.TrimSuffix(raw, "/"), true, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false, fmt.Errorf("invalid endpoint %q: %w", raw, err)
	}

	var secure bool
	switch u.Scheme {
	case "https":
		secure = true
	case "http":
		secure = false
	default:
		return "", false, fmt.Errorf("invalid endpoint %q: unsupported scheme %q", raw, u.Scheme)
	}
	if u.Host == "" {
		return "", false, fmt.Errorf("invalid endpoint %q: missing host", raw)
	}
	if u.Path != "" && u.Path != "/" {
		return "", false, fmt.Errorf("invalid endpoint %q: path not allowed", raw)
	}

	return u.Host, secure, nil
}

// endpointURL normalizes an endpoint to a full URL, or "" for the AWS default.
func endpointURL(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	host, secure, err := parseEndpoint(raw)
	if err != nil {
		return "", err
	}
	if secure {
		return "https://" + host, nil
	}
	return "http://" + host, nil
}

// skipVerify turns off certificate verification on tr.
func skipVerify(tr *http.Transport) {
	if tr.TLSClientConfig == nil {
		tr.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	tr.TLSClientConfig.InsecureSkipVerify = true // #nosec G402 -- SSL_VERIFY=false
}
