package storage

import (
	"net/http"
	"strings"
	"testing"
)

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantHost   string
		wantSecure bool
		wantErr    bool
	}{
		{name: "empty uses aws", raw: "", wantHost: "s3.amazonaws.com", wantSecure: true},
		{name: "bare host", raw: "minio.local:9000", wantHost: "minio.local:9000", wantSecure: true},
		{name: "https url", raw: "https://s3.example.com", wantHost: "s3.example.com", wantSecure: true},
		{name: "http url", raw: "http://localhost:9000", wantHost: "localhost:9000", wantSecure: false},
		{name: "trailing slash", raw: "http://localhost:9000/", wantHost: "localhost:9000", wantSecure: false},
		{name: "unsupported scheme", raw: "ftp://example.com", wantErr: true},
		{name: "path not allowed", raw: "https://example.com/bucket", wantErr: true},
		{name: "missing host", raw: "https://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, secure, err := parseEndpoint(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseEndpoint() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if host != tt.wantHost || secure != tt.wantSecure {
				t.Fatalf("parseEndpoint() = (%q, %v), want (%q, %v)", host, secure, tt.wantHost, tt.wantSecure)
			}
		})
	}
}

func TestEndpointURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "", want: ""},
		{raw: "minio.local:9000", want: "https://minio.local:9000"},
		{raw: "http://localhost:9000", want: "http://localhost:9000"},
	}

	for _, tt := range tests {
		got, err := endpointURL(tt.raw)
		if err != nil {
			t.Fatalf("endpointURL(%q) error = %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("endpointURL(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestSkipVerify(t *testing.T) {
	tr := &http.Transport{}
	skipVerify(tr)
	if tr.TLSClientConfig == nil || !tr.TLSClientConfig.InsecureSkipVerify {
		t.Fatal("expected InsecureSkipVerify to be set")
	}
}

func TestDetectContentType(t *testing.T) {
	tests := []struct {
		path       string
		wantPrefix string
	}{
		{path: "incoming/report.json", wantPrefix: "application/json"},
		{path: "incoming/Makefile", wantPrefix: "application/octet-stream"},
		{path: "incoming/index.html", wantPrefix: "text/html"},
		{path: "incoming/blob.unknownext", wantPrefix: "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := detectContentType(tt.path)
			if !strings.HasPrefix(got, tt.wantPrefix) {
				t.Fatalf("detectContentType(%q) = %q, want prefix %q", tt.path, got, tt.wantPrefix)
			}
		})
	}
}
