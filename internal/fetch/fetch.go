// Package fetch retrieves gallery resources (manifest, thumbnails,
// full-size images) from HTTP locations or the local filesystem.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Fetcher retrieves resource bytes from a URL or file path.
type Fetcher struct {
	HTTPClient *http.Client
}

// New creates a fetcher with a sane request timeout.
func New() *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// IsRemote reports whether src is an HTTP or HTTPS location.
func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Fetch retrieves the resource at src. HTTP sources fail on any
// non-2xx status; anything else is read as a local file.
func (f *Fetcher) Fetch(src string) ([]byte, error) {
	if !IsRemote(src) {
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", src, err)
		}
		return data, nil
	}

	resp, err := f.HTTPClient.Get(src)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("get %s: unexpected status %s", src, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", src, err)
	}
	return data, nil
}
