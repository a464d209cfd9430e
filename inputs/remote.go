package inputs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/richinsley/goglass"
)

// UseCache controls whether downloaded textures are kept on disk.
var UseCache = true

var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

type headerTransport struct {
	Transport http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", "goglass/"+goglass.Version)
	return t.Transport.RoundTrip(req)
}

func init() {
	httpClient.Transport = &headerTransport{Transport: http.DefaultTransport}
}

// cacheDir returns the texture cache directory, creating it if needed.
func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "goglass", "textures")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create cache directory at %s: %w", dir, err)
	}
	return dir, nil
}

func cachePath(dir, rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	name := hex.EncodeToString(sum[:16])
	if u, err := url.Parse(rawURL); err == nil {
		name += path.Ext(u.Path)
	}
	return filepath.Join(dir, name)
}

// fetch downloads rawURL, serving it from the cache when possible.
func fetch(ctx context.Context, rawURL string) ([]byte, error) {
	log := goglass.Logger()
	var cached string
	if UseCache {
		if dir, err := cacheDir(); err != nil {
			log.Warn("texture cache unavailable", "err", err)
		} else {
			cached = cachePath(dir, rawURL)
			if data, err := os.ReadFile(cached); err == nil {
				log.Debug("texture cache hit", "url", rawURL, "path", cached)
				return data, nil
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download %s: bad response status: %s", rawURL, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body from %s: %w", rawURL, err)
	}

	if cached != "" {
		if err := os.WriteFile(cached, data, 0644); err != nil {
			log.Warn("failed to save texture to cache", "path", cached, "err", err)
		}
	}
	return data, nil
}
