package notify

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// maxArtBytes caps downloaded cover images.
const maxArtBytes = 5 << 20

// ArtCache downloads cover art URLs to local files, since notification
// servers only accept file paths or icon names.
type ArtCache struct {
	dir        string
	httpClient *http.Client
}

// NewArtCache creates a cache under $XDG_CACHE_HOME/liveradio/art.
func NewArtCache() (*ArtCache, error) {
	marker, err := xdg.CacheFile(filepath.Join("liveradio", "art", ".keep"))
	if err != nil {
		return nil, err
	}
	return newArtCache(filepath.Dir(marker)), nil
}

func newArtCache(dir string) *ArtCache {
	return &ArtCache{
		dir: dir,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Path returns a local file for the image at url, downloading it on first
// use. It returns "" when the image is unavailable.
func (c *ArtCache) Path(ctx context.Context, url string) string {
	if c == nil || url == "" {
		return ""
	}

	dest := filepath.Join(c.dir, cacheName(url))
	if _, err := os.Stat(dest); err == nil {
		return dest
	}

	if err := c.download(ctx, url, dest); err != nil {
		return ""
	}
	return dest
}

func (c *ArtCache) download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}

	// Write to a temp file so a failed download never leaves a partial image.
	tmp, err := os.CreateTemp(c.dir, "art-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, io.LimitReader(resp.Body, maxArtBytes)); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dest)
}

// cacheName derives a stable file name from url, keeping its extension.
func cacheName(url string) string {
	sum := sha256.Sum256([]byte(url))
	name := hex.EncodeToString(sum[:12])

	ext := strings.ToLower(path.Ext(strings.SplitN(url, "?", 2)[0]))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
		return name + ext
	default:
		return name + ".jpg"
	}
}
