package files

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/farxc/tuition_status/internal/logger"
)

// MaxDownloadBytes caps remote spreadsheets.
var MaxDownloadBytes int64 = 64 << 20

var httpClient = &http.Client{Timeout: 2 * time.Minute}

// IsURL reports whether input names a remote spreadsheet rather than a path.
func IsURL(input string) bool {
	u, err := url.Parse(input)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Download fetches a spreadsheet over HTTP and decodes it like an upload. The
// format comes from the Content-Disposition filename, falling back to the URL
// path.
func Download(ctx context.Context, rawURL string, opts ReadOptions, appLogger *logger.Logger) ([][]string, error) {
	const component = "Downloader"

	appLogger.Debug(component, "Starting download: url=%s", rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "tuition-status/0.1")

	resp, err := httpClient.Do(req)
	if err != nil {
		appLogger.Error(component, "HTTP request failed: url=%s error=%v", rawURL, err)
		return nil, fmt.Errorf("download %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		appLogger.Warn(component, "Non-OK HTTP response: url=%s status=%s", rawURL, resp.Status)
		return nil, fmt.Errorf("download %s: unexpected status %s", rawURL, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", rawURL, err)
	}
	if int64(len(body)) > MaxDownloadBytes {
		return nil, fmt.Errorf("download %s: larger than %d bytes", rawURL, MaxDownloadBytes)
	}

	name := remoteFilename(rawURL, resp.Header.Get("Content-Disposition"))
	appLogger.Info(component, "Download completed: url=%s file=%s size=%d bytes", rawURL, name, len(body))

	return Read(bytes.NewReader(body), name, opts, appLogger)
}

func remoteFilename(rawURL, disposition string) string {
	if disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil && params["filename"] != "" {
			return params["filename"]
		}
	}
	if u, err := url.Parse(rawURL); err == nil {
		return path.Base(u.Path)
	}
	return ""
}
