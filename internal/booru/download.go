package booru

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoFileURL is returned for posts whose file URL the board withholds.
var ErrNoFileURL = errors.New("post has no file URL")

// Progress reports streamed download state. Total is 0 when the server
// sends no Content-Length.
type Progress struct {
	Downloaded int64
	Total      int64
}

// Ratio returns completion in [0, 1], or 0 when the total is unknown.
func (p Progress) Ratio() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Downloaded) / float64(p.Total)
}

// DownloadPost streams the post's full-size file into dir and writes a
// JSON metadata sidecar next to it. progressFn, when non-nil, is called
// after every chunk. Returns the path of the written image file.
func (c *Client) DownloadPost(ctx context.Context, post *Post, dir string, progressFn func(Progress)) (string, error) {
	fileURL := post.FileURL()
	if fileURL == "" {
		return "", ErrNoFileURL
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	path := filepath.Join(dir, downloadFilename(post))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.stream.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %s", resp.Status)
	}

	total := resp.ContentLength
	if total < 0 {
		total = 0
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	var downloaded int64
	buf := make([]byte, 32*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, err := f.Write(buf[:n]); err != nil {
				return "", fmt.Errorf("write file: %w", err)
			}
			downloaded += int64(n)
			if progressFn != nil {
				progressFn(Progress{Downloaded: downloaded, Total: total})
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return "", fmt.Errorf("read body: %w", readErr)
		}
	}

	if err := writeMetadata(post, path); err != nil {
		return "", err
	}

	return path, nil
}

// downloadFilename builds "<id> - <tags> - <md5>.<ext>" from up to three
// general/artist/character tags, with path separators replaced so tags
// cannot escape the download directory.
func downloadFilename(post *Post) string {
	var tags []string
	tags = append(tags, post.Tags.General...)
	tags = append(tags, post.Tags.Artist...)
	tags = append(tags, post.Tags.Character...)

	if len(tags) > 3 {
		tags = tags[:3]
	}
	for i, t := range tags {
		tags[i] = strings.NewReplacer("/", "_", "\\", "_").Replace(t)
	}

	tagString := "untagged"
	if len(tags) > 0 {
		tagString = strings.Join(tags, "_")
	}

	return fmt.Sprintf("%d - %s - %s.%s", post.ID, tagString, post.File.MD5, post.File.Ext)
}

// writeMetadata saves the post's JSON next to the downloaded file.
func writeMetadata(post *Post, basePath string) error {
	data, err := json.MarshalIndent(post, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(basePath+".json", data, 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}
