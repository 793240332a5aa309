package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsbot/pkg/domain"
)

// Images downloads news images into a directory and keeps only the newest ones
type Images struct {
	Client    HTTPClient
	Dir       string
	Keep      int
	UserAgent string

	now func() time.Time
}

// Save downloads the image and returns the saved file path. The directory is created on demand.
func (im *Images) Save(ctx context.Context, id domain.SourceID, imageURL, referer string) (string, error) {
	resp, err := im.Client.Get(ctx, imageURL, imageHeaders(im.UserAgent, referer))
	if err != nil {
		return "", fmt.Errorf("download image: %w", err)
	}
	if err := checkStatus(resp.StatusCode(), imageURL); err != nil {
		return "", fmt.Errorf("download image: %w", err)
	}
	if len(resp.Body()) == 0 {
		return "", fmt.Errorf("download image %s: empty body", imageURL)
	}

	if err := os.MkdirAll(im.Dir, 0o750); err != nil {
		return "", fmt.Errorf("make images dir: %w", err)
	}

	now := time.Now
	if im.now != nil {
		now = im.now
	}
	path := filepath.Join(im.Dir, fmt.Sprintf("news_%s_%s.jpg", id, now().Format("20060102_150405")))
	if err := os.WriteFile(path, resp.Body(), 0o600); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	im.cleanup()
	return path, nil
}

// cleanup removes old images, keeping the newest im.Keep files. Errors are only logged.
func (im *Images) cleanup() {
	if im.Keep <= 0 {
		return
	}
	files, err := filepath.Glob(filepath.Join(im.Dir, "news_*.jpg"))
	if err != nil {
		lgr.Printf("[WARN] failed to list images in %s: %v", im.Dir, err)
		return
	}
	if len(files) <= im.Keep {
		return
	}

	type fileInfo struct {
		path    string
		modTime time.Time
	}
	infos := make([]fileInfo, 0, len(files))
	for _, f := range files {
		st, err := os.Stat(f)
		if err != nil {
			continue
		}
		infos = append(infos, fileInfo{path: f, modTime: st.ModTime()})
	}
	// newest first, names carry the timestamp and break ties
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].modTime.Equal(infos[j].modTime) {
			return infos[i].path > infos[j].path
		}
		return infos[i].modTime.After(infos[j].modTime)
	})

	for _, old := range infos[min(im.Keep, len(infos)):] {
		if err := os.Remove(old.path); err != nil {
			lgr.Printf("[WARN] failed to delete old image %s: %v", old.path, err)
			continue
		}
		lgr.Printf("[DEBUG] deleted old image %s", old.path)
	}
}
