package media

import (
	"strings"
	"sync"

	"mediadeck/backend/internal/model"
)

// MediaType is the classifier's verdict for a file.
type MediaType string

const (
	TypeImage MediaType = "image"
	TypeVideo MediaType = "video"
	TypeAudio MediaType = "audio"
	TypeOther MediaType = "other"
)

// Per-category extension lists checked when the content type is absent or
// inconclusive. Matching is on the lower-cased display name.
var (
	imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".svg"}
	videoExtensions = []string{".mp4", ".webm", ".mov", ".mkv", ".avi", ".m4v"}
	audioExtensions = []string{".mp3", ".wav", ".ogg", ".m4a", ".flac", ".aac"}
)

// Classifier maps files to media types, memoizing per file pointer. A
// structurally identical but distinct File re-runs the heuristic, so a fresh
// fetch of "the same" file re-classifies. The memo lives for the classifier's
// lifetime and is never evicted.
type Classifier struct {
	mu   sync.RWMutex
	memo map[*model.File]MediaType
}

func NewClassifier() *Classifier {
	return &Classifier{memo: make(map[*model.File]MediaType)}
}

// Classify returns the media type for a file. Deterministic in the file's
// content type and name; the cached verdict is returned on repeat calls for
// the same object.
func (c *Classifier) Classify(f *model.File) MediaType {
	if f == nil {
		return TypeOther
	}

	c.mu.RLock()
	cached, ok := c.memo[f]
	c.mu.RUnlock()
	if ok {
		return cached
	}

	verdict := classify(f)

	c.mu.Lock()
	c.memo[f] = verdict
	c.mu.Unlock()
	return verdict
}

// classify is the pure heuristic: content-type prefix or filename suffix,
// image before video before audio. First match wins.
func classify(f *model.File) MediaType {
	ct := strings.ToLower(firstNonEmpty(f.Meta.ContentType, f.Meta.MimeType, f.Mime))
	name := strings.ToLower(firstNonEmpty(f.Meta.Name, f.Filename))

	switch {
	case strings.HasPrefix(ct, "image/") || hasAnySuffix(name, imageExtensions):
		return TypeImage
	case strings.HasPrefix(ct, "video/") || hasAnySuffix(name, videoExtensions):
		return TypeVideo
	case strings.HasPrefix(ct, "audio/") || hasAnySuffix(name, audioExtensions):
		return TypeAudio
	default:
		return TypeOther
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func hasAnySuffix(name string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// displayName is the human-facing name used for search and name sorting.
func displayName(f *model.File) string {
	return firstNonEmpty(f.Meta.Name, f.Filename)
}
