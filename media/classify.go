// Package media keeps background media representation of slides consistent:
// URL classification, natural dimension probing and reconciliation between
// image, video and CSS background representations.
package media

import (
	"net/url"
	"path"
	"strings"

	"github.com/h2non/filetype"

	"carousel/slide"
)

// Classify decides which replaced element should display media URL. Anything
// not recognized as video is treated as image.
func Classify(u string) slide.MediaKind {
	if strings.TrimSpace(u) == "" {
		return slide.MediaKindNone
	}
	if mime, ok := dataMIME(u); ok {
		if strings.HasPrefix(mime, "video/") {
			return slide.MediaKindVideo
		}
		return slide.MediaKindImage
	}
	if filetype.GetType(extension(u)).MIME.Type == "video" {
		return slide.MediaKindVideo
	}
	return slide.MediaKindImage
}

// IsVideo is shorthand for Classify(u) == slide.MediaKindVideo.
func IsVideo(u string) bool {
	return Classify(u) == slide.MediaKindVideo
}

// extension returns lower case extension of URL path without dot, query and
// fragment are ignored.
func extension(u string) string {
	p := u
	if parsed, err := url.Parse(u); err == nil && parsed.Path != "" {
		p = parsed.Path
	}
	return strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
}

// dataMIME returns media type of data: URL.
func dataMIME(u string) (string, bool) {
	rest, ok := strings.CutPrefix(u, "data:")
	if !ok {
		return "", false
	}
	mime, _, _ := strings.Cut(rest, ",")
	mime, _, _ = strings.Cut(mime, ";")
	return strings.ToLower(strings.TrimSpace(mime)), true
}
