package media

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path"
	"strings"

	xwebp "golang.org/x/image/webp"

	"mew/plugins/perception-agent/internal/event"
)

// KindOf classifies an attachment into a segment kind ("image", "audio",
// "voice", "video" or "") from its content type, falling back to the filename
// extension. Unknown attachments return "".
func KindOf(contentType, filename string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case strings.HasPrefix(ct, "image/"):
		return event.SegmentImage
	case strings.HasPrefix(ct, "audio/"):
		return event.SegmentAudio
	case strings.HasPrefix(ct, "video/"):
		return event.SegmentVideo
	}

	switch strings.ToLower(path.Ext(strings.TrimSpace(filename))) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp":
		return event.SegmentImage
	case ".mp3", ".ogg", ".wav", ".m4a", ".flac":
		return event.SegmentAudio
	case ".amr", ".silk":
		return event.SegmentVoice
	case ".mp4", ".mov", ".mkv", ".webm", ".avi":
		return event.SegmentVideo
	}
	return ""
}

// IsDecodableImage reports whether data starts with a decodable image. It is
// the last-resort probe for attachments with no content type and a bare
// filename; webp needs the extended decoder.
func IsDecodableImage(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil && cfg.Width > 0 && cfg.Height > 0 {
		return true
	}
	if cfg, err := xwebp.DecodeConfig(bytes.NewReader(data)); err == nil && cfg.Width > 0 && cfg.Height > 0 {
		return true
	}
	return false
}
