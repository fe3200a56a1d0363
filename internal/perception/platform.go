package perception

import (
	"context"
	"strings"

	"mew/plugins/perception-agent/internal/event"
	"mew/plugins/perception-agent/internal/media"
)

// platformPhrase reports the platform, chat kind, group name and attached
// media kinds, e.g. "平台: QQ, 群聊, 群名: 摸鱼群, 含图片". A failed group-name
// lookup only drops that one fragment.
func (a *Annotator) platformPhrase(ctx context.Context, msg event.Message) string {
	if msg == nil {
		return ""
	}

	var parts []string

	platform := strings.TrimSpace(msg.PlatformName())
	if platform != "" {
		display, ok := platformDisplayNames[platform]
		if !ok {
			display = platform
		}
		parts = append(parts, "平台: "+display)
	}

	isGroup := false
	switch msg.ChatKind() {
	case event.KindGroup:
		isGroup = true
		parts = append(parts, "群聊")
	case event.KindDirect:
		parts = append(parts, "私聊")
	default:
		if strings.TrimSpace(msg.GroupID()) != "" {
			isGroup = true
			parts = append(parts, "群聊")
		}
	}

	if isGroup {
		if name := a.groupName(ctx, msg); name != "" {
			parts = append(parts, "群名: "+name)
		}
	}

	parts = append(parts, mediaFlags(msg.Segments())...)
	return joinPhrase(parts)
}

// groupName prefers the name already attached to the event, then the host
// lookup capability when present. Failures are swallowed.
func (a *Annotator) groupName(ctx context.Context, msg event.Message) string {
	if name := strings.TrimSpace(msg.GroupName()); name != "" {
		return name
	}

	resolver, ok := msg.(event.GroupNameResolver)
	if !ok {
		return ""
	}
	groupID := strings.TrimSpace(msg.GroupID())
	if groupID == "" {
		return ""
	}
	name, err := resolver.ResolveGroupName(ctx, groupID)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(name)
}

func mediaFlags(segments []event.Segment) []string {
	var hasImage, hasAudio, hasVideo bool
	for _, seg := range segments {
		kind := seg.Kind
		if kind == "" {
			kind = media.KindOf(seg.ContentType, seg.Filename)
		}
		switch kind {
		case event.SegmentImage:
			hasImage = true
		case event.SegmentVoice, event.SegmentAudio:
			hasAudio = true
		case event.SegmentVideo:
			hasVideo = true
		}
	}

	var out []string
	if hasImage {
		out = append(out, "含图片")
	}
	if hasAudio {
		out = append(out, "含语音")
	}
	if hasVideo {
		out = append(out, "含视频")
	}
	return out
}

func joinPhrase(parts []string) string {
	kept := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
