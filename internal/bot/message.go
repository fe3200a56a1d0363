package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"sync"

	"mew/plugins/perception-agent/internal/event"
)

// gatewayMessage is the MESSAGE_CREATE payload from the realtime gateway.
// Bridged messages carry a platform identifier; native Mew messages do not.
type gatewayMessage struct {
	ID          string              `json:"_id"`
	ChannelID   string              `json:"channelId"`
	Content     string              `json:"content"`
	Platform    string              `json:"platform"`
	GroupName   string              `json:"groupName"`
	Attachments []gatewayAttachment `json:"attachments"`
	AuthorID    json.RawMessage     `json:"authorId"`
}

type gatewayAttachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Key         string `json:"key"`
	Size        int64  `json:"size"`
	URL         string `json:"url"`
}

// inboundMessage adapts a gateway payload to the event.Message view the
// perception hooks consume. Group-name lookups that miss the local channel
// cache go through resolve, typically backed by a host API call.
type inboundMessage struct {
	platform  string
	kind      event.Kind
	groupID   string
	groupName string
	segments  []event.Segment

	resolve func(ctx context.Context, groupID string) (string, error)
}

func (m *inboundMessage) PlatformName() string      { return m.platform }
func (m *inboundMessage) ChatKind() event.Kind      { return m.kind }
func (m *inboundMessage) GroupID() string           { return m.groupID }
func (m *inboundMessage) GroupName() string         { return m.groupName }
func (m *inboundMessage) Segments() []event.Segment { return m.segments }

func (m *inboundMessage) ResolveGroupName(ctx context.Context, groupID string) (string, error) {
	if m.resolve == nil {
		return "", nil
	}
	return m.resolve(ctx, groupID)
}

// buildSegments maps the message body and attachments to segments. classify
// decides the attachment kind; it may probe the attachment bytes.
func buildSegments(content string, attachments []gatewayAttachment, classify func(gatewayAttachment) string) []event.Segment {
	segments := make([]event.Segment, 0, 1+len(attachments))
	if strings.TrimSpace(content) != "" {
		segments = append(segments, event.Segment{Kind: event.SegmentText})
	}
	for _, a := range attachments {
		segments = append(segments, event.Segment{
			Kind:        classify(a),
			ContentType: a.ContentType,
			Filename:    a.Filename,
		})
	}
	return segments
}

func authorID(authorRaw json.RawMessage) string {
	raw := bytes.TrimSpace(authorRaw)
	if len(raw) == 0 {
		return ""
	}

	if raw[0] == '"' {
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return ""
		}
		return strings.TrimSpace(id)
	}

	if raw[0] != '{' {
		return ""
	}
	var author struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(raw, &author); err != nil {
		return ""
	}
	return strings.TrimSpace(author.ID)
}

var mentionRECache sync.Map // key: botUserID string -> *regexp.Regexp

// stripLeadingBotMention returns the content after a leading <@bot> mention.
// A mention-only message yields an empty rest with ok=true.
func stripLeadingBotMention(content, botUserID string) (rest string, ok bool) {
	if strings.TrimSpace(botUserID) == "" {
		return "", false
	}
	reAny, _ := mentionRECache.LoadOrStore(botUserID, regexp.MustCompile(`^\s*<@!?`+regexp.QuoteMeta(botUserID)+`>\s*`))
	re := reAny.(*regexp.Regexp)
	loc := re.FindStringIndex(content)
	if loc == nil || loc[0] != 0 {
		return "", false
	}
	return strings.TrimSpace(content[loc[1]:]), true
}
