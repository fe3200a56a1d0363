package event

import "context"

// Kind classifies where a message came from.
type Kind int

const (
	KindUnknown Kind = iota
	KindGroup
	KindDirect
)

// SegmentKind tags one segment of a message (text, image, voice, ...).
// Values follow the host's segment type strings.
const (
	SegmentText  = "text"
	SegmentImage = "image"
	SegmentVoice = "voice"
	SegmentAudio = "audio"
	SegmentVideo = "video"
)

// Segment is one piece of an incoming message.
type Segment struct {
	Kind        string
	ContentType string
	Filename    string
}

// Message is the minimal view of an incoming chat event that the perception
// annotator needs. Host adapters satisfy this instead of exposing their full
// event objects.
type Message interface {
	// PlatformName is the host platform identifier, e.g. "mew", "telegram".
	PlatformName() string
	// ChatKind reports group vs direct when the host knows; KindUnknown
	// makes the annotator fall back to GroupID presence.
	ChatKind() Kind
	// GroupID is empty for direct chats.
	GroupID() string
	// GroupName returns the group display name when it already arrived with
	// the event, else "".
	GroupName() string
	Segments() []Segment
}

// GroupNameResolver is an optional capability: events whose host connection can
// look up a group's display name over the network implement it. Callers probe
// with a type assertion and must tolerate failure.
type GroupNameResolver interface {
	ResolveGroupName(ctx context.Context, groupID string) (string, error)
}
