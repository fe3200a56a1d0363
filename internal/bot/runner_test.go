package bot

import (
	"context"
	"testing"

	"mew/plugins/perception-agent/internal/event"
	"mew/plugins/perception-agent/internal/mew"
)

func newTestRunner() *Runner {
	return &Runner{
		botUserID: "bot1",
		logPrefix: "[perception-agent] test",
		channels: map[string]mew.Channel{
			"dm1": {ID: "dm1", Type: "DM"},
			"g1":  {ID: "g1", Type: "TEXT", Name: "深夜讨论组"},
		},
	}
}

func TestAdaptMessage_DirectChannel(t *testing.T) {
	r := newTestRunner()
	m := r.adaptMessage(context.Background(), gatewayMessage{ChannelID: "dm1", Content: "hi"})

	if m.ChatKind() != event.KindDirect {
		t.Fatalf("kind=%v", m.ChatKind())
	}
	if m.GroupID() != "" || m.GroupName() != "" {
		t.Fatalf("DM must not carry group metadata: id=%q name=%q", m.GroupID(), m.GroupName())
	}
	if m.PlatformName() != "mew" {
		t.Fatalf("platform=%q want default mew", m.PlatformName())
	}
}

func TestAdaptMessage_GroupChannel(t *testing.T) {
	r := newTestRunner()
	m := r.adaptMessage(context.Background(), gatewayMessage{ChannelID: "g1", Content: "hi", Platform: "aiocqhttp"})

	if m.ChatKind() != event.KindGroup {
		t.Fatalf("kind=%v", m.ChatKind())
	}
	if m.GroupID() != "g1" || m.GroupName() != "深夜讨论组" {
		t.Fatalf("id=%q name=%q", m.GroupID(), m.GroupName())
	}
	if m.PlatformName() != "aiocqhttp" {
		t.Fatalf("platform=%q", m.PlatformName())
	}
}

func TestAdaptMessage_UnknownChannel(t *testing.T) {
	r := newTestRunner()
	m := r.adaptMessage(context.Background(), gatewayMessage{ChannelID: "g-new", Content: "hi", GroupName: "新群"})

	if m.ChatKind() != event.KindUnknown {
		t.Fatalf("kind=%v", m.ChatKind())
	}
	if m.GroupID() != "g-new" {
		t.Fatalf("id=%q", m.GroupID())
	}
	// The payload-attached name survives even without a cache entry.
	if m.GroupName() != "新群" {
		t.Fatalf("name=%q", m.GroupName())
	}
}

func TestResolveGroupName_CacheHit(t *testing.T) {
	r := newTestRunner()
	name, err := r.resolveGroupName(context.Background(), "g1")
	if err != nil {
		t.Fatalf("resolveGroupName: %v", err)
	}
	if name != "深夜讨论组" {
		t.Fatalf("name=%q", name)
	}
}
