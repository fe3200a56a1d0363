package gateway

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestWebsocketURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://mew.example.com", "wss://mew.example.com/socket.io/?EIO=4&transport=websocket"},
		{"http://localhost:3000", "ws://localhost:3000/socket.io/?EIO=4&transport=websocket"},
		{"wss://mew.example.com/api", "wss://mew.example.com/socket.io/?EIO=4&transport=websocket"},
	}
	for _, tc := range cases {
		got, err := WebsocketURL(tc.in)
		if err != nil {
			t.Fatalf("WebsocketURL(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("WebsocketURL(%q)=%q want=%q", tc.in, got, tc.want)
		}
	}

	if _, err := WebsocketURL("ftp://mew.example.com"); err == nil {
		t.Fatalf("expected error for unsupported scheme")
	}
}

func TestSplitFrames(t *testing.T) {
	single := splitFrames([]byte("42[\"x\"]"))
	if len(single) != 1 || string(single[0]) != "42[\"x\"]" {
		t.Fatalf("single frame: %q", single)
	}

	batched := splitFrames([]byte("2\x1e42[\"a\"]\x1e\x1e42[\"b\"]"))
	if len(batched) != 3 {
		t.Fatalf("batched frames: got %d", len(batched))
	}
	if string(batched[0]) != "2" || string(batched[1]) != "42[\"a\"]" || string(batched[2]) != "42[\"b\"]" {
		t.Fatalf("batched frames: %q", batched)
	}
}

func TestEmitFrame(t *testing.T) {
	frame, err := emitFrame("message_create", map[string]string{"content": "hi"})
	if err != nil {
		t.Fatalf("emitFrame: %v", err)
	}
	if !strings.HasPrefix(frame, "42[") {
		t.Fatalf("frame=%q", frame)
	}

	var arr []json.RawMessage
	if err := json.Unmarshal([]byte(frame[2:]), &arr); err != nil {
		t.Fatalf("frame body not a JSON array: %v", err)
	}
	if len(arr) != 2 || string(arr[0]) != `"message_create"` {
		t.Fatalf("frame=%q", frame)
	}
}

func TestDecodeEventFrame(t *testing.T) {
	name, payload, ok, err := decodeEventFrame([]byte(`["MESSAGE_CREATE",{"content":"hi"}]`))
	if err != nil || !ok {
		t.Fatalf("decode: ok=%v err=%v", ok, err)
	}
	if name != "MESSAGE_CREATE" || string(payload) != `{"content":"hi"}` {
		t.Fatalf("name=%q payload=%s", name, payload)
	}

	// Event with no payload is still delivered.
	name, payload, ok, err = decodeEventFrame([]byte(`["PING"]`))
	if err != nil || !ok || name != "PING" || payload != nil {
		t.Fatalf("bare event: name=%q payload=%v ok=%v err=%v", name, payload, ok, err)
	}

	// Empty array and blank names are skipped, not errors.
	if _, _, ok, err := decodeEventFrame([]byte(`[]`)); err != nil || ok {
		t.Fatalf("empty array: ok=%v err=%v", ok, err)
	}
	if _, _, ok, err := decodeEventFrame([]byte(`[""]`)); err != nil || ok {
		t.Fatalf("blank name: ok=%v err=%v", ok, err)
	}

	if _, _, _, err := decodeEventFrame([]byte(`{"not":"array"}`)); err == nil {
		t.Fatalf("expected error for non-array frame")
	}
}
