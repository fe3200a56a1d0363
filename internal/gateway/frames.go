// Package gateway implements the Socket.IO-over-websocket connection to the
// Mew realtime gateway: Engine.IO framing, auth handshake, ping/pong, and a
// reconnect loop with exponential backoff.
package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// WebsocketURL derives the gateway websocket endpoint from the host base URL.
func WebsocketURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}

	switch strings.ToLower(u.Scheme) {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("invalid gateway base URL scheme: %q", u.Scheme)
	}

	u.Path = "/socket.io/"
	q := u.Query()
	q.Set("EIO", "4")
	q.Set("transport", "websocket")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// splitFrames splits a websocket message into Engine.IO frames. Frames are
// separated by the 0x1e record separator when batched.
func splitFrames(msg []byte) [][]byte {
	if bytes.IndexByte(msg, 0x1e) < 0 {
		return [][]byte{msg}
	}
	parts := bytes.Split(msg, []byte{0x1e})
	out := make([][]byte, 0, len(parts))
	for _, p := range parts {
		if len(p) == 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}

// emitFrame encodes a Socket.IO event emission: "42" + ["event", payload].
func emitFrame(event string, payload any) (string, error) {
	frame, err := json.Marshal([]any{event, payload})
	if err != nil {
		return "", err
	}
	return "42" + string(frame), nil
}

func decodeEventFrame(raw []byte) (eventName string, payload json.RawMessage, ok bool, err error) {
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil {
		return "", nil, false, err
	}
	if len(arr) == 0 {
		return "", nil, false, nil
	}
	if err := json.Unmarshal(arr[0], &eventName); err != nil {
		return "", nil, false, err
	}
	if strings.TrimSpace(eventName) == "" {
		return "", nil, false, nil
	}
	if len(arr) < 2 {
		return eventName, nil, true, nil
	}
	return eventName, arr[1], true, nil
}
