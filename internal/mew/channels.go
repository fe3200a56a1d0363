package mew

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Channel is the subset of channel metadata the plugin cares about: the type
// decides DM vs group handling, the name feeds the group-name annotation.
type Channel struct {
	ID   string `json:"_id"`
	Type string `json:"type"`
	Name string `json:"name"`
}

// IsDM reports whether the channel is a direct-message channel.
func (c Channel) IsDM() bool { return c.Type == "DM" }

// FetchChannels lists every channel the bot user can see, keyed by id.
func FetchChannels(ctx context.Context, httpClient *http.Client, apiBase, userToken string) (map[string]Channel, error) {
	body, err := getAuthed(ctx, httpClient, strings.TrimRight(apiBase, "/")+"/users/@me/channels", userToken)
	if err != nil {
		return nil, err
	}

	var channels []Channel
	if err := json.Unmarshal(body, &channels); err != nil {
		return nil, err
	}

	next := make(map[string]Channel, len(channels))
	for _, ch := range channels {
		if strings.TrimSpace(ch.ID) == "" {
			continue
		}
		next[ch.ID] = ch
	}
	return next, nil
}

// FetchChannel looks up a single channel by id. Used to resolve group names
// for channels that appeared after the last full channel sync.
func FetchChannel(ctx context.Context, httpClient *http.Client, apiBase, userToken, channelID string) (Channel, error) {
	if strings.TrimSpace(channelID) == "" {
		return Channel{}, fmt.Errorf("empty channel id")
	}
	body, err := getAuthed(ctx, httpClient, strings.TrimRight(apiBase, "/")+"/channels/"+channelID, userToken)
	if err != nil {
		return Channel{}, err
	}

	var ch Channel
	if err := json.Unmarshal(body, &ch); err != nil {
		return Channel{}, err
	}
	if strings.TrimSpace(ch.ID) == "" {
		ch.ID = channelID
	}
	return ch, nil
}

func getAuthed(ctx context.Context, httpClient *http.Client, url, userToken string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+userToken)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
