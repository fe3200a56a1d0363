package mew

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// AttachmentRef locates an attachment either by upload key within a channel
// or by a direct URL.
type AttachmentRef struct {
	ChannelID string
	Key       string
	URL       string
}

// DownloadAttachmentBytes fetches up to limit bytes of an attachment. The
// host uploads endpoint is preferred; a raw URL is fetched with the external
// client as fallback.
func DownloadAttachmentBytes(
	ctx context.Context,
	hostClient, externalClient *http.Client,
	apiBase, userToken string,
	att AttachmentRef,
	limit int64,
) ([]byte, error) {
	if limit <= 0 {
		limit = 5 * 1024 * 1024
	}

	key := strings.TrimSpace(att.Key)
	channelID := strings.TrimSpace(att.ChannelID)
	if key != "" && channelID != "" {
		u := fmt.Sprintf("%s/channels/%s/uploads/%s", strings.TrimRight(apiBase, "/"), url.PathEscape(channelID), url.PathEscape(key))
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+userToken)
		resp, err := hostClient.Do(req)
		if err == nil {
			defer resp.Body.Close()
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return io.ReadAll(io.LimitReader(resp.Body, limit))
			}
		}
	}

	rawURL := strings.TrimSpace(att.URL)
	if rawURL == "" {
		return nil, fmt.Errorf("missing attachment url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := externalClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("download status=%d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, limit))
}
