// Package mew is a minimal client for the Mew host APIs this plugin needs:
// service registration and bot bootstrap (admin), bot login, channel lookups
// and message posting (user token).
package mew

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Client calls admin endpoints on behalf of the service runtime.
type Client struct {
	apiBase     string
	adminSecret string
	httpClient  *http.Client
}

// NewClient creates the admin client. Proxy behavior: direct by default; set
// MEW_API_PROXY to "env" for the environment proxy, or to a proxy URL.
func NewClient(apiBase, adminSecret string) (*Client, error) {
	httpClient, err := NewHostHTTPClient()
	if err != nil {
		return nil, err
	}
	return &Client{
		apiBase:     strings.TrimRight(apiBase, "/"),
		adminSecret: adminSecret,
		httpClient:  httpClient,
	}, nil
}

// NewHostHTTPClient builds the HTTP client used for host API calls.
func NewHostHTTPClient() (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil

	if raw := strings.TrimSpace(os.Getenv("MEW_API_PROXY")); raw != "" {
		switch strings.ToLower(raw) {
		case "0", "false", "off", "no", "none", "direct":
		case "env":
			transport.Proxy = http.ProxyFromEnvironment
		default:
			proxyURL, err := parseProxyURL(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid MEW_API_PROXY: %w", err)
			}
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	return &http.Client{
		Transport: transport,
		Timeout:   15 * time.Second,
	}, nil
}

type BootstrapBot struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Config      string `json:"config"`
	AccessToken string `json:"accessToken"`
	ServiceType string `json:"serviceType"`
}

// RegisterServiceType announces this plugin's service type to the host, along
// with its config template so the host UI can render per-bot settings.
func (c *Client) RegisterServiceType(ctx context.Context, serviceType, configTemplate string) error {
	payload := map[string]string{"serviceType": serviceType}
	if strings.TrimSpace(configTemplate) != "" {
		payload["configTemplate"] = configTemplate
	}
	if _, err := c.postJSON(ctx, "/infra/service-types/register", payload); err != nil {
		return fmt.Errorf("register serviceType failed: %w", err)
	}
	return nil
}

// BootstrapBots fetches the bots assigned to this service type.
func (c *Client) BootstrapBots(ctx context.Context, serviceType string) ([]BootstrapBot, error) {
	body, err := c.postJSON(ctx, "/bots/bootstrap", map[string]string{"serviceType": serviceType})
	if err != nil {
		return nil, fmt.Errorf("bootstrap failed: %w", err)
	}

	var parsed struct {
		Bots []BootstrapBot `json:"bots"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("bootstrap decode failed: %w (body=%s)", err, strings.TrimSpace(string(body)))
	}
	return parsed.Bots, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+path, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Mew-Admin-Secret", c.adminSecret)

	resp, err := c.httpClient.Do(req)
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

func parseProxyURL(raw string) (*url.URL, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, fmt.Errorf("empty proxy url")
	}
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "http", "https", "socks5":
	default:
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("missing host")
	}
	return u, nil
}
