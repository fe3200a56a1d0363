package mew

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	IsBot    bool   `json:"isBot"`
}

// Session is the authenticated bot identity: the bot's user record and the
// user token that authorizes every user-scoped call after login.
type Session struct {
	User  User
	Token string
}

// LoginBot exchanges a bot access token for a Session.
func LoginBot(ctx context.Context, httpClient *http.Client, apiBase, accessToken string) (Session, error) {
	if strings.TrimSpace(accessToken) == "" {
		return Session{}, fmt.Errorf("empty access token")
	}

	body, err := postUnauthed(ctx, httpClient, strings.TrimRight(apiBase, "/")+"/auth/bot", map[string]any{
		"accessToken": accessToken,
	})
	if err != nil {
		return Session{}, err
	}

	var parsed struct {
		User  User   `json:"user"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Session{}, err
	}

	sess := Session{User: parsed.User, Token: strings.TrimSpace(parsed.Token)}
	if strings.TrimSpace(sess.User.ID) == "" || sess.Token == "" {
		return Session{}, fmt.Errorf("invalid /auth/bot response: missing user/token")
	}
	return sess, nil
}

func postUnauthed(ctx context.Context, httpClient *http.Client, url string, payload any) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

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
