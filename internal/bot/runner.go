// Package bot runs a single bot instance: gateway connection, inbound message
// handling, the pre-request hook chain, and the LLM reply.
package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"mew/plugins/perception-agent/internal/config"
	"mew/plugins/perception-agent/internal/event"
	"mew/plugins/perception-agent/internal/gateway"
	"mew/plugins/perception-agent/internal/holiday"
	"mew/plugins/perception-agent/internal/llm"
	"mew/plugins/perception-agent/internal/lunisolar"
	"mew/plugins/perception-agent/internal/media"
	"mew/plugins/perception-agent/internal/mew"
	"mew/plugins/perception-agent/internal/perception"
	"mew/plugins/perception-agent/internal/provider"
	"mew/plugins/perception-agent/internal/runtime"
)

const messageCreateEvent = "MESSAGE_CREATE"

// Runner serves one bot. It logs in with the bot access token, keeps a
// gateway connection alive, and replies to DMs and mentions with the hook
// chain applied to every outgoing LLM request.
type Runner struct {
	serviceType string
	botID       string
	botName     string
	accessToken string
	userToken   string

	apiBase string
	wsURL   string

	mewHTTPClient *http.Client
	llmHTTPClient *http.Client

	botUserID string
	logPrefix string

	cfg       config.PerceptionConfig
	hooks     *provider.Hooks
	annotator *perception.Annotator

	chMu     sync.RWMutex
	channels map[string]mew.Channel
}

func NewRunner(serviceType, botID, botName, accessToken, rawConfig string, rcfg runtime.RuntimeConfig) (*Runner, error) {
	cfg, err := config.ParsePerceptionConfig(rawConfig)
	if err != nil {
		return nil, err
	}

	logPrefix := fmt.Sprintf("[perception-agent] bot=%s name=%q", botID, botName)

	mewURL := strings.TrimRight(strings.TrimSpace(os.Getenv("MEW_URL")), "/")
	if mewURL == "" {
		mewURL = strings.TrimRight(strings.TrimSuffix(rcfg.APIBase, "/api"), "/")
	}
	if mewURL == "" {
		mewURL = "http://localhost:3000"
	}

	wsURL, err := gateway.WebsocketURL(mewURL)
	if err != nil {
		return nil, err
	}

	mewHTTPClient, err := mew.NewHostHTTPClient()
	if err != nil {
		return nil, err
	}

	var holidayCal perception.HolidayCalendar
	if cal, err := holiday.NewCNCalendar(); err != nil {
		log.Printf("%s holiday calendar unavailable: %v (weekday fallback only)", logPrefix, err)
	} else {
		holidayCal = cal
	}

	annotator := perception.New(cfg, perception.Options{
		HolidayCalendar: holidayCal,
		LunarConverter:  lunisolar.NewConverter(),
		LogPrefix:       logPrefix,
	})

	hooks := &provider.Hooks{}
	hooks.OnLLMRequest(annotator.OnLLMRequest)

	return &Runner{
		serviceType:   serviceType,
		botID:         botID,
		botName:       botName,
		accessToken:   accessToken,
		apiBase:       strings.TrimRight(rcfg.APIBase, "/"),
		wsURL:         wsURL,
		mewHTTPClient: mewHTTPClient,
		llmHTTPClient: llm.NewHTTPClient(),
		logPrefix:     logPrefix,
		cfg:           cfg,
		hooks:         hooks,
		annotator:     annotator,
		channels:      map[string]mew.Channel{},
	}, nil
}

// Start launches the runner and returns a stop function that blocks until
// shutdown completes.
func (r *Runner) Start() (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := r.Run(ctx); err != nil && ctx.Err() == nil {
			log.Printf("%s runner exited: %v", r.logPrefix, err)
		}
	}()

	return func() {
		cancel()
		wg.Wait()
	}
}

func (r *Runner) Run(ctx context.Context) error {
	sess, err := mew.LoginBot(ctx, r.mewHTTPClient, r.apiBase, r.accessToken)
	if err != nil {
		return fmt.Errorf("bot auth failed: %w", err)
	}
	r.botUserID = sess.User.ID
	r.userToken = sess.Token

	if err := r.refreshChannels(ctx); err != nil {
		log.Printf("%s channel refresh failed (will retry later): %v", r.logPrefix, err)
	}

	return gateway.RunLoop(ctx, r.wsURL, r.userToken, r.handleEvent, gateway.Options{}, gateway.ReconnectOptions{
		OnDisconnect: func(err error, backoff time.Duration) {
			log.Printf("%s gateway disconnected: %v (reconnecting in %s)", r.logPrefix, err, backoff)
		},
	})
}

func (r *Runner) handleEvent(ctx context.Context, eventName string, payload json.RawMessage, emit gateway.EmitFunc) error {
	if eventName != messageCreateEvent || len(payload) == 0 {
		return nil
	}

	var msg gatewayMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		log.Printf("%s bad %s payload: %v", r.logPrefix, messageCreateEvent, err)
		return nil
	}

	if id := authorID(msg.AuthorID); id == "" || id == r.botUserID {
		return nil
	}

	prompt, ok := r.promptFor(ctx, msg)
	if !ok {
		return nil
	}

	reply, err := r.respond(ctx, msg, prompt)
	if err != nil {
		log.Printf("%s llm request failed: channel=%s err=%v", r.logPrefix, msg.ChannelID, err)
		reply = "请求失败：" + err.Error()
	}

	if err := emit("message/create", map[string]any{
		"channelId": msg.ChannelID,
		"content":   reply,
	}); err != nil {
		return fmt.Errorf("send message failed: %w", err)
	}
	log.Printf("%s replied: channel=%s", r.logPrefix, msg.ChannelID)
	return nil
}

// promptFor decides whether the message is addressed to the bot. Group
// messages need a leading mention; DM messages do not.
func (r *Runner) promptFor(ctx context.Context, msg gatewayMessage) (string, bool) {
	trimmed := strings.TrimSpace(msg.Content)

	if rest, mentioned := stripLeadingBotMention(trimmed, r.botUserID); mentioned {
		return rest, true
	}

	if !r.isDMChannel(msg.ChannelID) {
		if err := r.refreshChannels(ctx); err != nil {
			log.Printf("%s channel refresh failed: %v", r.logPrefix, err)
			return "", false
		}
		if !r.isDMChannel(msg.ChannelID) {
			return "", false
		}
	}
	return trimmed, true
}

func (r *Runner) respond(ctx context.Context, msg gatewayMessage, prompt string) (string, error) {
	req := &provider.Request{Prompt: prompt}
	r.hooks.Apply(ctx, r.adaptMessage(ctx, msg), req)

	return llm.Complete(ctx, r.llmHTTPClient, llm.ChatConfig{
		BaseURL: r.cfg.BaseURL,
		APIKey:  r.cfg.APIKey,
		Model:   r.cfg.Model,
	}, *req)
}

// adaptMessage builds the event.Message view of a gateway payload, backed by
// the channel cache for chat kind and group name.
func (r *Runner) adaptMessage(ctx context.Context, msg gatewayMessage) event.Message {
	platform := strings.TrimSpace(msg.Platform)
	if platform == "" {
		platform = "mew"
	}

	classify := func(a gatewayAttachment) string {
		return r.classifyAttachment(ctx, msg.ChannelID, a)
	}

	m := &inboundMessage{
		platform: platform,
		segments: buildSegments(msg.Content, msg.Attachments, classify),
		resolve:  r.resolveGroupName,
	}

	ch, known := r.channelByID(msg.ChannelID)
	switch {
	case known && ch.IsDM():
		m.kind = event.KindDirect
	case known:
		m.kind = event.KindGroup
		m.groupID = msg.ChannelID
		m.groupName = strings.TrimSpace(ch.Name)
	default:
		m.kind = event.KindUnknown
		m.groupID = msg.ChannelID
	}
	if m.groupName == "" {
		m.groupName = strings.TrimSpace(msg.GroupName)
	}
	return m
}

const attachmentSniffLimit = 512 * 1024

// classifyAttachment trusts the declared content type or filename first. An
// attachment with neither gets a short byte probe to catch bare image
// uploads.
func (r *Runner) classifyAttachment(ctx context.Context, channelID string, a gatewayAttachment) string {
	if kind := media.KindOf(a.ContentType, a.Filename); kind != "" {
		return kind
	}
	if strings.TrimSpace(a.Key) == "" && strings.TrimSpace(a.URL) == "" {
		return ""
	}

	data, err := mew.DownloadAttachmentBytes(ctx, r.mewHTTPClient, r.llmHTTPClient, r.apiBase, r.userToken, mew.AttachmentRef{
		ChannelID: channelID,
		Key:       a.Key,
		URL:       a.URL,
	}, attachmentSniffLimit)
	if err != nil {
		return ""
	}
	if media.IsDecodableImage(data) {
		return event.SegmentImage
	}
	return ""
}

func (r *Runner) channelByID(channelID string) (mew.Channel, bool) {
	r.chMu.RLock()
	defer r.chMu.RUnlock()
	ch, ok := r.channels[channelID]
	return ch, ok
}

func (r *Runner) isDMChannel(channelID string) bool {
	ch, ok := r.channelByID(channelID)
	return ok && ch.IsDM()
}

func (r *Runner) refreshChannels(ctx context.Context) error {
	next, err := mew.FetchChannels(ctx, r.mewHTTPClient, r.apiBase, r.userToken)
	if err != nil {
		return err
	}
	r.chMu.Lock()
	r.channels = next
	r.chMu.Unlock()
	return nil
}

// resolveGroupName serves cache misses with a direct channel lookup, caching
// the result for later messages.
func (r *Runner) resolveGroupName(ctx context.Context, groupID string) (string, error) {
	if ch, ok := r.channelByID(groupID); ok && strings.TrimSpace(ch.Name) != "" {
		return strings.TrimSpace(ch.Name), nil
	}

	ch, err := mew.FetchChannel(ctx, r.mewHTTPClient, r.apiBase, r.userToken, groupID)
	if err != nil {
		return "", err
	}

	r.chMu.Lock()
	r.channels[ch.ID] = ch
	r.chMu.Unlock()
	return strings.TrimSpace(ch.Name), nil
}
