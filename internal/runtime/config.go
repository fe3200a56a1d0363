// Package runtime hosts the service-side plumbing shared by every bot this
// plugin runs: env configuration, dotenv loading, the bot manager, and the
// service loop that keeps bots in sync with the host.
package runtime

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type RuntimeConfig struct {
	AdminSecret  string
	ServiceType  string
	APIBase      string
	SyncInterval time.Duration
}

func LoadRuntimeConfig(serviceType string) (RuntimeConfig, error) {
	adminSecret := strings.TrimSpace(os.Getenv("MEW_ADMIN_SECRET"))
	if adminSecret == "" {
		return RuntimeConfig{}, fmt.Errorf("MEW_ADMIN_SECRET is required")
	}

	serviceType = strings.TrimSpace(serviceType)
	if serviceType == "" {
		return RuntimeConfig{}, fmt.Errorf("serviceType is required")
	}

	apiBase := strings.TrimRight(strings.TrimSpace(os.Getenv("MEW_API_BASE")), "/")
	if apiBase == "" {
		mewURL := strings.TrimRight(strings.TrimSpace(os.Getenv("MEW_URL")), "/")
		if mewURL == "" {
			mewURL = "http://localhost:3000"
		}
		apiBase = mewURL + "/api"
	}

	syncInterval := 60 * time.Second
	if v := strings.TrimSpace(os.Getenv("MEW_CONFIG_SYNC_INTERVAL_SECONDS")); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return RuntimeConfig{}, fmt.Errorf("invalid MEW_CONFIG_SYNC_INTERVAL_SECONDS: %q", v)
		}
		syncInterval = time.Duration(secs) * time.Second
	}

	return RuntimeConfig{
		AdminSecret:  adminSecret,
		ServiceType:  serviceType,
		APIBase:      apiBase,
		SyncInterval: syncInterval,
	}, nil
}
