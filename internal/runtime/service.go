package runtime

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mew/plugins/perception-agent/internal/mew"
)

type ServiceOptions struct {
	LogPrefix   string
	ServiceType string

	// ConfigTemplate is a JSON string shown as the default template when
	// creating a bot. Leave empty to provide no template.
	ConfigTemplate string

	// NewRunner builds a Runner for a single bot instance.
	NewRunner func(botID, botName, accessToken, rawConfig string, cfg RuntimeConfig) (Runner, error)

	// DisableDotEnv disables `.env` loading (MEW_DOTENV also disables it).
	DisableDotEnv bool

	// SyncInterval overrides cfg.SyncInterval when > 0.
	SyncInterval time.Duration
}

// RunService registers the service type and keeps bots synced with the host
// until ctx is cancelled.
func RunService(ctx context.Context, opts ServiceOptions) error {
	if opts.LogPrefix == "" {
		opts.LogPrefix = "[bot]"
	}

	if !opts.DisableDotEnv {
		LoadDotEnv(opts.LogPrefix)
	}

	cfg, err := LoadRuntimeConfig(opts.ServiceType)
	if err != nil {
		return err
	}

	if opts.SyncInterval > 0 {
		cfg.SyncInterval = opts.SyncInterval
	}

	if opts.NewRunner == nil {
		return fmt.Errorf("NewRunner factory is required")
	}

	c, err := mew.NewClient(cfg.APIBase, cfg.AdminSecret)
	if err != nil {
		return err
	}

	mgr := NewBotManager(c, cfg.ServiceType, opts.ConfigTemplate, opts.LogPrefix, func(botID, botName, accessToken, rawConfig string) (Runner, error) {
		return opts.NewRunner(botID, botName, accessToken, rawConfig, cfg)
	})

	log.Printf("%s starting (serviceType=%s apiBase=%s syncInterval=%s)", opts.LogPrefix, cfg.ServiceType, cfg.APIBase, cfg.SyncInterval)

	if err := mgr.SyncOnce(ctx); err != nil {
		log.Printf("%s initial sync failed: %v", opts.LogPrefix, err)
	}

	ticker := time.NewTicker(cfg.SyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("%s shutting down...", opts.LogPrefix)
			mgr.StopAll()
			return nil
		case <-ticker.C:
			if err := mgr.SyncOnce(ctx); err != nil {
				log.Printf("%s sync failed: %v", opts.LogPrefix, err)
			}
		}
	}
}

// RunServiceWithSignals runs the service until SIGINT or SIGTERM.
func RunServiceWithSignals(opts ServiceOptions) error {
	if opts.LogPrefix == "" {
		opts.LogPrefix = "[bot]"
	}

	if !opts.DisableDotEnv {
		LoadDotEnv(opts.LogPrefix)
		opts.DisableDotEnv = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return RunService(ctx, opts)
}
