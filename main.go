package main

import (
	"encoding/json"
	"log"

	"mew/plugins/perception-agent/internal/bot"
	"mew/plugins/perception-agent/internal/config"
	"mew/plugins/perception-agent/internal/runtime"
)

func main() {
	enabled := true
	cfgTemplate, err := json.MarshalIndent(config.PerceptionConfig{
		BaseURL:         "https://api.openai.com/v1",
		APIKey:          "",
		Model:           "gpt-4o-mini",
		Timezone:        config.DefaultTimezone,
		HolidayCountry:  config.DefaultHolidayCountry,
		EnableHoliday:   &enabled,
		EnablePlatform:  &enabled,
		EnableLunar:     &enabled,
		EnableSolarTerm: &enabled,
		EnableAlmanac:   &enabled,
	}, "", "  ")
	if err != nil {
		log.Fatal(err)
	}

	if err := runtime.RunServiceWithSignals(runtime.ServiceOptions{
		LogPrefix:      "[perception-agent]",
		ServiceType:    "perception-agent",
		ConfigTemplate: string(cfgTemplate),
		NewRunner: func(botID, botName, accessToken, rawConfig string, cfg runtime.RuntimeConfig) (runtime.Runner, error) {
			return bot.NewRunner(cfg.ServiceType, botID, botName, accessToken, rawConfig, cfg)
		},
	}); err != nil {
		log.Fatal(err)
	}
}
