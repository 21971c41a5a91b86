package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file leaves a field empty.
const (
	DefaultTriggerPhrase        = "riddle me this"
	DefaultCheckIntervalMinutes = 2
	DefaultMaxTweetsPerCheck    = 20
)

// DefaultTrustedAccounts is the built-in trusted reference set, used when
// trusted_accounts is not set in the config file. Matching is
// case-insensitive; ordering here defines reporting order.
var DefaultTrustedAccounts = []string{
	"solana",
	"aeyakovenko",
	"rajgokal",
	"JupiterExchange",
	"RaydiumProtocol",
	"orca_so",
	"DriftProtocol",
	"KaminoFinance",
	"MeteoraAG",
	"jito_sol",
	"heliuslabs",
	"Austin_Federa",
	"weremeow",
	"0xMert_",
	"MarginFi",
}

// Config holds the application's configuration.
type Config struct {
	Bot struct {
		TriggerPhrase        string `yaml:"trigger_phrase"`
		CheckIntervalMinutes int    `yaml:"check_interval_minutes"`
		MaxTweetsPerCheck    int    `yaml:"max_tweets_per_check"`
	} `yaml:"bot"`
	Twitter struct {
		BearerToken string `yaml:"bearer_token"`
		AccessToken string `yaml:"access_token"`
	} `yaml:"twitter"`
	TrustedAccounts []string `yaml:"trusted_accounts"`
	Database        struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Alerts struct {
		TelegramBotToken string `yaml:"telegram_bot_token"`
		TelegramChatID   int64  `yaml:"telegram_chat_id"`
	} `yaml:"alerts"`
	LogLevel string `yaml:"log_level"`
}

// LoadConfig reads configuration from the specified YAML file, applies
// environment-variable overrides for secrets and fills in defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	config.applyEnvOverrides()
	config.applyDefaults()

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Secrets are taken from the environment when present so the config file
// can be committed without credentials.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TWITTER_BEARER_TOKEN"); v != "" {
		c.Twitter.BearerToken = v
	}
	if v := os.Getenv("TWITTER_ACCESS_TOKEN"); v != "" {
		c.Twitter.AccessToken = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Alerts.TelegramBotToken = v
	}
	if v := os.Getenv("TRIGGER_PHRASE"); v != "" {
		c.Bot.TriggerPhrase = v
	}
}

func (c *Config) applyDefaults() {
	if c.Bot.TriggerPhrase == "" {
		c.Bot.TriggerPhrase = DefaultTriggerPhrase
	}
	if c.Bot.CheckIntervalMinutes <= 0 {
		c.Bot.CheckIntervalMinutes = DefaultCheckIntervalMinutes
	}
	if c.Bot.MaxTweetsPerCheck <= 0 {
		c.Bot.MaxTweetsPerCheck = DefaultMaxTweetsPerCheck
	}
	if len(c.TrustedAccounts) == 0 {
		c.TrustedAccounts = DefaultTrustedAccounts
	}
	if c.Database.Path == "" {
		c.Database.Path = "rugguard.db"
	}
	if c.Server.Port == "" {
		c.Server.Port = ":8080"
	}
}

func (c *Config) validate() error {
	if c.Twitter.BearerToken == "" {
		return fmt.Errorf("twitter.bearer_token is required (or set TWITTER_BEARER_TOKEN)")
	}
	if c.Twitter.AccessToken == "" {
		return fmt.Errorf("twitter.access_token is required (or set TWITTER_ACCESS_TOKEN)")
	}
	return nil
}
