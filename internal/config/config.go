package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr        string
	Port              string
	DatabasePath      string
	SessionSecret     string
	GinMode           string
	SiteBaseURL       string
	SiteName          string
	SiteDescription   string
	ContentDir        string
	SuperRootUserName string
	SuperRootPassword string

	SlackWebhookURL string
	ResendAPIKey    string
	LeadNotifyFrom  string
	LeadNotifyTo    string

	SentryDSN         string
	SentryEnvironment string
	LogLevel          string
	LogFormat         string

	LeadRatePerMinute  float64
	LeadRateBurst      int
	TrackRatePerMinute float64
	TrackRateBurst     int
	TrustedProxies     []string
}

var defaults = map[string]any{
	"port":                  "8080",
	"database_path":         "theprojectseo.db",
	"session_secret":        "theprojectseo-dev-secret",
	"gin_mode":              "release",
	"site_base_url":         "https://theprojectseo.com",
	"site_name":             "TheProjectSEO",
	"site_description":      "AEO and SEO agency helping brands get found in search and AI answers.",
	"lead_notify_from":      "TheProjectSEO <leads@theprojectseo.com>",
	"sentry_environment":    "production",
	"log_level":             "info",
	"lead_rate_per_minute":  5.0,
	"lead_rate_burst":       3,
	"track_rate_per_minute": 120.0,
	"track_rate_burst":      30,
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	return v
}

// Load 从环境变量与当前目录下可选的 config.yaml 读取配置，并为缺失项提供默认值。
func Load() AppConfig {
	cfg, err := LoadFile("")
	if err != nil {
		return fromViper(newViper())
	}
	return cfg
}

// LoadFile 与 Load 相同，但 path 非空时必须能读取该配置文件。环境变量优先于文件。
func LoadFile(path string) (AppConfig, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return AppConfig{}, fmt.Errorf("read config %s: %w", path, err)
		}
		return fromViper(v), nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return AppConfig{}, fmt.Errorf("read config: %w", err)
		}
	}
	return fromViper(v), nil
}

func fromViper(v *viper.Viper) AppConfig {
	get := func(key string) string {
		value := strings.TrimSpace(v.GetString(key))
		if value == "" {
			if fallback, ok := defaults[key].(string); ok {
				return fallback
			}
		}
		return value
	}

	cfg := AppConfig{
		Port:              get("port"),
		ListenAddr:        get("listen_addr"),
		DatabasePath:      get("database_path"),
		SessionSecret:     get("session_secret"),
		GinMode:           get("gin_mode"),
		SiteBaseURL:       strings.TrimRight(get("site_base_url"), "/"),
		SiteName:          get("site_name"),
		SiteDescription:   get("site_description"),
		ContentDir:        get("content_dir"),
		SuperRootUserName: get("super_root_user_name"),
		SuperRootPassword: get("super_root_password"),

		SlackWebhookURL: get("slack_webhook_url"),
		ResendAPIKey:    get("resend_api_key"),
		LeadNotifyFrom:  get("lead_notify_from"),
		LeadNotifyTo:    get("lead_notify_to"),

		SentryDSN:         get("sentry_dsn"),
		SentryEnvironment: get("sentry_environment"),
		LogLevel:          get("log_level"),
		LogFormat:         strings.ToLower(get("log_format")),

		LeadRatePerMinute:  v.GetFloat64("lead_rate_per_minute"),
		LeadRateBurst:      v.GetInt("lead_rate_burst"),
		TrackRatePerMinute: v.GetFloat64("track_rate_per_minute"),
		TrackRateBurst:     v.GetInt("track_rate_burst"),
		TrustedProxies:     splitList(v.GetStringSlice("trusted_proxies")),
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = fmt.Sprintf(":%s", cfg.Port)
	}
	return cfg
}

// splitList 接受 YAML 列表或逗号分隔的环境变量，去掉空白与空项。
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
