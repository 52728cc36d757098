package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log       Logger         `mapstructure:"logger"`
	DB        Database       `mapstructure:"database"`
	API       API            `mapstructure:"api"`
	Analysis  Analysis       `mapstructure:"analysis"`
	Scheduler Scheduler      `mapstructure:"scheduler"`
	Cache     Cache          `mapstructure:"cache"`
	Telegram  TelegramConfig `mapstructure:"telegram"`
	Webhook   Webhook        `mapstructure:"webhook"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port int `mapstructure:"port"`
}

// Analysis holds the thresholds of the correlation engine. The engine never
// reads these ambiently; they are injected at construction.
type Analysis struct {
	WindowDays                int     `mapstructure:"window_days"`
	MinPeriods                int     `mapstructure:"min_periods"`
	MinMentions               int     `mapstructure:"min_mentions"`
	CorrelationThreshold      float64 `mapstructure:"correlation_threshold"`
	SignalConfidenceThreshold float64 `mapstructure:"signal_confidence_threshold"`
	TargetPeriods             int     `mapstructure:"target_periods_for_full_confidence"`
	TimeZone                  string  `mapstructure:"time_zone"`
	MaxConcurrency            int     `mapstructure:"max_concurrency"`
}

type Scheduler struct {
	AnalysisCron    string        `mapstructure:"analysis_cron"`
	CleanupCron     string        `mapstructure:"cleanup_cron"`
	RetentionDays   int           `mapstructure:"retention_days"`
	TimeoutDuration time.Duration `mapstructure:"timeout_duration"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

type TelegramConfig struct {
	BotToken            string        `mapstructure:"bot_token"`
	ChatID              string        `mapstructure:"chat_id"`
	TimeoutDuration     time.Duration `mapstructure:"timeout_duration"`
	MaxMessagePerSecond int           `mapstructure:"max_message_per_second"`
	AlertMinLevel       string        `mapstructure:"alert_min_level"`
}

type Webhook struct {
	SignalURL   string        `mapstructure:"signal_url"`
	AuthToken   string        `mapstructure:"auth_token"`
	BaseTimeout time.Duration `mapstructure:"base_timeout"`
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("api.port", 8080)

	viper.SetDefault("analysis.window_days", 7)
	viper.SetDefault("analysis.min_periods", 3)
	viper.SetDefault("analysis.min_mentions", 5)
	viper.SetDefault("analysis.correlation_threshold", 0.6)
	viper.SetDefault("analysis.signal_confidence_threshold", 0.65)
	viper.SetDefault("analysis.target_periods_for_full_confidence", 7)
	viper.SetDefault("analysis.time_zone", "UTC")
	viper.SetDefault("analysis.max_concurrency", 5)

	viper.SetDefault("scheduler.analysis_cron", "0 18 * * *")
	viper.SetDefault("scheduler.cleanup_cron", "30 2 * * *")
	viper.SetDefault("scheduler.retention_days", 90)
	viper.SetDefault("scheduler.timeout_duration", 10*time.Minute)

	viper.SetDefault("cache.default_expiration", 5*time.Minute)
	viper.SetDefault("cache.cleanup_interval", 10*time.Minute)

	viper.SetDefault("telegram.max_message_per_second", 1)
	viper.SetDefault("telegram.timeout_duration", 10*time.Second)
	viper.SetDefault("telegram.alert_min_level", "error")

	viper.SetDefault("webhook.base_timeout", 10*time.Second)
}

func Load() (*Config, error) {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
