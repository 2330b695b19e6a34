package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Storage
	Storage  StorageConfig
	Sqlite   SqliteConfig
	Postgres PostgresConfig

	// Collaborators
	Memos          MemosConfig
	Meilisearch    MeilisearchConfig
	Kafka          KafkaConfig
	GoogleCalendar GoogleCalendarConfig

	// Domain
	Importer  ImporterConfig
	Scheduler SchedulerConfig
	Programs  ProgramsConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	RateLimitPerMin int
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type StorageConfig struct {
	Driver string
}

type SqliteConfig struct {
	Path string
}

type PostgresConfig struct {
	DSN      string
	MaxConns int32
}

type MemosConfig struct {
	Enabled       bool
	URL           string
	AccessToken   string
	UserID        string // journal owner the memos notes are attributed to
	WebhookSecret string
}

type MeilisearchConfig struct {
	Enabled    bool
	URL        string
	APIKey     string
	Index      string
	Timeout    time.Duration
	RatePerSec float64
}

type KafkaConfig struct {
	Enabled      bool
	Brokers      []string
	GroupID      string
	NoteTopic    string
	EventTopic   string
	PlannedTopic string
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	TokenPath       string
	CalendarID      string
}

type ImporterConfig struct {
	Threshold       float64
	SkipDuplicates  bool
	DefaultTimezone string
}

type SchedulerConfig struct {
	DefaultDays   int
	Timezone      string
	EventDuration time.Duration
}

type ProgramsConfig struct {
	// FromDir serves program definitions straight from Dir instead of the store.
	FromDir bool
	Dir     string
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/health-protocol/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/health-protocol/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.RateLimitPerMin = viper.GetInt("http_server.rate_limit_per_min")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Storage
	cfg.Storage.Driver = strings.ToLower(viper.GetString("storage.driver"))
	cfg.Sqlite.Path = viper.GetString("storage.sqlite.path")
	cfg.Postgres.DSN = viper.GetString("storage.postgres.dsn")
	cfg.Postgres.MaxConns = viper.GetInt32("storage.postgres.max_conns")
	if dsn := viper.GetString("database_url"); dsn != "" {
		cfg.Postgres.DSN = dsn
	}

	// Memos
	cfg.Memos.Enabled = viper.GetBool("memos.enabled")
	cfg.Memos.URL = viper.GetString("memos.url")
	cfg.Memos.AccessToken = viper.GetString("memos.access_token")
	cfg.Memos.UserID = viper.GetString("memos.user_id")
	cfg.Memos.WebhookSecret = viper.GetString("memos.webhook_secret")
	if memosToken := viper.GetString("memos_access_token"); memosToken != "" {
		cfg.Memos.AccessToken = memosToken
	}

	// Meilisearch
	cfg.Meilisearch.Enabled = viper.GetBool("meilisearch.enabled")
	cfg.Meilisearch.URL = viper.GetString("meilisearch.url")
	cfg.Meilisearch.APIKey = viper.GetString("meilisearch.api_key")
	cfg.Meilisearch.Index = viper.GetString("meilisearch.index")
	cfg.Meilisearch.Timeout = viper.GetDuration("meilisearch.timeout")
	cfg.Meilisearch.RatePerSec = viper.GetFloat64("meilisearch.rate_per_sec")
	if key := viper.GetString("meili_master_key"); key != "" {
		cfg.Meilisearch.APIKey = key
	}

	// Kafka
	cfg.Kafka.Enabled = viper.GetBool("kafka.enabled")
	cfg.Kafka.Brokers = splitList(viper.GetString("kafka.brokers"))
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = viper.GetStringSlice("kafka.brokers")
	}
	cfg.Kafka.GroupID = viper.GetString("kafka.group_id")
	cfg.Kafka.NoteTopic = viper.GetString("kafka.note_topic")
	cfg.Kafka.EventTopic = viper.GetString("kafka.event_topic")
	cfg.Kafka.PlannedTopic = viper.GetString("kafka.planned_topic")

	// Google Calendar
	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.TokenPath = viper.GetString("google_calendar.token_path")
	cfg.GoogleCalendar.CalendarID = viper.GetString("google_calendar.calendar_id")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	// Domain
	cfg.Importer.Threshold = viper.GetFloat64("importer.threshold")
	cfg.Importer.SkipDuplicates = viper.GetBool("importer.skip_duplicates")
	cfg.Importer.DefaultTimezone = viper.GetString("importer.default_timezone")
	cfg.Scheduler.DefaultDays = viper.GetInt("scheduler.default_days")
	cfg.Scheduler.Timezone = viper.GetString("scheduler.timezone")
	cfg.Scheduler.EventDuration = viper.GetDuration("scheduler.event_duration")
	cfg.Programs.FromDir = viper.GetBool("programs.from_dir")
	cfg.Programs.Dir = viper.GetString("programs.dir")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Sqlite.Path == "" {
			return fmt.Errorf("storage.sqlite.path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("storage.postgres.dsn is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}
	if c.Memos.Enabled && (c.Memos.URL == "" || c.Memos.UserID == "") {
		return fmt.Errorf("memos.url and memos.user_id are required when memos is enabled")
	}
	if c.Programs.FromDir && c.Programs.Dir == "" {
		return fmt.Errorf("programs.dir is required when programs.from_dir is set")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required when kafka is enabled")
	}
	if c.Importer.Threshold < 0 || c.Importer.Threshold > 1 {
		return fmt.Errorf("importer.threshold must be within [0, 1], got %v", c.Importer.Threshold)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("http_server.rate_limit_per_min", 120)
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("storage.driver", DriverSQLite)
	viper.SetDefault("storage.sqlite.path", "data/journal.db")
	viper.SetDefault("storage.postgres.max_conns", 10)

	viper.SetDefault("meilisearch.url", "http://localhost:7700")
	viper.SetDefault("meilisearch.index", "activities")
	viper.SetDefault("meilisearch.timeout", "10s")
	viper.SetDefault("meilisearch.rate_per_sec", 20)

	viper.SetDefault("kafka.group_id", "health-protocol-importer")
	viper.SetDefault("kafka.note_topic", "journal.notes")
	viper.SetDefault("kafka.event_topic", "journal.events")
	viper.SetDefault("kafka.planned_topic", "journal.planned")

	viper.SetDefault("google_calendar.token_path", "token.json")
	viper.SetDefault("google_calendar.calendar_id", "primary")

	viper.SetDefault("importer.threshold", 0.7)
	viper.SetDefault("importer.skip_duplicates", true)
	viper.SetDefault("importer.default_timezone", "America/Los_Angeles")
	viper.SetDefault("scheduler.default_days", 30)
	viper.SetDefault("scheduler.timezone", "America/Los_Angeles")
	viper.SetDefault("scheduler.event_duration", "30m")
	viper.SetDefault("programs.dir", "programs")
}

// splitList splits comma separated env values, since viper does not parse arrays from env.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
