package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/umputun/newsbot/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Config holds the application configuration
type Config struct {
	Telegram TelegramConfig `yaml:"telegram" json:"telegram" jsonschema:"description=Telegram delivery configuration"`

	Store StoreConfig `yaml:"store" json:"store" jsonschema:"description=Change store configuration"`

	Schedule struct {
		Interval time.Duration `yaml:"interval" json:"interval" jsonschema:"default=5m,description=Pause between the end of one poll cycle and the start of the next"`
	} `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`

	Fetch FetchConfig `yaml:"fetch" json:"fetch" jsonschema:"description=Defaults shared by all sources"`

	Sources []SourceConfig `yaml:"sources" json:"sources" jsonschema:"description=Per-source overrides (missing sources use built-in defaults)"`

	Server struct {
		Enabled bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable status HTTP server"`
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Status server configuration"`
}

// TelegramConfig holds messaging settings. Token and chat id usually come from the environment.
type TelegramConfig struct {
	Token        string        `yaml:"token" json:"token" jsonschema:"description=Bot token (can use environment variable)"`
	ChatID       int64         `yaml:"chat_id" json:"chat_id" jsonschema:"description=Destination chat or channel id"`
	Pacing       time.Duration `yaml:"pacing" json:"pacing" jsonschema:"default=10s,description=Delay after every dispatched item"`
	ReadMoreText string        `yaml:"read_more_text" json:"read_more_text" jsonschema:"default=Читать в источнике...,description=Label of the link to the source page"`
}

// StoreConfig selects and configures the change store backend
type StoreConfig struct {
	Type string `yaml:"type" json:"type" jsonschema:"default=sqlite,enum=sqlite,enum=bolt,description=Store backend"`
	DSN  string `yaml:"dsn" json:"dsn" jsonschema:"default=file:newsbot.db?cache=shared&mode=rwc&_txlock=immediate,description=SQLite connection string"`
	Path string `yaml:"path" json:"path" jsonschema:"default=newsbot.bolt,description=Bolt database file"`

	MaxOpenConns    int           `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=1,minimum=1,description=Maximum number of open SQLite connections"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"description=SQLite connection maximum lifetime (0 keeps connections forever)"`
}

// FetchConfig holds fetch defaults applied to every source
type FetchConfig struct {
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP request timeout"`
	UserAgent   string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent for HTTP requests"`
	MaxAttempts int           `yaml:"max_attempts" json:"max_attempts" jsonschema:"default=2,minimum=1,description=Fetch attempts per cycle"`
	RetryDelay  time.Duration `yaml:"retry_delay" json:"retry_delay" jsonschema:"default=1s,description=Base unit of the linear retry backoff"`
	ImagesDir   string        `yaml:"images_dir" json:"images_dir" jsonschema:"default=images,description=Directory for downloaded news images"`
	KeepImages  int           `yaml:"keep_images" json:"keep_images" jsonschema:"default=5,description=Number of newest images to keep"`
}

// SourceConfig holds settings of a single monitored page
type SourceConfig struct {
	ID          domain.SourceID   `yaml:"id" json:"id" jsonschema:"required,enum=AGENCY_A,enum=AGENCY_B,enum=AGENCY_C,description=Source id"`
	URL         string            `yaml:"url" json:"url" jsonschema:"description=News list page"`
	Headers     map[string]string `yaml:"headers" json:"headers" jsonschema:"description=Extra request headers"`
	MaxAttempts int               `yaml:"max_attempts" json:"max_attempts" jsonschema:"minimum=1,description=Fetch attempts (defaults to fetch.max_attempts)"`
}

// DefaultSources returns the built-in list of monitored pages
func DefaultSources() []SourceConfig {
	return []SourceConfig{
		{ID: domain.AgencyA, URL: "https://epp.genproc.gov.ru/web/proc_14/mass-media/news"},
		{ID: domain.AgencyB, URL: "https://ykt.sledcom.ru/"},
		{ID: domain.AgencyC, URL: "https://14.xn--b1aew.xn--p1ai/"}, // 14.мвд.рф
	}
}

// Load reads configuration from a YAML file. Empty path means built-in defaults only.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		// expand environment variables
		expanded := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	setDefaults(&cfg)

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	// telegram
	if cfg.Telegram.Pacing == 0 {
		cfg.Telegram.Pacing = 10 * time.Second
	}
	if cfg.Telegram.ReadMoreText == "" {
		cfg.Telegram.ReadMoreText = "Читать в источнике..."
	}

	// store
	cfg.Store.Type = strings.ToLower(strings.TrimSpace(cfg.Store.Type))
	if cfg.Store.Type == "" {
		cfg.Store.Type = "sqlite"
	}
	if cfg.Store.DSN == "" {
		cfg.Store.DSN = "file:newsbot.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "newsbot.bolt"
	}
	if cfg.Store.MaxOpenConns == 0 {
		cfg.Store.MaxOpenConns = 1
	}

	// schedule
	if cfg.Schedule.Interval == 0 {
		cfg.Schedule.Interval = 300 * time.Second
	}

	// fetch
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = 30 * time.Second
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = defaultUserAgent
	}
	if cfg.Fetch.MaxAttempts == 0 {
		cfg.Fetch.MaxAttempts = 2
	}
	if cfg.Fetch.RetryDelay == 0 {
		cfg.Fetch.RetryDelay = time.Second
	}
	if cfg.Fetch.ImagesDir == "" {
		cfg.Fetch.ImagesDir = "images"
	}
	if cfg.Fetch.KeepImages == 0 {
		cfg.Fetch.KeepImages = 5
	}

	// sources, configured entries override built-in ones by id
	overrides := make(map[domain.SourceID]SourceConfig, len(cfg.Sources))
	var rejected []SourceConfig // unknown and duplicate ids, kept to fail validation
	for _, s := range cfg.Sources {
		if _, dup := overrides[s.ID]; dup || !s.ID.Valid() {
			rejected = append(rejected, s)
			continue
		}
		overrides[s.ID] = s
	}
	sources := make([]SourceConfig, 0, len(domain.AllSources()))
	for _, def := range DefaultSources() {
		src := def
		if o, ok := overrides[def.ID]; ok {
			if o.URL != "" {
				src.URL = o.URL
			}
			src.Headers = o.Headers
			src.MaxAttempts = o.MaxAttempts
		}
		if src.MaxAttempts == 0 {
			src.MaxAttempts = cfg.Fetch.MaxAttempts
		}
		sources = append(sources, src)
	}
	cfg.Sources = append(sources, rejected...)

	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	switch cfg.Store.Type {
	case "sqlite", "bolt":
	default:
		return fmt.Errorf("store.type %q is not supported", cfg.Store.Type)
	}
	if cfg.Store.MaxOpenConns < 1 {
		return fmt.Errorf("store.max_open_conns must be at least 1")
	}
	if cfg.Store.ConnMaxLifetime < 0 {
		return fmt.Errorf("store.conn_max_lifetime must be non-negative")
	}

	if cfg.Schedule.Interval < time.Second {
		return fmt.Errorf("schedule.interval must be at least 1 second")
	}
	if cfg.Telegram.Pacing < 0 {
		return fmt.Errorf("telegram.pacing must be non-negative")
	}

	if cfg.Fetch.Timeout < time.Second {
		return fmt.Errorf("fetch.timeout must be at least 1 second")
	}
	if cfg.Fetch.MaxAttempts < 1 {
		return fmt.Errorf("fetch.max_attempts must be at least 1")
	}
	if cfg.Fetch.RetryDelay < 0 {
		return fmt.Errorf("fetch.retry_delay must be non-negative")
	}
	if cfg.Fetch.KeepImages < 1 {
		return fmt.Errorf("fetch.keep_images must be at least 1")
	}

	seen := make(map[domain.SourceID]bool, len(cfg.Sources))
	for _, s := range cfg.Sources {
		if !s.ID.Valid() {
			return fmt.Errorf("source id %q is unknown", s.ID)
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate source id %q", s.ID)
		}
		seen[s.ID] = true
		if s.URL == "" {
			return fmt.Errorf("source %s url is required", s.ID)
		}
		if s.MaxAttempts < 1 {
			return fmt.Errorf("source %s max_attempts must be at least 1", s.ID)
		}
	}

	if cfg.Server.Enabled && cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// Source returns configuration of the given source
func (c *Config) Source(id domain.SourceID) (SourceConfig, bool) {
	for _, s := range c.Sources {
		if s.ID == id {
			return s, true
		}
	}
	return SourceConfig{}, false
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}
