package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds the embedded SQLite database configuration
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`               // Path to the single database file
	BusyTimeout     time.Duration `mapstructure:"busy_timeout"`       // How long a writer waits on a locked database (e.g., "5s")
	JournalMode     string        `mapstructure:"journal_mode"`       // SQLite journal mode, WAL by default
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// TelegramConfig holds the bot API configuration
type TelegramConfig struct {
	BotToken       string        `mapstructure:"bot_token"`
	BotUsername    string        `mapstructure:"bot_username"`
	APIURL         string        `mapstructure:"api_url"`
	PollTimeout    time.Duration `mapstructure:"poll_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// CampaignConfig holds the giveaway campaign settings
type CampaignConfig struct {
	RequiredChannels []int64 `mapstructure:"required_channels"`
	WebAppURL        string  `mapstructure:"webapp_url"`
	FolderLink       string  `mapstructure:"folder_link"`
	AdminIDs         []int64 `mapstructure:"admin_ids"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	SubjectPrefix  string        `mapstructure:"subject_prefix"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration for the admin routes.
// The bot signs admin tokens with TokenSecret and the API verifies them with the same secret.
type AuthConfig struct {
	TokenSecret string        `mapstructure:"token_secret"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
	APIKeys     []string      `mapstructure:"api_keys"`
}

// WorkerConfig holds worker configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// VerificationConfig holds subscription verification settings
type VerificationConfig struct {
	// Delay is how long a scheduled re-check waits before asking Telegram.
	// It is a heuristic, tune freely.
	Delay             time.Duration `mapstructure:"delay"`
	PerChannelTimeout time.Duration `mapstructure:"per_channel_timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Worker            WorkerConfig  `mapstructure:"worker"`
}

// NotifierConfig holds operator notification settings
type NotifierConfig struct {
	OperatorChatID int64         `mapstructure:"operator_chat_id"`
	MaxRetries     uint64        `mapstructure:"max_retries"`
	SendTimeout    time.Duration `mapstructure:"send_timeout"`
	Worker         WorkerConfig  `mapstructure:"worker"`
}

// ReconcileConfig holds settings for the periodic re-verification job
type ReconcileConfig struct {
	Interval   time.Duration `mapstructure:"interval"`
	StaleAfter time.Duration `mapstructure:"stale_after"`
	BatchSize  int           `mapstructure:"batch_size"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig   `mapstructure:",squash"`
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Telegram     TelegramConfig     `mapstructure:"telegram"`
	Campaign     CampaignConfig     `mapstructure:"campaign"`
	Verification VerificationConfig `mapstructure:"verification"`
	Notifier     NotifierConfig     `mapstructure:"notifier"`
	NATS         NATSConfig         `mapstructure:"nats"`
	Auth         AuthConfig         `mapstructure:"auth"`
}

// BotConfig holds configuration for the telegram bot
type BotConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Telegram   TelegramConfig `mapstructure:"telegram"`
	Campaign   CampaignConfig `mapstructure:"campaign"`
	Notifier   NotifierConfig `mapstructure:"notifier"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Auth       AuthConfig     `mapstructure:"auth"`
}

// ReconcilerConfig holds configuration for the reconciler program
type ReconcilerConfig struct {
	BaseConfig   `mapstructure:",squash"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Telegram     TelegramConfig     `mapstructure:"telegram"`
	Campaign     CampaignConfig     `mapstructure:"campaign"`
	Verification VerificationConfig `mapstructure:"verification"`
	Reconcile    ReconcileConfig    `mapstructure:"reconcile"`
}

// MigrateConfig holds configuration for the migrate program
type MigrateConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setTelegramDefaults(v)
	setCampaignDefaults(v)
	setVerificationDefaults(v)
	setNotifierDefaults(v)
	setAuthDefaults(v)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 60)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg APIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.Path == "" {
		return nil, errors.New("database.path is required")
	}

	return &cfg, nil
}

// LoadBotConfig loads configuration for the telegram bot
func LoadBotConfig(configFile string, envPath string) (*BotConfig, error) {
	v := configureViper("bot", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setTelegramDefaults(v)
	setCampaignDefaults(v)
	setNotifierDefaults(v)
	setAuthDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg BotConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if cfg.Telegram.BotToken == "" {
		return nil, errors.New("telegram.bot_token is required")
	}

	return &cfg, nil
}

// LoadReconcilerConfig loads configuration for the reconciler program
func LoadReconcilerConfig(configFile string, envPath string) (*ReconcilerConfig, error) {
	v := configureViper("reconciler", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setTelegramDefaults(v)
	setCampaignDefaults(v)
	setVerificationDefaults(v)
	v.SetDefault("reconcile.interval", "15m")
	v.SetDefault("reconcile.stale_after", "24h")
	v.SetDefault("reconcile.batch_size", 200)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg ReconcilerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if cfg.Telegram.BotToken == "" {
		return nil, errors.New("telegram.bot_token is required")
	}
	if cfg.Reconcile.Interval <= 0 {
		return nil, errors.New("reconcile.interval must be positive")
	}

	return &cfg, nil
}

// LoadMigrateConfig loads configuration for the migrate program
func LoadMigrateConfig(configFile string, envPath string) (*MigrateConfig, error) {
	v := configureViper("migrate", configFile, envPath)

	setDatabaseDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg MigrateConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.path", "data/users.db")
	v.SetDefault("database.busy_timeout", "5s")
	v.SetDefault("database.journal_mode", "WAL")
	v.SetDefault("database.max_open_conns", 1)
	v.SetDefault("database.max_idle_conns", 1)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
}

func setTelegramDefaults(v *viper.Viper) {
	v.SetDefault("telegram.bot_username", "FSRUBOT")
	v.SetDefault("telegram.api_url", "https://api.telegram.org")
	v.SetDefault("telegram.poll_timeout", "60s")
	v.SetDefault("telegram.request_timeout", "10s")
}

func setCampaignDefaults(v *viper.Viper) {
	v.SetDefault("campaign.required_channels", []int64{-1001973736826})
	v.SetDefault("campaign.folder_link", "https://t.me/addlist/qB_M_7n8TA1kZmRi")
}

func setVerificationDefaults(v *viper.Viper) {
	v.SetDefault("verification.delay", "30s")
	v.SetDefault("verification.per_channel_timeout", "5s")
	v.SetDefault("verification.requests_per_second", 25)
	v.SetDefault("verification.worker.pool_size", 8)
	v.SetDefault("verification.worker.queue_size", 1024)
}

func setNotifierDefaults(v *viper.Viper) {
	v.SetDefault("notifier.operator_chat_id", -4948669471)
	v.SetDefault("notifier.max_retries", 3)
	v.SetDefault("notifier.send_timeout", "10s")
	v.SetDefault("notifier.worker.pool_size", 2)
	v.SetDefault("notifier.worker.queue_size", 256)
	v.SetDefault("nats.stream_name", "FSR_LEDGER_EVENTS")
	v.SetDefault("nats.subject_prefix", "fsr.ledger")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
}

func setAuthDefaults(v *viper.Viper) {
	v.SetDefault("auth.token_ttl", "12h")
}

// readConfig reads the config file, falling back to environment variables when it is missing
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/bot/, cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("FSR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.path",
		"database.busy_timeout",
		"database.journal_mode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Telegram
		"telegram.bot_token",
		"telegram.bot_username",
		"telegram.api_url",
		"telegram.poll_timeout",
		"telegram.request_timeout",
		// Campaign
		"campaign.required_channels",
		"campaign.webapp_url",
		"campaign.folder_link",
		"campaign.admin_ids",
		// Verification
		"verification.delay",
		"verification.per_channel_timeout",
		"verification.requests_per_second",
		"verification.worker.pool_size",
		"verification.worker.queue_size",
		// Notifier
		"notifier.operator_chat_id",
		"notifier.max_retries",
		"notifier.send_timeout",
		"notifier.worker.pool_size",
		"notifier.worker.queue_size",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.subject_prefix",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.token_secret",
		"auth.token_ttl",
		"auth.api_keys",
		// Reconciler
		"reconcile.interval",
		"reconcile.stale_after",
		"reconcile.batch_size",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the SQLite connection string with the pragmas every connection needs.
// Transactions begin IMMEDIATE so writers queue on busy_timeout instead of failing on lock upgrade.
func (c *DatabaseConfig) DSN() string {
	journal := c.JournalMode
	if journal == "" {
		journal = "WAL"
	}
	busy := c.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}

	return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(%s)&_pragma=foreign_keys(1)&_pragma=synchronous(NORMAL)&_txlock=immediate",
		c.Path, busy.Milliseconds(), journal)
}
