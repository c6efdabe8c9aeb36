package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"creditscan/internal/creditparser"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	S3     S3Config
	Log    LogConfig
	OCR    OCRConfig
	Queue  QueueConfig
	Parser ParserConfig
	CORS   CORSConfig
}

// QueueConfig holds parse queue worker settings.
type QueueConfig struct {
	PollIntervalSecs   int `mapstructure:"poll_interval_secs"`
	MaxRetries         int `mapstructure:"max_retries"`
	Concurrency        int `mapstructure:"concurrency"`
	InterItemDelayMs   int `mapstructure:"inter_item_delay_ms"`
	ClaimBatchSize     int `mapstructure:"claim_batch_size"`
	ProcessingTimeoutS int `mapstructure:"processing_timeout_secs"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OCRProviderConfig holds settings for a single document-to-text provider.
type OCRProviderConfig struct {
	Provider    string `mapstructure:"provider"`
	Endpoint    string `mapstructure:"endpoint"`
	APIKey      string `mapstructure:"api_key"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// OCRConfig holds text extraction settings. Providers are tried in order:
// primary, then secondary, then the stored-text sidecar when enabled.
type OCRConfig struct {
	Primary   OCRProviderConfig `mapstructure:"primary"`
	Secondary OCRProviderConfig `mapstructure:"secondary"`
	// SidecarFallback reads a pre-extracted "<key>.txt" object when the providers fail.
	SidecarFallback bool `mapstructure:"sidecar_fallback"`
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (o *OCRConfig) SecondaryConfig() *OCRProviderConfig {
	if o.Secondary.Provider != "" {
		return &o.Secondary
	}
	return nil
}

// ParserConfig holds the heuristics of the credit report parser.
type ParserConfig struct {
	HighThreshold     int      `mapstructure:"high_threshold"`
	MediumThreshold   int      `mapstructure:"medium_threshold"`
	LowThreshold      int      `mapstructure:"low_threshold"`
	MinTextLength     int      `mapstructure:"min_text_length"`
	MinSectionLength  int      `mapstructure:"min_section_length"`
	SectionLookbehind int      `mapstructure:"section_lookbehind"`
	SectionMinSpan    int      `mapstructure:"section_min_span"`
	MinBlockLength    int      `mapstructure:"min_block_length"`
	SoftInquirers     []string `mapstructure:"soft_inquirers"`
}

// Options converts the parser config into creditparser options.
func (p *ParserConfig) Options() creditparser.Options {
	opts := creditparser.Options{
		HighThreshold:     p.HighThreshold,
		MediumThreshold:   p.MediumThreshold,
		LowThreshold:      p.LowThreshold,
		MinTextLength:     p.MinTextLength,
		MinSectionLength:  p.MinSectionLength,
		SectionLookbehind: p.SectionLookbehind,
		SectionMinSpan:    p.SectionMinSpan,
		MinBlockLength:    p.MinBlockLength,
		SoftInquirers:     p.SoftInquirers,
	}
	if len(opts.SoftInquirers) == 0 {
		opts.SoftInquirers = creditparser.DefaultSoftInquirers
	}
	return opts
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the CREDITSCAN_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CREDITSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "creditscan")
	v.SetDefault("db.password", "creditscan_secret")
	v.SetDefault("db.name", "creditscan_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "creditscan-reports")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 25)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Queue defaults: sequential with a fixed delay between reports
	v.SetDefault("queue.poll_interval_secs", 10)
	v.SetDefault("queue.max_retries", 5)
	v.SetDefault("queue.concurrency", 1)
	v.SetDefault("queue.inter_item_delay_ms", 500)
	v.SetDefault("queue.claim_batch_size", 10)
	v.SetDefault("queue.processing_timeout_secs", 300)

	// OCR defaults
	v.SetDefault("ocr.primary.provider", "docai")
	v.SetDefault("ocr.primary.endpoint", "")
	v.SetDefault("ocr.primary.api_key", "")
	v.SetDefault("ocr.primary.timeout_secs", 120)
	v.SetDefault("ocr.secondary.provider", "")
	v.SetDefault("ocr.secondary.endpoint", "")
	v.SetDefault("ocr.secondary.api_key", "")
	v.SetDefault("ocr.secondary.timeout_secs", 120)
	v.SetDefault("ocr.sidecar_fallback", true)

	// Parser defaults
	d := creditparser.DefaultOptions()
	v.SetDefault("parser.high_threshold", d.HighThreshold)
	v.SetDefault("parser.medium_threshold", d.MediumThreshold)
	v.SetDefault("parser.low_threshold", d.LowThreshold)
	v.SetDefault("parser.min_text_length", d.MinTextLength)
	v.SetDefault("parser.min_section_length", d.MinSectionLength)
	v.SetDefault("parser.section_lookbehind", d.SectionLookbehind)
	v.SetDefault("parser.section_min_span", d.SectionMinSpan)
	v.SetDefault("parser.min_block_length", d.MinBlockLength)
	v.SetDefault("parser.soft_inquirers", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                   "CREDITSCAN_SERVER_PORT",
		"server.read_timeout":           "CREDITSCAN_SERVER_READ_TIMEOUT",
		"server.write_timeout":          "CREDITSCAN_SERVER_WRITE_TIMEOUT",
		"server.environment":            "CREDITSCAN_SERVER_ENVIRONMENT",
		"db.host":                       "CREDITSCAN_DB_HOST",
		"db.port":                       "CREDITSCAN_DB_PORT",
		"db.user":                       "CREDITSCAN_DB_USER",
		"db.password":                   "CREDITSCAN_DB_PASSWORD",
		"db.name":                       "CREDITSCAN_DB_NAME",
		"db.sslmode":                    "CREDITSCAN_DB_SSLMODE",
		"db.max_open":                   "CREDITSCAN_DB_MAX_OPEN",
		"db.max_idle":                   "CREDITSCAN_DB_MAX_IDLE",
		"s3.region":                     "CREDITSCAN_S3_REGION",
		"s3.bucket":                     "CREDITSCAN_S3_BUCKET",
		"s3.endpoint":                   "CREDITSCAN_S3_ENDPOINT",
		"s3.access_key":                 "CREDITSCAN_S3_ACCESS_KEY",
		"s3.secret_key":                 "CREDITSCAN_S3_SECRET_KEY",
		"s3.max_file_size_mb":           "CREDITSCAN_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":             "CREDITSCAN_S3_PRESIGN_EXPIRY",
		"log.level":                     "CREDITSCAN_LOG_LEVEL",
		"log.format":                    "CREDITSCAN_LOG_FORMAT",
		"cors.allowed_origins":          "CREDITSCAN_CORS_ALLOWED_ORIGINS",
		"queue.poll_interval_secs":      "CREDITSCAN_QUEUE_POLL_INTERVAL_SECS",
		"queue.max_retries":             "CREDITSCAN_QUEUE_MAX_RETRIES",
		"queue.concurrency":             "CREDITSCAN_QUEUE_CONCURRENCY",
		"queue.inter_item_delay_ms":     "CREDITSCAN_QUEUE_INTER_ITEM_DELAY_MS",
		"queue.claim_batch_size":        "CREDITSCAN_QUEUE_CLAIM_BATCH_SIZE",
		"queue.processing_timeout_secs": "CREDITSCAN_QUEUE_PROCESSING_TIMEOUT_SECS",
		"ocr.primary.provider":          "CREDITSCAN_OCR_PRIMARY_PROVIDER",
		"ocr.primary.endpoint":          "CREDITSCAN_OCR_PRIMARY_ENDPOINT",
		"ocr.primary.api_key":           "CREDITSCAN_OCR_PRIMARY_API_KEY",
		"ocr.primary.timeout_secs":      "CREDITSCAN_OCR_PRIMARY_TIMEOUT_SECS",
		"ocr.secondary.provider":        "CREDITSCAN_OCR_SECONDARY_PROVIDER",
		"ocr.secondary.endpoint":        "CREDITSCAN_OCR_SECONDARY_ENDPOINT",
		"ocr.secondary.api_key":         "CREDITSCAN_OCR_SECONDARY_API_KEY",
		"ocr.secondary.timeout_secs":    "CREDITSCAN_OCR_SECONDARY_TIMEOUT_SECS",
		"ocr.sidecar_fallback":          "CREDITSCAN_OCR_SIDECAR_FALLBACK",
		"parser.high_threshold":         "CREDITSCAN_PARSER_HIGH_THRESHOLD",
		"parser.medium_threshold":       "CREDITSCAN_PARSER_MEDIUM_THRESHOLD",
		"parser.low_threshold":          "CREDITSCAN_PARSER_LOW_THRESHOLD",
		"parser.min_text_length":        "CREDITSCAN_PARSER_MIN_TEXT_LENGTH",
		"parser.min_section_length":     "CREDITSCAN_PARSER_MIN_SECTION_LENGTH",
		"parser.section_lookbehind":     "CREDITSCAN_PARSER_SECTION_LOOKBEHIND",
		"parser.section_min_span":       "CREDITSCAN_PARSER_SECTION_MIN_SPAN",
		"parser.min_block_length":       "CREDITSCAN_PARSER_MIN_BLOCK_LENGTH",
		"parser.soft_inquirers":         "CREDITSCAN_PARSER_SOFT_INQUIRERS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Platforms like Railway and Render set PORT; use it unless CREDITSCAN_SERVER_PORT is set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CREDITSCAN_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}

	cfg.Queue = QueueConfig{
		PollIntervalSecs:   v.GetInt("queue.poll_interval_secs"),
		MaxRetries:         v.GetInt("queue.max_retries"),
		Concurrency:        v.GetInt("queue.concurrency"),
		InterItemDelayMs:   v.GetInt("queue.inter_item_delay_ms"),
		ClaimBatchSize:     v.GetInt("queue.claim_batch_size"),
		ProcessingTimeoutS: v.GetInt("queue.processing_timeout_secs"),
	}

	cfg.OCR = OCRConfig{
		Primary: OCRProviderConfig{
			Provider:    v.GetString("ocr.primary.provider"),
			Endpoint:    v.GetString("ocr.primary.endpoint"),
			APIKey:      v.GetString("ocr.primary.api_key"),
			TimeoutSecs: v.GetInt("ocr.primary.timeout_secs"),
		},
		Secondary: OCRProviderConfig{
			Provider:    v.GetString("ocr.secondary.provider"),
			Endpoint:    v.GetString("ocr.secondary.endpoint"),
			APIKey:      v.GetString("ocr.secondary.api_key"),
			TimeoutSecs: v.GetInt("ocr.secondary.timeout_secs"),
		},
		SidecarFallback: v.GetBool("ocr.sidecar_fallback"),
	}

	cfg.Parser = ParserConfig{
		HighThreshold:     v.GetInt("parser.high_threshold"),
		MediumThreshold:   v.GetInt("parser.medium_threshold"),
		LowThreshold:      v.GetInt("parser.low_threshold"),
		MinTextLength:     v.GetInt("parser.min_text_length"),
		MinSectionLength:  v.GetInt("parser.min_section_length"),
		SectionLookbehind: v.GetInt("parser.section_lookbehind"),
		SectionMinSpan:    v.GetInt("parser.section_min_span"),
		MinBlockLength:    v.GetInt("parser.min_block_length"),
		SoftInquirers:     splitList(v.GetString("parser.soft_inquirers")),
	}

	return cfg, nil
}

// splitList parses a comma-separated setting, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
