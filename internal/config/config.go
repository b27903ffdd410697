package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// TelegramConfig holds the chat platform credentials and polling settings.
type TelegramConfig struct {
	Token       string
	PollTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL connection settings for the durable record store.
// When Host is empty the in-process fallback store is used instead.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// GoFileConfig holds the hosting-service endpoints. The defaults speak the public
// GoFile API; the fields exist so tests and forks can point elsewhere.
type GoFileConfig struct {
	ServerEndpoint string
	UploadHost     string
	DefaultServer  string
	AccountToken   string
}

// MinIOConfig holds object storage settings for the optional S3 mirror backend.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// RelayConfig holds the pipeline's operational limits.
type RelayConfig struct {
	MaxFileSize    int64
	DownloadDir    string
	EditInterval   time.Duration
	ResolveTimeout time.Duration
	LinkBaseURL    string
	DurableTTL     time.Duration
	FallbackTTL    time.Duration
	Backend        string // "gofile" (default) or "s3"
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port     string
	Telegram TelegramConfig
	Database DatabaseConfig
	GoFile   GoFileConfig
	MinIO    MinIOConfig
	Relay    RelayConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port: getEnv("PORT", "8080"),
		Telegram: TelegramConfig{
			Token:       getEnv("BOT_TOKEN", ""),
			PollTimeout: getEnvDuration("TELEGRAM_POLL_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		GoFile: GoFileConfig{
			ServerEndpoint: getEnv("GOFILE_SERVER_ENDPOINT", "https://api.gofile.io/getServer"),
			UploadHost:     getEnv("GOFILE_UPLOAD_HOST", "gofile.io"),
			DefaultServer:  getEnv("GOFILE_DEFAULT_SERVER", "store1"),
			AccountToken:   getEnv("GOFILE_ACCOUNT_TOKEN", ""), // empty = guest upload
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Relay: RelayConfig{
			MaxFileSize:    getEnvInt64("MAX_FILE_SIZE", 2_000_000_000),
			DownloadDir:    getEnv("DOWNLOAD_DIR", filepath.Join(os.TempDir(), "filerelay")),
			EditInterval:   getEnvDuration("EDIT_INTERVAL", 3*time.Second),
			ResolveTimeout: getEnvDuration("RESOLVE_TIMEOUT", 10*time.Second),
			LinkBaseURL:    getEnv("LINK_BASE_URL", "https://dl.filerelay.dev"),
			DurableTTL:     getEnvDuration("RECORD_TTL", 30*24*time.Hour),
			FallbackTTL:    getEnvDuration("FALLBACK_RECORD_TTL", 24*time.Hour),
			Backend:        getEnv("TRANSFER_BACKEND", "gofile"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}
