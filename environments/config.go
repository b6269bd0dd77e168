package environments

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Carrier  CarrierConfig
	Message  MessageConfig
	Session  SessionConfig
	Realtime RealtimeConfig
	Auth     AuthConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	FrontendURL    string
	LoginRateLimit float64
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// CarrierConfig configures the outbound SMS gateway and the signature check
// applied to its inbound webhook calls.
type CarrierConfig struct {
	BaseURL           string
	AccountSID        string
	AuthToken         string
	FromNumber        string
	Timeout           time.Duration
	RetryCount        int
	ValidateSignature bool
	WebhookURL        string
}

type MessageConfig struct {
	Window         time.Duration
	ReplyMaxLength int
}

type SessionConfig struct {
	TTL        time.Duration
	CookieName string
}

type RealtimeConfig struct {
	PingInterval   time.Duration
	WriteTimeout   time.Duration
	ReadTimeout    time.Duration
	MaxMessageSize int64
	SendBuffer     int
}

type AuthConfig struct {
	Username     string
	Password     string
	PasswordHash string
}

func Load() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:           GetEnv("SERVER_PORT", "8080"),
			Env:            GetEnv("APP_ENV", "development"),
			FrontendURL:    GetEnv("FRONTEND_URL", "http://localhost:3000"),
			LoginRateLimit: GetEnvAsFloat("LOGIN_RATE_LIMIT", 1),
		},
		Database: DatabaseConfig{
			Host:     GetEnv("DB_HOST", "localhost"),
			Port:     GetEnv("DB_PORT", "3306"),
			User:     GetEnv("DB_USER", "textline"),
			Password: GetEnv("DB_PASSWORD", "textline123"),
			DBName:   GetEnv("DB_NAME", "listener_text"),
		},
		Redis: RedisConfig{
			Host:     GetEnv("REDIS_HOST", "localhost"),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetEnvAsInt("REDIS_DB", 0),
		},
		Carrier: CarrierConfig{
			BaseURL:           GetEnv("CARRIER_BASE_URL", "https://api.twilio.com"),
			AccountSID:        GetEnv("CARRIER_ACCOUNT_SID", ""),
			AuthToken:         GetEnv("CARRIER_AUTH_TOKEN", ""),
			FromNumber:        GetEnv("CARRIER_FROM_NUMBER", ""),
			Timeout:           GetEnvAsDuration("CARRIER_TIMEOUT", 15*time.Second),
			RetryCount:        GetEnvAsInt("CARRIER_RETRY_COUNT", 0),
			ValidateSignature: GetEnvAsBool("CARRIER_VALIDATE_SIGNATURE", false),
			WebhookURL:        GetEnv("CARRIER_WEBHOOK_URL", ""),
		},
		Message: MessageConfig{
			Window:         GetEnvAsDuration("MESSAGE_WINDOW", 12*time.Hour),
			ReplyMaxLength: GetEnvAsInt("REPLY_MAX_LENGTH", 1600),
		},
		Session: SessionConfig{
			TTL:        GetEnvAsDuration("SESSION_TTL", 30*24*time.Hour),
			CookieName: GetEnv("SESSION_COOKIE_NAME", "textline.sid"),
		},
		Realtime: RealtimeConfig{
			PingInterval:   GetEnvAsDuration("WS_PING_INTERVAL", 30*time.Second),
			WriteTimeout:   GetEnvAsDuration("WS_WRITE_TIMEOUT", 10*time.Second),
			ReadTimeout:    GetEnvAsDuration("WS_READ_TIMEOUT", 60*time.Second),
			MaxMessageSize: int64(GetEnvAsInt("WS_MAX_MESSAGE_SIZE", 4096)),
			SendBuffer:     GetEnvAsInt("WS_SEND_BUFFER", 256),
		},
		Auth: AuthConfig{
			Username:     GetEnv("AUTH_USERNAME", ""),
			Password:     GetEnv("AUTH_PASSWORD", ""),
			PasswordHash: GetEnv("AUTH_PASSWORD_HASH", ""),
		},
	}

	cfg.Realtime = cfg.Realtime.withDefaults()

	return cfg
}

// withDefaults replaces unusable live-channel timings. The read deadline is
// only refreshed by pongs, so it must outlast one ping interval.
func (r RealtimeConfig) withDefaults() RealtimeConfig {
	if r.PingInterval <= 0 {
		r.PingInterval = 30 * time.Second
	}
	if r.WriteTimeout <= 0 {
		r.WriteTimeout = 10 * time.Second
	}
	if r.ReadTimeout <= r.PingInterval {
		r.ReadTimeout = 2 * r.PingInterval
	}
	if r.MaxMessageSize <= 0 {
		r.MaxMessageSize = 4096
	}
	return r
}

// IsProduction reports whether cookies must be issued Secure with SameSite=None.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
