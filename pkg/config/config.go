package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "VAULT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv            = "VAULT_APP_ENV"
	EnvPort              = "VAULT_APP_PORT"
	EnvLogLevel          = "VAULT_LOG_LEVEL"
	EnvLocalBackend      = "VAULT_STORE_LOCAL_BACKEND"
	EnvSessionBackend    = "VAULT_STORE_SESSION_BACKEND"
	EnvStoreDir          = "VAULT_STORE_DIR"
	EnvSessionTTL        = "VAULT_STORE_SESSION_TTL"
	EnvDBDriver          = "VAULT_DB_DRIVER"
	EnvDBDSN             = "VAULT_DB_DSN"
	EnvRedisURL          = "VAULT_REDIS_URL"
	EnvGenAIAPIKey       = "VAULT_GENAI_API_KEY"
	EnvSendgridAPIKey    = "VAULT_SENDGRID_API_KEY"
	EnvAutosaveDelay     = "VAULT_AUTOSAVE_DELAY"
	EnvGateErrorReset    = "VAULT_GATE_ERROR_RESET"
	EnvDispatchInterval  = "VAULT_MESSAGING_DISPATCH_INTERVAL"
	EnvCORSAllowedOrigin = "VAULT_CORS_ALLOWED_ORIGINS"
)

// Backend names accepted by the vault store settings.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQL    = "sql"
	BackendRedis  = "redis"
)

type Config struct {
	App        AppConfig
	Store      StoreConfig
	DB         DBConfig
	Redis      RedisConfig
	GenAI      GenAIConfig
	Sendgrid   SendgridConfig
	Messaging  MessagingConfig
	Storefront StorefrontConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.Store.LocalBackend = strings.ToLower(strings.TrimSpace(c.Store.LocalBackend))
	c.Store.SessionBackend = strings.ToLower(strings.TrimSpace(c.Store.SessionBackend))

	switch c.Store.LocalBackend {
	case BackendMemory:
	case BackendFile:
		if strings.TrimSpace(c.Store.Dir) == "" {
			return fmt.Errorf("%s is required for the file backend", EnvStoreDir)
		}
	case BackendSQL:
		if strings.TrimSpace(c.DB.DSN) == "" {
			return fmt.Errorf("%s is required for the sql backend", EnvDBDSN)
		}
		if !c.DB.IsSQLite() && !c.DB.IsPostgres() {
			return fmt.Errorf("unsupported %s %q", EnvDBDriver, c.DB.Driver)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvLocalBackend, c.Store.LocalBackend)
	}

	switch c.Store.SessionBackend {
	case BackendMemory:
	case BackendRedis:
		if !c.Redis.Enabled() {
			return fmt.Errorf("%s is required for the redis session backend", EnvRedisURL)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvSessionBackend, c.Store.SessionBackend)
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"VAULT_APP_ENV" required:"true"`
	Port         string `envconfig:"VAULT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"VAULT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VAULT_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"VAULT_AUTO_MIGRATE" default:"false"`

	// Comma separated list; the kiosk UI is normally served from localhost.
	CORSAllowedOrigins []string `envconfig:"VAULT_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StoreConfig selects where vault slots live.
type StoreConfig struct {
	LocalBackend   string        `envconfig:"VAULT_STORE_LOCAL_BACKEND" default:"file"`
	SessionBackend string        `envconfig:"VAULT_STORE_SESSION_BACKEND" default:"memory"`
	Dir            string        `envconfig:"VAULT_STORE_DIR" default:"./data/vault"`
	SessionTTL     time.Duration `envconfig:"VAULT_STORE_SESSION_TTL" default:"12h"`
}

type DBConfig struct {
	Driver string `envconfig:"VAULT_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"VAULT_DB_DSN"`

	MaxOpenConns    int           `envconfig:"VAULT_DB_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int           `envconfig:"VAULT_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"VAULT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VAULT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d DBConfig) IsSQLite() bool {
	return strings.EqualFold(d.Driver, "sqlite")
}

func (d DBConfig) IsPostgres() bool {
	return strings.EqualFold(d.Driver, "postgres")
}

type RedisConfig struct {
	URL          string        `envconfig:"VAULT_REDIS_URL"`
	PoolSize     int           `envconfig:"VAULT_REDIS_POOL_SIZE" default:"5"`
	MinIdleConns int           `envconfig:"VAULT_REDIS_MIN_IDLE_CONNS" default:"1"`
	DialTimeout  time.Duration `envconfig:"VAULT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VAULT_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"VAULT_REDIS_WRITE_TIMEOUT" default:"3s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type GenAIConfig struct {
	APIKey      string        `envconfig:"VAULT_GENAI_API_KEY"`
	BaseURL     string        `envconfig:"VAULT_GENAI_BASE_URL" default:"https://generativelanguage.googleapis.com/"`
	APIVersion  string        `envconfig:"VAULT_GENAI_API_VERSION" default:"v1beta"`
	TextModel   string        `envconfig:"VAULT_GENAI_TEXT_MODEL" default:"gemini-3-flash-preview"`
	ImageModel  string        `envconfig:"VAULT_GENAI_IMAGE_MODEL" default:"gemini-2.5-flash-image"`
	SpeechModel string        `envconfig:"VAULT_GENAI_SPEECH_MODEL" default:"gemini-2.5-flash-preview-tts"`
	Timeout     time.Duration `envconfig:"VAULT_GENAI_TIMEOUT" default:"30s"`
}

func (g GenAIConfig) Enabled() bool {
	return strings.TrimSpace(g.APIKey) != ""
}

type SendgridConfig struct {
	APIKey      string `envconfig:"VAULT_SENDGRID_API_KEY"`
	DefaultFrom string `envconfig:"VAULT_SENDGRID_FROM_EMAIL"`
	FromName    string `envconfig:"VAULT_SENDGRID_FROM_NAME" default:"Premium Rambo"`
}

func (s SendgridConfig) Enabled() bool {
	return strings.TrimSpace(s.APIKey) != "" && strings.TrimSpace(s.DefaultFrom) != ""
}

type MessagingConfig struct {
	DispatchInterval time.Duration `envconfig:"VAULT_MESSAGING_DISPATCH_INTERVAL" default:"1m"`
	Subject          string        `envconfig:"VAULT_MESSAGING_EMAIL_SUBJECT" default:"Thanks for your pickup"`
}

type StorefrontConfig struct {
	AutosaveDelay  time.Duration `envconfig:"VAULT_AUTOSAVE_DELAY" default:"1500ms"`
	GateErrorReset time.Duration `envconfig:"VAULT_GATE_ERROR_RESET" default:"1s"`
}
