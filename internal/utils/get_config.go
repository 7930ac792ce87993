package utils

import (
	"errors"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v2"
)

type Config struct {
	AppEnv string `yaml:"APP_ENV"`
	Port   string `yaml:"PORT"`

	// Database configuration
	DBDriver    string `yaml:"DB_DRIVER"`
	DatabaseURL string `yaml:"DATABASE_URL"`
	DBHost      string `yaml:"DB_HOST"`
	DBPort      string `yaml:"DB_PORT"`
	DBUser      string `yaml:"DB_USER"`
	DBPassword  string `yaml:"DB_PASSWORD"`
	DBName      string `yaml:"DB_NAME"`
	DBSSLMode   string `yaml:"DB_SSLMODE"`
	SQLitePath  string `yaml:"SQLITE_PATH"`

	// Auth
	JWTSecret    string `yaml:"JWT_SECRET"`
	JWTExpiresIn string `yaml:"JWT_EXPIRES_IN"`
	BcryptRounds string `yaml:"BCRYPT_ROUNDS"`

	// HTTP
	CORSOrigin   string `yaml:"CORS_ORIGIN"`
	RateLimitMax string `yaml:"RATE_LIMIT_MAX"`
	LogFile      string `yaml:"LOG_FILE"`
	StaticDir    string `yaml:"STATIC_DIR"`

	// Mailing configuration
	AppURL           string `yaml:"APP_URL"`
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Bootstrap admin
	AdminName     string `yaml:"ADMIN_NAME"`
	AdminEmail    string `yaml:"ADMIN_EMAIL"`
	AdminPassword string `yaml:"ADMIN_PASSWORD"`

	// OpenTelemetry export: "otlp", "stdout" or empty for none
	OTelExporter     string `yaml:"OTEL_EXPORTER"`
	OTelOTLPEndpoint string `yaml:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTelServiceName  string `yaml:"OTEL_SERVICE_NAME"`
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

var defaults = map[string]string{
	"APP_ENV":        "development",
	"PORT":           "3000",
	"DB_DRIVER":      "postgres",
	"DB_HOST":        "localhost",
	"DB_PORT":        "5432",
	"DB_SSLMODE":     "disable",
	"SQLITE_PATH":    "campuscook.db",
	"JWT_EXPIRES_IN": "24h",
	"BCRYPT_ROUNDS":  "10",
	"CORS_ORIGIN":    "http://localhost:3001",
	"RATE_LIMIT_MAX": "100",
	"ADMIN_NAME":     "Administrator",

	"OTEL_SERVICE_NAME": "campuscook-api",
}

// LoadConfig layers config.yaml, then .env, then the process environment.
// Later sources win. Missing files are not an error.
func LoadConfig() (Config, error) {
	cfg := Config{}

	file, err := os.ReadFile("config.yaml")
	if err == nil {
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return Config{}, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		log.Warnf("Error reading YAML file: %s", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("Error reading .env file: %s", err)
	}

	applyEnv(&cfg)
	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingJWTSecret
	}

	return cfg, nil
}

// applyEnv overrides every yaml-tagged field from its env var and fills defaults.
func applyEnv(cfg *Config) {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		key := t.Field(i).Tag.Get("yaml")
		if value, ok := os.LookupEnv(key); ok {
			v.Field(i).SetString(value)
			continue
		}
		if v.Field(i).String() == "" {
			v.Field(i).SetString(defaults[key])
		}
	}
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c Config) TokenTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTExpiresIn)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// BcryptCost is BCRYPT_ROUNDS clamped to the range bcrypt accepts.
func (c Config) BcryptCost() int {
	cost := atoiOr(c.BcryptRounds, bcrypt.DefaultCost)
	return min(max(cost, bcrypt.MinCost), bcrypt.MaxCost)
}

// RateLimit is requests per second per client; 0 disables limiting.
func (c Config) RateLimit() int {
	return atoiOr(c.RateLimitMax, 100)
}

func (c Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPAuthEmail != ""
}

func (c Config) S3Enabled() bool {
	return c.AWSS3Bucket != "" && c.AWSS3Region != ""
}

// TelemetryExporter resolves OTEL_EXPORTER; a bare OTLP endpoint implies "otlp".
func (c Config) TelemetryExporter() string {
	exporter := strings.ToLower(strings.TrimSpace(c.OTelExporter))
	switch exporter {
	case "otlp", "stdout":
		return exporter
	case "":
		if c.OTelOTLPEndpoint != "" {
			return "otlp"
		}
	case "none":
	default:
		log.Warnf("unknown OTEL_EXPORTER %q, telemetry export disabled", c.OTelExporter)
	}
	return ""
}
