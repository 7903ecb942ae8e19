package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`
	CORSOrigins string `mapstructure:"CORS_ORIGINS"`

	PostgresURL string `mapstructure:"POSTGRES_URL"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	TokenTTL  time.Duration `mapstructure:"TOKEN_TTL"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	MinIOEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinIOAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinIOSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinIOBucket    string `mapstructure:"MINIO_BUCKET"`
	MinIOUseSSL    bool   `mapstructure:"MINIO_USE_SSL"`

	KafkaBrokers      string `mapstructure:"KAFKA_BROKERS"`
	KafkaSymptomTopic string `mapstructure:"KAFKA_SYMPTOM_TOPIC"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`
	AppBaseURL   string `mapstructure:"APP_BASE_URL"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
	LogFile  string `mapstructure:"LOG_FILE"`
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set outside local and test environments")

var keys = []string{
	"PORT", "ENVIRONMENT", "CORS_ORIGINS", "POSTGRES_URL", "JWT_SECRET", "TOKEN_TTL",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY", "MINIO_BUCKET", "MINIO_USE_SSL",
	"KAFKA_BROKERS", "KAFKA_SYMPTOM_TOPIC",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD", "SMTP_FROM", "APP_BASE_URL",
	"LOG_LEVEL", "LOG_FILE",
}

// NewConfig reads .env, an optional config.toml and the process environment,
// in increasing order of precedence.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	configName := "config"
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")

	setDefaults(v)

	v.AutomaticEnv()
	// AutomaticEnv only applies to keys viper already knows about when unmarshalling.
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		log.Debug("no config file found, using environment only")
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info("config parsed")

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "local")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("TOKEN_TTL", 60*time.Minute)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("MINIO_BUCKET", "health-documents")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("KAFKA_SYMPTOM_TOPIC", "symptom-checks")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("APP_BASE_URL", "http://localhost:5173")
	v.SetDefault("LOG_LEVEL", "info")
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" && !c.IsLocal() {
		return ErrMissingJWTSecret
	}
	if c.JWTSecret == "" {
		log.Warn("JWT_SECRET not set, using an insecure development secret")
		c.JWTSecret = "swasthsetu-dev-secret"
	}
	return nil
}

func (c *Config) IsLocal() bool {
	env := strings.ToLower(c.Environment)
	return env == "" || env == "local" || env == "test"
}

func (c *Config) KafkaBrokerList() []string {
	if strings.TrimSpace(c.KafkaBrokers) == "" {
		return nil
	}
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func (c *Config) CORSOriginList() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
