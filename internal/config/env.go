package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port string `validate:"required,numeric"`

	AwsRegion      string `validate:"required"`
	AwsAccessKey   string
	AwsSecretKey   string
	BucketName     string `validate:"required"`
	BaseFolder     string
	S3Endpoint     string `validate:"omitempty,url"`
	ForcePathStyle bool

	LegacyPrefix string        `validate:"max=1"`
	PresignTTL   time.Duration `validate:"gt=0"`
	PageURLMode  string        `validate:"oneof=signed direct"`

	MetadataCacheTTL  time.Duration `validate:"gte=0"`
	MetadataCacheSize int           `validate:"gt=0"`

	BannerText string
	BannerLogo string

	AllowedOrigins []string
	JWTSecret      string

	LogLevel  string `validate:"oneof=trace debug info warn error"`
	LogFormat string `validate:"oneof=console json"`
}

// LoadConfig loads the environment variables and return config.
// Empty credentials leave the SDK default chain in charge.
func LoadConfig() (*Config, error) {

	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		AwsRegion:         getEnv("AWS_REGION", "ap-southeast-1"),
		AwsAccessKey:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AwsSecretKey:      getEnv("AWS_SECRET_ACCESS_KEY", ""),
		BucketName:        getEnv("S3_BUCKET_NAME", "soe-storage"),
		BaseFolder:        getEnv("S3_MAIN_FOLDER", "images"),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		ForcePathStyle:    getEnvBool("S3_FORCE_PATH_STYLE", false),
		LegacyPrefix:      getEnv("KEY_LEGACY_PREFIX", "f"),
		PresignTTL:        getEnvDuration("PRESIGN_TTL", 60*time.Second),
		PageURLMode:       strings.ToLower(getEnv("PAGE_URL_MODE", "signed")),
		MetadataCacheTTL:  getEnvDuration("METADATA_CACHE_TTL", 0),
		MetadataCacheSize: getEnvInt("METADATA_CACHE_SIZE", 256),
		BannerText:        getEnv("BANNER_TEXT", "YOUR_BANNER_TEXT"),
		BannerLogo:        getEnv("BANNER_LOGO", ""),
		AllowedOrigins:    getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:8080"}),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:         strings.ToLower(getEnv("LOG_FORMAT", "console")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the shape of the configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Int("default", def).Msg("not an int, using default")
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Bool("default", def).Msg("not a bool, using default")
		return def
	}
	return b
}

// getEnvDuration accepts Go durations ("90s", "2m") or a bare number of seconds.
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Dur("default", def).Msg("not a duration, using default")
		return def
	}
	return d
}

func getEnvList(key string, def []string) []string {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
