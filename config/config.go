package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultJWTSecret = "your-secret-key-change-this-in-production"

type Config struct {
	Env       string          `yaml:"env"`
	Port      string          `yaml:"port"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Upload    UploadConfig    `yaml:"upload"`
	MinIO     MinIOConfig     `yaml:"minio"`
	Redis     RedisConfig     `yaml:"redis"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors"`
	Log       LogConfig       `yaml:"log"`
}

type DatabaseConfig struct {
	Driver     string `yaml:"driver"` // postgres or sqlite
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"-"`
	Name       string `yaml:"name"`
	SSLMode    string `yaml:"sslmode"`
	SQLitePath string `yaml:"sqlite_path"`
}

type JWTConfig struct {
	Secret     string        `yaml:"-"`
	Expiration time.Duration `yaml:"expiration"`
}

type UploadConfig struct {
	Dir         string `yaml:"dir"`
	URLPrefix   string `yaml:"url_prefix"`
	MaxFileSize int64  `yaml:"max_file_size"`
}

type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"-"`
	SecretKey string `yaml:"-"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
	PublicURL string `yaml:"public_url"`
}

func (c MinIOConfig) Enabled() bool {
	return c.Endpoint != ""
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"-"`
	DB       int    `yaml:"db"`
}

func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type RateLimitConfig struct {
	Max    int           `yaml:"max"`
	Window time.Duration `yaml:"window"`
}

type CORSConfig struct {
	Origins []string `yaml:"origins"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when neither a YAML file nor the
// environment sets a value.
func Default() *Config {
	return &Config{
		Env:  "dev",
		Port: "8080",
		Database: DatabaseConfig{
			Driver:     "postgres",
			Host:       "localhost",
			Port:       "5432",
			User:       "postgres",
			Name:       "blog",
			SSLMode:    "disable",
			SQLitePath: "blog.db",
		},
		JWT: JWTConfig{
			Secret:     defaultJWTSecret,
			Expiration: 7 * 24 * time.Hour,
		},
		Upload: UploadConfig{
			Dir:         "uploads",
			URLPrefix:   "/uploads",
			MaxFileSize: 5 * 1024 * 1024,
		},
		MinIO:     MinIOConfig{Bucket: "blog-uploads"},
		RateLimit: RateLimitConfig{Max: 100, Window: 15 * time.Minute},
		CORS:      CORSConfig{Origins: []string{"http://localhost:3000"}},
		Log:       LogConfig{Level: "info", Format: "text"},
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// CONFIG_FILE (config.yaml if unset), then environment variables. A .env file
// is loaded into the environment first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := Default()

	path := getEnv("CONFIG_FILE", "config.yaml")
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Printf("Ignoring invalid config file %s: %v", path, err)
		}
	}

	cfg.applyEnv()
	return cfg
}

func (c *Config) applyEnv() {
	c.Env = getEnv("APP_ENV", c.Env)
	c.Port = getEnv("PORT", c.Port)

	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnv("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)
	c.Database.SQLitePath = getEnv("SQLITE_PATH", c.Database.SQLitePath)

	c.JWT.Secret = getEnv("JWT_SECRET", c.JWT.Secret)
	c.JWT.Expiration = getDuration("JWT_EXPIRATION", c.JWT.Expiration)

	c.Upload.Dir = getEnv("UPLOAD_DIR", c.Upload.Dir)
	c.Upload.MaxFileSize = int64(getInt("MAX_FILE_SIZE", int(c.Upload.MaxFileSize)))

	c.MinIO.Endpoint = getEnv("MINIO_ENDPOINT", c.MinIO.Endpoint)
	c.MinIO.AccessKey = getEnv("MINIO_ACCESS_KEY", c.MinIO.AccessKey)
	c.MinIO.SecretKey = getEnv("MINIO_SECRET_KEY", c.MinIO.SecretKey)
	c.MinIO.Bucket = getEnv("MINIO_BUCKET", c.MinIO.Bucket)
	c.MinIO.UseSSL = getBool("MINIO_USE_SSL", c.MinIO.UseSSL)
	c.MinIO.PublicURL = getEnv("MINIO_PUBLIC_URL", c.MinIO.PublicURL)

	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getInt("REDIS_DB", c.Redis.DB)

	c.RateLimit.Max = getInt("RATE_LIMIT_MAX", c.RateLimit.Max)
	c.RateLimit.Window = getDuration("RATE_LIMIT_WINDOW", c.RateLimit.Window)

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.CORS.Origins = splitList(origins)
	}

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
}

// UsesDefaultSecret reports whether JWT_SECRET was never set.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWT.Secret == defaultJWTSecret
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Ignoring invalid %s=%q", key, v)
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// getDuration accepts Go durations ("15m") or plain seconds ("900").
func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	log.Printf("Ignoring invalid %s=%q", key, v)
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
