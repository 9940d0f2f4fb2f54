// Package config resolves the service configuration once at startup.
//
// Sources are applied in order, later ones winning: built-in defaults, an
// optional JSON file, a .env file in the working directory and finally the
// process environment. Validate must pass before any component is built.
package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type Config struct {
	Port        string `json:"port"`
	DataDir     string `json:"data_dir"`
	PreviewDir  string `json:"preview_dir"`
	TemplateDir string `json:"template_dir,omitempty"`

	Log LogConfig `json:"log"`

	// UserStore and DocumentStore pick the identity and remote document
	// backends; SessionStore and ImageStore pick the session and upload
	// backends.
	UserStore     string `json:"user_store"`
	DocumentStore string `json:"document_store"`
	SessionStore  string `json:"session_store"`
	ImageStore    string `json:"image_store"`

	DatabaseURL string      `json:"database_url,omitempty"`
	Mongo       MongoConfig `json:"mongo"`
	Redis       RedisConfig `json:"redis"`
	Minio       MinioConfig `json:"minio"`
	JWT         JWTConfig   `json:"jwt"`
	LLM         LLMConfig   `json:"llm"`
	PDF         PDFConfig   `json:"pdf"`
}

type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

type MongoConfig struct {
	URI      string `json:"uri,omitempty"`
	Database string `json:"database"`
}

type RedisConfig struct {
	Addr       string `json:"addr,omitempty"`
	Password   string `json:"password,omitempty"`
	DB         int    `json:"db"`
	TTLMinutes int    `json:"ttl_minutes"`
}

type MinioConfig struct {
	Endpoint  string `json:"endpoint,omitempty"`
	AccessKey string `json:"access_key,omitempty"`
	SecretKey string `json:"secret_key,omitempty"`
	Bucket    string `json:"bucket"`
	Region    string `json:"region,omitempty"`
	UseSSL    bool   `json:"use_ssl"`
}

type JWTConfig struct {
	Secret     string `json:"secret,omitempty"`
	Issuer     string `json:"issuer"`
	TTLMinutes int    `json:"ttl_minutes"`
}

type LLMConfig struct {
	Enabled        bool   `json:"enabled"`
	BaseURL        string `json:"base_url"`
	APIKey         string `json:"api_key,omitempty"`
	Model          string `json:"model"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type PDFConfig struct {
	ChromePath     string `json:"chrome_path,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// Default returns the built-in configuration: local files, in-memory
// sessions and Postgres for identity and documents.
func Default() Config {
	return Config{
		Port:          "8080",
		DataDir:       "data",
		PreviewDir:    "preview",
		Log:           LogConfig{Level: "info", Format: "text"},
		UserStore:     "postgres",
		DocumentStore: "postgres",
		SessionStore:  "memory",
		ImageStore:    "local",
		Mongo:         MongoConfig{Database: "resume"},
		Redis:         RedisConfig{TTLMinutes: 24 * 60},
		Minio:         MinioConfig{Bucket: "resume-assets"},
		JWT:           JWTConfig{Issuer: "resume-forge", TTLMinutes: 60},
		LLM: LLMConfig{
			Enabled:        true,
			BaseURL:        "https://api.groq.com/openai/v1",
			Model:          "llama-3.3-70b-versatile",
			TimeoutSeconds: 60,
		},
		PDF: PDFConfig{TimeoutSeconds: 60},
	}
}

// Load resolves the configuration and validates it. path names an optional
// JSON file; when given it must exist.
func Load(path string) (cfg Config, err error) {
	cfg = Default()

	if path != "" {
		var data []byte
		data, err = os.ReadFile(path)
		if err != nil {
			err = errors.Wrapf(err, "failed to read config file: %s", path)
			return cfg, err
		}
		if err = json.Unmarshal(data, &cfg); err != nil {
			err = errors.Wrapf(err, "failed to parse config file: %s", path)
			return cfg, err
		}
	}

	// .env never overrides variables already set in the environment
	if err = godotenv.Load(); err != nil && !os.IsNotExist(err) {
		err = errors.Wrap(err, "failed to read .env")
		return cfg, err
	}
	err = nil

	cfg.applyEnv()

	if err = cfg.Validate(); err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}
	return cfg, err
}

func (c *Config) applyEnv() {
	setString(&c.Port, "PORT")
	setString(&c.DataDir, "DATA_DIR")
	setString(&c.PreviewDir, "PREVIEW_DIR")
	setString(&c.TemplateDir, "TEMPLATE_DIR")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")

	setString(&c.UserStore, "USER_STORE")
	setString(&c.DocumentStore, "DOCUMENT_STORE")
	setString(&c.SessionStore, "SESSION_STORE")
	setString(&c.ImageStore, "IMAGE_STORE")

	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.Mongo.URI, "MONGODB_URI")
	setString(&c.Mongo.Database, "MONGODB_DATABASE")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setInt(&c.Redis.DB, "REDIS_DB")
	setInt(&c.Redis.TTLMinutes, "SESSION_TTL_MINUTES")
	setString(&c.Minio.Endpoint, "MINIO_ENDPOINT")
	setString(&c.Minio.AccessKey, "MINIO_ACCESS_KEY")
	setString(&c.Minio.SecretKey, "MINIO_SECRET_KEY")
	setString(&c.Minio.Bucket, "MINIO_BUCKET")
	setString(&c.Minio.Region, "MINIO_REGION")
	setBool(&c.Minio.UseSSL, "MINIO_USE_SSL")

	setString(&c.JWT.Secret, "JWT_SECRET")
	setString(&c.JWT.Issuer, "JWT_ISSUER")
	setInt(&c.JWT.TTLMinutes, "JWT_TTL_MINUTES")

	setBool(&c.LLM.Enabled, "LLM_ENABLED")
	setString(&c.LLM.BaseURL, "LLM_BASE_URL")
	setString(&c.LLM.APIKey, "LLM_API_KEY")
	setString(&c.LLM.Model, "LLM_MODEL")
	setInt(&c.LLM.TimeoutSeconds, "LLM_TIMEOUT_SECONDS")

	setString(&c.PDF.ChromePath, "CHROME_PATH")
	setInt(&c.PDF.TimeoutSeconds, "RENDER_TIMEOUT_SECONDS")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

// Validate checks every field the selected backends need.
func (c *Config) Validate() (err error) {
	var problems []string
	need := func(ok bool, msg string) {
		if !ok {
			problems = append(problems, msg)
		}
	}
	oneOf := func(v, name string, allowed ...string) {
		for _, a := range allowed {
			if v == a {
				return
			}
		}
		problems = append(problems, name+" must be one of "+strings.Join(allowed, ", "))
	}

	need(c.Port != "", "port is required")
	need(c.DataDir != "", "data_dir is required")
	need(c.PreviewDir != "", "preview_dir is required")
	if c.TemplateDir != "" {
		if st, statErr := os.Stat(c.TemplateDir); statErr != nil || !st.IsDir() {
			problems = append(problems, "template_dir not found: "+c.TemplateDir)
		}
	}
	oneOf(c.Log.Level, "log.level", "debug", "info", "warn", "error")
	oneOf(c.Log.Format, "log.format", "text", "json")

	oneOf(c.UserStore, "user_store", "postgres", "memory")
	oneOf(c.DocumentStore, "document_store", "postgres", "mongo", "none")
	oneOf(c.SessionStore, "session_store", "memory", "redis")
	oneOf(c.ImageStore, "image_store", "local", "minio")

	if c.UserStore == "postgres" || c.DocumentStore == "postgres" {
		need(c.DatabaseURL != "", "DATABASE_URL is required for the postgres stores")
	}
	if c.DocumentStore == "mongo" {
		need(c.Mongo.URI != "", "MONGODB_URI is required when document_store is mongo")
		need(c.Mongo.Database != "", "mongo.database is required when document_store is mongo")
	}
	if c.SessionStore == "redis" {
		need(c.Redis.Addr != "", "REDIS_ADDR is required when session_store is redis")
		need(c.Redis.TTLMinutes > 0, "SESSION_TTL_MINUTES must be positive")
	}
	if c.ImageStore == "minio" {
		need(c.Minio.Endpoint != "", "MINIO_ENDPOINT is required when image_store is minio")
		need(c.Minio.AccessKey != "" && c.Minio.SecretKey != "", "MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required when image_store is minio")
		need(c.Minio.Bucket != "", "MINIO_BUCKET is required when image_store is minio")
	}

	need(c.JWT.Secret != "", "JWT_SECRET is required")
	need(c.JWT.TTLMinutes > 0, "JWT_TTL_MINUTES must be positive")
	if c.LLM.Enabled {
		need(c.LLM.APIKey != "", "LLM_API_KEY is required when narrative generation is enabled")
		need(c.LLM.BaseURL != "", "LLM_BASE_URL is required when narrative generation is enabled")
	}
	need(c.PDF.TimeoutSeconds > 0, "RENDER_TIMEOUT_SECONDS must be positive")

	if len(problems) > 0 {
		err = errors.New(strings.Join(problems, "; "))
	}
	return err
}

func (c *Config) JWTTTL() time.Duration {
	return time.Duration(c.JWT.TTLMinutes) * time.Minute
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Redis.TTLMinutes) * time.Minute
}

func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLM.TimeoutSeconds) * time.Second
}

func (c *Config) RenderTimeout() time.Duration {
	return time.Duration(c.PDF.TimeoutSeconds) * time.Second
}
