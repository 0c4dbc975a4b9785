package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret     string `yaml:"secret"`
		TTLMinutes int    `yaml:"ttl_minutes"`
		CookieName string `yaml:"cookie_name"`
	} `yaml:"jwt"`

	OAuth struct {
		GoogleClientID     string `yaml:"google_client_id"`
		GoogleClientSecret string `yaml:"google_client_secret"`
		GoogleRedirectURL  string `yaml:"google_redirect_url"`
	} `yaml:"oauth"`

	Stripe struct {
		SecretKey      string `yaml:"secret_key"`
		WebhookSecret  string `yaml:"webhook_secret"`
		PriceMonthly   string `yaml:"price_monthly"`
		PriceYearly    string `yaml:"price_yearly"`
		SuccessURL     string `yaml:"success_url"`
		CancelURL      string `yaml:"cancel_url"`
	} `yaml:"stripe"`

	Storage struct {
		Type      string `yaml:"type"`       // local or s3
		BasePath  string `yaml:"base_path"`  // for local storage
		BaseURL   string `yaml:"base_url"`   // public URL base
		Bucket    string `yaml:"bucket"`     // for S3
		Region    string `yaml:"region"`     // for S3
		AccessKey string `yaml:"access_key"` // for S3
		SecretKey string `yaml:"secret_key"` // for S3
		Endpoint  string `yaml:"endpoint"`   // for S3-compatible providers
	} `yaml:"storage"`

	Upload struct {
		MaxSize      int64    `yaml:"max_size"`      // max file size in bytes
		AllowedTypes []string `yaml:"allowed_types"` // allowed MIME types
	} `yaml:"upload"`

	FrontendURL        string `yaml:"frontend_url"`
	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// LoadConfig reads configuration from the environment, optionally seeded
// from a YAML file named by CONFIG_PATH. Environment variables always win.
func LoadConfig() {
	_ = godotenv.Load()

	var cfg Config

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			f.Close()
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}
		f.Close()
	}

	overrideString(&cfg.Database.DSN, "DATABASE_URL")
	overrideString(&cfg.Server.Host, "SERVER_HOST")
	overrideInt(&cfg.Server.Port, "SERVER_PORT")
	overrideString(&cfg.Server.Env, "SERVER_ENV")
	overrideString(&cfg.JWT.Secret, "JWT_SECRET")
	overrideInt(&cfg.JWT.TTLMinutes, "JWT_TTL_MINUTES")
	overrideString(&cfg.JWT.CookieName, "AUTH_COOKIE_NAME")
	overrideString(&cfg.OAuth.GoogleClientID, "GOOGLE_CLIENT_ID")
	overrideString(&cfg.OAuth.GoogleClientSecret, "GOOGLE_CLIENT_SECRET")
	overrideString(&cfg.OAuth.GoogleRedirectURL, "GOOGLE_REDIRECT_URL")
	overrideString(&cfg.Stripe.SecretKey, "STRIPE_SECRET_KEY")
	overrideString(&cfg.Stripe.WebhookSecret, "STRIPE_WEBHOOK_SECRET")
	overrideString(&cfg.Stripe.PriceMonthly, "STRIPE_PRICE_MONTHLY")
	overrideString(&cfg.Stripe.PriceYearly, "STRIPE_PRICE_YEARLY")
	overrideString(&cfg.Stripe.SuccessURL, "STRIPE_SUCCESS_URL")
	overrideString(&cfg.Stripe.CancelURL, "STRIPE_CANCEL_URL")
	overrideString(&cfg.Storage.Type, "STORAGE_TYPE")
	overrideString(&cfg.Storage.BasePath, "STORAGE_BASE_PATH")
	overrideString(&cfg.Storage.BaseURL, "STORAGE_BASE_URL")
	overrideString(&cfg.Storage.Bucket, "STORAGE_BUCKET")
	overrideString(&cfg.Storage.Region, "STORAGE_REGION")
	overrideString(&cfg.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	overrideString(&cfg.Storage.SecretKey, "STORAGE_SECRET_KEY")
	overrideString(&cfg.Storage.Endpoint, "STORAGE_ENDPOINT")
	overrideString(&cfg.FrontendURL, "FRONTEND_URL")
	overrideString(&cfg.FirstAdminEmail, "FIRST_ADMIN_EMAIL")
	overrideString(&cfg.FirstAdminPassword, "FIRST_ADMIN_PASSWORD")

	applyDefaults(&cfg)

	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.JWT.TTLMinutes == 0 {
		cfg.JWT.TTLMinutes = 60
	}
	if cfg.JWT.CookieName == "" {
		cfg.JWT.CookieName = "lexhub_session"
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./uploads"
	}
	if cfg.Storage.BaseURL == "" {
		cfg.Storage.BaseURL = "/api/files"
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	}
	if len(cfg.Upload.AllowedTypes) == 0 {
		cfg.Upload.AllowedTypes = []string{
			"image/jpeg", "image/png", "image/webp", "application/pdf",
		}
	}
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
