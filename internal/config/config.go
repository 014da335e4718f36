package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Stripe  StripeConfig  `mapstructure:"stripe"`
	Auth    AuthConfig    `mapstructure:"auth"`
	S3      S3Config      `mapstructure:"s3"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
	// ClientOrigin is the SPA origin allowed by CORS and used to build the
	// checkout success/cancel redirect URLs.
	ClientOrigin string `mapstructure:"client_origin"`
}

// StorageConfig selects and configures the blob-store backend.
// Backend is one of "sqlite", "mongo", "memory".
type StorageConfig struct {
	Backend    string `mapstructure:"backend"`
	SQLitePath string `mapstructure:"sqlite_path"`
	MongoURI   string `mapstructure:"mongo_uri"`
	MongoName  string `mapstructure:"mongo_name"`
}

// StripeConfig holds the payment provider settings. WebhookSecret is
// optional; when empty, webhook events are accepted unauthenticated.
type StripeConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	PriceProMonth string `mapstructure:"price_pro_month"`
	PriceOrgMonth string `mapstructure:"price_org_month"`
	WebhookSecret string `mapstructure:"webhook_secret"`
}

// AuthConfig configures bearer-token validation. Tokens are issued by the
// external auth provider; this server only verifies them. With an empty
// secret the server runs open, in single-coach local mode, and every request
// resolves to DefaultPlan.
type AuthConfig struct {
	JWTSecret   string `mapstructure:"jwt_secret"`
	DefaultPlan string `mapstructure:"default_plan"`
}

// S3Config configures the optional drill-video media storage. Media routes
// are disabled when BucketName is empty.
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Nested keys map to env vars: server.client_origin -> SERVER_CLIENT_ORIGIN
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("server.client_origin", "http://localhost:3000")
	viper.SetDefault("storage.backend", "sqlite")
	viper.SetDefault("storage.sqlite_path", "allball.db")
	viper.SetDefault("storage.mongo_uri", "mongodb://localhost:27017")
	viper.SetDefault("storage.mongo_name", "allball")
	// Local single-coach installs get the pro feature set, matching the
	// browser build's fallback when no profile is loaded.
	viper.SetDefault("auth.default_plan", "pro")
	viper.SetDefault("s3.use_ssl", true)

	err = viper.ReadInConfig()
	// A missing config file is fine; env vars and defaults carry the load.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
