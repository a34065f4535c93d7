package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingSecret = errors.New("JWT_SECRET is not set")

// Config is read once at startup and never mutated afterwards.
type Config struct {
	Port string

	MongoURI      string
	MongoDatabase string

	JwtSecret    string
	TokenTTL     time.Duration
	CookieSecure bool

	Couchbase Couchbase

	LogLevel  string
	LogFormat string

	// EnvFileLoaded reports whether a .env file was found.
	EnvFileLoaded bool
}

// Couchbase holds the optional session store connection settings.
type Couchbase struct {
	ConnStr    string
	Username   string
	Password   string
	BucketName string
	Scope      string
	Collection string
	Timeout    time.Duration
}

// Enabled reports whether enough settings are present to open a cluster.
func (c Couchbase) Enabled() bool {
	return c.ConnStr != "" && c.BucketName != ""
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	loaded := godotenv.Load() == nil
	return fromViper(newViper(), loaded)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("mongo_database", "play2earn")
	v.SetDefault("token_ttl", "24h")
	v.SetDefault("cookie_secure", true)
	v.SetDefault("cb_scope", "_default")
	v.SetDefault("cb_collection", "_default")
	v.SetDefault("cb_timeout", "5s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	return v
}

func fromViper(v *viper.Viper, envLoaded bool) (*Config, error) {
	cfg := &Config{
		Port:          v.GetString("port"),
		MongoURI:      v.GetString("mongo_uri"),
		MongoDatabase: v.GetString("mongo_database"),
		JwtSecret:     v.GetString("jwt_secret"),
		TokenTTL:      v.GetDuration("token_ttl"),
		CookieSecure:  v.GetBool("cookie_secure"),
		Couchbase: Couchbase{
			ConnStr:    v.GetString("cb_conn_str"),
			Username:   v.GetString("cb_username"),
			Password:   v.GetString("cb_password"),
			BucketName: v.GetString("cb_bucket"),
			Scope:      v.GetString("cb_scope"),
			Collection: v.GetString("cb_collection"),
			Timeout:    v.GetDuration("cb_timeout"),
		},
		LogLevel:      v.GetString("log_level"),
		LogFormat:     v.GetString("log_format"),
		EnvFileLoaded: envLoaded,
	}

	if cfg.JwtSecret == "" {
		return nil, ErrMissingSecret
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL %q", v.GetString("token_ttl"))
	}
	return cfg, nil
}
