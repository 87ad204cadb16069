package config

import (
	"strings"
	"time"

	"github.com/ArowuTest/conomy-backend/internal/models"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	Reconcile ReconcileConfig
	LogLevel  string
	// Store selects the document store: "mongodb" or "memory"
	Store    string
	Products []models.Product
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	// TrustedProxies lists the proxy addresses or CIDRs whose forwarded
	// headers are believed. Empty trusts none and uses the peer address.
	TrustedProxies []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int // seconds
	Issuer    string
}

// TTL returns the token lifetime
func (c JWTConfig) TTL() time.Duration {
	return time.Duration(c.ExpiresIn) * time.Second
}

// RateLimitConfig bounds requests per client IP on the auth endpoints
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	// IdleTimeout is how long an unused per-IP bucket is kept
	IdleTimeout time.Duration
}

// ReconcileConfig holds settings for the statement reconciliation command
type ReconcileConfig struct {
	// Timeout bounds a whole reconciliation run
	Timeout time.Duration
}

// Load loads configuration from environment variables and config files.
// Extra search paths are tried after "." and "./config".
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	setDefaults(v)

	// Read configuration
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Unmarshal configuration
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("Server.Port", "4000")
	v.SetDefault("Server.AllowedOrigins", []string{"http://localhost:3000"})
	v.SetDefault("Server.ReadTimeout", 15*time.Second)
	v.SetDefault("Server.WriteTimeout", 15*time.Second)
	v.SetDefault("Server.TrustedProxies", []string{})
	v.SetDefault("MongoDB.URI", "mongodb://localhost:27017/?replicaSet=rs0")
	v.SetDefault("MongoDB.Database", "conomy")
	v.SetDefault("JWT.Secret", "")
	v.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	v.SetDefault("JWT.Issuer", "conomy")
	v.SetDefault("RateLimit.RequestsPerSecond", 5)
	v.SetDefault("RateLimit.Burst", 10)
	v.SetDefault("RateLimit.IdleTimeout", 10*time.Minute)
	v.SetDefault("Reconcile.Timeout", 5*time.Minute)
	v.SetDefault("LogLevel", "info")
	v.SetDefault("Store", "mongodb")
	v.SetDefault("Products", DefaultProducts())
}

// DefaultProducts is the catalog used when none is configured
func DefaultProducts() []map[string]interface{} {
	return []map[string]interface{}{
		{"id": "starter", "name": "Starter Plan", "price": 20000, "cycleDays": 30, "dailyIncome": 1000},
		{"id": "silver", "name": "Silver Plan", "price": 50000, "cycleDays": 45, "dailyIncome": 2500},
		{"id": "gold", "name": "Gold Plan", "price": 100000, "cycleDays": 60, "dailyIncome": 5500},
		{"id": "platinum", "name": "Platinum Plan", "price": 250000, "cycleDays": 90, "dailyIncome": 14000},
	}
}
