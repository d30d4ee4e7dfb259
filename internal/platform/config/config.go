package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration structure
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	JWT      JWTConfig      `json:"jwt"`
	App      AppConfig      `json:"app"`
	Cache    CacheConfig    `json:"cache"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	BaseRoute string `json:"baseRoute"`
	WebDomain string `json:"webDomain"`
	Debug     bool   `json:"debug"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Type  string        `json:"type"`
	Mongo MongoDBConfig `json:"mongo"`
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	Host                   string `json:"host"`
	Port                   int    `json:"port"`
	Username               string `json:"username"`
	Password               string `json:"password"`
	Database               string `json:"database"`
	AuthDatabase           string `json:"authDatabase"`
	ReplicaSet             string `json:"replicaSet"`
	SSL                    bool   `json:"ssl"`
	MaxPoolSize            int    `json:"maxPoolSize"`
	MinPoolSize            int    `json:"minPoolSize"`
	ConnectTimeout         int    `json:"connectTimeout"`
	SocketTimeout          int    `json:"socketTimeout"`
	MaxIdleTime            int    `json:"maxIdleTime"`
	ServerSelectionTimeout int    `json:"serverSelectionTimeout"`
}

// JWTConfig holds JWT-related configuration
type JWTConfig struct {
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
}

// AppConfig holds application-related configuration
type AppConfig struct {
	Name      string `json:"name"`
	OrgName   string `json:"orgName"`
	WebDomain string `json:"webDomain"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Enabled         bool          `json:"enabled"`
	Backend         string        `json:"backend"`
	Prefix          string        `json:"prefix"`
	TTL             time.Duration `json:"ttl"`
	CleanupInterval time.Duration `json:"cleanupInterval"`
	Redis           RedisConfig   `json:"redis"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Address      string `json:"address"`
	Password     string `json:"password"`
	Database     int    `json:"database"`
	PoolSize     int    `json:"poolSize"`
	MinIdleConns int    `json:"minIdleConns"`
}

// LoadFromEnv loads configuration from the environment.
// It follows a clear precedence:
// 1. Explicit Environment Variables (e.g., set in the shell or by CI)
// 2. Values from the .env file (if it exists)
// 3. Hardcoded defaults (if applicable)
func LoadFromEnv() (*Config, error) {
	// godotenv.Load() will read the .env file and load its values into the
	// environment for this process *only if they are not already set*.
	envPaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	var loadErr error
	for _, envPath := range envPaths {
		loadErr = godotenv.Load(envPath)
		if loadErr == nil {
			break
		}
	}

	if loadErr != nil {
		// It's not an error if the .env file doesn't exist.
		fmt.Println("INFO: .env file not found, using environment variables and defaults.")
	}

	config := &Config{
		Server: ServerConfig{
			Host:      getEnvOrDefault("HOST", "localhost"),
			Port:      getEnvAsInt("SERVER_PORT", 8080),
			BaseRoute: getEnvOrDefault("BASE_ROUTE", "/api"),
			WebDomain: getEnvOrDefault("WEB_DOMAIN", "http://localhost:3000"),
			Debug:     getEnvAsBool("DEBUG", false),
		},
		Database: DatabaseConfig{
			Type: getEnvOrDefault("DB_TYPE", "mongodb"),
			Mongo: MongoDBConfig{
				Host:                   getEnvOrDefault("MONGO_HOST", "localhost"),
				Port:                   getEnvAsInt("MONGO_PORT", 27017),
				Username:               getEnvOrDefault("MONGO_USERNAME", ""),
				Password:               getEnvOrDefault("MONGO_PASSWORD", ""),
				Database:               getEnvOrDefault("MONGO_DATABASE", "vidora"),
				AuthDatabase:           getEnvOrDefault("MONGO_AUTH_DATABASE", ""),
				ReplicaSet:             getEnvOrDefault("MONGO_REPLICA_SET", ""),
				SSL:                    getEnvAsBool("MONGO_SSL", false),
				MaxPoolSize:            getEnvAsInt("MONGO_MAX_POOL_SIZE", 25),
				MinPoolSize:            getEnvAsInt("MONGO_MIN_POOL_SIZE", 5),
				ConnectTimeout:         getEnvAsInt("MONGO_CONNECT_TIMEOUT", 10),
				SocketTimeout:          getEnvAsInt("MONGO_SOCKET_TIMEOUT", 30),
				MaxIdleTime:            getEnvAsInt("MONGO_MAX_IDLE_TIME", 300),
				ServerSelectionTimeout: getEnvAsInt("MONGO_SERVER_SELECTION_TIMEOUT", 10),
			},
		},
		JWT: JWTConfig{
			PublicKey:  getEnvOrDefault("JWT_PUBLIC_KEY", ""),
			PrivateKey: getEnvOrDefault("JWT_PRIVATE_KEY", ""),
		},
		App: AppConfig{
			Name:      getEnvOrDefault("APP_NAME", "Vidora"),
			OrgName:   getEnvOrDefault("ORG_NAME", "Vidora"),
			WebDomain: getEnvOrDefault("WEB_DOMAIN", "http://localhost:3000"),
		},
		Cache: CacheConfig{
			Enabled:         getEnvAsBool("CACHE_ENABLED", true),
			Backend:         getEnvOrDefault("CACHE_BACKEND", "memory"),
			Prefix:          getEnvOrDefault("CACHE_PREFIX", "vidora:"),
			TTL:             getEnvAsDuration("CACHE_TTL", 5*time.Minute),
			CleanupInterval: getEnvAsDuration("CACHE_CLEANUP_INTERVAL", time.Minute),
			Redis: RedisConfig{
				Address:      getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password:     getEnvOrDefault("REDIS_PASSWORD", ""),
				Database:     getEnvAsInt("REDIS_DATABASE", 0),
				PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
				MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
			},
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// LoadFromMap loads configuration from an in-memory map.
// This is the primary helper for testing configuration logic in isolation
// without manipulating global environment variables.
func LoadFromMap(envMap map[string]string) (*Config, error) {
	get := func(key, defaultValue string) string {
		if value, exists := envMap[key]; exists {
			return value
		}
		return defaultValue
	}

	getInt := func(key string, defaultValue int) int {
		if value, exists := envMap[key]; exists {
			if intValue, err := strconv.Atoi(value); err == nil {
				return intValue
			}
		}
		return defaultValue
	}

	getBool := func(key string, defaultValue bool) bool {
		if value, exists := envMap[key]; exists {
			if boolValue, err := strconv.ParseBool(value); err == nil {
				return boolValue
			}
		}
		return defaultValue
	}

	getDuration := func(key string, defaultValue time.Duration) time.Duration {
		if value, exists := envMap[key]; exists {
			if duration, err := time.ParseDuration(value); err == nil {
				return duration
			}
		}
		return defaultValue
	}

	config := &Config{
		Server: ServerConfig{
			Host:      get("HOST", "localhost"),
			Port:      getInt("SERVER_PORT", 8080),
			BaseRoute: get("BASE_ROUTE", "/api"),
			WebDomain: get("WEB_DOMAIN", "http://localhost:3000"),
			Debug:     getBool("DEBUG", false),
		},
		Database: DatabaseConfig{
			Type: get("DB_TYPE", "mongodb"),
			Mongo: MongoDBConfig{
				Host:                   get("MONGO_HOST", "localhost"),
				Port:                   getInt("MONGO_PORT", 27017),
				Username:               get("MONGO_USERNAME", ""),
				Password:               get("MONGO_PASSWORD", ""),
				Database:               get("MONGO_DATABASE", "vidora"),
				AuthDatabase:           get("MONGO_AUTH_DATABASE", ""),
				ReplicaSet:             get("MONGO_REPLICA_SET", ""),
				SSL:                    getBool("MONGO_SSL", false),
				MaxPoolSize:            getInt("MONGO_MAX_POOL_SIZE", 25),
				MinPoolSize:            getInt("MONGO_MIN_POOL_SIZE", 5),
				ConnectTimeout:         getInt("MONGO_CONNECT_TIMEOUT", 10),
				SocketTimeout:          getInt("MONGO_SOCKET_TIMEOUT", 30),
				MaxIdleTime:            getInt("MONGO_MAX_IDLE_TIME", 300),
				ServerSelectionTimeout: getInt("MONGO_SERVER_SELECTION_TIMEOUT", 10),
			},
		},
		JWT: JWTConfig{
			PublicKey:  get("JWT_PUBLIC_KEY", ""),
			PrivateKey: get("JWT_PRIVATE_KEY", ""),
		},
		App: AppConfig{
			Name:      get("APP_NAME", "Vidora"),
			OrgName:   get("ORG_NAME", "Vidora"),
			WebDomain: get("WEB_DOMAIN", "http://localhost:3000"),
		},
		Cache: CacheConfig{
			Enabled:         getBool("CACHE_ENABLED", true),
			Backend:         get("CACHE_BACKEND", "memory"),
			Prefix:          get("CACHE_PREFIX", "vidora:"),
			TTL:             getDuration("CACHE_TTL", 5*time.Minute),
			CleanupInterval: getDuration("CACHE_CLEANUP_INTERVAL", time.Minute),
			Redis: RedisConfig{
				Address:      get("REDIS_ADDRESS", "localhost:6379"),
				Password:     get("REDIS_PASSWORD", ""),
				Database:     getInt("REDIS_DATABASE", 0),
				PoolSize:     getInt("REDIS_POOL_SIZE", 10),
				MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 5),
			},
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration for required fields
func (c *Config) Validate() error {
	var errors []string

	if strings.TrimSpace(c.JWT.PublicKey) == "" {
		errors = append(errors, "JWT_PUBLIC_KEY is required")
	}

	validDbTypes := []string{"mongodb"}
	if !contains(validDbTypes, c.Database.Type) {
		errors = append(errors, fmt.Sprintf("DB_TYPE must be one of: %s", strings.Join(validDbTypes, ", ")))
	}

	validBackends := []string{"memory", "redis"}
	if !contains(validBackends, c.Cache.Backend) {
		errors = append(errors, fmt.Sprintf("CACHE_BACKEND must be one of: %s", strings.Join(validBackends, ", ")))
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// Helper functions
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
